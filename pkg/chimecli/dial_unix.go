//go:build !windows

package chimecli

import (
	"fmt"
	"net"
)

// dial connects to the daemon over the unix socket, falling back to
// loopback TCP when the socket is unavailable.
func dial() (net.Conn, error) {
	conn, unixErr := net.Dial("unix", socketPath())
	if unixErr != nil {
		conn, err := net.Dial("tcp", tcpAddress())
		if err != nil {
			return nil, fmt.Errorf("unix socket: %v; tcp: %w", unixErr, err)
		}
		return conn, nil
	}
	return conn, nil
}
