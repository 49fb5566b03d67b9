//go:build windows

package chimecli

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/Microsoft/go-winio"
)

const dialTimeout = 5 * time.Second

// dial connects to the daemon over the named pipe, falling back to
// loopback TCP when the pipe is unavailable.
func dial() (net.Conn, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	conn, pipeErr := winio.DialPipeContext(ctx, pipePath())
	if pipeErr != nil {
		conn, err := net.Dial("tcp", tcpAddress())
		if err != nil {
			return nil, fmt.Errorf("named pipe: %v; tcp: %w", pipeErr, err)
		}
		return conn, nil
	}
	return conn, nil
}
