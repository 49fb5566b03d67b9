//go:build !windows

package server

import (
	"fmt"
	"net"
	"os"
)

// createListener creates a unix socket listener with TCP fallback.
// Transport priority: unix socket > loopback TCP.
func (s *Server) createListener() (net.Listener, error) {
	path := s.socketFile()
	_ = os.Remove(path)
	l, err := net.ListenUnix("unix", &net.UnixAddr{
		Name: path,
		Net:  "unix",
	})
	if err != nil {
		s.log.Warning("unix socket unavailable (%v), falling back to tcp", err)
		tcpListener, tcpErr := net.Listen("tcp", fmt.Sprintf("%s:%d", tcpHost, s.port))
		if tcpErr != nil {
			return nil, fmt.Errorf("listen: %w", tcpErr)
		}
		return tcpListener, nil
	}
	setSocketPermissions(path)
	return l, nil
}
