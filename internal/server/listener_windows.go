//go:build windows

package server

import (
	"fmt"
	"net"

	"github.com/Microsoft/go-winio"
)

// pipeSecurityDescriptor restricts pipe access to SYSTEM, built-in
// Administrators, and the Creator Owner, so other users cannot drive the
// daemon's alarms.
const pipeSecurityDescriptor = "D:(A;;GA;;;SY)(A;;GA;;;BA)(A;;GA;;;CO)"

// createListener creates a named pipe listener with TCP fallback.
// Transport priority: named pipe > loopback TCP.
func (s *Server) createListener() (net.Listener, error) {
	cfg := &winio.PipeConfig{
		SecurityDescriptor: pipeSecurityDescriptor,
	}
	l, err := winio.ListenPipe(pipePath(), cfg)
	if err != nil {
		s.log.Warning("named pipe unavailable (%v), falling back to tcp", err)
		tcpListener, tcpErr := net.Listen("tcp", fmt.Sprintf("%s:%d", tcpHost, s.port))
		if tcpErr != nil {
			return nil, fmt.Errorf("listen: %w", tcpErr)
		}
		return tcpListener, nil
	}
	return l, nil
}
