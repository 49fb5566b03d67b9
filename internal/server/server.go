package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/chimekit/chime/common"
	"github.com/chimekit/chime/pkg/logger"
)

const tcpHost = "127.0.0.1"

// Server accepts framed-JSON RPC connections from CLI clients over a unix
// socket (named pipe on Windows), dispatching each request to a
// registered handler. If the socket cannot be created it falls back to a
// loopback TCP listener on the configured port.
type Server struct {
	log      logger.Logger
	handlers map[common.Method]HandlerFunc
	path     string
	port     int
	listener net.Listener
	mu       sync.Mutex
}

// NewServer creates a Server listening at path (empty means the
// CHIME_SOCKET_PATH env value or the per-OS default). port is only used
// for the TCP fallback.
func NewServer(l logger.Logger, path string, port int) *Server {
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &Server{
		log:      l,
		handlers: make(map[common.Method]HandlerFunc),
		path:     path,
		port:     port,
	}
}

// socketFile resolves the socket path the listener binds to.
func (s *Server) socketFile() string {
	if s.path != "" {
		return s.path
	}
	return socketPath()
}

// RegisterHandler associates a handler with a method. Handlers must all
// be registered before Start.
func (s *Server) RegisterHandler(method common.Method, handler HandlerFunc) {
	s.handlers[method] = handler
}

// Start begins accepting connections and blocks until the context is
// cancelled. Each connection is served in its own goroutine.
func (s *Server) Start(ctx context.Context) error {
	l, err := s.createListener()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.listener = l
	s.mu.Unlock()
	s.log.Info("listening on %s", l.Addr())

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	for {
		conn, err := l.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.log.Error("accept: %v", err)
			continue
		}
		go s.handleConnection(conn)
	}
}

// Shutdown closes the listener and removes the socket file.
func (s *Server) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		if err := s.listener.Close(); err != nil {
			s.log.Error("close listener: %v", err)
		}
		s.listener = nil
	}
	if err := cleanupSocket(s.socketFile()); err != nil {
		s.log.Error("remove socket file: %v", err)
	}
	return nil
}

func (s *Server) handleConnection(conn net.Conn) {
	sconn := NewSyncConn(conn)
	defer conn.Close()
	for {
		buf, err := sconn.Read()
		if err != nil {
			if err != io.EOF && !errors.Is(err, net.ErrClosed) {
				s.log.Warning("read request: %v", err)
			}
			return
		}
		if err := s.handlerWrapper(sconn, buf); err != nil {
			s.log.Warning("handle request: %v", err)
			return
		}
	}
}

func (s *Server) handlerWrapper(sconn *SyncConn, b []byte) error {
	req, err := ParseRequest(b)
	if err != nil {
		return fmt.Errorf("parse request: %w", err)
	}
	handler, ok := s.handlers[req.Method]
	if !ok {
		if err := sconn.Write(CreateError(common.ErrInvalid, "unknown method: "+string(req.Method))); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
		return nil
	}
	res, err := handler(req.Message)
	if err != nil {
		if err := sconn.Write(InitError(err)); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
		return nil
	}
	if err := sconn.Write(MakeResult(res)); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}
