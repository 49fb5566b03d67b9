package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"github.com/creachadair/jrpc2/jhttp"
	cws "github.com/coder/websocket"

	"github.com/chimekit/chime/pkg/logger"
)

// WebServer exposes the daemon's methods as JSON-RPC 2.0: request/reply
// over HTTP POST at /rpc, and a websocket at /ws whose connections also
// receive push notifications through the RPCNotifier. When a secret is
// configured, /rpc requires Bearer token auth.
type WebServer struct {
	log      logger.Logger
	addr     string
	secret   string
	methods  handler.Map
	notifier *RPCNotifier

	mu     sync.Mutex
	server *http.Server
	bridge *jhttp.Bridge
}

func NewWebServer(l logger.Logger, addr, secret string, methods handler.Map, notifier *RPCNotifier) *WebServer {
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &WebServer{
		log:      l,
		addr:     addr,
		secret:   secret,
		methods:  methods,
		notifier: notifier,
	}
}

// Start listens on the configured address and blocks until Shutdown.
func (s *WebServer) Start() error {
	bridge := jhttp.NewBridge(s.methods, nil)

	var rpc http.Handler = bridge
	if s.secret != "" {
		rpc = requireToken(s.secret, bridge)
	}
	mux := http.NewServeMux()
	mux.Handle("/rpc", rpc)
	mux.HandleFunc("/ws", s.handleWS)

	s.mu.Lock()
	s.bridge = &bridge
	s.server = &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}
	server := s.server
	s.mu.Unlock()

	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// handleWS upgrades the connection and runs a jrpc2 server over it. The
// server is registered with the notifier for the lifetime of the
// connection so it receives scheduler push events.
func (s *WebServer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := cws.Accept(w, r, nil)
	if err != nil {
		s.log.Warning("websocket accept: %v", err)
		return
	}
	ch := &wsChannel{conn: conn, ctx: r.Context()}
	srv := jrpc2.NewServer(s.methods, nil)
	srv.Start(ch)
	s.notifier.Register(srv)
	defer s.notifier.Unregister(srv)
	if err := srv.Wait(); err != nil {
		s.log.Info("websocket session ended: %v", err)
	}
}

// Shutdown gracefully stops the web server.
func (s *WebServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bridge != nil {
		_ = s.bridge.Close()
		s.bridge = nil
	}
	if s.server == nil {
		return nil
	}
	err := s.server.Shutdown(ctx)
	s.server = nil
	return err
}
