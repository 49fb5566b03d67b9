// Package chimecli is the client library for the chime daemon socket.
// It speaks the framed-JSON request/response protocol over a unix socket
// (named pipe on Windows) with a loopback TCP fallback, and exposes a
// typed method per daemon operation.
package chimecli

import (
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/chimekit/chime/common"
)

// Request is the wire envelope sent to the daemon.
type Request struct {
	Method  common.Method `json:"method"`
	Message any           `json:"message,omitempty"`
}

// Response is the wire envelope received from the daemon.
type Response struct {
	Ok      bool             `json:"ok"`
	Error   string           `json:"error,omitempty"`
	Code    common.ErrorCode `json:"code,omitempty"`
	Message json.RawMessage  `json:"message,omitempty"`
}

// Client is a connection to the daemon. It is safe for concurrent use;
// calls are serialized on the connection.
type Client struct {
	mu   sync.Mutex
	conn net.Conn
}

// NewClient dials the daemon and returns a connected client.
func NewClient() (*Client, error) {
	conn, err := dial()
	if err != nil {
		return nil, fmt.Errorf("connect to daemon: %w", err)
	}
	return &Client{conn: conn}, nil
}

// NewClientConn wraps an existing connection, mainly for tests.
func NewClientConn(conn net.Conn) *Client {
	return &Client{conn: conn}
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) call(method common.Method, message any) (json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	buf, err := json.Marshal(&Request{Method: method, Message: message})
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", method, err)
	}
	if err := write(c.conn, buf); err != nil {
		return nil, fmt.Errorf("send %s request: %w", method, err)
	}
	buf, err = read(c.conn)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", method, err)
	}

	var res Response
	if err := json.Unmarshal(buf, &res); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", method, err)
	}
	if !res.Ok {
		code := res.Code
		if code == "" {
			code = common.ErrInternal
		}
		return nil, &common.Error{Code: code, Description: res.Error}
	}
	return res.Message, nil
}

func invoke[T any](c *Client, method common.Method, message any) (*T, error) {
	raw, err := c.call(method, message)
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %s result: %w", method, err)
	}
	return &out, nil
}
