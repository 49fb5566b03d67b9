package server

import (
	"net"
	"sync"
)

// SyncConn wraps a net.Conn with the 4-byte little-endian length framing
// used on the daemon socket. Reads and writes each hold their own lock so
// a response can be written while another goroutine blocks on Read.
type SyncConn struct {
	Conn     net.Conn
	rmu, wmu sync.Mutex
}

func NewSyncConn(conn net.Conn) *SyncConn {
	return &SyncConn{
		Conn: conn,
	}
}

func (s *SyncConn) Write(b []byte) error {
	return write(&s.wmu, s.Conn, b)
}

func (s *SyncConn) Read() ([]byte, error) {
	return read(&s.rmu, s.Conn)
}
