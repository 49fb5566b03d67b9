package chimecli

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
)

// Frames are length-prefixed with a 4-byte little-endian header, matching
// the daemon side.
const maxFrameSize = 1 << 20

func read(conn net.Conn) ([]byte, error) {
	head := make([]byte, 4)
	if _, err := io.ReadFull(conn, head); err != nil {
		return nil, err
	}
	n := binary.LittleEndian.Uint32(head)
	if n > maxFrameSize {
		return nil, fmt.Errorf("frame of %d bytes exceeds limit", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(conn, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func write(conn net.Conn, b []byte) error {
	head := make([]byte, 4)
	binary.LittleEndian.PutUint32(head, uint32(len(b)))
	if _, err := conn.Write(head); err != nil {
		return err
	}
	_, err := conn.Write(b)
	return err
}
