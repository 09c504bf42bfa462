// Package netffi frames messages over TCP.
// a frame is len(data) (le64) ++ data.
// Receive only ever returns whole frames,
// so a decoder never sees a partial or interleaved message.
package netffi

import (
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/tchajed/marshal"
)

// DefaultMaxFrame bounds Receive allocations unless set otherwise.
const DefaultMaxFrame uint64 = 64 << 20

// # Conn

type Conn struct {
	c        net.Conn
	sendMu   *sync.Mutex
	recvMu   *sync.Mutex
	maxFrame uint64
}

// Dial connects to a "host:port" addr.
func Dial(addr string) (*Conn, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return newConn(conn), nil
}

func newConn(conn net.Conn) *Conn {
	return &Conn{c: conn, sendMu: new(sync.Mutex), recvMu: new(sync.Mutex), maxFrame: DefaultMaxFrame}
}

// SetMaxFrame bounds the frames Receive accepts.
func (c *Conn) SetMaxFrame(n uint64) {
	c.recvMu.Lock()
	defer c.recvMu.Unlock()
	c.maxFrame = n
}

// Send errors on fail.
func (c *Conn) Send(data []byte) bool {
	e := marshal.NewEnc(8 + uint64(len(data)))
	e.PutInt(uint64(len(data)))
	e.PutBytes(data)
	msg := e.Finish()

	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	_, err := c.c.Write(msg)
	if err != nil {
		// prevent sending on this conn again.
		c.c.Close()
		return true
	}
	return false
}

// Receive returns the next frame and errors on fail.
// a clean close before any header byte is io.EOF.
func (c *Conn) Receive() ([]byte, error) {
	c.recvMu.Lock()
	defer c.recvMu.Unlock()

	header := make([]byte, 8)
	if _, err := io.ReadFull(c.c, header); err != nil {
		// the other side may have hung up. either way, we lost our place
		// in the stream, so close.
		c.c.Close()
		return nil, err
	}
	d := marshal.NewDec(header)
	dataLen := d.GetInt()
	if dataLen > c.maxFrame {
		c.c.Close()
		return nil, &FrameTooLargeError{Len: dataLen, Max: c.maxFrame}
	}

	data := make([]byte, dataLen)
	if _, err := io.ReadFull(c.c, data); err != nil {
		c.c.Close()
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return data, nil
}

func (c *Conn) Close() error {
	return c.c.Close()
}

type FrameTooLargeError struct {
	Len uint64
	Max uint64
}

func (e *FrameTooLargeError) Error() string {
	return fmt.Sprintf("netffi: frame of %d bytes exceeds max %d", e.Len, e.Max)
}

// # Listener

type Listener struct {
	l net.Listener
}

func Listen(addr string) (*Listener, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Listener{l}, nil
}

func (l *Listener) Accept() (*Conn, error) {
	conn, err := l.l.Accept()
	if err != nil {
		return nil, err
	}
	return newConn(conn), nil
}

// Addr is the bound "host:port", useful after listening on port 0.
func (l *Listener) Addr() string {
	return l.l.Addr().String()
}

func (l *Listener) Close() error {
	return l.l.Close()
}
