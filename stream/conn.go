package stream

import (
	"net"
	"time"

	"github.com/go-i2p/go-sam-client/common"
)

func (c *Stream) Read(b []byte) (int, error) {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return 0, net.ErrClosed
	}
	conn := c.conn
	c.mu.RUnlock()
	return conn.Read(b)
}

func (c *Stream) Write(b []byte) (int, error) {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return 0, net.ErrClosed
	}
	conn := c.conn
	c.mu.RUnlock()
	return conn.Write(b)
}

func (c *Stream) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}

func (c *Stream) LocalAddr() net.Addr {
	return common.NewI2PSocketAddr(c.laddr, 0)
}

func (c *Stream) RemoteAddr() net.Addr {
	return common.NewI2PSocketAddr(c.raddr, 0)
}

func (c *Stream) SetDeadline(t time.Time) error {
	return c.conn.SetDeadline(t)
}

func (c *Stream) SetReadDeadline(t time.Time) error {
	return c.conn.SetReadDeadline(t)
}

func (c *Stream) SetWriteDeadline(t time.Time) error {
	return c.conn.SetWriteDeadline(t)
}
