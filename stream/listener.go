package stream

import (
	"net"
	"strings"

	"github.com/go-i2p/go-sam-client/common"
)

// Listen prepares a Listener for an existing STREAM-style session. There is
// no separate "bind" step in SAM: a session created with STYLE=STREAM is
// already eligible to accept, so Listen just records the session Accept
// will open control connections against.
func Listen(session common.Endpoint) (*Listener, error) {
	return &Listener{session: session}, nil
}

// Accept opens a dedicated control connection, issues STREAM ACCEPT, and
// blocks until a peer connects or the bridge reports an error (spec §4.6).
// Each call consumes exactly one pending connection; SAM allows only one
// outstanding STREAM ACCEPT per session at a time.
func (l *Listener) Accept() (net.Conn, error) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil, &net.OpError{Op: "accept", Net: "i2p", Err: net.ErrClosed}
	}
	l.mu.Unlock()

	conn, err := common.Connect(l.session.Address())
	if err != nil {
		return nil, err
	}

	command := "STREAM ACCEPT ID=" + l.session.ID() + " SILENT=false\n"
	line, err := conn.Send(command)
	if err != nil {
		conn.Close()
		return nil, err
	}

	fields, err := common.ParseStreamStatus(line)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := common.VerifyResponse(fields); err != nil {
		conn.Close()
		return nil, err
	}

	destLine, err := conn.ReadLine()
	if err != nil {
		conn.Close()
		return nil, err
	}

	dest := strings.Fields(destLine)
	if len(dest) == 0 {
		conn.Close()
		return nil, &common.SAMError{Kind: common.KindKeyNotFound, Message: "No b64 destination in accept"}
	}

	return &Stream{
		conn:  conn,
		laddr: l.session.Addr(),
		raddr: common.I2PAddr(dest[0]),
	}, nil
}

// Close marks the listener closed. It does not interrupt an Accept already
// blocked in a read; that call returns on its own once the bridge closes
// the accept socket or a peer connects.
func (l *Listener) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	return nil
}

// Addr returns the I2P destination this listener accepts connections for.
func (l *Listener) Addr() net.Addr {
	return common.NewI2PSocketAddr(l.session.Addr(), 0)
}
