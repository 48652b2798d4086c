package stream

import (
	"net"
	"sync"

	"github.com/go-i2p/go-sam-client/common"
)

// Stream is a net.Conn-shaped I2P streaming connection, returned by Connect
// or by a Listener's Accept. Its underlying socket carries opaque payload
// bytes once the STREAM STATUS handshake succeeds; reads/writes after that
// point go straight to the I2P router with no further SAM framing.
type Stream struct {
	conn net.Conn

	laddr common.I2PAddr
	raddr common.I2PAddr

	mu     sync.RWMutex
	closed bool
}

// Listener accepts incoming I2P stream connections for a session. Each
// Accept opens its own dedicated control connection to the bridge (spec
// §4.6); there is no shared accept loop or backlog, matching the one
// pending STREAM ACCEPT per call that the protocol allows.
type Listener struct {
	session common.Endpoint

	mu     sync.Mutex
	closed bool
}

var _ net.Conn = (*Stream)(nil)
var _ net.Listener = (*Listener)(nil)
