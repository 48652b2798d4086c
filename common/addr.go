package common

import (
	"strconv"

	"github.com/go-i2p/i2pkeys"
)

// I2PAddr is an opaque I2P destination: the base-64 string identifying an I2P
// endpoint (spec §3). It is a thin alias over i2pkeys.I2PAddr so callers get
// Base32()/Base64() for free while the rest of this package stays in terms of
// the spec's vocabulary.
type I2PAddr = i2pkeys.I2PAddr

// I2PSocketAddr pairs an I2P destination with a virtual port, the unit SAM
// STREAM ACCEPT/CONNECT peers are addressed by (spec §3, "I2pSocketAddr").
type I2PSocketAddr struct {
	Addr I2PAddr
	Port uint16
}

func NewI2PSocketAddr(addr I2PAddr, port uint16) I2PSocketAddr {
	return I2PSocketAddr{Addr: addr, Port: port}
}

// Network implements net.Addr.
func (a I2PSocketAddr) Network() string { return "i2p" }

// String implements net.Addr, rendering "<base32>.b32.i2p:<port>" when a
// port is set, and the bare base32 destination otherwise.
func (a I2PSocketAddr) String() string {
	host := string(a.Addr.Base32())
	if a.Port == 0 {
		return host
	}
	return host + ":" + strconv.Itoa(int(a.Port))
}
