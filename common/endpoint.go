package common

// Endpoint is what the stream and manager packages need from a session to
// open a STREAM CONNECT/ACCEPT against it: a bridge address, a tunnel ID to
// quote, a destination to report as the local address, and name resolution.
// Session satisfies this directly; a PRIMARY session's subsessions satisfy
// it via a lightweight view sharing the primary session's address and
// destination but carrying their own SESSION ADD nickname.
type Endpoint interface {
	Address() string
	ID() string
	Addr() I2PAddr
	Resolve(name string) (I2PAddr, error)
}

var _ Endpoint = (*Session)(nil)
