package sam

import (
	"net"

	"github.com/go-i2p/go-sam-client/common"
	"github.com/go-i2p/go-sam-client/manager"
	"github.com/go-i2p/go-sam-client/stream"
	"github.com/go-i2p/go-sam-client/watcher"
	"github.com/go-i2p/i2pkeys"
)

// Default SAM bridge endpoint and the protocol version window this client
// negotiates on HELLO (spec §6).
const (
	DEFAULT_API = common.DefaultSAMAddress
	SAM_MIN     = common.SAMMin
	SAM_MAX     = common.SAMMax
)

// Public type aliases, named to match the library's documented surface
// (spec §6) while keeping the concrete implementations in their own
// subpackages.
type (
	SamConnection     = common.Conn
	Session           = common.Session
	SessionManager    = manager.SessionManager
	StreamConnect     = stream.Stream
	StreamForward     = stream.Listener
	I2pAddr           = common.I2PAddr
	I2pSocketAddr     = common.I2PSocketAddr
	SignatureType     = common.SignatureType
	SessionStyle      = common.SessionStyle
	SAMOptions        = common.SAMOptions
	SamSessionWatcher = watcher.Watcher
	ErrorKind         = common.ErrorKind
	SAMError          = common.SAMError
)

// Session styles and signature types, re-exported for callers that don't
// want a direct common import.
const (
	StyleStream   = common.StyleStream
	StyleDatagram = common.StyleDatagram
	StyleRaw      = common.StyleRaw
	StylePrimary  = common.StylePrimary

	SigDefault = common.SigDefault
)

// NewSession opens a control connection to address and issues SESSION
// CREATE with the given nickname, style, destination keys, and options. A
// zero i2pkeys.I2PKeys requests a TRANSIENT destination.
func NewSession(address, id string, style SessionStyle, keys i2pkeys.I2PKeys, options SAMOptions) (*Session, error) {
	return common.NewSession(address, id, style, keys, options)
}

// NewTransientSession is NewSession with an ephemeral, bridge-minted
// destination.
func NewTransientSession(address, id string, style SessionStyle, options SAMOptions) (*Session, error) {
	return common.NewTransientSession(address, id, style, options)
}

// Transient opens a STREAM session against samAddr with an auto-generated
// nickname and a fresh bridge-minted destination, for callers that don't
// need a stable identity or fine control over session parameters.
func Transient(samAddr string) (*Session, error) {
	return common.Transient(samAddr)
}

// Persistent opens a STREAM session against samAddr reusing dest, an
// already-known private destination, so the session's public address is
// the same as whatever session last used that key.
func Persistent(samAddr string, dest i2pkeys.I2PKeys) (*Session, error) {
	return common.Persistent(samAddr, dest)
}

// FromDestination is an alias for Persistent.
func FromDestination(samAddr string, dest i2pkeys.I2PKeys) (*Session, error) {
	return common.FromDestination(samAddr, dest)
}

// DefaultOptions returns a zero-value SAMOptions: no SAMOptions fields are
// mandatory (spec §9), so an empty tree renders to nothing and the bridge
// falls back to its own defaults.
func DefaultOptions() SAMOptions {
	return common.DefaultOptions()
}

// Connect opens a STREAM CONNECT to destination over session, always
// resolving it first with a NAMING LOOKUP (names and base64 destinations
// alike).
func Connect(session *Session, destination string) (net.Conn, error) {
	return stream.Connect(session, destination)
}

// Listen prepares a Listener that accepts incoming STREAM connections for
// session.
func Listen(session *Session) (*StreamForward, error) {
	return stream.Listen(session)
}

// NewSessionManager wraps an already-created PRIMARY session for
// SESSION ADD/REMOVE subsession management (spec §4.7).
func NewSessionManager(primary *Session) *SessionManager {
	return manager.NewSessionManager(primary)
}

// NewSessionWatcher builds a supervised Session/Listener pair that rebuilds
// itself from keys across fatal control-connection errors (spec §4.8).
func NewSessionWatcher(samAddr, id string, keys i2pkeys.I2PKeys, style SessionStyle, options SAMOptions) (*SamSessionWatcher, error) {
	return watcher.New(samAddr, id, keys, style, options)
}
