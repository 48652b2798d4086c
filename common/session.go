package common

import (
	"fmt"
	"math/rand/v2"

	"github.com/go-i2p/i2pkeys"
	"github.com/sirupsen/logrus"
)

// Session is an established SESSION CREATE: a tunnel nickname bound to a
// destination. The control Conn it was created on stays open for the
// lifetime of the session to keep the tunnel alive; STREAM CONNECT/ACCEPT
// each open their own fresh control connection quoting this session's ID,
// per spec §4.5/§4.6 ("a client opens a new socket with the SAM bridge").
type Session struct {
	conn  *Conn
	id    string
	style SessionStyle
	keys  i2pkeys.I2PKeys
}

// ID returns the tunnel nickname this session was created with.
func (s *Session) ID() string { return s.id }

// Style returns the session style (STREAM/DATAGRAM/RAW/PRIMARY) it was
// created with.
func (s *Session) Style() SessionStyle { return s.style }

// Keys returns the I2P keypair backing this session's destination.
func (s *Session) Keys() i2pkeys.I2PKeys { return s.keys }

// Addr returns the I2P destination address of this session.
func (s *Session) Addr() I2PAddr { return s.keys.Addr() }

// Conn returns the underlying control connection, for callers that need to
// issue further commands (naming lookups, SESSION ADD) on the same socket.
func (s *Session) Conn() *Conn { return s.conn }

// Address returns the "host:port" of the SAM bridge this session was
// created against, for opening the extra control connections STREAM
// CONNECT/ACCEPT each require.
func (s *Session) Address() string { return s.conn.Address() }

// Close tears down the control connection backing this session. SAM has no
// explicit SESSION DESTROY; closing the socket is what releases the tunnel.
func (s *Session) Close() error { return s.conn.Close() }

// NewSession opens a control connection to address and issues SESSION
// CREATE with the given nickname, style, destination keys, and options. A
// zero i2pkeys.I2PKeys (no Addr) requests TRANSIENT; otherwise the keys'
// private data is sent so the bridge recreates the same destination.
func NewSession(address, id string, style SessionStyle, keys i2pkeys.I2PKeys, options SAMOptions) (*Session, error) {
	conn, err := Connect(address)
	if err != nil {
		return nil, err
	}

	session, err := createSession(conn, id, style, keys, options)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return session, nil
}

// NewTransientSession is NewSession with TRANSIENT requested explicitly: the
// bridge mints a fresh ephemeral destination for this session's lifetime.
func NewTransientSession(address, id string, style SessionStyle, options SAMOptions) (*Session, error) {
	return NewSession(address, id, style, i2pkeys.I2PKeys{}, options)
}

// nicknameAlphanumeric is the character set nickname() draws from; not
// cryptographically sensitive, it only needs to avoid colliding with other
// local sessions on the same bridge.
const nicknameAlphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// nickname mints "i2prs-<8 random alphanumerics>" for callers that don't
// care what their session is called.
func nickname() string {
	b := make([]byte, 8)
	for i := range b {
		b[i] = nicknameAlphanumeric[rand.IntN(len(nicknameAlphanumeric))]
	}
	return "i2prs-" + string(b)
}

// Transient opens a STREAM session against samAddr with an auto-generated
// nickname, TRANSIENT destination, the default signature type, and default
// options. A convenience for callers that don't need a stable identity or
// fine control over session parameters.
func Transient(samAddr string) (*Session, error) {
	options := DefaultOptions()
	options.SignatureType = SigDefault
	return NewTransientSession(samAddr, nickname(), StyleStream, options)
}

// Persistent opens a STREAM session against samAddr reusing dest (a base-64
// private destination previously obtained from a SESSION CREATE reply or
// DEST GENERATE), so the session's public address stays the same as last
// time. Nickname, style, and options are auto-chosen as in Transient.
func Persistent(samAddr string, dest i2pkeys.I2PKeys) (*Session, error) {
	options := DefaultOptions()
	options.SignatureType = SigDefault
	return NewSession(samAddr, nickname(), StyleStream, dest, options)
}

// FromDestination is an alias for Persistent: both create a session bound to
// an already-known destination rather than letting the bridge mint one.
func FromDestination(samAddr string, dest i2pkeys.I2PKeys) (*Session, error) {
	return Persistent(samAddr, dest)
}

// AddSubsession issues SESSION ADD on this session's own control connection,
// layering a second nickname/style/listen-port onto a PRIMARY session (spec
// §4.7). Unlike STREAM CONNECT/ACCEPT, SESSION ADD shares the primary
// session's existing socket rather than opening a new one: subsessions are
// multiplexed, not separately dialed.
func (s *Session) AddSubsession(nickname string, style SessionStyle, listenPort int, options SAMOptions) error {
	command := fmt.Sprintf("SESSION ADD STYLE=%s ID=%s LISTEN_PORT=%d", style, nickname, listenPort)
	if rendered := options.Render(); rendered != "" {
		command += " " + rendered
	}
	command += "\n"

	line, err := s.conn.Send(command)
	if err != nil {
		return err
	}
	fields, err := parseSessionStatus(line)
	if err != nil {
		return err
	}
	return verifyResponse(fields)
}

// RemoveSubsession issues SESSION REMOVE for a nickname previously added with
// AddSubsession. Not required by the wire protocol's minimal surface, but
// offered since the bridge supports it and callers otherwise have no way to
// tear down one subsession without closing the whole primary session.
func (s *Session) RemoveSubsession(nickname string) error {
	command := fmt.Sprintf("SESSION REMOVE ID=%s\n", nickname)
	line, err := s.conn.Send(command)
	if err != nil {
		return err
	}
	fields, err := parseSessionStatus(line)
	if err != nil {
		return err
	}
	return verifyResponse(fields)
}

// createSession runs SESSION CREATE on an already-connected control Conn,
// then resolves "ME" on it; NewSession is its caller. Subsessions do not go
// through here: they use AddSubsession on the primary session's Conn.
func createSession(conn *Conn, id string, style SessionStyle, keys i2pkeys.I2PKeys, options SAMOptions) (*Session, error) {
	dest := TransientDestination
	if keys.Addr().String() != "" {
		dest = keys.String()
	}

	log.WithFields(logrus.Fields{"style": style, "id": id, "transient": dest == TransientDestination}).
		Debug("creating SAM session")

	command := fmt.Sprintf("SESSION CREATE STYLE=%s ID=%s DESTINATION=%s", style, id, dest)
	if rendered := options.Render(); rendered != "" {
		command += " " + rendered
	}
	command += "\n"

	line, err := conn.Send(command)
	if err != nil {
		return nil, err
	}
	fields, err := parseSessionStatus(line)
	if err != nil {
		return nil, err
	}
	if err := verifyResponse(fields); err != nil {
		return nil, err
	}

	// SESSION STATUS's DESTINATION field, when present, is the private-key
	// blob the bridge minted (or echoed back) for this session, not a usable
	// public address by itself. The actual public destination is resolved
	// separately via NAMING LOOKUP NAME=ME, same as any other name (spec
	// §4.4 step 4): the bridge treats "ME" as shorthand for "this session's
	// own destination".
	privData := keys.String()
	if dest == TransientDestination {
		value, ok := fields["DESTINATION"]
		if !ok {
			return nil, protocolErrorf("SESSION STATUS missing DESTINATION: %q", line)
		}
		privData = value
	}

	localDest, err := conn.NamingLookup("ME")
	if err != nil {
		return nil, err
	}
	keys = i2pkeys.NewKeys(localDest, privData)

	return &Session{conn: conn, id: id, style: style, keys: keys}, nil
}
