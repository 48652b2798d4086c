package common

import (
	"fmt"
	"net"

	"github.com/go-i2p/i2pkeys"
)

// Conn is a control connection to a SAM bridge: a plain TCP socket that has
// completed the HELLO handshake. Every operation in this package that talks
// to the bridge (session creation, naming lookups, destination generation)
// goes through one of these.
type Conn struct {
	net.Conn
	config I2PConfig
}

// Connect dials the given SAM bridge address, performs the HELLO handshake
// negotiating versions [SAMMin, SAMMax], and returns a ready-to-use control
// connection.
func Connect(address string) (*Conn, error) {
	return ConnectWithAuth(address, "", "")
}

// ConnectWithAuth is Connect for a SAMv3.2+ bridge configured to require
// USER/PASSWORD authentication on HELLO. user and password are omitted from
// the HELLO line entirely when both are empty, so this is a drop-in
// superset of Connect.
func ConnectWithAuth(address, user, password string) (*Conn, error) {
	if address == "" {
		address = (&I2PConfig{}).Sam()
	}
	log.WithField("address", address).Debug("dialing SAM bridge")

	netConn, err := net.Dial("tcp", address)
	if err != nil {
		return nil, ioErrorf(err, "failed to connect to SAM bridge at %s", address)
	}

	c := &Conn{Conn: netConn}
	c.config.SetSAMAddress(address)

	if err := c.hello(user, password); err != nil {
		netConn.Close()
		return nil, err
	}
	return c, nil
}

func (c *Conn) hello(user, password string) error {
	hello := fmt.Sprintf("HELLO VERSION MIN=%s MAX=%s", SAMMin, SAMMax)
	if user != "" || password != "" {
		hello += fmt.Sprintf(" USER=%s PASSWORD=%s", user, password)
	}
	hello += "\n"
	if _, err := c.Conn.Write([]byte(hello)); err != nil {
		return ioErrorf(err, "failed to send HELLO")
	}

	line, err := readLine(c.Conn)
	if err != nil {
		return ioErrorf(err, "failed to read HELLO reply")
	}

	fields, err := parseHelloReply(line)
	if err != nil {
		return err
	}
	if err := verifyResponse(fields); err != nil {
		return err
	}
	if _, ok := fields["VERSION"]; !ok {
		return protocolErrorf("HELLO REPLY missing VERSION: %q", line)
	}
	return nil
}

// readLine reads byte-by-byte off conn until and including a trailing '\n'.
// SAM control replies are short, single lines; this avoids attaching a
// buffered reader to the socket, which would risk swallowing payload bytes
// that arrive right after a STREAM CONNECT/ACCEPT success reply.
func readLine(r net.Conn) (string, error) {
	buf := make([]byte, 0, 256)
	b := make([]byte, 1)
	for {
		n, err := r.Read(b)
		if n > 0 {
			buf = append(buf, b[0])
			if b[0] == '\n' {
				return string(buf), nil
			}
		}
		if err != nil {
			return string(buf), err
		}
	}
}

// Send writes a raw SAM command line (the caller supplies the trailing
// newline) and returns the single reply line read back.
func (c *Conn) Send(command string) (string, error) {
	if _, err := c.Conn.Write([]byte(command)); err != nil {
		return "", ioErrorf(err, "failed to write command")
	}
	line, err := readLine(c.Conn)
	if err != nil {
		return "", ioErrorf(err, "failed to read reply")
	}
	return line, nil
}

// ReadLine reads one more newline-terminated line off the control
// connection. Used by STREAM ACCEPT, where the peer's destination line
// arrives on its own after the initial STREAM STATUS reply, before the
// socket pivots to carrying opaque stream payload.
func (c *Conn) ReadLine() (string, error) {
	line, err := readLine(c.Conn)
	if err != nil {
		return "", ioErrorf(err, "failed to read line")
	}
	return line, nil
}

// NamingLookup resolves name (a human-readable name, "ME", or a base64/base32
// destination) to an I2P destination via NAMING LOOKUP.
func (c *Conn) NamingLookup(name string) (I2PAddr, error) {
	return c.namingLookup(name, false)
}

// NamingLookupWithOptions is the SAMv3.2+ variant that requests
// OPTIONS=true, so the bridge may append lease-set properties to its reply.
// Only the destination (the VALUE field) is returned; any other fields of
// the reply are discarded.
func (c *Conn) NamingLookupWithOptions(name string) (I2PAddr, error) {
	return c.namingLookup(name, true)
}

func (c *Conn) namingLookup(name string, withOptions bool) (I2PAddr, error) {
	command := fmt.Sprintf("NAMING LOOKUP NAME=%s\n", name)
	if withOptions {
		command = fmt.Sprintf("NAMING LOOKUP NAME=%s OPTIONS=true\n", name)
	}

	line, err := c.Send(command)
	if err != nil {
		return I2PAddr(""), err
	}
	fields, err := parseNamingReply(line)
	if err != nil {
		return I2PAddr(""), err
	}
	if err := verifyResponse(fields); err != nil {
		return I2PAddr(""), err
	}

	value, ok := fields["VALUE"]
	if !ok {
		return I2PAddr(""), protocolErrorf("NAMING REPLY missing VALUE: %q", line)
	}
	return I2PAddr(value), nil
}

// GenerateDestination asks the bridge to mint a fresh keypair via DEST
// GENERATE, used when a caller wants a persistent destination up front
// rather than letting SESSION CREATE pick TRANSIENT.
func (c *Conn) GenerateDestination(sig SignatureType) (i2pkeys.I2PKeys, error) {
	command := "DEST GENERATE\n"
	if sig != "" {
		command = fmt.Sprintf("DEST GENERATE SIGNATURE_TYPE=%s\n", sig)
	}

	line, err := c.Send(command)
	if err != nil {
		return i2pkeys.I2PKeys{}, err
	}
	fields, err := parseDestReply(line)
	if err != nil {
		return i2pkeys.I2PKeys{}, err
	}

	pub, ok := fields["PUB"]
	if !ok {
		return i2pkeys.I2PKeys{}, protocolErrorf("DEST REPLY missing PUB: %q", line)
	}
	priv, ok := fields["PRIV"]
	if !ok {
		return i2pkeys.I2PKeys{}, protocolErrorf("DEST REPLY missing PRIV: %q", line)
	}
	return i2pkeys.NewKeys(i2pkeys.I2PAddr(pub), priv), nil
}

// Address returns the "host:port" this control connection was dialed at, so
// callers needing a second control connection (STREAM CONNECT/ACCEPT each
// require their own socket, per spec §4.5/§4.6) know where to dial it.
func (c *Conn) Address() string {
	return c.config.Sam()
}
