package stream

import (
	"fmt"

	"github.com/go-i2p/go-sam-client/common"
)

// Connect resolves destination (a human-readable name, "ME", or a
// base64/base32 destination) against session's bridge and opens a STREAM
// CONNECT to it. destination is resolved through the session's own control
// connection; the STREAM CONNECT itself runs over a new, dedicated control
// connection to the same bridge, per spec §4.5.
func Connect(session common.Endpoint, destination string) (*Stream, error) {
	addr, err := session.Resolve(destination)
	if err != nil {
		return nil, err
	}
	return ConnectToAddr(session, addr)
}

// ConnectToAddr is Connect for a caller that already holds a resolved
// I2P destination, skipping the NAMING LOOKUP round trip.
func ConnectToAddr(session common.Endpoint, addr common.I2PAddr) (*Stream, error) {
	conn, err := common.Connect(session.Address())
	if err != nil {
		return nil, err
	}

	command := fmt.Sprintf("STREAM CONNECT ID=%s DESTINATION=%s SILENT=false\n", session.ID(), addr.Base64())
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

	return &Stream{
		conn:  conn,
		laddr: session.Addr(),
		raddr: addr,
	}, nil
}
