// Package common implements the SAMv3 control-connection protocol engine: the
// HELLO handshake, SESSION CREATE/ADD, STREAM CONNECT/ACCEPT and NAMING LOOKUP
// request/reply dialogue, reply parsing, the RESULT-to-error-kind mapping, and
// the Session type that wraps a handshaked control connection.
//
// Session creation requires the I2P router to build tunnels and can take
// anywhere from a few seconds to a few minutes; callers should use generous
// deadlines on the underlying connection rather than assuming LAN-like latency.
//
// Basic usage:
//
//	session, err := common.NewTransientSession("127.0.0.1:7656", "my-nick", common.StyleStream, common.DefaultOptions())
//	defer session.Close()
package common
