// Package stream implements the SAMv3 streaming session style: reliable,
// TCP-like connections over I2P (spec §4.5, §4.6). A Stream is a net.Conn;
// a Listener is a net.Listener. Both ride on their own dedicated control
// connection, separate from the Session's — STREAM CONNECT and STREAM
// ACCEPT each require a fresh socket to the bridge quoting the session's ID,
// the control connection pivots to carrying opaque stream payload once the
// STREAM STATUS reply comes back RESULT=OK.
package stream
