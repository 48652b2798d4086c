// Package sam is a pure-Go client for the I2P SAM v3 bridge protocol: the
// text control protocol an I2P router exposes on 127.0.0.1:7656 for
// applications that want an anonymized destination without embedding a
// full router.
//
// The library is split by concern:
//
//	common   SAM wire parsing, control connection, Session (SESSION CREATE)
//	stream   Stream/Listener: net.Conn and net.Listener over STREAM CONNECT/ACCEPT
//	manager  SessionManager: SESSION ADD/REMOVE subsessions on a PRIMARY session
//	watcher  Watcher: rebuilds a Session/Listener pair across fatal control errors
//
// This root package re-exports the common constructors and types so most
// programs only need one import. Session lifetime is explicit: closing a
// Session's control connection is what tears down its I2P tunnel, so every
// constructor here should be paired with a deferred Close.
package sam
