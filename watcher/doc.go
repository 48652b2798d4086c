// Package watcher supervises a Session/Listener pair (spec §4.8), rebuilding
// both on fatal control-connection failures while keeping the I2P
// destination stable across rebuilds: the caller's private key is replayed
// into every reconstructed Session, so peers keep reaching the same
// base-64 address through a restart.
package watcher
