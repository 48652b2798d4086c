package watcher

import (
	"net"
	"sync"
	"time"

	"github.com/go-i2p/go-sam-client/common"
	"github.com/go-i2p/go-sam-client/stream"
	"github.com/go-i2p/i2pkeys"
	"github.com/sirupsen/logrus"
)

// State is the watcher's supervisor state (spec §4.8).
type State int

const (
	Idle State = iota
	Running
	Rebuilding
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case Rebuilding:
		return "Rebuilding"
	default:
		return "Unknown"
	}
}

const (
	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second
)

// Watcher supervises one persistent Session/Listener pair, rebuilding both
// from the stored private key whenever Accept hits a fatal-session error.
// Because the key is supplied by the caller, the destination stays stable
// across rebuilds: peers keep reaching the same base-64 address.
type Watcher struct {
	samAddr string
	id      string
	keys    i2pkeys.I2PKeys
	style   common.SessionStyle
	options common.SAMOptions

	mu       sync.Mutex
	state    State
	session  *common.Session
	listener *stream.Listener
	backoff  time.Duration
}

// New builds a persistent Session using the supplied private key, creates a
// Listener on it, and enters Running.
func New(samAddr, id string, keys i2pkeys.I2PKeys, style common.SessionStyle, options common.SAMOptions) (*Watcher, error) {
	w := &Watcher{
		samAddr: samAddr,
		id:      id,
		keys:    keys,
		style:   style,
		options: options,
		backoff: initialBackoff,
	}
	if err := w.build(); err != nil {
		return nil, err
	}
	w.state = Running
	return w, nil
}

// build opens a fresh Session and Listener, replacing whatever this Watcher
// held before. Callers must hold w.mu.
func (w *Watcher) build() error {
	session, err := common.NewSession(w.samAddr, w.id, w.style, w.keys, w.options)
	if err != nil {
		return err
	}
	listener, err := stream.Listen(session)
	if err != nil {
		session.Close()
		return err
	}
	w.session = session
	w.listener = listener
	w.keys = session.Keys()
	return nil
}

// Accept delegates to the Listener's Accept. On a fatal-session error it
// transitions to Rebuilding, drops the listener and session, sleeps the
// current backoff, rebuilds fresh ones from the stored key, and retries the
// accept exactly once; a failure on that retry is surfaced as-is, with no
// further rebuild attempt.
func (w *Watcher) Accept() (net.Conn, error) {
	w.mu.Lock()
	listener := w.listener
	w.mu.Unlock()

	conn, err := listener.Accept()
	if err == nil {
		w.mu.Lock()
		w.backoff = initialBackoff
		w.mu.Unlock()
		return conn, nil
	}
	if !isFatal(err) {
		return nil, err
	}

	w.mu.Lock()
	w.state = Rebuilding
	wait := w.backoff
	w.backoff = nextBackoff(w.backoff)
	if w.session != nil {
		w.session.Close()
	}
	w.mu.Unlock()

	log.WithFields(logrus.Fields{"id": w.id, "state": Rebuilding, "backoff": wait}).
		Warn("session watcher rebuilding after fatal error")
	time.Sleep(wait)

	w.mu.Lock()
	if rebuildErr := w.build(); rebuildErr != nil {
		w.mu.Unlock()
		return nil, rebuildErr
	}
	w.state = Running
	listener = w.listener
	w.mu.Unlock()

	conn, err = listener.Accept()
	if err != nil {
		return nil, err
	}
	w.mu.Lock()
	w.backoff = initialBackoff
	w.mu.Unlock()
	return conn, nil
}

// State returns the watcher's current supervisor state.
func (w *Watcher) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Addr returns the stable I2P destination this watcher's session holds.
func (w *Watcher) Addr() common.I2PAddr {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.session.Addr()
}

// Close tears down the current session, releasing its tunnel.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = Idle
	if w.session == nil {
		return nil
	}
	return w.session.Close()
}

func nextBackoff(cur time.Duration) time.Duration {
	next := cur * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

// isFatal reports whether err is one of the fatal-session kinds that
// warrant rebuilding the Session/Listener pair (spec §4.8): Io, SamI2PError,
// SamInvalidId, ProtocolError. Everything else (CantReachPeer, Timeout,
// etc.) is a per-call failure that doesn't imply the control socket itself
// is broken.
func isFatal(err error) bool {
	samErr, ok := err.(*common.SAMError)
	if !ok {
		return false
	}
	switch samErr.Kind {
	case common.KindIO, common.KindI2PError, common.KindInvalidID, common.KindProtocol:
		return true
	default:
		return false
	}
}
