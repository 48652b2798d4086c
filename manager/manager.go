package manager

import (
	"net"
	"strings"
	"sync"

	"github.com/go-i2p/go-sam-client/common"
	"github.com/go-i2p/go-sam-client/stream"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// subsession records what AddSubsession handed back from the bridge for one
// caller-chosen key: the nickname it must quote on SESSION ADD/REMOVE and
// STREAM ACCEPT, and the listen port it was added with.
type subsession struct {
	nickname   string
	listenPort int
	style      common.SessionStyle
}

// SessionManager layers subsessions onto a PRIMARY session (spec §4.7). The
// subsession map is the manager's only mutable state and is safe for
// concurrent AddSubsession/Accept/RemoveSubsession calls from multiple
// goroutines. The primary session's control connection itself is not
// safe for concurrent command/reply exchanges, and the manager does not
// serialize the SESSION ADD/REMOVE calls it issues on it: concurrent
// AddSubsession/RemoveSubsession calls can interleave on that socket.
type SessionManager struct {
	primary *common.Session

	mu          sync.RWMutex
	subsessions map[string]subsession
}

// NewSessionManager wraps an already-created PRIMARY session. Callers are
// expected to have opened primary with common.NewSession(..., common.StylePrimary, ...).
func NewSessionManager(primary *common.Session) *SessionManager {
	return &SessionManager{
		primary:     primary,
		subsessions: make(map[string]subsession),
	}
}

// AddSubsession mints a fresh nickname, issues SESSION ADD on the primary
// session's control connection, and records the subsession under key. A
// second call with the same key overwrites the earlier entry silently; it
// is the caller's responsibility not to leak the bridge-side nickname this
// drops (spec §4.7).
func (m *SessionManager) AddSubsession(key string, listenPort int, style common.SessionStyle, options common.SAMOptions) error {
	nickname := randomNickname()

	if err := m.primary.AddSubsession(nickname, style, listenPort, options); err != nil {
		return err
	}

	m.mu.Lock()
	m.subsessions[key] = subsession{nickname: nickname, listenPort: listenPort, style: style}
	m.mu.Unlock()

	log.WithField("key", key).WithField("nickname", nickname).Debug("subsession added")
	return nil
}

// Accept opens a dedicated control connection and issues STREAM ACCEPT
// quoting the subsession's nickname, the same fresh-socket-per-accept model
// §4.6 uses for a plain session (spec §4.7). Returns one incoming
// connection; call Accept again for the next one.
func (m *SessionManager) Accept(key string) (net.Conn, error) {
	m.mu.RLock()
	sub, ok := m.subsessions[key]
	m.mu.RUnlock()
	if !ok {
		return nil, oops.Errorf("manager: unknown subsession key %q", key)
	}

	endpoint := subsessionEndpoint{primary: m.primary, nickname: sub.nickname}
	listener, err := stream.Listen(endpoint)
	if err != nil {
		return nil, err
	}
	return listener.Accept()
}

// RemoveSubsession issues SESSION REMOVE for key's nickname and drops it
// from the map. Not mandated by spec §9's open question on removal, but
// offered since the bridge supports it cleanly.
func (m *SessionManager) RemoveSubsession(key string) error {
	m.mu.Lock()
	sub, ok := m.subsessions[key]
	if ok {
		delete(m.subsessions, key)
	}
	m.mu.Unlock()
	if !ok {
		return oops.Errorf("manager: unknown subsession key %q", key)
	}

	return m.primary.RemoveSubsession(sub.nickname)
}

// Count returns the number of currently registered subsessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subsessions)
}

// randomNickname mints "sessid-<16 alphanum>" from a ULID, lower-cased and
// truncated to 16 characters: short enough to stay well under the bridge's
// nickname length tolerance. The 16 characters are the ULID's 10-character
// millisecond timestamp plus its first 6 random characters (30 random bits).
func randomNickname() string {
	id := ulid.Make()
	return "sessid-" + strings.ToLower(id.String())[:16]
}

// subsessionEndpoint adapts a subsession nickname to common.Endpoint so the
// stream package's Connect/Listen can be reused unmodified: a subsession has
// no Session object of its own, but shares the primary session's bridge
// address, destination, and name resolution, differing only in which
// nickname it quotes on STREAM CONNECT/ACCEPT.
type subsessionEndpoint struct {
	primary  *common.Session
	nickname string
}

func (e subsessionEndpoint) Address() string { return e.primary.Address() }
func (e subsessionEndpoint) ID() string      { return e.nickname }
func (e subsessionEndpoint) Addr() common.I2PAddr { return e.primary.Addr() }
func (e subsessionEndpoint) Resolve(name string) (common.I2PAddr, error) {
	return e.primary.Resolve(name)
}

var _ common.Endpoint = subsessionEndpoint{}
