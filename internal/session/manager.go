package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	pkgauth "github.com/sokolink/sokolink-app/pkg/auth"
	"github.com/sokolink/sokolink-app/pkg/config"
	pkgerrors "github.com/sokolink/sokolink-app/pkg/errors"
)

// Manager is the in-process session collaborator. It mints JWT session
// tokens on sign-in and notifies subscribers on every change. Credential
// verification is mocked out: any well-formed email signs in.
type Manager struct {
	mu      sync.Mutex
	cfg     config.SessionConfig
	current *Session
	subs    map[int]func(*Session)
	nextSub int
	now     func() time.Time
}

func NewManager(cfg config.SessionConfig) (*Manager, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	return &Manager{
		cfg:  cfg,
		subs: map[int]func(*Session){},
		now:  time.Now,
	}, nil
}

// Current answers the one-shot presence query.
func (m *Manager) Current(ctx context.Context) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil, nil
	}
	s := *m.current
	return &s, nil
}

// OnChange subscribes to session transitions. The callback runs outside the
// manager's lock.
func (m *Manager) OnChange(fn func(*Session)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// SignIn mints a session token for the email and publishes the new session.
func (m *Manager) SignIn(ctx context.Context, email string) (*Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	token, err := pkgauth.MintSessionToken(m.cfg, m.now(), pkgauth.SessionTokenPayload{Email: email})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "minting session token")
	}

	next := &Session{Token: token, Email: email}

	m.mu.Lock()
	m.current = next
	subs := m.subscribersLocked()
	m.mu.Unlock()

	out := *next
	notify(subs, &out)
	return &out, nil
}

// SignOut clears the current session and publishes the absence.
func (m *Manager) SignOut(ctx context.Context) error {
	m.mu.Lock()
	if m.current == nil {
		m.mu.Unlock()
		return nil
	}
	m.current = nil
	subs := m.subscribersLocked()
	m.mu.Unlock()

	notify(subs, nil)
	return nil
}

// Validate checks a token string against the signing config.
func (m *Manager) Validate(token string) (*pkgauth.SessionClaims, error) {
	claims, err := pkgauth.ParseSessionToken(m.cfg, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid session token")
	}
	return claims, nil
}

func (m *Manager) subscribersLocked() []func(*Session) {
	out := make([]func(*Session), 0, len(m.subs))
	for _, fn := range m.subs {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func(*Session), s *Session) {
	for _, fn := range subs {
		var copyForSub *Session
		if s != nil {
			c := *s
			copyForSub = &c
		}
		fn(copyForSub)
	}
}
