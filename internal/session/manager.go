package session

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/config"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/dto"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/repository"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/infrastructure/backend"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/pkg/jwt"
)

var (
	ErrNoPendingLogin = errors.New("no login is waiting for a verification code")
	ErrNoToken        = errors.New("backend returned no token")
	ErrRejected       = errors.New("backend rejected the new token")
)

const pendingLoginTTL = 10 * time.Minute

// LoginOutcome tells the login page where to go next.
type LoginOutcome int

const (
	LoggedIn LoginOutcome = iota
	TwoFactorRequired
)

// Manager owns session lifecycle: cookie, store, principal resolution and
// login/logout against the backend.
type Manager struct {
	store     Store
	auth      repository.AuthRepository
	inspector *jwt.TokenInspector
	cfg       config.SessionConfig
	log       *logrus.Logger
	now       func() time.Time

	mu       sync.RWMutex
	onLogout []func(sessionID string)
}

func NewManager(store Store, auth repository.AuthRepository, inspector *jwt.TokenInspector, cfg config.SessionConfig, log *logrus.Logger) *Manager {
	return &Manager{
		store:     store,
		auth:      auth,
		inspector: inspector,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

// OnLogout registers fn to run after a session logs out or is invalidated.
func (m *Manager) OnLogout(fn func(sessionID string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onLogout = append(m.onLogout, fn)
}

func (m *Manager) loggedOut(sessionID string) {
	m.mu.RLock()
	hooks := append([]func(string){}, m.onLogout...)
	m.mu.RUnlock()
	for _, fn := range hooks {
		fn(sessionID)
	}
}

func (m *Manager) newSession() *Session {
	now := m.now()
	return &Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		ExpiresAt: now.Add(m.cfg.TTL),
		dirty:     true,
	}
}

// Load returns the request's session, starting a fresh one when the cookie
// is missing, unknown or expired.
func (m *Manager) Load(r *http.Request) *Session {
	c, err := r.Cookie(m.cfg.CookieName)
	if err != nil || c.Value == "" {
		return m.newSession()
	}
	s, err := m.store.Get(r.Context(), c.Value)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			m.log.Warnf("Failed to load session: %+v", err)
		}
		return m.newSession()
	}
	return s
}

// Cookie writes the session cookie, sliding its expiry.
func (m *Manager) Cookie(w http.ResponseWriter, s *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    s.ID,
		Path:     "/",
		MaxAge:   int(m.cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// Save persists s when it changed during the request.
func (m *Manager) Save(ctx context.Context, s *Session) error {
	if !s.dirty {
		return nil
	}
	s.ExpiresAt = m.now().Add(m.cfg.TTL)
	if err := m.store.Save(ctx, s); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// Resolve works out who the session belongs to.
func (m *Manager) Resolve(ctx context.Context, s *Session) State {
	if s.Token == "" {
		return State{}
	}

	now := m.now()
	if m.inspector != nil && m.inspector.Expired(s.Token, now) {
		s.ClearAuth()
		return State{}
	}

	if s.Principal != nil && now.Sub(s.PrincipalAt) < m.cfg.PrincipalTTL {
		return authenticated(s.Principal)
	}

	resolveCtx, cancel := context.WithTimeout(ctx, m.cfg.ResolveTimeout)
	defer cancel()

	p, err := m.auth.Me(backend.WithToken(resolveCtx, s.Token))
	switch {
	case err == nil:
		s.Principal = p
		s.PrincipalAt = now
		s.dirty = true
		return authenticated(p)
	case backend.IsKind(err, backend.KindUnauthorized):
		s.ClearAuth()
		return State{}
	}

	m.log.Warnf("Failed to resolve session principal: %+v", err)
	if s.Principal != nil {
		return authenticated(s.Principal)
	}
	return State{Loading: true}
}

// Login runs the password step. Accounts with 2FA come back as
// TwoFactorRequired with the pending user kept on the session.
func (m *Manager) Login(ctx context.Context, s *Session, username, password string) (LoginOutcome, error) {
	result, err := m.auth.Login(ctx, dto.LoginRequest{Username: username, Password: password})
	if err != nil {
		return LoggedIn, err
	}

	if result.RequiresTwoFactor {
		s.PendingAuth = &PendingLogin{UserID: result.UserID, Username: username, CreatedAt: m.now()}
		s.dirty = true
		return TwoFactorRequired, nil
	}
	return LoggedIn, m.establish(ctx, s, result)
}

// VerifyLogin2FA completes a pending login with a one-time code.
func (m *Manager) VerifyLogin2FA(ctx context.Context, s *Session, code string) error {
	if s.PendingAuth == nil || m.now().Sub(s.PendingAuth.CreatedAt) > pendingLoginTTL {
		s.PendingAuth = nil
		s.dirty = true
		return ErrNoPendingLogin
	}

	result, err := m.auth.VerifyTwoFactor(ctx, dto.VerifyTwoFactorRequest{UserID: s.PendingAuth.UserID, Token: code})
	if err != nil {
		return err
	}
	return m.establish(ctx, s, result)
}

func (m *Manager) establish(ctx context.Context, s *Session, result *entity.AuthResult) error {
	if result.Token == "" {
		return ErrNoToken
	}

	s.Token = result.Token
	s.PendingAuth = nil
	s.dirty = true

	if result.User != nil {
		s.Principal = result.User
		s.PrincipalAt = m.now()
		return nil
	}

	s.Principal = nil
	if st := m.Resolve(ctx, s); !st.Authenticated && !st.Loading {
		return ErrRejected
	}
	return nil
}

// Logout tells the backend (best effort) and clears the session locally.
func (m *Manager) Logout(ctx context.Context, s *Session) {
	if s.Token != "" {
		if err := m.auth.Logout(backend.WithToken(ctx, s.Token)); err != nil {
			m.log.Warnf("Failed to log out from backend: %+v", err)
		}
	}
	s.ClearAuth()
	s.dirty = true
	m.loggedOut(s.ID)
}

// Invalidate is the backend client's 401 hook: the session carried by ctx
// loses its token and principal.
func (m *Manager) Invalidate(ctx context.Context) {
	s := FromContext(ctx)
	if s == nil || s.Token == "" {
		return
	}
	if backend.TokenFrom(ctx) != "" && backend.TokenFrom(ctx) != s.Token {
		return
	}
	s.ClearAuth()
	m.loggedOut(s.ID)
}

// Destroy removes a session from the store.
func (m *Manager) Destroy(ctx context.Context, s *Session) error {
	m.loggedOut(s.ID)
	return m.store.Delete(ctx, s.ID)
}
