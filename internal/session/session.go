package session

import (
	"context"
	"time"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/feedback"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/screen"
)

// PendingLogin is a login that passed the password step and waits for a 2FA code.
type PendingLogin struct {
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session is the per-browser state the console keeps server-side.
type Session struct {
	ID          string            `json:"id"`
	Token       string            `json:"token,omitempty"`
	Principal   *entity.Principal `json:"principal,omitempty"`
	PrincipalAt time.Time         `json:"principalAt,omitempty"`
	Language    string            `json:"language,omitempty"`
	Theme       string            `json:"theme,omitempty"`
	Toasts      feedback.Queue    `json:"toasts"`
	PendingAuth *PendingLogin     `json:"pendingAuth,omitempty"`
	// Registrations holds two-step registrations in progress, keyed by flow
	// ("radiologist" for the dialog, "self" for the public page).
	Registrations map[string]*screen.Registration `json:"registrations,omitempty"`
	CreatedAt     time.Time                       `json:"createdAt"`
	ExpiresAt     time.Time                       `json:"expiresAt"`

	dirty bool
}

// Touch marks the session for saving at the end of the request.
func (s *Session) Touch() { s.dirty = true }

func (s *Session) Dirty() bool { return s.dirty }

// ClearAuth drops the token and everything derived from it.
func (s *Session) ClearAuth() {
	if s.Token == "" && s.Principal == nil && s.PendingAuth == nil {
		return
	}
	s.Token = ""
	s.Principal = nil
	s.PrincipalAt = time.Time{}
	s.PendingAuth = nil
	s.Registrations = nil
	s.dirty = true
}

// Registration returns the flow's registration, creating an idle one.
func (s *Session) Registration(flow string) *screen.Registration {
	if s.Registrations == nil {
		s.Registrations = make(map[string]*screen.Registration)
	}
	r, ok := s.Registrations[flow]
	if !ok || r == nil {
		r = screen.NewRegistration()
		s.Registrations[flow] = r
	}
	return r
}

// Notify queues a toast.
func (s *Session) Notify(severity feedback.Severity, message, direction string) feedback.Event {
	s.dirty = true
	return s.Toasts.Push(severity, message, direction, time.Now())
}

// State is what gates and pages read: the resolved principal and role flags.
// Loading means the principal could not be resolved yet and a gate must
// neither render nor redirect.
type State struct {
	Principal     *entity.Principal
	Authenticated bool
	SuperAdmin    bool
	Loading       bool
}

func authenticated(p *entity.Principal) State {
	return State{Principal: p, Authenticated: true, SuperAdmin: p.SuperAdmin()}
}

type sessionKey struct{}

type stateKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}

func WithState(ctx context.Context, st State) context.Context {
	return context.WithValue(ctx, stateKey{}, st)
}

func StateFromContext(ctx context.Context) State {
	st, _ := ctx.Value(stateKey{}).(State)
	return st
}
