package session

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/config"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/dto"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/feedback"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/infrastructure/backend"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/repository"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/pkg/jwt"
)

type fakeAuth struct {
	me          func(ctx context.Context) (*entity.Principal, error)
	login       func(body dto.LoginRequest) (*entity.AuthResult, error)
	verify      func(body dto.VerifyTwoFactorRequest) (*entity.AuthResult, error)
	meCalls     int
	logoutCalls int
	lastToken   string
}

func (f *fakeAuth) Login(_ context.Context, body interface{}) (*entity.AuthResult, error) {
	return f.login(body.(dto.LoginRequest))
}

func (f *fakeAuth) Me(ctx context.Context) (*entity.Principal, error) {
	f.meCalls++
	f.lastToken = backend.TokenFrom(ctx)
	return f.me(ctx)
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logoutCalls++
	f.lastToken = backend.TokenFrom(ctx)
	return &backend.Error{Kind: backend.KindNetwork, Message: "down"}
}

func (f *fakeAuth) Register(context.Context, interface{}) (*entity.Registration, error) {
	return nil, nil
}

func (f *fakeAuth) VerifyTwoFactor(_ context.Context, body interface{}) (*entity.AuthResult, error) {
	return f.verify(body.(dto.VerifyTwoFactorRequest))
}

func (f *fakeAuth) ForgotPassword(context.Context, interface{}) error { return nil }

func (f *fakeAuth) ResetPassword(context.Context, interface{}) error { return nil }

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func sessionConfig() config.SessionConfig {
	return config.SessionConfig{
		CookieName:     "radlab_session",
		TTL:            time.Hour,
		ResolveTimeout: time.Second,
		PrincipalTTL:   time.Minute,
	}
}

func newManager(auth *fakeAuth) *Manager {
	return NewManager(NewMemoryStore(), auth, jwt.NewTokenInspector(""), sessionConfig(), quietLogger())
}

func token(t *testing.T, exp time.Time) string {
	t.Helper()
	s, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.RegisteredClaims{
		ExpiresAt: gojwt.NewNumericDate(exp),
	}).SignedString([]byte("backend"))
	require.NoError(t, err)
	return s
}

func TestResolve_NoToken(t *testing.T) {
	auth := &fakeAuth{}
	st := newManager(auth).Resolve(context.Background(), &Session{})
	assert.Equal(t, State{}, st)
	assert.Equal(t, 0, auth.meCalls)
}

func TestResolve_ExpiredTokenClears(t *testing.T) {
	auth := &fakeAuth{}
	s := &Session{Token: token(t, time.Now().Add(-time.Minute)), Principal: &entity.Principal{ID: "u"}}

	st := newManager(auth).Resolve(context.Background(), s)
	assert.False(t, st.Authenticated)
	assert.Empty(t, s.Token)
	assert.Nil(t, s.Principal)
	assert.Equal(t, 0, auth.meCalls)
}

func TestResolve_FetchesAndCachesPrincipal(t *testing.T) {
	auth := &fakeAuth{me: func(context.Context) (*entity.Principal, error) {
		return &entity.Principal{ID: "u", Role: "super_admin"}, nil
	}}
	m := newManager(auth)
	tok := token(t, time.Now().Add(time.Hour))
	s := &Session{Token: tok}

	st := m.Resolve(context.Background(), s)
	assert.True(t, st.Authenticated)
	assert.True(t, st.SuperAdmin)
	assert.Equal(t, tok, auth.lastToken)

	m.Resolve(context.Background(), s)
	assert.Equal(t, 1, auth.meCalls, "cached principal is reused")
}

func TestResolve_UnauthorizedClears(t *testing.T) {
	auth := &fakeAuth{me: func(context.Context) (*entity.Principal, error) {
		return nil, &backend.Error{Kind: backend.KindUnauthorized, Status: 401}
	}}
	s := &Session{Token: "opaque"}

	st := newManager(auth).Resolve(context.Background(), s)
	assert.False(t, st.Authenticated)
	assert.False(t, st.Loading)
	assert.Empty(t, s.Token)
}

func TestResolve_BackendDownIsLoading(t *testing.T) {
	auth := &fakeAuth{me: func(context.Context) (*entity.Principal, error) {
		return nil, &backend.Error{Kind: backend.KindNetwork}
	}}
	m := newManager(auth)

	st := m.Resolve(context.Background(), &Session{Token: "opaque"})
	assert.True(t, st.Loading)
	assert.False(t, st.Authenticated)

	// A stale cached principal is still good enough.
	s := &Session{Token: "opaque", Principal: &entity.Principal{ID: "u"}, PrincipalAt: time.Now().Add(-time.Hour)}
	st = m.Resolve(context.Background(), s)
	assert.True(t, st.Authenticated)
	assert.False(t, st.Loading)
}

func TestLogin_Direct(t *testing.T) {
	auth := &fakeAuth{login: func(body dto.LoginRequest) (*entity.AuthResult, error) {
		assert.Equal(t, "alex", body.Username)
		return &entity.AuthResult{Token: "t1", User: &entity.Principal{ID: "u", Role: "admin"}}, nil
	}}
	s := &Session{}

	outcome, err := newManager(auth).Login(context.Background(), s, "alex", "pw")
	require.NoError(t, err)
	assert.Equal(t, LoggedIn, outcome)
	assert.Equal(t, "t1", s.Token)
	assert.Equal(t, "u", s.Principal.ID)
	assert.True(t, s.Dirty())
}

func TestLogin_TwoFactor(t *testing.T) {
	auth := &fakeAuth{
		login: func(dto.LoginRequest) (*entity.AuthResult, error) {
			return &entity.AuthResult{RequiresTwoFactor: true, UserID: "U"}, nil
		},
		verify: func(body dto.VerifyTwoFactorRequest) (*entity.AuthResult, error) {
			assert.Equal(t, "U", body.UserID)
			assert.Equal(t, "123456", body.Token)
			return &entity.AuthResult{Token: "t2", User: &entity.Principal{ID: "U"}}, nil
		},
	}
	m := newManager(auth)
	s := &Session{}

	outcome, err := m.Login(context.Background(), s, "alex", "pw")
	require.NoError(t, err)
	assert.Equal(t, TwoFactorRequired, outcome)
	assert.Empty(t, s.Token)
	require.NotNil(t, s.PendingAuth)

	require.NoError(t, m.VerifyLogin2FA(context.Background(), s, "123456"))
	assert.Equal(t, "t2", s.Token)
	assert.Nil(t, s.PendingAuth)

	assert.ErrorIs(t, m.VerifyLogin2FA(context.Background(), s, "123456"), ErrNoPendingLogin)
}

func TestLogout_BestEffort(t *testing.T) {
	auth := &fakeAuth{}
	m := newManager(auth)
	var forgotten string
	m.OnLogout(func(id string) { forgotten = id })

	s := &Session{ID: "s1", Token: "t", Principal: &entity.Principal{ID: "u"}}
	m.Logout(context.Background(), s)

	assert.Equal(t, 1, auth.logoutCalls)
	assert.Equal(t, "t", auth.lastToken)
	assert.Empty(t, s.Token)
	assert.Equal(t, "s1", forgotten)
}

func TestManager_LoadSaveRoundTrip(t *testing.T) {
	m := newManager(&fakeAuth{})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	s := m.Load(r)
	require.NotEmpty(t, s.ID)
	s.Language = "ar"
	s.Notify(feedback.SeveritySuccess, "saved", "rtl")
	require.NoError(t, m.Save(context.Background(), s))
	assert.False(t, s.Dirty())

	w := httptest.NewRecorder()
	m.Cookie(w, s)
	cookie := w.Result().Cookies()[0]
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookie)
	loaded := m.Load(r)
	assert.Equal(t, s.ID, loaded.ID)
	assert.Equal(t, "ar", loaded.Language)
	assert.Equal(t, 1, loaded.Toasts.Len())

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "radlab_session", Value: "unknown"})
	assert.NotEqual(t, "unknown", m.Load(r).ID)
}

func TestInvalidate_ViaBackendHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":"error","message":"jwt expired"}`))
	}))
	defer srv.Close()

	client := backend.NewClient(config.BackendConfig{BaseURL: srv.URL, Timeout: time.Second}, quietLogger())
	m := NewManager(NewMemoryStore(), repository.NewAuthRepository(client), jwt.NewTokenInspector(""), sessionConfig(), quietLogger())
	client.OnUnauthorized(m.Invalidate)

	s := &Session{ID: "s1", Token: "t", Principal: &entity.Principal{ID: "u"}}
	ctx := backend.WithToken(WithSession(context.Background(), s), s.Token)
	doctors := backend.NewCollection[entity.Doctor](client, "/doctors", "doctors")

	_, err := doctors.List(ctx, nil)
	assert.True(t, backend.IsKind(err, backend.KindUnauthorized))
	assert.Empty(t, s.Token)
	assert.Nil(t, s.Principal)
}
