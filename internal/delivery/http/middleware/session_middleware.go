package middleware

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/locale"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/session"
)

// SessionMiddleware loads the browser's session, resolves who it belongs to
// and puts session, state and localizer in the request context. The session
// is saved and its cookie refreshed just before the response starts.
type SessionMiddleware struct {
	manager *session.Manager
	catalog *locale.Catalog
	log     *logrus.Logger
}

func NewSessionMiddleware(manager *session.Manager, catalog *locale.Catalog, log *logrus.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		manager: manager,
		catalog: catalog,
		log:     log,
	}
}

func (m *SessionMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := m.manager.Load(r)

		lang := m.catalog.Negotiate(s.Language, r.Header.Get("Accept-Language"))
		ctx := session.WithSession(r.Context(), s)
		ctx = locale.WithLocalizer(ctx, m.catalog.Localizer(lang))

		st := m.manager.Resolve(ctx, s)
		ctx = session.WithState(ctx, st)

		sw := &sessionWriter{ResponseWriter: w}
		sw.commit = func() {
			m.manager.Cookie(w, s)
			if err := m.manager.Save(context.WithoutCancel(ctx), s); err != nil {
				m.log.Warnf("Failed to save session: %+v", err)
			}
		}

		next.ServeHTTP(sw, r.WithContext(ctx))
		sw.flush()
	})
}

// sessionWriter runs commit once, before the first header or body byte.
type sessionWriter struct {
	http.ResponseWriter
	commit    func()
	committed bool
}

func (w *sessionWriter) flush() {
	if !w.committed {
		w.committed = true
		w.commit()
	}
}

func (w *sessionWriter) WriteHeader(status int) {
	w.flush()
	w.ResponseWriter.WriteHeader(status)
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	w.flush()
	return w.ResponseWriter.Write(b)
}

// GetSession returns the request's session. It is nil outside SessionMiddleware.
func GetSession(ctx context.Context) *session.Session {
	return session.FromContext(ctx)
}

// GetState returns the resolved session state.
func GetState(ctx context.Context) session.State {
	return session.StateFromContext(ctx)
}

// GetLocalizer returns the request's localizer.
func GetLocalizer(ctx context.Context) *locale.Localizer {
	return locale.FromContext(ctx)
}
