package middleware

import (
	"net/http"
	"net/url"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/pkg/response"
)

// GateMiddleware decides between render, redirect and the loading
// placeholder. It never calls the gated handler before deciding.
type GateMiddleware struct {
	loading http.HandlerFunc
}

// NewGateMiddleware takes the handler that renders the placeholder shown
// while the session principal is still being resolved.
func NewGateMiddleware(loading http.HandlerFunc) *GateMiddleware {
	return &GateMiddleware{loading: loading}
}

// RequireAuth lets authenticated sessions through and sends anonymous ones
// to /login. While the session is loading it renders the placeholder and
// does not redirect.
func (g *GateMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.NoStore(w)
		st := GetState(r.Context())

		if st.Loading {
			if response.WantsJSON(r) {
				response.Error(w, http.StatusServiceUnavailable, "Session is still loading", nil)
				return
			}
			g.loading(w, r)
			return
		}

		if !st.Authenticated {
			if response.WantsJSON(r) {
				response.Unauthorized(w, "")
				return
			}
			http.Redirect(w, r, LoginURL(r.URL.RequestURI()), http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireSuperAdmin must run after RequireAuth. Authenticated users without
// the super-admin flag go to the dashboard.
func (g *GateMiddleware) RequireSuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !GetState(r.Context()).SuperAdmin {
			if response.WantsJSON(r) {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}
			http.Redirect(w, r, "/dashboard", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LoginURL is /login carrying where to return after signing in.
func LoginURL(next string) string {
	if next == "" || next == "/" || next == "/dashboard" {
		return "/login"
	}
	return "/login?" + url.Values{"next": {next}}.Encode()
}
