package middleware

import "net/http"

const contentSecurityPolicy = "default-src 'self'; img-src 'self' data: https:; " +
	"script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; frame-ancestors 'none'"

type HeadersMiddleware struct {
	secure bool
}

// NewHeadersMiddleware sets the console's security headers. secure adds HSTS.
func NewHeadersMiddleware(secure bool) *HeadersMiddleware {
	return &HeadersMiddleware{secure: secure}
}

func (m *HeadersMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "same-origin")
		h.Set("Content-Security-Policy", contentSecurityPolicy)
		if m.secure {
			h.Set("Strict-Transport-Security", "max-age=31536000")
		}

		if req.Method == http.MethodOptions {
			w.Header().Set("Allow", "GET, POST, OPTIONS")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, req)
	})
}
