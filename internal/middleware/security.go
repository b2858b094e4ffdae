package middleware

import (
	"net/http"
	"strings"
)

// Security returns middleware that sets security headers on API
// responses. Only paths under applyPrefix get the headers: the
// Cache-Control and resource-policy values below are right for JSON
// endpoints but would break caching and embedding of the SPA's static
// assets, which are served outside the prefix.
func Security(applyPrefix string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, applyPrefix) {
				next.ServeHTTP(w, r)
				return
			}
			h := w.Header()
			h.Set("Cache-Control", "no-store")
			h.Set("Content-Security-Policy", "frame-ancestors 'none'")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			next.ServeHTTP(w, r)
		})
	}
}
