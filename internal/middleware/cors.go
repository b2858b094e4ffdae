package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS returns a middleware that allows any origin, method and header,
// with credentials. The SPA is served from the same origin in
// production but runs on a separate Vite dev server origin during
// development, so the policy is deliberately wide open.
//
// NOT suitable for production as-is: deployments should narrow
// AllowedOrigins to the real frontend origin(s).
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
