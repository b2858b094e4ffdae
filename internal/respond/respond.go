package respond

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	appmiddleware "github.com/hellospa/backend/internal/middleware"
)

// writeProblem renders an RFC 9457 problem document. Used for responses
// produced outside huma's operation pipeline: router-level 404/405 and
// recovered panics.
func writeProblem(w http.ResponseWriter, status int, detail string) {
	body, err := json.Marshal(&huma.ErrorModel{
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	})
	if err != nil {
		http.Error(w, http.StatusText(status), status)
		return
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// NotFoundHandler responds to paths no route claims. Only mounted when
// the SPA catch-all is absent.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, http.StatusNotFound, "resource not found")
	}
}

// MethodNotAllowedHandler responds to known paths hit with an
// unsupported method.
func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// InternalServerError renders the generic 500 problem response for
// handlers that write errors outside huma's operation pipeline.
func InternalServerError(w http.ResponseWriter) {
	writeProblem(w, http.StatusInternalServerError, "internal server error")
}

// Recoverer converts handler panics into a 500 problem response with
// the stack logged and no internals leaked to the client.
// http.ErrAbortHandler is re-raised per net/http convention.
func Recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					appmiddleware.LogError(r.Context(), "panic recovered",
						fmt.Errorf("%v", rec),
						zap.ByteString("stack", debug.Stack()),
					)
					InternalServerError(w)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
