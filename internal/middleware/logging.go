package middleware

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"sync"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hellospa/backend/internal/common"
)

const cloudTraceHeader = "X-Cloud-Trace-Context"

// Header format: TRACE_ID/SPAN_ID with an optional ;o= sampling flag.
var traceHeaderRe = regexp.MustCompile(`^([0-9a-fA-F]+)/(\d+)(?:;o=(\d))?$`)

var (
	projectIDOnce   sync.Once
	cachedProjectID string
)

// ctxLoggerKey stores the request-specific logger in context.
type ctxLoggerKey struct{}

// RequestLogger enriches the request context with a zap logger carrying
// the request ID and, when running on Cloud Run, the Cloud Trace
// resource so log lines correlate with traces in the console.
func RequestLogger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := common.Logger()

			if reqID := chimiddleware.GetReqID(r.Context()); reqID != "" {
				logger = logger.With(zap.String("requestId", reqID))
			}
			if trace := traceResource(r.Header.Get(cloudTraceHeader)); trace != "" {
				logger = logger.With(zap.String("logging.googleapis.com/trace", trace))
			}

			ctx := context.WithValue(r.Context(), ctxLoggerKey{}, logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccessLogger writes one structured summary line per request using the
// request-scoped logger.
func AccessLogger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			LoggerFromContext(r.Context()).Info(
				"request completed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

// LoggerFromContext returns the request-scoped logger if present,
// otherwise the global logger.
func LoggerFromContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return common.Logger()
	}
	if l, ok := ctx.Value(ctxLoggerKey{}).(*zap.Logger); ok && l != nil {
		return l
	}
	return common.Logger()
}

// LogInfo writes an informational message using the request-aware logger.
func LogInfo(ctx context.Context, msg string, fields ...zap.Field) {
	LoggerFromContext(ctx).Info(msg, fields...)
}

// LogWarn writes a warning message using the request-aware logger.
func LogWarn(ctx context.Context, msg string, fields ...zap.Field) {
	LoggerFromContext(ctx).Warn(msg, fields...)
}

// LogError writes an error message using the request-aware logger and
// appends the error field when provided.
func LogError(ctx context.Context, msg string, err error, fields ...zap.Field) {
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	LoggerFromContext(ctx).Error(msg, fields...)
}

// traceResource builds the Cloud Logging trace resource name from the
// incoming trace header. Empty when the header is absent or malformed,
// or when no project ID is configured.
func traceResource(header string) string {
	projectID := resolveProjectID()
	if projectID == "" {
		return ""
	}
	matches := traceHeaderRe.FindStringSubmatch(header)
	if len(matches) != 4 {
		return ""
	}
	return fmt.Sprintf("projects/%s/traces/%s", projectID, matches[1])
}

func resolveProjectID() string {
	projectIDOnce.Do(func() {
		cachedProjectID = os.Getenv("GOOGLE_CLOUD_PROJECT")
	})
	return cachedProjectID
}
