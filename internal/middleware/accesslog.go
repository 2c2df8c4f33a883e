// internal/middleware/accesslog.go
//
// Request-scoped logging.
//
// AccessLog derives a child logger tagged with chi's request id, stores it
// in the context for handlers (logger.FromContext), and writes one INFO
// line per request once the handler returns.  Place it after RequestID and
// RealIP so both values are populated.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.

package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/yanizio/jeevan/internal/logger"
)

// AccessLog returns the logging wrapper.
func AccessLog(base *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			log := base.With("req_id", chimw.GetReqID(r.Context()))
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r.WithContext(logger.WithContext(r.Context(), log)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.Infow("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"remote", r.RemoteAddr,
				"duration", time.Since(start),
			)
		})
	}
}
