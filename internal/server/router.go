// internal/server/router.go
//
// Router assembly.
//
// Middleware order matters: request id and real IP first so the access
// log can tag lines with both, recovery next so a panicking handler is
// logged, then security headers, the optional HTTPS redirect, the visitor
// cookie, and request metadata.  /metrics is mounted beside the
// components and skips the visitor cookie.

package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yanizio/jeevan/internal/component"
	"github.com/yanizio/jeevan/internal/middleware"
	"github.com/yanizio/jeevan/internal/requestinfo"
	"github.com/yanizio/jeevan/internal/session"
)

// Options configures NewRouter.
type Options struct {
	Log        *zap.SugaredLogger
	ForceHTTPS bool
	Geo        *requestinfo.Geo // nil disables geolocation
	Components []component.Component
}

// NewRouter builds the full handler tree.
func NewRouter(o Options) http.Handler {
	r := chi.NewRouter()
	r.Use(
		chimw.RequestID,
		chimw.RealIP,
		middleware.AccessLog(o.Log),
		chimw.Recoverer,
		middleware.Security,
		middleware.ForceHTTPS(o.ForceHTTPS),
	)

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(site chi.Router) {
		site.Use(session.Middleware, requestinfo.Enrich(o.Geo))
		component.Mount(site, o.Components...)
	})
	return r
}
