// components/home/home.go
//
// Jeevan home component – landing page, emergency guidance, counters, and
// alert dismissal.
//
//------------------------------------------------------------------------------

package home

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/jeevan/internal/component"
	"github.com/yanizio/jeevan/internal/session"
	"github.com/yanizio/jeevan/internal/stats"
)

// Compile-time assertion: *Component satisfies component.Component.
var _ component.Component = (*Component)(nil)

// Component serves the landing page.
type Component struct {
	deps *component.Deps
}

// New returns the home component.
func New(d *component.Deps) *Component { return &Component{deps: d} }

/*────────────────── component.Component methods ───────────────────────────*/

// Name returns the canonical component key.
func (c *Component) Name() string { return "home" }

// Routes adds the page and API endpoints.
func (c *Component) Routes(r chi.Router) {
	r.Get("/", c.index)
	r.Get("/emergency", c.emergency)
	r.Get("/api/stats", c.statsJSON)
	r.Post("/alerts/{id}/dismiss", c.dismiss)
}

/*──────────────────────────── Handlers ─────────────────────────────────────*/

func (c *Component) index(w http.ResponseWriter, r *http.Request) {
	c.deps.RenderHome(w, r, http.StatusOK, component.HomeState{Tab: r.URL.Query().Get("tab")})
}

func (c *Component) emergency(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(c.deps.Site.Emergency))
}

type statsResponse struct {
	IntervalMS int64            `json:"intervalMs"`
	Stats      []stats.Animated `json:"stats"`
}

func (c *Component) statsJSON(w http.ResponseWriter, r *http.Request) {
	component.WriteJSON(w, http.StatusOK, statsResponse{
		IntervalMS: stats.FrameInterval.Milliseconds(),
		Stats:      c.deps.Stats.Animated(r.Context(), c.deps.Locale),
	})
}

// dismiss is a no-op for stale ids; the visitor lands back on the page
// either way.
func (c *Component) dismiss(w http.ResponseWriter, r *http.Request) {
	if !c.deps.CheckToken(w, r) {
		return
	}
	ok := c.deps.Alerts.Dismiss(session.VisitorID(r.Context()), chi.URLParam(r, "id"))
	if component.WantsJSON(r) {
		component.WriteJSON(w, http.StatusOK, map[string]bool{"dismissed": ok})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
