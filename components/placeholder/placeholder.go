// components/placeholder/placeholder.go
//
// Jeevan placeholder component – actions the page offers before the
// feature behind them exists: search, login, service cards, and story
// sharing.  Each answers with an alert so the visitor knows the click
// registered.
//
//------------------------------------------------------------------------------

package placeholder

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/jeevan/internal/component"
	"github.com/yanizio/jeevan/internal/metrics"
	"github.com/yanizio/jeevan/internal/notify"
)

// User-facing messages.
const (
	MsgEmptySearch = "Please enter a search term"
	MsgLogin       = "Login functionality will be implemented soon!"
	MsgShareStory  = "Story sharing form will open soon! Thank you for your interest."
)

// service describes what a service card does when clicked.  A non-empty
// redirect skips the alert.
type service struct {
	kind     notify.Type
	message  string
	redirect string
}

var services = map[string]service{
	"looking":     {kind: notify.Info, message: "Redirecting to blood search page..."},
	"donate":      {redirect: "/#donate"},
	"appointment": {kind: notify.Info, message: "Appointment booking will be available soon!"},
	"nearby":      {kind: notify.Info, message: "Finding nearby blood drives..."},
}

// Compile-time assertion: *Component satisfies component.Component.
var _ component.Component = (*Component)(nil)

// Component serves the not-yet-built features.
type Component struct {
	deps *component.Deps
}

// New returns the placeholder component.
func New(d *component.Deps) *Component { return &Component{deps: d} }

// Name returns the canonical component key.
func (c *Component) Name() string { return "placeholder" }

// Routes adds the endpoints.
func (c *Component) Routes(r chi.Router) {
	r.Post("/search", c.search)
	r.Post("/login", c.login)
	r.Post("/services/{service}", c.service)
	r.Post("/stories/share", c.shareStory)
}

func (c *Component) search(w http.ResponseWriter, r *http.Request) {
	if !c.deps.CheckToken(w, r) {
		return
	}
	term := strings.TrimSpace(r.PostForm.Get("q"))
	if term == "" {
		c.deps.Flash(w, r, notify.Error, MsgEmptySearch, "/")
		return
	}
	metrics.PlaceholderHitsTotal.WithLabelValues("search").Inc()
	c.deps.Flash(w, r, notify.Info,
		`Searching for: "`+term+`"... This feature will be implemented soon!`, "/")
}

func (c *Component) login(w http.ResponseWriter, r *http.Request) {
	if !c.deps.CheckToken(w, r) {
		return
	}
	metrics.PlaceholderHitsTotal.WithLabelValues("login").Inc()
	c.deps.Flash(w, r, notify.Info, MsgLogin, "/")
}

func (c *Component) service(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "service")
	svc, ok := services[name]
	if !ok {
		http.NotFound(w, r)
		return
	}
	if !c.deps.CheckToken(w, r) {
		return
	}
	metrics.PlaceholderHitsTotal.WithLabelValues("service_" + name).Inc()
	if svc.redirect != "" {
		if component.WantsJSON(r) {
			component.WriteJSON(w, http.StatusOK, map[string]string{"redirect": svc.redirect})
			return
		}
		http.Redirect(w, r, svc.redirect, http.StatusSeeOther)
		return
	}
	c.deps.Flash(w, r, svc.kind, svc.message, "/#services")
}

func (c *Component) shareStory(w http.ResponseWriter, r *http.Request) {
	if !c.deps.CheckToken(w, r) {
		return
	}
	metrics.PlaceholderHitsTotal.WithLabelValues("share_story").Inc()
	c.deps.Flash(w, r, notify.Success, MsgShareStory, "/")
}
