// internal/component/deps.go
//
// Shared collaborators and response helpers for components.
//
// Context
// -------
// Every component answers a browser form the same way: store one alert for
// the visitor, then redirect (303) so a reload never re-posts.  API
// clients, detected by `Accept: application/json`, get the same outcome
// as JSON instead.  Pages that must re-render in place (a rejected
// donation) go through RenderHome so the home page is assembled in one
// spot.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package component

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/yanizio/jeevan/internal/form"
	"github.com/yanizio/jeevan/internal/head"
	"github.com/yanizio/jeevan/internal/logger"
	"github.com/yanizio/jeevan/internal/message"
	"github.com/yanizio/jeevan/internal/notify"
	"github.com/yanizio/jeevan/internal/requestinfo"
	"github.com/yanizio/jeevan/internal/session"
	"github.com/yanizio/jeevan/internal/site"
	"github.com/yanizio/jeevan/internal/stats"
	"github.com/yanizio/jeevan/internal/validate"
	"github.com/yanizio/jeevan/internal/view"
)

// SessionExpired is shown when a form's CSRF token fails.
const SessionExpired = "Your session expired.  Please try again."

// Deps bundles what components need.  Every field is required.
type Deps struct {
	View      *view.Engine
	Site      *site.Content
	Stats     *stats.Service
	Alerts    *notify.Store
	Tokens    *form.Tokens
	Publisher message.Publisher
	Locale    string
}

// HomeState carries per-request form state into RenderHome.
type HomeState struct {
	Tab       string
	Donate    view.FormState
	Subscribe view.FormState
}

// RenderHome assembles and writes the home page.
func (d *Deps) RenderHome(w http.ResponseWriter, r *http.Request, status int, st HomeState) {
	ctx := r.Context()
	tok, err := d.Tokens.Generate()
	if err != nil {
		logger.FromContext(ctx).Errorw("csrf token", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := view.Home{
		Head:          d.head(),
		Site:          d.Site,
		Panels:        d.Site.Panels(st.Tab),
		Stats:         d.Stats.Animated(ctx, d.Locale),
		AlertTTL:      d.Alerts.TTL(),
		CSRF:          tok,
		Donate:        st.Donate,
		Subscribe:     st.Subscribe,
		FrameInterval: stats.FrameInterval,
	}
	if a, ok := d.Alerts.Current(session.VisitorID(ctx)); ok {
		data.Alert = &a
	}
	if info, ok := requestinfo.FromContext(ctx); ok {
		data.Visitor = info
	}

	if err := d.View.Render(w, status, "home", data); err != nil {
		logger.FromContext(ctx).Errorw("render home", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// head seeds title, description, and organisation structured data.
func (d *Deps) head() *head.Builder {
	h := head.New()
	h.SetTitle(d.Site.Title)
	h.Meta("description", d.Site.Tagline)
	h.Meta("theme-color", "#c62828")
	_ = h.JSONLD(map[string]string{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     d.Site.Title,
		"email":    d.Site.ContactEmail,
	})
	return h
}

// Flash stores an alert for the visitor and answers with a 303 to target,
// or with the alert as JSON when the client asked for JSON.
func (d *Deps) Flash(w http.ResponseWriter, r *http.Request, t notify.Type, msg, target string) {
	a := d.Alerts.Show(session.VisitorID(r.Context()), t, msg)
	if WantsJSON(r) {
		WriteJSON(w, http.StatusOK, a)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// CheckToken parses a browser form post and verifies its CSRF token.  On
// failure it answers and returns false.
func (d *Deps) CheckToken(w http.ResponseWriter, r *http.Request) bool {
	_, err := form.HandleSubmit(w, r, d.Tokens)
	switch {
	case err == nil:
		return true
	case errors.Is(err, form.ErrBadToken):
		d.Flash(w, r, notify.Error, SessionExpired, "/")
	default:
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
	}
	return false
}

/*──────────────────────────── JSON helpers ─────────────────────────────────*/

// WantsJSON reports whether the client prefers a JSON answer.
func WantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// WriteJSON encodes v with status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorBody is the JSON shape of every client error.
type ErrorBody struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
}

// WriteFieldError answers 422 with fe.
func WriteFieldError(w http.ResponseWriter, fe *validate.FieldError) {
	WriteJSON(w, http.StatusUnprocessableEntity, ErrorBody{
		Error:   fe.Kind.Code(),
		Field:   fe.Field,
		Reason:  fe.Reason(),
		Message: fe.Message,
	})
}

// WriteMalformed answers 400.
func WriteMalformed(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusBadRequest, ErrorBody{Error: "malformed", Message: msg})
}
