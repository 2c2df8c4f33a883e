// internal/session/session.go
//
// Jeevan – anonymous visitor identity.
//
// Context
//   Alert banners are scoped to one browser.  There are no accounts, so the
//   only identity is a random visitor id held in an HttpOnly cookie named
//   “jeevan_visitor”.  Middleware issues the cookie on first contact and
//   stores the id in the request context; handlers read it with
//   VisitorID.  The id carries no personal data.
//
// Style
//   Two-space sentence spacing, Oxford comma, terse inline notes.
//
//------------------------------------------------------------------------------

package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	cookieName = "jeevan_visitor"
	cookieTTL  = 30 * 24 * time.Hour
)

type ctxKey struct{}

// Middleware makes sure every request carries a visitor id, issuing a new
// cookie when the browser has none or sends a malformed one.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := fromCookie(r)
		if !ok {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     cookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				Secure:   r.TLS != nil,
				SameSite: http.SameSiteLaxMode,
				Expires:  time.Now().Add(cookieTTL),
			})
		}
		next.ServeHTTP(w, r.WithContext(WithVisitor(r.Context(), id)))
	})
}

// WithVisitor returns a copy of ctx carrying id.
func WithVisitor(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// VisitorID returns the id stored by Middleware, or "" when absent.
func VisitorID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// fromCookie accepts only well-formed UUIDs so arbitrary cookie values
// never become cache keys.
func fromCookie(r *http.Request) (string, bool) {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	u, err := uuid.Parse(c.Value)
	if err != nil {
		return "", false
	}
	return u.String(), true
}
