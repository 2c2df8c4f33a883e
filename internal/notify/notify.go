// internal/notify/notify.go
//
// Jeevan – transient alert banners.
//
// Context
//   Every user action answers with at most one banner: a success, error, or
//   info message.  Showing a new alert replaces whatever the visitor was
//   looking at, alerts disappear on their own after a short TTL, and a
//   click dismisses them early.  The Store keeps one slot per visitor in a
//   go-cache instance so expiry needs no bookkeeping of our own.
//
// Workflow
//   •  Show(visitor, type, msg)   → stores and returns the new Alert.
//   •  Current(visitor)           → alert still inside its TTL, if any.
//   •  Dismiss(visitor, id)       → removes it when the id still matches.
//
// Style
//   Two-space sentence spacing, Oxford comma, concise inline notes.
//
//------------------------------------------------------------------------------

package notify

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/yanizio/jeevan/internal/metrics"
)

// Type selects the banner styling.
type Type string

const (
	Success Type = "success"
	Error   Type = "error"
	Info    Type = "info"
)

// DefaultTTL matches the banner's auto-dismiss delay.
const DefaultTTL = 5 * time.Second

// Alert is one banner shown to one visitor.
type Alert struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Store holds the current alert per visitor.  Safe for concurrent use.
type Store struct {
	ttl   time.Duration
	cache *gocache.Cache
	now   func() time.Time
}

// NewStore returns a Store whose alerts expire after ttl.  A non-positive
// ttl means DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		ttl:   ttl,
		cache: gocache.New(ttl, 2*ttl),
		now:   time.Now,
	}
}

// TTL reports how long alerts stay visible.
func (s *Store) TTL() time.Duration { return s.ttl }

// Show replaces the visitor's alert with a new one.  An empty visitor key
// still yields an Alert for immediate rendering, but nothing is stored.
func (s *Store) Show(visitor string, t Type, msg string) Alert {
	a := Alert{
		ID:        uuid.NewString(),
		Type:      t,
		Message:   msg,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if visitor != "" {
		s.cache.Set(visitor, a, s.ttl)
	}
	metrics.AlertsShownTotal.WithLabelValues(string(t)).Inc()
	return a
}

// Current returns the visitor's alert while it is still visible.
func (s *Store) Current(visitor string) (Alert, bool) {
	v, ok := s.cache.Get(visitor)
	if !ok {
		return Alert{}, false
	}
	a, ok := v.(Alert)
	if !ok || !s.now().Before(a.ExpiresAt) {
		return Alert{}, false
	}
	return a, true
}

// Dismiss removes the visitor's alert if id names it.  A stale id (the
// alert was already replaced or expired) reports false and changes nothing.
func (s *Store) Dismiss(visitor, id string) bool {
	a, ok := s.Current(visitor)
	if !ok || a.ID != id {
		return false
	}
	s.cache.Delete(visitor)
	return true
}
