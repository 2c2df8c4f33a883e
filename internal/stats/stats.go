// Package stats serves the headline counters shown on the home page.
//
// Counters come from the optional `site_stat` MySQL table when a stats DSN
// is configured; otherwise, or when the query fails, the defaults bundled
// with the site content are used.  Visitors always see numbers.
package stats

import (
	"context"

	"github.com/jmoiron/sqlx"
	"golang.org/x/text/message"

	"github.com/yanizio/jeevan/internal/cache"
	"github.com/yanizio/jeevan/internal/logger"
	"github.com/yanizio/jeevan/internal/metrics"
)

// Stat is one counter tile.  Display is the final text, e.g. "10,000+".
type Stat struct {
	Key     string `db:"key"     json:"key"     yaml:"key"`
	Label   string `db:"label"   json:"label"   yaml:"label"`
	Display string `db:"display" json:"display" yaml:"display"`
}

// Animated is a Stat plus its count-up frames.  Frames is empty when the
// display text has no number in it.
type Animated struct {
	Stat
	Target int      `json:"target"`
	Suffix string   `json:"suffix"`
	Frames []string `json:"frames"`
}

// Animate computes st's frames with p.
func Animate(st Stat, p *message.Printer) Animated {
	a := Animated{Stat: st}
	target, suffix, ok := Parse(st.Display)
	if !ok {
		return a
	}
	a.Target, a.Suffix = target, suffix
	a.Frames = Frames(target, suffix, p)
	return a
}

/*──────────────────────────── sources ──────────────────────────────────────*/

// Source lists counters from some backing store.
type Source interface {
	List(ctx context.Context) ([]Stat, error)
}

// SQLStore reads counters from the `site_stat` table.
type SQLStore struct{ db *sqlx.DB }

// NewSQLStore wraps an open pool.
func NewSQLStore(db *sqlx.DB) *SQLStore { return &SQLStore{db: db} }

// List returns every counter ordered by position.
func (s *SQLStore) List(ctx context.Context) ([]Stat, error) {
	const q = "SELECT `key`, label, display FROM site_stat ORDER BY position"
	var rows []Stat
	if err := s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

/*──────────────────────────── service ──────────────────────────────────────*/

// frameCacheSize bounds memoised frame sequences.
const frameCacheSize = 256

type frameKey struct{ locale, display string }

// Service picks between the store and the bundled defaults.
type Service struct {
	src      Source
	defaults []Stat
	frames   *cache.LRU[frameKey, Animated]
}

// NewService returns a Service.  src may be nil.
func NewService(src Source, defaults []Stat) *Service {
	return &Service{
		src:      src,
		defaults: defaults,
		frames:   cache.New[frameKey, Animated](frameCacheSize),
	}
}

// Animated returns All with count-up frames formatted for locale.
func (s *Service) Animated(ctx context.Context, locale string) []Animated {
	rows := s.All(ctx)
	out := make([]Animated, len(rows))
	var p *message.Printer
	for i, st := range rows {
		k := frameKey{locale, st.Display}
		if a, ok := s.frames.Get(k); ok {
			a.Stat = st
			out[i] = a
			continue
		}
		if p == nil {
			p = PrinterFor(locale)
		}
		a := Animate(st, p)
		s.frames.Add(k, a)
		out[i] = a
	}
	return out
}

// All returns the current counters, never failing.
func (s *Service) All(ctx context.Context) []Stat {
	if s.src == nil {
		return s.defaults
	}
	rows, err := s.src.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Warnw("stats query failed, using defaults", "err", err)
		metrics.StatsFallbackTotal.Inc()
		return s.defaults
	}
	if len(rows) == 0 {
		return s.defaults
	}
	return rows
}
