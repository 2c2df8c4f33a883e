//
//  internal/requestinfo/requestinfo.go
//
//  Per-request visitor metadata: browser fingerprint, client IP, coarse
//  geolocation, and preferred language.  Info is a plain value with no
//  handles inside, so it is safe to log or JSON-encode.
//
//  Dependencies
//  • github.com/avct/uasurfer          (UA parsing)
//  • github.com/oschwald/geoip2-golang (MaxMind lookup)
//

package requestinfo

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/oschwald/geoip2-golang"
)

// Info is what Enrich attaches to each request.
type Info struct {
	IP       net.IP    `json:"ip"`
	Browser  string    `json:"browser"`
	Version  string    `json:"version"`
	OS       string    `json:"os"`
	Device   string    `json:"device"` // "Desktop", "Mobile", "Tablet", "Other"
	IsBot    bool      `json:"is_bot"`
	Lang     string    `json:"lang"`    // first Accept-Language tag
	Country  string    `json:"country"` // ISO code, empty when unknown
	City     string    `json:"city"`
	Received time.Time `json:"received"`
}

//
//  -----------------------------
//  Geolocation
//  -----------------------------
//

// cityReader is the slice of *geoip2.Reader we use.
type cityReader interface {
	City(ip net.IP) (*geoip2.City, error)
	Close() error
}

// Geo wraps a MaxMind GeoLite2-City handle.  It is safe for concurrent
// reads, which is all we ever perform.  A nil *Geo resolves nothing.
type Geo struct{ r cityReader }

// OpenGeo opens the database at path.
func OpenGeo(path string) (*Geo, error) {
	r, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open GeoLite2 DB: %w", err)
	}
	return &Geo{r: r}, nil
}

// Lookup returns the ISO country code and English city name for ip.
func (g *Geo) Lookup(ip net.IP) (country, city string) {
	if g == nil || g.r == nil || ip == nil {
		return "", ""
	}
	rec, err := g.r.City(ip)
	if err != nil {
		return "", ""
	}
	return rec.Country.IsoCode, rec.City.Names["en"]
}

// Close releases the reader.
func (g *Geo) Close() error {
	if g == nil || g.r == nil {
		return nil
	}
	return g.r.Close()
}

//
//  -----------------------------
//  Context helpers
//  -----------------------------
//

type ctxKey struct{}

// WithInfo stores info on ctx.
func WithInfo(ctx context.Context, info Info) context.Context {
	return context.WithValue(ctx, ctxKey{}, info)
}

// FromContext returns the Info stored by Enrich.
func FromContext(ctx context.Context) (Info, bool) {
	v, ok := ctx.Value(ctxKey{}).(Info)
	return v, ok
}
