// internal/requestinfo/middleware.go
//
// HTTP middleware that enriches each request with Info.
//
/*
Context
--------
This handler sits after request-id, real-IP, and access logging.  For every
request it:

  1. Parses the User-Agent header and Accept-Language list.
  2. Extracts the client IP.  chi's RealIP has already rewritten RemoteAddr
     from X-Forwarded-For or X-Real-IP when present.
  3. Performs a GeoLite2 lookup when a database is configured.
  4. Stores Info in the request context so handlers and the message
     publisher can read it without reparsing.

Notes
-----
  • Look-ups are read-only, so the middleware is safe under concurrency.
  • Oxford commas, two spaces after periods.  No em dash.
*/
package requestinfo

import (
	"net"
	"net/http"
	"time"

	"github.com/yanizio/jeevan/internal/logger"
)

/*──────────────────────────── middleware ───────────────────────────────────*/

// Enrich returns middleware that attaches Info.  geo may be nil.
func Enrich(geo *Geo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a := parseAgent(r.UserAgent())
			ip := clientIP(r)
			country, city := geo.Lookup(ip)

			info := Info{
				IP:       ip,
				Browser:  a.Browser,
				Version:  a.Version,
				OS:       a.OS,
				Device:   a.Device,
				IsBot:    a.IsBot,
				Lang:     primaryLang(r.Header.Get("Accept-Language")),
				Country:  country,
				City:     city,
				Received: time.Now().UTC(),
			}

			logger.FromContext(r.Context()).Debugw("request info",
				"ip", info.IP,
				"country", info.Country,
				"browser", info.Browser,
				"device", info.Device,
				"bot", info.IsBot,
				"path", r.URL.Path,
			)

			next.ServeHTTP(w, r.WithContext(WithInfo(r.Context(), info)))
		})
	}
}

/*──────────────────────────── client IP helper ─────────────────────────────*/

// clientIP parses r.RemoteAddr, which may or may not carry a port.
func clientIP(r *http.Request) net.IP {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return net.ParseIP(host)
	}
	return net.ParseIP(r.RemoteAddr)
}
