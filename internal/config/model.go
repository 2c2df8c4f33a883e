// internal/config/model.go
//
// Typed configuration model for Jeevan.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                          – dotenv values,
//   • `conf/global.yaml`                       – primary static file,
//   • `JEEVAN_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with `vault:` is resolved through Vault
// *before* unmarshalling, so the model never stores Vault URIs.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Durations are written as Go duration strings ("5s", "2h").
//   • Oxford commas, two spaces after periods.  No em-dash.

package config

import "time"

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr      string        `koanf:"listen_addr"      validate:"required,hostname_port"`
	ForceHTTPS      bool          `koanf:"force_https"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gte=0"`
}

// Alerts controls the transient notification banner.
type Alerts struct {
	// TTL is how long an undismissed alert stays visible.
	TTL time.Duration `koanf:"ttl" validate:"gt=0"`
}

// CSRF holds the HMAC key for form tokens.  An empty key makes the server
// generate an ephemeral one at boot.
type CSRF struct {
	Key    string        `koanf:"key"`
	MaxAge time.Duration `koanf:"max_age" validate:"gt=0"`
}

// Database points at the optional MySQL schema holding the site counters.
// When StatsDSN is empty the built-in site content supplies them.
type Database struct {
	StatsDSN string `koanf:"stats_dsn"`
}

// GeoIP locates the optional MaxMind GeoLite2-City database.
type GeoIP struct {
	DBPath string `koanf:"db_path"`
}

// Tracing toggles the stdout OpenTelemetry exporter.
type Tracing struct {
	Enabled     bool   `koanf:"enabled"`
	ServiceName string `koanf:"service_name" validate:"required_if=Enabled true"`
}

// Site points at the content file and display locale.  An empty
// ContentPath uses the copy bundled with the binary.
type Site struct {
	ContentPath string `koanf:"content_path"`
	Locale      string `koanf:"locale"`
}

// Log selects the minimum zap level.
type Log struct {
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
}

// Paths is resolved at runtime, never set in YAML or env.
type Paths struct {
	Root string // JEEVAN_ROOT or discovered parent
}

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Alerts   Alerts   `koanf:"alerts"`
	CSRF     CSRF     `koanf:"csrf"`
	Database Database `koanf:"database"`
	GeoIP    GeoIP    `koanf:"geoip"`
	Tracing  Tracing  `koanf:"tracing"`
	Site     Site     `koanf:"site"`
	Log      Log      `koanf:"log"`
	Paths    Paths    `koanf:"-"`
}

// applyDefaults fills zero values that YAML may omit.
func (c *Config) applyDefaults() {
	if c.HTTP.ListenAddr == "" {
		c.HTTP.ListenAddr = ":8080"
	}
	if c.HTTP.ShutdownTimeout == 0 {
		c.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if c.Alerts.TTL == 0 {
		c.Alerts.TTL = 5 * time.Second
	}
	if c.CSRF.MaxAge == 0 {
		c.CSRF.MaxAge = 2 * time.Hour
	}
	if c.Site.Locale == "" {
		c.Site.Locale = "en-IN"
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = "jeevan"
	}
}
