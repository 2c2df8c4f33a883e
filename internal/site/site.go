// internal/site/site.go
//
// Static site content: tab panels, service cards, default counters, and the
// emergency guidance text.
//
// Context
// -------
// Content lives in YAML so editors can change copy without touching Go.
// The bundled `content.yaml` is embedded at build time; operators may point
// `Load` at another file.  Validation is structural only: every tab and
// service needs an id and a title, and ids must be unique per list.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package site

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yanizio/jeevan/internal/stats"
)

//go:embed content.yaml
var bundled []byte

// Tab is one panel of the mission / vision / strategy switcher.
type Tab struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// Service is one clickable card in the services grid.
type Service struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}

// Content is the parsed site copy.
type Content struct {
	Title        string       `yaml:"title"`
	Tagline      string       `yaml:"tagline"`
	ContactEmail string       `yaml:"contact_email"`
	Tabs         []Tab        `yaml:"tabs"`
	Services     []Service    `yaml:"services"`
	Stats        []stats.Stat `yaml:"stats"`
	Emergency    string       `yaml:"emergency"`
}

// Panel is a Tab plus its rendered state.
type Panel struct {
	Tab
	Active bool
}

// Default parses the embedded content.
func Default() (*Content, error) { return Parse(bundled) }

// Load reads content from path; an empty path means the bundled copy.
func Load(path string) (*Content, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read site content: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and checks raw YAML content.
func Parse(raw []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse site content: %w", err)
	}
	if err := c.check(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Content) check() error {
	if len(c.Tabs) == 0 {
		return fmt.Errorf("site content: at least one tab is required")
	}
	seen := map[string]struct{}{}
	for _, t := range c.Tabs {
		if t.ID == "" || t.Title == "" {
			return fmt.Errorf("site content: tab needs id and title")
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("site content: duplicate tab id %q", t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	seen = map[string]struct{}{}
	for _, s := range c.Services {
		if s.ID == "" || s.Title == "" {
			return fmt.Errorf("site content: service needs id and title")
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("site content: duplicate service id %q", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}

// Panels marks the tab named active; an unknown or empty id activates the
// first tab.  Exactly one panel is active.
func (c *Content) Panels(active string) []Panel {
	idx := 0
	for i, t := range c.Tabs {
		if t.ID == active {
			idx = i
			break
		}
	}
	out := make([]Panel, len(c.Tabs))
	for i, t := range c.Tabs {
		out[i] = Panel{Tab: t, Active: i == idx}
	}
	return out
}
