// internal/head/builder.go
//
// The Builder collects everything that should appear inside a page’s
// <head> element.  It is scoped to a single render call.  Handlers push
// tags into the builder, then the layout template decides where to emit
// each slice.
//
// Features
// --------
//   - SetTitle – single <title> tag (last call wins).
//   - Meta     – <meta name=… content=…>, deduplicated by name.
//   - JSONLD   – marshals a value into <script type="application/ld+json">.
//   - Render helpers return template.HTML with every value escaped.
package head

import (
	"encoding/json"
	"html/template"
	"strings"
)

// Builder is not safe for concurrent use; build one per request.
type Builder struct {
	title  string
	metas  []string
	jsonLD []string
	seen   map[string]struct{}
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{seen: make(map[string]struct{})}
}

// SetTitle overrides the page <title>.  The last caller wins.
func (b *Builder) SetTitle(t string) { b.title = t }

// Title returns a fully formed <title> tag or an empty string.
func (b *Builder) Title() template.HTML {
	if b.title == "" {
		return ""
	}
	return template.HTML("<title>" + template.HTMLEscapeString(b.title) + "</title>")
}

// Meta adds a named meta tag.  The first value for a name wins.
func (b *Builder) Meta(name, content string) {
	if _, dup := b.seen[name]; dup {
		return
	}
	b.seen[name] = struct{}{}
	b.metas = append(b.metas, `<meta name="`+template.HTMLEscapeString(name)+
		`" content="`+template.HTMLEscapeString(content)+`">`)
}

// JSONLD adds a structured-data block.  json.Marshal escapes <, >, and &,
// so the output cannot close the script element early.
func (b *Builder) JSONLD(v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	b.jsonLD = append(b.jsonLD, string(raw))
	return nil
}

// Metas returns every meta tag.
func (b *Builder) Metas() template.HTML { return template.HTML(strings.Join(b.metas, "\n  ")) }

// JSON returns all JSON-LD blocks wrapped in <script> tags.
func (b *Builder) JSON() template.HTML {
	var sb strings.Builder
	for _, js := range b.jsonLD {
		sb.WriteString(`<script type="application/ld+json">`)
		sb.WriteString(js)
		sb.WriteString(`</script>`)
	}
	return template.HTML(sb.String())
}
