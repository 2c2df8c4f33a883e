// internal/view/render.go
//
// View engine: embedded templates, func-map injection, and buffered
// rendering.
//
// Public helpers
// --------------
//   - New            – parse every embedded template once at boot.
//   - Render         – write rendered HTML to an http.ResponseWriter.
//
// All templates are parsed as one set so sub-templates
// ({{ template "alert" . }}) work out-of-the-box.  Callers pass the logical
// name ("home"); execName picks "home.html" when the file has no define
// block and "home" otherwise.
//
// Style
// -----
// • Oxford commas, two spaces after periods.

package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var files embed.FS

// Engine holds the parsed template set.  Safe for concurrent use.
type Engine struct {
	t *template.Template
}

// New parses the embedded templates.
func New() (*Engine, error) {
	t, err := template.New("jeevan").Funcs(funcMap()).ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Engine{t: t}, nil
}

// Render executes name into a buffer, then writes it with status.  A
// failing template never leaves a half-written page behind.
func (e *Engine) Render(w http.ResponseWriter, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := e.t.ExecuteTemplate(&buf, e.execName(name), data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// execName picks the template name to execute.
//
// Priority:
//  1. If the set has "<name>.html" (file-based template), run that.
//  2. Otherwise, fall back to "<name>" (root template defined in a file).
func (e *Engine) execName(name string) string {
	if tmpl := e.t.Lookup(name + ".html"); tmpl != nil {
		return name + ".html"
	}
	return name
}
