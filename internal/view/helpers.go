// internal/view/helpers.go
//
// Template helpers.  Every template can call:
//
//	{{ dict "k" 1 "k2" "v" }}
//	{{ if invalid .Form.Error "phone" }}is-invalid{{ end }}
//	{{ if selected .Form.Values.gender "male" }}selected{{ end }}
//	{{ if isMobile .Visitor }}Tap{{ else }}Click{{ end }}
//	{{ millis .AlertTTL }}
package view

import (
	"fmt"
	"html/template"
	"time"

	"github.com/yanizio/jeevan/internal/requestinfo"
	"github.com/yanizio/jeevan/internal/validate"
)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"dict":     dict,
		"invalid":  invalid,
		"selected": func(got string, want any) bool { return got == fmt.Sprint(want) },
		"isMobile": func(i requestinfo.Info) bool { return i.Device == "Mobile" || i.Device == "Tablet" },
		"millis":   func(d time.Duration) int64 { return d.Milliseconds() },
	}
}

// dict builds a map in templates.
func dict(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		m[key] = kv[i+1]
	}
	return m
}

// invalid reports whether fe names field.
func invalid(fe *validate.FieldError, field string) bool {
	return fe != nil && fe.Field == field
}
