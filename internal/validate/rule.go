package validate

// Rule binds one predicate to one submission key.
type Rule struct {
	Field   string
	Check   func(string) bool
	Kind    Kind
	Message string
}

// First evaluates rules in order against values and returns the first
// failure, or nil when every rule passes.  Missing keys read as "".  Rules
// after the first failure are not evaluated.
func First(rules []Rule, values map[string]string) *FieldError {
	for _, r := range rules {
		if !r.Check(values[r.Field]) {
			return &FieldError{Field: r.Field, Kind: r.Kind, Message: r.Message}
		}
	}
	return nil
}
