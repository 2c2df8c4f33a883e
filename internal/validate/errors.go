// internal/validate/errors.go
//
// Jeevan – validation outcome types.
//
// Context
//   A failed rule is a normal result, not a system failure.  FieldError
//   satisfies error so callers can return it through ordinary error paths
//   and recover it with AsFieldError.
//
//------------------------------------------------------------------------------

package validate

import "errors"

// Kind classifies why a field was rejected.
type Kind int

const (
	// MissingOrTooShort covers free-text fields that are empty,
	// whitespace-only, or below their minimum length.
	MissingOrTooShort Kind = iota + 1
	// MissingSelection covers enumerated fields with no valid option chosen.
	MissingSelection
	// InvalidFormat covers pattern fields such as phone and email.
	InvalidFormat
)

// String returns the short reason used in logs and API responses.
func (k Kind) String() string {
	switch k {
	case MissingOrTooShort:
		return "missing or too short"
	case MissingSelection:
		return "missing selection"
	case InvalidFormat:
		return "invalid format"
	default:
		return "invalid"
	}
}

// Code returns a snake_case identifier for machine consumers.
func (k Kind) Code() string {
	switch k {
	case MissingOrTooShort:
		return "missing_or_too_short"
	case MissingSelection:
		return "missing_selection"
	case InvalidFormat:
		return "invalid_format"
	default:
		return "invalid"
	}
}

// FieldError names the first field that failed and why.
type FieldError struct {
	Field   string // submission key, e.g. "bloodGroup"
	Kind    Kind
	Message string // user-facing alert text
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Kind.String() }

// Reason is the short, stable description of the failure.
func (e *FieldError) Reason() string { return e.Kind.String() }

// AsFieldError unwraps err into a *FieldError when it is one.
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
