// Package subscription validates newsletter sign-ups.  A Subscription shares
// only the email rule with a donation registration.
package subscription

import "github.com/yanizio/jeevan/internal/validate"

// FieldEmail is the submission key of the subscribe form.
const FieldEmail = "email"

// Subscription is a validated newsletter sign-up.
type Subscription struct {
	Email string `json:"email"`
}

var rules = []validate.Rule{{
	Field:   FieldEmail,
	Check:   validate.Email,
	Kind:    validate.InvalidFormat,
	Message: "Please enter a valid email address",
}}

// Validate returns the subscription or a *validate.FieldError.  The address
// is kept exactly as posted.
func Validate(email string) (Subscription, error) {
	if fe := validate.First(rules, map[string]string{FieldEmail: email}); fe != nil {
		return Subscription{}, fe
	}
	return Subscription{Email: email}, nil
}
