// internal/registration/registration.go
//
// Jeevan – donation registration: model and validator.
//
// Context
//   The donation form posts seven raw strings.  Validate checks them in a
//   fixed order (name, gender, blood group, location, role, phone, email)
//   and stops at the first failure, so the visitor is shown one problem at
//   a time, most fundamental field first.  On success it returns an
//   immutable Registration for the caller to hand to its notification
//   sink.  Validate performs no I/O and keeps no state, so identical input
//   always yields an identical result.
//
// Style
//   Two-space sentence spacing, Oxford comma, concise inline notes.
//
//------------------------------------------------------------------------------

package registration

import (
	"github.com/yanizio/jeevan/internal/validate"
)

// Submission keys, matching the form control names.
const (
	FieldName       = "name"
	FieldGender     = "gender"
	FieldBloodGroup = "bloodGroup"
	FieldLocation   = "location"
	FieldRole       = "role"
	FieldPhone      = "phone"
	FieldEmail      = "email"
)

// Fields lists the submission keys in evaluation order.
var Fields = []string{
	FieldName, FieldGender, FieldBloodGroup, FieldLocation,
	FieldRole, FieldPhone, FieldEmail,
}

// MinTextLength applies to name and location after trimming.
const MinTextLength = 2

// -----------------------------------------------------------------------------
// Enumerations
// -----------------------------------------------------------------------------

// Gender is the visitor's self-declared gender.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Genders lists accepted gender values in display order.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// BloodGroup is one of the eight ABO/Rh categories.  Values use an ASCII
// hyphen for Rh-negative groups.
type BloodGroup string

const (
	APos  BloodGroup = "A+"
	ANeg  BloodGroup = "A-"
	BPos  BloodGroup = "B+"
	BNeg  BloodGroup = "B-"
	ABPos BloodGroup = "AB+"
	ABNeg BloodGroup = "AB-"
	OPos  BloodGroup = "O+"
	ONeg  BloodGroup = "O-"
)

// BloodGroups lists the categories in the order the form offers them.
var BloodGroups = []BloodGroup{APos, ANeg, BPos, BNeg, ABPos, ABNeg, OPos, ONeg}

// Role distinguishes people offering blood from people needing it.
type Role string

const (
	RoleDonor    Role = "donor"
	RoleAcceptor Role = "acceptor"
)

// Roles lists accepted role values.
var Roles = []Role{RoleDonor, RoleAcceptor}

// -----------------------------------------------------------------------------
// Model
// -----------------------------------------------------------------------------

// Registration is a validated donation-form submission.  Name and Location
// are trimmed, Phone has whitespace removed, and the rest are copied as
// posted.  Treat it as a value; nothing in Jeevan mutates one after
// Validate returns it.
type Registration struct {
	Name       string     `json:"name"`
	Gender     Gender     `json:"gender"`
	BloodGroup BloodGroup `json:"bloodGroup"`
	Location   string     `json:"location"`
	Role       Role       `json:"role"`
	Phone      string     `json:"phone"`
	Email      string     `json:"email"`
}

// -----------------------------------------------------------------------------
// Validation
// -----------------------------------------------------------------------------

// rules is evaluated top to bottom.  Order is part of the user experience
// and must not be shuffled.
var rules = []validate.Rule{
	{
		Field:   FieldName,
		Check:   validate.MinLength(MinTextLength),
		Kind:    validate.MissingOrTooShort,
		Message: "Please enter a valid name",
	},
	{
		Field:   FieldGender,
		Check:   validate.OneOf(toStrings(Genders)...),
		Kind:    validate.MissingSelection,
		Message: "Please select your gender",
	},
	{
		Field:   FieldBloodGroup,
		Check:   validate.OneOf(toStrings(BloodGroups)...),
		Kind:    validate.MissingSelection,
		Message: "Please select your blood group",
	},
	{
		Field:   FieldLocation,
		Check:   validate.MinLength(MinTextLength),
		Kind:    validate.MissingOrTooShort,
		Message: "Please enter your location",
	},
	{
		Field:   FieldRole,
		Check:   validate.OneOf(toStrings(Roles)...),
		Kind:    validate.MissingSelection,
		Message: "Please select if you are a donor or acceptor",
	},
	{
		Field:   FieldPhone,
		Check:   validate.Phone,
		Kind:    validate.InvalidFormat,
		Message: "Please enter a valid 10-digit phone number",
	},
	{
		Field:   FieldEmail,
		Check:   validate.Email,
		Kind:    validate.InvalidFormat,
		Message: "Please enter a valid email address",
	},
}

// Validate checks raw against the registration rules.  Absent keys are
// treated as empty strings.  On failure the error is a *validate.FieldError
// naming the first failing field; no later field is examined.
func Validate(raw map[string]string) (Registration, error) {
	if fe := validate.First(rules, raw); fe != nil {
		return Registration{}, fe
	}
	return Registration{
		Name:       validate.Trim(raw[FieldName]),
		Gender:     Gender(raw[FieldGender]),
		BloodGroup: BloodGroup(raw[FieldBloodGroup]),
		Location:   validate.Trim(raw[FieldLocation]),
		Role:       Role(raw[FieldRole]),
		Phone:      validate.StripSpace(raw[FieldPhone]),
		Email:      raw[FieldEmail],
	}, nil
}

func toStrings[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}
