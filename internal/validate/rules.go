// internal/validate/rules.go
//
// Jeevan – field rules shared by every form the site accepts.
//
// Context
//   Each rule is a pure predicate over one raw string.  Forms compose them
//   into an ordered []Rule and call First, which stops at the first failing
//   field so the visitor sees one problem at a time.  Nothing here logs,
//   renders, or touches a request.
//
// Style
//   Two-space sentence spacing, Oxford comma, concise inline notes.
//
//------------------------------------------------------------------------------

package validate

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf16"
)

// PhoneDigits is the exact digit count a phone number must have once
// whitespace is removed.  No country code is accepted.
const PhoneDigits = 10

// spaceClass is the body of a regexp character class matching exactly the
// runes IsSpace accepts.
const spaceClass = `\t\n\x0B\f\r\p{Zs}\x{2028}\x{2029}\x{FEFF}`

var (
	emailRE = regexp.MustCompile(`^[^@` + spaceClass + `]+@[^@` + spaceClass + `]+\.[^@` + spaceClass + `]+$`)
	phoneRE = regexp.MustCompile(`^[0-9]{10}$`)
)

// IsSpace reports whether r is whitespace as browsers see it in form input:
// ASCII tab, line feed, vertical tab, form feed, and carriage return, every
// Unicode space separator, the line and paragraph separators, and the byte
// order mark.  U+0085 is not included.
func IsSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// -----------------------------------------------------------------------------
// Named predicates
// -----------------------------------------------------------------------------

// Email reports whether v has the basic local@domain.tld shape.  No case
// folding or trimming is performed.
func Email(v string) bool {
	return emailRE.MatchString(v)
}

// Phone reports whether v holds exactly ten ASCII digits after every
// whitespace character is removed.  Other punctuation is not stripped, so
// "98765-43210" and "+919876543210" are rejected.
func Phone(v string) bool {
	return phoneRE.MatchString(StripSpace(v))
}

// MinLength returns a predicate that trims v and requires at least n
// characters.  Length counts UTF-16 code units, the unit a browser's
// maxlength and minlength use, so one emoji outside the BMP counts as two.
func MinLength(n int) func(string) bool {
	return func(v string) bool {
		return Length(Trim(v)) >= n
	}
}

// Length returns the UTF-16 length of v.
func Length(v string) int {
	n := 0
	for _, r := range v {
		n += utf16.RuneLen(r)
	}
	return n
}

// OneOf returns a predicate accepting only the listed option values.  An
// empty string never matches, so the predicate doubles as “required”.
func OneOf(options ...string) func(string) bool {
	set := make(map[string]struct{}, len(options))
	for _, o := range options {
		set[o] = struct{}{}
	}
	return func(v string) bool {
		if v == "" {
			return false
		}
		_, ok := set[v]
		return ok
	}
}

// -----------------------------------------------------------------------------
// Normalisers
// -----------------------------------------------------------------------------

// Trim removes leading and trailing IsSpace runes.
func Trim(v string) string {
	return strings.TrimFunc(v, IsSpace)
}

// StripSpace removes every IsSpace rune from v.
func StripSpace(v string) string {
	return strings.Map(func(r rune) rune {
		if IsSpace(r) {
			return -1
		}
		return r
	}, v)
}

// NormalizePhoneInput mirrors the as-you-type filter on tel inputs: keep
// ASCII digits only and cap the result at PhoneDigits.
func NormalizePhoneInput(v string) string {
	var b strings.Builder
	for _, r := range v {
		if r < '0' || r > '9' {
			continue
		}
		if b.Len() == PhoneDigits {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}
