// internal/form/submit.go
//
// Jeevan – Forms: request capture helpers.
//
// Context
//   Handlers receive submissions two ways.  Browser forms post
//   `application/x-www-form-urlencoded` bodies carrying a CSRF token, and
//   API clients post a flat JSON object of strings.  Both end up as
//   map[string]string so the domain validators never see transport detail.
//
//   Absent keys are simply missing from the map; validators treat them as
//   empty strings.
//
//------------------------------------------------------------------------------

package form

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBody bounds JSON and form bodies.
const MaxBody = 64 << 10

var (
	// ErrBadToken means the CSRF token was missing, stale, or forged.
	ErrBadToken = errors.New("form: security token invalid")

	// ErrMalformed means the body could not be decoded.
	ErrMalformed = errors.New("form: malformed body")
)

// HandleSubmit parses a browser form post, verifies its CSRF token, and
// returns the named fields.  Field values are passed through untouched.
func HandleSubmit(w http.ResponseWriter, r *http.Request, tokens *Tokens, fields ...string) (map[string]string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBody)
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !tokens.Verify(r.PostForm.Get(TokenField)) {
		return nil, ErrBadToken
	}
	return Values(r, fields...), nil
}

// Values copies the named fields from r.PostForm.  Call after ParseForm.
func Values(r *http.Request, fields ...string) map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		if vs, ok := r.PostForm[f]; ok && len(vs) > 0 {
			out[f] = vs[0]
		}
	}
	return out
}

// DecodeJSON reads a flat JSON object of strings.  Nested values, numbers,
// or trailing data make the body malformed.
func DecodeJSON(w http.ResponseWriter, r *http.Request) (map[string]string, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBody))
	var out map[string]string
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data", ErrMalformed)
	}
	if out == nil {
		out = map[string]string{}
	}
	return out, nil
}
