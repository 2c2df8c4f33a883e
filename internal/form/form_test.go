package form

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_RoundTrip(t *testing.T) {
	tk := NewTokens("k", time.Hour, nil)
	tok, err := tk.Generate()
	require.NoError(t, err)
	assert.True(t, tk.Verify(tok))

	other := NewTokens("different", time.Hour, nil)
	assert.False(t, other.Verify(tok))
	assert.False(t, tk.Verify(""))
	assert.False(t, tk.Verify("!!not-base64!!"))
	assert.False(t, tk.Verify(tok[:len(tok)-2]))
}

func TestTokens_Age(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tk := NewTokens("k", time.Hour, nil)
	tk.now = func() time.Time { return now }

	tok, err := tk.Generate()
	require.NoError(t, err)

	tk.now = func() time.Time { return now.Add(59 * time.Minute) }
	assert.True(t, tk.Verify(tok))

	tk.now = func() time.Time { return now.Add(61 * time.Minute) }
	assert.False(t, tk.Verify(tok), "expired")

	tk.now = func() time.Time { return now.Add(-2 * time.Minute) }
	assert.False(t, tk.Verify(tok), "issued in the future")
}

func TestTokens_EphemeralKey(t *testing.T) {
	a := NewTokens("", time.Hour, nil)
	b := NewTokens("", time.Hour, nil)
	tok, err := a.Generate()
	require.NoError(t, err)
	assert.True(t, a.Verify(tok))
	assert.False(t, b.Verify(tok))
}

func postForm(vals url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/donate", strings.NewReader(vals.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestHandleSubmit(t *testing.T) {
	tk := NewTokens("k", time.Hour, nil)
	tok, err := tk.Generate()
	require.NoError(t, err)

	vals := url.Values{TokenField: {tok}, "name": {" Asha "}, "extra": {"x"}}
	got, err := HandleSubmit(httptest.NewRecorder(), postForm(vals), tk, "name", "email")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"name": " Asha "}, got)

	_, err = HandleSubmit(httptest.NewRecorder(), postForm(url.Values{"name": {"A"}}), tk, "name")
	assert.ErrorIs(t, err, ErrBadToken)
}

func TestDecodeJSON(t *testing.T) {
	decode := func(body string) (map[string]string, error) {
		r := httptest.NewRequest(http.MethodPost, "/api/registrations", strings.NewReader(body))
		return DecodeJSON(httptest.NewRecorder(), r)
	}

	got, err := decode(`{"name":"Asha","phone":"98765 43210"}`)
	require.NoError(t, err)
	assert.Equal(t, "98765 43210", got["phone"])

	got, err = decode(`{}`)
	require.NoError(t, err)
	assert.Empty(t, got)

	for _, bad := range []string{``, `[]`, `{"age":30}`, `{"a":"b"} {}`, `{"a":{"b":"c"}}`} {
		_, err := decode(bad)
		assert.ErrorIs(t, err, ErrMalformed, bad)
	}
}
