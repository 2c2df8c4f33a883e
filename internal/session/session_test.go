package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(got *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = VisitorID(r.Context())
	})
}

func TestMiddleware_IssuesCookie(t *testing.T) {
	var got string
	rr := httptest.NewRecorder()

	Middleware(capture(&got)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, cookies[0].Value, got)
	_, err := uuid.Parse(got)
	assert.NoError(t, err)
}

func TestMiddleware_ReusesValidCookie(t *testing.T) {
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: id})

	var got string
	rr := httptest.NewRecorder()
	Middleware(capture(&got)).ServeHTTP(rr, req)

	assert.Equal(t, id, got)
	assert.Empty(t, rr.Result().Cookies())
}

func TestMiddleware_ReplacesMalformedCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "<script>"})

	var got string
	rr := httptest.NewRecorder()
	Middleware(capture(&got)).ServeHTTP(rr, req)

	assert.NotEqual(t, "<script>", got)
	assert.Len(t, rr.Result().Cookies(), 1)
}
