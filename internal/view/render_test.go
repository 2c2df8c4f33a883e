package view

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanizio/jeevan/internal/head"
	"github.com/yanizio/jeevan/internal/notify"
	"github.com/yanizio/jeevan/internal/site"
	"github.com/yanizio/jeevan/internal/stats"
	"github.com/yanizio/jeevan/internal/validate"
)

func homeData(t *testing.T) Home {
	t.Helper()
	c, err := site.Default()
	require.NoError(t, err)
	h := head.New()
	h.SetTitle(c.Title)
	return Home{
		Head:          h,
		Site:          c,
		Panels:        c.Panels("vision"),
		Stats:         []stats.Animated{stats.Animate(c.Stats[0], nil)},
		AlertTTL:      5 * time.Second,
		CSRF:          "tok123",
		FrameInterval: stats.FrameInterval,
	}
}

func TestRender_Home(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, e.Render(rec, http.StatusOK, "home", homeData(t)))

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, body, `class="tab-btn active" href="/?tab=vision#about"`)
	assert.Contains(t, body, `value="tok123"`)
	assert.Contains(t, body, `data-target="10000"`)
	assert.Contains(t, body, `<option value="AB-">AB-</option>`)
	assert.NotContains(t, body, `role="alert"`)
	assert.Contains(t, body, "<title>Jeevan - Blood Donation Platform</title>")
}

func TestRender_RejectedForm(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	data := homeData(t)
	data.Alert = &notify.Alert{ID: "a1", Type: notify.Error, Message: "Please enter a valid 10-digit phone number"}
	data.Donate = FormState{
		Values: map[string]string{"name": "Asha <b>", "gender": "female", "phone": "12345"},
		Error:  &validate.FieldError{Field: "phone", Kind: validate.InvalidFormat, Message: "Please enter a valid 10-digit phone number"},
	}

	rec := httptest.NewRecorder()
	require.NoError(t, e.Render(rec, http.StatusUnprocessableEntity, "home", data))
	html := rec.Body.String()
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	assert.Contains(t, html, `class="alert alert-error"`)
	assert.Contains(t, html, `data-ttl-ms="5000"`)
	assert.Contains(t, html, `action="/alerts/a1/dismiss"`)
	assert.Contains(t, html, `value="Asha &lt;b&gt;"`)
	assert.Contains(t, html, `<option value="female" selected>`)
	assert.Contains(t, html, `<option value="">Blood group</option>`)
	assert.NotContains(t, html, `<select name="gender" aria-invalid`)
	assert.Contains(t, html, `name="phone" placeholder="10-digit phone" inputmode="tel" value="12345" aria-invalid="true"`)
	assert.Contains(t, html, `data-field="phone"`)
}

func TestRender_Unknown(t *testing.T) {
	e, err := New()
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	assert.Error(t, e.Render(rec, http.StatusOK, "nope", nil))
	assert.Zero(t, rec.Body.Len())
}

func TestRender_PhoneAllowsSpacedInput(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	data := homeData(t)
	data.Donate = FormState{
		Values: map[string]string{"phone": "98765 43210", "bloodGroup": "AB-"},
		Error:  &validate.FieldError{Field: "bloodGroup", Kind: validate.MissingSelection, Message: "Please select your blood group"},
	}
	rec := httptest.NewRecorder()
	require.NoError(t, e.Render(rec, http.StatusUnprocessableEntity, "home", data))
	html := rec.Body.String()

	assert.NotContains(t, html, "maxlength")
	assert.Contains(t, html, `value="98765 43210"`)
	assert.Contains(t, html, `<select name="bloodGroup" aria-invalid="true">`)
	assert.Contains(t, html, `<option value="AB-" selected>AB-</option>`)
}

func TestDict(t *testing.T) {
	assert.Equal(t, map[string]any{"a": 1, "b": "x"}, dict("a", 1, "b", "x", "dangling"))
}
