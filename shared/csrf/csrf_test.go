package csrf_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dracory/spacebase/shared/constants"
	"github.com/dracory/spacebase/shared/csrf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureCookieAndVerify(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	token := csrf.EnsureCookie(w, r, "secret", false)
	require.NotEmpty(t, token)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.CookieCSRF, cookies[0].Name)

	t.Run("header token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.AddCookie(cookies[0])
		req.Header.Set(csrf.HeaderKey, token)
		assert.True(t, csrf.Verify(req, "secret"))
	})

	t.Run("form token", func(t *testing.T) {
		form := url.Values{csrf.FormKey: {token}}
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(cookies[0])
		assert.True(t, csrf.Verify(req, "secret"))
	})

	t.Run("wrong secret", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.AddCookie(cookies[0])
		req.Header.Set(csrf.HeaderKey, token)
		assert.False(t, csrf.Verify(req, "other"))
	})

	t.Run("missing cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(csrf.HeaderKey, token)
		assert.False(t, csrf.Verify(req, "secret"))
	})

	t.Run("existing cookie is reused", func(t *testing.T) {
		w2 := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookies[0])
		assert.Equal(t, token, csrf.EnsureCookie(w2, req, "secret", false))
		assert.Empty(t, w2.Result().Cookies())
	})
}
