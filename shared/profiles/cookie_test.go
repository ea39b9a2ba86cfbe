package profiles_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dracory/spacebase/shared/constants"
	"github.com/dracory/spacebase/shared/profiles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastProfileCookie(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	profiles.SetLastProfile(w, r, "abc", false)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.CookieLastProfile, cookies[0].Name)

	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	r2.AddCookie(cookies[0])
	assert.Equal(t, "abc", profiles.LastProfile(r2))
	assert.Empty(t, profiles.LastProfile(httptest.NewRequest(http.MethodGet, "/", nil)))

	w = httptest.NewRecorder()
	profiles.ForgetLastProfile(w, r2, false)
	cleared := w.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}
