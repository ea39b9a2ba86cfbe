package page_logout_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/dracory/spacebase/internal/stdbtest"
	"github.com/dracory/spacebase/pages/page_logout"
	"github.com/dracory/spacebase/shared/constants"
	"github.com/dracory/spacebase/shared/session"
	"github.com/dracory/spacebase/shared/types"
	"github.com/stretchr/testify/assert"
)

func TestLogout(t *testing.T) {
	srv := stdbtest.New(t)
	srv.Game()
	cookie, sess := srv.Connected(t, "game")

	rr := httptest.NewRecorder()
	page_logout.New(types.Config{BasePath: "/admin"}).
		ServeHTTP(rr, stdbtest.Request(http.MethodGet, url.Values{}, cookie))

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/admin?action=page_login", rr.Header().Get("Location"))
	assert.Nil(t, sess.Connection())

	_, exists := session.GetSession(sess.ID)
	assert.False(t, exists)

	expired := map[string]bool{}
	for _, c := range rr.Result().Cookies() {
		expired[c.Name] = c.MaxAge < 0
	}
	assert.True(t, expired[session.SessionCookieName])
	assert.True(t, expired[constants.CookieLastProfile])
}

func TestLogout_WithoutSession(t *testing.T) {
	rr := httptest.NewRecorder()
	page_logout.New(types.Config{BasePath: "/"}).
		ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/?action=page_login", rr.Header().Get("Location"))
}
