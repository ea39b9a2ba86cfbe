package page_logout

import (
	"net/http"

	"github.com/dracory/spacebase/shared/profiles"
	"github.com/dracory/spacebase/shared/session"
	"github.com/dracory/spacebase/shared/types"
	"github.com/dracory/spacebase/shared/urls"
)

type pageLogoutController struct {
	config types.Config
}

func New(config types.Config) *pageLogoutController {
	return &pageLogoutController{config: config}
}

// ServeHTTP drops the connection and the session, then redirects to the
// login page.
func (c *pageLogoutController) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if s := session.FromRequest(r); s != nil {
		session.Disconnect(s)
		session.DeleteSession(s.ID)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     session.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	profiles.ForgetLastProfile(w, r, c.config.SecureCookies)

	http.Redirect(w, r, urls.Login(c.config.BasePath), http.StatusFound)
}
