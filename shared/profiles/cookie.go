package profiles

import (
	"net/http"
	"time"

	"github.com/dracory/spacebase/shared/constants"
)

const lastProfileMaxAge = 30 * 24 * time.Hour

// SetLastProfile remembers the profile of the last successful connection.
func SetLastProfile(w http.ResponseWriter, r *http.Request, id string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     constants.CookieLastProfile,
		Value:    id,
		Path:     "/",
		MaxAge:   int(lastProfileMaxAge.Seconds()),
		Expires:  time.Now().Add(lastProfileMaxAge),
		HttpOnly: true,
		Secure:   secure || r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// LastProfile returns the remembered profile id, or "".
func LastProfile(r *http.Request) string {
	c, err := r.Cookie(constants.CookieLastProfile)
	if err != nil {
		return ""
	}
	return c.Value
}

// ForgetLastProfile clears the remembered profile.
func ForgetLastProfile(w http.ResponseWriter, r *http.Request, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     constants.CookieLastProfile,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   secure || r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}
