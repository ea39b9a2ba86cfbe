// Package csrf implements double-submit cookie tokens.
package csrf

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"net/http"

	"github.com/dracory/spacebase/shared/constants"
)

const (
	FormKey   = "csrf_token"
	HeaderKey = "X-CSRF-Token"
)

// EnsureCookie ensures a CSRF base value cookie exists and returns a token derived from it.
func EnsureCookie(w http.ResponseWriter, r *http.Request, secret string, secure bool) string {
	c, err := r.Cookie(constants.CookieCSRF)
	if err != nil || c == nil || c.Value == "" {
		b := make([]byte, 32)
		_, _ = rand.Read(b)
		val := base64.RawURLEncoding.EncodeToString(b)
		http.SetCookie(w, &http.Cookie{
			Name:     constants.CookieCSRF,
			Value:    val,
			Path:     "/",
			HttpOnly: true,
			Secure:   secure || r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})
		c = &http.Cookie{Name: constants.CookieCSRF, Value: val}
	}
	return Token(secret, c.Value)
}

// Verify checks the token from header or form against the cookie.
func Verify(r *http.Request, secret string) bool {
	c, err := r.Cookie(constants.CookieCSRF)
	if err != nil || c == nil || c.Value == "" {
		return false
	}
	expected := Token(secret, c.Value)
	token := r.Header.Get(HeaderKey)
	if token == "" {
		token = r.FormValue(FormKey)
	}
	if token == "" {
		return false
	}
	return hmac.Equal([]byte(token), []byte(expected))
}

// Token derives the token for a cookie base value.
func Token(secret, base string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(base))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
