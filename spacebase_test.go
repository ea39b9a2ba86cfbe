package spacebase_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dracory/spacebase"
	"github.com/dracory/spacebase/internal/stdbtest"
	"github.com/dracory/spacebase/shared/constants"
	"github.com/dracory/spacebase/shared/csrf"
	"github.com/dracory/spacebase/shared/logging"
	"github.com/dracory/spacebase/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	app := spacebase.New(types.Config{})
	assert.Equal(t, "action", app.Config().ActionParam)
	assert.Equal(t, "/", app.Config().BasePath)
}

func TestHandler_Routing(t *testing.T) {
	h := spacebase.New(types.Config{BasePath: "/admin"}).Handler()

	tests := []struct {
		name             string
		url              string
		expectedStatus   int
		expectedLocation string
		expectedBody     string
	}{
		{"healthz", "/admin?action=healthz", http.StatusOK, "", "ok"},
		{"login page", "/admin?action=page_login", http.StatusOK, "", `id="login-app"`},
		{"home redirects to login", "/admin?action=page_home", http.StatusSeeOther, "/admin?action=page_login", ""},
		{"unknown action", "/admin?action=nonexistent", http.StatusFound, "/admin?action=page_login", ""},
		{"no action", "/admin", http.StatusFound, "/admin?action=page_login", ""},
		{"status api", "/admin?action=api_status", http.StatusOK, "", "not connected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedLocation != "" {
				assert.Equal(t, tt.expectedLocation, rr.Header().Get("Location"))
			}
			if tt.expectedBody != "" {
				assert.Contains(t, rr.Body.String(), tt.expectedBody)
			}
			assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
		})
	}
}

func TestHandler_DefaultRouteWhenConnected(t *testing.T) {
	srv := stdbtest.New(t)
	srv.Game()
	cookie, _ := srv.Connected(t, "game")

	rr := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookie)
	spacebase.New(types.Config{}).Handler().ServeHTTP(rr, r)

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/?action=page_home", rr.Header().Get("Location"))
}

func TestHandler_CustomActionParam(t *testing.T) {
	h := spacebase.New(types.Config{ActionParam: "do"}).Handler()
	t.Cleanup(func() { spacebase.New(types.Config{}) })

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/?do=page_home", nil))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/?do=page_login", rr.Header().Get("Location"))
}

func TestHandler_CSRF(t *testing.T) {
	const secret = "s3cret"
	h := spacebase.New(types.Config{SessionSecret: secret, CSRFProtection: true}).Handler()

	post := func(token string) stdbtest.Envelope {
		form := url.Values{}
		r := httptest.NewRequest(http.MethodPost, "/?action="+constants.ActionApiDisconnect, strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		r.AddCookie(&http.Cookie{Name: constants.CookieCSRF, Value: "base"})
		if token != "" {
			r.Header.Set(csrf.HeaderKey, token)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, r)
		return stdbtest.Decode(t, rr)
	}

	env := post("")
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "invalid CSRF token", env.Message)

	env = post(csrf.Token(secret, "base"))
	assert.Equal(t, "success", env.Status)
	assert.Equal(t, "disconnected", env.Message)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Options{Level: "info", Format: "json", Out: &buf})

	var seen string
	h := spacebase.RequestLogger(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = spacebase.GetRequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/?action=healthz", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rr.Header().Get("X-Request-Id"))
	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"action":"healthz"`)
	assert.Contains(t, buf.String(), seen)
}

func TestRequestLogger_CustomActionParam(t *testing.T) {
	spacebase.New(types.Config{ActionParam: "do"})
	t.Cleanup(func() { spacebase.New(types.Config{}) })

	var buf bytes.Buffer
	logger := logging.New(logging.Options{Level: "info", Format: "json", Out: &buf})
	h := spacebase.RequestLogger(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/?do=healthz&action=ignored", nil))

	assert.Contains(t, buf.String(), `"action":"healthz"`)
}

func TestRequestLogger_KeepsIncomingID(t *testing.T) {
	h := spacebase.RequestLogger(nil, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Request-Id", "abc")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)

	assert.Equal(t, "abc", rr.Header().Get("X-Request-Id"))
}

func TestSweepSessions_StopsOnCancel(t *testing.T) {
	app := spacebase.New(types.Config{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		app.SweepSessions(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
