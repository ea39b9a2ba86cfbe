package api_connect_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/dracory/spacebase/api/api_connect"
	"github.com/dracory/spacebase/internal/stdbtest"
	"github.com/dracory/spacebase/shared/constants"
	"github.com/dracory/spacebase/shared/profiles"
	"github.com/dracory/spacebase/shared/session"
	"github.com/dracory/spacebase/shared/stdb"
	"github.com/dracory/spacebase/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApiConnect_ServeHTTP(t *testing.T) {
	srv := stdbtest.New(t)
	srv.Game()

	tests := []struct {
		name            string
		method          string
		form            url.Values
		expectedStatus  string
		expectedMessage string
		expectedTables  float64
	}{
		{
			name:            "url mode with database",
			method:          http.MethodPost,
			form:            url.Values{"mode": {"url"}, "url": {srv.URL}, "database": {"game"}},
			expectedStatus:  "success",
			expectedMessage: "connected",
			expectedTables:  1,
		},
		{
			name:            "url mode without database",
			method:          http.MethodPost,
			form:            url.Values{"mode": {"url"}, "url": {srv.URL}},
			expectedStatus:  "success",
			expectedMessage: "connected",
		},
		{
			name:            "unreachable url",
			method:          http.MethodPost,
			form:            url.Values{"mode": {"url"}, "url": {"http://127.0.0.1:1"}},
			expectedStatus:  "error",
			expectedMessage: "failed to connect to http://127.0.0.1:1. Please check the URL and ensure SpacetimeDB is running.",
		},
		{
			name:            "unreachable host and port",
			method:          http.MethodPost,
			form:            url.Values{"host": {"127.0.0.1"}, "port": {"1"}},
			expectedStatus:  "error",
			expectedMessage: "failed to connect to 127.0.0.1:1. Please check the host, port, and ensure SpacetimeDB is running.",
		},
		{
			name:            "non numeric port",
			method:          http.MethodPost,
			form:            url.Values{"host": {"localhost"}, "port": {"abc"}},
			expectedStatus:  "error",
			expectedMessage: "port must be a number between 1 and 65535",
		},
		{
			name:            "missing url",
			method:          http.MethodPost,
			form:            url.Values{"mode": {"url"}},
			expectedStatus:  "error",
			expectedMessage: "url is required",
		},
		{
			name:            "wrong method",
			method:          http.MethodGet,
			form:            url.Values{},
			expectedStatus:  "error",
			expectedMessage: "connect must be POST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := api_connect.New(types.Config{SessionSecret: "test-secret"})
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, stdbtest.Request(tt.method, tt.form))

			assert.Equal(t, http.StatusOK, rr.Code)
			env := stdbtest.Decode(t, rr)
			assert.Equal(t, tt.expectedStatus, env.Status)
			assert.Equal(t, tt.expectedMessage, env.Message)
			if tt.expectedStatus == "success" {
				assert.Equal(t, tt.expectedTables, env.Data["tables"])
			}
		})
	}
}

func TestApiConnect_StoresConnectionInSession(t *testing.T) {
	srv := stdbtest.New(t)
	srv.Game()

	handler := api_connect.New(types.Config{SessionSecret: "test-secret"})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, stdbtest.Request(http.MethodPost, url.Values{"mode": {"url"}, "url": {srv.URL}, "database": {"game"}}))
	require.Equal(t, "success", stdbtest.Decode(t, rr).Status)

	var sid string
	for _, c := range rr.Result().Cookies() {
		if c.Name == session.SessionCookieName {
			sid = c.Value
		}
	}
	require.NotEmpty(t, sid)

	sess, ok := session.GetSession(sid)
	require.True(t, ok)
	conn := sess.Connection()
	require.NotNil(t, conn)
	assert.Equal(t, "game", conn.Config.Database)
	_, found := conn.Table("players")
	assert.True(t, found)
}

func TestApiConnect_RememberAndProfile(t *testing.T) {
	srv := stdbtest.New(t)
	srv.Game()
	store := stdbtest.ProfileStore(t)
	cfg := types.Config{SessionSecret: "test-secret", Profiles: store}

	rr := httptest.NewRecorder()
	api_connect.New(cfg).ServeHTTP(rr, stdbtest.Request(http.MethodPost, url.Values{
		"mode":     {"url"},
		"url":      {srv.URL},
		"database": {"game"},
		"name":     {"local"},
		"remember": {"1"},
	}))

	env := stdbtest.Decode(t, rr)
	require.Equal(t, "success", env.Status)
	id, _ := env.Data["profile_id"].(string)
	require.NotEmpty(t, id)

	var remembered string
	for _, c := range rr.Result().Cookies() {
		if c.Name == constants.CookieLastProfile {
			remembered = c.Value
		}
	}
	assert.Equal(t, id, remembered)

	saved, err := store.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "local", saved.Name)
	assert.Equal(t, profiles.ModeURL, saved.Mode)

	rr = httptest.NewRecorder()
	api_connect.New(cfg).ServeHTTP(rr, stdbtest.Request(http.MethodPost, url.Values{"profile_id": {id}}))
	env = stdbtest.Decode(t, rr)
	assert.Equal(t, "success", env.Status)
	assert.Equal(t, "game", env.Data["database"])

	rr = httptest.NewRecorder()
	api_connect.New(cfg).ServeHTTP(rr, stdbtest.Request(http.MethodPost, url.Values{"profile_id": {"missing"}}))
	assert.Equal(t, profiles.ErrNotFound.Error(), stdbtest.Decode(t, rr).Message)
}

func TestParseRequest(t *testing.T) {
	req, err := api_connect.ParseRequest(url.Values{"host": {" localhost "}, "port": {"3000"}, "database": {"game"}})
	require.NoError(t, err)
	assert.Equal(t, stdb.Config{Host: "localhost", Port: 3000, Database: "game"}, req.Config())

	req, err = api_connect.ParseRequest(url.Values{"mode": {"url"}, "url": {"https://x"}, "host": {"ignored"}})
	require.NoError(t, err)
	assert.Equal(t, stdb.Config{URL: "https://x"}, req.Config())

	_, err = api_connect.ParseRequest(url.Values{"mode": {"ftp"}})
	assert.EqualError(t, err, "unsupported mode: ftp")
}
