package session_test

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dracory/spacebase/shared/session"
	"github.com/dracory/spacebase/shared/stdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeInstance(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/databases":
			_, _ = io.WriteString(w, `[]`)
		case "/database/game/schema":
			_, _ = io.WriteString(w, `{"tables":[{"name":"players","columns":[{"name":"id","type":"u64"}]}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestEnsureSession(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	sess := session.EnsureSession(w, r, false)
	require.NotNil(t, sess)
	assert.Len(t, sess.ID, session.SessionIDLength)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.SessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	r2.AddCookie(cookies[0])
	again := session.EnsureSession(httptest.NewRecorder(), r2, false)
	assert.Same(t, sess, again)

	session.DeleteSession(sess.ID)
	_, ok := session.GetSession(sess.ID)
	assert.False(t, ok)
}

func TestEnsureSession_SecureCookie(t *testing.T) {
	tests := []struct {
		name   string
		secure bool
		tls    bool
		want   bool
	}{
		{"plain http", false, false, false},
		{"configured behind proxy", true, false, true},
		{"direct tls", false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.tls {
				r.TLS = &tls.ConnectionState{}
			}

			sess := session.EnsureSession(w, r, tt.secure)
			t.Cleanup(func() { session.DeleteSession(sess.ID) })

			cookies := w.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, tt.want, cookies[0].Secure)
		})
	}
}

func TestConnect(t *testing.T) {
	srv := fakeInstance(t)
	sess := &session.Session{ID: "connect-test"}

	conn, err := session.Connect(context.Background(), sess, stdb.Config{URL: srv.URL, Database: "game"})
	require.NoError(t, err)
	assert.Same(t, conn, sess.Connection())
	require.Len(t, conn.Tables(), 1)
	assert.Equal(t, "players", conn.Tables()[0].Name)

	_, ok := conn.Table("players")
	assert.True(t, ok)

	session.Disconnect(sess)
	assert.Nil(t, sess.Connection())
}

func TestConnect_TableLoadFailureUsesClientLogger(t *testing.T) {
	srv := fakeInstance(t)
	sess := &session.Session{ID: "missing-db"}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	conn, err := session.Connect(context.Background(), sess, stdb.Config{URL: srv.URL, Database: "missing"}, stdb.WithLogger(logger))
	require.NoError(t, err)
	assert.Empty(t, conn.Tables())
	assert.Contains(t, logs.String(), "failed to load tables")
	assert.Contains(t, logs.String(), "database=missing")
}

func TestConnect_WithoutDatabase(t *testing.T) {
	srv := fakeInstance(t)
	sess := &session.Session{ID: "no-db"}

	conn, err := session.Connect(context.Background(), sess, stdb.Config{URL: srv.URL})
	require.NoError(t, err)
	assert.NotNil(t, conn.Tables())
	assert.Empty(t, conn.Tables())
}

func TestConnect_Failure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	sess := &session.Session{ID: "fail"}
	_, err := session.Connect(context.Background(), sess, stdb.Config{URL: srv.URL})
	assert.ErrorIs(t, err, stdb.ErrUnreachable)
	assert.Nil(t, sess.Connection())

	_, err = session.Connect(context.Background(), sess, stdb.Config{})
	assert.ErrorIs(t, err, stdb.ErrInvalidConfig)
}

func TestRefreshTables_KeepsPreviousOnError(t *testing.T) {
	srv := fakeInstance(t)
	client, err := stdb.New(stdb.Config{URL: srv.URL, Database: "missing"})
	require.NoError(t, err)

	conn := session.NewConnection(client)
	conn.SetTables([]stdb.TableInfo{{Name: "old"}})

	assert.Error(t, session.RefreshTables(context.Background(), conn))
	assert.Equal(t, "old", conn.Tables()[0].Name)
}

func TestRequireConnection(t *testing.T) {
	t.Run("not connected", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		conn, ok := session.RequireConnection(w, r, false)
		assert.False(t, ok)
		assert.Nil(t, conn)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "error", resp["status"])
		assert.Equal(t, "not connected to a database", resp["message"])
	})

	t.Run("connected", func(t *testing.T) {
		client, err := stdb.New(stdb.Config{URL: "http://localhost:3000"})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		sess := &session.Session{Conn: session.NewConnection(client)}
		session.SaveSession(w, r, sess, false)

		r = httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range w.Result().Cookies() {
			r.AddCookie(c)
		}

		conn, ok := session.RequireConnection(httptest.NewRecorder(), r, false)
		require.True(t, ok)
		assert.Same(t, sess.Conn, conn)
	})
}

func TestSweep(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	sess := &session.Session{ID: "sweep-me"}
	session.SaveSession(w, r, sess, false)

	assert.GreaterOrEqual(t, session.Sweep(time.Now().Add(session.SessionTTL+time.Minute)), 1)
	_, ok := session.GetSession("sweep-me")
	assert.False(t, ok)
}
