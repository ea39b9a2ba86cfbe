package stdbtest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dracory/spacebase/shared/session"
	"github.com/dracory/spacebase/shared/stdb"
)

// Envelope is the decoded api response.
type Envelope struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

// Decode parses the api envelope written to rec.
func Decode(t testing.TB, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to parse response %q: %v", rec.Body.String(), err)
	}
	return env
}

// Request builds a request carrying values as a query (GET) or a form body.
func Request(method string, values url.Values, cookies ...*http.Cookie) *http.Request {
	var r *http.Request
	if method == http.MethodGet {
		r = httptest.NewRequest(method, "/?"+values.Encode(), nil)
	} else {
		r = httptest.NewRequest(method, "/", strings.NewReader(values.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

// Connected stores a session connected to database and returns its cookie.
func (s *Server) Connected(t testing.TB, database string) (*http.Cookie, *session.Session) {
	t.Helper()

	w := httptest.NewRecorder()
	sess := &session.Session{}
	session.SaveSession(w, httptest.NewRequest(http.MethodGet, "/", nil), sess, false)
	if _, err := session.Connect(context.Background(), sess, s.Config(database)); err != nil {
		t.Fatalf("connect: %v", err)
	}

	for _, c := range w.Result().Cookies() {
		if c.Name == session.SessionCookieName {
			return c, sess
		}
	}
	t.Fatal("session cookie not set")
	return nil, nil
}

// Players is a small table used across tests.
func Players() []map[string]any {
	return []map[string]any{
		{"id": 1, "name": "ada", "score": 10},
		{"id": 2, "name": "grace", "score": 20},
		{"id": 3, "name": "linus", "score": 30},
	}
}

// PlayersTable is the schema of the Players rows.
func PlayersTable() stdb.TableInfo {
	return stdb.TableInfo{
		Name: "players",
		Columns: []stdb.ColumnInfo{
			{Name: "id", Type: "u64"},
			{Name: "name", Type: "string"},
			{Name: "score", Type: "i32", Nullable: true},
		},
		PrimaryKey: []string{"id"},
	}
}

// Game registers a "game" database holding the players table and rows.
func (s *Server) Game() {
	s.AddDatabase("game", PlayersTable())
	s.SetRows("game", "players", Players())
}

// WasmHeader is the smallest valid WebAssembly module.
var WasmHeader = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
