package api_sql_explain_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/dracory/spacebase/api/api_sql_explain"
	"github.com/dracory/spacebase/internal/stdbtest"
	"github.com/dracory/spacebase/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplain(t *testing.T) {
	got := api_sql_explain.Explain("SELECT * FROM players; -- cleanup\nDROP TABLE old;")
	require.Len(t, got, 2)
	assert.Equal(t, api_sql_explain.Statement{SQL: "SELECT * FROM players", Keyword: "select", ReadOnly: true}, got[0])
	assert.Equal(t, "drop", got[1].Keyword)
	assert.True(t, got[1].Destructive)
	assert.False(t, got[1].ReadOnly)
}

func TestSQLExplain(t *testing.T) {
	srv := stdbtest.New(t)
	srv.Game()
	cookie, _ := srv.Connected(t, "game")

	tests := []struct {
		name         string
		cfg          types.Config
		sql          string
		expectedMsg  string
		blocked      string
		needsConfirm bool
	}{
		{"select", types.Config{SafeModeDefault: true}, "SELECT * FROM players", "explain", "", false},
		{"drop in safe mode", types.Config{SafeModeDefault: true}, "DROP TABLE players", "explain", "", true},
		{"drop without safe mode", types.Config{}, "DROP TABLE players", "explain", "", false},
		{"insert in read-only mode", types.Config{ReadOnlyMode: true}, "INSERT INTO players (id) VALUES (9)", "explain", "read-only mode: only SELECT-like statements are allowed", false},
		{"empty", types.Config{}, "  ", "sql is required", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			api_sql_explain.New(tt.cfg).ServeHTTP(rr, stdbtest.Request(http.MethodPost, url.Values{"sql": {tt.sql}}, cookie))

			env := stdbtest.Decode(t, rr)
			assert.Equal(t, tt.expectedMsg, env.Message)
			if env.Status != "success" {
				return
			}
			assert.Equal(t, tt.blocked, env.Data["blocked"])
			assert.Equal(t, tt.needsConfirm, env.Data["needs_confirm"])
		})
	}

	assert.Empty(t, srv.Queries())
}

func TestSQLExplain_RequiresPost(t *testing.T) {
	rr := httptest.NewRecorder()
	api_sql_explain.New(types.Config{}).ServeHTTP(rr, stdbtest.Request(http.MethodGet, url.Values{}))
	assert.Equal(t, "sql_explain must be POST", stdbtest.Decode(t, rr).Message)
}
