package api_sql_export_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dracory/spacebase/api/api_sql_export"
	"github.com/dracory/spacebase/internal/stdbtest"
	"github.com/dracory/spacebase/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLExport_JSON(t *testing.T) {
	srv := stdbtest.New(t)
	srv.Game()
	cookie, _ := srv.Connected(t, "game")

	rr := httptest.NewRecorder()
	api_sql_export.New(types.Config{}).ServeHTTP(rr, stdbtest.Request(http.MethodPost, url.Values{
		"sql": {"SELECT * FROM players LIMIT 10 OFFSET 0"},
	}, cookie))

	assert.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t,
		`attachment; filename="query-results-`+time.Now().Format("2006-01-02")+`.json"`,
		rr.Header().Get("Content-Disposition"))

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rows))
	assert.Len(t, rows, 3)
	assert.Contains(t, rr.Body.String(), "\n  {")
}

func TestSQLExport_CSV(t *testing.T) {
	srv := stdbtest.New(t)
	srv.Game()
	cookie, _ := srv.Connected(t, "game")

	rr := httptest.NewRecorder()
	api_sql_export.New(types.Config{}).ServeHTTP(rr, stdbtest.Request(http.MethodPost, url.Values{
		"sql":    {"SELECT * FROM players LIMIT 1 OFFSET 0"},
		"format": {"csv"},
	}, cookie))

	assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(rr.Body.String()), "\n")
	assert.Equal(t, []string{"id,name,score", "1,ada,10"}, lines)
}

func TestSQLExport_Errors(t *testing.T) {
	srv := stdbtest.New(t)
	srv.Game()
	cookie, _ := srv.Connected(t, "game")

	tests := []struct {
		name            string
		cfg             types.Config
		form            url.Values
		expectedMessage string
	}{
		{"missing sql", types.Config{}, url.Values{}, "sql is required"},
		{"bad format", types.Config{}, url.Values{"sql": {"SELECT 1"}, "format": {"xml"}}, "unsupported export format: xml"},
		{"read-only", types.Config{ReadOnlyMode: true}, url.Values{"sql": {"DELETE FROM players"}}, "read-only mode: only SELECT-like statements are allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			api_sql_export.New(tt.cfg).ServeHTTP(rr, stdbtest.Request(http.MethodPost, tt.form, cookie))

			env := stdbtest.Decode(t, rr)
			assert.Equal(t, "error", env.Status)
			assert.Equal(t, tt.expectedMessage, env.Message)
		})
	}
}
