package api_tables_list_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/dracory/spacebase/api/api_tables_list"
	"github.com/dracory/spacebase/internal/stdbtest"
	"github.com/dracory/spacebase/shared/stdb"
	"github.com/dracory/spacebase/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTablesList(t *testing.T) {
	srv := stdbtest.New(t)
	srv.Game()
	cookie, _ := srv.Connected(t, "game")
	handler := api_tables_list.New(types.Config{})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, stdbtest.Request(http.MethodGet, url.Values{}, cookie))

	env := stdbtest.Decode(t, rr)
	require.Equal(t, "success", env.Status)
	tables, ok := env.Data["tables"].([]any)
	require.True(t, ok)
	require.Len(t, tables, 1)
	first := tables[0].(map[string]any)
	assert.Equal(t, "players", first["name"])
	assert.Equal(t, float64(3), first["columns"])
	assert.Equal(t, []any{"id"}, first["primary_key"])
}

func TestTablesList_Refresh(t *testing.T) {
	srv := stdbtest.New(t)
	srv.Game()
	cookie, sess := srv.Connected(t, "game")

	srv.SetTables("game", stdbtest.PlayersTable(), stdb.TableInfo{Name: "items", Columns: []stdb.ColumnInfo{{Name: "sku", Type: "string"}}})

	handler := api_tables_list.New(types.Config{})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, stdbtest.Request(http.MethodGet, url.Values{}, cookie))
	assert.Len(t, stdbtest.Decode(t, rr).Data["tables"], 1)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, stdbtest.Request(http.MethodGet, url.Values{"refresh": {"1"}}, cookie))
	assert.Len(t, stdbtest.Decode(t, rr).Data["tables"], 2)
	assert.Len(t, sess.Connection().Tables(), 2)
}

func TestTablesList_NotConnected(t *testing.T) {
	rr := httptest.NewRecorder()
	api_tables_list.New(types.Config{}).ServeHTTP(rr, stdbtest.Request(http.MethodGet, url.Values{}))

	env := stdbtest.Decode(t, rr)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "not connected to a database", env.Message)
}
