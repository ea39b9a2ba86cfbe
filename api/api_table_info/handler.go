package api_table_info

import (
	"net/http"
	"strings"

	"github.com/dracory/api"
	"github.com/dracory/spacebase/shared/session"
	"github.com/dracory/spacebase/shared/stdb"
	"github.com/dracory/spacebase/shared/types"
)

// TableInfo returns the columns and key columns of one table
type TableInfo struct {
	cfg types.Config
}

// New creates a new TableInfo handler
func New(cfg types.Config) *TableInfo {
	return &TableInfo{cfg: cfg}
}

func (h *TableInfo) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.Respond(w, r, api.Error("table_info must be GET"))
		return
	}

	conn, ok := session.RequireConnection(w, r, h.cfg.SecureCookies)
	if !ok {
		return
	}

	name := strings.TrimSpace(r.URL.Query().Get("table"))
	if name == "" {
		api.Respond(w, r, api.Error("table is required"))
		return
	}

	table, found := session.LookupTable(r.Context(), conn, name)
	if !found {
		api.Respond(w, r, api.Error("table not found: "+name))
		return
	}

	api.Respond(w, r, api.SuccessWithData("table", map[string]any{
		"table":       table,
		"key_columns": stdb.KeyColumns(table),
	}))
}
