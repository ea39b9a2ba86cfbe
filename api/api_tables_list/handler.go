package api_tables_list

import (
	"net/http"

	"github.com/dracory/api"
	"github.com/dracory/spacebase/shared/session"
	"github.com/dracory/spacebase/shared/stdb"
	"github.com/dracory/spacebase/shared/types"
	"github.com/samber/lo"
)

// TablesList lists the tables of the connected database
type TablesList struct {
	cfg types.Config
}

// New creates a new TablesList handler
func New(cfg types.Config) *TablesList {
	return &TablesList{cfg: cfg}
}

// TableSummary is one entry of the table list.
type TableSummary struct {
	Name       string   `json:"name"`
	Columns    int      `json:"columns"`
	PrimaryKey []string `json:"primary_key"`
}

func (h *TablesList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.Respond(w, r, api.Error("tables_list must be GET"))
		return
	}

	conn, ok := session.RequireConnection(w, r, h.cfg.SecureCookies)
	if !ok {
		return
	}

	if r.URL.Query().Get("refresh") == "1" {
		if err := session.RefreshTables(r.Context(), conn); err != nil {
			api.Respond(w, r, api.Error("failed to load tables: "+err.Error()))
			return
		}
	}

	tables := lo.Map(conn.Tables(), func(t stdb.TableInfo, _ int) TableSummary {
		return TableSummary{
			Name:       t.Name,
			Columns:    len(t.Columns),
			PrimaryKey: stdb.KeyColumns(t),
		}
	})

	api.Respond(w, r, api.SuccessWithData("tables", map[string]any{
		"database": conn.Config.Database,
		"tables":   tables,
	}))
}
