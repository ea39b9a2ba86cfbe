package api_row_view

import (
	"net/http"
	"strings"

	"github.com/dracory/api"
	"github.com/dracory/spacebase/shared/session"
	"github.com/dracory/spacebase/shared/stdb"
	"github.com/dracory/spacebase/shared/types"
)

// KeyPrefix marks query parameters carrying key column values.
const KeyPrefix = "key_"

// RowView fetches a single row by its key columns
type RowView struct {
	cfg types.Config
}

// New creates a new RowView handler
func New(cfg types.Config) *RowView {
	return &RowView{cfg: cfg}
}

func (h *RowView) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.Respond(w, r, api.Error("row_view must be GET"))
		return
	}

	conn, ok := session.RequireConnection(w, r, h.cfg.SecureCookies)
	if !ok {
		return
	}

	q := r.URL.Query()
	name := strings.TrimSpace(q.Get("table"))
	if name == "" {
		api.Respond(w, r, api.Error("table is required"))
		return
	}

	keys := map[string]string{}
	for param, values := range q {
		if col, found := strings.CutPrefix(param, KeyPrefix); found && col != "" && len(values) > 0 {
			keys[col] = values[0]
		}
	}
	if len(keys) == 0 {
		api.Respond(w, r, api.Error("row key is required"))
		return
	}

	table, _ := session.LookupTable(r.Context(), conn, name)
	where := stdb.CoerceRow(table, keys)

	res := conn.Client.GetRow(r.Context(), name, where, "")
	if !res.Success {
		api.Respond(w, r, api.Error(res.Error))
		return
	}
	if len(res.Data) == 0 {
		api.Respond(w, r, api.Error("row not found"))
		return
	}

	api.Respond(w, r, api.SuccessWithData("row", map[string]any{
		"table": name,
		"row":   res.Data[0],
	}))
}
