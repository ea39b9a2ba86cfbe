package api_row_update

import (
	"net/http"
	"strings"

	"github.com/dracory/api"
	"github.com/dracory/spacebase/shared"
	"github.com/dracory/spacebase/shared/constants"
	"github.com/dracory/spacebase/shared/session"
	"github.com/dracory/spacebase/shared/stdb"
	"github.com/dracory/spacebase/shared/types"
)

// RowUpdate changes a row identified by its original key values
type RowUpdate struct {
	cfg types.Config
}

// New creates a new RowUpdate handler
func New(cfg types.Config) *RowUpdate {
	return &RowUpdate{cfg: cfg}
}

func (h *RowUpdate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.Respond(w, r, api.Error("row_update must be POST"))
		return
	}

	if h.cfg.ReadOnlyMode {
		api.Respond(w, r, api.Error(constants.ReadOnlyMessage))
		return
	}

	conn, ok := session.RequireConnection(w, r, h.cfg.SecureCookies)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		api.Respond(w, r, api.Error("failed to parse form"))
		return
	}

	name := strings.TrimSpace(r.Form.Get("table"))
	if name == "" {
		api.Respond(w, r, api.Error("table is required"))
		return
	}

	data, err := shared.ParseJSONObject(r.Form.Get("data"))
	if err != nil {
		api.Respond(w, r, api.Error("data must be a JSON object: "+err.Error()))
		return
	}

	row, err := shared.ParseJSONObject(r.Form.Get("row"))
	if err != nil {
		api.Respond(w, r, api.Error("row must be a JSON object: "+err.Error()))
		return
	}

	table, found := session.LookupTable(r.Context(), conn, name)
	if !found {
		api.Respond(w, r, api.Error("table not found: "+name))
		return
	}

	where, err := stdb.WhereForRow(table, row)
	if err != nil {
		api.Respond(w, r, api.Error("cannot update row: no primary key found"))
		return
	}

	res := conn.Client.UpdateData(r.Context(), name, stdb.CoerceData(table, data), where, "")
	if !res.Success {
		api.Respond(w, r, api.Error(res.Error))
		return
	}

	api.Respond(w, r, api.SuccessWithData("Row updated successfully", map[string]any{
		"table":         name,
		"rows_affected": res.Affected(),
	}))
}
