package api_row_delete

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

// RowDelete removes a row identified by its key columns
type RowDelete struct {
	cfg types.Config
}

// New creates a new RowDelete handler
func New(cfg types.Config) *RowDelete {
	return &RowDelete{cfg: cfg}
}

func (h *RowDelete) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.Respond(w, r, api.Error("row_delete must be POST"))
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

	row, err := shared.ParseJSONObject(r.Form.Get("row"))
	if err != nil {
		api.Respond(w, r, api.Error("row must be a JSON object: "+err.Error()))
		return
	}

	if h.cfg.SafeModeDefault && !shared.Confirmed(r) {
		api.Respond(w, r, api.Error("confirmation required: resend with confirm=yes"))
		return
	}

	table, found := session.LookupTable(r.Context(), conn, name)
	if !found {
		api.Respond(w, r, api.Error("table not found: "+name))
		return
	}

	where, err := stdb.WhereForRow(table, row)
	if err != nil {
		api.Respond(w, r, api.Error("cannot delete row: no primary key found"))
		return
	}

	res := conn.Client.DeleteData(r.Context(), name, where, "")
	if !res.Success {
		api.Respond(w, r, api.Error(res.Error))
		return
	}

	api.Respond(w, r, api.SuccessWithData("Row deleted successfully", map[string]any{
		"table":         name,
		"rows_affected": res.Affected(),
	}))
}
