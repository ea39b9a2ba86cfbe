package api_row_insert

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

// RowInsert adds a row to a table
type RowInsert struct {
	cfg types.Config
}

// New creates a new RowInsert handler
func New(cfg types.Config) *RowInsert {
	return &RowInsert{cfg: cfg}
}

func (h *RowInsert) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.Respond(w, r, api.Error("row_insert must be POST"))
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

	if table, found := session.LookupTable(r.Context(), conn, name); found {
		data = stdb.CoerceData(table, data)
	}

	res := conn.Client.InsertData(r.Context(), name, data, "")
	if !res.Success {
		api.Respond(w, r, api.Error(res.Error))
		return
	}

	api.Respond(w, r, api.SuccessWithData("Row added successfully", map[string]any{
		"table":         name,
		"rows_affected": res.Affected(),
	}))
}
