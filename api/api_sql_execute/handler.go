package api_sql_execute

import (
	"net/http"
	"strings"
	"time"

	"github.com/dracory/api"
	"github.com/dracory/spacebase/shared"
	"github.com/dracory/spacebase/shared/render"
	"github.com/dracory/spacebase/shared/session"
	"github.com/dracory/spacebase/shared/stdb"
	"github.com/dracory/spacebase/shared/types"
)

// SQLExecute handles SQL statement execution
type SQLExecute struct {
	cfg types.Config
}

// New creates a new SQLExecute handler
func New(cfg types.Config) *SQLExecute {
	return &SQLExecute{cfg: cfg}
}

// Guard applies the read-only and safe mode rules to a statement. It returns
// the message to report, or "" when the statement may run.
func Guard(cfg types.Config, sqlText string, confirmed bool) string {
	if cfg.ReadOnlyMode && !stdb.IsReadOnly(sqlText) {
		return "read-only mode: only SELECT-like statements are allowed"
	}
	if cfg.SafeModeDefault && stdb.IsDestructive(sqlText) && !confirmed {
		return "blocked by safe mode: resend with confirm=yes to run DROP, ALTER or TRUNCATE"
	}
	return ""
}

func (h *SQLExecute) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.Respond(w, r, api.Error("sql_execute must be POST"))
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

	sqlText := strings.TrimSpace(r.Form.Get("sql"))
	if sqlText == "" {
		api.Respond(w, r, api.Error("sql is required"))
		return
	}

	if msg := Guard(h.cfg, sqlText, shared.Confirmed(r)); msg != "" {
		api.Respond(w, r, api.Error(msg))
		return
	}

	database := strings.TrimSpace(r.Form.Get("database"))

	start := time.Now()
	res := conn.Client.Query(r.Context(), sqlText, database)
	elapsed := time.Since(start)
	if !res.Success {
		api.Respond(w, r, api.Error(res.Error))
		return
	}

	api.Respond(w, r, api.SuccessWithData("query executed", map[string]any{
		"columns":       render.Columns(res.Data),
		"rows":          res.Data,
		"row_count":     len(res.Data),
		"rows_affected": res.Affected(),
		"duration_ms":   elapsed.Milliseconds(),
	}))
}
