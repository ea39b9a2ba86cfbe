package api_sql_export

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dracory/api"
	"github.com/dracory/spacebase/api/api_sql_execute"
	"github.com/dracory/spacebase/shared"
	"github.com/dracory/spacebase/shared/render"
	"github.com/dracory/spacebase/shared/session"
	"github.com/dracory/spacebase/shared/types"
	"github.com/samber/lo"
)

// SQLExport runs a statement and streams its rows as a download
type SQLExport struct {
	cfg types.Config
}

// New creates a new SQLExport handler
func New(cfg types.Config) *SQLExport {
	return &SQLExport{cfg: cfg}
}

func (h *SQLExport) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.Respond(w, r, api.Error("sql_export must be POST"))
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

	format := strings.ToLower(strings.TrimSpace(r.Form.Get("format")))
	if format == "" {
		format = render.FormatJSON
	}
	if !lo.Contains(render.ExportFormats, format) {
		api.Respond(w, r, api.Error("unsupported export format: "+format))
		return
	}

	if msg := api_sql_execute.Guard(h.cfg, sqlText, shared.Confirmed(r)); msg != "" {
		api.Respond(w, r, api.Error(msg))
		return
	}

	res := conn.Client.Query(r.Context(), sqlText, strings.TrimSpace(r.Form.Get("database")))
	if !res.Success {
		api.Respond(w, r, api.Error(res.Error))
		return
	}

	w.Header().Set("Content-Type", render.ExportContentType(format))
	w.Header().Set("Content-Disposition", `attachment; filename="`+render.ExportFilename(format, time.Now())+`"`)
	if err := render.Export(w, format, res.Data); err != nil {
		h.cfg.Log().Error("export failed", slog.String("format", format), slog.String("error", err.Error()))
	}
}
