package api_rows_browse

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dracory/api"
	"github.com/dracory/spacebase/shared/constants"
	"github.com/dracory/spacebase/shared/render"
	"github.com/dracory/spacebase/shared/session"
	"github.com/dracory/spacebase/shared/stdb"
	"github.com/dracory/spacebase/shared/types"
	"github.com/samber/lo"
)

// RowsBrowse returns one page of a table
type RowsBrowse struct {
	cfg types.Config
}

// New creates a new RowsBrowse handler
func New(cfg types.Config) *RowsBrowse {
	return &RowsBrowse{cfg: cfg}
}

// Paging reads the 0-based page and the page size, clamping the size to
// MaxBrowseLimit.
func Paging(page, limit string) (int, int) {
	p, err := strconv.Atoi(strings.TrimSpace(page))
	if err != nil || p < 0 {
		p = 0
	}

	l, err := strconv.Atoi(strings.TrimSpace(limit))
	if err != nil || l <= 0 {
		l = constants.DefaultBrowseLimit
	}
	if l > constants.MaxBrowseLimit {
		l = constants.MaxBrowseLimit
	}
	return p, l
}

func (h *RowsBrowse) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.Respond(w, r, api.Error("rows_browse must be GET"))
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

	page, limit := Paging(q.Get("page"), q.Get("limit"))

	res := conn.Client.GetTableData(r.Context(), name, "", limit, page*limit)
	if !res.Success {
		api.Respond(w, r, api.Error(res.Error))
		return
	}

	columns := render.Columns(res.Data)
	keys := []string{}
	if table, found := session.LookupTable(r.Context(), conn, name); found {
		columns = lo.Map(table.Columns, func(c stdb.ColumnInfo, _ int) string { return c.Name })
		keys = stdb.KeyColumns(table)
	}

	api.Respond(w, r, api.SuccessWithData("rows", map[string]any{
		"table":       name,
		"columns":     columns,
		"key_columns": keys,
		"rows":        res.Data,
		"page":        page,
		"limit":       limit,
		"has_more":    len(res.Data) == limit,
	}))
}
