package api_sql_explain

import (
	"net/http"
	"strings"

	"github.com/dracory/api"
	"github.com/dracory/spacebase/api/api_sql_execute"
	"github.com/dracory/spacebase/shared/session"
	"github.com/dracory/spacebase/shared/stdb"
	"github.com/dracory/spacebase/shared/types"
	"github.com/samber/lo"
)

// SQLExplain describes what the console would do with a script, without
// sending it to the instance.
type SQLExplain struct {
	cfg types.Config
}

// New creates a new SQLExplain handler
func New(cfg types.Config) *SQLExplain {
	return &SQLExplain{cfg: cfg}
}

// Statement is the classification of one statement of a script.
type Statement struct {
	SQL         string `json:"sql"`
	Keyword     string `json:"keyword"`
	ReadOnly    bool   `json:"read_only"`
	Destructive bool   `json:"destructive"`
}

// Explain splits sqlText into statements and classifies each one.
func Explain(sqlText string) []Statement {
	return lo.Map(stdb.Statements(sqlText), func(s string, _ int) Statement {
		return Statement{
			SQL:         s,
			Keyword:     stdb.Keyword(s),
			ReadOnly:    stdb.IsReadOnly(s),
			Destructive: stdb.IsDestructive(s),
		}
	})
}

func (h *SQLExplain) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.Respond(w, r, api.Error("sql_explain must be POST"))
		return
	}

	if _, ok := session.RequireConnection(w, r, h.cfg.SecureCookies); !ok {
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

	statements := Explain(sqlText)
	blocked := api_sql_execute.Guard(h.cfg, sqlText, true)

	api.Respond(w, r, api.SuccessWithData("explain", map[string]any{
		"statements":    statements,
		"read_only":     stdb.IsReadOnly(sqlText),
		"destructive":   stdb.IsDestructive(sqlText),
		"blocked":       blocked,
		"needs_confirm": blocked == "" && api_sql_execute.Guard(h.cfg, sqlText, false) != "",
	}))
}
