package api_database_create

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dracory/api"
	"github.com/dracory/spacebase/shared/constants"
	"github.com/dracory/spacebase/shared/session"
	"github.com/dracory/spacebase/shared/types"
)

// DatabaseCreate creates a database on the connected instance
type DatabaseCreate struct {
	cfg types.Config
}

// New creates a new DatabaseCreate handler
func New(cfg types.Config) *DatabaseCreate {
	return &DatabaseCreate{cfg: cfg}
}

func (h *DatabaseCreate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.Respond(w, r, api.Error("database_create must be POST"))
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

	name := strings.TrimSpace(r.Form.Get("name"))
	if name == "" {
		api.Respond(w, r, api.Error("database name is required"))
		return
	}

	res := conn.Client.CreateDatabase(r.Context(), name)
	if !res.Success {
		api.Respond(w, r, api.Error(res.Error))
		return
	}

	api.Respond(w, r, api.SuccessWithData(fmt.Sprintf("Database %q created successfully!", name), map[string]any{
		"database": res.Database,
	}))
}
