package api_database_delete

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dracory/api"
	"github.com/dracory/spacebase/shared"
	"github.com/dracory/spacebase/shared/constants"
	"github.com/dracory/spacebase/shared/session"
	"github.com/dracory/spacebase/shared/types"
)

// DatabaseDelete deletes a database from the connected instance
type DatabaseDelete struct {
	cfg types.Config
}

// New creates a new DatabaseDelete handler
func New(cfg types.Config) *DatabaseDelete {
	return &DatabaseDelete{cfg: cfg}
}

func (h *DatabaseDelete) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.Respond(w, r, api.Error("database_delete must be POST"))
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

	if h.cfg.SafeModeDefault && !shared.Confirmed(r) {
		api.Respond(w, r, api.Error("confirmation required: resend with confirm=yes"))
		return
	}

	if err := conn.Client.DeleteDatabase(r.Context(), name); err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	// the session keeps pointing at a deleted database until it reconnects
	if name == conn.Config.Database {
		conn.SetTables(nil)
	}

	api.Respond(w, r, api.Success(fmt.Sprintf("Database %q deleted successfully!", name)))
}
