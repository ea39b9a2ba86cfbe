package api_databases_list

import (
	"net/http"

	"github.com/dracory/api"
	"github.com/dracory/spacebase/shared/session"
	"github.com/dracory/spacebase/shared/types"
)

// DatabasesList lists the databases hosted by the connected instance
type DatabasesList struct {
	cfg types.Config
}

// New creates a new DatabasesList handler
func New(cfg types.Config) *DatabasesList {
	return &DatabasesList{cfg: cfg}
}

func (h *DatabasesList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.Respond(w, r, api.Error("databases_list must be GET"))
		return
	}

	conn, ok := session.RequireConnection(w, r, h.cfg.SecureCookies)
	if !ok {
		return
	}

	names, err := conn.Client.ListDatabases(r.Context())
	if err != nil {
		api.Respond(w, r, api.Error("failed to load databases: "+err.Error()))
		return
	}

	api.Respond(w, r, api.SuccessWithData("databases", map[string]any{
		"databases": names,
		"current":   conn.Config.Database,
	}))
}
