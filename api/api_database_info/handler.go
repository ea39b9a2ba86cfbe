package api_database_info

import (
	"net/http"
	"strings"

	"github.com/dracory/api"
	"github.com/dracory/spacebase/shared/session"
	"github.com/dracory/spacebase/shared/types"
)

// DatabaseInfo describes one database by name or identity
type DatabaseInfo struct {
	cfg types.Config
}

// New creates a new DatabaseInfo handler
func New(cfg types.Config) *DatabaseInfo {
	return &DatabaseInfo{cfg: cfg}
}

func (h *DatabaseInfo) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.Respond(w, r, api.Error("database_info must be GET"))
		return
	}

	conn, ok := session.RequireConnection(w, r, h.cfg.SecureCookies)
	if !ok {
		return
	}

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		api.Respond(w, r, api.Error("database name is required"))
		return
	}

	info, err := conn.Client.GetDatabaseInfo(r.Context(), name)
	if err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	api.Respond(w, r, api.SuccessWithData("database", map[string]any{
		"database": info,
	}))
}
