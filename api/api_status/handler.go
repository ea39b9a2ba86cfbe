package api_status

import (
	"net/http"

	"github.com/dracory/api"
	"github.com/dracory/spacebase/shared/session"
	"github.com/dracory/spacebase/shared/types"
)

// apiStatusController reports the session's connection state
type apiStatusController struct {
	cfg types.Config
}

// New creates a new status handler
func New(cfg types.Config) *apiStatusController {
	return &apiStatusController{cfg: cfg}
}

func (h *apiStatusController) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.Respond(w, r, api.Error("status must be GET"))
		return
	}

	s := session.EnsureSession(w, r, h.cfg.SecureCookies)
	conn := s.Connection()
	if conn == nil {
		api.Respond(w, r, api.SuccessWithData("not connected", map[string]any{
			"connected": false,
			"safe_mode": h.cfg.SafeModeDefault,
			"read_only": h.cfg.ReadOnlyMode,
		}))
		return
	}

	api.Respond(w, r, api.SuccessWithData("connected", map[string]any{
		"connected":    true,
		"base_url":     conn.Client.BaseURL(),
		"url":          conn.Config.URL,
		"host":         conn.Config.Host,
		"port":         conn.Config.Port,
		"database":     conn.Config.Database,
		"tables":       len(conn.Tables()),
		"connected_at": conn.ConnectedAt,
		"safe_mode":    h.cfg.SafeModeDefault,
		"read_only":    h.cfg.ReadOnlyMode,
	}))
}
