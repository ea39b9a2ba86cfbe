package api_disconnect

import (
	"net/http"

	"github.com/dracory/api"
	"github.com/dracory/spacebase/shared/profiles"
	"github.com/dracory/spacebase/shared/session"
	"github.com/dracory/spacebase/shared/types"
)

// apiDisconnectController clears the session's connection
type apiDisconnectController struct {
	cfg types.Config
}

// New creates a new disconnect handler
func New(cfg types.Config) *apiDisconnectController {
	return &apiDisconnectController{cfg: cfg}
}

func (h *apiDisconnectController) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.Respond(w, r, api.Error("disconnect must be POST"))
		return
	}

	if s := session.FromRequest(r); s != nil {
		session.Disconnect(s)
	}
	profiles.ForgetLastProfile(w, r, h.cfg.SecureCookies)

	api.Respond(w, r, api.Success("disconnected"))
}
