package api_profiles_delete

import (
	"net/http"
	"strings"

	"github.com/dracory/api"
	"github.com/dracory/spacebase/shared/profiles"
	"github.com/dracory/spacebase/shared/types"
)

// Handler handles profile delete requests
type Handler struct {
	config types.Config
}

// New creates a new profiles delete handler
func New(config types.Config) *Handler {
	return &Handler{config: config}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.Respond(w, r, api.Error("method not allowed"))
		return
	}

	if h.config.Profiles == nil {
		api.Respond(w, r, api.Error("saved profiles are disabled"))
		return
	}

	if err := r.ParseForm(); err != nil {
		api.Respond(w, r, api.Error("failed to parse form"))
		return
	}

	id := strings.TrimSpace(r.Form.Get("id"))
	if id == "" {
		api.Respond(w, r, api.Error("id is required"))
		return
	}

	if err := h.config.Profiles.Delete(r.Context(), id); err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	if profiles.LastProfile(r) == id {
		profiles.ForgetLastProfile(w, r, h.config.SecureCookies)
	}

	api.Respond(w, r, api.Success("profile deleted"))
}
