package api_profiles_list

import (
	"net/http"

	"github.com/dracory/api"
	"github.com/dracory/spacebase/shared/profiles"
	"github.com/dracory/spacebase/shared/types"
	"github.com/samber/lo"
)

// Handler handles the profiles list API requests
type Handler struct {
	config types.Config
}

// New creates a new profiles list handler
func New(config types.Config) *Handler {
	return &Handler{
		config: config,
	}
}

// ServeHTTP handles the HTTP request
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.Respond(w, r, api.Error("method not allowed"))
		return
	}

	if h.config.Profiles == nil {
		api.Respond(w, r, api.SuccessWithData("", map[string]any{
			"profiles":     []profiles.Summary{},
			"last_profile": "",
		}))
		return
	}

	list, err := h.config.Profiles.List(r.Context())
	if err != nil {
		api.Respond(w, r, api.Error("failed to get profiles: "+err.Error()))
		return
	}

	api.Respond(w, r, api.SuccessWithData("", map[string]any{
		"profiles":     lo.Map(list, func(p profiles.Profile, _ int) profiles.Summary { return p.Summary() }),
		"last_profile": profiles.LastProfile(r),
	}))
}
