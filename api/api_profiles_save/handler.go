package api_profiles_save

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dracory/api"
	"github.com/dracory/spacebase/shared/profiles"
	"github.com/dracory/spacebase/shared/types"
	"github.com/pkg/errors"
)

// Handler handles profile save requests
type Handler struct {
	config types.Config
}

// New creates a new ProfilesSave handler
func New(config types.Config) *Handler {
	return &Handler{config: config}
}

// ServeHTTP creates a profile, or updates the one named by id. Updating with
// an empty token keeps the stored token unless clear_token=1.
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

	p := profiles.Profile{
		ID:       strings.TrimSpace(r.Form.Get("id")),
		Name:     strings.TrimSpace(r.Form.Get("name")),
		Mode:     strings.TrimSpace(r.Form.Get("mode")),
		URL:      strings.TrimSpace(r.Form.Get("url")),
		Host:     strings.TrimSpace(r.Form.Get("host")),
		Database: strings.TrimSpace(r.Form.Get("database")),
		Token:    strings.TrimSpace(r.Form.Get("token")),
	}
	if p.Mode == "" {
		p.Mode = profiles.ModeHostPort
	}
	if port := strings.TrimSpace(r.Form.Get("port")); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			api.Respond(w, r, api.Error("port must be a number"))
			return
		}
		p.Port = n
	}

	if p.ID != "" && p.Token == "" && r.Form.Get("clear_token") != "1" {
		existing, err := h.config.Profiles.Get(r.Context(), p.ID)
		if err != nil && !errors.Is(err, profiles.ErrNotFound) {
			api.Respond(w, r, api.Error(err.Error()))
			return
		}
		if existing != nil {
			p.Token = existing.Token
		}
	}

	if err := h.config.Profiles.Save(r.Context(), &p); err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	api.Respond(w, r, api.SuccessWithData("profile saved", map[string]any{
		"profile": p.Summary(),
	}))
}
