package api_connect

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dracory/api"
	"github.com/dracory/spacebase/shared/profiles"
	"github.com/dracory/spacebase/shared/session"
	"github.com/dracory/spacebase/shared/stdb"
	"github.com/dracory/spacebase/shared/types"
	"github.com/pkg/errors"
)

// apiConnectController handles connection requests
type apiConnectController struct {
	cfg types.Config
}

// New creates a new connection handler
func New(cfg types.Config) *apiConnectController {
	return &apiConnectController{
		cfg: cfg,
	}
}

// ConnectRequest represents a connection request
type ConnectRequest struct {
	ProfileID string `json:"profile_id"`
	Name      string `json:"name"`
	Mode      string `json:"mode"`
	URL       string `json:"url"`
	Host      string `json:"host"`
	Port      int    `json:"port"`
	Database  string `json:"database"`
	Token     string `json:"token"`
	Remember  bool   `json:"remember"`
}

// ParseRequest reads a ConnectRequest from form values. A request naming a
// profile skips the connection fields.
func ParseRequest(form url.Values) (ConnectRequest, error) {
	req := ConnectRequest{
		ProfileID: strings.TrimSpace(form.Get("profile_id")),
		Name:      strings.TrimSpace(form.Get("name")),
		Mode:      strings.TrimSpace(form.Get("mode")),
		URL:       strings.TrimSpace(form.Get("url")),
		Host:      strings.TrimSpace(form.Get("host")),
		Database:  strings.TrimSpace(form.Get("database")),
		Token:     strings.TrimSpace(form.Get("token")),
		Remember:  form.Get("remember") == "1" || form.Get("remember") == "true",
	}

	if req.ProfileID != "" {
		return req, nil
	}

	if req.Mode == "" {
		req.Mode = profiles.ModeHostPort
	}

	switch req.Mode {
	case profiles.ModeURL:
		if req.URL == "" {
			return req, errors.New("url is required")
		}
	case profiles.ModeHostPort:
		if req.Host == "" {
			return req, errors.New("host is required")
		}
		port, err := strconv.Atoi(strings.TrimSpace(form.Get("port")))
		if err != nil || port <= 0 || port > 65535 {
			return req, errors.New("port must be a number between 1 and 65535")
		}
		req.Port = port
	default:
		return req, errors.Errorf("unsupported mode: %s", req.Mode)
	}

	return req, nil
}

// Config returns the client config for the request.
func (req ConnectRequest) Config() stdb.Config {
	cfg := stdb.Config{Database: req.Database, Token: req.Token}
	if req.Mode == profiles.ModeURL {
		cfg.URL = req.URL
	} else {
		cfg.Host = req.Host
		cfg.Port = req.Port
	}
	return cfg
}

// FailureMessage is the message shown when the instance cannot be reached.
func FailureMessage(cfg stdb.Config) string {
	if cfg.URL != "" {
		return fmt.Sprintf("failed to connect to %s. Please check the URL and ensure SpacetimeDB is running.", cfg.URL)
	}
	return fmt.Sprintf("failed to connect to %s. Please check the host, port, and ensure SpacetimeDB is running.", cfg.Endpoint())
}

// ServeHTTP handles the HTTP request for connecting to an instance
func (h *apiConnectController) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s := session.EnsureSession(w, r, h.cfg.SecureCookies)
	if s == nil {
		api.Respond(w, r, api.Error("failed to create or retrieve session"))
		return
	}

	if r.Method != http.MethodPost {
		api.Respond(w, r, api.Error("connect must be POST"))
		return
	}

	if err := r.ParseForm(); err != nil {
		api.Respond(w, r, api.Error("failed to parse form"))
		return
	}

	req, err := ParseRequest(r.Form)
	if err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	var profile *profiles.Profile
	if req.ProfileID != "" {
		if h.cfg.Profiles == nil {
			api.Respond(w, r, api.Error("saved profiles are disabled"))
			return
		}
		p, err := h.cfg.Profiles.Get(r.Context(), req.ProfileID)
		if err != nil {
			api.Respond(w, r, api.Error(err.Error()))
			return
		}
		profile = p
	}

	cfg := req.Config()
	if profile != nil {
		cfg = profile.StdbConfig()
	}

	conn, err := session.Connect(r.Context(), s, cfg,
		stdb.WithTimeout(h.cfg.Timeout),
		stdb.WithLogger(h.cfg.Log()),
	)
	if err != nil {
		h.cfg.Log().Warn("connect failed",
			slog.String("endpoint", cfg.Endpoint()),
			slog.String("error", err.Error()),
		)
		if errors.Is(err, stdb.ErrInvalidConfig) {
			api.Respond(w, r, api.Error(err.Error()))
			return
		}
		api.Respond(w, r, api.Error(FailureMessage(cfg)))
		return
	}

	profileID := ""
	if req.Remember && h.cfg.Profiles != nil {
		if profile == nil {
			p := profiles.FromConfig(req.Name, cfg)
			profile = &p
		}
		if err := h.cfg.Profiles.Save(r.Context(), profile); err != nil {
			h.cfg.Log().Warn("failed to save profile", slog.String("error", err.Error()))
		} else {
			profileID = profile.ID
			profiles.SetLastProfile(w, r, profile.ID, h.cfg.SecureCookies)
		}
	}

	api.Respond(w, r, api.SuccessWithData("connected", map[string]any{
		"base_url":   conn.Client.BaseURL(),
		"endpoint":   cfg.Endpoint(),
		"database":   cfg.Database,
		"tables":     len(conn.Tables()),
		"profile_id": profileID,
	}))
}
