// Package profiles persists named connection settings for remote instances.
package profiles

import (
	"strings"
	"time"

	"github.com/dracory/spacebase/shared/stdb"
	"github.com/pkg/errors"
)

// Connection modes.
const (
	ModeURL      = "url"
	ModeHostPort = "host-port"
)

// ErrNotFound is returned when a profile id is unknown.
var ErrNotFound = errors.New("profile not found")

// Profile is a saved connection. Token holds the plaintext token in memory;
// stores encrypt it at rest.
type Profile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Mode     string `json:"mode"`
	URL      string `json:"url,omitempty"`
	Host     string `json:"host,omitempty"`
	Port     int    `json:"port,omitempty"`
	Database string `json:"database,omitempty"`
	Token    string `json:"-"`

	// TokenUnreadable is set when the stored token cannot be decrypted with
	// the current secret.
	TokenUnreadable bool `json:"token_unreadable,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasToken reports whether a token is stored, without exposing it.
func (p Profile) HasToken() bool {
	return p.Token != ""
}

// StdbConfig returns the client config for the profile. Only the fields of
// the selected mode are used.
func (p Profile) StdbConfig() stdb.Config {
	cfg := stdb.Config{
		Database: p.Database,
		Token:    p.Token,
	}
	if p.Mode == ModeURL {
		cfg.URL = p.URL
	} else {
		cfg.Host = p.Host
		cfg.Port = p.Port
	}
	return cfg
}

// FromConfig builds a profile from a client config. A config carrying a URL is
// saved in url mode.
func FromConfig(name string, cfg stdb.Config) Profile {
	p := Profile{
		Name:     strings.TrimSpace(name),
		Database: cfg.Database,
		Token:    cfg.Token,
	}
	if cfg.URL != "" {
		p.Mode = ModeURL
		p.URL = cfg.URL
	} else {
		p.Mode = ModeHostPort
		p.Host = cfg.Host
		p.Port = cfg.Port
	}
	if p.Name == "" {
		p.Name = cfg.Endpoint()
		if cfg.Database != "" {
			p.Name += "/" + cfg.Database
		}
	}
	return p
}

// Validate checks that the profile can produce a usable config.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("profile name is required")
	}
	switch p.Mode {
	case ModeURL:
		if strings.TrimSpace(p.URL) == "" {
			return errors.New("url is required")
		}
	case ModeHostPort:
		if strings.TrimSpace(p.Host) == "" || p.Port <= 0 {
			return errors.New("host and port are required")
		}
	default:
		return errors.Errorf("unsupported mode: %s", p.Mode)
	}
	return nil
}

// Summary is the public view of a profile. It never carries the token.
type Summary struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Mode            string    `json:"mode"`
	URL             string    `json:"url,omitempty"`
	Host            string    `json:"host,omitempty"`
	Port            int       `json:"port,omitempty"`
	Database        string    `json:"database,omitempty"`
	HasToken        bool      `json:"has_token"`
	TokenUnreadable bool      `json:"token_unreadable,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Summary returns the public view of p.
func (p Profile) Summary() Summary {
	return Summary{
		ID:              p.ID,
		Name:            p.Name,
		Mode:            p.Mode,
		URL:             p.URL,
		Host:            p.Host,
		Port:            p.Port,
		Database:        p.Database,
		HasToken:        p.HasToken(),
		TokenUnreadable: p.TokenUnreadable,
		UpdatedAt:       p.UpdatedAt,
	}
}
