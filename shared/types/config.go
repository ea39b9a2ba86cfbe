package types

import (
	"log/slog"
	"time"

	"github.com/dracory/spacebase/shared/profiles"
)

// Config contains the configuration for web handlers
type Config struct {
	// HTTPPort is the port the server listens on
	HTTPPort int
	// BasePath is the base URL path for the application
	BasePath string
	// ActionParam is the query parameter used for actions
	ActionParam string
	// SafeModeDefault requires confirmation for destructive operations
	SafeModeDefault bool
	// ReadOnlyMode only lets read statements through the SQL console
	ReadOnlyMode bool
	// SessionSecret is the secret used for CSRF tokens and token encryption
	SessionSecret string
	// SecureCookies marks cookies Secure regardless of the request scheme
	SecureCookies bool
	// CSRFProtection enables CSRF checks on POST API actions
	CSRFProtection bool

	// ProfileStoreDriver is one of sqlite, postgres, mysql, sqlserver
	ProfileStoreDriver string
	// ProfileStoreDSN is the data source of the profile store
	ProfileStoreDSN string

	// DefaultHost and DefaultPort prefill the login form
	DefaultHost string
	DefaultPort int
	// Timeout bounds each request to the remote instance
	Timeout time.Duration

	LogLevel  string
	LogFormat string

	// Profiles is the profile store; nil disables saved profiles
	Profiles profiles.Store `json:"-"`
	// Logger defaults to slog.Default()
	Logger *slog.Logger `json:"-"`
}

// Log returns the configured logger.
func (c Config) Log() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Action returns the action query parameter name.
func (c Config) Action() string {
	if c.ActionParam == "" {
		return "action"
	}
	return c.ActionParam
}
