package spacebase

import (
	"flag"
	"strings"
	"time"

	"github.com/dracory/env"
	"github.com/dracory/spacebase/shared/constants"
	"github.com/dracory/spacebase/shared/types"
	"github.com/pkg/errors"
)

// DevSessionSecret is the session secret used when SESSION_SECRET is unset.
// It is only fit for local development.
const DevSessionSecret = "dev-insecure-change-me"

// UsesDevSecret reports whether cfg runs on the development session secret.
func UsesDevSecret(cfg types.Config) bool {
	return cfg.SessionSecret == DevSessionSecret
}

// LoadConfig reads flags/env with sensible defaults.
// Flags take precedence over env.
func LoadConfig(args []string) (types.Config, error) {
	var cfg types.Config

	// Optionally load from .env files (missing files are ignored inside the lib)
	env.Load(".env")

	cfg.HTTPPort = env.GetIntOrDefault("HTTP_PORT", 8080)
	cfg.BasePath = env.GetStringOrDefault("BASE_URL", "/")
	cfg.SessionSecret = env.GetStringOrDefault("SESSION_SECRET", DevSessionSecret)
	cfg.SafeModeDefault = env.GetBoolOrDefault("SAFE_MODE_DEFAULT", true)
	cfg.ReadOnlyMode = env.GetBoolOrDefault("READ_ONLY_MODE", false)
	cfg.SecureCookies = env.GetBoolOrDefault("SECURE_COOKIES", false)
	cfg.CSRFProtection = env.GetBoolOrDefault("CSRF_PROTECTION", true)
	cfg.ActionParam = env.GetStringOrDefault("ACTION_PARAM", "action")
	cfg.ProfileStoreDriver = env.GetStringOrDefault("PROFILE_STORE_DRIVER", "sqlite")
	cfg.ProfileStoreDSN = env.GetStringOrDefault("PROFILE_STORE_DSN", "spacebase.db")
	cfg.DefaultHost = env.GetStringOrDefault("STDB_DEFAULT_HOST", constants.DefaultHost)
	cfg.DefaultPort = env.GetIntOrDefault("STDB_DEFAULT_PORT", constants.DefaultPort)
	cfg.Timeout = time.Duration(env.GetIntOrDefault("STDB_TIMEOUT_SECONDS", 30)) * time.Second
	cfg.LogLevel = env.GetStringOrDefault("LOG_LEVEL", "info")
	cfg.LogFormat = env.GetStringOrDefault("LOG_FORMAT", "console")

	fs := flag.NewFlagSet("spacebase", flag.ContinueOnError)
	port := fs.Int("port", cfg.HTTPPort, "HTTP port to listen on")
	base := fs.String("base", cfg.BasePath, "Base path to mount handler under (e.g. /admin)")
	safe := fs.Bool("safe", cfg.SafeModeDefault, "Safe mode default (confirm destructive ops)")
	readOnly := fs.Bool("read-only", cfg.ReadOnlyMode, "Disable every change to the instance")
	driver := fs.String("store", cfg.ProfileStoreDriver, "Profile store driver (sqlite, postgres, mysql, sqlserver)")
	dsn := fs.String("store-dsn", cfg.ProfileStoreDSN, "Profile store data source")
	logLevel := fs.String("log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	cfg.HTTPPort = *port
	cfg.BasePath = *base
	cfg.SafeModeDefault = *safe
	cfg.ReadOnlyMode = *readOnly
	cfg.ProfileStoreDriver = *driver
	cfg.ProfileStoreDSN = *dsn
	cfg.LogLevel = *logLevel

	if strings.TrimSpace(cfg.SessionSecret) == "" {
		return cfg, errors.New("SESSION_SECRET is required")
	}
	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		return cfg, errors.Errorf("invalid port: %d", cfg.HTTPPort)
	}
	if cfg.Timeout <= 0 {
		return cfg, errors.New("STDB_TIMEOUT_SECONDS must be positive")
	}
	return cfg, nil
}
