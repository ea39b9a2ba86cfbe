package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dracory/spacebase"
	"github.com/dracory/spacebase/shared/logging"
	"github.com/dracory/spacebase/shared/profiles"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "spacebase:", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration (flags override env)
	cfg, err := spacebase.LoadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slog.SetDefault(logger)
	cfg.Logger = logger

	if spacebase.UsesDevSecret(cfg) {
		logger.Warn("SESSION_SECRET is not set, using the development secret; stored tokens and CSRF tokens are not protected")
	}

	db, err := profiles.Open(cfg.ProfileStoreDriver, cfg.ProfileStoreDSN)
	if err != nil {
		return err
	}
	store, err := profiles.NewGormStore(db, cfg.SessionSecret)
	if err != nil {
		return err
	}
	cfg.Profiles = store.WithLogger(logger)

	app := spacebase.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go app.SweepSessions(ctx, spacebase.SweepInterval)

	mux := http.NewServeMux()
	mux.Handle(mountPath(cfg.BasePath), app.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           spacebase.RequestLogger(logger, mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("SpaceBase listening",
			slog.String("addr", srv.Addr),
			slog.String("mount", cfg.BasePath),
			slog.String("profile_store", cfg.ProfileStoreDriver),
			slog.Bool("safe_mode", cfg.SafeModeDefault),
			slog.Bool("read_only", cfg.ReadOnlyMode),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// mountPath turns a base path into a ServeMux pattern covering it.
func mountPath(base string) string {
	if base == "" || base == "/" {
		return "/"
	}
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	return base
}
