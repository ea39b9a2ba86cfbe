// Package spacebase is a browser-based administration console for a remote
// SpacetimeDB instance. It browses schemas, runs SQL, edits rows and manages
// databases and modules over the instance's HTTP API.
package spacebase

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dracory/api"
	"github.com/dracory/spacebase/api/api_connect"
	"github.com/dracory/spacebase/api/api_database_create"
	"github.com/dracory/spacebase/api/api_database_delete"
	"github.com/dracory/spacebase/api/api_database_info"
	"github.com/dracory/spacebase/api/api_databases_list"
	"github.com/dracory/spacebase/api/api_disconnect"
	"github.com/dracory/spacebase/api/api_module_publish"
	"github.com/dracory/spacebase/api/api_profiles_delete"
	"github.com/dracory/spacebase/api/api_profiles_list"
	"github.com/dracory/spacebase/api/api_profiles_save"
	"github.com/dracory/spacebase/api/api_row_delete"
	"github.com/dracory/spacebase/api/api_row_insert"
	"github.com/dracory/spacebase/api/api_row_update"
	"github.com/dracory/spacebase/api/api_row_view"
	"github.com/dracory/spacebase/api/api_rows_browse"
	"github.com/dracory/spacebase/api/api_sql_execute"
	"github.com/dracory/spacebase/api/api_sql_explain"
	"github.com/dracory/spacebase/api/api_sql_export"
	"github.com/dracory/spacebase/api/api_status"
	"github.com/dracory/spacebase/api/api_table_info"
	"github.com/dracory/spacebase/api/api_tables_list"
	"github.com/dracory/spacebase/pages/page_database"
	"github.com/dracory/spacebase/pages/page_home"
	"github.com/dracory/spacebase/pages/page_login"
	"github.com/dracory/spacebase/pages/page_logout"
	"github.com/dracory/spacebase/pages/page_table"
	"github.com/dracory/spacebase/shared/constants"
	"github.com/dracory/spacebase/shared/csrf"
	"github.com/dracory/spacebase/shared/session"
	"github.com/dracory/spacebase/shared/types"
	"github.com/dracory/spacebase/shared/urls"
)

// SweepInterval is how often idle sessions are dropped.
const SweepInterval = 10 * time.Minute

// App represents the main application instance
type App struct {
	config   types.Config
	handlers map[string]http.Handler
}

// New creates a new App with the given configuration.
// The configuration should be loaded using LoadConfig() from config.go
func New(cfg types.Config) *App {
	if cfg.ActionParam == "" {
		cfg.ActionParam = "action"
	}
	if cfg.BasePath == "" {
		cfg.BasePath = "/"
	}
	urls.ActionParam = cfg.ActionParam

	return &App{
		config:   cfg,
		handlers: routes(cfg),
	}
}

// Config returns the configuration the app was built with.
func (a *App) Config() types.Config {
	return a.config
}

func routes(cfg types.Config) map[string]http.Handler {
	return map[string]http.Handler{
		constants.ActionHealthz: http.HandlerFunc(healthz),

		constants.ActionPageLogin:    page_login.New(cfg),
		constants.ActionPageLogout:   page_logout.New(cfg),
		constants.ActionPageHome:     page_home.New(cfg),
		constants.ActionPageTable:    page_table.New(cfg),
		constants.ActionPageDatabase: page_database.New(cfg),

		constants.ActionApiConnect:    api_connect.New(cfg),
		constants.ActionApiDisconnect: api_disconnect.New(cfg),
		constants.ActionApiStatus:     api_status.New(cfg),

		constants.ActionApiTablesList: api_tables_list.New(cfg),
		constants.ActionApiTableInfo:  api_table_info.New(cfg),

		constants.ActionApiRowsBrowse: api_rows_browse.New(cfg),
		constants.ActionApiRowView:    api_row_view.New(cfg),
		constants.ActionApiRowInsert:  api_row_insert.New(cfg),
		constants.ActionApiRowUpdate:  api_row_update.New(cfg),
		constants.ActionApiRowDelete:  api_row_delete.New(cfg),

		constants.ActionApiSQLExecute: api_sql_execute.New(cfg),
		constants.ActionApiSQLExport:  api_sql_export.New(cfg),
		constants.ActionApiSQLExplain: api_sql_explain.New(cfg),

		constants.ActionApiDatabasesList:  api_databases_list.New(cfg),
		constants.ActionApiDatabaseCreate: api_database_create.New(cfg),
		constants.ActionApiDatabaseInfo:   api_database_info.New(cfg),
		constants.ActionApiDatabaseDelete: api_database_delete.New(cfg),
		constants.ActionApiModulePublish:  api_module_publish.New(cfg),

		constants.ActionApiProfilesList:   api_profiles_list.New(cfg),
		constants.ActionApiProfilesSave:   api_profiles_save.New(cfg),
		constants.ActionApiProfilesDelete: api_profiles_delete.New(cfg),
	}
}

// Handler returns an http.Handler that serves the UI and API
func (a *App) Handler() http.Handler {
	return SecurityHeaders(http.HandlerFunc(a.handleRequest))
}

// handleRequest routes requests to the appropriate handler
func (a *App) handleRequest(w http.ResponseWriter, r *http.Request) {
	action := r.URL.Query().Get(a.config.ActionParam)

	h, ok := a.handlers[action]
	if !ok {
		a.serveDefault(w, r)
		return
	}

	if a.config.CSRFProtection && isAPI(action) && r.Method == http.MethodPost && !csrf.Verify(r, a.config.SessionSecret) {
		a.config.Log().Warn("csrf check failed",
			slog.String("action", action),
			slog.String("request_id", GetRequestID(r.Context())),
		)
		api.Respond(w, r, api.Error("invalid CSRF token"))
		return
	}

	h.ServeHTTP(w, r)
}

// serveDefault sends unknown actions to the home page when connected and to
// the login page otherwise.
func (a *App) serveDefault(w http.ResponseWriter, r *http.Request) {
	target := urls.Login(a.config.BasePath)
	if s := session.FromRequest(r); s != nil && s.Connection() != nil {
		target = urls.Home(a.config.BasePath)
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func isAPI(action string) bool {
	return strings.HasPrefix(action, "api_")
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// SweepSessions drops idle sessions every interval until ctx is done.
func (a *App) SweepSessions(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := session.Sweep(now); n > 0 {
				a.config.Log().Debug("swept idle sessions", slog.Int("count", n))
			}
		}
	}
}
