package page_home

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/dracory/spacebase/shared"
	"github.com/dracory/spacebase/shared/constants"
	"github.com/dracory/spacebase/shared/csrf"
	"github.com/dracory/spacebase/shared/layout"
	"github.com/dracory/spacebase/shared/profiles"
	"github.com/dracory/spacebase/shared/session"
	"github.com/dracory/spacebase/shared/stdb"
	"github.com/dracory/spacebase/shared/types"
	"github.com/dracory/spacebase/shared/urls"
	"github.com/gouniverse/cdn"
	hb "github.com/gouniverse/hb"
)

//go:embed view.html script.js styles.css
var embeddedFS embed.FS

// ExampleQueries are offered in the SQL tab.
var ExampleQueries = []string{
	"SELECT * FROM users LIMIT 10;",
	"SELECT COUNT(*) FROM orders;",
	"SELECT * FROM products WHERE price > 100;",
	"INSERT INTO users (name, email) VALUES ('John Doe', 'john@example.com');",
}

type pageHomeController struct {
	config types.Config
}

func New(config types.Config) *pageHomeController {
	return &pageHomeController{config: config}
}

func (h *pageHomeController) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess := session.EnsureSession(w, r, h.config.SecureCookies)
	if sess == nil {
		http.Error(w, "failed to create session", http.StatusInternalServerError)
		return
	}

	conn := sess.Connection()
	if conn == nil {
		conn = h.resume(r.Context(), profiles.LastProfile(r), sess)
	}
	if conn == nil {
		http.Redirect(w, r, urls.Login(h.config.BasePath), http.StatusSeeOther)
		return
	}

	token := csrf.EnsureCookie(w, r, h.config.SessionSecret, h.config.SecureCookies)

	html, err := h.GenerateHTML(conn, token)
	if err != nil {
		http.Error(w, "Failed to render home page: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// resume reconnects a session from the remembered profile. It returns nil
// when there is nothing to resume or the instance cannot be reached.
func (h *pageHomeController) resume(ctx context.Context, profileID string, sess *session.Session) *session.ActiveConnection {
	if profileID == "" || h.config.Profiles == nil {
		return nil
	}

	p, err := h.config.Profiles.Get(ctx, profileID)
	if err != nil {
		h.config.Log().Debug("remembered profile unavailable", slog.String("profile_id", profileID), slog.String("error", err.Error()))
		return nil
	}

	conn, err := session.Connect(ctx, sess, p.StdbConfig(),
		stdb.WithTimeout(h.config.Timeout),
		stdb.WithLogger(h.config.Log()),
	)
	if err != nil {
		h.config.Log().Warn("failed to resume connection", slog.String("profile", p.Name), slog.String("error", err.Error()))
		return nil
	}
	return conn
}

// GenerateHTML renders the home page for an active connection.
func (h *pageHomeController) GenerateHTML(conn *session.ActiveConnection, csrfToken string) (template.HTML, error) {
	pageCSS, err := shared.EmbeddedFileToString(embeddedFS, "styles.css")
	if err != nil {
		return "", err
	}
	pageJS, err := shared.EmbeddedFileToString(embeddedFS, "script.js")
	if err != nil {
		return "", err
	}
	pageHTML, err := shared.EmbeddedFileToString(embeddedFS, "view.html")
	if err != nil {
		return "", err
	}

	basePath := h.config.BasePath

	extraBody := []hb.TagInterface{
		hb.ScriptURL(cdn.VueJs_3()),
		hb.ScriptURL(cdn.Sweetalert2_11()),
		layout.AppConfig(map[string]any{
			"urls": map[string]string{
				"tables":    urls.URL(basePath, constants.ActionApiTablesList),
				"table":     urls.URL(basePath, constants.ActionPageTable),
				"execute":   urls.URL(basePath, constants.ActionApiSQLExecute),
				"explain":   urls.URL(basePath, constants.ActionApiSQLExplain),
				"export":    urls.URL(basePath, constants.ActionApiSQLExport),
				"databases": urls.URL(basePath, constants.ActionApiDatabasesList),
				"manage":    urls.Database(basePath),
			},
			"csrfToken": csrfToken,
			"database":  conn.Config.Database,
			"examples":  ExampleQueries,
			"safeMode":  h.config.SafeModeDefault,
			"readOnly":  h.config.ReadOnlyMode,
		}),
		hb.Script(pageJS),
	}

	page := layout.RenderWith(layout.Options{
		Title:           "Home",
		BasePath:        basePath,
		SafeModeDefault: h.config.SafeModeDefault,
		ReadOnlyMode:    h.config.ReadOnlyMode,
		Connected:       true,
		ConnectionLabel: shared.ConnectionLabel(conn.Config),
		MainHTML:        pageHTML,
		SidebarHTML:     sidebar(basePath, conn.Tables()),
		ExtraHead:       []hb.TagInterface{hb.Style(pageCSS)},
		ExtraBodyEnd:    extraBody,
	})
	return page, nil
}

func sidebar(basePath string, tables []stdb.TableInfo) string {
	items := make([]hb.TagInterface, 0, len(tables))
	for _, t := range tables {
		items = append(items, hb.NewTag("li").Child(hb.A().Href(urls.Table(basePath, t.Name)).Text(t.Name)))
	}

	return hb.Div().Children([]hb.TagInterface{
		hb.Paragraph().Class("text-xs uppercase tracking-wide text-slate-500 mb-1").Text("Tables"),
		hb.NewTag("ul").Class("sb-table-list text-sm").Children(items).
			ChildIf(len(items) == 0, hb.NewTag("li").Class("text-slate-400").Text("no tables")),
	}).ToHTML()
}
