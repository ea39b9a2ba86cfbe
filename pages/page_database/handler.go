package page_database

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/dracory/spacebase/shared"
	"github.com/dracory/spacebase/shared/constants"
	"github.com/dracory/spacebase/shared/csrf"
	"github.com/dracory/spacebase/shared/layout"
	"github.com/dracory/spacebase/shared/session"
	"github.com/dracory/spacebase/shared/types"
	"github.com/dracory/spacebase/shared/urls"
	"github.com/dustin/go-humanize"
	"github.com/gouniverse/cdn"
	hb "github.com/gouniverse/hb"
)

const (
	// DefaultTitle is the default page title
	DefaultTitle = "Manage Databases"
	// DefaultViewport is the default viewport meta tag content
	DefaultViewport = "width=device-width, initial-scale=1.0"
)

//go:embed view.html script.js styles.css
var embeddedFS embed.FS

type pageDatabaseController struct {
	config types.Config
}

func New(config types.Config) *pageDatabaseController {
	return &pageDatabaseController{config: config}
}

func (h *pageDatabaseController) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess := session.EnsureSession(w, r, h.config.SecureCookies)
	conn := sess.Connection()
	if conn == nil {
		http.Redirect(w, r, urls.Login(h.config.BasePath), http.StatusSeeOther)
		return
	}

	csrfToken := csrf.EnsureCookie(w, r, h.config.SessionSecret, h.config.SecureCookies)

	html, err := h.GenerateHTML(conn, csrfToken)
	if err != nil {
		http.Error(w, "Failed to render database page: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// GenerateHTML renders the database management page.
func (h *pageDatabaseController) GenerateHTML(conn *session.ActiveConnection, csrfToken string) (template.HTML, error) {
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

	extraHead := []hb.TagInterface{
		hb.Style(pageCSS),
		hb.Meta().Attr("name", "viewport").Attr("content", DefaultViewport),
	}

	extraBody := []hb.TagInterface{
		hb.ScriptURL(cdn.VueJs_3()),
		hb.ScriptURL(cdn.Sweetalert2_11()),
		layout.AppConfig(map[string]any{
			"urls": map[string]string{
				"list":    urls.URL(basePath, constants.ActionApiDatabasesList),
				"create":  urls.URL(basePath, constants.ActionApiDatabaseCreate),
				"info":    urls.URL(basePath, constants.ActionApiDatabaseInfo),
				"delete":  urls.URL(basePath, constants.ActionApiDatabaseDelete),
				"publish": urls.URL(basePath, constants.ActionApiModulePublish),
				"home":    urls.Home(basePath),
			},
			"csrfToken":     csrfToken,
			"database":      conn.Config.Database,
			"maxModuleSize": humanize.IBytes(constants.MaxModuleSize),
			"safeMode":      h.config.SafeModeDefault,
			"readOnly":      h.config.ReadOnlyMode,
		}),
		hb.Script(pageJS),
	}

	return layout.RenderWith(layout.Options{
		Title:           DefaultTitle,
		BasePath:        basePath,
		SafeModeDefault: h.config.SafeModeDefault,
		ReadOnlyMode:    h.config.ReadOnlyMode,
		Connected:       true,
		ConnectionLabel: shared.ConnectionLabel(conn.Config),
		MainHTML:        pageHTML,
		ExtraHead:       extraHead,
		ExtraBodyEnd:    extraBody,
	}), nil
}
