package page_table

import (
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/dracory/spacebase/shared"
	"github.com/dracory/spacebase/shared/constants"
	"github.com/dracory/spacebase/shared/csrf"
	"github.com/dracory/spacebase/shared/layout"
	"github.com/dracory/spacebase/shared/session"
	"github.com/dracory/spacebase/shared/stdb"
	"github.com/dracory/spacebase/shared/types"
	"github.com/dracory/spacebase/shared/urls"
	"github.com/gouniverse/cdn"
	hb "github.com/gouniverse/hb"
)

const (
	// DefaultTitle is the default page title
	DefaultTitle = "Table Viewer"
	// DefaultViewport is the default viewport meta tag content
	DefaultViewport = "width=device-width, initial-scale=1.0"
)

//go:embed view.html script.js styles.css
var embeddedFS embed.FS

// pageTableController handles HTTP requests for the table page
type pageTableController struct {
	config types.Config
}

// New creates a new pageTableController instance
func New(config types.Config) *pageTableController {
	return &pageTableController{
		config: config,
	}
}

// ServeHTTP handles HTTP requests for the table page
func (h *pageTableController) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess := session.EnsureSession(w, r, h.config.SecureCookies)
	conn := sess.Connection()
	if conn == nil {
		http.Redirect(w, r, urls.Login(h.config.BasePath), http.StatusSeeOther)
		return
	}

	tableName := strings.TrimSpace(r.URL.Query().Get("table"))
	if tableName == "" {
		http.Redirect(w, r, urls.Home(h.config.BasePath), http.StatusSeeOther)
		return
	}

	table, found := session.LookupTable(r.Context(), conn, tableName)
	if !found {
		http.Error(w, "table not found: "+tableName, http.StatusNotFound)
		return
	}

	csrfToken := csrf.EnsureCookie(w, r, h.config.SessionSecret, h.config.SecureCookies)

	html, err := h.GenerateHTML(conn, table, csrfToken)
	if err != nil {
		http.Error(w, "Failed to render table page: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// GenerateHTML renders the table viewer page and returns the full HTML.
func (h *pageTableController) GenerateHTML(conn *session.ActiveConnection, table stdb.TableInfo, csrfToken string) (template.HTML, error) {
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
				"browse": urls.URL(basePath, constants.ActionApiRowsBrowse),
				"insert": urls.URL(basePath, constants.ActionApiRowInsert),
				"update": urls.URL(basePath, constants.ActionApiRowUpdate),
				"delete": urls.URL(basePath, constants.ActionApiRowDelete),
				"home":   urls.Home(basePath),
			},
			"csrfToken":  csrfToken,
			"table":      table,
			"keyColumns": stdb.KeyColumns(table),
			"pageSize":   constants.DefaultBrowseLimit,
			"safeMode":   h.config.SafeModeDefault,
			"readOnly":   h.config.ReadOnlyMode,
		}),
		hb.Script(pageJS),
	}

	return layout.RenderWith(layout.Options{
		Title:           table.Name + " · " + DefaultTitle,
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
