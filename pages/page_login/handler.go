package page_login

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
	"github.com/gouniverse/cdn"
	hb "github.com/gouniverse/hb"
)

const (
	// DefaultTitle is the default page title
	DefaultTitle = "Connect"
	// DefaultViewport is the default viewport meta tag content
	DefaultViewport = "width=device-width, initial-scale=1.0"
)

//go:embed view.html script.js styles.css
var embeddedFS embed.FS

// Handler handles login page requests
type Handler struct {
	config types.Config
}

func New(config types.Config) *Handler {
	return &Handler{
		config: config,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess := session.EnsureSession(w, r, h.config.SecureCookies)
	if sess != nil && sess.Connection() != nil {
		http.Redirect(w, r, urls.Home(h.config.BasePath), http.StatusSeeOther)
		return
	}

	token := csrf.EnsureCookie(w, r, h.config.SessionSecret, h.config.SecureCookies)

	html, err := h.GenerateHTML(token)
	if err != nil {
		http.Error(w, "Failed to render login page: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// GenerateHTML renders the connection form page and returns full HTML.
func (h *Handler) GenerateHTML(csrfToken string) (template.HTML, error) {
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

	host := h.config.DefaultHost
	if host == "" {
		host = constants.DefaultHost
	}
	port := h.config.DefaultPort
	if port == 0 {
		port = constants.DefaultPort
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
				"connect":        urls.Connect(basePath),
				"profiles":       urls.URL(basePath, constants.ActionApiProfilesList),
				"profilesDelete": urls.URL(basePath, constants.ActionApiProfilesDelete),
				"home":           urls.Home(basePath),
			},
			"csrfToken":       csrfToken,
			"defaultHost":     host,
			"defaultPort":     port,
			"profilesEnabled": h.config.Profiles != nil,
		}),
		hb.Script(pageJS),
	}

	page := layout.RenderWith(layout.Options{
		Title:           DefaultTitle,
		BasePath:        basePath,
		SafeModeDefault: h.config.SafeModeDefault,
		ReadOnlyMode:    h.config.ReadOnlyMode,
		MainHTML:        pageHTML,
		ExtraHead:       extraHead,
		ExtraBodyEnd:    extraBody,
	})

	return page, nil
}
