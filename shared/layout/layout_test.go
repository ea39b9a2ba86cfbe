package layout_test

import (
	"testing"

	"github.com/dracory/spacebase/shared/layout"
	"github.com/stretchr/testify/assert"
)

func TestRenderWith(t *testing.T) {
	tests := []struct {
		name     string
		opts     layout.Options
		contains []string
		excludes []string
	}{
		{
			name:     "disconnected",
			opts:     layout.Options{Title: "Login", BasePath: "/", MainHTML: "<p>form</p>"},
			contains: []string{"<title>Login · SpaceBase</title>", "<p>form</p>", ">Connect<", "Safe mode: OFF", "window.sb"},
			excludes: []string{"Connected to", ">Disconnect<"},
		},
		{
			name: "connected",
			opts: layout.Options{
				Title:           "Home",
				BasePath:        "/admin",
				SafeModeDefault: true,
				ReadOnlyMode:    true,
				Connected:       true,
				ConnectionLabel: "localhost:3000 / game",
				SidebarHTML:     "<ul>side</ul>",
			},
			contains: []string{"Connected to localhost:3000 / game", ">Disconnect<", "Safe mode: ON · Read-only", "<ul>side</ul>", "/admin?action=page_database"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := string(layout.RenderWith(tt.opts))
			for _, s := range tt.contains {
				assert.Contains(t, html, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, html, s)
			}
		})
	}
}

func TestAppConfig(t *testing.T) {
	html := layout.AppConfig(map[string]any{"csrfToken": "</script>", "safeMode": true}).ToHTML()
	assert.Contains(t, html, `window.appConfig = {"csrfToken":"\u003c/script\u003e","safeMode":true};`)
}
