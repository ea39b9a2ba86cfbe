package page_table_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/dracory/spacebase/internal/stdbtest"
	"github.com/dracory/spacebase/pages/page_table"
	"github.com/dracory/spacebase/shared/types"
	"github.com/stretchr/testify/assert"
)

func TestTablePage(t *testing.T) {
	srv := stdbtest.New(t)
	srv.Game()
	cookie, _ := srv.Connected(t, "game")
	handler := page_table.New(types.Config{BasePath: "/"})

	tests := []struct {
		name             string
		params           url.Values
		cookie           bool
		expectedCode     int
		expectedLocation string
		expectedBody     string
	}{
		{"renders table", url.Values{"table": {"players"}}, true, http.StatusOK, "", `"keyColumns":["id"]`},
		{"missing table", url.Values{}, true, http.StatusSeeOther, "/?action=page_home", ""},
		{"unknown table", url.Values{"table": {"ghosts"}}, true, http.StatusNotFound, "", "table not found: ghosts"},
		{"not connected", url.Values{"table": {"players"}}, false, http.StatusSeeOther, "/?action=page_login", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r *http.Request
			if tt.cookie {
				r = stdbtest.Request(http.MethodGet, tt.params, cookie)
			} else {
				r = stdbtest.Request(http.MethodGet, tt.params)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, r)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedLocation != "" {
				assert.Equal(t, tt.expectedLocation, rr.Header().Get("Location"))
			}
			if tt.expectedBody != "" {
				assert.Contains(t, rr.Body.String(), tt.expectedBody)
			}
		})
	}
}
