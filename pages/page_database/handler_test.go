package page_database_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/dracory/spacebase/internal/stdbtest"
	"github.com/dracory/spacebase/pages/page_database"
	"github.com/dracory/spacebase/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabasePage_Renders(t *testing.T) {
	srv := stdbtest.New(t)
	srv.Game()
	cookie, _ := srv.Connected(t, "game")

	rr := httptest.NewRecorder()
	page_database.New(types.Config{BasePath: "/", ReadOnlyMode: true}).
		ServeHTTP(rr, stdbtest.Request(http.MethodGet, url.Values{}, cookie))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `id="database-app"`)
	assert.Contains(t, body, `"maxModuleSize":"64 MiB"`)
	assert.Contains(t, body, `"readOnly":true`)
	assert.Contains(t, body, "action=api_module_publish")
}

func TestDatabasePage_RedirectsWithoutConnection(t *testing.T) {
	rr := httptest.NewRecorder()
	page_database.New(types.Config{BasePath: "/"}).
		ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/?action=page_login", rr.Header().Get("Location"))
}
