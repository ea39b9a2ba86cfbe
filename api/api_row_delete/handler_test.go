package api_row_delete_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/dracory/spacebase/api/api_row_delete"
	"github.com/dracory/spacebase/internal/stdbtest"
	"github.com/dracory/spacebase/shared/types"
	"github.com/stretchr/testify/assert"
)

func TestRowDelete(t *testing.T) {
	srv := stdbtest.New(t)
	srv.Game()
	cookie, _ := srv.Connected(t, "game")

	tests := []struct {
		name            string
		safeMode        bool
		form            url.Values
		expectedStatus  string
		expectedMessage string
	}{
		{
			name:            "safe mode without confirmation",
			safeMode:        true,
			form:            url.Values{"table": {"players"}, "row": {`{"id":1}`}},
			expectedStatus:  "error",
			expectedMessage: "confirmation required: resend with confirm=yes",
		},
		{
			name:            "safe mode confirmed",
			safeMode:        true,
			form:            url.Values{"table": {"players"}, "row": {`{"id":1}`}, "confirm": {"yes"}},
			expectedStatus:  "success",
			expectedMessage: "Row deleted successfully",
		},
		{
			name:            "safe mode off",
			form:            url.Values{"table": {"players"}, "row": {`{"id":2,"name":"grace"}`}},
			expectedStatus:  "success",
			expectedMessage: "Row deleted successfully",
		},
		{
			name:            "row without key",
			form:            url.Values{"table": {"players"}, "row": {`{"name":"grace"}`}},
			expectedStatus:  "error",
			expectedMessage: "cannot delete row: no primary key found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			api_row_delete.New(types.Config{SafeModeDefault: tt.safeMode}).
				ServeHTTP(rr, stdbtest.Request(http.MethodPost, tt.form, cookie))

			env := stdbtest.Decode(t, rr)
			assert.Equal(t, tt.expectedStatus, env.Status)
			assert.Equal(t, tt.expectedMessage, env.Message)
		})
	}

	assert.Equal(t, `DELETE FROM players WHERE id = ?`, srv.LastQuery().SQL)
	assert.Equal(t, []any{float64(2)}, srv.LastQuery().Params)
}
