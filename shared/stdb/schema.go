package stdb

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

// GetTables returns the table schemas of a database. An empty name falls back
// to the configured database.
func (c *Client) GetTables(ctx context.Context, database string) ([]TableInfo, error) {
	db := c.resolveDatabase(database)
	if db == "" {
		return nil, errors.Wrap(ErrDatabaseRequired, "failed to fetch tables")
	}

	resp, err := c.doJSON(ctx, http.MethodGet, databasePath("/database/", db, "/schema"), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch schema")
	}
	defer resp.Body.Close()

	if !isOK(resp) {
		return nil, errors.Errorf("failed to fetch schema: %s", statusText(resp))
	}

	var payload struct {
		Tables []TableInfo `json:"tables"`
	}
	if err := decodeJSON(resp.Body, &payload); err != nil {
		return nil, errors.Wrap(err, "failed to decode schema")
	}

	if payload.Tables == nil {
		return []TableInfo{}, nil
	}
	return payload.Tables, nil
}
