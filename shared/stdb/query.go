package stdb

import (
	"context"
	"net/http"
)

type sqlRequest struct {
	Query  string `json:"query"`
	Params []any  `json:"params,omitempty"`
}

type sqlResponse struct {
	Rows         []map[string]any `json:"rows"`
	RowsAffected *int64           `json:"rowsAffected"`
}

// statement describes one call to the sql endpoint and how to report it.
type statement struct {
	sql    string
	params []any

	// requiredFor completes "database name is required ..."
	requiredFor string
	// failPrefix prefixes non-2xx status text
	failPrefix string
	// withRows copies the returned rows into the result
	withRows bool
	// defaultAffected is used when the service does not report a count
	defaultAffected *int64
}

// Query runs an ad-hoc statement. An empty database falls back to the configured one.
func (c *Client) Query(ctx context.Context, sql string, database string) *QueryResult {
	return c.execute(ctx, database, statement{
		sql:         sql,
		requiredFor: "to execute queries",
		failPrefix:  "query failed",
		withRows:    true,
	})
}

// Exec runs a parameterized statement and returns its rows.
func (c *Client) Exec(ctx context.Context, sql string, params []any, database string) *QueryResult {
	return c.execute(ctx, database, statement{
		sql:         sql,
		params:      params,
		requiredFor: "to execute queries",
		failPrefix:  "query failed",
		withRows:    true,
	})
}

func (c *Client) execute(ctx context.Context, database string, st statement) *QueryResult {
	db := c.resolveDatabase(database)
	if db == "" {
		return failure(ErrDatabaseRequired.Error() + " " + st.requiredFor)
	}

	resp, err := c.doJSON(ctx, http.MethodPost, databasePath("/database/", db, "/sql"), sqlRequest{
		Query:  st.sql,
		Params: st.params,
	})
	if err != nil {
		return failure(err.Error())
	}
	defer resp.Body.Close()

	if !isOK(resp) {
		return failure(st.failPrefix + ": " + statusText(resp))
	}

	var payload sqlResponse
	if err := decodeJSON(resp.Body, &payload); err != nil {
		return failure(st.failPrefix + ": invalid response: " + err.Error())
	}

	result := &QueryResult{Success: true, RowsAffected: payload.RowsAffected}
	if result.RowsAffected == nil {
		result.RowsAffected = st.defaultAffected
	}
	if st.withRows {
		result.Data = payload.Rows
		if result.Data == nil {
			result.Data = []map[string]any{}
		}
	}
	return result
}
