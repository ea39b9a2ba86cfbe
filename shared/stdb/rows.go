package stdb

import (
	"context"
)

// DefaultPageLimit is the page size used by GetTableData when none is given.
const DefaultPageLimit = 100

// GetTableData returns one page of a table.
func (c *Client) GetTableData(ctx context.Context, table, database string, limit, offset int) *QueryResult {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if offset < 0 {
		offset = 0
	}

	sql, err := BuildSelect(table, limit, offset)
	if err != nil {
		return failure(err.Error())
	}
	return c.Query(ctx, sql, database)
}

// GetRow returns the rows matching where, at most one.
func (c *Client) GetRow(ctx context.Context, table string, where map[string]any, database string) *QueryResult {
	sql, params, err := BuildSelectWhere(table, where, 1)
	if err != nil {
		return failure(err.Error())
	}
	return c.Exec(ctx, sql, params, database)
}

// InsertData inserts one row built from data.
func (c *Client) InsertData(ctx context.Context, table string, data map[string]any, database string) *QueryResult {
	sql, params, err := BuildInsert(table, data)
	if err != nil {
		return failure("insert failed: " + err.Error())
	}
	return c.execute(ctx, database, statement{
		sql:             sql,
		params:          params,
		requiredFor:     "for insert operations",
		failPrefix:      "insert failed",
		defaultAffected: affected(1),
	})
}

// UpdateData sets data on every row matching where.
func (c *Client) UpdateData(ctx context.Context, table string, data, where map[string]any, database string) *QueryResult {
	sql, params, err := BuildUpdate(table, data, where)
	if err != nil {
		return failure("update failed: " + err.Error())
	}
	return c.execute(ctx, database, statement{
		sql:             sql,
		params:          params,
		requiredFor:     "for update operations",
		failPrefix:      "update failed",
		defaultAffected: affected(0),
	})
}

// DeleteData deletes every row matching where.
func (c *Client) DeleteData(ctx context.Context, table string, where map[string]any, database string) *QueryResult {
	sql, params, err := BuildDelete(table, where)
	if err != nil {
		return failure("delete failed: " + err.Error())
	}
	return c.execute(ctx, database, statement{
		sql:             sql,
		params:          params,
		requiredFor:     "for delete operations",
		failPrefix:      "delete failed",
		defaultAffected: affected(0),
	})
}
