package stdb

import (
	"net"
	"strconv"
)

// Config describes how to reach a remote instance. Either URL, or Host
// together with Port, must be set.
type Config struct {
	// URL-based connection
	URL string `json:"url,omitempty"`

	// Host/Port-based connection
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`

	// Database is the default database used when an operation is not given one.
	Database string `json:"database,omitempty"`

	// Token is sent as a bearer token when set.
	Token string `json:"token,omitempty"`
}

// Endpoint returns a human readable description of where the config points.
func (c Config) Endpoint() string {
	if c.URL != "" {
		return c.URL
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// TableInfo is one table of a database schema.
type TableInfo struct {
	Name       string       `json:"name"`
	Columns    []ColumnInfo `json:"columns"`
	PrimaryKey []string     `json:"primaryKey,omitempty"`
}

// Column returns the named column.
func (t TableInfo) Column(name string) (ColumnInfo, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnInfo{}, false
}

// ColumnInfo describes a single column.
type ColumnInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

// QueryResult is the outcome of a statement sent to the sql endpoint.
type QueryResult struct {
	Success      bool             `json:"success"`
	Data         []map[string]any `json:"data,omitempty"`
	Error        string           `json:"error,omitempty"`
	RowsAffected *int64           `json:"rowsAffected,omitempty"`
}

// Affected returns the affected row count, or 0 when the service did not report one.
func (r *QueryResult) Affected() int64 {
	if r == nil || r.RowsAffected == nil {
		return 0
	}
	return *r.RowsAffected
}

// DatabaseInfo describes a database hosted by the remote service.
type DatabaseInfo struct {
	Identity      string `json:"identity"`
	Name          string `json:"name"`
	OwnerIdentity string `json:"owner_identity"`
	HostType      string `json:"host_type"`
}

// CreateDatabaseResult is returned by CreateDatabase.
type CreateDatabaseResult struct {
	Success  bool          `json:"success"`
	Database *DatabaseInfo `json:"database,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// PublishResult is returned by PublishModule.
type PublishResult struct {
	Success          bool   `json:"success"`
	DatabaseIdentity string `json:"database_identity,omitempty"`
	DatabaseName     string `json:"database_name,omitempty"`
	Error            string `json:"error,omitempty"`
}

func failure(msg string) *QueryResult {
	return &QueryResult{Success: false, Error: msg}
}

func affected(n int64) *int64 {
	return &n
}
