package session

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/dracory/api"
	"github.com/dracory/spacebase/shared/stdb"
	"github.com/google/uuid"
)

// ActiveConnection holds the per-session connection to a remote instance.
type ActiveConnection struct {
	ID          string
	Client      *stdb.Client
	Config      stdb.Config
	ConnectedAt time.Time

	mu       sync.RWMutex
	tables   []stdb.TableInfo
	lastUsed time.Time
}

// Tables returns the cached table list.
func (c *ActiveConnection) Tables() []stdb.TableInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tables
}

// SetTables replaces the cached table list.
func (c *ActiveConnection) SetTables(tables []stdb.TableInfo) {
	c.mu.Lock()
	c.tables = tables
	c.mu.Unlock()
}

// Table returns a cached table by name.
func (c *ActiveConnection) Table(name string) (stdb.TableInfo, bool) {
	for _, t := range c.Tables() {
		if t.Name == name {
			return t, true
		}
	}
	return stdb.TableInfo{}, false
}

// Touch records use of the connection.
func (c *ActiveConnection) Touch() {
	c.mu.Lock()
	c.lastUsed = time.Now()
	c.mu.Unlock()
}

// LastUsed returns when the connection was last used.
func (c *ActiveConnection) LastUsed() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastUsed
}

// NewConnection wraps an already built client. Tables start empty.
func NewConnection(client *stdb.Client) *ActiveConnection {
	now := time.Now()
	return &ActiveConnection{
		ID:          uuid.NewString(),
		Client:      client,
		Config:      client.Config(),
		ConnectedAt: now,
		tables:      []stdb.TableInfo{},
		lastUsed:    now,
	}
}

// Connect builds a client for cfg, probes the instance and, when a database is
// configured, loads its tables. On success the connection replaces any
// previous one on sess. A failed table load still leaves sess connected.
func Connect(ctx context.Context, sess *Session, cfg stdb.Config, opts ...stdb.Option) (*ActiveConnection, error) {
	client, err := stdb.New(cfg, opts...)
	if err != nil {
		return nil, err
	}

	if err := client.Connect(ctx); err != nil {
		return nil, err
	}

	conn := NewConnection(client)
	if cfg.Database != "" {
		if err := RefreshTables(ctx, conn); err != nil {
			client.Logger().Warn("failed to load tables",
				slog.String("database", cfg.Database),
				slog.String("error", err.Error()),
			)
		}
	}

	sess.setConnection(conn)
	return conn, nil
}

// Disconnect forgets the session's connection.
func Disconnect(sess *Session) {
	sess.setConnection(nil)
}

// RefreshTables reloads the table list. On error the previous list is kept.
func RefreshTables(ctx context.Context, conn *ActiveConnection) error {
	tables, err := conn.Client.GetTables(ctx, "")
	if err != nil {
		return err
	}
	conn.SetTables(tables)
	conn.Touch()
	return nil
}

// RequireConnection returns the session's connection, or writes an error
// envelope and returns false.
func RequireConnection(w http.ResponseWriter, r *http.Request, secure bool) (*ActiveConnection, bool) {
	sess := EnsureSession(w, r, secure)
	if sess == nil {
		api.Respond(w, r, api.Error("failed to get session"))
		return nil, false
	}

	conn := sess.Connection()
	if conn == nil {
		api.Respond(w, r, api.Error("not connected to a database"))
		return nil, false
	}

	conn.Touch()
	return conn, true
}

// LookupTable returns a table from the cache, reloading the table list once
// when the name is unknown.
func LookupTable(ctx context.Context, conn *ActiveConnection, name string) (stdb.TableInfo, bool) {
	if t, ok := conn.Table(name); ok {
		return t, true
	}
	if err := RefreshTables(ctx, conn); err != nil {
		return stdb.TableInfo{}, false
	}
	return conn.Table(name)
}
