package stdb

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/pkg/errors"
)

// listEndpoints are tried in order by ListDatabases.
var listEndpoints = []string{"/databases", "/v1/databases"}

// ListDatabases returns the database names known to the instance. The first
// listing endpoint answering 2xx wins; an unrecognised body yields an empty list.
func (c *Client) ListDatabases(ctx context.Context) ([]string, error) {
	for _, endpoint := range listEndpoints {
		resp, err := c.doJSON(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			c.logger.Debug("database listing endpoint failed",
				slog.String("endpoint", endpoint),
				slog.String("error", err.Error()),
			)
			continue
		}

		if !isOK(resp) {
			c.logger.Debug("database listing endpoint failed",
				slog.String("endpoint", endpoint),
				slog.Int("status", resp.StatusCode),
			)
			drain(resp)
			continue
		}

		var payload any
		err = decodeJSON(resp.Body, &payload)
		resp.Body.Close()
		if err != nil {
			c.logger.Debug("database listing endpoint returned invalid json",
				slog.String("endpoint", endpoint),
				slog.String("error", err.Error()),
			)
			continue
		}

		return databaseNames(payload), nil
	}

	return nil, ErrListDatabases
}

// databaseNames accepts either a bare array or an object with a "databases"
// array. Entries are names, or objects carrying a name or identity.
func databaseNames(payload any) []string {
	var entries []any
	switch v := payload.(type) {
	case []any:
		entries = v
	case map[string]any:
		list, ok := v["databases"].([]any)
		if !ok {
			return []string{}
		}
		entries = list
	default:
		return []string{}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		var name string
		switch e := entry.(type) {
		case string:
			name = e
		case map[string]any:
			name = stringField(e, "name")
			if name == "" {
				name = stringField(e, "identity")
			}
		}
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// CreateDatabase registers a new, empty database.
func (c *Client) CreateDatabase(ctx context.Context, name string) *CreateDatabaseResult {
	resp, err := c.doJSON(ctx, http.MethodPost, databasePath("/v1/database/", name, ""), map[string]any{})
	if err != nil {
		return &CreateDatabaseResult{Error: err.Error()}
	}
	defer resp.Body.Close()

	if !isOK(resp) {
		return &CreateDatabaseResult{
			Error: "failed to create database: " + statusText(resp) + " - " + readBody(resp),
		}
	}

	var payload map[string]any
	if err := decodeJSON(resp.Body, &payload); err != nil {
		return &CreateDatabaseResult{Error: "failed to create database: invalid response: " + err.Error()}
	}

	return &CreateDatabaseResult{
		Success:  true,
		Database: databaseInfo(payload, name),
	}
}

// GetDatabaseInfo describes a database by name or identity.
func (c *Client) GetDatabaseInfo(ctx context.Context, nameOrIdentity string) (*DatabaseInfo, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, databasePath("/v1/database/", nameOrIdentity, ""), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch database info")
	}
	defer resp.Body.Close()

	if !isOK(resp) {
		return nil, errors.Errorf("failed to fetch database info: %s", statusText(resp))
	}

	var payload map[string]any
	if err := decodeJSON(resp.Body, &payload); err != nil {
		return nil, errors.Wrap(err, "failed to decode database info")
	}

	info := databaseInfo(payload, nameOrIdentity)
	if name := stringField(payload, "name"); name != "" {
		info.Name = name
	}
	return info, nil
}

// DeleteDatabase removes a database by name or identity.
func (c *Client) DeleteDatabase(ctx context.Context, nameOrIdentity string) error {
	resp, err := c.doJSON(ctx, http.MethodDelete, databasePath("/v1/database/", nameOrIdentity, ""), nil)
	if err != nil {
		return errors.Wrap(err, "failed to delete database")
	}
	defer drain(resp)

	if !isOK(resp) {
		return errors.Errorf("failed to delete database: %s", statusText(resp))
	}
	return nil
}

func databaseInfo(payload map[string]any, name string) *DatabaseInfo {
	info := &DatabaseInfo{
		Identity:      stringField(payload, "identity"),
		Name:          name,
		OwnerIdentity: stringField(payload, "owner_identity"),
		HostType:      stringField(payload, "host_type"),
	}
	if info.HostType == "" {
		info.HostType = "unknown"
	}
	return info
}
