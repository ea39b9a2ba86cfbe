package stdb_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/dracory/spacebase/shared/stdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDatabases(t *testing.T) {
	tests := []struct {
		name   string
		routes map[string]http.HandlerFunc
		want   []string
	}{
		{
			name:   "array of names",
			routes: map[string]http.HandlerFunc{"GET /databases": jsonReply(http.StatusOK, `["alpha","beta"]`)},
			want:   []string{"alpha", "beta"},
		},
		{
			name: "object with databases key",
			routes: map[string]http.HandlerFunc{"GET /databases": jsonReply(http.StatusOK,
				`{"databases":[{"name":"alpha"},{"identity":"c200abc"},{"owner":"x"}]}`)},
			want: []string{"alpha", "c200abc"},
		},
		{
			name: "falls back to v1",
			routes: map[string]http.HandlerFunc{
				"GET /databases":    jsonReply(http.StatusNotFound, ``),
				"GET /v1/databases": jsonReply(http.StatusOK, `["gamma"]`),
			},
			want: []string{"gamma"},
		},
		{
			name:   "unrecognised shape",
			routes: map[string]http.HandlerFunc{"GET /databases": jsonReply(http.StatusOK, `{"count":3}`)},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFakeServer(t, tt.routes)
			c := fs.client(t, stdb.Config{})

			got, err := c.ListDatabases(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("every endpoint failing", func(t *testing.T) {
		fs := newFakeServer(t, nil)
		c := fs.client(t, stdb.Config{})

		_, err := c.ListDatabases(context.Background())
		assert.ErrorIs(t, err, stdb.ErrListDatabases)
		assert.Len(t, fs.Requests(), 2)
	})
}

func TestCreateDatabase(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fs := newFakeServer(t, map[string]http.HandlerFunc{
			"POST /v1/database/arena": jsonReply(http.StatusOK, `{"identity":"c200ff","owner_identity":"c200aa"}`),
		})
		c := fs.client(t, stdb.Config{})

		res := c.CreateDatabase(context.Background(), "arena")
		require.True(t, res.Success, res.Error)
		assert.Equal(t, &stdb.DatabaseInfo{
			Identity:      "c200ff",
			Name:          "arena",
			OwnerIdentity: "c200aa",
			HostType:      "unknown",
		}, res.Database)

		reqs := fs.Requests()
		require.Len(t, reqs, 1)
		assert.JSONEq(t, `{}`, reqs[0].Body)
	})

	t.Run("failure carries status and body", func(t *testing.T) {
		fs := newFakeServer(t, map[string]http.HandlerFunc{
			"POST /v1/database/arena": jsonReply(http.StatusConflict, `already exists`),
		})
		c := fs.client(t, stdb.Config{})

		res := c.CreateDatabase(context.Background(), "arena")
		assert.False(t, res.Success)
		assert.Nil(t, res.Database)
		assert.Equal(t, "failed to create database: Conflict - already exists", res.Error)
	})
}

func TestGetDatabaseInfo(t *testing.T) {
	fs := newFakeServer(t, map[string]http.HandlerFunc{
		"GET /v1/database/c200ff": jsonReply(http.StatusOK, `{"identity":"c200ff","name":"arena","host_type":"wasm"}`),
	})
	c := fs.client(t, stdb.Config{})

	info, err := c.GetDatabaseInfo(context.Background(), "c200ff")
	require.NoError(t, err)
	assert.Equal(t, "arena", info.Name)
	assert.Equal(t, "wasm", info.HostType)

	_, err = c.GetDatabaseInfo(context.Background(), "missing")
	assert.EqualError(t, err, "failed to fetch database info: Not Found")
}

func TestDeleteDatabase(t *testing.T) {
	fs := newFakeServer(t, map[string]http.HandlerFunc{
		"DELETE /v1/database/arena": jsonReply(http.StatusOK, ``),
	})
	c := fs.client(t, stdb.Config{})

	require.NoError(t, c.DeleteDatabase(context.Background(), "arena"))
	assert.EqualError(t, c.DeleteDatabase(context.Background(), "other"), "failed to delete database: Not Found")
}

func TestPublishModule(t *testing.T) {
	module := []byte("\x00asm\x01\x00\x00\x00")

	t.Run("uploads multipart", func(t *testing.T) {
		var gotField, gotName string
		var gotBytes []byte
		var gotAuth, gotType string

		fs := newFakeServer(t, map[string]http.HandlerFunc{
			"POST /v1/database/arena": func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				gotType = r.Header.Get("Content-Type")
				file, header, err := r.FormFile(stdb.ModuleField)
				if err != nil {
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
				defer file.Close()
				gotField = stdb.ModuleField
				gotName = header.Filename
				gotBytes, _ = io.ReadAll(file)
				jsonReply(http.StatusOK, `{"identity":"c200ff"}`)(w, r)
			},
		})
		c := fs.client(t, stdb.Config{Token: "tok"})

		res := c.PublishModule(context.Background(), "arena", "/tmp/build/arena.wasm", bytes.NewReader(module))
		require.True(t, res.Success, res.Error)
		assert.Equal(t, "c200ff", res.DatabaseIdentity)
		assert.Equal(t, "arena", res.DatabaseName)

		assert.Equal(t, stdb.ModuleField, gotField)
		assert.Equal(t, "arena.wasm", gotName)
		assert.Equal(t, module, gotBytes)
		assert.Equal(t, "Bearer tok", gotAuth)
		assert.Contains(t, gotType, "multipart/form-data")
	})

	t.Run("failure", func(t *testing.T) {
		fs := newFakeServer(t, map[string]http.HandlerFunc{
			"POST /v1/database/arena": jsonReply(http.StatusUnauthorized, `bad token`),
		})
		c := fs.client(t, stdb.Config{})

		res := c.PublishModule(context.Background(), "arena", "arena.wasm", bytes.NewReader(module))
		assert.False(t, res.Success)
		assert.Equal(t, "failed to publish module: Unauthorized - bad token", res.Error)
	})
}
