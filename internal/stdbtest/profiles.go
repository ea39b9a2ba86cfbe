package stdbtest

import (
	"path/filepath"
	"testing"

	"github.com/dracory/spacebase/shared/profiles"
)

// ProfileStore opens a sqlite profile store in a temporary directory.
func ProfileStore(t testing.TB) *profiles.GormStore {
	t.Helper()

	db, err := profiles.Open("sqlite", filepath.Join(t.TempDir(), "profiles.db"))
	if err != nil {
		t.Fatalf("open profile db: %v", err)
	}
	store, err := profiles.NewGormStore(db, "test-secret")
	if err != nil {
		t.Fatalf("migrate profile db: %v", err)
	}
	return store
}
