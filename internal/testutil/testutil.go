// Package testutil provides shared test helpers for setting up stores,
// resolvers, and memo services.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/naudiz/internal/datadir"
	"github.com/starford/naudiz/internal/memoservice"
	"github.com/starford/naudiz/internal/resolver"
	"github.com/starford/naudiz/internal/store"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *store.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "naudiz-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := store.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestResolver creates a resolver loaded from an optional user mapping JSON
// document written to a temp file. Pass "" for an empty mapping.
func TestResolver(t *testing.T, userMapping string) *resolver.Resolver {
	t.Helper()
	userPath := ""
	if userMapping != "" {
		userPath = filepath.Join(t.TempDir(), "mapping.json")
		if err := os.WriteFile(userPath, []byte(userMapping), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return resolver.New("", userPath, nil)
}

// TestService wires a memo service over a temp database, a resolver with
// the given user mapping, and a temp data directory.
func TestService(t *testing.T, userMapping string, opts ...memoservice.Option) *memoservice.Service {
	t.Helper()
	db := TestDB(t)
	data, err := datadir.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return memoservice.NewService(db, TestResolver(t, userMapping), data, opts...)
}
