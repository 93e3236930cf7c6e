package services

import (
	"fmt"
	"testing"

	"ecorecycle-server/database"

	_ "modernc.org/sqlite"
)

// newTestDB opens a per-test in-memory database with the production schema
// to avoid cross-test interference.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.InitializeTables(); err != nil {
		t.Fatalf("failed to initialize tables: %v", err)
	}

	return db
}
