package services

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/avelar-dev/taskcast-be/internal/database"
)

// newTodoDB opens a fresh in-memory database with the todo schema.
func newTodoDB(t *testing.T) *sql.DB {
	t.Helper()
	db := openMemoryDB(t)
	if err := database.MigrateTodo(db); err != nil {
		t.Fatalf("migrate todo schema: %v", err)
	}
	return db
}

// newWeatherDB opens a fresh in-memory database with the weather schema.
func newWeatherDB(t *testing.T) *sql.DB {
	t.Helper()
	db := openMemoryDB(t)
	if err := database.MigrateWeather(db); err != nil {
		t.Fatalf("migrate weather schema: %v", err)
	}
	return db
}

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	// One connection, or each pooled connection would see its own
	// empty in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}
