package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// MigrateTodo sets up the todo service schema.
func MigrateTodo(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT UNIQUE,
		username TEXT UNIQUE,
		first_name TEXT,
		last_name TEXT,
		hashed_pass TEXT NOT NULL,
		is_active INTEGER NOT NULL DEFAULT 1,
		role TEXT NOT NULL DEFAULT 'user'
	);

	CREATE TABLE IF NOT EXISTS todos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT,
		priority INTEGER,
		complete INTEGER NOT NULL DEFAULT 0,
		owner_id INTEGER NOT NULL REFERENCES users(id)
	);

	CREATE INDEX IF NOT EXISTS idx_todos_owner ON todos(owner_id);
	`
	_, err := db.Exec(sqlStmt)
	return err
}

// MigrateWeather sets up the weather service schema. Readings are
// append-only; the same city may accumulate multiple rows as the
// cache window rolls forward.
func MigrateWeather(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS weather (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		city TEXT NOT NULL,
		temperature REAL NOT NULL,
		description TEXT,
		timestamp DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_weather_city ON weather(city);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
