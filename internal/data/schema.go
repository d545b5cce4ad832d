package data

import (
	"database/sql"
	"fmt"
)

// Table definitions per driver. The column types differ (bytea vs BLOB,
// identity vs AUTOINCREMENT, the scs session expiry type) but the queries in
// this package run unchanged against either dialect.
var schemaStatements = map[string][]string{
	"postgres": {
		`CREATE TABLE IF NOT EXISTS books (
			id bigint GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
			title text NOT NULL,
			author text NOT NULL,
			category text NOT NULL,
			available boolean NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id bigint GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
			username text UNIQUE NOT NULL,
			password_hash bytea NOT NULL,
			role text NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			token text PRIMARY KEY,
			data bytea NOT NULL,
			expiry timestamptz NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions (expiry)`,
	},
	"sqlite3": {
		`CREATE TABLE IF NOT EXISTS books (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			author TEXT NOT NULL,
			category TEXT NOT NULL,
			available BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			password_hash BLOB NOT NULL,
			role TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expiry REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions (expiry)`,
	},
}

// Migrate creates the books, users, and sessions tables if they are
// missing. driver must be "postgres" or "sqlite3".
func Migrate(db *sql.DB, driver string) error {
	stmts, ok := schemaStatements[driver]
	if !ok {
		return fmt.Errorf("unsupported database driver %q", driver)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	return tx.Commit()
}

// Seed inserts the default accounts: one admin and one sample student.
// Seeding is idempotent, and because the conflict key is the username the
// app itself can never recreate the admin; only re-running setup can.
func Seed(db *sql.DB) error {
	seeds := []struct {
		username string
		password string
		role     string
	}{
		{"admin", "admin123", RoleAdmin},
		{"student1", "student123", RoleStudent},
	}

	for _, s := range seeds {
		var p password
		if err := p.Set(s.password); err != nil {
			return err
		}

		query := `
			INSERT INTO users (username, password_hash, role)
			VALUES ($1, $2, $3)
			ON CONFLICT (username) DO NOTHING`

		if _, err := db.Exec(query, s.username, p.hash, s.role); err != nil {
			return fmt.Errorf("seed user %s: %w", s.username, err)
		}
	}
	return nil
}
