package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDialects(t *testing.T) {
	tests := []struct {
		name             string
		dialect          Dialect
		driver           string
		lastInsertID     bool
		migrationsSubdir string
	}{
		{"SQLite", NewSQLiteDialect(), "sqlite3", true, "sqlite"},
		{"PostgreSQL", NewPostgresDialect(), "postgres", false, "postgres"},
		{"MySQL", NewMySQLDialect(), "mysql", true, "mysql"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.driver, tt.dialect.DriverName())
			assert.Equal(t, tt.lastInsertID, tt.dialect.SupportsLastInsertId())
			assert.Equal(t, tt.migrationsSubdir, tt.dialect.MigrationsSubdir())
			assert.Contains(t, tt.dialect.CreateMigrationsTableQuery(), "CREATE TABLE IF NOT EXISTS migrations")
		})
	}
}

func TestSQLiteDSN(t *testing.T) {
	dialect := NewSQLiteDialect()

	assert.Equal(t,
		"./game.db?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000",
		dialect.DSN(DialectConfig{Path: "./game.db"}))
	assert.Equal(t,
		"file:game.db?cache=shared&_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000",
		dialect.DSN(DialectConfig{Path: "file:game.db?cache=shared"}))
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT * FROM users WHERE name = ?",
			expected: "SELECT * FROM users WHERE name = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT * FROM users WHERE name = ?",
			expected: "SELECT * FROM users WHERE name = $1",
		},
		{
			name:     "PostgreSQL multiple placeholders",
			dialect:  NewPostgresDialect(),
			query:    "UPDATE game_sessions SET final_score = ?, is_completed = ? WHERE id = ?",
			expected: "UPDATE game_sessions SET final_score = $1, is_completed = $2 WHERE id = $3",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "INSERT INTO progress (user_id, level_id, score) VALUES (?, ?, ?)",
			expected: "INSERT INTO progress (user_id, level_id, score) VALUES (?, ?, ?)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.dialect.RewriteQuery(tt.query))
		})
	}
}

func TestSplitStatements(t *testing.T) {
	stmts := splitStatements(`
		CREATE TABLE a (id INTEGER);

		CREATE TABLE b (id INTEGER);
		;
	`)

	assert.Equal(t, []string{"CREATE TABLE a (id INTEGER)", "CREATE TABLE b (id INTEGER)"}, stmts)
}
