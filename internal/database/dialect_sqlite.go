package database

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	connMaxLifetime = 5 * time.Minute
	connMaxIdleTime = time.Minute
)

// SQLiteDialect implements Dialect for SQLite
type SQLiteDialect struct{}

// NewSQLiteDialect creates a new SQLite dialect
func NewSQLiteDialect() *SQLiteDialect {
	return &SQLiteDialect{}
}

func (d *SQLiteDialect) DriverName() string {
	return "sqlite3"
}

func (d *SQLiteDialect) DSN(config DialectConfig) string {
	return config.Path
}

func (d *SQLiteDialect) RewriteQuery(query string) string {
	return query
}

func (d *SQLiteDialect) SupportsLastInsertId() bool {
	return true
}

func (d *SQLiteDialect) ConfigureConnection(db *sql.DB) error {
	configurePool(db)

	// In-memory databases are per connection.
	if d.isMemory(db) {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return err
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		return err
	}
	return nil
}

func (d *SQLiteDialect) isMemory(db *sql.DB) bool {
	var file string
	var seq int
	var name string
	row := db.QueryRow("PRAGMA database_list;")
	if err := row.Scan(&seq, &name, &file); err != nil {
		return false
	}
	return file == ""
}

func (d *SQLiteDialect) MigrationsSubdir() string {
	return "sqlite"
}

func (d *SQLiteDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			filename TEXT UNIQUE NOT NULL,
			executed_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
}

func (d *SQLiteDialect) ClearTable(table string) string {
	return "DELETE FROM " + table
}

func (d *SQLiteDialect) UpsertSettings() string {
	return `INSERT INTO settings (setting_key, setting_value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(setting_key) DO UPDATE SET setting_value = excluded.setting_value, updated_at = CURRENT_TIMESTAMP`
}

func (d *SQLiteDialect) UpsertProgress() string {
	return `INSERT INTO saved_progress (vocabulary_id, config, snapshot, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(vocabulary_id) DO UPDATE SET config = excluded.config, snapshot = excluded.snapshot, updated_at = CURRENT_TIMESTAMP`
}
