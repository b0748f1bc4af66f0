package database

import (
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"
)

// MySQLDialect implements Dialect for MySQL
type MySQLDialect struct{}

// NewMySQLDialect creates a new MySQL dialect
func NewMySQLDialect() *MySQLDialect {
	return &MySQLDialect{}
}

func (d *MySQLDialect) DriverName() string {
	return "mysql"
}

// DSN takes a go-sql-driver DSN and forces parseTime, which DATETIME
// columns need, and UTC. An unparsable DSN is passed through for sql.Open
// to report.
func (d *MySQLDialect) DSN(config DialectConfig) string {
	cfg, err := mysql.ParseDSN(config.URL)
	if err != nil {
		return config.URL
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN()
}

func (d *MySQLDialect) RewriteQuery(query string) string {
	return query
}

func (d *MySQLDialect) SupportsLastInsertId() bool {
	return true
}

func (d *MySQLDialect) ConfigureConnection(db *sql.DB) error {
	configurePool(db)

	if _, err := db.Exec("SET FOREIGN_KEY_CHECKS = 1;"); err != nil {
		return err
	}
	return nil
}

func (d *MySQLDialect) MigrationsSubdir() string {
	return "mysql"
}

func (d *MySQLDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			filename VARCHAR(255) UNIQUE NOT NULL,
			executed_at DATETIME(6) DEFAULT CURRENT_TIMESTAMP(6)
		);
	`
}

// ClearTable uses DELETE; TRUNCATE is refused for tables referenced by
// foreign keys.
func (d *MySQLDialect) ClearTable(table string) string {
	return "DELETE FROM " + table
}

func (d *MySQLDialect) UpsertSettings() string {
	return "INSERT INTO settings (setting_key, setting_value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP) " +
		"ON DUPLICATE KEY UPDATE setting_value = VALUES(setting_value), updated_at = CURRENT_TIMESTAMP"
}

func (d *MySQLDialect) UpsertProgress() string {
	return "INSERT INTO saved_progress (vocabulary_id, config, snapshot, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP) " +
		"ON DUPLICATE KEY UPDATE config = VALUES(config), snapshot = VALUES(snapshot), updated_at = CURRENT_TIMESTAMP"
}
