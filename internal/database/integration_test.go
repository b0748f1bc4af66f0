package database

import (
	"context"
	"path/filepath"
	"testing"
)

const testMigrationsPath = "../../migrations"

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(context.Background(), testMigrationsPath); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

// TestDatabaseIntegration tests the complete database lifecycle
func TestDatabaseIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	ctx := context.Background()

	tables := []string{"vocabularies", "words", "test_results", "test_result_words", "saved_progress", "settings"}
	for _, table := range tables {
		var name string
		err := db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}

	// A second run must be a no-op.
	if err := db.RunMigrations(ctx, testMigrationsPath); err != nil {
		t.Fatalf("Re-running migrations failed: %v", err)
	}
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM migrations").Scan(&count); err != nil {
		t.Fatalf("Failed to count migrations: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 recorded migration, got %d", count)
	}
}

func TestExecReturningID(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	ctx := context.Background()

	first, err := db.ExecReturningID(ctx, "INSERT INTO vocabularies (name) VALUES (?);", "animals")
	if err != nil {
		t.Fatalf("ExecReturningID() error: %v", err)
	}
	second, err := db.ExecReturningID(ctx, "INSERT INTO vocabularies (name) VALUES (?)", "food")
	if err != nil {
		t.Fatalf("ExecReturningID() error: %v", err)
	}
	if second != first+1 {
		t.Errorf("Expected sequential IDs, got %d and %d", first, second)
	}
}

// TestDatabaseTransactions tests transaction support
func TestDatabaseTransactions(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	ctx := context.Background()

	err := db.WithTx(ctx, func(tx *Tx) error {
		_, err := tx.ExecReturningID(ctx, "INSERT INTO vocabularies (name) VALUES (?)", "committed")
		return err
	})
	if err != nil {
		t.Fatalf("WithTx() error: %v", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO vocabularies (name) VALUES (?)", "rolled back"); err != nil {
		tx.Rollback()
		t.Fatalf("Failed to insert in transaction: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Failed to rollback transaction: %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM vocabularies").Scan(&count); err != nil {
		t.Fatalf("Failed to count vocabularies: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 vocabulary after rollback, got %d", count)
	}
}

func TestUpsertSettings(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	ctx := context.Background()

	for _, v := range []string{"true", "false"} {
		if _, err := db.ExecContext(ctx, db.Dialect.UpsertSettings(), "reverse", v); err != nil {
			t.Fatalf("UpsertSettings() error: %v", err)
		}
	}

	var value string
	err := db.QueryRowContext(ctx, "SELECT setting_value FROM settings WHERE setting_key = ?", "reverse").Scan(&value)
	if err != nil {
		t.Fatalf("Failed to read setting: %v", err)
	}
	if value != "false" {
		t.Errorf("Expected upserted value 'false', got %q", value)
	}
}

// TestConcurrentAccess tests concurrent database access
func TestConcurrentAccess(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	ctx := context.Background()

	if _, err := db.ExecContext(ctx, "INSERT INTO vocabularies (name) VALUES (?)", "shared"); err != nil {
		t.Fatalf("Failed to create test vocabulary: %v", err)
	}

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			var name string
			err := db.QueryRowContext(ctx, "SELECT name FROM vocabularies WHERE name = ?", "shared").Scan(&name)
			if err != nil {
				t.Errorf("Concurrent read failed: %v", err)
			}
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
