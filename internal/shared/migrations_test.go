package shared

import (
	"testing"
)

func TestMigrationRunner(t *testing.T) {
	t.Run("loadMigrations", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}

		if len(migrations) != 2 {
			t.Fatalf("expected 2 migrations, got %d", len(migrations))
		}

		for i := 1; i < len(migrations); i++ {
			if migrations[i].Version <= migrations[i-1].Version {
				t.Errorf("migrations not sorted: version %d comes after %d", migrations[i].Version, migrations[i-1].Version)
			}
		}

		if migrations[0].Name != "create_downloads" {
			t.Errorf("expected first migration name create_downloads, got %s", migrations[0].Name)
		}
	})

	t.Run("RunMigrations And Rollback", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(1)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		for _, table := range []string{"downloads", "batches"} {
			if _, err := db.Exec("SELECT 1 FROM " + table + " LIMIT 1"); err != nil {
				t.Errorf("%s table should exist after migrations: %v", table, err)
			}
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to rollback migration: %v", err)
		}

		if _, err := db.Exec("SELECT 1 FROM batches LIMIT 1"); err == nil {
			t.Error("batches table should be gone after rollback")
		}
		if _, err := db.Exec("SELECT 1 FROM downloads LIMIT 1"); err != nil {
			t.Errorf("downloads table should survive a single rollback: %v", err)
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to rollback second migration: %v", err)
		}
		if err := RollbackMigration(db); err == nil {
			t.Error("expected error when nothing is left to rollback")
		}
	})

	t.Run("Idempotent Migrations", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(1)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations first time: %v", err)
		}

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations second time: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
			t.Fatalf("failed to query schema_migrations: %v", err)
		}

		migrations, _ := loadMigrations()
		if count != len(migrations) {
			t.Errorf("expected %d migrations to be applied, got %d", len(migrations), count)
		}
	})
}

func TestStripComments(t *testing.T) {
	got := stripComments("-- heading\nSELECT 1 -- trailing\n\n  FROM x")
	if got != "SELECT 1\nFROM x" {
		t.Errorf("stripComments() = %q", got)
	}
}
