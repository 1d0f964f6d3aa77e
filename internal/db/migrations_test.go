package db_test

import (
	"path/filepath"
	"testing"

	"github.com/saadjs/nurse-aid/internal/db"
)

func TestApplyMigrationsIdempotent(t *testing.T) {
	t.Parallel()

	sqldb, err := db.Open(filepath.Join(t.TempDir(), "nurse_aid.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("first apply migrations: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("second apply migrations: %v", err)
	}

	var migrationCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM schema_migrations`).Scan(&migrationCount); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if migrationCount != db.SchemaVersion() {
		t.Fatalf("expected %d migration versions, got %d", db.SchemaVersion(), migrationCount)
	}

	for _, table := range []string{"resident", "medication", "medication_info", "dose_info"} {
		var n int
		if err := sqldb.QueryRow(`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&n); err != nil {
			t.Fatalf("check table %s: %v", table, err)
		}
		if n != 1 {
			t.Fatalf("expected table %s to exist", table)
		}
	}

	var regularityCol int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM pragma_table_info('dose_info') WHERE name = 'regular_or_prn'`).Scan(&regularityCol); err != nil {
		t.Fatalf("check dose_info regular_or_prn column: %v", err)
	}
	if regularityCol != 1 {
		t.Fatalf("expected regular_or_prn column in dose_info table")
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	t.Parallel()

	sqldb, err := db.Open(filepath.Join(t.TempDir(), "nurse_aid.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	if _, err := sqldb.Exec(`INSERT INTO medication(name, other_name, resident_id) VALUES('Aspirin', 'Disprin', 99)`); err == nil {
		t.Fatalf("expected foreign key violation for unknown resident")
	}
}
