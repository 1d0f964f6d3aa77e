package service_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/saadjs/nurse-aid/internal/db"
	"github.com/saadjs/nurse-aid/internal/repository"
	"github.com/saadjs/nurse-aid/internal/service"
)

func TestRunDoctor(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	s := seed(t, repository.NewSQLite(sqldb))

	report, err := service.RunDoctor(sqldb)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if report.Problems() != 0 || report.UnparseableExpiry != 0 {
		t.Fatalf("expected clean report, got %+v", report)
	}

	if _, err := sqldb.Exec(`PRAGMA foreign_keys = OFF`); err != nil {
		t.Fatalf("disable foreign keys: %v", err)
	}
	if _, err := sqldb.Exec(`INSERT INTO dose_info(dose, measurement, frequency_per_day, regular_or_prn, medication_info_id) VALUES(1, 'mg', 1, 'Sometimes', 404)`); err != nil {
		t.Fatalf("insert orphan dose: %v", err)
	}
	if _, err := sqldb.Exec(`INSERT INTO medication_info(expiry, quantity, strength, medication_id) VALUES('whenever', -2, 1, ?)`, s.medicationID); err != nil {
		t.Fatalf("insert bad instance: %v", err)
	}

	report, err = service.RunDoctor(sqldb)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if report.OrphanDoses != 1 || report.UnknownRegularity != 1 || report.NegativeQuantities != 1 || report.UnparseableExpiry != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestBackupSnapshotRoundTrip(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	live := filepath.Join(dir, "nurse_aid.db")
	sqldb := openDBAt(t, live)
	repo := repository.NewSQLite(sqldb)
	seed(t, repo)

	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	out := filepath.Join(dir, "backups", service.BackupFileName(now))
	info, err := service.CreateBackup(sqldb, out, now)
	if err != nil {
		t.Fatalf("create backup: %v", err)
	}
	if filepath.Base(info.Path) != "nurse_aid-20240101-080000.db" || info.Checksum == "" {
		t.Fatalf("unexpected backup info %+v", info)
	}
	if info.SchemaVersion != db.SchemaVersion() {
		t.Fatalf("schema version = %d, want %d", info.SchemaVersion, db.SchemaVersion())
	}
	if info.Residents != 1 || info.Medications != 1 || info.Instances != 1 || info.Doses != 1 {
		t.Fatalf("unexpected record counts %+v", info)
	}
	if _, err := os.Stat(out + ".json"); err != nil {
		t.Fatalf("expected manifest: %v", err)
	}
	if _, err := service.CreateBackup(sqldb, out, now); err == nil {
		t.Fatalf("expected existing backup to be kept")
	}

	items, err := service.ListBackups(filepath.Dir(out))
	if err != nil {
		t.Fatalf("list backups: %v", err)
	}
	if len(items) != 1 || items[0].Checksum != info.Checksum || items[0].Residents != 1 || !items[0].CreatedAt.Equal(now) {
		t.Fatalf("unexpected backups %+v", items)
	}

	if _, err := service.AddResident(repo, service.ResidentInput{FirstName: "Arthur", LastName: "Pym", DateOfBirth: "1941-11-30"}); err != nil {
		t.Fatalf("add resident: %v", err)
	}
	if err := sqldb.Close(); err != nil {
		t.Fatalf("close live db: %v", err)
	}

	if _, err := service.RestoreBackup(out, live, false); err == nil {
		t.Fatalf("expected restore over existing db without force to fail")
	}
	restored, err := service.RestoreBackup(out, live, true)
	if err != nil {
		t.Fatalf("restore backup: %v", err)
	}
	if restored.Checksum != info.Checksum {
		t.Fatalf("restored checksum = %q, want %q", restored.Checksum, info.Checksum)
	}
	if _, err := os.Stat(live + ".restore"); !os.IsNotExist(err) {
		t.Fatalf("expected staging file to be gone, stat err=%v", err)
	}

	reopened := openDBAt(t, live)
	defer reopened.Close()
	residents, err := service.ListResidents(repository.NewSQLite(reopened))
	if err != nil {
		t.Fatalf("list residents: %v", err)
	}
	if len(residents) != 1 || residents[0].FirstName != "Edith" {
		t.Fatalf("unexpected residents after restore %+v", residents)
	}
}

func TestRestoreRejectsNonDatabase(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	live := filepath.Join(dir, "nurse_aid.db")
	sqldb := openDBAt(t, live)
	seed(t, repository.NewSQLite(sqldb))
	sqldb.Close()

	notes := filepath.Join(dir, "notes.db")
	if err := os.WriteFile(notes, []byte("shopping list\n"), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}
	if _, err := service.RestoreBackup(notes, live, true); !errors.Is(err, service.ErrInvalidBackup) {
		t.Fatalf("expected ErrInvalidBackup, got %v", err)
	}

	reopened := openDBAt(t, live)
	defer reopened.Close()
	residents, err := service.ListResidents(repository.NewSQLite(reopened))
	if err != nil {
		t.Fatalf("list residents: %v", err)
	}
	if len(residents) != 1 {
		t.Fatalf("live database changed: %+v", residents)
	}
}

func TestRestoreRejectsForeignSchema(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	foreign := filepath.Join(dir, "kitchen.db")
	fdb, err := db.Open(foreign)
	if err != nil {
		t.Fatalf("open foreign db: %v", err)
	}
	if _, err := fdb.Exec(`CREATE TABLE foods (id INTEGER PRIMARY KEY, name TEXT)`); err != nil {
		t.Fatalf("create foods: %v", err)
	}
	fdb.Close()

	target := filepath.Join(dir, "nurse_aid.db")
	if _, err := service.RestoreBackup(foreign, target, true); !errors.Is(err, service.ErrInvalidBackup) {
		t.Fatalf("expected ErrInvalidBackup, got %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatalf("expected no target db, stat err=%v", err)
	}
}

func TestRestoreRejectsNewerSchema(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	future := filepath.Join(dir, "future.db")
	fdb := openDBAt(t, future)
	if _, err := fdb.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, 'later_release')`, db.SchemaVersion()+1); err != nil {
		t.Fatalf("insert migration row: %v", err)
	}
	fdb.Close()

	if _, err := service.RestoreBackup(future, filepath.Join(dir, "nurse_aid.db"), true); !errors.Is(err, service.ErrInvalidBackup) {
		t.Fatalf("expected ErrInvalidBackup, got %v", err)
	}
}

func TestVerifyBackupDetectsTampering(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	sqldb := openDBAt(t, filepath.Join(dir, "nurse_aid.db"))
	defer sqldb.Close()
	seed(t, repository.NewSQLite(sqldb))

	out := filepath.Join(dir, "backups", "snap.db")
	if _, err := service.CreateBackup(sqldb, out, time.Now()); err != nil {
		t.Fatalf("create backup: %v", err)
	}
	if _, err := service.VerifyBackup(out); err != nil {
		t.Fatalf("verify fresh backup: %v", err)
	}

	f, err := os.OpenFile(out, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open backup: %v", err)
	}
	if _, err := f.WriteString("tampered"); err != nil {
		t.Fatalf("tamper backup: %v", err)
	}
	f.Close()

	if _, err := service.VerifyBackup(out); !errors.Is(err, service.ErrInvalidBackup) {
		t.Fatalf("expected checksum mismatch, got %v", err)
	}
}

func TestInspectSnapshotDoesNotCreateMissingFile(t *testing.T) {
	t.Parallel()
	missing := filepath.Join(t.TempDir(), "absent.db")
	if _, err := service.InspectSnapshot(missing); !errors.Is(err, service.ErrInvalidBackup) {
		t.Fatalf("expected ErrInvalidBackup, got %v", err)
	}
	if _, err := os.Stat(missing); !os.IsNotExist(err) {
		t.Fatalf("inspect created %s", missing)
	}
}
