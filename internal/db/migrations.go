package db

import (
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	sql     string
}

// Column names follow the nurse_aid.db layout so existing databases open
// without a data migration.
var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		sql: `
CREATE TABLE IF NOT EXISTS resident (
  id INTEGER PRIMARY KEY,
  first_name TEXT,
  last_name TEXT,
  dob TEXT
);

CREATE TABLE IF NOT EXISTS medication (
  id INTEGER PRIMARY KEY,
  name TEXT,
  other_name TEXT,
  resident_id INTEGER,
  notes TEXT DEFAULT '',
  FOREIGN KEY (resident_id) REFERENCES resident(id)
);

CREATE TABLE IF NOT EXISTS medication_info (
  id INTEGER PRIMARY KEY,
  expiry TEXT,
  quantity REAL,
  strength REAL,
  medication_type TEXT,
  notes TEXT,
  medication_id INTEGER,
  supplier TEXT,
  measurement TEXT,
  FOREIGN KEY (medication_id) REFERENCES medication(id)
);

CREATE TABLE IF NOT EXISTS dose_info (
  id INTEGER PRIMARY KEY,
  dose REAL,
  measurement TEXT,
  frequency_per_day REAL,
  regular_or_prn INTEGER,
  medication_info_id INTEGER,
  FOREIGN KEY (medication_info_id) REFERENCES medication_info(id)
);
`,
	},
	{
		version: 2,
		name:    "foreign_key_indexes",
		sql: `
CREATE INDEX IF NOT EXISTS idx_medication_resident_id ON medication(resident_id);
CREATE INDEX IF NOT EXISTS idx_medication_info_medication_id ON medication_info(medication_id);
CREATE INDEX IF NOT EXISTS idx_dose_info_medication_info_id ON dose_info(medication_info_id);
`,
	},
}

// SchemaVersion is the highest migration version known to this build.
func SchemaVersion() int {
	return migrations[len(migrations)-1].version
}

func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}
		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
	}
	return nil
}
