package service

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/saadjs/nurse-aid/internal/db"
)

// ErrInvalidBackup marks a file that cannot be restored as a nurse-aid database.
var ErrInvalidBackup = errors.New("invalid backup")

// Tables a snapshot must contain before it may replace the live database.
var snapshotTables = []string{"schema_migrations", "resident", "medication", "medication_info", "dose_info"}

// BackupInfo describes a snapshot. Everything except Path is persisted in
// the .json manifest written beside it.
type BackupInfo struct {
	Path          string    `json:"-"`
	Checksum      string    `json:"checksum"`
	CreatedAt     time.Time `json:"created_at"`
	SizeBytes     int64     `json:"size_bytes"`
	SchemaVersion int       `json:"schema_version"`
	Residents     int       `json:"residents"`
	Medications   int       `json:"medications"`
	Instances     int       `json:"instances"`
	Doses         int       `json:"doses"`
}

func BackupFileName(now time.Time) string {
	return fmt.Sprintf("nurse_aid-%s.db", now.Format("20060102-150405"))
}

func manifestPath(backupPath string) string {
	return backupPath + ".json"
}

// CreateBackup snapshots the open database into outPath with VACUUM INTO and
// records its schema version, record counts and checksum in a manifest.
func CreateBackup(sqldb *sql.DB, outPath string, now time.Time) (BackupInfo, error) {
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	if _, err := os.Stat(outPath); err == nil {
		return BackupInfo{}, fmt.Errorf("backup %s already exists", outPath)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
	}
	if _, err := sqldb.Exec(`VACUUM INTO ?`, outPath); err != nil {
		return BackupInfo{}, fmt.Errorf("snapshot database: %w", err)
	}

	checksum, err := fileSHA256(outPath)
	if err != nil {
		return BackupInfo{}, err
	}
	info, err := InspectSnapshot(outPath)
	if err != nil {
		return BackupInfo{}, err
	}
	info.Checksum = checksum
	info.CreatedAt = now.UTC()

	b, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return BackupInfo{}, fmt.Errorf("marshal backup manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath(outPath), append(b, '\n'), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write backup manifest: %w", err)
	}
	return info, nil
}

// InspectSnapshot opens the file at path and confirms it holds the nurse-aid
// tables at a schema version this build understands. A missing file is
// reported, never created.
func InspectSnapshot(path string) (BackupInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("%w: %s: %v", ErrInvalidBackup, path, err)
	}
	if st.IsDir() {
		return BackupInfo{}, fmt.Errorf("%w: %s is a directory", ErrInvalidBackup, path)
	}

	sqldb, err := db.Open(path)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("%w: %s: %v", ErrInvalidBackup, path, err)
	}
	defer sqldb.Close()

	present, err := tableNames(sqldb)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("%w: %s: %v", ErrInvalidBackup, path, err)
	}
	for _, name := range snapshotTables {
		if !present[name] {
			return BackupInfo{}, fmt.Errorf("%w: %s has no %s table", ErrInvalidBackup, path, name)
		}
	}

	info := BackupInfo{Path: path, SizeBytes: st.Size()}
	if err := sqldb.QueryRow(`SELECT IFNULL(MAX(version), 0) FROM schema_migrations`).Scan(&info.SchemaVersion); err != nil {
		return BackupInfo{}, fmt.Errorf("%w: %s: read schema version: %v", ErrInvalidBackup, path, err)
	}
	if info.SchemaVersion > db.SchemaVersion() {
		return BackupInfo{}, fmt.Errorf("%w: %s has schema version %d, newer than supported %d",
			ErrInvalidBackup, path, info.SchemaVersion, db.SchemaVersion())
	}

	counts := []struct {
		table string
		dst   *int
	}{
		{"resident", &info.Residents},
		{"medication", &info.Medications},
		{"medication_info", &info.Instances},
		{"dose_info", &info.Doses},
	}
	for _, c := range counts {
		if err := sqldb.QueryRow(`SELECT COUNT(1) FROM ` + c.table).Scan(c.dst); err != nil {
			return BackupInfo{}, fmt.Errorf("%w: %s: count %s: %v", ErrInvalidBackup, path, c.table, err)
		}
	}
	return info, nil
}

func tableNames(sqldb *sql.DB) (map[string]bool, error) {
	rows, err := sqldb.Query(`SELECT name FROM sqlite_master WHERE type = 'table'`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	names := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names[name] = true
	}
	return names, rows.Err()
}

func readManifest(backupPath string) (BackupInfo, bool, error) {
	b, err := os.ReadFile(manifestPath(backupPath))
	if errors.Is(err, os.ErrNotExist) {
		return BackupInfo{}, false, nil
	}
	if err != nil {
		return BackupInfo{}, false, fmt.Errorf("read backup manifest: %w", err)
	}
	var info BackupInfo
	if err := json.Unmarshal(b, &info); err != nil {
		return BackupInfo{}, false, fmt.Errorf("%w: %s: manifest: %v", ErrInvalidBackup, backupPath, err)
	}
	info.Path = backupPath
	return info, true, nil
}

// VerifyBackup inspects the snapshot and, when a manifest exists, checks the
// checksum and schema version recorded in it. Snapshots without a manifest
// still have to pass the schema inspection.
func VerifyBackup(backupPath string) (BackupInfo, error) {
	manifest, ok, err := readManifest(backupPath)
	if err != nil {
		return BackupInfo{}, err
	}
	if ok {
		actual, err := fileSHA256(backupPath)
		if err != nil {
			return BackupInfo{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
		}
		if manifest.Checksum != actual {
			return BackupInfo{}, fmt.Errorf("%w: checksum mismatch for %s", ErrInvalidBackup, backupPath)
		}
	}
	info, err := InspectSnapshot(backupPath)
	if err != nil {
		return BackupInfo{}, err
	}
	if ok {
		if manifest.SchemaVersion != info.SchemaVersion {
			return BackupInfo{}, fmt.Errorf("%w: %s manifest says schema %d, file has %d",
				ErrInvalidBackup, backupPath, manifest.SchemaVersion, info.SchemaVersion)
		}
		info.Checksum = manifest.Checksum
		info.CreatedAt = manifest.CreatedAt
	}
	return info, nil
}

// RestoreBackup replaces the database at dbPath with a verified snapshot.
// The snapshot is vacuumed into a staging file beside dbPath and renamed
// over it, so a failed restore leaves the live database untouched.
func RestoreBackup(backupPath, dbPath string, force bool) (BackupInfo, error) {
	if strings.TrimSpace(backupPath) == "" || strings.TrimSpace(dbPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup path and db path are required")
	}
	info, err := VerifyBackup(backupPath)
	if err != nil {
		return BackupInfo{}, err
	}
	if !force {
		if _, err := os.Stat(dbPath); err == nil {
			return BackupInfo{}, fmt.Errorf("target db already exists; use --force to overwrite")
		}
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create db directory: %w", err)
	}

	staging := dbPath + ".restore"
	if err := os.Remove(staging); err != nil && !errors.Is(err, os.ErrNotExist) {
		return BackupInfo{}, fmt.Errorf("clear staging file: %w", err)
	}
	src, err := db.Open(backupPath)
	if err != nil {
		return BackupInfo{}, err
	}
	_, err = src.Exec(`VACUUM INTO ?`, staging)
	src.Close()
	if err != nil {
		_ = os.Remove(staging)
		return BackupInfo{}, fmt.Errorf("stage restore: %w", err)
	}
	if err := os.Rename(staging, dbPath); err != nil {
		_ = os.Remove(staging)
		return BackupInfo{}, fmt.Errorf("replace database: %w", err)
	}
	return info, nil
}

// ListBackups returns the snapshots in dir, newest first. Files that are not
// nurse-aid snapshots are skipped.
func ListBackups(dir string) ([]BackupInfo, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := make([]BackupInfo, 0)
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".db" {
			continue
		}
		full := filepath.Join(dir, f.Name())
		info, ok, err := readManifest(full)
		if err != nil || !ok {
			if info, err = InspectSnapshot(full); err != nil {
				continue
			}
			if st, err := os.Stat(full); err == nil {
				info.CreatedAt = st.ModTime()
			}
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for checksum: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
