package app

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName     = "nurse-aid"
	dbFileName     = "nurse_aid.db"
	configFileName = "config.yaml"
)

func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

func DefaultDBPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbFileName), nil
}

func DefaultConfigPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// ReportDirFor places reports next to the database they were built from.
func ReportDirFor(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), "reports")
}

func BackupDirFor(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), "backups")
}

func EnsureDBDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return nil
}
