package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/nurse-aid/internal/config"
	"github.com/saadjs/nurse-aid/internal/service"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db_path: /var/lib/nurse-aid/ward.db
log_level: debug
log_format: json
low_supply_days: 3.5
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/nurse-aid/ward.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 3.5, cfg.LowSupplyDays)
	assert.Equal(t, service.DefaultLookupURL, cfg.LookupURL)
	assert.Equal(t, filepath.Join("/var/lib/nurse-aid", "reports"), cfg.ResolvedReportDir())
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &config.Config{LogLevel: "warn", LogFormat: "console"}
	assert.NoError(t, cfg.Validate())

	cfg.LogLevel = "loud"
	assert.Error(t, cfg.Validate())

	cfg.LogLevel = "info"
	cfg.LogFormat = "xml"
	assert.Error(t, cfg.Validate())

	cfg.LogFormat = "json"
	cfg.LowSupplyDays = -1
	assert.Error(t, cfg.Validate())
}
