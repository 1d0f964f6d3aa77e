package nurseaid

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/saadjs/nurse-aid/internal/app"
	"github.com/saadjs/nurse-aid/internal/db"
	"github.com/saadjs/nurse-aid/internal/repository"
)

// withDB opens and migrates the database for the duration of run.
func withDB(run func(*sql.DB) error) error {
	path := cfg.DBPath
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

func withRepo(run func(repository.Repository) error) error {
	return withDB(func(sqldb *sql.DB) error {
		return run(repository.NewSQLite(sqldb))
	})
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
