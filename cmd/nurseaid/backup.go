package nurseaid

import (
	"database/sql"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/saadjs/nurse-aid/internal/app"
	"github.com/saadjs/nurse-aid/internal/service"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot and restore the medication database",
}

var (
	backupOut    string
	backupDir    string
	restoreForce bool
)

func resolveBackupDir() string {
	if backupDir != "" {
		return backupDir
	}
	return app.BackupDirFor(cfg.DBPath)
}

func printSnapshot(w io.Writer, info service.BackupInfo) {
	fmt.Fprintf(w, "Schema version: %d\n", info.SchemaVersion)
	fmt.Fprintf(w, "Residents: %d, medications: %d, instances: %d, doses: %d\n",
		info.Residents, info.Medications, info.Instances, info.Doses)
	if info.Checksum != "" {
		fmt.Fprintf(w, "Checksum: %s\n", info.Checksum)
	}
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Snapshot the database with its record counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		out := backupOut
		if out == "" {
			out = filepath.Join(resolveBackupDir(), service.BackupFileName(now))
		}
		return withDB(func(sqldb *sql.DB) error {
			info, err := service.CreateBackup(sqldb, out, now)
			if err != nil {
				return err
			}
			logger.Info().Str("path", info.Path).Int("schema_version", info.SchemaVersion).Int("residents", info.Residents).Msg("backup created")
			fmt.Fprintf(cmd.OutOrStdout(), "Created backup: %s\n", info.Path)
			printSnapshot(cmd.OutOrStdout(), info)
			return nil
		})
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := service.ListBackups(resolveBackupDir())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "FILE\tCREATED\tSCHEMA\tRESIDENTS\tMEDICATIONS\tINSTANCES\tDOSES")
		for _, it := range items {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
				it.Path, it.CreatedAt.Format(time.RFC3339), it.SchemaVersion, it.Residents, it.Medications, it.Instances, it.Doses)
		}
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Replace the database with a verified snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := service.RestoreBackup(args[0], cfg.DBPath, restoreForce)
		if err != nil {
			return err
		}
		logger.Info().Str("from", args[0]).Str("db", cfg.DBPath).Int("schema_version", info.SchemaVersion).Msg("backup restored")
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %s into %s\n", args[0], cfg.DBPath)
		printSnapshot(cmd.OutOrStdout(), info)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd, backupListCmd, backupRestoreCmd)

	backupCreateCmd.Flags().StringVar(&backupOut, "out", "", "Snapshot file path")
	backupCreateCmd.Flags().StringVar(&backupDir, "dir", "", "Snapshot directory (used when --out is empty)")
	backupListCmd.Flags().StringVar(&backupDir, "dir", "", "Snapshot directory (default: alongside DB under backups/)")
	backupRestoreCmd.Flags().BoolVar(&restoreForce, "force", false, "Overwrite existing DB if present")
}
