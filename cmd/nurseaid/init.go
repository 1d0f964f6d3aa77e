package nurseaid

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local nurse-aid database",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(*sql.DB) error {
			logger.Info().Str("db", cfg.DBPath).Msg("database ready")
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized nurse-aid database at %s\n", cfg.DBPath)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
