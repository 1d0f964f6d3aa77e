package nurseaid

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/nurse-aid/internal/service"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(sqldb)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Orphan medications: %d\n", report.OrphanMedications)
			fmt.Fprintf(out, "Orphan instances: %d\n", report.OrphanInstances)
			fmt.Fprintf(out, "Orphan doses: %d\n", report.OrphanDoses)
			fmt.Fprintf(out, "Negative quantities: %d\n", report.NegativeQuantities)
			fmt.Fprintf(out, "Unknown regularity: %d\n", report.UnknownRegularity)
			fmt.Fprintf(out, "Unparseable expiry (reported as undated): %d\n", report.UnparseableExpiry)
			if report.Problems() > 0 {
				logger.Warn().Int("problems", report.Problems()).Msg("integrity issues found")
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
