package nurseaid

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/saadjs/nurse-aid/internal/report"
	"github.com/saadjs/nurse-aid/internal/repository"
	"github.com/saadjs/nurse-aid/internal/service"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compile reports",
}

var (
	reportFormat string
	reportOut    string
)

var reportExpiryCmd = &cobra.Command{
	Use:   "expiry <resident-id>",
	Short: "Compile expiry report for a resident",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		residentID, err := parseInt64Arg("resident id", args[0])
		if err != nil {
			return err
		}
		var sink service.ReportSink
		switch strings.ToLower(strings.TrimSpace(reportFormat)) {
		case "xlsx":
			dir := reportOut
			if dir == "" {
				dir = cfg.ResolvedReportDir()
			}
			sink = report.XLSX{Dir: dir}
		case "text":
			sink = report.Text{W: cmd.OutOrStdout(), Dir: reportOut}
		default:
			return fmt.Errorf("unsupported report format %q (use xlsx or text)", reportFormat)
		}
		return withRepo(func(repo repository.Repository) error {
			location, err := service.CompileExpiryReport(repo, sink, residentID, time.Now())
			if err != nil {
				return err
			}
			logger.Info().Int64("resident_id", residentID).Str("location", location).Msg("expiry report compiled")
			if location != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", location)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportExpiryCmd)

	reportExpiryCmd.Flags().StringVar(&reportFormat, "format", "xlsx", "Output format: xlsx or text")
	reportExpiryCmd.Flags().StringVar(&reportOut, "out", "", "Report directory; xlsx defaults to the configured one, text prints to stdout when empty")
}
