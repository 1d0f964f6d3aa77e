package nurseaid

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/nurse-aid/internal/repository"
	"github.com/saadjs/nurse-aid/internal/service"
)

var stockCmd = &cobra.Command{
	Use:   "stock",
	Short: "Adjust and inspect stock levels",
}

var stockLowDays float64

var stockSetCmd = &cobra.Command{
	Use:   "set <instance-id> <quantity>",
	Short: "Replace the quantity held of a stock batch",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("instance id", args[0])
		if err != nil {
			return err
		}
		return withRepo(func(repo repository.Repository) error {
			inst, err := service.SetQuantity(repo, id, args[1])
			if err != nil {
				return err
			}
			logger.Info().Int64("instance_id", id).Float64("quantity", inst.Quantity).Msg("quantity updated")
			fmt.Fprintf(cmd.OutOrStdout(), "Instance %d quantity: %s %s\n", inst.ID, formatAmount(inst.Quantity), inst.MedicationType)
			return nil
		})
	},
}

var stockLowCmd = &cobra.Command{
	Use:   "low <resident-id>",
	Short: "List regular doses about to run out",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		residentID, err := parseInt64Arg("resident id", args[0])
		if err != nil {
			return err
		}
		days := cfg.LowSupplyDays
		if cmd.Flags().Changed("days") {
			days = stockLowDays
		}
		return withRepo(func(repo repository.Repository) error {
			alerts, err := service.LowSupply(repo, residentID, days)
			if err != nil {
				return err
			}
			logger.Debug().Int64("resident_id", residentID).Int("alerts", len(alerts)).Msg("low supply checked")
			fmt.Fprintln(cmd.OutOrStdout(), "MEDICATION\tINSTANCE\tDOSE\tDAYS REMAINING")
			for _, a := range alerts {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%d\t%s\n", a.Medication.Name, a.Instance.ID, a.Dose.ID, a.DaysRemaining)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(stockCmd)
	stockCmd.AddCommand(stockSetCmd, stockLowCmd)

	stockLowCmd.Flags().Float64Var(&stockLowDays, "days", 0, "Alert threshold in days (default from config)")
}
