package nurseaid

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/nurse-aid/internal/repository"
	"github.com/saadjs/nurse-aid/internal/service"
)

var doseCmd = &cobra.Command{
	Use:   "dose",
	Short: "Manage dosing schedules",
}

var (
	doseInstance    int64
	doseAmount      float64
	doseMeasurement string
	doseFrequency   float64
	doseRegularity  string
)

var doseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add dosing schedule to a stock batch",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.DoseInput{
			Amount:          doseAmount,
			Measurement:     doseMeasurement,
			FrequencyPerDay: doseFrequency,
			Regularity:      doseRegularity,
			InstanceID:      doseInstance,
		}
		return withRepo(func(repo repository.Repository) error {
			id, err := service.AddDose(repo, in)
			if err != nil {
				return err
			}
			logger.Info().Int64("dose_id", id).Int64("instance_id", in.InstanceID).Msg("dose added")
			fmt.Fprintf(cmd.OutOrStdout(), "Added dose %d\n", id)
			return nil
		})
	},
}

var doseListCmd = &cobra.Command{
	Use:   "list <instance-id>",
	Short: "List doses of a stock batch with days remaining",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		instanceID, err := parseInt64Arg("instance id", args[0])
		if err != nil {
			return err
		}
		return withRepo(func(repo repository.Repository) error {
			inst, err := repo.GetInstance(instanceID)
			if err != nil {
				return err
			}
			items, err := service.DosesOf(repo, instanceID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDOSE\tPER DAY\tREGULARITY\tDAYS REMAINING")
			for _, d := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s%s\t%s\t%s\t%s\n",
					d.ID, formatAmount(d.Amount), d.Measurement, formatAmount(d.FrequencyPerDay), d.Regularity, service.DaysRemainingFor(inst, d))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doseCmd)
	doseCmd.AddCommand(doseAddCmd, doseListCmd)

	doseAddCmd.Flags().Int64Var(&doseInstance, "instance", 0, "Instance id")
	doseAddCmd.Flags().Float64Var(&doseAmount, "amount", 0, "Amount per administration")
	doseAddCmd.Flags().StringVar(&doseMeasurement, "measurement", "", "Dose unit: g, mg or mcg")
	doseAddCmd.Flags().Float64Var(&doseFrequency, "frequency", 0, "Administrations per day")
	doseAddCmd.Flags().StringVar(&doseRegularity, "regularity", "Regular", "Regular or PRN")
	_ = doseAddCmd.MarkFlagRequired("instance")
}
