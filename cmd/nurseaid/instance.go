package nurseaid

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/nurse-aid/internal/repository"
	"github.com/saadjs/nurse-aid/internal/service"
)

var instanceCmd = &cobra.Command{
	Use:   "instance",
	Short: "Manage stock batches of a medication",
}

var (
	instanceMedication  int64
	instanceExpiry      string
	instanceQuantity    float64
	instanceStrength    float64
	instanceMeasurement string
	instanceType        string
	instanceSupplier    string
	instanceNotes       string
)

var instanceAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a stock batch",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.InstanceInput{
			Expiry:         instanceExpiry,
			Quantity:       instanceQuantity,
			Strength:       instanceStrength,
			MedicationType: instanceType,
			Notes:          instanceNotes,
			MedicationID:   instanceMedication,
			Supplier:       instanceSupplier,
			Measurement:    instanceMeasurement,
		}
		return withRepo(func(repo repository.Repository) error {
			id, err := service.AddInstance(repo, in)
			if err != nil {
				return err
			}
			logger.Info().Int64("instance_id", id).Int64("medication_id", in.MedicationID).Msg("instance added")
			fmt.Fprintf(cmd.OutOrStdout(), "Added instance %d\n", id)
			return nil
		})
	},
}

var instanceListCmd = &cobra.Command{
	Use:   "list <medication-id>",
	Short: "List stock batches of a medication",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		medicationID, err := parseInt64Arg("medication id", args[0])
		if err != nil {
			return err
		}
		return withRepo(func(repo repository.Repository) error {
			if _, err := repo.GetMedication(medicationID); err != nil {
				return err
			}
			items, err := service.InstancesOf(repo, medicationID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tEXPIRY\tQUANTITY\tFORM\tSTRENGTH\tSUPPLIER")
			for _, i := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%s%s\t%s\n",
					i.ID, i.Expiry, formatAmount(i.Quantity), i.MedicationType, formatAmount(i.Strength), i.Measurement, i.Supplier)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(instanceCmd)
	instanceCmd.AddCommand(instanceAddCmd, instanceListCmd)

	instanceAddCmd.Flags().Int64Var(&instanceMedication, "medication", 0, "Medication id")
	instanceAddCmd.Flags().StringVar(&instanceExpiry, "expiry", "", "Expiry date MM/DD/YY (empty for none)")
	instanceAddCmd.Flags().Float64Var(&instanceQuantity, "quantity", 0, "Units in stock")
	instanceAddCmd.Flags().Float64Var(&instanceStrength, "strength", 0, "Strength per unit")
	instanceAddCmd.Flags().StringVar(&instanceMeasurement, "measurement", "", "Strength unit: g, mg or mcg")
	instanceAddCmd.Flags().StringVar(&instanceType, "type", "", "Form, e.g. "+strings.Join(service.KnownForms, ", "))
	instanceAddCmd.Flags().StringVar(&instanceSupplier, "supplier", "", "Supplier")
	instanceAddCmd.Flags().StringVar(&instanceNotes, "notes", "", "Notes")
	_ = instanceAddCmd.MarkFlagRequired("medication")
}
