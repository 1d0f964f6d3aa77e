package nurseaid

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/nurse-aid/internal/repository"
	"github.com/saadjs/nurse-aid/internal/service"
)

var residentCmd = &cobra.Command{
	Use:   "resident",
	Short: "Manage residents",
}

var (
	residentFirst string
	residentLast  string
	residentDOB   string
)

var residentAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add resident",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.ResidentInput{FirstName: residentFirst, LastName: residentLast, DateOfBirth: residentDOB}
		return withRepo(func(repo repository.Repository) error {
			id, err := service.AddResident(repo, in)
			if err != nil {
				return err
			}
			logger.Info().Int64("resident_id", id).Msg("resident added")
			fmt.Fprintf(cmd.OutOrStdout(), "Added resident %d\n", id)
			return nil
		})
	},
}

var residentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List residents",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(func(repo repository.Repository) error {
			items, err := service.ListResidents(repo)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tFIRST\tLAST\tDOB")
			for _, r := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n", r.ID, r.FirstName, r.LastName, r.DateOfBirth)
			}
			return nil
		})
	},
}

var residentShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a resident's medications, stock and doses",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("resident id", args[0])
		if err != nil {
			return err
		}
		return withRepo(func(repo repository.Repository) error {
			tree, err := service.LoadResidentTree(repo, id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			r := tree.Resident
			fmt.Fprintf(out, "%s %s - %s\n", r.FirstName, r.LastName, r.DateOfBirth)
			for _, med := range tree.Medications {
				m := med.Medication
				fmt.Fprintf(out, "Medication %d: %s - %s\n", m.ID, m.Name, m.OtherName)
				for _, inst := range med.Instances {
					i := inst.Instance
					fmt.Fprintf(out, "  Instance %d: Expiry: %s - Quantity: %s %s - Strength: %s%s - Supplier: %s\n",
						i.ID, i.Expiry, formatAmount(i.Quantity), i.MedicationType, formatAmount(i.Strength), i.Measurement, i.Supplier)
					for _, d := range inst.Doses {
						fmt.Fprintf(out, "    Dose %d: %s%s - Frequency Per Day: %s - Regularity: %s - Days Remaining: %s\n",
							d.Dose.ID, formatAmount(d.Dose.Amount), d.Dose.Measurement, formatAmount(d.Dose.FrequencyPerDay), d.Dose.Regularity, d.DaysRemaining)
					}
				}
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(residentCmd)
	residentCmd.AddCommand(residentAddCmd, residentListCmd, residentShowCmd)

	residentAddCmd.Flags().StringVar(&residentFirst, "first-name", "", "First name (letters only)")
	residentAddCmd.Flags().StringVar(&residentLast, "last-name", "", "Last name (letters only)")
	residentAddCmd.Flags().StringVar(&residentDOB, "dob", "", "Date of birth YYYY-MM-DD")
	_ = residentAddCmd.MarkFlagRequired("first-name")
	_ = residentAddCmd.MarkFlagRequired("last-name")
	_ = residentAddCmd.MarkFlagRequired("dob")
}
