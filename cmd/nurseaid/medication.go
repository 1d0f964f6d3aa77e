package nurseaid

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/nurse-aid/internal/repository"
	"github.com/saadjs/nurse-aid/internal/service"
)

var medicationCmd = &cobra.Command{
	Use:   "medication",
	Short: "Manage a resident's medications",
}

var (
	medicationResident  int64
	medicationName      string
	medicationOtherName string
	medicationNotesSet  string
)

var medicationAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add medication for a resident",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.MedicationInput{Name: medicationName, OtherName: medicationOtherName, ResidentID: medicationResident}
		return withRepo(func(repo repository.Repository) error {
			id, err := service.AddMedication(repo, in)
			if err != nil {
				return err
			}
			logger.Info().Int64("medication_id", id).Int64("resident_id", in.ResidentID).Msg("medication added")
			fmt.Fprintf(cmd.OutOrStdout(), "Added medication %d\n", id)
			return nil
		})
	},
}

var medicationListCmd = &cobra.Command{
	Use:   "list <resident-id>",
	Short: "List a resident's medications",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		residentID, err := parseInt64Arg("resident id", args[0])
		if err != nil {
			return err
		}
		return withRepo(func(repo repository.Repository) error {
			if _, err := service.LoadResident(repo, residentID); err != nil {
				return err
			}
			items, err := service.MedicationsOf(repo, residentID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tOTHER NAME")
			for _, m := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", m.ID, m.Name, m.OtherName)
			}
			return nil
		})
	},
}

var medicationNotesCmd = &cobra.Command{
	Use:   "notes <medication-id>",
	Short: "Show or replace medication notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("medication id", args[0])
		if err != nil {
			return err
		}
		return withRepo(func(repo repository.Repository) error {
			if cmd.Flags().Changed("set") {
				if err := service.UpdateMedicationNotes(repo, id, medicationNotesSet); err != nil {
					return err
				}
				logger.Info().Int64("medication_id", id).Msg("medication notes updated")
				fmt.Fprintf(cmd.OutOrStdout(), "Updated notes for medication %d\n", id)
				return nil
			}
			notes, err := service.MedicationNotes(repo, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), notes)
			return nil
		})
	},
}

var medicationLookupCmd = &cobra.Command{
	Use:   "lookup <name>",
	Short: "Print the medicine information search link for a name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		link, err := service.LookupURL(cfg.LookupURL, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), link)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(medicationCmd)
	medicationCmd.AddCommand(medicationAddCmd, medicationListCmd, medicationNotesCmd, medicationLookupCmd)

	medicationAddCmd.Flags().Int64Var(&medicationResident, "resident", 0, "Resident id")
	medicationAddCmd.Flags().StringVar(&medicationName, "name", "", "Medication name (letters only)")
	medicationAddCmd.Flags().StringVar(&medicationOtherName, "other-name", "", "Alternative name (letters only)")
	_ = medicationAddCmd.MarkFlagRequired("resident")
	_ = medicationAddCmd.MarkFlagRequired("name")
	_ = medicationAddCmd.MarkFlagRequired("other-name")

	medicationNotesCmd.Flags().StringVar(&medicationNotesSet, "set", "", "Replace the notes with this text")
}
