package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/saadjs/nurse-aid/internal/model"
	"github.com/saadjs/nurse-aid/internal/repository"
)

// Forms offered by the instance form; MedicationType itself stays free text.
var KnownForms = []string{"Caplets", "Capsules", "Dressing", "Effervescent Tablets", "Liquid (ml)", "Roll", "Sachets", "Tablets"}

type ResidentInput struct {
	FirstName   string
	LastName    string
	DateOfBirth string
}

type MedicationInput struct {
	Name       string
	OtherName  string
	ResidentID int64
}

type InstanceInput struct {
	Expiry         string
	Quantity       float64
	Strength       float64
	MedicationType string
	Notes          string
	MedicationID   int64
	Supplier       string
	Measurement    string
}

type DoseInput struct {
	Amount          float64
	Measurement     string
	FrequencyPerDay float64
	Regularity      string
	InstanceID      int64
}

func AddResident(repo repository.Repository, in ResidentInput) (int64, error) {
	first, err := validateAlpha("first name", in.FirstName)
	if err != nil {
		return 0, err
	}
	last, err := validateAlpha("last name", in.LastName)
	if err != nil {
		return 0, err
	}
	dob := strings.TrimSpace(in.DateOfBirth)
	if _, err := time.Parse("2006-01-02", dob); err != nil {
		return 0, invalidf("date of birth %q (expected YYYY-MM-DD)", in.DateOfBirth)
	}
	return repo.AddResident(model.Resident{FirstName: first, LastName: last, DateOfBirth: dob})
}

func AddMedication(repo repository.Repository, in MedicationInput) (int64, error) {
	name, err := validateAlpha("medication name", in.Name)
	if err != nil {
		return 0, err
	}
	other, err := validateAlpha("other name", in.OtherName)
	if err != nil {
		return 0, err
	}
	if err := validateID("resident id", in.ResidentID); err != nil {
		return 0, err
	}
	return repo.AddMedication(model.Medication{Name: name, OtherName: other, ResidentID: in.ResidentID})
}

func AddInstance(repo repository.Repository, in InstanceInput) (int64, error) {
	if err := validateNonNegativeFloat("quantity", in.Quantity); err != nil {
		return 0, err
	}
	if err := validateNonNegativeFloat("strength", in.Strength); err != nil {
		return 0, err
	}
	unit, err := normalizeMeasurement(in.Measurement)
	if err != nil {
		return 0, err
	}
	expiry, err := normalizeExpiry(in.Expiry)
	if err != nil {
		return 0, err
	}
	if err := validateID("medication id", in.MedicationID); err != nil {
		return 0, err
	}
	return repo.AddInstance(model.MedicationInstance{
		Expiry:         expiry,
		Quantity:       in.Quantity,
		Strength:       in.Strength,
		MedicationType: strings.TrimSpace(in.MedicationType),
		Notes:          strings.TrimSpace(in.Notes),
		MedicationID:   in.MedicationID,
		Supplier:       strings.TrimSpace(in.Supplier),
		Measurement:    unit,
	})
}

func AddDose(repo repository.Repository, in DoseInput) (int64, error) {
	if err := validateNonNegativeFloat("dose", in.Amount); err != nil {
		return 0, err
	}
	if err := validateNonNegativeFloat("frequency per day", in.FrequencyPerDay); err != nil {
		return 0, err
	}
	unit, err := normalizeMeasurement(in.Measurement)
	if err != nil {
		return 0, err
	}
	regularity, err := model.ParseRegularity(in.Regularity)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := validateID("instance id", in.InstanceID); err != nil {
		return 0, err
	}
	return repo.AddDose(model.Dose{
		Amount:          in.Amount,
		Measurement:     unit,
		FrequencyPerDay: in.FrequencyPerDay,
		Regularity:      regularity,
		InstanceID:      in.InstanceID,
	})
}

func UpdateMedicationNotes(repo repository.Repository, medicationID int64, notes string) error {
	if err := validateID("medication id", medicationID); err != nil {
		return err
	}
	return repo.UpdateMedicationNotes(medicationID, strings.TrimRight(notes, "\r\n"))
}

func MedicationNotes(repo repository.Repository, medicationID int64) (string, error) {
	return repo.MedicationNotes(medicationID)
}

func LoadResident(repo repository.Repository, residentID int64) (model.Resident, error) {
	return repo.GetResident(residentID)
}

func ListResidents(repo repository.Repository) ([]model.Resident, error) {
	return repo.ListResidents()
}

func MedicationsOf(repo repository.Repository, residentID int64) ([]model.Medication, error) {
	return repo.ListMedications(residentID)
}

func InstancesOf(repo repository.Repository, medicationID int64) ([]model.MedicationInstance, error) {
	return repo.ListInstances(medicationID)
}

func DosesOf(repo repository.Repository, instanceID int64) ([]model.Dose, error) {
	return repo.ListDoses(instanceID)
}

// LoadResidentTree reads the resident and everything below it, annotating
// each dose with the supply estimate of the instance it belongs to.
func LoadResidentTree(repo repository.Repository, residentID int64) (model.ResidentTree, error) {
	resident, err := LoadResident(repo, residentID)
	if err != nil {
		return model.ResidentTree{}, err
	}
	tree := model.ResidentTree{Resident: resident}

	meds, err := MedicationsOf(repo, residentID)
	if err != nil {
		return model.ResidentTree{}, err
	}
	for _, med := range meds {
		medNode := model.MedicationNode{Medication: med}
		instances, err := InstancesOf(repo, med.ID)
		if err != nil {
			return model.ResidentTree{}, err
		}
		for _, inst := range instances {
			instNode := model.InstanceNode{Instance: inst}
			doses, err := DosesOf(repo, inst.ID)
			if err != nil {
				return model.ResidentTree{}, err
			}
			for _, d := range doses {
				instNode.Doses = append(instNode.Doses, model.DoseNode{Dose: d, DaysRemaining: DaysRemainingFor(inst, d)})
			}
			medNode.Instances = append(medNode.Instances, instNode)
		}
		tree.Medications = append(tree.Medications, medNode)
	}
	return tree, nil
}
