package service

import (
	"github.com/saadjs/nurse-aid/internal/model"
	"github.com/saadjs/nurse-aid/internal/repository"
)

type SupplyAlert struct {
	Medication    model.Medication
	Instance      model.MedicationInstance
	Dose          model.Dose
	DaysRemaining model.DaysRemaining
}

// LowSupply lists regular doses whose stock runs out within thresholdDays.
// PRN doses never alert.
func LowSupply(repo repository.Repository, residentID int64, thresholdDays float64) ([]SupplyAlert, error) {
	if err := validateNonNegativeFloat("threshold days", thresholdDays); err != nil {
		return nil, err
	}
	tree, err := LoadResidentTree(repo, residentID)
	if err != nil {
		return nil, err
	}
	alerts := make([]SupplyAlert, 0)
	for _, med := range tree.Medications {
		for _, inst := range med.Instances {
			for _, d := range inst.Doses {
				if !d.DaysRemaining.Applicable || d.DaysRemaining.Days > thresholdDays {
					continue
				}
				alerts = append(alerts, SupplyAlert{
					Medication:    med.Medication,
					Instance:      inst.Instance,
					Dose:          d.Dose,
					DaysRemaining: d.DaysRemaining,
				})
			}
		}
	}
	return alerts, nil
}
