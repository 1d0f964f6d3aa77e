package service

import (
	"github.com/shopspring/decimal"

	"github.com/saadjs/nurse-aid/internal/model"
)

type DosingInput struct {
	Quantity        float64
	Strength        float64
	DoseAmount      float64
	FrequencyPerDay float64
	Regularity      model.Regularity
}

// DaysRemaining estimates how long the stock lasts: total active ingredient
// (strength * quantity) over daily consumption (dose * frequency), rounded
// to two places. Units are taken as given; g, mg and mcg are not converted.
func DaysRemaining(in DosingInput) model.DaysRemaining {
	if in.Regularity == model.PRN || in.FrequencyPerDay == 0 || in.DoseAmount == 0 {
		return model.DaysRemaining{}
	}
	stock := decimal.NewFromFloat(in.Strength).Mul(decimal.NewFromFloat(in.Quantity))
	daily := decimal.NewFromFloat(in.DoseAmount).Mul(decimal.NewFromFloat(in.FrequencyPerDay))
	return model.DaysRemaining{
		Days:       stock.DivRound(daily, 2).InexactFloat64(),
		Applicable: true,
	}
}

func DaysRemainingFor(inst model.MedicationInstance, d model.Dose) model.DaysRemaining {
	return DaysRemaining(DosingInput{
		Quantity:        inst.Quantity,
		Strength:        inst.Strength,
		DoseAmount:      d.Amount,
		FrequencyPerDay: d.FrequencyPerDay,
		Regularity:      d.Regularity,
	})
}
