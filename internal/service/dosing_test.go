package service_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saadjs/nurse-aid/internal/model"
	"github.com/saadjs/nurse-aid/internal/service"
)

func TestDaysRemainingRegular(t *testing.T) {
	got := service.DaysRemaining(service.DosingInput{
		Quantity: 28, Strength: 500, DoseAmount: 250, FrequencyPerDay: 2, Regularity: model.Regular,
	})
	assert.True(t, got.Applicable)
	assert.Equal(t, 28.0, got.Days)
	assert.Equal(t, "28.00", got.String())
}

func TestDaysRemainingRoundsToTwoPlaces(t *testing.T) {
	cases := []struct {
		name string
		in   service.DosingInput
		want float64
	}{
		{"thirds", service.DosingInput{Quantity: 1, Strength: 10, DoseAmount: 3, FrequencyPerDay: 1}, 3.33},
		{"two thirds", service.DosingInput{Quantity: 2, Strength: 10, DoseAmount: 3, FrequencyPerDay: 1}, 6.67},
		{"half up", service.DosingInput{Quantity: 1, Strength: 1, DoseAmount: 8, FrequencyPerDay: 25}, 0.01},
		{"fractional stock", service.DosingInput{Quantity: 14.5, Strength: 2.5, DoseAmount: 5, FrequencyPerDay: 3}, 2.42},
		{"empty stock", service.DosingInput{Quantity: 0, Strength: 500, DoseAmount: 250, FrequencyPerDay: 2}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.Regularity = model.Regular
			got := service.DaysRemaining(tc.in)
			assert.True(t, got.Applicable)
			assert.InDelta(t, tc.want, got.Days, 1e-9)
		})
	}
}

func TestDaysRemainingMatchesFormula(t *testing.T) {
	for _, strength := range []float64{0.5, 5, 125, 500} {
		for _, quantity := range []float64{0, 1, 7, 28, 100.5} {
			for _, dose := range []float64{0.5, 1, 250} {
				for _, freq := range []float64{1, 2, 3, 4} {
					got := service.DaysRemaining(service.DosingInput{
						Quantity: quantity, Strength: strength, DoseAmount: dose, FrequencyPerDay: freq, Regularity: model.Regular,
					})
					want := math.Round((strength*quantity)/(dose*freq)*100) / 100
					assert.True(t, got.Applicable)
					assert.GreaterOrEqual(t, got.Days, 0.0)
					assert.InDelta(t, want, got.Days, 0.0051)
				}
			}
		}
	}
}

func TestDaysRemainingNotApplicable(t *testing.T) {
	cases := map[string]service.DosingInput{
		"prn":            {Quantity: 28, Strength: 500, DoseAmount: 250, FrequencyPerDay: 2, Regularity: model.PRN},
		"prn no freq":    {Quantity: 28, Strength: 500, DoseAmount: 0, FrequencyPerDay: 0, Regularity: model.PRN},
		"zero frequency": {Quantity: 28, Strength: 500, DoseAmount: 250, FrequencyPerDay: 0, Regularity: model.Regular},
		"zero dose":      {Quantity: 28, Strength: 500, DoseAmount: 0, FrequencyPerDay: 2, Regularity: model.Regular},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			got := service.DaysRemaining(in)
			assert.False(t, got.Applicable)
			assert.Equal(t, "N/A", got.String())
		})
	}
}
