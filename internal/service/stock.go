package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/saadjs/nurse-aid/internal/model"
	"github.com/saadjs/nurse-aid/internal/repository"
)

// SetQuantity replaces the stock level of an instance with raw, which must
// parse as a finite number >= 0. The stored instance is returned so callers
// can recompute days remaining.
func SetQuantity(repo repository.Repository, instanceID int64, raw string) (model.MedicationInstance, error) {
	quantity, err := ParseQuantity(raw)
	if err != nil {
		return model.MedicationInstance{}, err
	}
	if err := validateID("instance id", instanceID); err != nil {
		return model.MedicationInstance{}, err
	}
	if err := repo.UpdateInstanceQuantity(instanceID, quantity); err != nil {
		return model.MedicationInstance{}, err
	}
	return repo.GetInstance(instanceID)
}

func ParseQuantity(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, invalidQuantity(raw, "not a number")
	}
	if v < 0 {
		return 0, invalidQuantity(raw, "must be >= 0")
	}
	return v, nil
}

func invalidQuantity(raw, reason string) error {
	return fmt.Errorf("%w %q: %s", ErrInvalidQuantity, raw, reason)
}
