// Package repository persists residents, medications, stock instances and
// doses. Implementations check referential integrity before every insert and
// never delete.
package repository

import (
	"errors"

	"github.com/saadjs/nurse-aid/internal/model"
)

// ErrNotFound reports a referenced entity that does not exist.
var ErrNotFound = errors.New("not found")

// Repository is the storage contract consumed by the service layer. List
// methods return records in insertion order.
type Repository interface {
	AddResident(r model.Resident) (int64, error)
	AddMedication(m model.Medication) (int64, error)
	AddInstance(i model.MedicationInstance) (int64, error)
	AddDose(d model.Dose) (int64, error)

	UpdateMedicationNotes(medicationID int64, notes string) error
	UpdateInstanceQuantity(instanceID int64, quantity float64) error

	GetResident(id int64) (model.Resident, error)
	GetMedication(id int64) (model.Medication, error)
	GetInstance(id int64) (model.MedicationInstance, error)

	ListResidents() ([]model.Resident, error)
	ListMedications(residentID int64) ([]model.Medication, error)
	ListInstances(medicationID int64) ([]model.MedicationInstance, error)
	ListDoses(instanceID int64) ([]model.Dose, error)

	MedicationName(medicationID int64) (string, error)
	MedicationNotes(medicationID int64) (string, error)
	QuantityAndStrength(instanceID int64) (quantity, strength float64, err error)

	// ListExpiryDates returns the raw expiry of every instance the resident
	// owns, grouped by medication.
	ListExpiryDates(residentID int64) ([]string, error)
	// ListExpiryEntries is ListExpiryDates with each date paired to the name
	// of the medication that owns the instance.
	ListExpiryEntries(residentID int64) ([]model.ExpiryEntry, error)
	// FindMedicationByExpiry returns the first medication holding an instance
	// with exactly this expiry text.
	FindMedicationByExpiry(expiry string) (int64, error)
}
