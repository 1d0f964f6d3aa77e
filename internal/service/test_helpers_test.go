package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/saadjs/nurse-aid/internal/db"
	"github.com/saadjs/nurse-aid/internal/repository"
	"github.com/saadjs/nurse-aid/internal/service"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openDBAt(t, filepath.Join(t.TempDir(), "nurse_aid.db"))
}

// openDBAt opens and migrates the database file at path.
func openDBAt(t *testing.T, path string) *sql.DB {
	t.Helper()
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

type seeded struct {
	residentID   int64
	medicationID int64
	instanceID   int64
	doseID       int64
}

// seed adds one resident with one medication, instance and regular dose:
// 28 x 500mg tablets at 250mg twice a day.
func seed(t *testing.T, repo repository.Repository) seeded {
	t.Helper()
	var s seeded
	var err error
	s.residentID, err = service.AddResident(repo, service.ResidentInput{FirstName: "Edith", LastName: "Crowley", DateOfBirth: "1938-04-02"})
	if err != nil {
		t.Fatalf("add resident: %v", err)
	}
	s.medicationID, err = service.AddMedication(repo, service.MedicationInput{Name: "Paracetamol", OtherName: "Acetaminophen", ResidentID: s.residentID})
	if err != nil {
		t.Fatalf("add medication: %v", err)
	}
	s.instanceID, err = service.AddInstance(repo, service.InstanceInput{
		Expiry:         "03/01/24",
		Quantity:       28,
		Strength:       500,
		MedicationType: "Tablets",
		MedicationID:   s.medicationID,
		Supplier:       "Boots",
		Measurement:    "mg",
	})
	if err != nil {
		t.Fatalf("add instance: %v", err)
	}
	s.doseID, err = service.AddDose(repo, service.DoseInput{
		Amount:          250,
		Measurement:     "mg",
		FrequencyPerDay: 2,
		Regularity:      "Regular",
		InstanceID:      s.instanceID,
	})
	if err != nil {
		t.Fatalf("add dose: %v", err)
	}
	return s
}
