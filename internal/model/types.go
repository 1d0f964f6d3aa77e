package model

import (
	"fmt"
	"strings"
	"time"
)

type Resident struct {
	ID          int64
	FirstName   string
	LastName    string
	DateOfBirth string
}

// Label is the "First Last DOB" form used to title reports.
func (r Resident) Label() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s %s", r.FirstName, r.LastName, r.DateOfBirth))
}

type Medication struct {
	ID         int64
	Name       string
	OtherName  string
	ResidentID int64
	Notes      string
}

// MedicationInstance is one physical stock batch of a medication.
type MedicationInstance struct {
	ID             int64
	Expiry         string
	Quantity       float64
	Strength       float64
	MedicationType string
	Notes          string
	MedicationID   int64
	Supplier       string
	Measurement    string
}

type Dose struct {
	ID              int64
	Amount          float64
	Measurement     string
	FrequencyPerDay float64
	Regularity      Regularity
	InstanceID      int64
}

type Regularity string

const (
	Regular Regularity = "Regular"
	PRN     Regularity = "PRN"
)

func ParseRegularity(s string) (Regularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "regular":
		return Regular, nil
	case "prn":
		return PRN, nil
	default:
		return "", fmt.Errorf("invalid regularity %q (use Regular or PRN)", s)
	}
}

// DaysRemaining is an estimate of supply duration. Applicable is false for
// PRN doses and doses without a usable daily consumption.
type DaysRemaining struct {
	Days       float64
	Applicable bool
}

func (d DaysRemaining) String() string {
	if !d.Applicable {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", d.Days)
}

// ExpiryEntry pairs a medication name with the raw expiry of one of its instances.
type ExpiryEntry struct {
	MedicationName string
	Expiry         string
}

type ExpiryBuckets struct {
	Expired []string
	DueSoon []string
	InDate  []string
	Undated []string
}

func (b ExpiryBuckets) Total() int {
	return len(b.Expired) + len(b.DueSoon) + len(b.InDate) + len(b.Undated)
}

type ExpiryReport struct {
	Owner       string
	GeneratedAt time.Time
	Buckets     ExpiryBuckets
}

// Tree types hydrate a resident's full medication hierarchy.
type ResidentTree struct {
	Resident    Resident
	Medications []MedicationNode
}

type MedicationNode struct {
	Medication Medication
	Instances  []InstanceNode
}

type InstanceNode struct {
	Instance MedicationInstance
	Doses    []DoseNode
}

type DoseNode struct {
	Dose          Dose
	DaysRemaining DaysRemaining
}
