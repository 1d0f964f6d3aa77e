package service

import (
	"database/sql"
	"fmt"
	"strings"
)

type DoctorReport struct {
	OrphanMedications  int `json:"orphan_medications"`
	OrphanInstances    int `json:"orphan_instances"`
	OrphanDoses        int `json:"orphan_doses"`
	NegativeQuantities int `json:"negative_quantities"`
	UnparseableExpiry  int `json:"unparseable_expiry"`
	UnknownRegularity  int `json:"unknown_regularity"`
}

// Problems counts findings that break a data invariant. Unparseable expiry
// rows are reported but tolerated; they classify as undated.
func (r DoctorReport) Problems() int {
	return r.OrphanMedications + r.OrphanInstances + r.OrphanDoses + r.NegativeQuantities + r.UnknownRegularity
}

// RunDoctor checks the invariants that older databases written without
// foreign keys may violate.
func RunDoctor(db *sql.DB) (DoctorReport, error) {
	report := DoctorReport{}
	counts := []struct {
		label string
		dst   *int
		query string
	}{
		{"orphan medications", &report.OrphanMedications,
			`SELECT COUNT(1) FROM medication m LEFT JOIN resident r ON r.id = m.resident_id WHERE r.id IS NULL`},
		{"orphan instances", &report.OrphanInstances,
			`SELECT COUNT(1) FROM medication_info mi LEFT JOIN medication m ON m.id = mi.medication_id WHERE m.id IS NULL`},
		{"orphan doses", &report.OrphanDoses,
			`SELECT COUNT(1) FROM dose_info d LEFT JOIN medication_info mi ON mi.id = d.medication_info_id WHERE mi.id IS NULL`},
		{"negative quantities", &report.NegativeQuantities,
			`SELECT COUNT(1) FROM medication_info WHERE quantity < 0`},
		{"unknown regularity", &report.UnknownRegularity,
			`SELECT COUNT(1) FROM dose_info WHERE IFNULL(CAST(regular_or_prn AS TEXT), '') NOT IN ('Regular', 'PRN')`},
	}
	for _, c := range counts {
		if err := db.QueryRow(c.query).Scan(c.dst); err != nil {
			return report, fmt.Errorf("doctor %s check: %w", c.label, err)
		}
	}

	rows, err := db.Query(`SELECT IFNULL(expiry, '') FROM medication_info`)
	if err != nil {
		return report, fmt.Errorf("doctor expiry query: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var expiry string
		if err := rows.Scan(&expiry); err != nil {
			return report, fmt.Errorf("doctor expiry scan: %w", err)
		}
		if strings.TrimSpace(expiry) == "" {
			continue
		}
		if _, ok := ParseExpiry(expiry); !ok {
			report.UnparseableExpiry++
		}
	}
	if err := rows.Err(); err != nil {
		return report, fmt.Errorf("doctor expiry iterate: %w", err)
	}
	return report, nil
}
