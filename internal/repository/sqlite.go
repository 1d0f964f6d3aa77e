package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/saadjs/nurse-aid/internal/model"
)

var _ Repository = (*SQLite)(nil)

// SQLite stores records in the resident, medication, medication_info and
// dose_info tables created by db.ApplyMigrations.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

const (
	medicationColumns = `id, IFNULL(name, ''), IFNULL(other_name, ''), IFNULL(resident_id, 0), IFNULL(notes, '')`
	instanceColumns   = `id, IFNULL(expiry, ''), IFNULL(quantity, 0), IFNULL(strength, 0), IFNULL(medication_type, ''),
IFNULL(notes, ''), IFNULL(medication_id, 0), IFNULL(supplier, ''), IFNULL(measurement, '')`
	doseColumns = `id, IFNULL(dose, 0), IFNULL(measurement, ''), IFNULL(frequency_per_day, 0),
IFNULL(CAST(regular_or_prn AS TEXT), ''), IFNULL(medication_info_id, 0)`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *SQLite) exists(table string, id int64) error {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM `+table+` WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", table, id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("lookup %s %d: %w", table, id, err)
	}
	return nil
}

func (s *SQLite) insert(what, query string, args ...any) (int64, error) {
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("add %s: %w", what, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve %s id: %w", what, err)
	}
	return id, nil
}

func (s *SQLite) AddResident(r model.Resident) (int64, error) {
	return s.insert("resident", `INSERT INTO resident(first_name, last_name, dob) VALUES(?, ?, ?)`,
		r.FirstName, r.LastName, r.DateOfBirth)
}

func (s *SQLite) AddMedication(m model.Medication) (int64, error) {
	if err := s.exists("resident", m.ResidentID); err != nil {
		return 0, err
	}
	return s.insert("medication", `INSERT INTO medication(name, other_name, resident_id, notes) VALUES(?, ?, ?, ?)`,
		m.Name, m.OtherName, m.ResidentID, m.Notes)
}

func (s *SQLite) AddInstance(i model.MedicationInstance) (int64, error) {
	if err := s.exists("medication", i.MedicationID); err != nil {
		return 0, err
	}
	return s.insert("medication instance", `
INSERT INTO medication_info(expiry, quantity, strength, medication_type, notes, medication_id, supplier, measurement)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)
`, i.Expiry, i.Quantity, i.Strength, i.MedicationType, i.Notes, i.MedicationID, i.Supplier, i.Measurement)
}

func (s *SQLite) AddDose(d model.Dose) (int64, error) {
	if err := s.exists("medication_info", d.InstanceID); err != nil {
		return 0, err
	}
	return s.insert("dose", `
INSERT INTO dose_info(dose, measurement, frequency_per_day, regular_or_prn, medication_info_id)
VALUES(?, ?, ?, ?, ?)
`, d.Amount, d.Measurement, d.FrequencyPerDay, string(d.Regularity), d.InstanceID)
}

func (s *SQLite) update(what string, id int64, query string, args ...any) error {
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("update %s %d: %w", what, id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return nil
}

func (s *SQLite) UpdateMedicationNotes(medicationID int64, notes string) error {
	return s.update("medication", medicationID, `UPDATE medication SET notes = ? WHERE id = ?`, notes, medicationID)
}

func (s *SQLite) UpdateInstanceQuantity(instanceID int64, quantity float64) error {
	return s.update("medication instance", instanceID, `UPDATE medication_info SET quantity = ? WHERE id = ?`, quantity, instanceID)
}

func (s *SQLite) GetResident(id int64) (model.Resident, error) {
	var r model.Resident
	err := s.db.QueryRow(`SELECT id, IFNULL(first_name, ''), IFNULL(last_name, ''), IFNULL(dob, '') FROM resident WHERE id = ?`, id).
		Scan(&r.ID, &r.FirstName, &r.LastName, &r.DateOfBirth)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Resident{}, fmt.Errorf("resident %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Resident{}, fmt.Errorf("get resident %d: %w", id, err)
	}
	return r, nil
}

func (s *SQLite) GetMedication(id int64) (model.Medication, error) {
	m, err := scanMedication(s.db.QueryRow(`SELECT `+medicationColumns+` FROM medication WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Medication{}, fmt.Errorf("medication %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Medication{}, fmt.Errorf("get medication %d: %w", id, err)
	}
	return m, nil
}

func (s *SQLite) GetInstance(id int64) (model.MedicationInstance, error) {
	i, err := scanInstance(s.db.QueryRow(`SELECT `+instanceColumns+` FROM medication_info WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.MedicationInstance{}, fmt.Errorf("medication instance %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.MedicationInstance{}, fmt.Errorf("get medication instance %d: %w", id, err)
	}
	return i, nil
}

func (s *SQLite) ListResidents() ([]model.Resident, error) {
	rows, err := s.db.Query(`SELECT id, IFNULL(first_name, ''), IFNULL(last_name, ''), IFNULL(dob, '') FROM resident ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list residents: %w", err)
	}
	defer rows.Close()

	items := make([]model.Resident, 0)
	for rows.Next() {
		var r model.Resident
		if err := rows.Scan(&r.ID, &r.FirstName, &r.LastName, &r.DateOfBirth); err != nil {
			return nil, fmt.Errorf("scan resident: %w", err)
		}
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate residents: %w", err)
	}
	return items, nil
}

func (s *SQLite) ListMedications(residentID int64) ([]model.Medication, error) {
	rows, err := s.db.Query(`SELECT `+medicationColumns+` FROM medication WHERE resident_id = ? ORDER BY id`, residentID)
	if err != nil {
		return nil, fmt.Errorf("list medications: %w", err)
	}
	defer rows.Close()

	items := make([]model.Medication, 0)
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan medication: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate medications: %w", err)
	}
	return items, nil
}

func (s *SQLite) ListInstances(medicationID int64) ([]model.MedicationInstance, error) {
	rows, err := s.db.Query(`SELECT `+instanceColumns+` FROM medication_info WHERE medication_id = ? ORDER BY id`, medicationID)
	if err != nil {
		return nil, fmt.Errorf("list medication instances: %w", err)
	}
	defer rows.Close()

	items := make([]model.MedicationInstance, 0)
	for rows.Next() {
		i, err := scanInstance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan medication instance: %w", err)
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate medication instances: %w", err)
	}
	return items, nil
}

func (s *SQLite) ListDoses(instanceID int64) ([]model.Dose, error) {
	rows, err := s.db.Query(`SELECT `+doseColumns+` FROM dose_info WHERE medication_info_id = ? ORDER BY id`, instanceID)
	if err != nil {
		return nil, fmt.Errorf("list doses: %w", err)
	}
	defer rows.Close()

	items := make([]model.Dose, 0)
	for rows.Next() {
		var d model.Dose
		var regularity string
		if err := rows.Scan(&d.ID, &d.Amount, &d.Measurement, &d.FrequencyPerDay, &regularity, &d.InstanceID); err != nil {
			return nil, fmt.Errorf("scan dose: %w", err)
		}
		d.Regularity = model.Regularity(regularity)
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate doses: %w", err)
	}
	return items, nil
}

func (s *SQLite) MedicationName(medicationID int64) (string, error) {
	m, err := s.GetMedication(medicationID)
	if err != nil {
		return "", err
	}
	return m.Name, nil
}

func (s *SQLite) MedicationNotes(medicationID int64) (string, error) {
	m, err := s.GetMedication(medicationID)
	if err != nil {
		return "", err
	}
	return m.Notes, nil
}

func (s *SQLite) QuantityAndStrength(instanceID int64) (float64, float64, error) {
	var quantity, strength float64
	err := s.db.QueryRow(`SELECT IFNULL(quantity, 0), IFNULL(strength, 0) FROM medication_info WHERE id = ?`, instanceID).
		Scan(&quantity, &strength)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, fmt.Errorf("medication instance %d: %w", instanceID, ErrNotFound)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("get quantity and strength %d: %w", instanceID, err)
	}
	return quantity, strength, nil
}

func (s *SQLite) ListExpiryDates(residentID int64) ([]string, error) {
	entries, err := s.ListExpiryEntries(residentID)
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(entries))
	for _, e := range entries {
		dates = append(dates, e.Expiry)
	}
	return dates, nil
}

func (s *SQLite) ListExpiryEntries(residentID int64) ([]model.ExpiryEntry, error) {
	rows, err := s.db.Query(`
SELECT IFNULL(m.name, ''), IFNULL(mi.expiry, '')
FROM medication_info mi
JOIN medication m ON m.id = mi.medication_id
WHERE m.resident_id = ?
ORDER BY m.id, mi.id
`, residentID)
	if err != nil {
		return nil, fmt.Errorf("list expiry entries: %w", err)
	}
	defer rows.Close()

	items := make([]model.ExpiryEntry, 0)
	for rows.Next() {
		var e model.ExpiryEntry
		if err := rows.Scan(&e.MedicationName, &e.Expiry); err != nil {
			return nil, fmt.Errorf("scan expiry entry: %w", err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expiry entries: %w", err)
	}
	return items, nil
}

func (s *SQLite) FindMedicationByExpiry(expiry string) (int64, error) {
	var id int64
	err := s.db.QueryRow(`SELECT medication_id FROM medication_info WHERE expiry = ? ORDER BY id LIMIT 1`, expiry).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("medication with expiry %q: %w", expiry, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("find medication by expiry %q: %w", expiry, err)
	}
	return id, nil
}

func scanMedication(row rowScanner) (model.Medication, error) {
	var m model.Medication
	err := row.Scan(&m.ID, &m.Name, &m.OtherName, &m.ResidentID, &m.Notes)
	return m, err
}

func scanInstance(row rowScanner) (model.MedicationInstance, error) {
	var i model.MedicationInstance
	err := row.Scan(&i.ID, &i.Expiry, &i.Quantity, &i.Strength, &i.MedicationType,
		&i.Notes, &i.MedicationID, &i.Supplier, &i.Measurement)
	return i, err
}
