package repository

import (
	"fmt"
	"sync"

	"github.com/saadjs/nurse-aid/internal/model"
)

var _ Repository = (*Memory)(nil)

// Memory is an in-process Repository for tests and dry runs. Ids are
// assigned sequentially per table starting at 1.
type Memory struct {
	mu          sync.Mutex
	residents   []model.Resident
	medications []model.Medication
	instances   []model.MedicationInstance
	doses       []model.Dose
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) residentIndex(id int64) int {
	for i := range m.residents {
		if m.residents[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Memory) medicationIndex(id int64) int {
	for i := range m.medications {
		if m.medications[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Memory) instanceIndex(id int64) int {
	for i := range m.instances {
		if m.instances[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Memory) AddResident(r model.Resident) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = int64(len(m.residents) + 1)
	m.residents = append(m.residents, r)
	return r.ID, nil
}

func (m *Memory) AddMedication(med model.Medication) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.residentIndex(med.ResidentID) < 0 {
		return 0, fmt.Errorf("resident %d: %w", med.ResidentID, ErrNotFound)
	}
	med.ID = int64(len(m.medications) + 1)
	m.medications = append(m.medications, med)
	return med.ID, nil
}

func (m *Memory) AddInstance(in model.MedicationInstance) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.medicationIndex(in.MedicationID) < 0 {
		return 0, fmt.Errorf("medication %d: %w", in.MedicationID, ErrNotFound)
	}
	in.ID = int64(len(m.instances) + 1)
	m.instances = append(m.instances, in)
	return in.ID, nil
}

func (m *Memory) AddDose(d model.Dose) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.instanceIndex(d.InstanceID) < 0 {
		return 0, fmt.Errorf("medication instance %d: %w", d.InstanceID, ErrNotFound)
	}
	d.ID = int64(len(m.doses) + 1)
	m.doses = append(m.doses, d)
	return d.ID, nil
}

func (m *Memory) UpdateMedicationNotes(medicationID int64, notes string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.medicationIndex(medicationID)
	if idx < 0 {
		return fmt.Errorf("medication %d: %w", medicationID, ErrNotFound)
	}
	m.medications[idx].Notes = notes
	return nil
}

func (m *Memory) UpdateInstanceQuantity(instanceID int64, quantity float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.instanceIndex(instanceID)
	if idx < 0 {
		return fmt.Errorf("medication instance %d: %w", instanceID, ErrNotFound)
	}
	m.instances[idx].Quantity = quantity
	return nil
}

func (m *Memory) GetResident(id int64) (model.Resident, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.residentIndex(id)
	if idx < 0 {
		return model.Resident{}, fmt.Errorf("resident %d: %w", id, ErrNotFound)
	}
	return m.residents[idx], nil
}

func (m *Memory) GetMedication(id int64) (model.Medication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.medicationIndex(id)
	if idx < 0 {
		return model.Medication{}, fmt.Errorf("medication %d: %w", id, ErrNotFound)
	}
	return m.medications[idx], nil
}

func (m *Memory) GetInstance(id int64) (model.MedicationInstance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.instanceIndex(id)
	if idx < 0 {
		return model.MedicationInstance{}, fmt.Errorf("medication instance %d: %w", id, ErrNotFound)
	}
	return m.instances[idx], nil
}

func (m *Memory) ListResidents() ([]model.Resident, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Resident{}, m.residents...), nil
}

func (m *Memory) ListMedications(residentID int64) ([]model.Medication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Medication, 0)
	for _, med := range m.medications {
		if med.ResidentID == residentID {
			out = append(out, med)
		}
	}
	return out, nil
}

func (m *Memory) ListInstances(medicationID int64) ([]model.MedicationInstance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.MedicationInstance, 0)
	for _, in := range m.instances {
		if in.MedicationID == medicationID {
			out = append(out, in)
		}
	}
	return out, nil
}

func (m *Memory) ListDoses(instanceID int64) ([]model.Dose, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Dose, 0)
	for _, d := range m.doses {
		if d.InstanceID == instanceID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *Memory) MedicationName(medicationID int64) (string, error) {
	med, err := m.GetMedication(medicationID)
	if err != nil {
		return "", err
	}
	return med.Name, nil
}

func (m *Memory) MedicationNotes(medicationID int64) (string, error) {
	med, err := m.GetMedication(medicationID)
	if err != nil {
		return "", err
	}
	return med.Notes, nil
}

func (m *Memory) QuantityAndStrength(instanceID int64) (float64, float64, error) {
	in, err := m.GetInstance(instanceID)
	if err != nil {
		return 0, 0, err
	}
	return in.Quantity, in.Strength, nil
}

func (m *Memory) ListExpiryDates(residentID int64) ([]string, error) {
	entries, err := m.ListExpiryEntries(residentID)
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(entries))
	for _, e := range entries {
		dates = append(dates, e.Expiry)
	}
	return dates, nil
}

func (m *Memory) ListExpiryEntries(residentID int64) ([]model.ExpiryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.ExpiryEntry, 0)
	for _, med := range m.medications {
		if med.ResidentID != residentID {
			continue
		}
		for _, in := range m.instances {
			if in.MedicationID == med.ID {
				out = append(out, model.ExpiryEntry{MedicationName: med.Name, Expiry: in.Expiry})
			}
		}
	}
	return out, nil
}

func (m *Memory) FindMedicationByExpiry(expiry string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, in := range m.instances {
		if in.Expiry == expiry {
			return in.MedicationID, nil
		}
	}
	return 0, fmt.Errorf("medication with expiry %q: %w", expiry, ErrNotFound)
}
