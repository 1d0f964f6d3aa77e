package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/nurse-aid/internal/model"
)

func TestAddMedicationUnknownResidentDoesNotWrite(t *testing.T) {
	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqldb.Close()

	mock.ExpectQuery(`SELECT 1 FROM resident WHERE id = \?`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	repo := NewSQLite(sqldb)
	_, err = repo.AddMedication(model.Medication{Name: "Aspirin", OtherName: "Disprin", ResidentID: 7})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddDoseWritesAfterInstanceCheck(t *testing.T) {
	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqldb.Close()

	mock.ExpectQuery(`SELECT 1 FROM medication_info WHERE id = \?`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectExec(`INSERT INTO dose_info`).
		WithArgs(250.0, "mg", 2.0, "Regular", int64(3)).
		WillReturnResult(sqlmock.NewResult(11, 1))

	repo := NewSQLite(sqldb)
	id, err := repo.AddDose(model.Dose{Amount: 250, Measurement: "mg", FrequencyPerDay: 2, Regularity: model.Regular, InstanceID: 3})

	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateInstanceQuantityMissingRow(t *testing.T) {
	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqldb.Close()

	mock.ExpectExec(`UPDATE medication_info SET quantity = \? WHERE id = \?`).
		WithArgs(12.0, int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewSQLite(sqldb).UpdateInstanceQuantity(9, 12)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
