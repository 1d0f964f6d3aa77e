package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/nurse-aid/internal/model"
	"github.com/saadjs/nurse-aid/internal/repository"
	"github.com/saadjs/nurse-aid/internal/service"
)

type captureSink struct {
	reports []model.ExpiryReport
	err     error
}

func (c *captureSink) WriteExpiryReport(r model.ExpiryReport) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	c.reports = append(c.reports, r)
	return "captured", nil
}

func TestCompileExpiryReport(t *testing.T) {
	repo := repository.NewMemory()
	s := seed(t, repo)
	aspirin, err := service.AddMedication(repo, service.MedicationInput{Name: "Aspirin", OtherName: "Disprin", ResidentID: s.residentID})
	require.NoError(t, err)
	for _, expiry := range []string{"12/15/23", "", "01/20/24"} {
		_, err := service.AddInstance(repo, service.InstanceInput{Expiry: expiry, Quantity: 1, Strength: 75, MedicationID: aspirin})
		require.NoError(t, err)
	}

	now := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
	sink := &captureSink{}
	location, err := service.CompileExpiryReport(repo, sink, s.residentID, now)
	require.NoError(t, err)
	assert.Equal(t, "captured", location)
	require.Len(t, sink.reports, 1)

	r := sink.reports[0]
	assert.Equal(t, "Edith Crowley 1938-04-02", r.Owner)
	assert.True(t, now.Equal(r.GeneratedAt))
	assert.Equal(t, []string{"Aspirin"}, r.Buckets.Expired)
	assert.Equal(t, []string{"Aspirin"}, r.Buckets.DueSoon)
	assert.Equal(t, []string{"Paracetamol"}, r.Buckets.InDate)
	assert.Equal(t, []string{"Aspirin"}, r.Buckets.Undated)
}

func TestCompileExpiryReportErrors(t *testing.T) {
	repo := repository.NewMemory()
	s := seed(t, repo)

	_, err := service.CompileExpiryReport(repo, &captureSink{}, 99, time.Now())
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	boom := errors.New("disk full")
	_, err = service.CompileExpiryReport(repo, &captureSink{err: boom}, s.residentID, time.Now())
	assert.True(t, errors.Is(err, boom))
}
