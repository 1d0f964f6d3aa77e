package service

import (
	"fmt"
	"time"

	"github.com/saadjs/nurse-aid/internal/model"
	"github.com/saadjs/nurse-aid/internal/repository"
)

// ReportSink renders a classified expiry report and returns where it went,
// or an empty location when it wrote to a stream.
type ReportSink interface {
	WriteExpiryReport(r model.ExpiryReport) (string, error)
}

func BuildExpiryReport(repo repository.Repository, residentID int64, now time.Time) (model.ExpiryReport, error) {
	resident, err := LoadResident(repo, residentID)
	if err != nil {
		return model.ExpiryReport{}, err
	}
	entries, err := repo.ListExpiryEntries(residentID)
	if err != nil {
		return model.ExpiryReport{}, err
	}
	return model.ExpiryReport{
		Owner:       resident.Label(),
		GeneratedAt: now,
		Buckets:     ClassifyExpiry(now, entries),
	}, nil
}

func CompileExpiryReport(repo repository.Repository, sink ReportSink, residentID int64, now time.Time) (string, error) {
	report, err := BuildExpiryReport(repo, residentID, now)
	if err != nil {
		return "", err
	}
	location, err := sink.WriteExpiryReport(report)
	if err != nil {
		return "", fmt.Errorf("write expiry report: %w", err)
	}
	return location, nil
}
