package service

import (
	"strings"
	"time"

	"github.com/saadjs/nurse-aid/internal/model"
)

// DueSoonDays is the inclusive window, in days from today, of the due-soon bucket.
const DueSoonDays = 30

const expiryStorageLayout = "01/02/06"

// Accepted expiry layouts. M/D/YY is what the ward date picker has always
// written; ISO dates are accepted for manual entry.
var expiryLayouts = []string{"1/2/06", "1/2/2006", "2006-01-02"}

// ParseExpiry reads a stored or entered expiry. ok is false for empty or
// unparseable text, which callers treat as undated.
func ParseExpiry(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func normalizeExpiry(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	t, ok := ParseExpiry(raw)
	if !ok {
		return "", invalidf("expiry %q (expected MM/DD/YY or YYYY-MM-DD)", raw)
	}
	return t.Format(expiryStorageLayout), nil
}

// ExpiryDayDifference is the number of calendar days from today to expiry.
func ExpiryDayDifference(today, expiry time.Time) int {
	y, m, d := today.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	y, m, d = expiry.Date()
	to := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// ClassifyExpiry sorts entries into buckets by expiry relative to today.
// Each bucket keeps the order in which entries were given.
func ClassifyExpiry(today time.Time, entries []model.ExpiryEntry) model.ExpiryBuckets {
	b := model.ExpiryBuckets{
		Expired: []string{},
		DueSoon: []string{},
		InDate:  []string{},
		Undated: []string{},
	}
	for _, e := range entries {
		expiry, ok := ParseExpiry(e.Expiry)
		if !ok {
			b.Undated = append(b.Undated, e.MedicationName)
			continue
		}
		switch diff := ExpiryDayDifference(today, expiry); {
		case diff < 0:
			b.Expired = append(b.Expired, e.MedicationName)
		case diff <= DueSoonDays:
			b.DueSoon = append(b.DueSoon, e.MedicationName)
		default:
			b.InDate = append(b.InDate, e.MedicationName)
		}
	}
	return b
}
