// Package report renders classified expiry reports. Every sink writes one
// page per bucket, in the order expired, due soon, in date, undated.
package report

import (
	"fmt"
	"strings"

	"github.com/saadjs/nurse-aid/internal/model"
)

const timestampLayout = "01-02-2006, 15-04-05"

type Page struct {
	Sheet   string
	Heading string
	Names   []string
}

func Pages(r model.ExpiryReport) []Page {
	b := r.Buckets
	return []Page{
		{Sheet: "Expired", Heading: fmt.Sprintf("%d Expired Items:", len(b.Expired)), Names: b.Expired},
		{Sheet: "Due Soon", Heading: fmt.Sprintf("%d Items Expiring Within 30 Days:", len(b.DueSoon)), Names: b.DueSoon},
		{Sheet: "In Date", Heading: fmt.Sprintf("%d Items In-Date:", len(b.InDate)), Names: b.InDate},
		{Sheet: "Undated", Heading: fmt.Sprintf("%d Items Without an Expiry Date:", len(b.Undated)), Names: b.Undated},
	}
}

// Title is the owner line printed at the top of every page.
func Title(r model.ExpiryReport) string {
	owner := strings.ReplaceAll(r.Owner, "/", "-")
	return fmt.Sprintf("%s %s", owner, r.GeneratedAt.Format(timestampLayout))
}
