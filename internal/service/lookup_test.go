package service_test

import (
	"testing"

	"github.com/saadjs/nurse-aid/internal/service"
)

func TestLookupURL(t *testing.T) {
	got, err := service.LookupURL("", "Co codamol")
	if err != nil {
		t.Fatalf("lookup url: %v", err)
	}
	if got != "https://www.medicines.org.uk/emc/search?q=Co+codamol" {
		t.Fatalf("unexpected url %q", got)
	}

	got, err = service.LookupURL("https://example.test/search?term=", "Senna")
	if err != nil {
		t.Fatalf("lookup url: %v", err)
	}
	if got != "https://example.test/search?term=Senna" {
		t.Fatalf("unexpected url %q", got)
	}

	if _, err := service.LookupURL("", "  "); err == nil {
		t.Fatalf("expected empty name to fail")
	}
}
