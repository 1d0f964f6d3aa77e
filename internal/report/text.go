package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/saadjs/nurse-aid/internal/model"
)

// Text writes the report pages separated by form feeds. With Dir set the
// pages go to a .txt file there and its path is returned; otherwise they go
// to W and the location is empty.
type Text struct {
	W   io.Writer
	Dir string
}

func (t Text) FileName(r model.ExpiryReport) string {
	return fmt.Sprintf("Expiry Report for %s.txt", Title(r))
}

func (t Text) WriteExpiryReport(r model.ExpiryReport) (string, error) {
	if t.Dir == "" {
		return "", writePages(t.W, r)
	}
	if err := os.MkdirAll(t.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}
	path := filepath.Join(t.Dir, t.FileName(r))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}
	if err := writePages(f, r); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close report file: %w", err)
	}
	return path, nil
}

func writePages(w io.Writer, r model.ExpiryReport) error {
	title := Title(r)
	for i, page := range Pages(r) {
		if i > 0 {
			if _, err := fmt.Fprint(w, "\f\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s\n%s\n", title, page.Heading); err != nil {
			return err
		}
		for _, name := range page.Names {
			if _, err := fmt.Fprintln(w, name); err != nil {
				return err
			}
		}
	}
	return nil
}
