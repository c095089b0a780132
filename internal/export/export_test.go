package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jimezsa/jamscrape/internal/listing"
)

func TestWriteEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	if err := WriteEmpty(path); err != nil {
		t.Fatalf("WriteEmpty() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "[]" {
		t.Fatalf("file = %q, want []", data)
	}
}

func TestWriteEmptyOverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	if err := os.WriteFile(path, []byte(`[{"title":"stale"}]`), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := WriteEmpty(path); err != nil {
		t.Fatalf("WriteEmpty() error = %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "[]" {
		t.Fatalf("file = %q, want []", data)
	}
}

func TestWriteListings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	city := "München"
	min := listing.Amount(80000)
	listings := []listing.JobListing{
		{
			Title:       "Backend <Go> Engineer",
			Company:     "Acme & Co",
			City:        &city,
			Site:        "stepstone",
			Description: "Café",
			Compensation: &listing.Compensation{
				MinAmount: &min,
				Interval:  "yearly",
				Currency:  "EUR",
			},
		},
		{Title: "SRE", Site: "indeed"},
	}

	if err := WriteListings(path, listings); err != nil {
		t.Fatalf("WriteListings() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	text := string(data)

	if !strings.HasPrefix(text, "[\n  {\n    \"title\"") {
		t.Fatalf("expected 2-space indentation, got %q", text[:20])
	}
	if strings.HasSuffix(text, "\n") {
		t.Fatalf("expected no trailing newline")
	}
	for _, literal := range []string{"München", "Café", "<Go>", "Acme & Co", `"min_amount": 80000.0`, `"max_amount": null`} {
		if !strings.Contains(text, literal) {
			t.Fatalf("expected %q in output:\n%s", literal, text)
		}
	}

	var decoded []map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("len(decoded) = %d, want 2", len(decoded))
	}
	if _, ok := decoded[1]["compensation"]; ok {
		t.Fatalf("expected compensation key to be omitted for second listing")
	}
}

func TestEncodeListingsNil(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeListings(&buf, nil); err != nil {
		t.Fatalf("EncodeListings() error = %v", err)
	}
	if buf.String() != "[]" {
		t.Fatalf("EncodeListings(nil) = %q, want []", buf.String())
	}
}

func TestWriteRequiresPath(t *testing.T) {
	if err := WriteEmpty("  "); err == nil {
		t.Fatalf("WriteEmpty() error = nil, want error")
	}
}
