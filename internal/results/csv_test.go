package results

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/turtir-ai/upwork-dna-sub001/internal/api"
)

func TestExportCSV_QuotingAndShape(t *testing.T) {
	jobs := []api.ScrapedJob{
		{ID: 1, Keyword: "AI agent", Title: "Build a bot", Description: `He said "hi"`, URL: "https://example.com/1", Status: "new"},
		{ID: 2, Keyword: "golang", Title: "Go work", Budget: "$500", URL: "https://example.com/2", Status: "contacted"},
	}

	out := ExportCSV(jobs)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("export has %d lines, want header + 2 records", len(lines))
	}
	if lines[0] != `"id","keyword","title","budget","description","url","scraped_at","status"` {
		t.Fatalf("header = %s", lines[0])
	}

	// Embedded quotes are doubled and the field stays wrapped in quotes.
	if !strings.Contains(lines[1], `"He said ""hi"""`) {
		t.Fatalf("record 1 = %s, want doubled quotes", lines[1])
	}

	// Every field is quoted, even plain ones.
	for _, field := range strings.Split(lines[2], ",") {
		if !strings.HasPrefix(field, `"`) || !strings.HasSuffix(field, `"`) {
			t.Fatalf("field %s not wrapped in quotes", field)
		}
	}

	// A standard CSV reader round-trips the output.
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("re-parse exported csv: %v", err)
	}
	if records[1][4] != `He said "hi"` {
		t.Fatalf("round-tripped description = %q", records[1][4])
	}
}

func TestExportCSV_EmptySequence(t *testing.T) {
	out := ExportCSV(nil)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("empty export = %q, want header only", out)
	}
}

func TestWriteCSVFile(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 2, 3, 10, 20, 30, 0, time.UTC)

	// A trailing separator on the target dir must not produce a mangled path.
	path, err := WriteCSVFile(dir+string(os.PathSeparator), []api.ScrapedJob{{ID: 1, Keyword: "x", Title: "y"}}, now)
	if err != nil {
		t.Fatalf("WriteCSVFile returned error: %v", err)
	}
	if want := filepath.Join(dir, "dna_results_20260203_102030.csv"); path != want {
		t.Fatalf("path = %s, want %s", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}
	if !strings.HasPrefix(string(data), `"id",`) {
		t.Fatalf("file content = %q, want csv header first", string(data[:20]))
	}
}
