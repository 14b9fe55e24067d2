package results

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/turtir-ai/upwork-dna-sub001/internal/api"
)

// csvHeader defines the exported columns, in order.
var csvHeader = []string{"id", "keyword", "title", "budget", "description", "url", "scraped_at", "status"}

// ExportCSV serializes jobs, typically the currently filtered sequence,
// as CSV: header row first, one record per line, every field wrapped in
// quotes with embedded quotes doubled. The stdlib encoding/csv writer only
// quotes fields that need it, so the fixed-quoting rule is implemented
// directly.
func ExportCSV(jobs []api.ScrapedJob) string {
	var b strings.Builder
	writeRecord(&b, csvHeader)
	for _, job := range jobs {
		writeRecord(&b, []string{
			fmt.Sprintf("%d", job.ID),
			job.Keyword,
			job.Title,
			job.Budget,
			job.Description,
			job.URL,
			job.ScrapedAt,
			job.Status,
		})
	}
	return b.String()
}

func writeRecord(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

// WriteCSVFile exports jobs to a timestamped file in dir and returns its
// path. The file is a local artifact offered to the user; it is never
// uploaded anywhere.
func WriteCSVFile(dir string, jobs []api.ScrapedJob, now time.Time) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("dna_results_%s.csv", now.Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(ExportCSV(jobs)), 0o644); err != nil {
		return "", fmt.Errorf("write csv: %w", err)
	}
	return path, nil
}
