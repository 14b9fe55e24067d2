// Package results derives view state from the last-fetched scraped jobs:
// filtering and CSV export. Everything here is pure and synchronous; no
// function in this package ever triggers a fetch.
package results

import (
	"strings"

	"github.com/turtir-ai/upwork-dna-sub001/internal/api"
)

// Filter narrows jobs by a case-insensitive free-text search across title
// and description and an exact keyword match. Either filter may be empty.
// The result preserves the source order and is stable: identical inputs
// always yield an identical sequence.
func Filter(jobs []api.ScrapedJob, search, keyword string) []api.ScrapedJob {
	search = strings.ToLower(strings.TrimSpace(search))
	keyword = strings.TrimSpace(keyword)

	out := make([]api.ScrapedJob, 0, len(jobs))
	for _, job := range jobs {
		if keyword != "" && job.Keyword != keyword {
			continue
		}
		if search != "" && !matchesSearch(job, search) {
			continue
		}
		out = append(out, job)
	}
	return out
}

func matchesSearch(job api.ScrapedJob, search string) bool {
	return strings.Contains(strings.ToLower(job.Title), search) ||
		strings.Contains(strings.ToLower(job.Description), search)
}

// Keywords returns the distinct keywords present in jobs, in first-seen
// order, for cycling the keyword filter.
func Keywords(jobs []api.ScrapedJob) []string {
	seen := make(map[string]struct{}, len(jobs))
	var out []string
	for _, job := range jobs {
		if _, ok := seen[job.Keyword]; ok {
			continue
		}
		seen[job.Keyword] = struct{}{}
		out = append(out, job.Keyword)
	}
	return out
}
