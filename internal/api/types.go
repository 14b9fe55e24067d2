package api

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const backendTimestampLayout = "2006-01-02 15:04:05"

// Queue item statuses as reported by the backend.
const (
	QueueStatusPending   = "pending"
	QueueStatusRunning   = "running"
	QueueStatusCompleted = "completed"
	QueueStatusFailed    = "failed"
)

// Scraped job statuses. New jobs carry JobStatusNew until acted on.
const (
	JobStatusNew       = "new"
	JobStatusContacted = "contacted"
	JobStatusIgnored   = "ignored"
)

// jobTypes is the vocabulary the backend accepts for job_type.
var jobTypes = map[string]struct{}{
	"jobs":     {},
	"talent":   {},
	"projects": {},
	"all":      {},
}

// QueueItem describes one keyword waiting in the scraping queue.
type QueueItem struct {
	ID        int64  `json:"id"`
	Keyword   string `json:"keyword"`
	Status    string `json:"status"`
	JobType   string `json:"job_type"`
	Priority  int    `json:"priority"`
	Progress  *int   `json:"progress,omitempty"` // populated only while running
	CreatedAt string `json:"created_at"`
}

// IsRunning reports whether the backend is actively scraping this keyword.
func (q QueueItem) IsRunning() bool {
	return strings.EqualFold(strings.TrimSpace(q.Status), QueueStatusRunning)
}

// ProgressPercent returns the scrape progress clamped to 0-100. It is only
// meaningful while the item is running; otherwise it returns 0, false.
func (q QueueItem) ProgressPercent() (int, bool) {
	if !q.IsRunning() || q.Progress == nil {
		return 0, false
	}
	p := *q.Progress
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return p, true
}

// ParsedCreatedAt returns the parsed CreatedAt timestamp.
func (q QueueItem) ParsedCreatedAt() time.Time {
	return parseTime(q.CreatedAt)
}

// ScrapedJob is one job posting captured by the backend for a keyword.
type ScrapedJob struct {
	ID          int64  `json:"id"`
	Keyword     string `json:"keyword"`
	Title       string `json:"title"`
	Budget      string `json:"budget,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	ScrapedAt   string `json:"scraped_at"`
	Status      string `json:"status"`
}

// ParsedScrapedAt returns the parsed ScrapedAt timestamp.
func (j ScrapedJob) ParsedScrapedAt() time.Time {
	return parseTime(j.ScrapedAt)
}

// SystemStatus is the backend health snapshot from /status. It is always
// replaced wholesale on fetch, never merged field by field.
type SystemStatus struct {
	APIVersion  string `json:"api_version"`
	Uptime      string `json:"uptime"`
	QueueCount  int    `json:"queue_count"`
	ActiveJobs  int    `json:"active_jobs"`
	JobsCount   int    `json:"jobs_count"`
	TalentCount int    `json:"talent_count"`
}

// Settings is the backend's singleton scraper configuration.
type Settings struct {
	APIURL         string `json:"apiUrl"`
	ScrapeInterval int    `json:"scrapeInterval"` // milliseconds
	MaxPages       int    `json:"maxPages"`
	Headless       bool   `json:"headless"`
	UserAgent      string `json:"userAgent,omitempty"`
	Proxy          string `json:"proxy,omitempty"`
}

// Settings bounds enforced before any save reaches the backend.
const (
	MinScrapeInterval = 1000
	MaxScrapeInterval = 60000
	MinMaxPages       = 1
	MaxMaxPages       = 10
)

// DefaultSettings returns the hard-coded configuration the backend settings
// are overlaid onto, and the exact payload a reset persists.
func DefaultSettings() Settings {
	return Settings{
		APIURL:         "http://127.0.0.1:8000",
		ScrapeInterval: 5000,
		MaxPages:       3,
		Headless:       true,
	}
}

// Validate checks the settings bounds.
func (s Settings) Validate() error {
	if s.ScrapeInterval < MinScrapeInterval || s.ScrapeInterval > MaxScrapeInterval {
		return &ValidationError{
			Field:  "scrapeInterval",
			Reason: fmt.Sprintf("must be between %d and %d ms", MinScrapeInterval, MaxScrapeInterval),
		}
	}
	if s.MaxPages < MinMaxPages || s.MaxPages > MaxMaxPages {
		return &ValidationError{
			Field:  "maxPages",
			Reason: fmt.Sprintf("must be between %d and %d", MinMaxPages, MaxMaxPages),
		}
	}
	return nil
}

// AddQueueRequest is the payload for queueing a new keyword.
type AddQueueRequest struct {
	Keyword  string `json:"keyword"`
	JobType  string `json:"job_type"`
	Priority int    `json:"priority"`
}

// Validate rejects bad input before any network round trip.
func (r AddQueueRequest) Validate() error {
	if err := validateKeyword(r.Keyword); err != nil {
		return err
	}
	if r.JobType != "" {
		if _, ok := jobTypes[r.JobType]; !ok {
			return &ValidationError{Field: "job_type", Reason: "must be one of jobs, talent, projects, all"}
		}
	}
	if r.Priority < 0 || r.Priority > 10 {
		return &ValidationError{Field: "priority", Reason: "must be between 0 and 10"}
	}
	return nil
}

// StartScrapeRequest is the payload for kicking off a scrape run.
type StartScrapeRequest struct {
	Keyword  string `json:"keyword"`
	JobType  string `json:"job_type,omitempty"`
	MaxPages int    `json:"max_pages,omitempty"`
}

// Validate rejects bad input before any network round trip.
func (r StartScrapeRequest) Validate() error {
	if err := validateKeyword(r.Keyword); err != nil {
		return err
	}
	if r.JobType != "" {
		if _, ok := jobTypes[r.JobType]; !ok {
			return &ValidationError{Field: "job_type", Reason: "must be one of jobs, talent, projects, all"}
		}
	}
	// Zero means "let the backend pick"; anything else must be in bounds.
	if r.MaxPages != 0 && (r.MaxPages < MinMaxPages || r.MaxPages > MaxMaxPages) {
		return &ValidationError{
			Field:  "max_pages",
			Reason: fmt.Sprintf("must be 0 (backend default) or between %d and %d", MinMaxPages, MaxMaxPages),
		}
	}
	return nil
}

// ScrapeAck is the backend's acknowledgement of a started scrape.
type ScrapeAck struct {
	JobID   string `json:"job_id"`
	Keyword string `json:"keyword"`
	Status  string `json:"status"`
}

func validateKeyword(keyword string) error {
	trimmed := strings.TrimSpace(keyword)
	if trimmed == "" {
		return &ValidationError{Field: "keyword", Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(trimmed) > 200 {
		return &ValidationError{Field: "keyword", Reason: "must be at most 200 characters"}
	}
	return nil
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(backendTimestampLayout, value, time.Local); err == nil {
		return t
	}
	return time.Time{}
}
