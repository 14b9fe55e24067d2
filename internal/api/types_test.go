package api

import (
	"testing"
	"time"
)

func TestAddQueueRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     AddQueueRequest
		wantErr bool
	}{
		{name: "valid", req: AddQueueRequest{Keyword: "AI agent", JobType: "jobs", Priority: 5}},
		{name: "empty keyword", req: AddQueueRequest{Keyword: ""}, wantErr: true},
		{name: "whitespace keyword", req: AddQueueRequest{Keyword: "   "}, wantErr: true},
		{name: "unknown job type", req: AddQueueRequest{Keyword: "x", JobType: "gigs"}, wantErr: true},
		{name: "blank job type allowed", req: AddQueueRequest{Keyword: "x"}},
		{name: "priority too high", req: AddQueueRequest{Keyword: "x", Priority: 11}, wantErr: true},
		{name: "priority negative", req: AddQueueRequest{Keyword: "x", Priority: -1}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !IsValidation(err) {
				t.Errorf("Validate() error type = %T, want *ValidationError", err)
			}
		})
	}
}

func TestStartScrapeRequest_ValidateMaxPages(t *testing.T) {
	tests := []struct {
		name    string
		pages   int
		wantErr bool
	}{
		{name: "zero lets backend decide", pages: 0},
		{name: "lower bound", pages: 1},
		{name: "upper bound", pages: 10},
		{name: "too deep", pages: 11, wantErr: true},
		{name: "negative", pages: -1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := StartScrapeRequest{Keyword: "AI agent", MaxPages: tt.pages}
			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSettings_Validate(t *testing.T) {
	valid := DefaultSettings()
	if err := valid.Validate(); err != nil {
		t.Fatalf("default settings failed validation: %v", err)
	}

	tooFast := valid
	tooFast.ScrapeInterval = 999
	if err := tooFast.Validate(); err == nil {
		t.Error("interval below 1000 ms passed validation")
	}

	tooSlow := valid
	tooSlow.ScrapeInterval = 60001
	if err := tooSlow.Validate(); err == nil {
		t.Error("interval above 60000 ms passed validation")
	}

	tooDeep := valid
	tooDeep.MaxPages = 11
	if err := tooDeep.Validate(); err == nil {
		t.Error("max pages above 10 passed validation")
	}
}

func TestDefaultSettings_Literals(t *testing.T) {
	d := DefaultSettings()
	if d.ScrapeInterval != 5000 {
		t.Errorf("ScrapeInterval = %d, want 5000", d.ScrapeInterval)
	}
	if d.MaxPages != 3 {
		t.Errorf("MaxPages = %d, want 3", d.MaxPages)
	}
	if !d.Headless {
		t.Error("Headless = false, want true")
	}
}

func TestQueueItem_ProgressPercent(t *testing.T) {
	p := 150
	running := QueueItem{Status: "running", Progress: &p}
	if got, ok := running.ProgressPercent(); !ok || got != 100 {
		t.Errorf("ProgressPercent() = %d, %v; want 100, true (clamped)", got, ok)
	}

	// Progress is only meaningful while running.
	pending := QueueItem{Status: "pending", Progress: &p}
	if _, ok := pending.ProgressPercent(); ok {
		t.Error("ProgressPercent() meaningful for pending item, want absent")
	}
	runningNoProgress := QueueItem{Status: "running"}
	if _, ok := runningNoProgress.ProgressPercent(); ok {
		t.Error("ProgressPercent() meaningful without progress field, want absent")
	}
}

func TestParseTime_Layouts(t *testing.T) {
	if got := parseTime("2026-02-03T10:20:30Z"); got.IsZero() {
		t.Error("RFC3339 timestamp parsed to zero")
	}
	if got := parseTime("2026-02-03 10:20:30"); got.IsZero() {
		t.Error("backend layout timestamp parsed to zero")
	}
	if got := parseTime(""); !got.Equal(time.Time{}) {
		t.Errorf("empty timestamp = %v, want zero", got)
	}
	if got := parseTime("garbage"); !got.IsZero() {
		t.Errorf("garbage timestamp = %v, want zero", got)
	}
}
