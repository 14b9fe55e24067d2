package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
)

// Backend defines the operations the console needs from the scraping
// backend. Implemented by *Client; fakes implement it in tests.
type Backend interface {
	ListQueue(ctx context.Context) ([]QueueItem, error)
	AddQueueItem(ctx context.Context, req AddQueueRequest) error
	RemoveQueueItem(ctx context.Context, id int64) error
	StartScrape(ctx context.Context, req StartScrapeRequest) (ScrapeAck, error)
	ListResults(ctx context.Context) ([]ScrapedJob, error)
	MarkContacted(ctx context.Context, id int64) error
	MarkIgnored(ctx context.Context, id int64) error
	FetchStatus(ctx context.Context) (*SystemStatus, error)
	FetchSettings(ctx context.Context) (Settings, error)
	SaveSettings(ctx context.Context, settings Settings) error
}

var _ Backend = (*Client)(nil)

// Client talks to the Upwork DNA backend HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       *logrus.Logger

	queueAdapter   ListAdapter[QueueItem]
	resultsAdapter ListAdapter[ScrapedJob]
}

const (
	defaultBaseURL   = "http://127.0.0.1:8000"
	defaultUserAgent = "dnatop/0.1"
)

// NewClient builds a Client for the given base URL. Timeout semantics are
// the platform defaults; a hung backend stalls only the collection that
// issued the request.
func NewClient(baseURL string, log *logrus.Logger) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Client{
		baseURL:        base,
		http:           &http.Client{},
		userAgent:      defaultUserAgent,
		log:            log,
		queueAdapter:   NewListAdapter[QueueItem]("items", "queue"),
		resultsAdapter: NewListAdapter[ScrapedJob]("jobs", "results"),
	}, nil
}

// ListQueue retrieves the current scraping queue.
func (c *Client) ListQueue(ctx context.Context) ([]QueueItem, error) {
	body, err := c.do(ctx, http.MethodGet, "/queue", nil)
	if err != nil {
		return nil, err
	}
	items, err := c.queueAdapter.Decode(body)
	if err != nil {
		return nil, &EmptyResponseError{Op: "list queue", Err: err}
	}
	return items, nil
}

// AddQueueItem queues a new keyword. Invalid input is rejected before any
// network call.
func (c *Client) AddQueueItem(ctx context.Context, req AddQueueRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	req.Keyword = strings.TrimSpace(req.Keyword)
	if req.JobType == "" {
		req.JobType = "jobs"
	}
	_, err := c.do(ctx, http.MethodPost, "/queue", req)
	return err
}

// RemoveQueueItem deletes a queue entry by id.
func (c *Client) RemoveQueueItem(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/queue/%d", id), nil)
	return err
}

// StartScrape kicks off a scrape run for a keyword.
func (c *Client) StartScrape(ctx context.Context, req StartScrapeRequest) (ScrapeAck, error) {
	if err := req.Validate(); err != nil {
		return ScrapeAck{}, err
	}
	req.Keyword = strings.TrimSpace(req.Keyword)
	body, err := c.do(ctx, http.MethodPost, "/scrape", req)
	if err != nil {
		return ScrapeAck{}, err
	}
	var ack ScrapeAck
	if err := json.Unmarshal(body, &ack); err != nil {
		return ScrapeAck{}, &EmptyResponseError{Op: "start scrape", Err: err}
	}
	return ack, nil
}

// ListResults retrieves all scraped jobs.
func (c *Client) ListResults(ctx context.Context) ([]ScrapedJob, error) {
	body, err := c.do(ctx, http.MethodGet, "/results", nil)
	if err != nil {
		return nil, err
	}
	jobs, err := c.resultsAdapter.Decode(body)
	if err != nil {
		return nil, &EmptyResponseError{Op: "list results", Err: err}
	}
	return jobs, nil
}

// MarkContacted flags a scraped job as contacted.
func (c *Client) MarkContacted(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/jobs/%d/contact", id), nil)
	return err
}

// MarkIgnored flags a scraped job as ignored.
func (c *Client) MarkIgnored(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/jobs/%d/ignore", id), nil)
	return err
}

// FetchStatus retrieves the system status snapshot.
func (c *Client) FetchStatus(ctx context.Context) (*SystemStatus, error) {
	body, err := c.do(ctx, http.MethodGet, "/status", nil)
	if err != nil {
		return nil, err
	}
	var status SystemStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, &EmptyResponseError{Op: "fetch status", Err: err}
	}
	return &status, nil
}

// FetchSettings retrieves the scraper settings, overlaid onto the
// hard-coded defaults so missing fields keep their default values.
func (c *Client) FetchSettings(ctx context.Context) (Settings, error) {
	body, err := c.do(ctx, http.MethodGet, "/settings", nil)
	if err != nil {
		return Settings{}, err
	}
	settings := DefaultSettings()
	if err := json.Unmarshal(body, &settings); err != nil {
		return Settings{}, &EmptyResponseError{Op: "fetch settings", Err: err}
	}
	return settings, nil
}

// SaveSettings persists the scraper settings. Out-of-bounds values are
// rejected before any network call.
func (c *Client) SaveSettings(ctx context.Context, settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodPut, "/settings", settings)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	op := fmt.Sprintf("%s %s", method, path)
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	if resp.StatusCode >= 400 {
		backendErr := &BackendError{Op: op, StatusCode: resp.StatusCode, Reason: extractReason(body)}
		c.log.WithFields(logrus.Fields{
			"op":     op,
			"status": resp.StatusCode,
			"reason": backendErr.Reason,
		}).Warn("backend request failed")
		return nil, backendErr
	}
	return body, nil
}

// extractReason pulls a human-readable detail out of an error body when the
// backend provided one.
func extractReason(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Detail != "" {
		return payload.Detail
	}
	return payload.Error
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
