// Package client is a small HTTP client for the cardiac report server,
// used by ingest tooling to push studies into the backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/cardiac-report-server/internal/domain"
	"github.com/cardiac-report-server/internal/store"
)

// Config represents client configuration
type Config struct {
	BaseURL   string        `json:"base_url"`
	APIToken  string        `json:"api_token"`
	Timeout   time.Duration `json:"timeout"`
	RateLimit int           `json:"rate_limit"` // requests per second
}

// Client talks to the report server API with a circuit breaker around all
// calls so a flapping backend fails fast instead of piling up requests.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	rateLimit  *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
}

// New creates a new API client
func New(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:8080"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RateLimit == 0 {
		config.RateLimit = 10
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "cardiac-report-api",
		MaxRequests: 5,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
	})

	return &Client{
		baseURL:    config.BaseURL,
		token:      config.APIToken,
		httpClient: &http.Client{Timeout: config.Timeout},
		rateLimit:  rate.NewLimiter(rate.Limit(config.RateLimit), config.RateLimit),
		breaker:    breaker,
	}
}

// do sends one request through the rate limiter and circuit breaker and
// decodes the JSON response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	if err := c.rateLimit.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		var reader io.Reader
		if body != nil {
			data, err := json.Marshal(body)
			if err != nil {
				return nil, fmt.Errorf("encoding request: %w", err)
			}
			reader = bytes.NewReader(data)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("sending request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(data))
		}

		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return nil, fmt.Errorf("decoding response: %w", err)
			}
		}
		return nil, nil
	})
	return err
}

// Health checks that the server is reachable and reports ok.
func (c *Client) Health(ctx context.Context) error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return err
	}
	if resp.Status != "ok" {
		return fmt.Errorf("unexpected health status %q", resp.Status)
	}
	return nil
}

// SaveSnapshot stores one study snapshot and returns its server-side ID.
func (c *Client) SaveSnapshot(ctx context.Context, studyType domain.StudyType, snap *domain.StudySnapshot) (int64, error) {
	if snap == nil || snap.Patient == nil {
		return 0, fmt.Errorf("snapshot with patient is required")
	}

	body := map[string]interface{}{
		"patient":        snap.Patient,
		"study_type":     string(studyType),
		"study_datetime": time.Now().Format(time.RFC3339),
		"source":         "manual",
		"payload":        snap,
	}

	var resp struct {
		ID int64 `json:"id"`
	}
	path := fmt.Sprintf("/api/studies/%s/from-snapshot", studyType)
	if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// PatientStudies lists the stored studies for one patient, newest first.
func (c *Client) PatientStudies(ctx context.Context, patientID string) ([]*store.StudyRecord, error) {
	var records []*store.StudyRecord
	path := fmt.Sprintf("/api/patients/%s/studies", patientID)
	if err := c.do(ctx, http.MethodGet, path, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ComposeReport asks the server to compose the report texts for a snapshot.
func (c *Client) ComposeReport(ctx context.Context, studyType domain.StudyType, snap *domain.StudySnapshot) (map[string]string, error) {
	var resp struct {
		ReportTexts map[string]string `json:"report_texts"`
	}
	path := fmt.Sprintf("/api/reports/%s", studyType)
	if err := c.do(ctx, http.MethodPost, path, snap, &resp); err != nil {
		return nil, err
	}
	return resp.ReportTexts, nil
}
