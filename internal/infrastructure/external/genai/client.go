// Package genai implements the text generation API client.
// This package handles all communication with the Google Generative Language
// API, used to produce narrative student reports for the dashboard.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
	"github.com/zenith-edu/zenith-admin-hub/pkg/circuitbreaker"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// DefaultBaseURL is the production endpoint of the Generative Language API.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// DefaultModel is the model used for student reports.
const DefaultModel = "gemini-2.5-flash"

// ClientConfig contains configuration for the text generation client.
type ClientConfig struct {
	// BaseURL is the API base URL
	BaseURL string

	// APIKey authenticates requests. Empty means the client is not
	// configured and every call fails fast with shared.ErrNotConfigured.
	APIKey string

	// Model is the model name used for generation
	Model string

	// Timeout is the HTTP request timeout
	Timeout time.Duration

	// Logger for structured logging
	Logger *slog.Logger

	// Debug enables debug logging
	Debug bool
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig(apiKey string) ClientConfig {
	return ClientConfig{
		BaseURL: DefaultBaseURL,
		APIKey:  apiKey,
		Model:   DefaultModel,
		Timeout: 60 * time.Second,
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// CLIENT
// ══════════════════════════════════════════════════════════════════════════════

// Client is the text generation API client.
type Client struct {
	config         ClientConfig
	httpClient     *http.Client
	logger         *slog.Logger
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewClient creates a new text generation client.
func NewClient(config ClientConfig) *Client {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.Timeout <= 0 {
		config.Timeout = 60 * time.Second
	}

	logger := config.Logger
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger,
		circuitBreaker: circuitbreaker.TextGenBreaker(func(name string, from, to circuitbreaker.State) {
			logger.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		}),
	}
}

// IsConfigured reports whether an API key is present.
func (c *Client) IsConfigured() bool {
	return c.config.APIKey != ""
}

// ══════════════════════════════════════════════════════════════════════════════
// REPORT GENERATION
// ══════════════════════════════════════════════════════════════════════════════

// ReportSubject carries the student facts the report prompt is built from.
// Attendance is the derived percentage, 0-100.
type ReportSubject struct {
	Name        string
	Grade       int
	Class       string
	Performance string
	Attendance  int
}

// reportPrompt renders the fixed report prompt for a subject.
func reportPrompt(s ReportSubject) string {
	return fmt.Sprintf(`
Generate a concise, encouraging, and professional school report for the following student.
The report should be structured with a brief introduction, comments on their performance,
notes on attendance, and a concluding remark with a suggestion for improvement.
Do not use markdown formatting. Use plain text with newlines.

Student Details:
- Name: %s
- Grade: %d
- Class: %s
- Performance: %s
- Attendance: %d%%

Generate the report now.
`, s.Name, s.Grade, s.Class, s.Performance, s.Attendance)
}

// GenerateStudentReport produces a narrative report for the subject.
// Returns shared.ErrNotConfigured when no API key is set.
func (c *Client) GenerateStudentReport(ctx context.Context, subject ReportSubject) (string, error) {
	if !c.IsConfigured() {
		return "", shared.ErrNotConfigured
	}

	request := newTextRequest(reportPrompt(subject))

	var text string
	err := c.circuitBreaker.Execute(ctx, func(ctx context.Context) error {
		response, err := c.generateContent(ctx, request)
		if err != nil {
			return err
		}
		text = response.Text()
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("generate student report: %w", err)
	}

	return text, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HTTP REQUEST HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// generateContent performs a single generateContent call.
func (c *Client) generateContent(ctx context.Context, request GenerateContentRequest) (*GenerateContentResponse, error) {
	fullURL := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.config.BaseURL, c.config.Model)

	jsonBody, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("marshal body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-goog-api-key", c.config.APIKey)

	if c.config.Debug {
		c.logger.Debug("textgen api request", "model", c.config.Model)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr APIErrorDTO
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.ErrorDetail.Message != "" {
			return nil, fmt.Errorf("%w: %s", shared.ErrExternalService, apiErr.Error())
		}
		return nil, fmt.Errorf("%w: status %d", shared.ErrExternalService, resp.StatusCode)
	}

	var response GenerateContentResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if c.config.Debug {
		c.logger.Debug("textgen api response", "model", c.config.Model, "duration", time.Since(start))
	}

	return &response, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH AND STATUS
// ══════════════════════════════════════════════════════════════════════════════

// Status returns the current status of the client.
type ClientStatus struct {
	Configured     bool
	CircuitBreaker string
}

// Status returns the current status of the client.
func (c *Client) Status() ClientStatus {
	return ClientStatus{
		Configured:     c.IsConfigured(),
		CircuitBreaker: c.circuitBreaker.State().String(),
	}
}

// Reset resets the circuit breaker.
func (c *Client) Reset() {
	c.circuitBreaker.Reset()
}
