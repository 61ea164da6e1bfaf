package astroApi

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// ErrUnexpectedResponse тело ответа не разбирается
var ErrUnexpectedResponse = errors.New("unexpected astro API response")

// StatusError провайдер ответил не 200
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("astro API error [status=%d]: %s", e.StatusCode, e.Body)
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Client клиент FreeAstrologyAPI
type Client struct {
	cfg        *Config
	HTTPClient *http.Client
	Log        *slog.Logger
}

func NewClient(cfg *Config, log *slog.Logger) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ShouldSkipSSL() {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	return &Client{
		cfg: cfg,
		HTTPClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.timeout(),
		},
		Log: log,
	}
}

// Language язык ответа провайдера
func (c *Client) Language() string {
	if c.cfg.Language == "" {
		return "pt"
	}
	return c.cfg.Language
}

// GetPlanets запрашивает позиции планет и асцендента
func (c *Client) GetPlanets(ctx context.Context, req PlanetsRequest) (*PlanetsResponse, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal planets request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.url(), bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("build planets request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.cfg.ApiKey)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call astro API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read astro API response: %w", err)
	}
	rawJSON := string(body)

	if resp.StatusCode != http.StatusOK {
		c.Log.Debug("astro API returned non-200 status",
			"status_code", resp.StatusCode,
			"body_preview", truncateString(rawJSON, 200),
		)
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncateString(rawJSON, 500)}
	}

	var out PlanetsResponse
	if err := json.Unmarshal(body, &out); err != nil {
		c.Log.Debug("failed to unmarshal astro API response",
			"error", err,
			"body_preview", truncateString(rawJSON, 200),
		)
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	out.RawJSON = rawJSON

	return &out, nil
}
