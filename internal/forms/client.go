// Package forms forwards landing-page sign-up forms to an external collector
// endpoint (a spreadsheet-backed web app).
package forms

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

var (
	ErrNotConfigured = errors.New("forms: endpoint not configured")
	ErrRejected      = errors.New("forms: submission rejected")
)

type Kind string

const (
	KindOrganizer Kind = "organizer"
	KindSponsor   Kind = "sponsor"
)

type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type response struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
}

// Submit posts fields as a JSON object. It fails on a non-2xx status, on a
// body that is not JSON, and on {"success": false}. There is no retry.
func (c *Client) Submit(ctx context.Context, fields map[string]string) error {
	if c == nil || c.endpoint == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("forms: encode: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("forms: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("forms: post: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("forms: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}

	var result response
	if err := json.Unmarshal(raw, &result); err != nil {
		return fmt.Errorf("forms: decode response: %w", err)
	}
	if result.Success != nil && !*result.Success {
		msg := result.Error
		if msg == "" {
			msg = "unknown error"
		}
		return fmt.Errorf("%w: %s", ErrRejected, msg)
	}
	return nil
}

// Router picks the client for a form kind.
type Router map[Kind]*Client

func (r Router) Submit(ctx context.Context, kind Kind, fields map[string]string) error {
	client, ok := r[kind]
	if !ok {
		return fmt.Errorf("forms: unknown form %q", kind)
	}
	return client.Submit(ctx, fields)
}
