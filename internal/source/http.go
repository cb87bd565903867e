package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"resty.dev/v3"
)

// HTTPSource fetches descriptors from <baseURL>/patterns/<id>.json.
type HTTPSource struct {
	client *resty.Client
}

// NewHTTP creates a Source backed by a static asset server.
func NewHTTP(baseURL string, timeout time.Duration) *HTTPSource {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &HTTPSource{client: client}
}

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context, id string) (string, error) {
	if err := checkID(id); err != nil {
		return "", err
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Get("/patterns/{id}.json")
	if err != nil {
		return "", fmt.Errorf("fetching geometry %s: %w", id, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if resp.IsError() {
		return "", fmt.Errorf("fetching geometry %s: unexpected status %s", id, resp.Status())
	}
	return resp.String(), nil
}

// Close releases the underlying HTTP client.
func (s *HTTPSource) Close() error {
	return s.client.Close()
}
