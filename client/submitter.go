package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"safaricamp/models"
)

// Submitter posts a booking to the booking endpoint.
type Submitter interface {
	SubmitBooking(ctx context.Context, req models.BookingRequest) (*models.BookingResponse, error)
}

// HTTPSubmitter talks to POST /api/booking.
type HTTPSubmitter struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewHTTPSubmitter(baseURL string, timeout time.Duration) *HTTPSubmitter {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPSubmitter{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// SubmitBooking returns the decoded response for any status that carries a
// booking response body, including 4xx and 5xx. Transport failures and
// unreadable bodies are returned as errors.
func (s *HTTPSubmitter) SubmitBooking(ctx context.Context, req models.BookingRequest) (*models.BookingResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode booking: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/api/booking", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("post booking: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	var out models.BookingResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode >= http.StatusBadRequest && out.Success {
		return nil, fmt.Errorf("unexpected status %d for successful response", resp.StatusCode)
	}
	return &out, nil
}
