package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"turnobot/models"

	"go.uber.org/zap"
)

// Service is the read/confirm surface of the external scheduling provider.
// The two availability checks are side-effect free and fail closed: any
// transport or parsing failure reports the window as unavailable instead of
// propagating into the conversation.
type Service interface {
	HasAvailabilityOn(ctx context.Context, eventTypeID int, day time.Time, timeZone string) bool
	IsSlotAvailable(ctx context.Context, eventTypeID int, start, end time.Time, timeZone string) bool
	ConfirmBooking(ctx context.Context, req *models.BookingRequest) (*models.ConfirmedBooking, error)
	CancelBooking(ctx context.Context, bookingUID, reason string) error
	GetEventTypes(ctx context.Context) ([]models.EventType, error)
}

// Client talks to a Cal-compatible scheduling API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// get issues an authenticated GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("scheduling service returned %d for %s: %s", resp.StatusCode, path, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}

// post issues an authenticated POST with a JSON body and decodes the
// response into out when out is non-nil.
func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding payload for %s: %w", path, err)
		}
		body = bytes.NewReader(b)
	}

	query := url.Values{}
	query.Set("apiKey", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path+"?"+query.Encode(), body)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("scheduling service returned %d for %s: %s", resp.StatusCode, path, respBody)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response from %s: %w", path, err)
		}
	}
	return nil
}
