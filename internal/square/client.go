// Package square is the REST client for the scheduling vendor's API.
package square

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/barkwell/frontdesk/pkg/logging"
)

const defaultTimeout = 20 * time.Second

// Client is a vendor API client scoped to one business location.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	accessToken string
	locationID  string
	logger      *logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL, primarily for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithTimeout overrides the HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient creates a vendor client.
func NewClient(baseURL, accessToken, locationID string, logger *logging.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: defaultTimeout},
		accessToken: accessToken,
		locationID:  locationID,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListBookingServices fetches the booking catalog for the location.
func (c *Client) ListBookingServices(ctx context.Context) ([]bookingService, error) {
	var out bookingServicesResponse
	q := url.Values{"location_id": {c.locationID}}
	if err := c.do(ctx, http.MethodGet, "/v2/bookings/services", q, nil, &out); err != nil {
		return nil, err
	}
	if len(out.Errors) > 0 {
		return nil, fmt.Errorf("square: list booking services: %s", out.Errors[0].Detail)
	}
	return out.Services, nil
}

// ListCatalogItems fetches the retail catalog for the location.
func (c *Client) ListCatalogItems(ctx context.Context) ([]catalogItem, error) {
	var out catalogItemsResponse
	q := url.Values{"location_id": {c.locationID}}
	if err := c.do(ctx, http.MethodGet, "/v2/catalog/items", q, nil, &out); err != nil {
		return nil, err
	}
	if len(out.Errors) > 0 {
		return nil, fmt.Errorf("square: list catalog items: %s", out.Errors[0].Detail)
	}
	return out.Items, nil
}

// CreateBooking submits a compiled appointment payload.
func (c *Client) CreateBooking(ctx context.Context, req createBookingRequest) (string, error) {
	var out createBookingResponse
	if err := c.do(ctx, http.MethodPost, "/v2/bookings", nil, req, &out); err != nil {
		return "", err
	}
	if len(out.Errors) > 0 {
		return "", fmt.Errorf("square: create booking: %s", out.Errors[0].Detail)
	}
	if out.Booking.ID == "" {
		return "", fmt.Errorf("square: create booking returned empty id")
	}
	return out.Booking.ID, nil
}

// CheckInBooking marks an appointment as checked in.
func (c *Client) CheckInBooking(ctx context.Context, bookingID string) error {
	var out errorsEnvelope
	path := "/v2/bookings/" + url.PathEscape(bookingID) + "/check-in"
	if err := c.do(ctx, http.MethodPost, path, nil, struct{}{}, &out); err != nil {
		return err
	}
	if len(out.Errors) > 0 {
		return fmt.Errorf("square: check in %s: %s", bookingID, out.Errors[0].Detail)
	}
	return nil
}

// ListClients pages through the location's customer roster.
func (c *Client) ListClients(ctx context.Context) ([]clientRecord, error) {
	var all []clientRecord
	cursor := ""
	for {
		q := url.Values{"location_id": {c.locationID}}
		if cursor != "" {
			q.Set("cursor", cursor)
		}
		var out clientsResponse
		if err := c.do(ctx, http.MethodGet, "/v2/clients", q, nil, &out); err != nil {
			return nil, err
		}
		if len(out.Errors) > 0 {
			return nil, fmt.Errorf("square: list clients: %s", out.Errors[0].Detail)
		}
		all = append(all, out.Clients...)
		if out.Cursor == "" {
			return all, nil
		}
		cursor = out.Cursor
	}
}

// ListLocations fetches the raw location list for passthrough.
func (c *Client) ListLocations(ctx context.Context) (json.RawMessage, error) {
	return c.raw(ctx, "/v2/locations", nil)
}

// ListTeamMembers fetches the raw staff list for passthrough.
func (c *Client) ListTeamMembers(ctx context.Context) (json.RawMessage, error) {
	q := url.Values{"location_id": {c.locationID}}
	return c.raw(ctx, "/v2/team-members", q)
}

func (c *Client) raw(ctx context.Context, path string, q url.Values) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// httpError is a non-2xx response with its parsed vendor error detail.
type httpError struct {
	StatusCode int
	Detail     string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("square: status %d: %s", e.StatusCode, e.Detail)
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body, out interface{}) error {
	if strings.TrimSpace(c.accessToken) == "" {
		return fmt.Errorf("square: missing access token")
	}
	if strings.TrimSpace(c.locationID) == "" {
		return fmt.Errorf("square: missing location id")
	}

	endpoint := c.baseURL + path
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("square: marshal request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("square: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("square: http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("square: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := string(respBody)
		var env errorsEnvelope
		if jsonErr := json.Unmarshal(respBody, &env); jsonErr == nil && len(env.Errors) > 0 {
			detail = env.Errors[0].Detail
		}
		if len(detail) > 300 {
			detail = detail[:300]
		}
		return &httpError{StatusCode: resp.StatusCode, Detail: detail}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("square: unmarshal response: %w", err)
	}
	return nil
}
