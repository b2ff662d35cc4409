// Package meetup is a thin authenticated client for the Meetup.com API,
// covering the two calls rsvpr needs: listing a group's upcoming events
// and submitting an RSVP.
package meetup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const meetupAPIBaseURL = "https://api.meetup.com"

// defaultTimeout bounds each request so a hung call cannot stall a pass.
const defaultTimeout = 15 * time.Second

// Client is a Meetup API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

// ClientOptions configures a Meetup client.
type ClientOptions struct {
	// BaseURL overrides the API endpoint, mainly for tests.
	BaseURL string

	// Timeout is the per-request timeout. Defaults to 15s.
	Timeout time.Duration

	Logger *slog.Logger
}

// NewClient creates a new Meetup API client.
func NewClient(apiKey string, opts ClientOptions) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = meetupAPIBaseURL
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
		now:    time.Now,
	}
}

// Event represents an upcoming Meetup event.
type Event struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	TimeMillis  int64  `json:"time"`
	Group       Group  `json:"group"`
	Link        string `json:"link"`
	RSVPLimit   int    `json:"rsvp_limit,omitempty"`
	YesRSVPs    int    `json:"yes_rsvp_count,omitempty"`
}

// Group identifies the group an event belongs to.
type Group struct {
	URLName string `json:"urlname"`
	Name    string `json:"name"`
}

// StartTime returns the event start as a time.Time.
func (e Event) StartTime() time.Time {
	return time.UnixMilli(e.TimeMillis)
}

// ListUpcomingEvents lists a group's upcoming events, newest last as the
// API returns them. Events already in the past are dropped client-side.
func (c *Client) ListUpcomingEvents(ctx context.Context, urlname string) ([]Event, error) {
	params := url.Values{}
	params.Set("status", "upcoming")
	params.Set("page", "200")

	var events []Event
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/%s/events", url.PathEscape(urlname)), params, &events); err != nil {
		return nil, err
	}

	now := c.now()
	upcoming := events[:0]

	for _, ev := range events {
		if ev.TimeMillis > 0 && ev.StartTime().Before(now) {
			continue
		}

		ev.Group.URLName = urlname
		upcoming = append(upcoming, ev)
	}

	c.logger.Debug("listed upcoming events", "group", urlname, "count", len(upcoming))

	return upcoming, nil
}

// RsvpStatus is the local interpretation of an RSVP call.
type RsvpStatus string

const (
	RsvpConfirmed     RsvpStatus = "confirmed"
	RsvpAlreadyRsvped RsvpStatus = "already_rsvped"
	RsvpFailed        RsvpStatus = "failed"
)

// RsvpResult is the outcome of an RSVP call.
type RsvpResult struct {
	Status  RsvpStatus
	EventID string
}

// rsvpResponse is the RSVP endpoint payload.
type rsvpResponse struct {
	Response string `json:"response"`
	Errors   []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors,omitempty"`
}

// RSVP submits an affirmative RSVP for an event. A remote "already
// RSVPed" answer is a success from the caller's perspective, so a stale
// or lost local seen record never surfaces as an error.
func (c *Client) RSVP(ctx context.Context, urlname, eventID, response string) (RsvpResult, error) {
	if response == "" {
		response = "yes"
	}

	params := url.Values{}
	params.Set("response", response)

	path := fmt.Sprintf("/%s/events/%s/rsvps", url.PathEscape(urlname), url.PathEscape(eventID))

	var resp rsvpResponse

	err := c.do(ctx, http.MethodPost, path, params, &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && alreadyRsvped(apiErr) {
			c.logger.Debug("already RSVPed", "group", urlname, "event", eventID)

			return RsvpResult{Status: RsvpAlreadyRsvped, EventID: eventID}, nil
		}

		return RsvpResult{Status: RsvpFailed, EventID: eventID}, err
	}

	for _, e := range resp.Errors {
		if strings.Contains(e.Code, "already") {
			return RsvpResult{Status: RsvpAlreadyRsvped, EventID: eventID}, nil
		}

		return RsvpResult{Status: RsvpFailed, EventID: eventID},
			fmt.Errorf("meetup: RSVP rejected: %s: %s", e.Code, e.Message)
	}

	c.logger.Debug("RSVP confirmed", "group", urlname, "event", eventID, "response", resp.Response)

	return RsvpResult{Status: RsvpConfirmed, EventID: eventID}, nil
}

// alreadyRsvped recognizes the conflict answer the RSVP endpoint gives
// for a member who is already attending.
func alreadyRsvped(apiErr *APIError) bool {
	if apiErr.StatusCode == http.StatusConflict {
		return true
	}

	return strings.Contains(apiErr.Body, "already")
}

// do issues an authenticated request and decodes the JSON response.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, result any) error {
	u := c.baseURL + path

	var body io.Reader

	switch method {
	case http.MethodGet:
		if len(params) > 0 {
			u = u + "?" + params.Encode()
		}
	default:
		body = strings.NewReader(params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	c.logger.Debug("meetup API request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransient, err)
	}

	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		return classifyStatus(resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if result == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
