package meetup

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient("test-key", ClientOptions{BaseURL: srv.URL})
}

func TestListUpcomingEvents(t *testing.T) {
	future := time.Now().Add(48 * time.Hour).UnixMilli()
	past := time.Now().Add(-48 * time.Hour).UnixMilli()

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/pydata-nyc/events", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.Equal(t, "upcoming", r.URL.Query().Get("status"))

		fmt.Fprintf(w, `[
			{"id": "101", "name": "Python Workshop", "description": "Hands-on", "time": %d},
			{"id": "102", "name": "Old Event", "description": "Done", "time": %d}
		]`, future, past)
	})

	events, err := client.ListUpcomingEvents(context.Background(), "pydata-nyc")
	require.NoError(t, err)

	// The stale event is dropped client-side.
	require.Len(t, events, 1)
	require.Equal(t, "101", events[0].ID)
	require.Equal(t, "pydata-nyc", events[0].Group.URLName)
	require.WithinDuration(t, time.UnixMilli(future), events[0].StartTime(), time.Second)
}

func TestListUpcomingEventsErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrAuth},
		{name: "forbidden", status: http.StatusForbidden, wantErr: ErrAuth},
		{name: "group not found", status: http.StatusNotFound, wantErr: ErrNotFound},
		{name: "rate limited", status: http.StatusTooManyRequests, wantErr: ErrRateLimited},
		{name: "server error", status: http.StatusInternalServerError, wantErr: ErrTransient},
		{name: "bad gateway", status: http.StatusBadGateway, wantErr: ErrTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tt.status)
			})

			_, err := client.ListUpcomingEvents(context.Background(), "g")
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestListUpcomingEventsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClient("k", ClientOptions{BaseURL: srv.URL})

	_, err := client.ListUpcomingEvents(context.Background(), "g")
	require.ErrorIs(t, err, ErrTransient)
}

func TestRetryable(t *testing.T) {
	require.True(t, Retryable(&APIError{StatusCode: 500, kind: ErrTransient}))
	require.True(t, Retryable(&APIError{StatusCode: 429, kind: ErrRateLimited}))
	require.False(t, Retryable(&APIError{StatusCode: 401, kind: ErrAuth}))
	require.False(t, Retryable(&APIError{StatusCode: 404, kind: ErrNotFound}))
}

func TestRSVPConfirmed(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/pydata-nyc/events/101/rsvps", r.URL.Path)

		require.NoError(t, r.ParseForm())
		require.Equal(t, "yes", r.PostForm.Get("response"))

		fmt.Fprint(w, `{"response": "yes"}`)
	})

	result, err := client.RSVP(context.Background(), "pydata-nyc", "101", "yes")
	require.NoError(t, err)
	require.Equal(t, RsvpConfirmed, result.Status)
	require.Equal(t, "101", result.EventID)
}

func TestRSVPAlreadyRsvpedConflict(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors": [{"code": "member_already_rsvped"}]}`, http.StatusConflict)
	})

	result, err := client.RSVP(context.Background(), "g", "101", "yes")
	require.NoError(t, err)
	require.Equal(t, RsvpAlreadyRsvped, result.Status)
}

func TestRSVPAlreadyRsvpedPayload(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"errors": [{"code": "member_already_rsvped", "message": "you are going"}]}`)
	})

	result, err := client.RSVP(context.Background(), "g", "101", "yes")
	require.NoError(t, err)
	require.Equal(t, RsvpAlreadyRsvped, result.Status)
}

func TestRSVPRejected(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"errors": [{"code": "event_full", "message": "no spots left"}]}`)
	})

	result, err := client.RSVP(context.Background(), "g", "101", "yes")
	require.Error(t, err)
	require.Equal(t, RsvpFailed, result.Status)
}

func TestRSVPAuthError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	})

	result, err := client.RSVP(context.Background(), "g", "101", "yes")
	require.ErrorIs(t, err, ErrAuth)
	require.Equal(t, RsvpFailed, result.Status)
}
