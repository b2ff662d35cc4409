package core

import (
	"context"

	"github.com/inovacc/rsvpr/internal/meetup"
)

// mockClient is a mock implementation of Client for testing.
type mockClient struct {
	// Events served per group urlname.
	Events map[string][]meetup.Event

	// ListErrs is a per-group queue of errors returned before Events
	// are served, one per call.
	ListErrs map[string][]error

	// RSVPResults maps event id to the result to return.
	RSVPResults map[string]meetup.RsvpResult

	// RSVPErr, when set, is returned by every RSVP call.
	RSVPErr error

	// Call tracking
	ListCalls  []string
	RSVPCalls  []string
	RSVPAnswer string
}

func newMockClient() *mockClient {
	return &mockClient{
		Events:      make(map[string][]meetup.Event),
		ListErrs:    make(map[string][]error),
		RSVPResults: make(map[string]meetup.RsvpResult),
	}
}

func (m *mockClient) ListUpcomingEvents(ctx context.Context, urlname string) ([]meetup.Event, error) {
	m.ListCalls = append(m.ListCalls, urlname)

	if queue := m.ListErrs[urlname]; len(queue) > 0 {
		err := queue[0]
		m.ListErrs[urlname] = queue[1:]

		return nil, err
	}

	return m.Events[urlname], nil
}

func (m *mockClient) RSVP(ctx context.Context, urlname, eventID, response string) (meetup.RsvpResult, error) {
	m.RSVPCalls = append(m.RSVPCalls, eventID)
	m.RSVPAnswer = response

	if m.RSVPErr != nil {
		return meetup.RsvpResult{Status: meetup.RsvpFailed, EventID: eventID}, m.RSVPErr
	}

	if result, ok := m.RSVPResults[eventID]; ok {
		return result, nil
	}

	return meetup.RsvpResult{Status: meetup.RsvpConfirmed, EventID: eventID}, nil
}
