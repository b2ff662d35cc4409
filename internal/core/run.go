// Package core drives one full auto-RSVP pass: for each configured
// group, fetch upcoming events, filter by keywords, drop already-seen
// ids, RSVP to the rest and record them.
package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/inovacc/rsvpr/internal/config"
	"github.com/inovacc/rsvpr/internal/filter"
	"github.com/inovacc/rsvpr/internal/meetup"
	"github.com/inovacc/rsvpr/internal/metrics"
	"github.com/inovacc/rsvpr/internal/store"
)

var (
	fetchAttempts  = 3
	initialBackoff = 500 * time.Millisecond
	maxBackoff     = 4 * time.Second
)

// Client is the slice of the Meetup API the runner needs. *meetup.Client
// satisfies it; tests substitute a mock.
type Client interface {
	ListUpcomingEvents(ctx context.Context, urlname string) ([]meetup.Event, error)
	RSVP(ctx context.Context, urlname, eventID, response string) (meetup.RsvpResult, error)
}

// Runner holds the collaborators for one pass. The store is an owned
// value passed in by the caller, never package state, so tests can swap
// an in-memory store for the durable one.
type Runner struct {
	Config *config.Config
	Client Client
	Store  store.Store
	Logger *slog.Logger

	// RSVPAnswer overrides the configured default response.
	RSVPAnswer string
}

// Summary reports the outcome of one pass.
type Summary struct {
	RunID           string
	Started         time.Time
	Duration        time.Duration
	GroupsProcessed int
	GroupsSkipped   int
	EventsMatched   int
	RSVPsConfirmed  int
	AlreadyRSVPed   int
	Errors          int
}

// Run executes one full pass over all configured groups. Per-group and
// per-event failures are logged and contained; only an authentication
// failure aborts the pass and is returned as an error.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	answer := r.RSVPAnswer
	if answer == "" {
		answer = r.Config.RSVPAnswerDefault
	}

	sum := &Summary{
		RunID:   uuid.NewString(),
		Started: time.Now(),
	}

	logger = logger.With("run_id", sum.RunID)
	logger.Info("checking for new events", "groups", len(r.Config.Groups))

	defer func() {
		sum.Duration = time.Since(sum.Started)
		metrics.PassDuration.Observe(sum.Duration.Seconds())
	}()

	for _, group := range r.Config.Groups {
		if !group.Enabled() {
			sum.GroupsSkipped++
			logger.Debug("auto_rsvp disabled, skipping group", "group", group.URLName)

			continue
		}

		if err := r.processGroup(ctx, logger, group, answer, sum); err != nil {
			if errors.Is(err, meetup.ErrAuth) {
				metrics.PassesTotal.WithLabelValues("auth_error").Inc()

				return sum, fmt.Errorf("aborting run: %w", err)
			}

			if ctx.Err() != nil {
				return sum, ctx.Err()
			}

			sum.Errors++
			sum.GroupsSkipped++
			logger.Error("giving up on group for this pass", "group", group.URLName, "error", err)

			continue
		}

		sum.GroupsProcessed++
	}

	metrics.PassesTotal.WithLabelValues("completed").Inc()
	logger.Info("pass complete",
		"groups_processed", sum.GroupsProcessed,
		"groups_skipped", sum.GroupsSkipped,
		"events_matched", sum.EventsMatched,
		"rsvps_confirmed", sum.RSVPsConfirmed,
		"already_rsvped", sum.AlreadyRSVPed,
		"errors", sum.Errors,
		"duration", time.Since(sum.Started).Round(time.Millisecond))

	return sum, nil
}

// processGroup handles one group: fetch with retry, filter, RSVP.
func (r *Runner) processGroup(ctx context.Context, logger *slog.Logger, group config.GroupConfig, answer string, sum *Summary) error {
	var events []meetup.Event

	err := retry(ctx, fetchAttempts, initialBackoff, maxBackoff, meetup.Retryable, func() error {
		var ferr error

		events, ferr = r.Client.ListUpcomingEvents(ctx, group.URLName)
		if ferr != nil && meetup.Retryable(ferr) {
			logger.Warn("fetch failed, will retry", "group", group.URLName, "error", ferr)
		}

		return ferr
	})
	if err != nil {
		switch {
		case errors.Is(err, meetup.ErrAuth):
			metrics.GroupErrorsTotal.WithLabelValues("auth").Inc()
		case errors.Is(err, meetup.ErrNotFound):
			metrics.GroupErrorsTotal.WithLabelValues("not_found").Inc()
		case errors.Is(err, meetup.ErrRateLimited):
			metrics.GroupErrorsTotal.WithLabelValues("rate_limited").Inc()
		default:
			metrics.GroupErrorsTotal.WithLabelValues("transient").Inc()
		}

		return err
	}

	logger.Info("found upcoming events", "group", group.URLName, "count", len(events))

	matched := filter.Match(events, group.Keywords)

	for _, ev := range matched {
		seen, err := r.Store.Contains(ev.ID)
		if err != nil {
			return fmt.Errorf("checking seen state for %s: %w", ev.ID, err)
		}

		if seen {
			logger.Debug("already RSVPed to event", "group", group.URLName, "event", ev.Name)

			continue
		}

		sum.EventsMatched++

		r.rsvpEvent(ctx, logger, group.URLName, ev, answer, sum)
	}

	return nil
}

// rsvpEvent RSVPs to one event and records it seen. Failures are logged
// and the event is left unseen for the next pass.
func (r *Runner) rsvpEvent(ctx context.Context, logger *slog.Logger, urlname string, ev meetup.Event, answer string, sum *Summary) {
	result, err := r.Client.RSVP(ctx, urlname, ev.ID, answer)
	if err != nil {
		sum.Errors++
		metrics.RSVPsTotal.WithLabelValues("failed").Inc()
		logger.Error("failed to RSVP", "group", urlname, "event", ev.Name, "error", err)

		return
	}

	switch result.Status {
	case meetup.RsvpConfirmed:
		sum.RSVPsConfirmed++
		metrics.RSVPsTotal.WithLabelValues("confirmed").Inc()
		logger.Info("successfully RSVPed", "group", urlname, "event", ev.Name, "starts", ev.StartTime().Format(time.RFC3339))
	case meetup.RsvpAlreadyRsvped:
		sum.AlreadyRSVPed++
		metrics.RSVPsTotal.WithLabelValues("already_rsvped").Inc()
		logger.Info("remote already had RSVP", "group", urlname, "event", ev.Name)
	default:
		sum.Errors++
		metrics.RSVPsTotal.WithLabelValues("failed").Inc()
		logger.Warn("RSVP not accepted", "group", urlname, "event", ev.Name)

		return
	}

	// The RSVP itself succeeded; losing the seen record only risks an
	// idempotent duplicate attempt next pass.
	if err := r.Store.MarkSeen(ev.ID); err != nil {
		sum.Errors++
		logger.Error("failed to persist seen record", "event", ev.ID, "error", err)
	}
}
