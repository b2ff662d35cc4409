// Package metrics exposes prometheus counters for watch mode.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// PassesTotal counts completed passes by outcome.
	PassesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rsvpr",
		Name:      "passes_total",
		Help:      "Number of completed passes by outcome",
	}, []string{"outcome"})

	// RSVPsTotal counts RSVP calls by status.
	RSVPsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rsvpr",
		Name:      "rsvps_total",
		Help:      "Number of RSVP calls by status",
	}, []string{"status"})

	// GroupErrorsTotal counts per-group fetch failures by kind.
	GroupErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rsvpr",
		Name:      "group_errors_total",
		Help:      "Number of per-group failures by kind",
	}, []string{"kind"})

	// PassDuration observes how long a full pass takes.
	PassDuration = promauto.NewSummary(prometheus.SummaryOpts{
		Namespace: "rsvpr",
		Name:      "pass_duration_seconds",
		Help:      "Time spent running one full pass",
	})
)

// Serve starts a /metrics listener on addr. The returned server should
// be shut down by the caller.
func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() { _ = srv.ListenAndServe() }()

	return srv
}
