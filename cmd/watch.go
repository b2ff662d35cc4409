package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/inovacc/rsvpr/internal/metrics"
)

var (
	watchInterval      time.Duration
	watchMetricsListen string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run passes on an internal timer until interrupted",
	Long: `Run an immediate pass, then repeat on a fixed interval until
SIGINT or SIGTERM.

The interval defaults to check_interval_hours from the config file
(1 hour when unset) and can be overridden with --interval. Passes run
strictly one at a time; a pass that overruns the interval delays the
next tick rather than overlapping it.

With --metrics-listen, a prometheus /metrics endpoint is exposed for
the lifetime of the process.

Examples:
  rsvpr watch
  rsvpr watch --interval 30m
  rsvpr watch --metrics-listen :9123`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "time between passes (default from check_interval_hours)")
	watchCmd.Flags().StringVar(&watchMetricsListen, "metrics-listen", "", "address for the prometheus /metrics endpoint")
}

func runWatch(cmd *cobra.Command, args []string) error {
	runner, st, closer, err := buildRunner()
	if err != nil {
		return err
	}

	defer func() {
		_ = st.Close()
		_ = closer.Close()
	}()

	interval := watchInterval
	if interval <= 0 {
		interval = runner.Config.CheckInterval()
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if watchMetricsListen != "" {
		srv := metrics.Serve(watchMetricsListen)

		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		runner.Logger.Info("metrics listener started", "addr", watchMetricsListen)
	}

	runner.Logger.Info("watch started", "interval", interval)

	// Immediate first pass, matching the cron behavior of running on
	// the hour it starts.
	if _, err := runner.Run(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			runner.Logger.Info("watch stopped")

			return nil
		case <-ticker.C:
			if _, err := runner.Run(ctx); err != nil {
				return err
			}
		}
	}
}
