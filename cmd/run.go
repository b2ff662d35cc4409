package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one auto-RSVP pass and exit",
	Long: `Run one full pass over all configured groups, then exit.

The exit code is 0 on a completed pass even when individual groups or
events failed; those are logged and retried on the next scheduled run.
A non-zero exit means a fatal condition: unreadable config, missing or
rejected credentials, or an unusable state file.

Intended to be invoked periodically by cron:

  0 * * * * rsvpr run --config /etc/rsvpr/config.json`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	runner, st, closer, err := buildRunner()
	if err != nil {
		return err
	}

	defer func() {
		_ = st.Close()
		_ = closer.Close()
	}()

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if _, err := runner.Run(ctx); err != nil {
		return err
	}

	return nil
}
