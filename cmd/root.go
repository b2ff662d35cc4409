package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/inovacc/rsvpr/internal/application"
)

var (
	flagConfig  string
	flagState   string
	flagLogFile string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "Auto-RSVP to matching Meetup events",
	Long: `Rsvpr polls the Meetup.com API for upcoming events in configured
groups, filters them by keyword, and automatically RSVPs to matching
events it has not RSVPed to before.

It is designed to run unattended: one pass per invocation under cron
(rsvpr run), as an internal timer loop (rsvpr watch), or installed as a
system service (rsvpr service --install).

Credentials come from the MEETUP_API_KEY environment variable, loaded
from a local .env file when present.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to config file (default config.json, then the app data dir)")
	rootCmd.PersistentFlags().StringVar(&flagState, "state", "", "path to the seen-event state file (.bolt default, .db for SQLite)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "append-only log file (default rsvpr.log in the app data dir)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}
