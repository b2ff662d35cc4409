package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inovacc/rsvpr/internal/application"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the rsvpr version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s version %s\n", application.AppName, application.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
