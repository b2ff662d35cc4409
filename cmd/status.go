package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inovacc/rsvpr/internal/config"
	"github.com/inovacc/rsvpr/internal/store"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configured groups and seen-event state",
	Long: `Show the resolved config path, monitored groups, and how many
events have been RSVPed so far.

Examples:
  rsvpr status
  rsvpr status --json`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")
}

type statusReport struct {
	ConfigPath string   `json:"config_path"`
	StatePath  string   `json:"state_path"`
	Groups     []string `json:"groups"`
	SeenEvents int      `json:"seen_events"`
	HasAPIKey  bool     `json:"has_api_key"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfgPath, err := resolveConfigPath()
	if err != nil {
		return err
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	statePath, err := resolveStatePath(cfg)
	if err != nil {
		return err
	}

	st, err := store.Open(statePath)
	if err != nil {
		return fmt.Errorf("opening seen-event store: %w", err)
	}

	defer func() { _ = st.Close() }()

	count, err := st.Count()
	if err != nil {
		return err
	}

	_, keyErr := config.ResolveAPIKey()

	report := statusReport{
		ConfigPath: cfgPath,
		StatePath:  statePath,
		SeenEvents: count,
		HasAPIKey:  keyErr == nil,
	}

	for _, g := range cfg.Groups {
		report.Groups = append(report.Groups, g.URLName)
	}

	if statusJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		return enc.Encode(report)
	}

	fmt.Printf("Config:      %s\n", report.ConfigPath)
	fmt.Printf("State:       %s\n", report.StatePath)
	fmt.Printf("Seen events: %d\n", report.SeenEvents)

	if report.HasAPIKey {
		fmt.Println("API key:     set")
	} else {
		fmt.Println("API key:     missing")
	}

	fmt.Printf("Groups (%d):\n", len(cfg.Groups))

	for _, g := range cfg.Groups {
		state := "enabled"
		if !g.Enabled() {
			state = "disabled"
		}

		if len(g.Keywords) == 0 {
			fmt.Printf("  %-30s %s, all events\n", g.URLName, state)
			continue
		}

		fmt.Printf("  %-30s %s, keywords: %v\n", g.URLName, state, g.Keywords)
	}

	return nil
}
