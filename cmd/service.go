package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/kardianos/service"
	"github.com/spf13/cobra"
)

var (
	serviceStart     bool
	serviceStop      bool
	serviceInstall   bool
	serviceUninstall bool
	serviceStatus    bool
)

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage rsvpr as a system service",
	Long: `Install, uninstall, start, stop, or check the status of rsvpr as
a system service running the watch loop.

On Windows, this creates/manages a Windows Service.
On Linux/macOS, this creates/manages a systemd/launchd service.

The installed service runs "rsvpr watch" with the config, state and log
flags it was installed with.`,
	RunE: runServiceCmd,
}

func init() {
	rootCmd.AddCommand(serviceCmd)
	serviceCmd.Flags().BoolVar(&serviceStart, "start", false, "Start the rsvpr service")
	serviceCmd.Flags().BoolVar(&serviceStop, "stop", false, "Stop the rsvpr service")
	serviceCmd.Flags().BoolVar(&serviceInstall, "install", false, "Install rsvpr as a system service")
	serviceCmd.Flags().BoolVar(&serviceUninstall, "uninstall", false, "Uninstall the rsvpr system service")
	serviceCmd.Flags().BoolVar(&serviceStatus, "status", false, "Check rsvpr service status")
}

// program implements the service.Interface
type program struct {
	args []string
}

func (p *program) Start(s service.Service) error {
	// Start should not block. Do the actual work async.
	go p.run()
	return nil
}

func (p *program) run() {
	exe, err := os.Executable()
	if err != nil {
		_ = service.ConsoleLogger.Errorf("Failed to locate rsvpr executable: %v", err)
		return
	}

	cmd := exec.Command(exe, p.args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		_ = service.ConsoleLogger.Errorf("Watch loop exited with error: %v", err)
	}
}

func (p *program) Stop(s service.Service) error {
	// Stop should not block.
	return nil
}

// watchArguments carries the persistent flags into the installed
// service so it watches the same config and state.
func watchArguments() []string {
	args := []string{"watch"}

	if flagConfig != "" {
		args = append(args, "--config", flagConfig)
	}

	if flagState != "" {
		args = append(args, "--state", flagState)
	}

	if flagLogFile != "" {
		args = append(args, "--log-file", flagLogFile)
	}

	return args
}

func runServiceCmd(cmd *cobra.Command, args []string) error {
	flagCount := 0

	for _, set := range []bool{serviceStart, serviceStop, serviceInstall, serviceUninstall, serviceStatus} {
		if set {
			flagCount++
		}
	}

	if flagCount == 0 {
		return fmt.Errorf("please specify one of: --start, --stop, --install, --uninstall, --status")
	}

	if flagCount > 1 {
		return fmt.Errorf("please specify only one operation at a time")
	}

	svcConfig := &service.Config{
		Name:        "Rsvpr",
		DisplayName: "Rsvpr Auto-RSVP Watcher",
		Description: "Polls Meetup groups and auto-RSVPs to matching events",
		Arguments:   watchArguments(),
	}

	prg := &program{args: svcConfig.Arguments}

	s, err := service.New(prg, svcConfig)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	switch {
	case serviceInstall:
		if err := s.Install(); err != nil {
			return fmt.Errorf("failed to install service: %w", err)
		}

		fmt.Println("Service installed. Start it with: rsvpr service --start")

		return nil
	case serviceUninstall:
		_ = s.Stop()

		if err := s.Uninstall(); err != nil {
			return fmt.Errorf("failed to uninstall service: %w", err)
		}

		fmt.Println("Service uninstalled.")

		return nil
	case serviceStart:
		if err := s.Start(); err != nil {
			return fmt.Errorf("failed to start service: %w", err)
		}

		fmt.Println("Service started.")

		return nil
	case serviceStop:
		if err := s.Stop(); err != nil {
			return fmt.Errorf("failed to stop service: %w", err)
		}

		fmt.Println("Service stopped.")

		return nil
	case serviceStatus:
		status, err := s.Status()
		if err != nil {
			return fmt.Errorf("failed to query service status: %w", err)
		}

		switch status {
		case service.StatusRunning:
			fmt.Println("Service is running.")
		case service.StatusStopped:
			fmt.Println("Service is stopped.")
		default:
			fmt.Println("Service status unknown.")
		}

		return nil
	}

	return nil
}
