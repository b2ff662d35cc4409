package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inovacc/rsvpr/internal/config"
)

func TestResolveConfigPathFlagWins(t *testing.T) {
	prev := flagConfig
	flagConfig = "/etc/rsvpr/config.json"

	t.Cleanup(func() { flagConfig = prev })

	path, err := resolveConfigPath()
	require.NoError(t, err)
	require.Equal(t, "/etc/rsvpr/config.json", path)
}

func TestResolveStatePath(t *testing.T) {
	prev := flagState

	t.Cleanup(func() { flagState = prev })

	flagState = "/var/lib/rsvpr/state.db"

	path, err := resolveStatePath(&config.Config{})
	require.NoError(t, err)
	require.Equal(t, "/var/lib/rsvpr/state.db", path)

	flagState = ""

	path, err = resolveStatePath(&config.Config{StatePath: "custom.bolt"})
	require.NoError(t, err)
	require.Equal(t, "custom.bolt", path)
}

func TestWatchArguments(t *testing.T) {
	prevConfig, prevState, prevLog := flagConfig, flagState, flagLogFile

	t.Cleanup(func() {
		flagConfig, flagState, flagLogFile = prevConfig, prevState, prevLog
	})

	flagConfig, flagState, flagLogFile = "", "", ""
	require.Equal(t, []string{"watch"}, watchArguments())

	flagConfig = "/etc/rsvpr/config.json"
	flagState = "/var/lib/rsvpr/state.bolt"

	require.Equal(t,
		[]string{"watch", "--config", "/etc/rsvpr/config.json", "--state", "/var/lib/rsvpr/state.bolt"},
		watchArguments())
}

func TestOpenLoggerAppendsToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "rsvpr.log")

	prev := flagLogFile
	flagLogFile = logPath

	t.Cleanup(func() { flagLogFile = prev })

	logger, closer, err := openLogger(&config.Config{})
	require.NoError(t, err)

	logger.Info("hello from test")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "hello from test")
}
