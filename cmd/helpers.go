package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/inovacc/rsvpr/internal/application"
	"github.com/inovacc/rsvpr/internal/config"
	"github.com/inovacc/rsvpr/internal/core"
	"github.com/inovacc/rsvpr/internal/meetup"
	"github.com/inovacc/rsvpr/internal/store"
)

// resolveConfigPath finds the configuration file: the --config flag,
// config.json in the working directory, then config.json in the app
// data dir.
func resolveConfigPath() (string, error) {
	if flagConfig != "" {
		return flagConfig, nil
	}

	if _, err := os.Stat("config.json"); err == nil {
		return "config.json", nil
	}

	dataDir, err := application.DataDir()
	if err != nil {
		return "", err
	}

	candidate := filepath.Join(dataDir, "config.json")
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}

	return "", fmt.Errorf("%w: no config file found (looked for config.json here and in %s)", config.ErrConfig, dataDir)
}

// resolveStatePath picks the seen-event store location: the --state
// flag, the config override, then the default bolt file in the app data
// dir.
func resolveStatePath(cfg *config.Config) (string, error) {
	if flagState != "" {
		return flagState, nil
	}

	if cfg.StatePath != "" {
		return cfg.StatePath, nil
	}

	dataDir, err := application.DataDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dataDir, store.DefaultFileName), nil
}

// openLogger builds the run logger: a text handler writing to stderr
// and the append-only log file. The returned closer owns the file.
func openLogger(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	logPath := flagLogFile
	if logPath == "" {
		logPath = cfg.LogPath
	}

	if logPath == "" {
		dataDir, err := application.DataDir()
		if err != nil {
			return nil, nil, err
		}

		logPath = filepath.Join(dataDir, "rsvpr.log")
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(io.MultiWriter(os.Stderr, f), &slog.HandlerOptions{Level: level})

	return slog.New(handler), f, nil
}

// buildRunner wires config, credentials, API client and store into a
// ready Runner. The caller must Close the returned store and closer.
func buildRunner() (*core.Runner, store.Store, io.Closer, error) {
	cfgPath, err := resolveConfigPath()
	if err != nil {
		return nil, nil, nil, err
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, nil, err
	}

	logger, closer, err := openLogger(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	apiKey, err := config.ResolveAPIKey()
	if err != nil {
		_ = closer.Close()

		return nil, nil, nil, err
	}

	statePath, err := resolveStatePath(cfg)
	if err != nil {
		_ = closer.Close()

		return nil, nil, nil, err
	}

	st, err := store.Open(statePath)
	if err != nil {
		_ = closer.Close()

		return nil, nil, nil, fmt.Errorf("opening seen-event store: %w", err)
	}

	client := meetup.NewClient(apiKey, meetup.ClientOptions{Logger: logger})

	runner := &core.Runner{
		Config: cfg,
		Client: client,
		Store:  st,
		Logger: logger,
	}

	return runner, st, closer, nil
}
