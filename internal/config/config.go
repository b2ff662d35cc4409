// Package config loads and validates the rsvpr group configuration and
// resolves the Meetup API credential.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// APIKeyEnvVar is the environment variable holding the Meetup API key.
const APIKeyEnvVar = "MEETUP_API_KEY"

var (
	// ErrConfig is wrapped by every configuration failure so callers can
	// match the whole class with errors.Is.
	ErrConfig = errors.New("invalid configuration")

	// ErrMissingAPIKey is returned when no API key can be resolved from
	// the environment or a .env file.
	ErrMissingAPIKey = errors.New("MEETUP_API_KEY not set")
)

// GroupConfig describes one monitored Meetup group.
type GroupConfig struct {
	// URLName is the unique slug identifying the group in API calls.
	URLName string `json:"urlname" yaml:"urlname"`

	// Keywords filters events by case-insensitive substring match against
	// title or description. Empty means every upcoming event matches.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// AutoRSVP opts the group out when explicitly false. Omitted means
	// enabled.
	AutoRSVP *bool `json:"auto_rsvp,omitempty" yaml:"auto_rsvp,omitempty"`
}

// Enabled reports whether events in this group should be RSVPed.
func (g GroupConfig) Enabled() bool {
	return g.AutoRSVP == nil || *g.AutoRSVP
}

// Config is the full rsvpr configuration file.
type Config struct {
	Groups []GroupConfig `json:"groups" yaml:"groups"`

	// RSVPAnswerDefault is the response sent with each RSVP. Default "yes".
	RSVPAnswerDefault string `json:"rsvp_answer_default,omitempty" yaml:"rsvp_answer_default,omitempty"`

	// CheckIntervalHours drives the watch-mode timer. Default 1.
	CheckIntervalHours int `json:"check_interval_hours,omitempty" yaml:"check_interval_hours,omitempty"`

	// StatePath overrides the seen-event store location.
	StatePath string `json:"state_path,omitempty" yaml:"state_path,omitempty"`

	// LogPath overrides the append-only run log location.
	LogPath string `json:"log_path,omitempty" yaml:"log_path,omitempty"`
}

// CheckInterval returns the watch-mode interval as a duration.
func (c *Config) CheckInterval() time.Duration {
	hours := c.CheckIntervalHours
	if hours <= 0 {
		hours = 1
	}

	return time.Duration(hours) * time.Hour
}

// Load reads and validates a configuration file. JSON is the default
// format; files ending in .yml or .yaml are parsed as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrConfig, path, err)
	}

	var cfg Config

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", ErrConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// Validate checks structural requirements: at least one group, every
// group has a urlname, and urlnames do not repeat.
func (c *Config) Validate() error {
	if len(c.Groups) == 0 {
		return fmt.Errorf("%w: no groups configured", ErrConfig)
	}

	seen := make(map[string]struct{}, len(c.Groups))

	for i, g := range c.Groups {
		name := strings.TrimSpace(g.URLName)
		if name == "" {
			return fmt.Errorf("%w: group %d has no urlname", ErrConfig, i)
		}

		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: duplicate group urlname %q", ErrConfig, name)
		}

		seen[name] = struct{}{}
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.RSVPAnswerDefault == "" {
		c.RSVPAnswerDefault = "yes"
	}

	for i := range c.Groups {
		c.Groups[i].URLName = strings.TrimSpace(c.Groups[i].URLName)
	}
}

// ResolveAPIKey returns the Meetup API key from the process environment,
// after loading a .env file from the working directory when one exists.
func ResolveAPIKey() (string, error) {
	if _, err := os.Stat(".env"); err == nil {
		// Existing environment wins over .env values.
		_ = godotenv.Load()
	}

	key := strings.TrimSpace(os.Getenv(APIKeyEnvVar))
	if key == "" {
		return "", ErrMissingAPIKey
	}

	return key, nil
}
