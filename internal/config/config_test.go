package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"groups": [
			{"urlname": "pydata-nyc", "keywords": ["workshop", "tutorial"]},
			{"urlname": "golang-ny", "auto_rsvp": false}
		],
		"rsvp_answer_default": "yes",
		"check_interval_hours": 2
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Groups, 2)

	require.Equal(t, "pydata-nyc", cfg.Groups[0].URLName)
	require.Equal(t, []string{"workshop", "tutorial"}, cfg.Groups[0].Keywords)
	require.True(t, cfg.Groups[0].Enabled())

	require.False(t, cfg.Groups[1].Enabled())

	require.Equal(t, "yes", cfg.RSVPAnswerDefault)
	require.Equal(t, 2*time.Hour, cfg.CheckInterval())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
groups:
  - urlname: pydata-nyc
    keywords: [workshop]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Groups, 1)
	require.Equal(t, "pydata-nyc", cfg.Groups[0].URLName)
}

func TestLoadDefaults(t *testing.T) {
	path := writeFile(t, "config.json", `{"groups": [{"urlname": "g"}]}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "yes", cfg.RSVPAnswerDefault)
	require.Equal(t, time.Hour, cfg.CheckInterval())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed json", content: `{"groups": [`},
		{name: "no groups", content: `{"groups": []}`},
		{name: "missing urlname", content: `{"groups": [{"keywords": ["x"]}]}`},
		{name: "blank urlname", content: `{"groups": [{"urlname": "  "}]}`},
		{name: "duplicate urlname", content: `{"groups": [{"urlname": "a"}, {"urlname": "a"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "config.json", tt.content)

			_, err := Load(path)
			require.ErrorIs(t, err, ErrConfig)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.ErrorIs(t, err, ErrConfig)
}

func TestResolveAPIKey(t *testing.T) {
	t.Setenv(APIKeyEnvVar, "secret-key")

	key, err := ResolveAPIKey()
	require.NoError(t, err)
	require.Equal(t, "secret-key", key)
}

func TestResolveAPIKeyMissing(t *testing.T) {
	t.Setenv(APIKeyEnvVar, "")

	_, err := ResolveAPIKey()
	require.ErrorIs(t, err, ErrMissingAPIKey)
}
