package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })
}

// TestLoadDefaults verifies envconfig defaults apply without a config file.
func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "stdout", cfg.Logging.Output)
	assert.Equal(t, "data/gdelt_us_politics_tone_and_topics_long.csv", cfg.Data.ToneVolumeFile)
	assert.Equal(t, "data/gdelt_us_politics_topic_share.csv", cfg.Data.TopicShareFile)
	assert.True(t, cfg.Security.RateLimit.Enabled)
}

// TestLoadEnvOverride verifies environment variables override defaults and
// the YAML file.
func TestLoadEnvOverride(t *testing.T) {
	chdirTemp(t)
	require.NoError(t, os.WriteFile(ConfigFile, []byte("server:\n  port: 9000\n"), 0o644))

	t.Setenv("MEDIALENS_SERVER_PORT", "9100")
	t.Setenv("MEDIALENS_DATA_TONE_VOLUME_FILE", "/tmp/custom.xlsx")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "/tmp/custom.xlsx", cfg.Data.ToneVolumeFile)
}

// TestLoadYAML verifies config.yaml values survive when the environment does
// not override them.
func TestLoadYAML(t *testing.T) {
	chdirTemp(t)
	content := `
server:
  port: 9000
logging:
  level: debug
  output: both
data:
  tone_volume_file: tone.csv
  topic_share_file: share.csv
`
	require.NoError(t, os.WriteFile(ConfigFile, []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "both", cfg.Logging.Output)
	assert.Equal(t, "tone.csv", cfg.Data.ToneVolumeFile)
}

// TestValidate covers the rejection cases.
func TestValidate(t *testing.T) {
	valid := Config{
		Server:  ServerConfig{Port: 8080},
		Logging: LoggingConfig{Output: "stdout"},
		Data:    DataConfig{ToneVolumeFile: "a.csv", TopicShareFile: "b.csv"},
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"port too low", func(c *Config) { c.Server.Port = 0 }, "invalid server port"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "invalid server port"},
		{"missing tone file", func(c *Config) { c.Data.ToneVolumeFile = "" }, "tone_volume_file is required"},
		{"missing share file", func(c *Config) { c.Data.TopicShareFile = "" }, "topic_share_file is required"},
		{"bad logging output", func(c *Config) { c.Logging.Output = "syslog" }, "invalid logging output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

// TestValidateSources verifies missing source files are rejected.
func TestValidateSources(t *testing.T) {
	dir := t.TempDir()
	tone := filepath.Join(dir, "tone.csv")
	share := filepath.Join(dir, "share.csv")
	require.NoError(t, os.WriteFile(tone, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(share, []byte("x"), 0o644))

	cfg := Config{Data: DataConfig{ToneVolumeFile: tone, TopicShareFile: share}}
	assert.NoError(t, cfg.ValidateSources())

	cfg.Data.TopicShareFile = filepath.Join(dir, "missing.csv")
	assert.Error(t, cfg.ValidateSources())

	cfg.Data.TopicShareFile = dir
	assert.Error(t, cfg.ValidateSources())
}
