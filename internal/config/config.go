package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete application configuration. Values come from an
// optional config.yaml overridden by MEDIALENS_-prefixed environment
// variables.
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Data     DataConfig     `yaml:"data" envconfig:"DATA"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// SecurityConfig contains CORS and rate-limit configuration.
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"stdout"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/medialens.log"`
}

// DataConfig names the two source tables and the export directory used by
// the snapshot tool. Sources may be .csv or .xlsx files.
type DataConfig struct {
	ToneVolumeFile string `yaml:"tone_volume_file" envconfig:"TONE_VOLUME_FILE" default:"data/gdelt_us_politics_tone_and_topics_long.csv"`
	TopicShareFile string `yaml:"topic_share_file" envconfig:"TOPIC_SHARE_FILE" default:"data/gdelt_us_politics_topic_share.csv"`
	ExportDir      string `yaml:"export_dir" envconfig:"EXPORT_DIR" default:"data/exports"`
}

// ConfigFile is the optional YAML configuration file looked up in the
// working directory.
const ConfigFile = "config.yaml"

// Load builds the configuration from config.yaml (if present) and the
// environment, then validates it. The dashboard cannot run without readable
// source files, so validation failure here is fatal for the caller.
func Load() (*Config, error) {
	var cfg Config

	if data, err := os.ReadFile(ConfigFile); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", ConfigFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", ConfigFile, err)
	}

	// Environment overrides the file; envconfig also applies defaults for
	// anything still unset.
	if err := envconfig.Process("MEDIALENS", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks server and data settings.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Data.ToneVolumeFile == "" {
		return fmt.Errorf("data.tone_volume_file is required")
	}
	if c.Data.TopicShareFile == "" {
		return fmt.Errorf("data.topic_share_file is required")
	}
	switch c.Logging.Output {
	case "stdout", "file", "both":
	default:
		return fmt.Errorf("invalid logging output %q", c.Logging.Output)
	}
	return nil
}

// ValidateSources verifies both source files exist and are readable.
func (c *Config) ValidateSources() error {
	for _, path := range []string{c.Data.ToneVolumeFile, c.Data.TopicShareFile} {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("source file %s: %w", path, err)
		}
		if info.IsDir() {
			return fmt.Errorf("source file %s is a directory", path)
		}
	}
	return nil
}
