package configs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// ErrMissingGitHubToken is returned when no GitHub token is configured.
// The process refuses to start without it.
var ErrMissingGitHubToken = errors.New("GITHUB_TOKEN is not set (env var or config file)")

// FileConfig defines the structure loaded from the optional YAML configuration file.
// Environment variables take precedence over file values.
type FileConfig struct {
	GitHubToken     string `yaml:"github_token,omitempty"`
	GoogleTokenFile string `yaml:"google_token_file,omitempty"`
	GitHubAPIURL    string `yaml:"github_api_url,omitempty"`
}

// Config holds the application configuration, merged from environment
// variables and the optional YAML file.
type Config struct {
	// Config File Path (loaded first, from env only)
	ConfigFilePath string `envconfig:"CONFIG_FILE"`

	// GitHubToken authenticates repository operations. Required.
	GitHubToken string `envconfig:"GITHUB_TOKEN"`

	// GoogleTokenFile is the path to the authorized-user credential JSON
	// used for the Calendar and Gmail APIs. Read lazily, at call time.
	GoogleTokenFile string `envconfig:"GOOGLE_TOKEN_FILE" default:"token.json"`

	// API base URLs. Overridable for tests and GitHub Enterprise style setups.
	GitHubAPIURL   string `envconfig:"GITHUB_API_URL" default:"https://api.github.com"`
	CalendarAPIURL string `envconfig:"CALENDAR_API_URL" default:"https://www.googleapis.com/calendar/v3"`
	GmailAPIURL    string `envconfig:"GMAIL_API_URL" default:"https://gmail.googleapis.com/gmail/v1"`

	HTTPClientTimeout        time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"30s"`
	OtelExporterOtlpEndpoint string        `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelExporterOtlpInsecure bool          `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
	LogLevel                 string        `envconfig:"LOG_LEVEL" default:"info"`
}

// ParsedLogLevel returns the slog.Level based on the configured LogLevel string.
func (c *Config) ParsedLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		fallthrough
	default:
		return slog.LevelInfo
	}
}

// Load loads configuration from environment variables, then fills gaps from
// the YAML file named by ASSISTANT_MCP_CONFIG_FILE (if any), and validates
// that the GitHub token is present.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("assistant_mcp", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if cfg.ConfigFilePath != "" {
		yamlFile, err := os.ReadFile(cfg.ConfigFilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", cfg.ConfigFilePath, err)
		}

		var fileCfg FileConfig
		if err := yaml.Unmarshal(yamlFile, &fileCfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file '%s': %w", cfg.ConfigFilePath, err)
		}

		applyFileConfig(&cfg, fileCfg)
	}

	if cfg.GitHubToken == "" {
		return nil, ErrMissingGitHubToken
	}

	return &cfg, nil
}

// applyFileConfig fills cfg from the file wherever the corresponding
// environment variable was not set. Env always wins over file; file wins
// over built-in defaults. envconfig accepts both the prefixed and the bare
// variable name, so both are checked here.
func applyFileConfig(cfg *Config, fileCfg FileConfig) {
	if fileCfg.GitHubToken != "" && !envSet("GITHUB_TOKEN") {
		cfg.GitHubToken = fileCfg.GitHubToken
	}
	if fileCfg.GoogleTokenFile != "" && !envSet("GOOGLE_TOKEN_FILE") {
		cfg.GoogleTokenFile = fileCfg.GoogleTokenFile
	}
	if fileCfg.GitHubAPIURL != "" && !envSet("GITHUB_API_URL") {
		cfg.GitHubAPIURL = fileCfg.GitHubAPIURL
	}
}

func envSet(name string) bool {
	if _, ok := os.LookupEnv("ASSISTANT_MCP_" + name); ok {
		return true
	}
	_, ok := os.LookupEnv(name)
	return ok
}
