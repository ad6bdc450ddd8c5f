// Package config loads the application configuration once at startup.
//
// Values come from environment variables. An optional YAML file named by
// SENTIMENT_CONFIG_FILE supplies defaults that the environment overrides.
// Missing upstream credentials are not a load error: the sentiment client
// reports them per call as a configuration failure.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	envconfig "sentiment-analyzer/pkg/config"
)

// Default values.
const (
	DefaultWatsonVersion    = "2022-04-07"
	DefaultSentimentTimeout = 10 * time.Second
	DefaultHTTPAddr         = ":5000"
	DefaultShutdownTimeout  = 5 * time.Second
	DefaultRateLimitRPS     = 2.0
	DefaultRateLimitBurst   = 10

	minSentimentTimeout = 1 * time.Second
	maxSentimentTimeout = 2 * time.Minute
)

// Config is the complete application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Sentiment SentimentConfig `yaml:"sentiment"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig configures the inbound HTTP server.
type ServerConfig struct {
	// Addr is the listen address. Env: HTTP_ADDR. Default: ":5000"
	Addr string `yaml:"addr"`

	// ShutdownTimeout bounds graceful shutdown. Env: SHUTDOWN_TIMEOUT. Default: 5s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// Version is reported by /health and the index page. Env: VERSION. Default: "dev"
	Version string `yaml:"version"`
}

// SentimentConfig configures the Watson Natural Language Understanding client.
type SentimentConfig struct {
	// Endpoint is the full analyze URL, e.g.
	// https://api.us-south.natural-language-understanding.watson.cloud.ibm.com/instances/<id>/v1/analyze
	// Env: WATSON_API_URL (alias WATSON_NLU_URL)
	Endpoint string `yaml:"endpoint"`

	// APIKey is the IAM API key sent as basic auth password for user "apikey".
	// Env: API_KEY (alias WATSON_API_KEY)
	APIKey string `yaml:"api_key"`

	// Version is the API version date sent as the "version" query parameter.
	// Env: WATSON_VERSION. Default: "2022-04-07"
	Version string `yaml:"version"`

	// Timeout bounds the single outbound call. Env: SENTIMENT_TIMEOUT. Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}

// RateLimitConfig configures the per-client limiter on the analysis endpoint.
type RateLimitConfig struct {
	// Enabled toggles the limiter. Env: RATE_LIMIT_ENABLED. Default: true
	Enabled bool `yaml:"enabled"`

	// RequestsPerSecond is the sustained rate per client. Env: RATE_LIMIT_RPS. Default: 2
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// Burst is the bucket size per client. Env: RATE_LIMIT_BURST. Default: 10
	Burst int `yaml:"burst"`
}

// Defaults returns the configuration used when neither file nor environment set a value.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Addr:            DefaultHTTPAddr,
			ShutdownTimeout: DefaultShutdownTimeout,
			Version:         "dev",
		},
		Sentiment: SentimentConfig{
			Version: DefaultWatsonVersion,
			Timeout: DefaultSentimentTimeout,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: DefaultRateLimitRPS,
			Burst:             DefaultRateLimitBurst,
		},
	}
}

// Load builds the configuration from the optional YAML file and the environment.
func Load() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv("SENTIMENT_CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadFile overlays the YAML file at path onto cfg.
// The path comes from the operator's environment, not from user input.
func loadFile(path string, cfg *Config) error {
	// #nosec G304 -- path is provided by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// applyEnv overrides cfg with any environment variables that are set.
func applyEnv(cfg *Config) error {
	cfg.Server.Addr = envconfig.GetEnvString(cfg.Server.Addr, "HTTP_ADDR")
	cfg.Server.Version = envconfig.GetEnvString(cfg.Server.Version, "VERSION")

	cfg.Sentiment.Endpoint = envconfig.GetEnvString(cfg.Sentiment.Endpoint, "WATSON_API_URL", "WATSON_NLU_URL")
	cfg.Sentiment.APIKey = envconfig.GetEnvString(cfg.Sentiment.APIKey, "API_KEY", "WATSON_API_KEY")
	cfg.Sentiment.Version = envconfig.GetEnvString(cfg.Sentiment.Version, "WATSON_VERSION")

	cfg.RateLimit.Enabled = envconfig.GetEnvBool("RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled)
	cfg.RateLimit.RequestsPerSecond = envconfig.GetEnvFloat("RATE_LIMIT_RPS", cfg.RateLimit.RequestsPerSecond)
	cfg.RateLimit.Burst = envconfig.GetEnvInt("RATE_LIMIT_BURST", cfg.RateLimit.Burst)

	durations := []struct {
		key    string
		target *time.Duration
	}{
		{"SENTIMENT_TIMEOUT", &cfg.Sentiment.Timeout},
		{"SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout},
	}
	for _, d := range durations {
		value, ok, err := envconfig.LookupEnvDuration(d.key)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", d.key, err)
		}
		if ok {
			*d.target = value
		}
	}

	return nil
}

// Validate checks configuration correctness. Credentials are not required here.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("HTTP_ADDR cannot be empty")
	}

	if err := envconfig.ValidatePositiveDuration(c.Server.ShutdownTimeout); err != nil {
		return fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}

	if err := c.Sentiment.Validate(); err != nil {
		return err
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerSecond <= 0 {
			return fmt.Errorf("RATE_LIMIT_RPS must be positive, got %v", c.RateLimit.RequestsPerSecond)
		}
		if c.RateLimit.Burst <= 0 {
			return fmt.Errorf("RATE_LIMIT_BURST must be positive, got %d", c.RateLimit.Burst)
		}
	}

	return nil
}

// Validate checks the sentiment client settings that must hold even without credentials.
func (c *SentimentConfig) Validate() error {
	if c.Version == "" {
		return fmt.Errorf("WATSON_VERSION cannot be empty")
	}

	if err := envconfig.ValidateDurationRange(c.Timeout, minSentimentTimeout, maxSentimentTimeout); err != nil {
		return fmt.Errorf("SENTIMENT_TIMEOUT: %w", err)
	}

	return nil
}

// MissingCredentials lists the settings that must be provided before the upstream can be called.
func (c *SentimentConfig) MissingCredentials() []string {
	var missing []string
	if c.Endpoint == "" {
		missing = append(missing, "WATSON_API_URL")
	}
	if c.APIKey == "" {
		missing = append(missing, "API_KEY")
	}
	return missing
}

// Configured reports whether endpoint and API key are both present.
func (c *SentimentConfig) Configured() bool {
	return len(c.MissingCredentials()) == 0
}
