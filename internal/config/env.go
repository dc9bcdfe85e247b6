package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
// Nested structs use underscore delimiter (e.g., SCHEDULER_INTERVAL_SECONDS).
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// DataDir is the data directory path.
	// Env: DATA_DIR
	// Default: ~/.jobscout
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL is the database connection URL.
	// Env: DB_URL
	// Default: sqlite:///{data_dir}/jobscout.db
	DBURL string `envconfig:"DB_URL"`

	// SeedFile is an optional YAML file of users, profiles, and search
	// preferences loaded at startup.
	// Env: SEED_FILE
	SeedFile string `envconfig:"SEED_FILE"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// WorkerCount is the number of background workers.
	// Env: WORKER_COUNT (default: 1)
	WorkerCount int `envconfig:"WORKER_COUNT" default:"1"`

	// DigestLimit is the number of postings in a daily digest.
	// Env: DIGEST_LIMIT (default: 10)
	DigestLimit int `envconfig:"DIGEST_LIMIT" default:"10"`

	// Scheduler configures the periodic search dispatcher.
	Scheduler SchedulerEnv `envconfig:"SCHEDULER"`

	// Provider configures outbound job board requests.
	Provider ProviderEnv `envconfig:"PROVIDER"`
}

// SchedulerEnv holds environment configuration for the scheduler.
type SchedulerEnv struct {
	// Enabled controls whether the scheduler is enabled.
	// Env: SCHEDULER_ENABLED (default: true)
	Enabled bool `envconfig:"ENABLED" default:"true"`

	// IntervalSeconds is the dispatch interval in seconds.
	// Env: SCHEDULER_INTERVAL_SECONDS (default: 86400)
	IntervalSeconds float64 `envconfig:"INTERVAL_SECONDS" default:"86400"`

	// PollIntervalSeconds is the worker poll interval in seconds.
	// Env: SCHEDULER_POLL_INTERVAL_SECONDS (default: 10)
	PollIntervalSeconds float64 `envconfig:"POLL_INTERVAL_SECONDS" default:"10"`
}

// ProviderEnv holds environment configuration for the provider client.
type ProviderEnv struct {
	// BaseURL overrides the provider API base URL.
	// Env: PROVIDER_BASE_URL
	BaseURL string `envconfig:"BASE_URL"`

	// Timeout is the per-request timeout in seconds.
	// Env: PROVIDER_TIMEOUT (default: 10)
	Timeout float64 `envconfig:"TIMEOUT" default:"10"`

	// MaxRetries is the maximum retry count for transient faults.
	// Env: PROVIDER_MAX_RETRIES (default: 3)
	MaxRetries int `envconfig:"MAX_RETRIES" default:"3"`

	// InitialDelay is the first retry delay in seconds.
	// Env: PROVIDER_INITIAL_DELAY (default: 0.5)
	InitialDelay float64 `envconfig:"INITIAL_DELAY" default:"0.5"`

	// BackoffFactor is the retry backoff multiplier.
	// Env: PROVIDER_BACKOFF_FACTOR (default: 2.0)
	BackoffFactor float64 `envconfig:"BACKOFF_FACTOR" default:"2.0"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()

	if e.Host != "" {
		cfg = cfg.Apply(WithHost(e.Host))
	}
	if e.Port != 0 {
		cfg = cfg.Apply(WithPort(e.Port))
	}
	if e.DataDir != "" {
		cfg = cfg.Apply(WithDataDir(e.DataDir))
	}
	if e.DBURL != "" {
		cfg = cfg.Apply(WithDBURL(e.DBURL))
	}
	if e.SeedFile != "" {
		cfg = cfg.Apply(WithSeedFile(e.SeedFile))
	}
	if e.LogLevel != "" {
		cfg = cfg.Apply(WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		cfg = cfg.Apply(WithLogFormat(parseLogFormat(e.LogFormat)))
	}
	if e.WorkerCount > 0 {
		cfg = cfg.Apply(WithWorkerCount(e.WorkerCount))
	}
	if e.DigestLimit > 0 {
		cfg = cfg.Apply(WithDigestLimit(e.DigestLimit))
	}

	cfg = cfg.Apply(WithSchedulerConfig(e.Scheduler.ToSchedulerConfig()))
	cfg = cfg.Apply(WithProviderConfig(e.Provider.ToProviderConfig()))

	return cfg
}

// ToSchedulerConfig converts SchedulerEnv to SchedulerConfig.
func (s SchedulerEnv) ToSchedulerConfig() SchedulerConfig {
	return NewSchedulerConfig().
		WithEnabled(s.Enabled).
		WithIntervalSeconds(s.IntervalSeconds).
		WithPollIntervalSeconds(s.PollIntervalSeconds)
}

// ToProviderConfig converts ProviderEnv to ProviderConfig.
func (p ProviderEnv) ToProviderConfig() ProviderConfig {
	opts := []ProviderConfigOption{
		WithProviderTimeout(time.Duration(p.Timeout * float64(time.Second))),
		WithProviderMaxRetries(p.MaxRetries),
		WithProviderInitialDelay(time.Duration(p.InitialDelay * float64(time.Second))),
		WithProviderBackoffFactor(p.BackoffFactor),
	}
	if p.BaseURL != "" {
		opts = append(opts, WithProviderBaseURL(p.BaseURL))
	}
	return NewProviderConfigWithOptions(opts...)
}

// parseLogFormat parses a log format string.
func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
