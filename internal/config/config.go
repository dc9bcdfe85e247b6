// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultHost                  = "0.0.0.0"
	DefaultPort                  = 8080
	DefaultLogLevel              = "INFO"
	DefaultWorkerCount           = 1
	DefaultDigestLimit           = 10
	DefaultStorageSubdir         = "storage"
	DefaultSchedulerInterval     = 86400.0 // seconds
	DefaultSchedulerPollInterval = 10.0    // seconds
	DefaultProviderTimeout       = 10 * time.Second
	DefaultProviderMaxRetries    = 3
	DefaultProviderInitialDelay  = 500 * time.Millisecond
	DefaultProviderBackoffFactor = 2.0
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// SchedulerConfig configures the periodic search dispatcher.
type SchedulerConfig struct {
	enabled             bool
	intervalSeconds     float64
	pollIntervalSeconds float64
}

// NewSchedulerConfig creates a new SchedulerConfig with defaults.
func NewSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		enabled:             true,
		intervalSeconds:     DefaultSchedulerInterval,
		pollIntervalSeconds: DefaultSchedulerPollInterval,
	}
}

// Enabled returns whether the scheduler is enabled.
func (s SchedulerConfig) Enabled() bool { return s.enabled }

// Interval returns the dispatch interval as a duration.
func (s SchedulerConfig) Interval() time.Duration {
	return time.Duration(s.intervalSeconds * float64(time.Second))
}

// PollInterval returns how often workers poll the task queue.
func (s SchedulerConfig) PollInterval() time.Duration {
	return time.Duration(s.pollIntervalSeconds * float64(time.Second))
}

// WithEnabled returns a new config with the specified enabled state.
func (s SchedulerConfig) WithEnabled(enabled bool) SchedulerConfig {
	s.enabled = enabled
	return s
}

// WithIntervalSeconds returns a new config with the specified interval.
func (s SchedulerConfig) WithIntervalSeconds(seconds float64) SchedulerConfig {
	s.intervalSeconds = seconds
	return s
}

// WithPollIntervalSeconds returns a new config with the specified poll interval.
func (s SchedulerConfig) WithPollIntervalSeconds(seconds float64) SchedulerConfig {
	s.pollIntervalSeconds = seconds
	return s
}

// ProviderConfig configures outbound job board requests.
type ProviderConfig struct {
	baseURL       string
	timeout       time.Duration
	maxRetries    int
	initialDelay  time.Duration
	backoffFactor float64
}

// NewProviderConfig creates a new ProviderConfig with defaults.
func NewProviderConfig() ProviderConfig {
	return ProviderConfig{
		timeout:       DefaultProviderTimeout,
		maxRetries:    DefaultProviderMaxRetries,
		initialDelay:  DefaultProviderInitialDelay,
		backoffFactor: DefaultProviderBackoffFactor,
	}
}

// BaseURL returns an override for the provider API base URL, empty for
// the provider's public endpoint.
func (p ProviderConfig) BaseURL() string { return p.baseURL }

// Timeout returns the per-request timeout.
func (p ProviderConfig) Timeout() time.Duration { return p.timeout }

// MaxRetries returns the maximum retry count for transient faults.
func (p ProviderConfig) MaxRetries() int { return p.maxRetries }

// InitialDelay returns the first retry backoff delay.
func (p ProviderConfig) InitialDelay() time.Duration { return p.initialDelay }

// BackoffFactor returns the retry backoff multiplier.
func (p ProviderConfig) BackoffFactor() float64 { return p.backoffFactor }

// ProviderConfigOption is a functional option for ProviderConfig.
type ProviderConfigOption func(*ProviderConfig)

// WithProviderBaseURL sets the base URL override.
func WithProviderBaseURL(url string) ProviderConfigOption {
	return func(p *ProviderConfig) { p.baseURL = url }
}

// WithProviderTimeout sets the request timeout.
func WithProviderTimeout(d time.Duration) ProviderConfigOption {
	return func(p *ProviderConfig) { p.timeout = d }
}

// WithProviderMaxRetries sets the maximum retry count.
func WithProviderMaxRetries(n int) ProviderConfigOption {
	return func(p *ProviderConfig) { p.maxRetries = n }
}

// WithProviderInitialDelay sets the first retry delay.
func WithProviderInitialDelay(d time.Duration) ProviderConfigOption {
	return func(p *ProviderConfig) { p.initialDelay = d }
}

// WithProviderBackoffFactor sets the retry backoff multiplier.
func WithProviderBackoffFactor(f float64) ProviderConfigOption {
	return func(p *ProviderConfig) { p.backoffFactor = f }
}

// NewProviderConfigWithOptions creates a ProviderConfig with functional options.
func NewProviderConfigWithOptions(opts ...ProviderConfigOption) ProviderConfig {
	p := NewProviderConfig()
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// AppConfig holds the main application configuration.
type AppConfig struct {
	host        string
	port        int
	dataDir     string
	dbURL       string
	seedFile    string
	logLevel    string
	logFormat   LogFormat
	workerCount int
	digestLimit int
	scheduler   SchedulerConfig
	provider    ProviderConfig
}

// DefaultDataDir returns the default data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".jobscout"
	}
	return filepath.Join(home, ".jobscout")
}

// DefaultStorageDir returns the default object storage directory for a
// given data directory.
func DefaultStorageDir(dataDir string) string {
	return filepath.Join(dataDir, DefaultStorageSubdir)
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	dataDir := DefaultDataDir()
	return AppConfig{
		host:        DefaultHost,
		port:        DefaultPort,
		dataDir:     dataDir,
		dbURL:       "sqlite:///" + filepath.Join(dataDir, "jobscout.db"),
		logLevel:    DefaultLogLevel,
		logFormat:   LogFormatPretty,
		workerCount: DefaultWorkerCount,
		digestLimit: DefaultDigestLimit,
		scheduler:   NewSchedulerConfig(),
		provider:    NewProviderConfig(),
	}
}

// Host returns the server host to bind to.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port to listen on.
func (c AppConfig) Port() int { return c.port }

// Addr returns the combined host:port address.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// DataDir returns the data directory path.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// SeedFile returns the optional YAML seed file path.
func (c AppConfig) SeedFile() string { return c.seedFile }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// WorkerCount returns the number of background workers.
func (c AppConfig) WorkerCount() int { return c.workerCount }

// DigestLimit returns the number of postings in a daily digest.
func (c AppConfig) DigestLimit() int { return c.digestLimit }

// Scheduler returns the scheduler config.
func (c AppConfig) Scheduler() SchedulerConfig { return c.scheduler }

// Provider returns the provider client config.
func (c AppConfig) Provider() ProviderConfig { return c.provider }

// StorageDir returns the object storage directory path.
func (c AppConfig) StorageDir() string {
	return DefaultStorageDir(c.dataDir)
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (c AppConfig) EnsureDataDir() error {
	return os.MkdirAll(c.dataDir, 0o755)
}

// EnsureStorageDir creates the storage directory if it doesn't exist.
func (c AppConfig) EnsureStorageDir() error {
	return os.MkdirAll(c.StorageDir(), 0o755)
}

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithDataDir sets the data directory.
func WithDataDir(dir string) AppConfigOption {
	return func(c *AppConfig) {
		c.dataDir = dir
		// Update default DB URL when data dir changes
		if c.dbURL == "" || strings.Contains(c.dbURL, "jobscout.db") {
			c.dbURL = "sqlite:///" + filepath.Join(dir, "jobscout.db")
		}
	}
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithSeedFile sets the YAML seed file path.
func WithSeedFile(path string) AppConfigOption {
	return func(c *AppConfig) { c.seedFile = path }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithWorkerCount sets the number of background workers.
func WithWorkerCount(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.workerCount = n
		}
	}
}

// WithDigestLimit sets the digest item limit.
func WithDigestLimit(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.digestLimit = n
		}
	}
}

// WithSchedulerConfig sets the scheduler config.
func WithSchedulerConfig(s SchedulerConfig) AppConfigOption {
	return func(c *AppConfig) { c.scheduler = s }
}

// WithProviderConfig sets the provider client config.
func WithProviderConfig(p ProviderConfig) AppConfigOption {
	return func(c *AppConfig) { c.provider = p }
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	c := NewAppConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Apply returns a new AppConfig with the given options applied.
// This copies all fields from the receiver and then applies the options,
// making it safe to use when adding new fields to AppConfig.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
// Credentials embedded in the DB URL are masked.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("data_dir", c.dataDir),
		slog.String("storage_dir", c.StorageDir()),
		slog.String("log_level", c.logLevel),
		slog.String("db_url", c.maskedDBURL()),
		slog.Int("worker_count", c.workerCount),
		slog.Int("digest_limit", c.digestLimit),
		slog.Bool("scheduler_enabled", c.scheduler.Enabled()),
		slog.Duration("scheduler_interval", c.scheduler.Interval()),
	}
}

func (c AppConfig) maskedDBURL() string {
	if c.dbURL == "" {
		return "(default)"
	}
	if strings.HasPrefix(c.dbURL, "sqlite:") {
		return c.dbURL
	}
	return "postgres://***@***"
}
