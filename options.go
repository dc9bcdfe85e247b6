package jobscout

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vantahq/jobscout/infrastructure/storage"
	"github.com/vantahq/jobscout/internal/config"
)

// clientConfig holds configuration for Client construction.
// Use newClientConfig() to create with defaults from internal/config.
type clientConfig struct {
	dbURL            string
	dataDir          string
	storageDir       string
	objects          storage.ObjectStore
	httpClient       *http.Client
	logger           *slog.Logger
	workerCount      int
	workerPollPeriod time.Duration
	digestLimit      int
	scheduler        config.SchedulerConfig
	provider         config.ProviderConfig
}

// newClientConfig creates a clientConfig with defaults from internal/config.
func newClientConfig() *clientConfig {
	return &clientConfig{
		dataDir:     config.DefaultDataDir(),
		workerCount: config.DefaultWorkerCount,
		digestLimit: config.DefaultDigestLimit,
		scheduler:   config.NewSchedulerConfig(),
		provider:    config.NewProviderConfig(),
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithSQLite configures SQLite as the database.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.dbURL = "sqlite://" + path
	}
}

// WithPostgres configures PostgreSQL as the database.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.dbURL = dsn
	}
}

// WithDatabaseURL sets the database URL directly. Supported schemes are
// sqlite:// and postgres://.
func WithDatabaseURL(url string) Option {
	return func(c *clientConfig) {
		c.dbURL = url
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithHTTPClient sets the HTTP client used for provider requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = hc
	}
}

// WithDataDir sets the data directory for document storage.
func WithDataDir(dir string) Option {
	return func(c *clientConfig) {
		c.dataDir = dir
	}
}

// WithStorageDir sets the directory for uploaded documents.
// Defaults to {dataDir}/storage.
func WithStorageDir(dir string) Option {
	return func(c *clientConfig) {
		c.storageDir = dir
	}
}

// WithObjectStore sets a custom object store for uploaded documents,
// replacing the default filesystem store.
func WithObjectStore(s storage.ObjectStore) Option {
	return func(c *clientConfig) {
		c.objects = s
	}
}

// WithWorkerCount sets the number of background worker goroutines.
// Defaults to 1 if not specified.
func WithWorkerCount(n int) Option {
	return func(c *clientConfig) {
		if n > 0 {
			c.workerCount = n
		}
	}
}

// WithWorkerPollPeriod sets how often the background workers check for
// new tasks. Defaults to 1 second. Lower values speed up task
// processing at the cost of more frequent polling, useful in tests.
func WithWorkerPollPeriod(d time.Duration) Option {
	return func(c *clientConfig) {
		c.workerPollPeriod = d
	}
}

// WithDigestLimit caps how many postings a daily digest carries.
func WithDigestLimit(n int) Option {
	return func(c *clientConfig) {
		if n > 0 {
			c.digestLimit = n
		}
	}
}

// WithSchedulerConfig sets the periodic search dispatch configuration.
func WithSchedulerConfig(cfg config.SchedulerConfig) Option {
	return func(c *clientConfig) {
		c.scheduler = cfg
	}
}

// WithSchedulerInterval sets how often search runs are dispatched.
func WithSchedulerInterval(seconds float64) Option {
	return func(c *clientConfig) {
		c.scheduler = c.scheduler.WithIntervalSeconds(seconds)
	}
}

// WithProviderConfig sets the job board provider configuration.
func WithProviderConfig(cfg config.ProviderConfig) Option {
	return func(c *clientConfig) {
		c.provider = cfg
	}
}

// WithGreenhouseBaseURL overrides the Greenhouse board API base URL,
// useful for pointing at a test server.
func WithGreenhouseBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.provider = config.NewProviderConfigWithOptions(
			config.WithProviderBaseURL(url),
			config.WithProviderTimeout(c.provider.Timeout()),
			config.WithProviderMaxRetries(c.provider.MaxRetries()),
			config.WithProviderInitialDelay(c.provider.InitialDelay()),
			config.WithProviderBackoffFactor(c.provider.BackoffFactor()),
		)
	}
}
