// Package jobscout provides a library for tracking job applications:
// scheduled job board ingestion, per-user fit scoring, resume parsing
// and tailoring, and daily digest notifications.
//
// Basic usage:
//
//	client, err := jobscout.New(
//	    jobscout.WithSQLite(".jobscout/data.db"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Run the daily pipeline for a user right now
//	result, err := client.Search.RunDaily(ctx, userID)
//
//	// Upload a resume; parsing happens on the queue
//	version, err := client.Resumes.Upload(ctx, userID, "cv.pdf", "application/pdf", data)
package jobscout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/vantahq/jobscout/application/service"
	"github.com/vantahq/jobscout/domain/job"
	"github.com/vantahq/jobscout/domain/profile"
	"github.com/vantahq/jobscout/domain/searchpref"
	"github.com/vantahq/jobscout/domain/user"
	"github.com/vantahq/jobscout/infrastructure/greenhouse"
	"github.com/vantahq/jobscout/infrastructure/persistence"
	"github.com/vantahq/jobscout/infrastructure/storage"
	"github.com/vantahq/jobscout/internal/config"
	"github.com/vantahq/jobscout/internal/database"
	"github.com/vantahq/jobscout/internal/log"
)

// ErrNoDatabase indicates no database was configured.
var ErrNoDatabase = errors.New("jobscout: no database configured, use WithSQLite, WithPostgres, or WithDatabaseURL")

// Client is the main entry point for the jobscout library. Background
// workers and the search scheduler start automatically on creation.
//
// Access resources via struct fields:
//
//	client.Search.RunDaily(ctx, userID)
//	client.Resumes.Upload(ctx, userID, filename, contentType, data)
//	client.Tasks.Count(ctx)
type Client struct {
	// Public resource fields (direct service access)
	Search    *service.Search
	Ingestion *service.Ingestion
	Matching  *service.Matching
	Digests   *service.Digest
	Resumes   *service.Resume
	Tasks     *service.Queue

	db       database.Database
	users    persistence.UserStore
	profiles persistence.ProfileStore
	prefs    persistence.SearchPrefStore
	objects  storage.ObjectStore

	registry  *service.Registry
	workers   []*service.Worker
	scheduler *service.Scheduler

	logger *slog.Logger
	closed atomic.Bool
	mu     sync.Mutex
}

// New creates a new Client with the given options. The background
// workers and the scheduler are started automatically.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.dbURL == "" {
		return nil, ErrNoDatabase
	}

	logger := cfg.logger
	if logger == nil {
		logger = log.NewLogger(config.NewAppConfig()).Slog()
	}

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, cfg.dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := persistence.AutoMigrate(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), errClose)
	}

	// Object storage for uploaded resumes
	objects := cfg.objects
	if objects == nil {
		storageDir := cfg.storageDir
		if storageDir == "" {
			storageDir = config.DefaultStorageDir(cfg.dataDir)
		}
		fs, err := storage.NewFilesystem(storageDir)
		if err != nil {
			errClose := db.Close()
			return nil, errors.Join(fmt.Errorf("object storage: %w", err), errClose)
		}
		objects = fs
	}

	// Stores
	users := persistence.NewUserStore(db)
	profiles := persistence.NewProfileStore(db)
	companies := persistence.NewCompanyStore(db)
	postings := persistence.NewPostingStore(db)
	enrichments := persistence.NewEnrichmentStore(db)
	resumes := persistence.NewResumeStore(db)
	notifications := persistence.NewNotificationStore(db)
	prefs := persistence.NewSearchPrefStore(db)
	tasks := persistence.NewTaskStore(db)

	// Provider infrastructure
	fetchers := map[job.Provider]service.ProviderFetcher{
		job.ProviderGreenhouse: greenhouse.NewFetcher(newGreenhouseClient(cfg)),
	}

	// Application services
	registry := service.NewRegistry()
	queue := service.NewQueue(tasks, logger)
	ingestion := service.NewIngestion(db, postings, companies, logger)
	matching := service.NewMatching(profiles, companies, enrichments, logger)
	digest := service.NewDigest(enrichments, postings, companies, notifications, logger)
	search := service.NewSearch(prefs, fetchers, ingestion, matching, digest, logger).
		WithDigestLimit(cfg.digestLimit)
	resumeSvc := service.NewResume(db, resumes, profiles, postings, notifications, objects, queue, logger)

	pollPeriod := cfg.workerPollPeriod
	if pollPeriod <= 0 {
		pollPeriod = cfg.scheduler.PollInterval()
	}

	workers := make([]*service.Worker, 0, cfg.workerCount)
	for i := 0; i < cfg.workerCount; i++ {
		worker := service.NewWorker(tasks, registry, logger)
		if pollPeriod > 0 {
			worker.WithPollPeriod(pollPeriod)
		}
		workers = append(workers, worker)
	}

	scheduler := service.NewScheduler(cfg.scheduler, prefs, queue, logger)

	client := &Client{
		Search:    search,
		Ingestion: ingestion,
		Matching:  matching,
		Digests:   digest,
		Resumes:   resumeSvc,
		Tasks:     queue,
		db:        db,
		users:     users,
		profiles:  profiles,
		prefs:     prefs,
		objects:   objects,
		registry:  registry,
		workers:   workers,
		scheduler: scheduler,
		logger:    logger,
	}

	client.registerHandlers()

	for _, worker := range workers {
		worker.Start(ctx)
	}
	scheduler.Start(ctx)

	return client, nil
}

// Close stops the scheduler and workers and closes the database.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return service.ErrClientClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.scheduler.Stop()
	for _, worker := range c.workers {
		worker.Stop()
	}

	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}

	c.logger.Info("jobscout client closed")
	return nil
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// Database returns the underlying database handle, used by the ops
// HTTP surface for readiness probes.
func (c *Client) Database() database.Database {
	return c.db
}

// Seed provisions users, profiles, and search preferences from a seed
// definition. Seeding is idempotent: users are matched by email and
// existing profiles and preferences are left alone.
func (c *Client) Seed(ctx context.Context, seed config.Seed) error {
	for _, seedUser := range seed.Users {
		if err := c.seedUser(ctx, seedUser); err != nil {
			return fmt.Errorf("seed user %s: %w", seedUser.Email, err)
		}
	}
	return nil
}

func (c *Client) seedUser(ctx context.Context, seedUser config.SeedUser) error {
	existing, err := c.users.Find(ctx, user.WithEmail(seedUser.Email))
	if err != nil {
		return err
	}

	var account user.User
	if len(existing) > 0 {
		account = existing[0]
	} else {
		account = user.New(seedUser.Email, seedUser.FullName)
		if err := c.users.Save(ctx, account); err != nil {
			return err
		}
		c.logger.Info("seeded user", slog.String("email", seedUser.Email))
	}

	if seedUser.Profile != nil {
		if _, err := c.profiles.FindByUser(ctx, account.ID()); errors.Is(err, database.ErrNotFound) {
			p := profile.NewProfile(account.ID()).
				WithHeadline(seedUser.Profile.Headline).
				WithSummary(seedUser.Profile.Summary).
				WithSkills(seedUser.Profile.Skills).
				WithLocations(seedUser.Profile.Locations).
				WithRemoteOnly(seedUser.Profile.RemoteOnly)
			if _, err := c.profiles.Save(ctx, p); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	current, err := c.prefs.Find(ctx, searchpref.WithOwner(account.ID()))
	if err != nil {
		return err
	}
	byName := make(map[string]bool, len(current))
	for _, pref := range current {
		byName[pref.Name()] = true
	}

	for _, seedPref := range seedUser.SearchPrefs {
		if byName[seedPref.Name] {
			continue
		}
		pref := searchpref.NewPref(account.ID(), seedPref.Name, seedPref.Filters)
		if err := c.prefs.Save(ctx, pref); err != nil {
			return err
		}
	}
	return nil
}

// newGreenhouseClient builds the provider client from config.
func newGreenhouseClient(cfg *clientConfig) *greenhouse.Client {
	opts := []greenhouse.Option{
		greenhouse.WithTimeout(cfg.provider.Timeout()),
		greenhouse.WithMaxRetries(cfg.provider.MaxRetries()),
		greenhouse.WithInitialDelay(cfg.provider.InitialDelay()),
		greenhouse.WithBackoffFactor(cfg.provider.BackoffFactor()),
	}
	if cfg.provider.BaseURL() != "" {
		opts = append(opts, greenhouse.WithBaseURL(cfg.provider.BaseURL()))
	}
	if cfg.httpClient != nil {
		opts = append(opts, greenhouse.WithHTTPClient(cfg.httpClient))
	}
	return greenhouse.NewClient(opts...)
}
