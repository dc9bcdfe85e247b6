package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vantahq/jobscout"
	"github.com/vantahq/jobscout/infrastructure/api"
	"github.com/vantahq/jobscout/internal/config"
	"github.com/vantahq/jobscout/internal/log"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var (
		envFile  string
		host     string
		port     int
		seedFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the jobscout server",
		Long: `Start the jobscout server: background workers, the daily search
scheduler, and the ops HTTP API.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  HOST                         Server host to bind to (default: 0.0.0.0)
  PORT                         Server port to listen on (default: 8080)
  DATA_DIR                     Data directory (default: .jobscout)
  DB_URL                       Database URL (default: sqlite:///{data_dir}/jobscout.db)
  SEED_FILE                    YAML seed file with users and search preferences
  LOG_LEVEL                    Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT                   Log format: pretty, json (default: pretty)
  WORKER_COUNT                 Task queue workers (default: 1)
  DIGEST_LIMIT                 Postings per daily digest (default: 10)

  SCHEDULER_ENABLED            Enable the daily search scheduler (default: true)
  SCHEDULER_INTERVAL_SECONDS   Dispatch interval (default: 86400)

  PROVIDER_BASE_URL            Job board API base URL override
  PROVIDER_TIMEOUT_SECONDS     Per-request timeout (default: 10)
  PROVIDER_MAX_RETRIES         Retry attempts on 5xx (default: 3)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(envFile, host, port, seedFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")
	cmd.Flags().StringVar(&seedFile, "seed-file", "", "Path to YAML seed file (default: SEED_FILE env var)")

	return cmd
}

func runServe(envFile, host string, port int, seedFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	// Flags take precedence over env vars
	cfg = applyServeOverrides(cfg, host, port, seedFile)

	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if err := cfg.EnsureStorageDir(); err != nil {
		return fmt.Errorf("create storage directory: %w", err)
	}

	logger := log.NewLogger(cfg)
	logger.SetDefault()
	slogger := logger.Slog()

	opts := append(clientOptions(cfg), jobscout.WithLogger(slogger))

	attrs := append([]slog.Attr{slog.String("version", version)}, cfg.LogAttrs()...)
	slogger.LogAttrs(context.Background(), slog.LevelInfo, "starting jobscout", attrs...)

	client, err := jobscout.New(opts...)
	if err != nil {
		return fmt.Errorf("create jobscout client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			slogger.Error("failed to close jobscout client", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if path := cfg.SeedFile(); path != "" {
		seed, err := config.LoadSeed(path)
		if err != nil {
			return fmt.Errorf("load seed file: %w", err)
		}
		if err := client.Seed(ctx, seed); err != nil {
			return fmt.Errorf("apply seed: %w", err)
		}
		slogger.Info("seed applied",
			slog.String("path", path),
			slog.Int("users", len(seed.Users)),
		)
	}

	server := api.NewServer(cfg.Addr(), slogger)
	system := api.NewSystemRouter(client.Database(), client.Tasks, slogger)
	server.Router().Mount("/", system.Routes())

	group, ctx := errgroup.WithContext(ctx)
	group.Go(server.Start)
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

// applyServeOverrides applies command line flag overrides to the config.
func applyServeOverrides(cfg config.AppConfig, host string, port int, seedFile string) config.AppConfig {
	var opts []config.AppConfigOption

	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}
	if seedFile != "" {
		opts = append(opts, config.WithSeedFile(seedFile))
	}

	return cfg.Apply(opts...)
}
