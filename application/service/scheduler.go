package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vantahq/jobscout/domain/searchpref"
	"github.com/vantahq/jobscout/domain/task"
	"github.com/vantahq/jobscout/internal/config"
)

// Scheduler dispatches one search orchestration unit per persisted
// search preference on a timer. Two preferences for the same user
// produce two dispatches; deduplication is not this layer's job.
type Scheduler struct {
	prefs    searchpref.Store
	queue    *Queue
	logger   *slog.Logger
	interval time.Duration
	enabled  bool

	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewScheduler creates a new Scheduler from config and dependencies.
func NewScheduler(
	cfg config.SchedulerConfig,
	prefs searchpref.Store,
	queue *Queue,
	logger *slog.Logger,
) *Scheduler {
	return &Scheduler{
		prefs:    prefs,
		queue:    queue,
		logger:   logger,
		interval: cfg.Interval(),
		enabled:  cfg.Enabled(),
	}
}

// Start begins periodic dispatch in a background goroutine.
// If disabled, this is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	if !s.enabled {
		s.logger.Info("scheduler disabled")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()

	s.logger.Info("scheduler started", slog.Duration("interval", s.interval))
}

// Stop cancels the background goroutine and waits for it to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) run(ctx context.Context) {
	// Tick immediately on startup.
	s.Tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick enqueues a search run for every persisted preference. The
// triggering preference id keeps dedup keys distinct, so a user with
// two preferences really does get two units.
func (s *Scheduler) Tick(ctx context.Context) {
	prefs, err := s.prefs.Find(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Error("scheduler failed to load search preferences",
			slog.String("error", err.Error()),
		)
		return
	}

	dispatched := 0
	for _, pref := range prefs {
		payload := map[string]any{
			"user_id":         pref.UserID().String(),
			"trigger_pref_id": pref.ID().String(),
		}
		t := task.NewTask(task.OperationSearchRun, int(task.PriorityBackground), payload)
		if err := s.queue.Enqueue(ctx, t); err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.Warn("scheduler failed to enqueue search run",
				slog.String("user_id", pref.UserID().String()),
				slog.String("search_pref_id", pref.ID().String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		dispatched++
	}

	s.logger.Debug("scheduler tick complete",
		slog.Int("preferences", len(prefs)),
		slog.Int("dispatched", dispatched),
	)
}
