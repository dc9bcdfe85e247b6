package service

import (
	"context"
	"log/slog"

	"github.com/vantahq/jobscout/domain/store"
	"github.com/vantahq/jobscout/domain/task"
)

// TaskListParams configures task listing.
type TaskListParams struct {
	Operation *task.Operation
	Limit     int
	Offset    int
}

// Queue provides the main interface for enqueuing and managing tasks.
type Queue struct {
	store  task.Store
	logger *slog.Logger
}

// NewQueue creates a new queue service.
func NewQueue(taskStore task.Store, logger *slog.Logger) *Queue {
	return &Queue{
		store:  taskStore,
		logger: logger,
	}
}

// Enqueue adds a task to the queue.
// If a task with the same dedup_key exists, it updates the priority instead.
func (s *Queue) Enqueue(ctx context.Context, t task.Task) error {
	_, err := s.store.Save(ctx, t)
	if err != nil {
		return err
	}

	s.logger.Debug("task enqueued",
		slog.String("dedup_key", t.DedupKey()),
		slog.String("operation", t.Operation().String()),
	)
	return nil
}

// List returns pending tasks matching the given params, sorted by
// priority (highest first) then by created_at (oldest first).
func (s *Queue) List(ctx context.Context, params *TaskListParams) ([]task.Task, error) {
	var options []store.Option

	if params != nil && params.Operation != nil {
		options = append(options, task.WithOperation(*params.Operation))
	}
	if params != nil && params.Limit > 0 {
		options = append(options, store.WithPagination(params.Limit, params.Offset)...)
	}

	return s.store.FindPending(ctx, options...)
}

// Count returns the total number of pending tasks.
func (s *Queue) Count(ctx context.Context) (int64, error) {
	return s.store.CountPending(ctx)
}

// Get retrieves a task by ID.
func (s *Queue) Get(ctx context.Context, id int64) (task.Task, error) {
	return s.store.Get(ctx, id)
}
