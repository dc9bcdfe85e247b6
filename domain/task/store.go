package task

import (
	"context"

	"github.com/vantahq/jobscout/domain/store"
)

// Store defines the interface for Task persistence operations.
type Store interface {
	// Get retrieves a task by ID.
	Get(ctx context.Context, id int64) (Task, error)

	// FindPending retrieves pending tasks ordered by priority.
	FindPending(ctx context.Context, options ...store.Option) ([]Task, error)

	// Save creates a new task or updates an existing one.
	// Uses dedup_key for conflict resolution - if a task with the same
	// dedup_key exists, it is refreshed instead of duplicated.
	Save(ctx context.Context, task Task) (Task, error)

	// Delete removes a task.
	Delete(ctx context.Context, task Task) error

	// CountPending returns the number of pending tasks.
	CountPending(ctx context.Context, options ...store.Option) (int64, error)

	// Dequeue retrieves and removes the highest priority task.
	// Returns the task and true if one was found, or zero-value and
	// false if the queue is empty.
	Dequeue(ctx context.Context) (Task, bool, error)
}

// WithOperation filters tasks by operation.
func WithOperation(operation Operation) store.Option {
	return store.WithCondition("type", string(operation))
}
