package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vantahq/jobscout/domain/store"
	"github.com/vantahq/jobscout/domain/task"
	"github.com/vantahq/jobscout/internal/database"
)

// TaskStore implements task.Store using GORM.
// A row's existence is its pending state; completed and failed tasks
// are deleted rather than flagged.
type TaskStore struct {
	db     database.Database
	mapper TaskMapper
}

// NewTaskStore creates a new TaskStore.
func NewTaskStore(db database.Database) TaskStore {
	return TaskStore{
		db:     db,
		mapper: TaskMapper{},
	}
}

// Get retrieves a task by ID.
func (s TaskStore) Get(ctx context.Context, id int64) (task.Task, error) {
	var model TaskModel
	result := s.db.Session(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return task.Task{}, fmt.Errorf("%w: task id %d", database.ErrNotFound, id)
		}
		return task.Task{}, fmt.Errorf("get task: %w", result.Error)
	}
	return s.mapper.ToDomain(model), nil
}

// FindPending retrieves pending tasks ordered by priority.
func (s TaskStore) FindPending(ctx context.Context, options ...store.Option) ([]task.Task, error) {
	var models []TaskModel
	db := s.db.Session(ctx).Order("priority DESC, created_at ASC")
	db = database.ApplyOptions(db, options...)
	result := db.Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("find pending tasks: %w", result.Error)
	}

	tasks := make([]task.Task, len(models))
	for i, model := range models {
		tasks[i] = s.mapper.ToDomain(model)
	}
	return tasks, nil
}

// Save creates a new task or updates an existing one.
// Uses dedup_key for conflict resolution: a duplicate dispatch refreshes
// the existing row's priority instead of duplicating it.
func (s TaskStore) Save(ctx context.Context, t task.Task) (task.Task, error) {
	model := s.mapper.ToModel(t)

	result := s.db.Session(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "dedup_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"priority", "updated_at"}),
	}).Create(&model)

	if result.Error != nil {
		return task.Task{}, fmt.Errorf("save task: %w", result.Error)
	}

	return s.mapper.ToDomain(model), nil
}

// Delete removes a task.
func (s TaskStore) Delete(ctx context.Context, t task.Task) error {
	result := s.db.Session(ctx).Delete(&TaskModel{}, t.ID())
	if result.Error != nil {
		return fmt.Errorf("delete task: %w", result.Error)
	}
	return nil
}

// CountPending returns the number of pending tasks.
func (s TaskStore) CountPending(ctx context.Context, options ...store.Option) (int64, error) {
	var count int64
	db := database.ApplyConditions(s.db.Session(ctx).Model(&TaskModel{}), options...)
	result := db.Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("count pending tasks: %w", result.Error)
	}
	return count, nil
}

// Dequeue retrieves and removes the highest priority task. The read and
// the delete share one transaction so concurrent workers never claim the
// same row.
func (s TaskStore) Dequeue(ctx context.Context) (task.Task, bool, error) {
	var model TaskModel

	err := s.db.Session(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Order("priority DESC, created_at ASC").First(&model)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return nil
			}
			return result.Error
		}
		return tx.Delete(&model).Error
	})

	if err != nil {
		return task.Task{}, false, fmt.Errorf("dequeue task: %w", err)
	}

	if model.ID == 0 {
		return task.Task{}, false, nil
	}

	return s.mapper.ToDomain(model), true, nil
}
