package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vantahq/jobscout/domain/resume"
	"github.com/vantahq/jobscout/internal/database"
)

// ResumeStore implements resume.Store using GORM.
type ResumeStore struct {
	database.Repository[*resume.Version, ResumeVersionModel]
}

// NewResumeStore creates a new ResumeStore.
func NewResumeStore(db database.Database) ResumeStore {
	return ResumeStore{
		Repository: database.NewRepository[*resume.Version, ResumeVersionModel](db, ResumeMapper{}, "resume version"),
	}
}

// Get retrieves a resume version by ID.
func (s ResumeStore) Get(ctx context.Context, id uuid.UUID) (*resume.Version, error) {
	var model ResumeVersionModel
	result := s.DB(ctx).Where("id = ?", id.String()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: resume version %s", database.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get resume version: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}

// Save creates a new resume version or updates an existing one.
// Versions are keyed by a caller-assigned UUID, so Save always upserts
// on the primary key.
func (s ResumeStore) Save(ctx context.Context, version *resume.Version) error {
	model := s.Mapper().ToModel(version)
	now := time.Now().UTC()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
	}
	model.UpdatedAt = now

	if result := s.DB(ctx).Save(&model); result.Error != nil {
		return fmt.Errorf("save resume version: %w", result.Error)
	}
	return nil
}
