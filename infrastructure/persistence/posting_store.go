package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/vantahq/jobscout/domain/job"
	"github.com/vantahq/jobscout/internal/database"
)

// PostingStore implements job.PostingStore using GORM.
type PostingStore struct {
	database.Repository[job.Posting, JobPostingModel]
}

// NewPostingStore creates a new PostingStore.
func NewPostingStore(db database.Database) PostingStore {
	return PostingStore{
		Repository: database.NewRepository[job.Posting, JobPostingModel](db, PostingMapper{}, "job posting"),
	}
}

// Save creates a new posting or updates an existing one.
// Callers resolve the (source, source_id) identity before saving, so a
// zero ID always means a first sighting.
func (s PostingStore) Save(ctx context.Context, posting job.Posting) (job.Posting, error) {
	model := s.Mapper().ToModel(posting)
	now := time.Now().UTC()

	if model.ID == 0 {
		model.CreatedAt = now
		model.UpdatedAt = now
		if result := s.DB(ctx).Create(&model); result.Error != nil {
			return job.Posting{}, fmt.Errorf("create job posting: %w", result.Error)
		}
	} else {
		model.UpdatedAt = now
		if result := s.DB(ctx).Save(&model); result.Error != nil {
			return job.Posting{}, fmt.Errorf("update job posting: %w", result.Error)
		}
	}

	return s.Mapper().ToDomain(model), nil
}
