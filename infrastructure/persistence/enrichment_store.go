package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm/clause"

	"github.com/vantahq/jobscout/domain/match"
	"github.com/vantahq/jobscout/internal/database"
)

// EnrichmentStore implements match.EnrichmentStore using GORM.
type EnrichmentStore struct {
	database.Repository[*match.Enrichment, PostingEnrichmentModel]
}

// NewEnrichmentStore creates a new EnrichmentStore.
func NewEnrichmentStore(db database.Database) EnrichmentStore {
	return EnrichmentStore{
		Repository: database.NewRepository[*match.Enrichment, PostingEnrichmentModel](db, EnrichmentMapper{}, "posting enrichment"),
	}
}

// Upsert writes an enrichment keyed on (user_id, job_posting_id), so a
// rescore overwrites the previous computation instead of duplicating it.
func (s EnrichmentStore) Upsert(ctx context.Context, enrichment *match.Enrichment) error {
	model := s.Mapper().ToModel(enrichment)
	now := time.Now().UTC()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
	}
	model.UpdatedAt = now

	result := s.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "job_posting_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"fit_score", "fit_factors", "rationale", "updated_at"}),
	}).Create(&model)
	if result.Error != nil {
		return fmt.Errorf("upsert posting enrichment: %w", result.Error)
	}
	return nil
}
