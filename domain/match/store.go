package match

import (
	"context"

	"github.com/google/uuid"

	"github.com/vantahq/jobscout/domain/store"
)

// EnrichmentStore persists fit computations. Upsert keys on the
// (user_id, job_posting_id) pair so rescoring never duplicates rows.
type EnrichmentStore interface {
	Find(ctx context.Context, options ...store.Option) ([]*Enrichment, error)
	FindOne(ctx context.Context, options ...store.Option) (*Enrichment, error)
	Upsert(ctx context.Context, enrichment *Enrichment) error
	Count(ctx context.Context, options ...store.Option) (int64, error)
}

// WithJobPostingID filters enrichments by posting.
func WithJobPostingID(id int64) store.Option {
	return store.WithCondition("job_posting_id", id)
}

// WithJobPostingIDIn filters enrichments by a posting set.
func WithJobPostingIDIn(ids []int64) store.Option {
	return store.WithConditionIn("job_posting_id", ids)
}

// WithTopFit orders by fit score descending and caps the result count.
func WithTopFit(limit int) []store.Option {
	return []store.Option{store.WithOrderDesc("fit_score"), store.WithLimit(limit)}
}

// WithUser filters enrichments by owner.
func WithUser(userID uuid.UUID) store.Option {
	return store.WithCondition("user_id", userID.String())
}
