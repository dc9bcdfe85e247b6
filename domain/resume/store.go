package resume

import (
	"context"

	"github.com/google/uuid"

	"github.com/vantahq/jobscout/domain/store"
)

// Store persists resume versions.
type Store interface {
	Get(ctx context.Context, id uuid.UUID) (*Version, error)
	Find(ctx context.Context, options ...store.Option) ([]*Version, error)
	Save(ctx context.Context, version *Version) error
}

// WithBaseOnly filters to base (uploaded) versions.
func WithBaseOnly() store.Option {
	return store.WithCondition("base_flag", true)
}

// WithOwner filters versions by user.
func WithOwner(userID uuid.UUID) store.Option {
	return store.WithCondition("user_id", userID.String())
}
