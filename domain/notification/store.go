package notification

import (
	"context"

	"github.com/google/uuid"

	"github.com/vantahq/jobscout/domain/store"
)

// Store is append-only: notifications are inserted, never updated or
// deleted, except for the read marker.
type Store interface {
	Find(ctx context.Context, options ...store.Option) ([]*Notification, error)
	Save(ctx context.Context, n *Notification) error
	Count(ctx context.Context, options ...store.Option) (int64, error)
}

// WithKind filters notifications by kind.
func WithKind(kind Kind) store.Option {
	return store.WithCondition("kind", string(kind))
}

// WithRecipient filters notifications by user.
func WithRecipient(userID uuid.UUID) store.Option {
	return store.WithCondition("user_id", userID.String())
}
