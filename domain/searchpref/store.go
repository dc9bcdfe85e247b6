package searchpref

import (
	"context"

	"github.com/google/uuid"

	"github.com/vantahq/jobscout/domain/store"
)

// Store persists search preferences.
type Store interface {
	Find(ctx context.Context, options ...store.Option) ([]Pref, error)
	Save(ctx context.Context, pref Pref) error
}

// WithOwner filters preferences by user.
func WithOwner(userID uuid.UUID) store.Option {
	return store.WithCondition("user_id", userID.String())
}
