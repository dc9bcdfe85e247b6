package profile

import (
	"context"

	"github.com/google/uuid"
	"github.com/vantahq/jobscout/domain/store"
)

// Store defines persistence operations for profiles.
type Store interface {
	// FindByUser retrieves the profile for a user, or database.ErrNotFound.
	FindByUser(ctx context.Context, userID uuid.UUID) (Profile, error)

	// Find retrieves profiles matching the given options.
	Find(ctx context.Context, options ...store.Option) ([]Profile, error)

	// Save creates a new profile or updates an existing one.
	Save(ctx context.Context, p Profile) (Profile, error)
}

// WithUser filters profiles by owner.
func WithUser(userID uuid.UUID) store.Option {
	return store.WithCondition("user_id", userID.String())
}
