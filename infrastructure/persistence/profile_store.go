package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vantahq/jobscout/domain/profile"
	"github.com/vantahq/jobscout/internal/database"
)

// ProfileStore implements profile.Store using GORM.
type ProfileStore struct {
	database.Repository[profile.Profile, ProfileModel]
}

// NewProfileStore creates a new ProfileStore.
func NewProfileStore(db database.Database) ProfileStore {
	return ProfileStore{
		Repository: database.NewRepository[profile.Profile, ProfileModel](db, ProfileMapper{}, "profile"),
	}
}

// FindByUser retrieves the profile for a user.
func (s ProfileStore) FindByUser(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	return s.FindOne(ctx, profile.WithUser(userID))
}

// Save creates a new profile or updates an existing one.
func (s ProfileStore) Save(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	model := s.Mapper().ToModel(p)
	now := time.Now().UTC()

	if model.ID == 0 {
		model.CreatedAt = now
		model.UpdatedAt = now
		if result := s.DB(ctx).Create(&model); result.Error != nil {
			return profile.Profile{}, fmt.Errorf("create profile: %w", result.Error)
		}
	} else {
		model.UpdatedAt = now
		if result := s.DB(ctx).Save(&model); result.Error != nil {
			return profile.Profile{}, fmt.Errorf("update profile: %w", result.Error)
		}
	}

	return s.Mapper().ToDomain(model), nil
}
