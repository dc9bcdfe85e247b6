package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vantahq/jobscout/domain/user"
	"github.com/vantahq/jobscout/internal/database"
)

// UserStore implements user.Store using GORM.
type UserStore struct {
	database.Repository[user.User, UserModel]
}

// NewUserStore creates a new UserStore.
func NewUserStore(db database.Database) UserStore {
	return UserStore{
		Repository: database.NewRepository[user.User, UserModel](db, UserMapper{}, "user"),
	}
}

// Get retrieves a user by ID.
func (s UserStore) Get(ctx context.Context, id uuid.UUID) (user.User, error) {
	var model UserModel
	result := s.DB(ctx).Where("id = ?", id.String()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return user.User{}, fmt.Errorf("%w: user %s", database.ErrNotFound, id)
		}
		return user.User{}, fmt.Errorf("get user: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}

// Save creates a new user or updates an existing one.
func (s UserStore) Save(ctx context.Context, u user.User) error {
	model := s.Mapper().ToModel(u)
	if model.CreatedAt.IsZero() {
		model.CreatedAt = time.Now().UTC()
	}
	if result := s.DB(ctx).Save(&model); result.Error != nil {
		return fmt.Errorf("save user: %w", result.Error)
	}
	return nil
}
