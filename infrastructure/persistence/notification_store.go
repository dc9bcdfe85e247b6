package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/vantahq/jobscout/domain/notification"
	"github.com/vantahq/jobscout/internal/database"
)

// NotificationStore implements notification.Store using GORM.
type NotificationStore struct {
	database.Repository[*notification.Notification, NotificationModel]
}

// NewNotificationStore creates a new NotificationStore.
func NewNotificationStore(db database.Database) NotificationStore {
	return NotificationStore{
		Repository: database.NewRepository[*notification.Notification, NotificationModel](db, NotificationMapper{}, "notification"),
	}
}

// Save inserts a new notification or updates the read marker on an
// existing one.
func (s NotificationStore) Save(ctx context.Context, n *notification.Notification) error {
	model := s.Mapper().ToModel(n)
	if model.CreatedAt.IsZero() {
		model.CreatedAt = time.Now().UTC()
	}

	if model.ID == 0 {
		if result := s.DB(ctx).Create(&model); result.Error != nil {
			return fmt.Errorf("create notification: %w", result.Error)
		}
		return nil
	}

	if result := s.DB(ctx).Save(&model); result.Error != nil {
		return fmt.Errorf("update notification: %w", result.Error)
	}
	return nil
}
