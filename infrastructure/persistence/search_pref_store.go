package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/vantahq/jobscout/domain/searchpref"
	"github.com/vantahq/jobscout/internal/database"
)

// SearchPrefStore implements searchpref.Store using GORM.
type SearchPrefStore struct {
	database.Repository[searchpref.Pref, SearchPrefModel]
}

// NewSearchPrefStore creates a new SearchPrefStore.
func NewSearchPrefStore(db database.Database) SearchPrefStore {
	return SearchPrefStore{
		Repository: database.NewRepository[searchpref.Pref, SearchPrefModel](db, SearchPrefMapper{}, "search preference"),
	}
}

// Save creates a new preference or updates an existing one. Preferences
// carry a caller-assigned UUID, so Save upserts on the primary key.
func (s SearchPrefStore) Save(ctx context.Context, pref searchpref.Pref) error {
	model := s.Mapper().ToModel(pref)
	now := time.Now().UTC()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
	}
	model.UpdatedAt = now

	if result := s.DB(ctx).Save(&model); result.Error != nil {
		return fmt.Errorf("save search preference: %w", result.Error)
	}
	return nil
}
