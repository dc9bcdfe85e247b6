package persistence

import (
	"github.com/vantahq/jobscout/internal/database"
)

// allModels lists every persisted model in migration order.
func allModels() []any {
	return []any{
		&UserModel{},
		&ProfileModel{},
		&CompanyModel{},
		&JobPostingModel{},
		&PostingEnrichmentModel{},
		&ResumeVersionModel{},
		&NotificationModel{},
		&SearchPrefModel{},
		&TaskModel{},
	}
}

// AutoMigrate runs GORM auto migration for all models.
func AutoMigrate(db database.Database) error {
	return db.GORM().AutoMigrate(allModels()...)
}
