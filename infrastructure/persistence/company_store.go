package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm/clause"

	"github.com/vantahq/jobscout/domain/job"
	"github.com/vantahq/jobscout/internal/database"
)

// CompanyStore implements job.CompanyStore using GORM.
type CompanyStore struct {
	database.Repository[job.Company, CompanyModel]
}

// NewCompanyStore creates a new CompanyStore.
func NewCompanyStore(db database.Database) CompanyStore {
	return CompanyStore{
		Repository: database.NewRepository[job.Company, CompanyModel](db, CompanyMapper{}, "company"),
	}
}

// GetOrCreate resolves a company by domain when one is known, falling
// back to an exact name match, and inserts a new row when neither hits.
// A concurrent insert of the same domain is absorbed by the conflict
// clause and resolved with a re-read.
func (s CompanyStore) GetOrCreate(ctx context.Context, company job.Company) (job.Company, error) {
	if company.Domain() != "" {
		existing, err := s.FindOne(ctx, job.WithCompanyDomain(company.Domain()))
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, database.ErrNotFound) {
			return job.Company{}, err
		}
	} else {
		existing, err := s.FindOne(ctx, job.WithCompanyName(company.Name()))
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, database.ErrNotFound) {
			return job.Company{}, err
		}
	}

	model := s.Mapper().ToModel(company)
	now := time.Now().UTC()
	model.CreatedAt = now
	model.UpdatedAt = now

	result := s.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "domain"}},
		DoNothing: true,
	}).Create(&model)
	if result.Error != nil {
		return job.Company{}, fmt.Errorf("create company: %w", result.Error)
	}

	if result.RowsAffected == 0 && company.Domain() != "" {
		// Lost the insert race; the winning row carries the ID.
		return s.FindOne(ctx, job.WithCompanyDomain(company.Domain()))
	}

	return s.Mapper().ToDomain(model), nil
}

// Save creates a new company or updates an existing one.
func (s CompanyStore) Save(ctx context.Context, company job.Company) (job.Company, error) {
	model := s.Mapper().ToModel(company)
	now := time.Now().UTC()

	if model.ID == 0 {
		model.CreatedAt = now
		model.UpdatedAt = now
		if result := s.DB(ctx).Create(&model); result.Error != nil {
			return job.Company{}, fmt.Errorf("create company: %w", result.Error)
		}
	} else {
		model.UpdatedAt = now
		if result := s.DB(ctx).Save(&model); result.Error != nil {
			return job.Company{}, fmt.Errorf("update company: %w", result.Error)
		}
	}

	return s.Mapper().ToDomain(model), nil
}
