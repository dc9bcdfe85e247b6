package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vantahq/jobscout/domain/job"
	"github.com/vantahq/jobscout/internal/database"
)

// UpsertResult reports the outcome of one ingestion batch.
type UpsertResult struct {
	inserted int
	postings []job.Posting
}

// Inserted returns the number of newly created postings.
func (r UpsertResult) Inserted() int { return r.inserted }

// Postings returns every posting the batch touched, inserted or updated.
func (r UpsertResult) Postings() []job.Posting { return r.postings }

// Ingestion deduplicates canonical posting records against the store.
// A record's (source, source_id) pair decides insert versus in-place
// refresh; records with an unknown provider or a missing source id are
// skipped, never fatal.
type Ingestion struct {
	db        database.Database
	postings  job.PostingStore
	companies job.CompanyStore
	logger    *slog.Logger
}

// NewIngestion creates a new Ingestion service.
func NewIngestion(
	db database.Database,
	postings job.PostingStore,
	companies job.CompanyStore,
	logger *slog.Logger,
) *Ingestion {
	return &Ingestion{
		db:        db,
		postings:  postings,
		companies: companies,
		logger:    logger,
	}
}

// Upsert writes a batch of canonical records inside one transaction
// scope. Malformed records (unknown provider, missing source id) are
// skipped in place so they never affect their siblings; a store error
// rolls back the whole batch.
func (s *Ingestion) Upsert(ctx context.Context, records []job.CanonicalPosting) (UpsertResult, error) {
	result := UpsertResult{}

	err := database.InTransaction(ctx, s.db, func(ctx context.Context) error {
		for _, record := range records {
			source, err := job.ParseProvider(record.Source)
			if err != nil {
				s.logger.Warn("unsupported provider",
					slog.String("provider", record.Source),
				)
				continue
			}

			if record.SourceID == "" {
				s.logger.Warn("skipping posting with no source id",
					slog.String("source", record.Source),
					slog.String("title", record.Title),
				)
				continue
			}

			posting, inserted, err := s.upsertOne(ctx, source, record)
			if err != nil {
				return fmt.Errorf("upsert posting %s/%s: %w", record.Source, record.SourceID, err)
			}

			if inserted {
				result.inserted++
			}
			result.postings = append(result.postings, posting)
		}
		return nil
	})
	if err != nil {
		return UpsertResult{}, err
	}

	return result, nil
}

func (s *Ingestion) upsertOne(ctx context.Context, source job.Provider, record job.CanonicalPosting) (job.Posting, bool, error) {
	now := time.Now().UTC()

	existing, err := s.postings.FindOne(ctx, job.WithSource(source), job.WithSourceID(record.SourceID))
	if err == nil {
		updated, err := s.postings.Save(ctx, existing.Refresh(record, now))
		if err != nil {
			return job.Posting{}, false, err
		}
		return updated, false, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return job.Posting{}, false, err
	}

	posting := job.NewPosting(source, record.SourceID, record.Title, record.URL).
		WithLocation(record.Location).
		WithRemote(record.Remote).
		WithTags(record.Tags).
		WithScrapedAt(now)

	if record.SalaryMinCents != nil || record.SalaryMaxCents != nil {
		var minCents, maxCents int64
		if record.SalaryMinCents != nil {
			minCents = *record.SalaryMinCents
		}
		if record.SalaryMaxCents != nil {
			maxCents = *record.SalaryMaxCents
		}
		posting = posting.WithSalary(minCents, maxCents, record.Currency)
	}

	if record.HasCompany() {
		company, err := s.companies.GetOrCreate(ctx, job.NewCompany(record.CompanyName, record.CompanyDomain))
		if err != nil {
			return job.Posting{}, false, err
		}
		posting = posting.WithCompanyID(company.ID())
	}

	saved, err := s.postings.Save(ctx, posting)
	if err != nil {
		return job.Posting{}, false, err
	}
	return saved, true, nil
}
