package job

import (
	"context"

	"github.com/vantahq/jobscout/domain/store"
)

// PostingStore defines persistence operations for job postings.
type PostingStore interface {
	// Find retrieves postings matching the given options.
	Find(ctx context.Context, options ...store.Option) ([]Posting, error)

	// FindOne retrieves a single posting, or database.ErrNotFound.
	FindOne(ctx context.Context, options ...store.Option) (Posting, error)

	// Save creates a new posting or updates an existing one.
	Save(ctx context.Context, posting Posting) (Posting, error)

	// Count returns the number of postings matching the options.
	Count(ctx context.Context, options ...store.Option) (int64, error)

	// Exists checks whether any posting matches the options.
	Exists(ctx context.Context, options ...store.Option) (bool, error)
}

// CompanyStore defines persistence operations for companies.
type CompanyStore interface {
	// Find retrieves companies matching the given options.
	Find(ctx context.Context, options ...store.Option) ([]Company, error)

	// FindOne retrieves a single company, or database.ErrNotFound.
	FindOne(ctx context.Context, options ...store.Option) (Company, error)

	// GetOrCreate resolves a company by domain (preferred) or name,
	// inserting a new row when neither matches. Concurrent inserts of
	// the same domain are resolved by an insert-on-conflict re-read.
	GetOrCreate(ctx context.Context, company Company) (Company, error)

	// Save creates a new company or updates an existing one.
	Save(ctx context.Context, company Company) (Company, error)
}

// WithSource filters by the "source" column.
func WithSource(p Provider) store.Option {
	return store.WithCondition("source", p.String())
}

// WithSourceID filters by the "source_id" column.
func WithSourceID(id string) store.Option {
	return store.WithCondition("source_id", id)
}

// WithCompanyDomain filters by the "domain" column.
func WithCompanyDomain(domain string) store.Option {
	return store.WithCondition("domain", domain)
}

// WithCompanyName filters by the "name" column.
func WithCompanyName(name string) store.Option {
	return store.WithCondition("name", name)
}
