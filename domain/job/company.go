// Package job provides the job posting and company domain types.
package job

import "time"

// Company represents an employer referenced by one or more postings.
// Companies are created lazily during ingestion and never deleted here.
type Company struct {
	id        int64
	name      string
	domain    string
	industry  string
	createdAt time.Time
	updatedAt time.Time
}

// NewCompany creates a Company from a name and an optional domain.
// When the name is empty the domain doubles as the display name.
func NewCompany(name, domain string) Company {
	if name == "" {
		name = domain
	}
	if name == "" {
		name = "Unknown"
	}
	return Company{name: name, domain: domain}
}

// ReconstructCompany rebuilds a Company from persisted state.
func ReconstructCompany(id int64, name, domain, industry string, createdAt, updatedAt time.Time) Company {
	return Company{
		id:        id,
		name:      name,
		domain:    domain,
		industry:  industry,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the company ID.
func (c Company) ID() int64 { return c.id }

// Name returns the company display name.
func (c Company) Name() string { return c.name }

// Domain returns the company web domain, or empty when unknown.
func (c Company) Domain() string { return c.domain }

// Industry returns the industry annotation, or empty when unknown.
func (c Company) Industry() string { return c.industry }

// CreatedAt returns when the company row was created.
func (c Company) CreatedAt() time.Time { return c.createdAt }

// UpdatedAt returns when the company row was last updated.
func (c Company) UpdatedAt() time.Time { return c.updatedAt }

// WithID returns a copy of the company with the given ID.
func (c Company) WithID(id int64) Company {
	c.id = id
	return c
}
