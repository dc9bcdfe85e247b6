package job

import "time"

// Posting represents one canonical job posting.
// The pair (source, source_id) uniquely identifies a posting; fields are
// overwritten in place on every later sighting and no history is kept.
type Posting struct {
	id             int64
	source         Provider
	sourceID       string
	companyID      int64
	title          string
	url            string
	location       string
	remote         bool
	jdRaw          string
	jdClean        string
	salaryMinCents int64
	salaryMaxCents int64
	currency       string
	tags           []string
	postedAt       time.Time
	scrapedAt      time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

// NewPosting creates a Posting for its first sighting.
func NewPosting(source Provider, sourceID, title, url string) Posting {
	if title == "" {
		title = "Untitled"
	}
	return Posting{
		source:   source,
		sourceID: sourceID,
		title:    title,
		url:      url,
		currency: "USD",
	}
}

// ReconstructPosting rebuilds a Posting from persisted state.
func ReconstructPosting(
	id int64,
	source Provider,
	sourceID string,
	companyID int64,
	title, url, location string,
	remote bool,
	jdRaw, jdClean string,
	salaryMinCents, salaryMaxCents int64,
	currency string,
	tags []string,
	postedAt, scrapedAt, createdAt, updatedAt time.Time,
) Posting {
	return Posting{
		id:             id,
		source:         source,
		sourceID:       sourceID,
		companyID:      companyID,
		title:          title,
		url:            url,
		location:       location,
		remote:         remote,
		jdRaw:          jdRaw,
		jdClean:        jdClean,
		salaryMinCents: salaryMinCents,
		salaryMaxCents: salaryMaxCents,
		currency:       currency,
		tags:           copyStrings(tags),
		postedAt:       postedAt,
		scrapedAt:      scrapedAt,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// ID returns the posting ID.
func (p Posting) ID() int64 { return p.id }

// Source returns the provider this posting came from.
func (p Posting) Source() Provider { return p.source }

// SourceID returns the provider-assigned identifier.
func (p Posting) SourceID() string { return p.sourceID }

// CompanyID returns the owning company ID, or 0 when no company is attached.
func (p Posting) CompanyID() int64 { return p.companyID }

// Title returns the posting title.
func (p Posting) Title() string { return p.title }

// URL returns the posting URL.
func (p Posting) URL() string { return p.url }

// Location returns the raw location string, or empty when unknown.
func (p Posting) Location() string { return p.location }

// Remote reports whether the posting is a remote role.
func (p Posting) Remote() bool { return p.remote }

// RawDescription returns the unprocessed job description.
func (p Posting) RawDescription() string { return p.jdRaw }

// CleanDescription returns the cleaned job description.
func (p Posting) CleanDescription() string { return p.jdClean }

// Description returns the cleaned description, falling back to the raw one.
func (p Posting) Description() string {
	if p.jdClean != "" {
		return p.jdClean
	}
	return p.jdRaw
}

// SalaryMinCents returns the salary floor in cents, or 0 when unknown.
func (p Posting) SalaryMinCents() int64 { return p.salaryMinCents }

// SalaryMaxCents returns the salary ceiling in cents, or 0 when unknown.
func (p Posting) SalaryMaxCents() int64 { return p.salaryMaxCents }

// Currency returns the salary currency code.
func (p Posting) Currency() string { return p.currency }

// Tags returns a copy of the normalized tag list.
func (p Posting) Tags() []string { return copyStrings(p.tags) }

// PostedAt returns when the provider published the posting.
func (p Posting) PostedAt() time.Time { return p.postedAt }

// ScrapedAt returns when the posting was last seen by ingestion.
func (p Posting) ScrapedAt() time.Time { return p.scrapedAt }

// CreatedAt returns when the posting row was created.
func (p Posting) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns when the posting row was last updated.
func (p Posting) UpdatedAt() time.Time { return p.updatedAt }

// WithID returns a copy of the posting with the given ID.
func (p Posting) WithID(id int64) Posting {
	p.id = id
	return p
}

// WithCompanyID returns a copy of the posting attached to a company.
func (p Posting) WithCompanyID(id int64) Posting {
	p.companyID = id
	return p
}

// WithLocation returns a copy of the posting with the given location.
func (p Posting) WithLocation(location string) Posting {
	p.location = location
	return p
}

// WithRemote returns a copy of the posting with the remote flag set.
func (p Posting) WithRemote(remote bool) Posting {
	p.remote = remote
	return p
}

// WithDescription returns a copy with raw and cleaned descriptions set.
func (p Posting) WithDescription(raw, clean string) Posting {
	p.jdRaw = raw
	p.jdClean = clean
	return p
}

// WithSalary returns a copy of the posting with a salary range attached.
func (p Posting) WithSalary(minCents, maxCents int64, currency string) Posting {
	p.salaryMinCents = minCents
	p.salaryMaxCents = maxCents
	if currency != "" {
		p.currency = currency
	}
	return p
}

// WithTags returns a copy of the posting with the given tags.
func (p Posting) WithTags(tags []string) Posting {
	p.tags = copyStrings(tags)
	return p
}

// WithPostedAt returns a copy with the provider publish time set.
func (p Posting) WithPostedAt(t time.Time) Posting {
	p.postedAt = t
	return p
}

// WithScrapedAt returns a copy with the last-seen time set.
func (p Posting) WithScrapedAt(t time.Time) Posting {
	p.scrapedAt = t
	return p
}

// Refresh overwrites the volatile fields from a later sighting of the same
// posting. Identity fields and createdAt are left untouched.
func (p Posting) Refresh(c CanonicalPosting, seenAt time.Time) Posting {
	if c.Title != "" {
		p.title = c.Title
	}
	if c.URL != "" {
		p.url = c.URL
	}
	if c.Location != "" {
		p.location = c.Location
	}
	p.remote = c.Remote
	p.tags = copyStrings(c.Tags)
	p.scrapedAt = seenAt
	return p
}

func copyStrings(values []string) []string {
	if values == nil {
		return nil
	}
	result := make([]string, len(values))
	copy(result, values)
	return result
}
