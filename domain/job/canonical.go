package job

// CanonicalPosting is a provider-agnostic normalized posting record.
// Normalizers produce it and the ingestion engine consumes it; it is a
// plain value object and is never persisted as-is.
//
// A zero SourceID marks a record the provider did not assign an
// identifier to; ingestion skips such records silently.
type CanonicalPosting struct {
	Source         string
	SourceID       string
	Title          string
	URL            string
	Location       string
	Remote         bool
	Tags           []string
	SalaryMinCents *int64
	SalaryMaxCents *int64
	Currency       string
	CompanyName    string
	CompanyDomain  string
}

// HasCompany reports whether the record carries any company identity.
func (c CanonicalPosting) HasCompany() bool {
	return c.CompanyName != "" || c.CompanyDomain != ""
}
