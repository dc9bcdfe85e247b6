package greenhouse

import (
	"strings"

	"github.com/vantahq/jobscout/domain/job"
)

// Normalize converts a raw board posting into the provider-agnostic
// canonical form consumed by ingestion.
func Normalize(raw Posting) job.CanonicalPosting {
	locationName := ""
	if raw.Location != nil {
		locationName = raw.Location.Name
	}
	remote := locationName != "" && strings.Contains(strings.ToLower(locationName), "remote")

	var tags []string
	for _, dept := range raw.Departments {
		if dept.Name != "" {
			tags = append(tags, dept.Name)
		}
	}

	title := raw.Title
	if title == "" {
		title = "Untitled"
	}

	url := raw.AbsoluteURL
	if url == "" {
		url = raw.JobPostURL
	}

	c := job.CanonicalPosting{
		Source:   job.ProviderGreenhouse.String(),
		SourceID: raw.ID.String(),
		Title:    title,
		URL:      url,
		Location: locationName,
		Remote:   remote,
		Tags:     tags,
		Currency: "USD",
	}

	if raw.Salary != nil {
		c.SalaryMinCents = numericCents(raw.Salary.Min)
		c.SalaryMaxCents = numericCents(raw.Salary.Max)
		if raw.Salary.Currency != "" {
			c.Currency = raw.Salary.Currency
		}
	}

	if raw.Company != nil {
		c.CompanyName = raw.Company.Name
		c.CompanyDomain = raw.Company.URL
	}

	return c
}

// NormalizeAll converts a raw posting batch.
func NormalizeAll(raw []Posting) []job.CanonicalPosting {
	normalized := make([]job.CanonicalPosting, len(raw))
	for i, r := range raw {
		normalized[i] = Normalize(r)
	}
	return normalized
}

// numericCents accepts only JSON numbers; strings and other shapes are
// dropped rather than guessed at.
func numericCents(v any) *int64 {
	switch n := v.(type) {
	case float64:
		cents := int64(n)
		return &cents
	case int64:
		return &n
	case int:
		cents := int64(n)
		return &cents
	}
	return nil
}
