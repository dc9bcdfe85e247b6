package greenhouse

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantahq/jobscout/domain/job"
)

func TestNormalizeFullPosting(t *testing.T) {
	raw := Posting{
		ID:          json.Number("42"),
		Title:       "Senior Go Engineer",
		AbsoluteURL: "https://boards.greenhouse.io/acme/jobs/42",
		Location:    &Location{Name: "Remote - Europe"},
		Departments: []Department{{Name: "Engineering"}, {Name: ""}, {Name: "Platform"}},
		Company:     &Company{Name: "Acme", URL: "acme.io"},
		Salary:      &Salary{Min: float64(9000000), Max: float64(12000000), Currency: "EUR"},
	}

	c := Normalize(raw)
	assert.Equal(t, "greenhouse", c.Source)
	assert.Equal(t, "42", c.SourceID)
	assert.Equal(t, "Senior Go Engineer", c.Title)
	assert.Equal(t, "https://boards.greenhouse.io/acme/jobs/42", c.URL)
	assert.Equal(t, "Remote - Europe", c.Location)
	assert.True(t, c.Remote)
	assert.Equal(t, []string{"Engineering", "Platform"}, c.Tags)
	require.NotNil(t, c.SalaryMinCents)
	assert.Equal(t, int64(9000000), *c.SalaryMinCents)
	require.NotNil(t, c.SalaryMaxCents)
	assert.Equal(t, int64(12000000), *c.SalaryMaxCents)
	assert.Equal(t, "EUR", c.Currency)
	assert.Equal(t, "Acme", c.CompanyName)
	assert.Equal(t, "acme.io", c.CompanyDomain)
}

func TestNormalizeDefaults(t *testing.T) {
	c := Normalize(Posting{ID: json.Number("7"), JobPostURL: "https://example.com/7"})
	assert.Equal(t, "Untitled", c.Title)
	assert.Equal(t, "https://example.com/7", c.URL, "falls back to job_post_url")
	assert.Empty(t, c.Location)
	assert.False(t, c.Remote)
	assert.Nil(t, c.SalaryMinCents)
	assert.Equal(t, "USD", c.Currency)
	assert.False(t, c.HasCompany())
}

func TestNormalizeRemoteDetectionIsCaseInsensitive(t *testing.T) {
	onsite := Normalize(Posting{ID: json.Number("1"), Location: &Location{Name: "Berlin"}})
	assert.False(t, onsite.Remote)

	remote := Normalize(Posting{ID: json.Number("2"), Location: &Location{Name: "REMOTE (US)"}})
	assert.True(t, remote.Remote)
}

func TestNormalizeIgnoresNonNumericSalary(t *testing.T) {
	c := Normalize(Posting{
		ID:     json.Number("3"),
		Salary: &Salary{Min: "competitive", Max: float64(100)},
	})
	assert.Nil(t, c.SalaryMinCents)
	require.NotNil(t, c.SalaryMaxCents)
	assert.Equal(t, int64(100), *c.SalaryMaxCents)
}

func TestNormalizeMissingIDYieldsEmptySourceID(t *testing.T) {
	c := Normalize(Posting{Title: "No ID"})
	assert.Empty(t, c.SourceID)
}

func TestNormalizeAll(t *testing.T) {
	all := NormalizeAll([]Posting{
		{ID: json.Number("1"), Title: "A"},
		{ID: json.Number("2"), Title: "B"},
	})
	require.Len(t, all, 2)
	assert.Equal(t, job.ProviderGreenhouse.String(), all[0].Source)
	assert.Equal(t, "2", all[1].SourceID)
}
