package persistence

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/vantahq/jobscout/domain/job"
	"github.com/vantahq/jobscout/domain/match"
	"github.com/vantahq/jobscout/domain/notification"
	"github.com/vantahq/jobscout/domain/profile"
	"github.com/vantahq/jobscout/domain/resume"
	"github.com/vantahq/jobscout/domain/searchpref"
	"github.com/vantahq/jobscout/domain/task"
	"github.com/vantahq/jobscout/domain/user"
)

// encodeJSON serializes a value for a text column. Encoding failures
// degrade to an empty JSON document rather than corrupting the row.
func encodeJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func decodeStrings(raw string) []string {
	if raw == "" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil
	}
	return values
}

func decodeFloatMap(raw string) map[string]float64 {
	if raw == "" {
		return nil
	}
	var m map[string]float64
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil
	}
	return m
}

func decodeStringMap(raw string) map[string]string {
	if raw == "" {
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil
	}
	return m
}

func decodeAnyMap(raw string) map[string]any {
	if raw == "" {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil
	}
	return m
}

// int64Ptr maps the zero value to a NULL column.
func int64Ptr(v int64) *int64 {
	if v == 0 {
		return nil
	}
	return &v
}

func int64Value(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

// timePtr maps the zero time to a NULL column.
func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func timeValue(p *time.Time) time.Time {
	if p == nil {
		return time.Time{}
	}
	return *p
}

func parseUUID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// UserMapper converts between user.User and UserModel.
type UserMapper struct{}

// ToDomain converts a model to a domain user.
func (UserMapper) ToDomain(m UserModel) user.User {
	return user.Reconstruct(parseUUID(m.ID), m.Email, m.FullName, m.CreatedAt)
}

// ToModel converts a domain user to a model.
func (UserMapper) ToModel(u user.User) UserModel {
	return UserModel{
		ID:        u.ID().String(),
		Email:     u.Email(),
		FullName:  u.FullName(),
		CreatedAt: u.CreatedAt(),
	}
}

// ProfileMapper converts between profile.Profile and ProfileModel.
type ProfileMapper struct{}

// ToDomain converts a model to a domain profile.
func (ProfileMapper) ToDomain(m ProfileModel) profile.Profile {
	return profile.ReconstructProfile(
		m.ID,
		parseUUID(m.UserID),
		m.Headline,
		m.Summary,
		decodeStrings(m.Skills),
		decodeStrings(m.Locations),
		m.RemoteOnly,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

// ToModel converts a domain profile to a model.
func (ProfileMapper) ToModel(p profile.Profile) ProfileModel {
	return ProfileModel{
		ID:         p.ID(),
		UserID:     p.UserID().String(),
		Headline:   p.Headline(),
		Summary:    p.Summary(),
		Skills:     encodeJSON(p.Skills()),
		Locations:  encodeJSON(p.Locations()),
		RemoteOnly: p.RemoteOnly(),
		CreatedAt:  p.CreatedAt(),
		UpdatedAt:  p.UpdatedAt(),
	}
}

// CompanyMapper converts between job.Company and CompanyModel.
type CompanyMapper struct{}

// ToDomain converts a model to a domain company.
func (CompanyMapper) ToDomain(m CompanyModel) job.Company {
	domain := ""
	if m.Domain != nil {
		domain = *m.Domain
	}
	return job.ReconstructCompany(m.ID, m.Name, domain, m.Industry, m.CreatedAt, m.UpdatedAt)
}

// ToModel converts a domain company to a model.
func (CompanyMapper) ToModel(c job.Company) CompanyModel {
	var domain *string
	if c.Domain() != "" {
		d := c.Domain()
		domain = &d
	}
	return CompanyModel{
		ID:        c.ID(),
		Name:      c.Name(),
		Domain:    domain,
		Industry:  c.Industry(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}

// PostingMapper converts between job.Posting and JobPostingModel.
type PostingMapper struct{}

// ToDomain converts a model to a domain posting.
func (PostingMapper) ToDomain(m JobPostingModel) job.Posting {
	return job.ReconstructPosting(
		m.ID,
		job.Provider(m.Source),
		m.SourceID,
		int64Value(m.CompanyID),
		m.Title,
		m.URL,
		m.Location,
		m.Remote,
		m.JDRaw,
		m.JDClean,
		int64Value(m.SalaryMinCents),
		int64Value(m.SalaryMaxCents),
		m.Currency,
		decodeStrings(m.Tags),
		timeValue(m.PostedAt),
		timeValue(m.ScrapedAt),
		m.CreatedAt,
		m.UpdatedAt,
	)
}

// ToModel converts a domain posting to a model.
func (PostingMapper) ToModel(p job.Posting) JobPostingModel {
	return JobPostingModel{
		ID:             p.ID(),
		Source:         string(p.Source()),
		SourceID:       p.SourceID(),
		CompanyID:      int64Ptr(p.CompanyID()),
		Title:          p.Title(),
		URL:            p.URL(),
		Location:       p.Location(),
		Remote:         p.Remote(),
		JDRaw:          p.RawDescription(),
		JDClean:        p.CleanDescription(),
		SalaryMinCents: int64Ptr(p.SalaryMinCents()),
		SalaryMaxCents: int64Ptr(p.SalaryMaxCents()),
		Currency:       p.Currency(),
		Tags:           encodeJSON(p.Tags()),
		PostedAt:       timePtr(p.PostedAt()),
		ScrapedAt:      timePtr(p.ScrapedAt()),
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
	}
}

// EnrichmentMapper converts between match.Enrichment and PostingEnrichmentModel.
type EnrichmentMapper struct{}

// ToDomain converts a model to a domain enrichment.
func (EnrichmentMapper) ToDomain(m PostingEnrichmentModel) *match.Enrichment {
	return match.ReconstructEnrichment(
		m.ID,
		parseUUID(m.UserID),
		m.JobPostingID,
		m.FitScore,
		decodeFloatMap(m.FitFactors),
		m.Rationale,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

// ToModel converts a domain enrichment to a model.
func (EnrichmentMapper) ToModel(e *match.Enrichment) PostingEnrichmentModel {
	return PostingEnrichmentModel{
		ID:           e.ID(),
		UserID:       e.UserID().String(),
		JobPostingID: e.JobPostingID(),
		FitScore:     e.FitScore(),
		FitFactors:   encodeJSON(e.FitFactors()),
		Rationale:    e.Rationale(),
		CreatedAt:    e.CreatedAt(),
		UpdatedAt:    e.UpdatedAt(),
	}
}

// ResumeMapper converts between resume.Version and ResumeVersionModel.
type ResumeMapper struct{}

// ToDomain converts a model to a domain resume version.
func (ResumeMapper) ToDomain(m ResumeVersionModel) *resume.Version {
	var sections resume.Sections
	if m.Sections != "" {
		_ = json.Unmarshal([]byte(m.Sections), &sections)
	}
	return resume.ReconstructVersion(
		parseUUID(m.ID),
		parseUUID(m.UserID),
		m.JobPostingID,
		m.BaseFlag,
		m.OriginalFilename,
		m.ContentType,
		m.StorageKey,
		sections,
		decodeStrings(m.Keywords),
		m.ATSScore,
		decodeStringMap(m.DiffFromBase),
		m.CreatedAt,
		m.UpdatedAt,
	)
}

// ToModel converts a domain resume version to a model.
func (ResumeMapper) ToModel(v *resume.Version) ResumeVersionModel {
	return ResumeVersionModel{
		ID:               v.ID().String(),
		UserID:           v.UserID().String(),
		JobPostingID:     v.JobPostingID(),
		BaseFlag:         v.Base(),
		OriginalFilename: v.OriginalFilename(),
		ContentType:      v.ContentType(),
		StorageKey:       v.StorageKey(),
		Sections:         encodeJSON(v.Sections()),
		Keywords:         encodeJSON(v.Keywords()),
		ATSScore:         v.ATSScore(),
		DiffFromBase:     encodeJSON(v.DiffFromBase()),
		CreatedAt:        v.CreatedAt(),
		UpdatedAt:        v.UpdatedAt(),
	}
}

// NotificationMapper converts between notification.Notification and NotificationModel.
type NotificationMapper struct{}

// ToDomain converts a model to a domain notification.
func (NotificationMapper) ToDomain(m NotificationModel) *notification.Notification {
	return notification.Reconstruct(
		m.ID,
		parseUUID(m.UserID),
		notification.Kind(m.Kind),
		decodeAnyMap(m.Payload),
		m.ReadAt,
		m.CreatedAt,
	)
}

// ToModel converts a domain notification to a model.
func (NotificationMapper) ToModel(n *notification.Notification) NotificationModel {
	return NotificationModel{
		ID:        n.ID(),
		UserID:    n.UserID().String(),
		Kind:      string(n.Kind()),
		Payload:   encodeJSON(n.Payload()),
		ReadAt:    n.ReadAt(),
		CreatedAt: n.CreatedAt(),
	}
}

// SearchPrefMapper converts between searchpref.Pref and SearchPrefModel.
type SearchPrefMapper struct{}

// ToDomain converts a model to a domain preference.
func (SearchPrefMapper) ToDomain(m SearchPrefModel) searchpref.Pref {
	return searchpref.ReconstructPref(
		parseUUID(m.ID),
		parseUUID(m.UserID),
		m.Name,
		decodeStringMap(m.Filters),
		m.ScheduleCron,
		m.Timezone,
		m.LastRunAt,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

// ToModel converts a domain preference to a model.
func (SearchPrefMapper) ToModel(p searchpref.Pref) SearchPrefModel {
	return SearchPrefModel{
		ID:           p.ID().String(),
		UserID:       p.UserID().String(),
		Name:         p.Name(),
		Filters:      encodeJSON(p.Filters()),
		ScheduleCron: p.ScheduleCron(),
		Timezone:     p.Timezone(),
		LastRunAt:    p.LastRunAt(),
		CreatedAt:    p.CreatedAt(),
		UpdatedAt:    p.UpdatedAt(),
	}
}

// TaskMapper converts between task.Task and TaskModel.
type TaskMapper struct{}

// ToDomain converts a model to a domain task.
func (TaskMapper) ToDomain(m TaskModel) task.Task {
	return task.NewTaskWithID(
		m.ID,
		m.DedupKey,
		task.Operation(m.Type),
		m.Priority,
		decodeAnyMap(m.Payload),
		m.CreatedAt,
		m.UpdatedAt,
	)
}

// ToModel converts a domain task to a model.
func (TaskMapper) ToModel(t task.Task) TaskModel {
	return TaskModel{
		ID:        t.ID(),
		DedupKey:  t.DedupKey(),
		Type:      t.Operation().String(),
		Priority:  t.Priority(),
		Payload:   encodeJSON(t.Payload()),
		CreatedAt: t.CreatedAt(),
		UpdatedAt: t.UpdatedAt(),
	}
}
