// Package persistence provides database storage implementations.
package persistence

import (
	"time"
)

// UserModel represents a user account in the database.
type UserModel struct {
	ID        string    `gorm:"column:id;primaryKey;size:36"`
	Email     string    `gorm:"column:email;uniqueIndex;size:255"`
	FullName  string    `gorm:"column:full_name;size:255"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// TableName returns the table name.
func (UserModel) TableName() string {
	return "users"
}

// ProfileModel represents a user profile in the database.
type ProfileModel struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID     string    `gorm:"column:user_id;uniqueIndex;size:36"`
	Headline   string    `gorm:"column:headline;size:255"`
	Summary    string    `gorm:"column:summary;type:text"`
	Skills     string    `gorm:"column:skills;type:text"`
	Locations  string    `gorm:"column:locations;type:text"`
	RemoteOnly bool      `gorm:"column:remote_only;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (ProfileModel) TableName() string {
	return "profiles"
}

// CompanyModel represents a company in the database.
type CompanyModel struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;index;size:255"`
	Domain    *string   `gorm:"column:domain;uniqueIndex;size:255"`
	Industry  string    `gorm:"column:industry;size:255"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (CompanyModel) TableName() string {
	return "companies"
}

// JobPostingModel represents a job posting in the database.
// The (source, source_id) pair is the external identity.
type JobPostingModel struct {
	ID             int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Source         string     `gorm:"column:source;uniqueIndex:idx_postings_source_source_id;size:64"`
	SourceID       string     `gorm:"column:source_id;uniqueIndex:idx_postings_source_source_id;size:255"`
	CompanyID      *int64     `gorm:"column:company_id;index"`
	Title          string     `gorm:"column:title;size:512"`
	URL            string     `gorm:"column:url;size:1024"`
	Location       string     `gorm:"column:location;size:255"`
	Remote         bool       `gorm:"column:remote_flag;default:false"`
	JDRaw          string     `gorm:"column:jd_raw;type:text"`
	JDClean        string     `gorm:"column:jd_clean;type:text"`
	SalaryMinCents *int64     `gorm:"column:salary_min_cents"`
	SalaryMaxCents *int64     `gorm:"column:salary_max_cents"`
	Currency       string     `gorm:"column:currency;size:8"`
	Tags           string     `gorm:"column:normalized_tags;type:text"`
	PostedAt       *time.Time `gorm:"column:posted_at"`
	ScrapedAt      *time.Time `gorm:"column:scraped_at"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (JobPostingModel) TableName() string {
	return "job_postings"
}

// PostingEnrichmentModel represents a per-user fit computation in the database.
type PostingEnrichmentModel struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID       string    `gorm:"column:user_id;uniqueIndex:idx_enrichments_user_posting;size:36"`
	JobPostingID int64     `gorm:"column:job_posting_id;uniqueIndex:idx_enrichments_user_posting;index"`
	FitScore     int       `gorm:"column:fit_score;index"`
	FitFactors   string    `gorm:"column:fit_factors;type:text"`
	Rationale    string    `gorm:"column:rationale;type:text"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (PostingEnrichmentModel) TableName() string {
	return "posting_enrichments"
}

// ResumeVersionModel represents a resume artifact in the database.
type ResumeVersionModel struct {
	ID               string    `gorm:"column:id;primaryKey;size:36"`
	UserID           string    `gorm:"column:user_id;index;size:36"`
	JobPostingID     *int64    `gorm:"column:job_posting_id;index"`
	BaseFlag         bool      `gorm:"column:base_flag;default:false"`
	OriginalFilename string    `gorm:"column:original_filename;size:255"`
	ContentType      string    `gorm:"column:content_type;size:255"`
	StorageKey       string    `gorm:"column:storage_key;size:1024"`
	Sections         string    `gorm:"column:sections_json;type:text"`
	Keywords         string    `gorm:"column:keywords;type:text"`
	ATSScore         int       `gorm:"column:ats_score;default:0"`
	DiffFromBase     string    `gorm:"column:diff_from_base;type:text"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (ResumeVersionModel) TableName() string {
	return "resume_versions"
}

// NotificationModel represents a notification event in the database.
type NotificationModel struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    string     `gorm:"column:user_id;index;size:36"`
	Kind      string     `gorm:"column:kind;index;size:64"`
	Payload   string     `gorm:"column:payload;type:text"`
	ReadAt    *time.Time `gorm:"column:read_at"`
	CreatedAt time.Time  `gorm:"column:created_at"`
}

// TableName returns the table name.
func (NotificationModel) TableName() string {
	return "notifications"
}

// SearchPrefModel represents a saved search preference in the database.
type SearchPrefModel struct {
	ID           string     `gorm:"column:id;primaryKey;size:36"`
	UserID       string     `gorm:"column:user_id;uniqueIndex:idx_search_prefs_user_name;size:36"`
	Name         string     `gorm:"column:name;uniqueIndex:idx_search_prefs_user_name;size:255"`
	Filters      string     `gorm:"column:filters;type:text"`
	ScheduleCron string     `gorm:"column:schedule_cron;size:64"`
	Timezone     string     `gorm:"column:timezone;size:64"`
	LastRunAt    *time.Time `gorm:"column:last_run_at"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (SearchPrefModel) TableName() string {
	return "search_prefs"
}

// TaskModel represents a queued task in the database.
type TaskModel struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	DedupKey  string    `gorm:"column:dedup_key;uniqueIndex;size:512"`
	Type      string    `gorm:"column:type;index;size:255"`
	Priority  int       `gorm:"column:priority;index"`
	Payload   string    `gorm:"column:payload;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (TaskModel) TableName() string {
	return "tasks"
}
