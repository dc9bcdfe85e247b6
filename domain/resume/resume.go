// Package resume holds resume versions and the heuristic parser that
// fills in their sections, keywords, and ATS score.
package resume

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Notification payload defaults.
const defaultOptimization = "General ATS improvements"

// Sections is the parsed structure of a resume document.
type Sections struct {
	Summary    string   `json:"summary"`
	Experience []string `json:"experience"`
	Skills     []string `json:"skills"`
	Highlights []string `json:"highlights,omitempty"`
}

// Version is one resume artifact. Base versions hold the uploaded
// document; tailored versions are derived copies and never mutate
// their base.
type Version struct {
	id               uuid.UUID
	userID           uuid.UUID
	jobPostingID     *int64
	baseFlag         bool
	originalFilename string
	contentType      string
	storageKey       string
	sections         Sections
	keywords         []string
	atsScore         int
	diffFromBase     map[string]string
	createdAt        time.Time
	updatedAt        time.Time
}

// NewVersion creates a base version for a freshly uploaded document.
// Sections stay empty until the parse task runs.
func NewVersion(userID uuid.UUID, filename, contentType, storageKey string) *Version {
	now := time.Now().UTC()
	return &Version{
		id:               uuid.New(),
		userID:           userID,
		baseFlag:         true,
		originalFilename: filename,
		contentType:      contentType,
		storageKey:       storageKey,
		createdAt:        now,
		updatedAt:        now,
	}
}

// NewTailoredVersion derives a non-base copy of base adjusted toward a
// job. jobTitle may be empty when no posting is attached.
func NewTailoredVersion(base *Version, jobPostingID *int64, jobTitle string, jobTags []string) *Version {
	now := time.Now().UTC()

	jobPhrase := jobTitle
	if jobPhrase == "" {
		jobPhrase = "target roles"
	}

	sections := base.Sections()
	summary := sections.Summary
	if summary == "" {
		summary = base.originalFilename
	}
	if summary == "" {
		summary = "Resume"
	}
	sections.Summary = fmt.Sprintf("Tailored for %s: %s", jobPhrase, summary)
	if sections.Highlights != nil && len(jobTags) > 0 {
		sections.Highlights = appendUnique(sections.Highlights, jobTags)
	}

	diffPhrase := jobTitle
	if diffPhrase == "" {
		diffPhrase = "generic use"
	}

	return &Version{
		id:               uuid.New(),
		userID:           base.userID,
		jobPostingID:     jobPostingID,
		baseFlag:         false,
		originalFilename: tailoredFilename(base.originalFilename),
		contentType:      base.contentType,
		storageKey:       base.storageKey,
		sections:         sections,
		keywords:         appendUnique(base.Keywords(), jobTags),
		atsScore:         capScore(orDefaultScore(base.atsScore) + 5),
		diffFromBase:     map[string]string{"notes": "Tailored for " + diffPhrase},
		createdAt:        now,
		updatedAt:        now,
	}
}

// ReconstructVersion rebuilds a Version from persisted state.
func ReconstructVersion(
	id uuid.UUID,
	userID uuid.UUID,
	jobPostingID *int64,
	baseFlag bool,
	originalFilename, contentType, storageKey string,
	sections Sections,
	keywords []string,
	atsScore int,
	diffFromBase map[string]string,
	createdAt, updatedAt time.Time,
) *Version {
	return &Version{
		id:               id,
		userID:           userID,
		jobPostingID:     jobPostingID,
		baseFlag:         baseFlag,
		originalFilename: originalFilename,
		contentType:      contentType,
		storageKey:       storageKey,
		sections:         sections,
		keywords:         copyStrings(keywords),
		atsScore:         atsScore,
		diffFromBase:     copyStringMap(diffFromBase),
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (v *Version) ID() uuid.UUID            { return v.id }
func (v *Version) UserID() uuid.UUID        { return v.userID }
func (v *Version) JobPostingID() *int64     { return v.jobPostingID }
func (v *Version) Base() bool               { return v.baseFlag }
func (v *Version) OriginalFilename() string { return v.originalFilename }
func (v *Version) ContentType() string      { return v.contentType }
func (v *Version) StorageKey() string       { return v.storageKey }
func (v *Version) ATSScore() int            { return v.atsScore }
func (v *Version) CreatedAt() time.Time     { return v.createdAt }
func (v *Version) UpdatedAt() time.Time     { return v.updatedAt }

// Sections returns a copy of the parsed sections.
func (v *Version) Sections() Sections {
	s := v.sections
	s.Experience = copyStrings(v.sections.Experience)
	s.Skills = copyStrings(v.sections.Skills)
	s.Highlights = copyStrings(v.sections.Highlights)
	return s
}

// Keywords returns a copy of the keyword list.
func (v *Version) Keywords() []string { return copyStrings(v.keywords) }

// DiffFromBase returns a copy of the change annotations.
func (v *Version) DiffFromBase() map[string]string { return copyStringMap(v.diffFromBase) }

// SetStorageKey records where the raw document was stored.
func (v *Version) SetStorageKey(key string) {
	v.storageKey = key
	v.updatedAt = time.Now().UTC()
}

// MarkParsed records the parser output on the version and flags it as a
// base version.
func (v *Version) MarkParsed(parsed Parsed, atsScore int) {
	v.sections = Sections{
		Summary:    parsed.Summary,
		Experience: copyStrings(parsed.Experience),
		Skills:     copyStrings(parsed.Skills),
	}
	v.keywords = copyStrings(parsed.Skills)
	v.atsScore = atsScore
	v.baseFlag = true
	v.updatedAt = time.Now().UTC()
}

// Optimize raises the ATS score by ten points, capped at 100, and
// records the emphasis in the diff annotations. The version is mutated
// in place; no derived copy is created.
func (v *Version) Optimize(emphasis string) {
	current := orDefaultScore(v.atsScore)
	v.atsScore = capScore(current + 10)
	if emphasis == "" {
		emphasis = defaultOptimization
	}
	if v.diffFromBase == nil {
		v.diffFromBase = make(map[string]string, 1)
	}
	v.diffFromBase["optimization"] = emphasis
	v.updatedAt = time.Now().UTC()
}

// tailoredFilename derives a fresh name keeping the base extension.
func tailoredFilename(base string) string {
	ext := "pdf"
	if base != "" {
		parts := strings.Split(base, ".")
		ext = parts[len(parts)-1]
	}
	return fmt.Sprintf("tailored-%s.%s", uuid.New().String()[:8], ext)
}

func orDefaultScore(score int) int {
	if score == 0 {
		return 60
	}
	return score
}

func capScore(score int) int {
	if score > 100 {
		return 100
	}
	return score
}

// appendUnique extends base with extra values, keeping first-seen order
// and dropping duplicates.
func appendUnique(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base)+len(extra))
	result := make([]string, 0, len(base)+len(extra))
	for _, value := range base {
		if _, dup := seen[value]; dup {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	for _, value := range extra {
		if _, dup := seen[value]; dup {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	return result
}

func copyStrings(values []string) []string {
	if values == nil {
		return nil
	}
	result := make([]string, len(values))
	copy(result, values)
	return result
}

func copyStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	result := make(map[string]string, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
