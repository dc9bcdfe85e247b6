// Package profile provides the user profile domain type consumed by scoring.
package profile

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Profile holds the per-user attributes the fit scorer reads.
// It is mutated only by onboarding and the resume parsing pipeline.
type Profile struct {
	id         int64
	userID     uuid.UUID
	headline   string
	summary    string
	skills     []string
	locations  []string
	remoteOnly bool
	createdAt  time.Time
	updatedAt  time.Time
}

// NewProfile creates a Profile for a user.
func NewProfile(userID uuid.UUID) Profile {
	return Profile{userID: userID}
}

// ReconstructProfile rebuilds a Profile from persisted state.
func ReconstructProfile(
	id int64,
	userID uuid.UUID,
	headline, summary string,
	skills, locations []string,
	remoteOnly bool,
	createdAt, updatedAt time.Time,
) Profile {
	return Profile{
		id:         id,
		userID:     userID,
		headline:   headline,
		summary:    summary,
		skills:     copyStrings(skills),
		locations:  copyStrings(locations),
		remoteOnly: remoteOnly,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// ID returns the profile ID.
func (p Profile) ID() int64 { return p.id }

// UserID returns the owning user ID.
func (p Profile) UserID() uuid.UUID { return p.userID }

// Headline returns the professional headline.
func (p Profile) Headline() string { return p.headline }

// Summary returns the free-form summary.
func (p Profile) Summary() string { return p.summary }

// Skills returns a copy of the skill list.
func (p Profile) Skills() []string { return copyStrings(p.skills) }

// Locations returns a copy of the preferred location list.
func (p Profile) Locations() []string { return copyStrings(p.locations) }

// RemoteOnly reports whether the user wants remote roles exclusively.
func (p Profile) RemoteOnly() bool { return p.remoteOnly }

// PrefersRemote reports whether any preferred location is literally "remote".
func (p Profile) PrefersRemote() bool {
	for _, loc := range p.locations {
		if strings.EqualFold(loc, "remote") {
			return true
		}
	}
	return false
}

// CreatedAt returns when the profile row was created.
func (p Profile) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns when the profile row was last updated.
func (p Profile) UpdatedAt() time.Time { return p.updatedAt }

// WithID returns a copy of the profile with the given ID.
func (p Profile) WithID(id int64) Profile {
	p.id = id
	return p
}

// WithHeadline returns a copy with the headline set.
func (p Profile) WithHeadline(headline string) Profile {
	p.headline = headline
	return p
}

// WithSummary returns a copy with the summary set.
func (p Profile) WithSummary(summary string) Profile {
	p.summary = summary
	return p
}

// WithSkills returns a copy with the skill list replaced.
func (p Profile) WithSkills(skills []string) Profile {
	p.skills = copyStrings(skills)
	return p
}

// WithLocations returns a copy with the preferred locations replaced.
func (p Profile) WithLocations(locations []string) Profile {
	p.locations = copyStrings(locations)
	return p
}

// WithRemoteOnly returns a copy with the remote-only flag set.
func (p Profile) WithRemoteOnly(remoteOnly bool) Profile {
	p.remoteOnly = remoteOnly
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
