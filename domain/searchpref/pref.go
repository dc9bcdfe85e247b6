// Package searchpref holds per-user saved search preferences that
// drive the scheduled provider runs.
package searchpref

import (
	"time"

	"github.com/google/uuid"
)

// FilterBoardToken is the filter key carrying a Greenhouse board token.
const FilterBoardToken = "greenhouse_board_token"

// Pref is one named filter set for a user. The (user, name) pair is
// unique.
type Pref struct {
	id           uuid.UUID
	userID       uuid.UUID
	name         string
	filters      map[string]string
	scheduleCron string
	timezone     string
	lastRunAt    *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

// NewPref creates a preference with the default daily schedule.
func NewPref(userID uuid.UUID, name string, filters map[string]string) Pref {
	now := time.Now().UTC()
	return Pref{
		id:           uuid.New(),
		userID:       userID,
		name:         name,
		filters:      copyFilters(filters),
		scheduleCron: "0 7 * * *",
		timezone:     "UTC",
		createdAt:    now,
		updatedAt:    now,
	}
}

// ReconstructPref rebuilds a Pref from persisted state.
func ReconstructPref(
	id, userID uuid.UUID,
	name string,
	filters map[string]string,
	scheduleCron, timezone string,
	lastRunAt *time.Time,
	createdAt, updatedAt time.Time,
) Pref {
	return Pref{
		id:           id,
		userID:       userID,
		name:         name,
		filters:      copyFilters(filters),
		scheduleCron: scheduleCron,
		timezone:     timezone,
		lastRunAt:    lastRunAt,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (p Pref) ID() uuid.UUID         { return p.id }
func (p Pref) UserID() uuid.UUID     { return p.userID }
func (p Pref) Name() string          { return p.name }
func (p Pref) ScheduleCron() string  { return p.scheduleCron }
func (p Pref) Timezone() string      { return p.timezone }
func (p Pref) LastRunAt() *time.Time { return p.lastRunAt }
func (p Pref) CreatedAt() time.Time  { return p.createdAt }
func (p Pref) UpdatedAt() time.Time  { return p.updatedAt }

// Filters returns a copy of the filter map.
func (p Pref) Filters() map[string]string { return copyFilters(p.filters) }

// Filter returns one filter value, empty when unset.
func (p Pref) Filter(key string) string { return p.filters[key] }

// HasFilters reports whether any filter is set.
func (p Pref) HasFilters() bool { return len(p.filters) > 0 }

// BoardToken returns the Greenhouse board token filter, empty when the
// preference targets no board.
func (p Pref) BoardToken() string { return p.filters[FilterBoardToken] }

// WithSchedule returns a copy with the schedule replaced.
func (p Pref) WithSchedule(cron, timezone string) Pref {
	p.scheduleCron = cron
	p.timezone = timezone
	return p
}

// WithLastRunAt returns a copy recording the latest dispatch time.
func (p Pref) WithLastRunAt(t time.Time) Pref {
	p.lastRunAt = &t
	return p
}

func copyFilters(filters map[string]string) map[string]string {
	if filters == nil {
		return nil
	}
	result := make(map[string]string, len(filters))
	for k, v := range filters {
		result[k] = v
	}
	return result
}
