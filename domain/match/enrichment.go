package match

import (
	"time"

	"github.com/google/uuid"
)

// Enrichment is the stored fit computation for one (user, posting) pair.
// At most one enrichment exists per pair; rescoring replaces it in place.
type Enrichment struct {
	id           int64
	userID       uuid.UUID
	jobPostingID int64
	fitScore     int
	fitFactors   map[string]float64
	rationale    string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewEnrichment builds an enrichment from a computation. The rationale is
// the first three reasons joined for display.
func NewEnrichment(userID uuid.UUID, jobPostingID int64, c Computation) *Enrichment {
	now := time.Now().UTC()
	return &Enrichment{
		userID:       userID,
		jobPostingID: jobPostingID,
		fitScore:     c.Score(),
		fitFactors:   c.Factors(),
		rationale:    c.Rationale(3),
		createdAt:    now,
		updatedAt:    now,
	}
}

// ReconstructEnrichment rebuilds an enrichment from persistence.
func ReconstructEnrichment(
	id int64,
	userID uuid.UUID,
	jobPostingID int64,
	fitScore int,
	fitFactors map[string]float64,
	rationale string,
	createdAt time.Time,
	updatedAt time.Time,
) *Enrichment {
	return &Enrichment{
		id:           id,
		userID:       userID,
		jobPostingID: jobPostingID,
		fitScore:     fitScore,
		fitFactors:   fitFactors,
		rationale:    rationale,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (e *Enrichment) ID() int64            { return e.id }
func (e *Enrichment) UserID() uuid.UUID    { return e.userID }
func (e *Enrichment) JobPostingID() int64  { return e.jobPostingID }
func (e *Enrichment) FitScore() int        { return e.fitScore }
func (e *Enrichment) Rationale() string    { return e.rationale }
func (e *Enrichment) CreatedAt() time.Time { return e.createdAt }
func (e *Enrichment) UpdatedAt() time.Time { return e.updatedAt }

// FitFactors returns a copy of the per-factor ratios.
func (e *Enrichment) FitFactors() map[string]float64 {
	result := make(map[string]float64, len(e.fitFactors))
	for k, v := range e.fitFactors {
		result[k] = v
	}
	return result
}
