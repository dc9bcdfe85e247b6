package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vantahq/jobscout/domain/job"
	"github.com/vantahq/jobscout/domain/match"
	"github.com/vantahq/jobscout/domain/profile"
	"github.com/vantahq/jobscout/domain/store"
	"github.com/vantahq/jobscout/internal/database"
)

// Matching computes and persists per-user fit scores for postings.
type Matching struct {
	profiles    profile.Store
	companies   job.CompanyStore
	enrichments match.EnrichmentStore
	logger      *slog.Logger
}

// NewMatching creates a new Matching service.
func NewMatching(
	profiles profile.Store,
	companies job.CompanyStore,
	enrichments match.EnrichmentStore,
	logger *slog.Logger,
) *Matching {
	return &Matching{
		profiles:    profiles,
		companies:   companies,
		enrichments: enrichments,
		logger:      logger,
	}
}

// Rescore recomputes the fit score of every given posting for one user
// and upserts the results. A failure on one posting is logged and the
// rest still score; scoring a user with no profile stores baseline
// scores rather than nothing.
func (s *Matching) Rescore(ctx context.Context, userID uuid.UUID, postings []job.Posting) error {
	userProfile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return err
	}

	companyNames := make(map[int64]string)

	for _, posting := range postings {
		view := match.PostingView{
			Title:       posting.Title(),
			CompanyName: s.companyName(ctx, companyNames, posting.CompanyID()),
			Location:    posting.Location(),
			Remote:      posting.Remote(),
			Tags:        posting.Tags(),
			Description: posting.Description(),
		}

		computation := match.Score(userProfile, view)
		enrichment := match.NewEnrichment(userID, posting.ID(), computation)

		if err := s.enrichments.Upsert(ctx, enrichment); err != nil {
			s.logger.Error("failed to store fit score",
				slog.String("user_id", userID.String()),
				slog.Int64("job_posting_id", posting.ID()),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}

// loadProfile returns the user's profile, or nil when none exists yet.
func (s *Matching) loadProfile(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	p, err := s.profiles.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// companyName resolves a posting's company display name, memoizing
// lookups across one rescore batch. Unresolvable companies score as if
// anonymous.
func (s *Matching) companyName(ctx context.Context, cache map[int64]string, companyID int64) string {
	if companyID == 0 {
		return ""
	}
	if name, ok := cache[companyID]; ok {
		return name
	}

	company, err := s.companies.FindOne(ctx, store.WithID(companyID))
	if err != nil {
		cache[companyID] = ""
		return ""
	}
	cache[companyID] = company.Name()
	return company.Name()
}
