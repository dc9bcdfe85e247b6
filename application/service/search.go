// Package service provides application layer services that orchestrate domain operations.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vantahq/jobscout/domain/job"
	"github.com/vantahq/jobscout/domain/searchpref"
)

// defaultDigestLimit caps how many postings a daily digest carries.
const defaultDigestLimit = 10

// ProviderFetcher pulls every open posting for one board and returns
// it in canonical form.
type ProviderFetcher interface {
	Fetch(ctx context.Context, boardToken string) ([]job.CanonicalPosting, error)
}

// SearchRunResult summarizes one orchestrated run for a user.
type SearchRunResult struct {
	prefsRun int
	inserted int
	touched  int
	digest   bool
}

// PrefsRun returns how many preferences produced a provider fetch.
func (r SearchRunResult) PrefsRun() int { return r.prefsRun }

// Inserted returns how many postings the run created.
func (r SearchRunResult) Inserted() int { return r.inserted }

// Touched returns how many distinct postings the run inserted or refreshed.
func (r SearchRunResult) Touched() int { return r.touched }

// DigestBuilt reports whether the run produced a digest notification.
func (r SearchRunResult) DigestBuilt() bool { return r.digest }

// Search runs the daily pipeline for one user: fetch each configured
// board, upsert the results, rescore what was touched, and build a
// digest when anything new arrived. One failing preference never stops
// the others.
type Search struct {
	prefs       searchpref.Store
	fetchers    map[job.Provider]ProviderFetcher
	ingestion   *Ingestion
	matching    *Matching
	digest      *Digest
	logger      *slog.Logger
	digestLimit int
}

// NewSearch creates a new Search orchestrator.
func NewSearch(
	prefs searchpref.Store,
	fetchers map[job.Provider]ProviderFetcher,
	ingestion *Ingestion,
	matching *Matching,
	digest *Digest,
	logger *slog.Logger,
) *Search {
	return &Search{
		prefs:       prefs,
		fetchers:    fetchers,
		ingestion:   ingestion,
		matching:    matching,
		digest:      digest,
		logger:      logger,
		digestLimit: defaultDigestLimit,
	}
}

// WithDigestLimit overrides how many postings a daily digest includes.
func (s *Search) WithDigestLimit(n int) *Search {
	if n > 0 {
		s.digestLimit = n
	}
	return s
}

// RunDaily executes the full pipeline for one user across all of their
// search preferences.
func (s *Search) RunDaily(ctx context.Context, userID uuid.UUID) (SearchRunResult, error) {
	result := SearchRunResult{}

	prefs, err := s.prefs.Find(ctx, searchpref.WithOwner(userID))
	if err != nil {
		return result, err
	}
	if len(prefs) == 0 {
		s.logger.Info("no search preferences for user",
			slog.String("user_id", userID.String()),
		)
		return result, nil
	}

	touched := make(map[int64]job.Posting)
	for _, pref := range prefs {
		records, ok := s.fetchPref(ctx, pref)
		if !ok {
			continue
		}
		result.prefsRun++

		upserted, err := s.ingestion.Upsert(ctx, records)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			s.logger.Warn("ingestion failed for preference",
				slog.String("search_pref_id", pref.ID().String()),
				slog.String("error", err.Error()),
			)
			continue
		}

		result.inserted += upserted.Inserted()
		for _, posting := range upserted.Postings() {
			touched[posting.ID()] = posting
		}

		if err := s.prefs.Save(ctx, pref.WithLastRunAt(time.Now().UTC())); err != nil {
			s.logger.Warn("failed to record preference run time",
				slog.String("search_pref_id", pref.ID().String()),
				slog.String("error", err.Error()),
			)
		}
	}

	if len(touched) > 0 {
		postings := make([]job.Posting, 0, len(touched))
		for _, posting := range touched {
			postings = append(postings, posting)
		}
		result.touched = len(postings)

		if err := s.matching.Rescore(ctx, userID, postings); err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			s.logger.Warn("rescoring failed",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()),
			)
		}
	}

	if result.inserted > 0 {
		if _, err := s.digest.Build(ctx, userID, s.digestLimit); err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			s.logger.Warn("digest build failed",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()),
			)
		} else {
			result.digest = true
		}
	}

	s.logger.Info("daily search run complete",
		slog.String("user_id", userID.String()),
		slog.Int("preferences", result.prefsRun),
		slog.Int("inserted", result.inserted),
		slog.Int("touched", result.touched),
	)
	return result, nil
}

// fetchPref pulls one preference's board. A preference with no board
// token, or a provider failure, yields nothing and is logged rather
// than failing the run.
func (s *Search) fetchPref(ctx context.Context, pref searchpref.Pref) ([]job.CanonicalPosting, bool) {
	token := pref.BoardToken()
	if token == "" {
		s.logger.Debug("preference has no board token, skipping",
			slog.String("search_pref_id", pref.ID().String()),
			slog.String("name", pref.Name()),
		)
		return nil, false
	}

	fetcher, ok := s.fetchers[job.ProviderGreenhouse]
	if !ok {
		s.logger.Warn("no fetcher registered for provider",
			slog.String("provider", string(job.ProviderGreenhouse)),
		)
		return nil, false
	}

	records, err := fetcher.Fetch(ctx, token)
	if err != nil {
		s.logger.Warn("provider fetch failed",
			slog.String("search_pref_id", pref.ID().String()),
			slog.String("board_token", token),
			slog.String("error", err.Error()),
		)
		return nil, false
	}
	return records, true
}
