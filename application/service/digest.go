package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vantahq/jobscout/domain/job"
	"github.com/vantahq/jobscout/domain/match"
	"github.com/vantahq/jobscout/domain/notification"
	"github.com/vantahq/jobscout/domain/store"
	"github.com/vantahq/jobscout/internal/database"
)

// Digest assembles ranked daily digest notifications.
type Digest struct {
	enrichments   match.EnrichmentStore
	postings      job.PostingStore
	companies     job.CompanyStore
	notifications notification.Store
	logger        *slog.Logger
}

// NewDigest creates a new Digest service.
func NewDigest(
	enrichments match.EnrichmentStore,
	postings job.PostingStore,
	companies job.CompanyStore,
	notifications notification.Store,
	logger *slog.Logger,
) *Digest {
	return &Digest{
		enrichments:   enrichments,
		postings:      postings,
		companies:     companies,
		notifications: notifications,
		logger:        logger,
	}
}

// Build stores a daily digest listing the user's top-scored postings.
// An enrichment whose posting has since disappeared is skipped. Every
// call creates a fresh notification; deciding whether a digest is due
// at all is the caller's job.
func (s *Digest) Build(ctx context.Context, userID uuid.UUID, limit int) (*notification.Notification, error) {
	options := append(match.WithTopFit(limit), match.WithUser(userID))
	enrichments, err := s.enrichments.Find(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("load top enrichments: %w", err)
	}

	items := make([]map[string]any, 0, len(enrichments))
	for _, enrichment := range enrichments {
		posting, err := s.postings.FindOne(ctx, store.WithID(enrichment.JobPostingID()))
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				s.logger.Debug("digest skipping removed posting",
					slog.Int64("job_posting_id", enrichment.JobPostingID()),
				)
				continue
			}
			return nil, fmt.Errorf("load posting %d: %w", enrichment.JobPostingID(), err)
		}

		items = append(items, map[string]any{
			"job_id":    fmt.Sprintf("%d", posting.ID()),
			"title":     posting.Title(),
			"company":   s.companyName(ctx, posting.CompanyID()),
			"location":  posting.Location(),
			"remote":    posting.Remote(),
			"url":       posting.URL(),
			"fit_score": enrichment.FitScore(),
		})
	}

	payload := map[string]any{
		"generated_at": time.Now().UTC().Format(time.RFC3339),
		"items":        items,
	}

	digest := notification.New(userID, notification.KindDailyDigest, payload)
	if err := s.notifications.Save(ctx, digest); err != nil {
		return nil, fmt.Errorf("store digest notification: %w", err)
	}

	s.logger.Info("daily digest created",
		slog.String("user_id", userID.String()),
		slog.Int("items", len(items)),
	)
	return digest, nil
}

func (s *Digest) companyName(ctx context.Context, companyID int64) any {
	if companyID == 0 {
		return nil
	}
	company, err := s.companies.FindOne(ctx, store.WithID(companyID))
	if err != nil {
		return nil
	}
	return company.Name()
}
