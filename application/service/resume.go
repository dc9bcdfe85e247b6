package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vantahq/jobscout/domain/job"
	"github.com/vantahq/jobscout/domain/notification"
	"github.com/vantahq/jobscout/domain/profile"
	"github.com/vantahq/jobscout/domain/resume"
	"github.com/vantahq/jobscout/domain/store"
	"github.com/vantahq/jobscout/domain/task"
	"github.com/vantahq/jobscout/infrastructure/extraction"
	"github.com/vantahq/jobscout/infrastructure/storage"
	"github.com/vantahq/jobscout/internal/database"
)

// ErrResumeNotFound indicates the resume does not exist or belongs to
// someone else.
var ErrResumeNotFound = errors.New("resume not found")

// Resume manages resume uploads, parsing, and derived versions.
type Resume struct {
	db            database.Database
	resumes       resume.Store
	profiles      profile.Store
	postings      job.PostingStore
	notifications notification.Store
	objects       storage.ObjectStore
	queue         *Queue
	logger        *slog.Logger
}

// NewResume creates a new Resume service.
func NewResume(
	db database.Database,
	resumes resume.Store,
	profiles profile.Store,
	postings job.PostingStore,
	notifications notification.Store,
	objects storage.ObjectStore,
	queue *Queue,
	logger *slog.Logger,
) *Resume {
	return &Resume{
		db:            db,
		resumes:       resumes,
		profiles:      profiles,
		postings:      postings,
		notifications: notifications,
		objects:       objects,
		queue:         queue,
		logger:        logger,
	}
}

// Upload stores the raw document, records an unparsed version, and
// queues the parse unit that fills in sections and scoring later.
func (s *Resume) Upload(ctx context.Context, userID uuid.UUID, filename, contentType string, data []byte) (*resume.Version, error) {
	version := resume.NewVersion(userID, filename, contentType, "")
	key := fmt.Sprintf("resumes/%s/%s", version.ID(), filename)

	if err := s.objects.Put(ctx, key, data); err != nil {
		return nil, fmt.Errorf("store resume document: %w", err)
	}
	version.SetStorageKey(key)

	if err := s.resumes.Save(ctx, version); err != nil {
		return nil, fmt.Errorf("save resume version: %w", err)
	}

	parseTask := task.NewTask(task.OperationResumeParse, int(task.PriorityNormal), map[string]any{
		"resume_version_id": version.ID().String(),
	})
	if err := s.queue.Enqueue(ctx, parseTask); err != nil {
		return nil, fmt.Errorf("enqueue resume parse: %w", err)
	}

	s.logger.Info("resume uploaded",
		slog.String("resume_version_id", version.ID().String()),
		slog.String("filename", filename),
	)
	return version, nil
}

// Parse extracts text from the stored document, segments it, scores it,
// and marks the version as the user's parsed base resume. When the
// user's profile exists but has no skills yet, the parsed skills
// backfill it.
func (s *Resume) Parse(ctx context.Context, versionID uuid.UUID) error {
	version, err := s.resumes.Get(ctx, versionID)
	if err != nil {
		return fmt.Errorf("load resume version: %w", err)
	}
	if version.StorageKey() == "" {
		return fmt.Errorf("resume %s has no storage key", versionID)
	}

	data, err := s.objects.Get(ctx, version.StorageKey())
	if err != nil {
		return fmt.Errorf("fetch resume document: %w", err)
	}

	text := extraction.ExtractText(version.ContentType(), version.OriginalFilename(), data)
	parsed := resume.ParseText(text)
	atsScore := resume.EstimateATSScore(parsed)

	return database.InTransaction(ctx, s.db, func(ctx context.Context) error {
		version.MarkParsed(parsed, atsScore)
		if err := s.resumes.Save(ctx, version); err != nil {
			return fmt.Errorf("save parsed resume: %w", err)
		}

		if err := s.backfillProfileSkills(ctx, version.UserID(), parsed.Skills); err != nil {
			return err
		}

		s.logger.Info("resume parsed",
			slog.String("resume_version_id", versionID.String()),
			slog.Int("ats_score", atsScore),
			slog.Int("skills", len(parsed.Skills)),
		)
		return nil
	})
}

// Tailor derives a new non-base version of a resume adjusted toward a
// posting and notifies the user.
func (s *Resume) Tailor(ctx context.Context, userID, versionID uuid.UUID, jobPostingID *int64) (*resume.Version, error) {
	base, err := s.ownedResume(ctx, userID, versionID)
	if err != nil {
		return nil, err
	}

	var jobTitle string
	var jobTags []string
	if jobPostingID != nil {
		posting, err := s.postings.FindOne(ctx, store.WithID(*jobPostingID))
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return nil, fmt.Errorf("job posting %d: %w", *jobPostingID, err)
			}
			return nil, fmt.Errorf("load job posting: %w", err)
		}
		jobTitle = posting.Title()
		jobTags = posting.Tags()
	}

	tailored := resume.NewTailoredVersion(base, jobPostingID, jobTitle, jobTags)

	err = database.InTransaction(ctx, s.db, func(ctx context.Context) error {
		if err := s.resumes.Save(ctx, tailored); err != nil {
			return fmt.Errorf("save tailored resume: %w", err)
		}

		payload := map[string]any{"resume_version_id": tailored.ID().String()}
		if jobPostingID != nil {
			payload["job_posting_id"] = *jobPostingID
		}
		n := notification.New(userID, notification.KindResumeTailored, payload)
		if err := s.notifications.Save(ctx, n); err != nil {
			return fmt.Errorf("store tailored notification: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("resume tailored",
		slog.String("base_resume_id", versionID.String()),
		slog.String("tailored_resume_id", tailored.ID().String()),
	)
	return tailored, nil
}

// Optimize raises a resume's ATS score in place and notifies the user.
// Unlike Tailor it never creates a new version.
func (s *Resume) Optimize(ctx context.Context, userID, versionID uuid.UUID, emphasis string) (*resume.Version, error) {
	version, err := s.ownedResume(ctx, userID, versionID)
	if err != nil {
		return nil, err
	}

	version.Optimize(emphasis)

	err = database.InTransaction(ctx, s.db, func(ctx context.Context) error {
		if err := s.resumes.Save(ctx, version); err != nil {
			return fmt.Errorf("save optimized resume: %w", err)
		}

		n := notification.New(userID, notification.KindResumeOptimized, map[string]any{
			"resume_version_id": version.ID().String(),
			"ats_score":         version.ATSScore(),
		})
		if err := s.notifications.Save(ctx, n); err != nil {
			return fmt.Errorf("store optimized notification: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return version, nil
}

// List returns a user's resume versions.
func (s *Resume) List(ctx context.Context, userID uuid.UUID) ([]*resume.Version, error) {
	return s.resumes.Find(ctx, resume.WithOwner(userID), store.WithOrderDesc("created_at"))
}

// Get returns one of the user's resume versions, or ErrResumeNotFound.
func (s *Resume) Get(ctx context.Context, userID, versionID uuid.UUID) (*resume.Version, error) {
	return s.ownedResume(ctx, userID, versionID)
}

func (s *Resume) ownedResume(ctx context.Context, userID, versionID uuid.UUID) (*resume.Version, error) {
	version, err := s.resumes.Get(ctx, versionID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, err
	}
	if version.UserID() != userID {
		return nil, ErrResumeNotFound
	}
	return version, nil
}

func (s *Resume) backfillProfileSkills(ctx context.Context, userID uuid.UUID, skills []string) error {
	if len(skills) == 0 {
		return nil
	}

	p, err := s.profiles.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("load profile: %w", err)
	}
	if len(p.Skills()) > 0 {
		return nil
	}

	if _, err := s.profiles.Save(ctx, p.WithSkills(skills)); err != nil {
		return fmt.Errorf("backfill profile skills: %w", err)
	}
	return nil
}
