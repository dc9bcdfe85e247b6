// Package resume handles queued resume processing tasks.
package resume

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vantahq/jobscout/application/handler"
	"github.com/vantahq/jobscout/application/service"
	"github.com/vantahq/jobscout/internal/database"
)

// Parse handles the resume.parse task operation. It extracts text from
// the stored file, derives skills and an ATS score, and marks the
// version parsed.
type Parse struct {
	resumes *service.Resume
	logger  *slog.Logger
}

// NewParse creates a new Parse handler.
func NewParse(resumes *service.Resume, logger *slog.Logger) *Parse {
	return &Parse{resumes: resumes, logger: logger}
}

// Execute processes the resume.parse task. A version that vanished
// between enqueue and execution is logged and dropped, not failed.
func (h *Parse) Execute(ctx context.Context, payload map[string]any) error {
	raw, err := handler.ExtractString(payload, "resume_version_id")
	if err != nil {
		return err
	}

	versionID, err := uuid.Parse(raw)
	if err != nil {
		h.logger.Warn("resume parse task carried malformed version id",
			slog.String("resume_version_id", raw),
		)
		return nil
	}

	if err := h.resumes.Parse(ctx, versionID); err != nil {
		if errors.Is(err, database.ErrNotFound) || errors.Is(err, service.ErrResumeNotFound) {
			h.logger.Warn("resume version no longer exists, dropping task",
				slog.String("resume_version_id", versionID.String()),
			)
			return nil
		}
		return err
	}

	h.logger.Info("resume parsed",
		slog.String("resume_version_id", versionID.String()),
	)
	return nil
}
