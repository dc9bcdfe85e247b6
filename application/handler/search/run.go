// Package search handles queued search orchestration tasks.
package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vantahq/jobscout/application/handler"
	"github.com/vantahq/jobscout/application/service"
)

// Run handles the search.run task operation. It executes the full
// daily pipeline for the user named in the payload.
type Run struct {
	search *service.Search
	logger *slog.Logger
}

// NewRun creates a new Run handler.
func NewRun(search *service.Search, logger *slog.Logger) *Run {
	return &Run{search: search, logger: logger}
}

// Execute processes the search.run task.
func (h *Run) Execute(ctx context.Context, payload map[string]any) error {
	userID, err := handler.ExtractUUID(payload, "user_id")
	if err != nil {
		return err
	}

	result, err := h.search.RunDaily(ctx, userID)
	if err != nil {
		return fmt.Errorf("run daily search: %w", err)
	}

	h.logger.Info("search run handled",
		slog.String("user_id", userID.String()),
		slog.Int("preferences", result.PrefsRun()),
		slog.Int("inserted", result.Inserted()),
		slog.Bool("digest", result.DigestBuilt()),
	)
	return nil
}
