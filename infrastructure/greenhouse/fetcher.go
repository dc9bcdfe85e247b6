package greenhouse

import (
	"context"

	"github.com/vantahq/jobscout/domain/job"
)

// Fetcher adapts Client to the canonical provider fetch contract used
// by the application layer.
type Fetcher struct {
	client *Client
}

// NewFetcher creates a Fetcher around a configured Client.
func NewFetcher(client *Client) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch pulls every posting for a board and normalizes it.
func (f *Fetcher) Fetch(ctx context.Context, boardToken string) ([]job.CanonicalPosting, error) {
	raw, err := f.client.FetchBoard(ctx, boardToken)
	if err != nil {
		return nil, err
	}
	return NormalizeAll(raw), nil
}
