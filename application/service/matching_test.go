package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantahq/jobscout/domain/job"
	"github.com/vantahq/jobscout/domain/match"
	"github.com/vantahq/jobscout/domain/profile"
	"github.com/vantahq/jobscout/domain/user"
	"github.com/vantahq/jobscout/infrastructure/persistence"
	"github.com/vantahq/jobscout/internal/testdb"
)

func TestRescoreStoresEnrichmentPerPosting(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)

	users := persistence.NewUserStore(db)
	profiles := persistence.NewProfileStore(db)
	companies := persistence.NewCompanyStore(db)
	postings := persistence.NewPostingStore(db)
	enrichments := persistence.NewEnrichmentStore(db)

	u := user.New("grace@example.com", "Grace Hopper")
	require.NoError(t, users.Save(ctx, u))
	_, err := profiles.Save(ctx, profile.NewProfile(u.ID()).
		WithSkills([]string{"go", "postgres"}).
		WithRemoteOnly(true))
	require.NoError(t, err)

	goJob, err := postings.Save(ctx, job.NewPosting(job.ProviderGreenhouse, "1", "Go Engineer", "https://example.com/1").
		WithRemote(true).
		WithTags([]string{"go", "postgres"}))
	require.NoError(t, err)
	otherJob, err := postings.Save(ctx, job.NewPosting(job.ProviderGreenhouse, "2", "Accountant", "https://example.com/2"))
	require.NoError(t, err)

	matching := NewMatching(profiles, companies, enrichments, testLogger())
	require.NoError(t, matching.Rescore(ctx, u.ID(), []job.Posting{goJob, otherJob}))

	scored, err := enrichments.Find(ctx, match.WithUser(u.ID()))
	require.NoError(t, err)
	require.Len(t, scored, 2)

	byPosting := map[int64]int{}
	for _, e := range scored {
		byPosting[e.JobPostingID()] = e.FitScore()
	}
	assert.Greater(t, byPosting[goJob.ID()], byPosting[otherJob.ID()],
		"matching skills and remote preference raise the score")
}

func TestRescoreIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)

	users := persistence.NewUserStore(db)
	profiles := persistence.NewProfileStore(db)
	companies := persistence.NewCompanyStore(db)
	postings := persistence.NewPostingStore(db)
	enrichments := persistence.NewEnrichmentStore(db)

	u := user.New("grace@example.com", "Grace Hopper")
	require.NoError(t, users.Save(ctx, u))
	_, err := profiles.Save(ctx, profile.NewProfile(u.ID()).WithSkills([]string{"go"}))
	require.NoError(t, err)

	saved, err := postings.Save(ctx, job.NewPosting(job.ProviderGreenhouse, "1", "Go Engineer", "https://example.com/1"))
	require.NoError(t, err)

	matching := NewMatching(profiles, companies, enrichments, testLogger())
	require.NoError(t, matching.Rescore(ctx, u.ID(), []job.Posting{saved}))
	require.NoError(t, matching.Rescore(ctx, u.ID(), []job.Posting{saved}))

	count, err := enrichments.Count(ctx, match.WithUser(u.ID()))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "rescoring updates in place")
}

func TestRescoreWithoutProfileStoresBaseline(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)

	users := persistence.NewUserStore(db)
	profiles := persistence.NewProfileStore(db)
	companies := persistence.NewCompanyStore(db)
	postings := persistence.NewPostingStore(db)
	enrichments := persistence.NewEnrichmentStore(db)

	u := user.New("new@example.com", "New User")
	require.NoError(t, users.Save(ctx, u))

	saved, err := postings.Save(ctx, job.NewPosting(job.ProviderGreenhouse, "1", "Go Engineer", "https://example.com/1"))
	require.NoError(t, err)

	matching := NewMatching(profiles, companies, enrichments, testLogger())
	require.NoError(t, matching.Rescore(ctx, u.ID(), []job.Posting{saved}))

	scored, err := enrichments.Find(ctx, match.WithUser(u.ID()))
	require.NoError(t, err)
	require.Len(t, scored, 1, "a profileless user still gets baseline scores")
	assert.Greater(t, scored[0].FitScore(), 0)
}
