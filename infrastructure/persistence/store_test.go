package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantahq/jobscout/domain/job"
	"github.com/vantahq/jobscout/domain/match"
	"github.com/vantahq/jobscout/domain/notification"
	"github.com/vantahq/jobscout/domain/profile"
	"github.com/vantahq/jobscout/domain/resume"
	"github.com/vantahq/jobscout/domain/searchpref"
	"github.com/vantahq/jobscout/domain/task"
	"github.com/vantahq/jobscout/domain/user"
	"github.com/vantahq/jobscout/internal/database"
)

// newTestDB creates an in-memory SQLite database for testing.
// Cannot use the testdb package here due to import cycle (testdb imports persistence).
func newTestDB(t *testing.T) database.Database {
	t.Helper()
	ctx := context.Background()
	db, err := database.NewDatabase(ctx, "sqlite://:memory:")
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestUserStoreSaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore(newTestDB(t))

	u := user.New("ada@example.com", "Ada Lovelace")
	require.NoError(t, store.Save(ctx, u))

	got, err := store.Get(ctx, u.ID())
	require.NoError(t, err)
	assert.Equal(t, u.ID(), got.ID())
	assert.Equal(t, "ada@example.com", got.Email())
	assert.Equal(t, "Ada Lovelace", got.FullName())
}

func TestUserStoreGetMissing(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore(newTestDB(t))

	_, err := store.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestUserStoreFindByEmail(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore(newTestDB(t))

	require.NoError(t, store.Save(ctx, user.New("ada@example.com", "Ada")))
	require.NoError(t, store.Save(ctx, user.New("grace@example.com", "Grace")))

	users, err := store.Find(ctx, user.WithEmail("grace@example.com"))
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Grace", users[0].FullName())
}

func TestProfileStoreSaveAndFindByUser(t *testing.T) {
	ctx := context.Background()
	store := NewProfileStore(newTestDB(t))

	userID := uuid.New()
	p := profile.NewProfile(userID).
		WithHeadline("Backend Engineer").
		WithSkills([]string{"Go", "SQL"}).
		WithLocations([]string{"Berlin"}).
		WithRemoteOnly(true)

	saved, err := store.Save(ctx, p)
	require.NoError(t, err)
	assert.NotZero(t, saved.ID())

	got, err := store.FindByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID(), got.ID())
	assert.Equal(t, "Backend Engineer", got.Headline())
	assert.Equal(t, []string{"Go", "SQL"}, got.Skills())
	assert.Equal(t, []string{"Berlin"}, got.Locations())
	assert.True(t, got.RemoteOnly())
}

func TestProfileStoreUpdateInPlace(t *testing.T) {
	ctx := context.Background()
	store := NewProfileStore(newTestDB(t))

	userID := uuid.New()
	saved, err := store.Save(ctx, profile.NewProfile(userID).WithHeadline("Before"))
	require.NoError(t, err)

	_, err = store.Save(ctx, saved.WithHeadline("After"))
	require.NoError(t, err)

	got, err := store.FindByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID(), got.ID())
	assert.Equal(t, "After", got.Headline())
}

func TestCompanyStoreGetOrCreateByDomain(t *testing.T) {
	ctx := context.Background()
	store := NewCompanyStore(newTestDB(t))

	first, err := store.GetOrCreate(ctx, job.NewCompany("Acme", "acme.io"))
	require.NoError(t, err)
	assert.NotZero(t, first.ID())

	// A second sighting of the same domain resolves to the same row even
	// when the display name differs.
	second, err := store.GetOrCreate(ctx, job.NewCompany("Acme Inc", "acme.io"))
	require.NoError(t, err)
	assert.Equal(t, first.ID(), second.ID())
	assert.Equal(t, "Acme", second.Name())
}

func TestCompanyStoreGetOrCreateByNameWhenNoDomain(t *testing.T) {
	ctx := context.Background()
	store := NewCompanyStore(newTestDB(t))

	first, err := store.GetOrCreate(ctx, job.NewCompany("Initech", ""))
	require.NoError(t, err)

	second, err := store.GetOrCreate(ctx, job.NewCompany("Initech", ""))
	require.NoError(t, err)
	assert.Equal(t, first.ID(), second.ID())
}

func TestPostingStoreSaveAndFindBySourceIdentity(t *testing.T) {
	ctx := context.Background()
	store := NewPostingStore(newTestDB(t))

	p := job.NewPosting(job.ProviderGreenhouse, "gh-1", "Platform Engineer", "https://example.com/gh-1").
		WithLocation("Remote").
		WithRemote(true).
		WithTags([]string{"engineering", "platform"})

	saved, err := store.Save(ctx, p)
	require.NoError(t, err)
	assert.NotZero(t, saved.ID())

	got, err := store.FindOne(ctx, job.WithSource(job.ProviderGreenhouse), job.WithSourceID("gh-1"))
	require.NoError(t, err)
	assert.Equal(t, saved.ID(), got.ID())
	assert.Equal(t, "Platform Engineer", got.Title())
	assert.True(t, got.Remote())
	assert.Equal(t, []string{"engineering", "platform"}, got.Tags())
}

func TestPostingStoreUpdateKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	store := NewPostingStore(newTestDB(t))

	saved, err := store.Save(ctx, job.NewPosting(job.ProviderGreenhouse, "gh-2", "Old Title", "https://example.com/gh-2"))
	require.NoError(t, err)

	refreshed := saved.Refresh(job.CanonicalPosting{
		Title:    "New Title",
		URL:      "https://example.com/gh-2",
		Location: "Berlin",
		Tags:     []string{"updated"},
	}, saved.CreatedAt())

	_, err = store.Save(ctx, refreshed)
	require.NoError(t, err)

	count, err := store.Count(ctx, job.WithSource(job.ProviderGreenhouse))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := store.FindOne(ctx, job.WithSource(job.ProviderGreenhouse), job.WithSourceID("gh-2"))
	require.NoError(t, err)
	assert.Equal(t, "New Title", got.Title())
	assert.Equal(t, "Berlin", got.Location())
}

func TestEnrichmentStoreUpsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewEnrichmentStore(newTestDB(t))

	userID := uuid.New()
	first := match.Score(nil, match.PostingView{Title: "Engineer"})
	require.NoError(t, store.Upsert(ctx, match.NewEnrichment(userID, 7, first)))

	p := profile.NewProfile(userID).WithSkills([]string{"go"})
	second := match.Score(&p, match.PostingView{Title: "Engineer", Tags: []string{"go"}})
	require.NoError(t, store.Upsert(ctx, match.NewEnrichment(userID, 7, second)))

	all, err := store.Find(ctx, match.WithUser(userID))
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, second.Score(), all[0].FitScore())
	assert.Equal(t, int64(7), all[0].JobPostingID())
}

func TestEnrichmentStoreTopFitOrdering(t *testing.T) {
	ctx := context.Background()
	enrichments := NewEnrichmentStore(newTestDB(t))

	userID := uuid.New()
	now := time.Now().UTC()
	for postingID, score := range map[int64]int{1: 40, 2: 90, 3: 65} {
		e := match.ReconstructEnrichment(0, userID, postingID, score, nil, "", now, now)
		require.NoError(t, enrichments.Upsert(ctx, e))
	}

	options := append(match.WithTopFit(2), match.WithUser(userID))
	top, err := enrichments.Find(ctx, options...)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, int64(2), top[0].JobPostingID())
	assert.Equal(t, int64(3), top[1].JobPostingID())
}

func TestResumeStoreSaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewResumeStore(newTestDB(t))

	userID := uuid.New()
	v := resume.NewVersion(userID, "cv.pdf", "application/pdf", "storage/cv.pdf")
	v.MarkParsed(resume.Parsed{
		Summary: "Engineer",
		Skills:  []string{"go", "sql"},
	}, 74)
	require.NoError(t, store.Save(ctx, v))

	got, err := store.Get(ctx, v.ID())
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID())
	assert.True(t, got.Base())
	assert.Equal(t, "cv.pdf", got.OriginalFilename())
	assert.Equal(t, 74, got.ATSScore())
	assert.Equal(t, []string{"go", "sql"}, got.Sections().Skills)
}

func TestResumeStoreBaseOnlyFilter(t *testing.T) {
	ctx := context.Background()
	store := NewResumeStore(newTestDB(t))

	userID := uuid.New()
	base := resume.NewVersion(userID, "cv.pdf", "application/pdf", "storage/cv.pdf")
	base.MarkParsed(resume.Parsed{Skills: []string{"go"}}, 70)
	require.NoError(t, store.Save(ctx, base))

	postingID := int64(11)
	tailored := resume.NewTailoredVersion(base, &postingID, "Staff Engineer", []string{"go"})
	require.NoError(t, store.Save(ctx, tailored))

	bases, err := store.Find(ctx, resume.WithOwner(userID), resume.WithBaseOnly())
	require.NoError(t, err)
	require.Len(t, bases, 1)
	assert.Equal(t, base.ID(), bases[0].ID())

	all, err := store.Find(ctx, resume.WithOwner(userID))
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestNotificationStoreSaveAndFilter(t *testing.T) {
	ctx := context.Background()
	store := NewNotificationStore(newTestDB(t))

	userID := uuid.New()
	require.NoError(t, store.Save(ctx, notification.New(userID, notification.KindDailyDigest, map[string]any{"items": []any{}})))
	require.NoError(t, store.Save(ctx, notification.New(userID, notification.KindResumeTailored, nil)))
	require.NoError(t, store.Save(ctx, notification.New(uuid.New(), notification.KindDailyDigest, nil)))

	digests, err := store.Find(ctx, notification.WithRecipient(userID), notification.WithKind(notification.KindDailyDigest))
	require.NoError(t, err)
	require.Len(t, digests, 1)
	assert.Equal(t, notification.KindDailyDigest, digests[0].Kind())

	count, err := store.Count(ctx, notification.WithRecipient(userID))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestSearchPrefStoreSaveAndFind(t *testing.T) {
	ctx := context.Background()
	store := NewSearchPrefStore(newTestDB(t))

	userID := uuid.New()
	pref := searchpref.NewPref(userID, "go jobs", map[string]string{
		searchpref.FilterBoardToken: "acme",
	})
	require.NoError(t, store.Save(ctx, pref))

	prefs, err := store.Find(ctx, searchpref.WithOwner(userID))
	require.NoError(t, err)
	require.Len(t, prefs, 1)
	assert.Equal(t, pref.ID(), prefs[0].ID())
	assert.Equal(t, "acme", prefs[0].BoardToken())
	assert.Equal(t, "0 7 * * *", prefs[0].ScheduleCron())
}

func TestTaskStoreSaveDeduplicates(t *testing.T) {
	ctx := context.Background()
	store := NewTaskStore(newTestDB(t))

	payload := map[string]any{"user_id": "u-1", "trigger_pref_id": "p-1"}
	_, err := store.Save(ctx, task.NewTask(task.OperationSearchRun, 1, payload))
	require.NoError(t, err)
	_, err = store.Save(ctx, task.NewTask(task.OperationSearchRun, 5, payload))
	require.NoError(t, err)

	count, err := store.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	pending, err := store.FindPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 5, pending[0].Priority())
}

func TestTaskStoreDequeueOrdersByPriorityThenAge(t *testing.T) {
	ctx := context.Background()
	store := NewTaskStore(newTestDB(t))

	_, err := store.Save(ctx, task.NewTask(task.OperationSearchRun, 1, map[string]any{"seq": "low"}))
	require.NoError(t, err)
	_, err = store.Save(ctx, task.NewTask(task.OperationResumeParse, 9, map[string]any{"seq": "high"}))
	require.NoError(t, err)

	first, ok, err := store.Dequeue(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, task.OperationResumeParse, first.Operation())

	second, ok, err := store.Dequeue(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, task.OperationSearchRun, second.Operation())

	_, ok, err = store.Dequeue(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTaskStoreDequeueRemovesRow(t *testing.T) {
	ctx := context.Background()
	store := NewTaskStore(newTestDB(t))

	saved, err := store.Save(ctx, task.NewTask(task.OperationSearchRun, 1, map[string]any{"user_id": "u-1"}))
	require.NoError(t, err)

	_, ok, err := store.Dequeue(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = store.Get(ctx, saved.ID())
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestTaskStoreFilterByOperation(t *testing.T) {
	ctx := context.Background()
	store := NewTaskStore(newTestDB(t))

	_, err := store.Save(ctx, task.NewTask(task.OperationSearchRun, 1, map[string]any{"user_id": "u-1"}))
	require.NoError(t, err)
	_, err = store.Save(ctx, task.NewTask(task.OperationResumeParse, 1, map[string]any{"resume_version_id": "r-1"}))
	require.NoError(t, err)

	count, err := store.CountPending(ctx, task.WithOperation(task.OperationSearchRun))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
