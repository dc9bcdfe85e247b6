package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantahq/jobscout/domain/job"
	"github.com/vantahq/jobscout/domain/notification"
	"github.com/vantahq/jobscout/domain/profile"
	"github.com/vantahq/jobscout/domain/task"
	"github.com/vantahq/jobscout/domain/user"
	"github.com/vantahq/jobscout/infrastructure/persistence"
	"github.com/vantahq/jobscout/infrastructure/storage"
	"github.com/vantahq/jobscout/internal/testdb"
)

const sampleResumeText = `Grace Hopper
Staff Engineer building distributed systems
Skills: Go, PostgreSQL, Kubernetes
Experience
- Led the platform team at Acme
- Shipped the billing pipeline rewrite
`

type resumeFixture struct {
	service       *Resume
	resumes       persistence.ResumeStore
	profiles      persistence.ProfileStore
	postings      persistence.PostingStore
	notifications persistence.NotificationStore
	tasks         persistence.TaskStore
	objects       *storage.Filesystem
	userID        uuid.UUID
}

func newResumeFixture(t *testing.T) *resumeFixture {
	t.Helper()
	ctx := context.Background()
	db := testdb.New(t)
	logger := testLogger()

	users := persistence.NewUserStore(db)
	resumes := persistence.NewResumeStore(db)
	profiles := persistence.NewProfileStore(db)
	postings := persistence.NewPostingStore(db)
	notifications := persistence.NewNotificationStore(db)
	tasks := persistence.NewTaskStore(db)
	objects, err := storage.NewFilesystem(t.TempDir())
	require.NoError(t, err)

	u := user.New("grace@example.com", "Grace Hopper")
	require.NoError(t, users.Save(ctx, u))

	queue := NewQueue(tasks, logger)
	service := NewResume(db, resumes, profiles, postings, notifications, objects, queue, logger)

	return &resumeFixture{
		service:       service,
		resumes:       resumes,
		profiles:      profiles,
		postings:      postings,
		notifications: notifications,
		tasks:         tasks,
		objects:       objects,
		userID:        u.ID(),
	}
}

func TestResumeUploadStoresAndEnqueues(t *testing.T) {
	ctx := context.Background()
	fix := newResumeFixture(t)

	version, err := fix.service.Upload(ctx, fix.userID, "resume.txt", "text/plain", []byte(sampleResumeText))
	require.NoError(t, err)
	require.NotNil(t, version)
	assert.NotEmpty(t, version.StorageKey())

	// Document round-trips through object storage.
	data, err := fix.objects.Get(ctx, version.StorageKey())
	require.NoError(t, err)
	assert.Equal(t, sampleResumeText, string(data))

	// A parse unit is queued for the new version.
	pending, err := fix.tasks.FindPending(ctx, task.WithOperation(task.OperationResumeParse))
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, version.ID().String(), pending[0].Payload()["resume_version_id"])
}

func TestResumeParseFillsSectionsAndScore(t *testing.T) {
	ctx := context.Background()
	fix := newResumeFixture(t)

	version, err := fix.service.Upload(ctx, fix.userID, "resume.txt", "text/plain", []byte(sampleResumeText))
	require.NoError(t, err)

	require.NoError(t, fix.service.Parse(ctx, version.ID()))

	parsed, err := fix.service.Get(ctx, fix.userID, version.ID())
	require.NoError(t, err)
	assert.Greater(t, parsed.ATSScore(), 0)
	assert.Contains(t, parsed.Keywords(), "Go")
	assert.NotEmpty(t, parsed.Sections().Summary)
	assert.Len(t, parsed.Sections().Experience, 2)
	assert.True(t, parsed.Base())
}

func TestResumeParseBackfillsEmptyProfileSkills(t *testing.T) {
	ctx := context.Background()
	fix := newResumeFixture(t)

	_, err := fix.profiles.Save(ctx, profile.NewProfile(fix.userID).WithHeadline("Engineer"))
	require.NoError(t, err)

	version, err := fix.service.Upload(ctx, fix.userID, "resume.txt", "text/plain", []byte(sampleResumeText))
	require.NoError(t, err)
	require.NoError(t, fix.service.Parse(ctx, version.ID()))

	p, err := fix.profiles.FindByUser(ctx, fix.userID)
	require.NoError(t, err)
	assert.NotEmpty(t, p.Skills())
}

func TestResumeParseKeepsExistingProfileSkills(t *testing.T) {
	ctx := context.Background()
	fix := newResumeFixture(t)

	_, err := fix.profiles.Save(ctx, profile.NewProfile(fix.userID).WithSkills([]string{"rust"}))
	require.NoError(t, err)

	version, err := fix.service.Upload(ctx, fix.userID, "resume.txt", "text/plain", []byte(sampleResumeText))
	require.NoError(t, err)
	require.NoError(t, fix.service.Parse(ctx, version.ID()))

	p, err := fix.profiles.FindByUser(ctx, fix.userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"rust"}, p.Skills(), "hand-entered skills win over parsed ones")
}

func TestResumeTailorCreatesNewVersion(t *testing.T) {
	ctx := context.Background()
	fix := newResumeFixture(t)

	base, err := fix.service.Upload(ctx, fix.userID, "resume.txt", "text/plain", []byte(sampleResumeText))
	require.NoError(t, err)
	require.NoError(t, fix.service.Parse(ctx, base.ID()))

	posting, err := fix.postings.Save(ctx, job.NewPosting(job.ProviderGreenhouse, "1", "Platform Engineer", "https://example.com/1").
		WithTags([]string{"terraform"}))
	require.NoError(t, err)
	postingID := posting.ID()

	tailored, err := fix.service.Tailor(ctx, fix.userID, base.ID(), &postingID)
	require.NoError(t, err)
	require.NotNil(t, tailored)
	assert.NotEqual(t, base.ID(), tailored.ID())
	assert.False(t, tailored.Base())
	require.NotNil(t, tailored.JobPostingID())
	assert.Equal(t, postingID, *tailored.JobPostingID())

	versions, err := fix.service.List(ctx, fix.userID)
	require.NoError(t, err)
	assert.Len(t, versions, 2)

	count, err := fix.notifications.Count(ctx,
		notification.WithKind(notification.KindResumeTailored),
		notification.WithRecipient(fix.userID),
	)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestResumeOptimizeUpdatesInPlace(t *testing.T) {
	ctx := context.Background()
	fix := newResumeFixture(t)

	base, err := fix.service.Upload(ctx, fix.userID, "resume.txt", "text/plain", []byte(sampleResumeText))
	require.NoError(t, err)
	require.NoError(t, fix.service.Parse(ctx, base.ID()))

	before, err := fix.service.Get(ctx, fix.userID, base.ID())
	require.NoError(t, err)

	optimized, err := fix.service.Optimize(ctx, fix.userID, base.ID(), "cloud infrastructure")
	require.NoError(t, err)
	assert.Equal(t, base.ID(), optimized.ID(), "optimize never forks a version")
	assert.GreaterOrEqual(t, optimized.ATSScore(), before.ATSScore())

	versions, err := fix.service.List(ctx, fix.userID)
	require.NoError(t, err)
	assert.Len(t, versions, 1)

	count, err := fix.notifications.Count(ctx,
		notification.WithKind(notification.KindResumeOptimized),
		notification.WithRecipient(fix.userID),
	)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestResumeOwnershipEnforced(t *testing.T) {
	ctx := context.Background()
	fix := newResumeFixture(t)

	base, err := fix.service.Upload(ctx, fix.userID, "resume.txt", "text/plain", []byte(sampleResumeText))
	require.NoError(t, err)

	stranger := uuid.New()
	_, err = fix.service.Get(ctx, stranger, base.ID())
	assert.ErrorIs(t, err, ErrResumeNotFound)

	_, err = fix.service.Tailor(ctx, stranger, base.ID(), nil)
	assert.ErrorIs(t, err, ErrResumeNotFound)

	_, err = fix.service.Optimize(ctx, stranger, base.ID(), "")
	assert.ErrorIs(t, err, ErrResumeNotFound)
}
