package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombelial666/reminderBot/internal/domain"
)

func openTestRepo(t *testing.T) *SQLiteRepo {
	t.Helper()
	repo, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"),
		Defaults{TZ: "Asia/Bangkok", Lang: "ru"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestCreateAndGet(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	due := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	id, err := repo.Create(ctx, 10, 20, "drink water", due, "Asia/Bangkok")
	require.NoError(t, err)
	require.Positive(t, id)

	rem, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(10), rem.ChatID)
	assert.Equal(t, int64(20), rem.UserID)
	assert.Equal(t, "drink water", rem.Text)
	assert.Equal(t, due, rem.DueAtUTC)
	assert.Equal(t, domain.StatusScheduled, rem.Status)

	_, err = repo.GetByID(ctx, id+999)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMarkSentIdempotent(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, 1, 2, "x", time.Now().Add(time.Minute), "UTC")
	require.NoError(t, err)

	require.NoError(t, repo.MarkSent(ctx, id))
	require.NoError(t, repo.MarkSent(ctx, id))

	rem, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSent, rem.Status)
}

func TestCancelOwnershipGuard(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, 1, 2, "mine", time.Now().Add(time.Minute), "UTC")
	require.NoError(t, err)

	// foreign user must not cancel
	ok, err := repo.Cancel(ctx, id, 999)
	require.NoError(t, err)
	assert.False(t, ok)

	rem, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusScheduled, rem.Status)

	ok, err = repo.Cancel(ctx, id, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	// already canceled: reported as failure, not an error
	ok, err = repo.Cancel(ctx, id, 2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRescheduleGuard(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, 1, 2, "x", time.Now().Add(time.Minute), "UTC")
	require.NoError(t, err)

	newDue := time.Now().Add(30 * time.Minute).UTC().Truncate(time.Second)
	ok, err := repo.Reschedule(ctx, id, 2, newDue)
	require.NoError(t, err)
	require.True(t, ok)

	rem, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, newDue, rem.DueAtUTC)
	assert.Equal(t, domain.StatusScheduled, rem.Status)

	require.NoError(t, repo.MarkSent(ctx, id))
	ok, err = repo.Reschedule(ctx, id, 2, newDue.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, ok, "non-scheduled reminders must not be rescheduled")
}

func TestListActiveOrderAndScope(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	late, err := repo.Create(ctx, 1, 2, "late", now.Add(2*time.Hour), "UTC")
	require.NoError(t, err)
	early, err := repo.Create(ctx, 1, 2, "early", now.Add(time.Hour), "UTC")
	require.NoError(t, err)
	_, err = repo.Create(ctx, 1, 777, "foreign", now.Add(time.Hour), "UTC")
	require.NoError(t, err)
	canceled, err := repo.Create(ctx, 1, 2, "gone", now.Add(time.Hour), "UTC")
	require.NoError(t, err)
	_, err = repo.Cancel(ctx, canceled, 2)
	require.NoError(t, err)

	list, err := repo.ListActive(ctx, 1, 2, 50)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, early, list[0].ID)
	assert.Equal(t, late, list[1].ID)

	all, err := repo.ListAllScheduled(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestPrefsDefaultsAndPartialUpdate(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	p, err := repo.GetPrefs(ctx, 5, 6)
	require.NoError(t, err)
	assert.Equal(t, "Asia/Bangkok", p.TZ)
	assert.Equal(t, "ru", p.Lang)
	assert.True(t, p.Sound)
	assert.Equal(t, "default", p.Melody)

	require.NoError(t, repo.SetTZ(ctx, 5, 6, "Europe/Moscow"))
	require.NoError(t, repo.SetLang(ctx, 5, 6, "en"))
	require.NoError(t, repo.SetSound(ctx, 5, 6, false))
	require.NoError(t, repo.SetMelody(ctx, 5, 6, "bell"))

	p, err = repo.GetPrefs(ctx, 5, 6)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", p.TZ)
	assert.Equal(t, "en", p.Lang)
	assert.False(t, p.Sound)
	assert.Equal(t, "bell", p.Melody)

	// a later tz change must not reset lang/sound/melody
	require.NoError(t, repo.SetTZ(ctx, 5, 6, "UTC+07:00"))
	p, err = repo.GetPrefs(ctx, 5, 6)
	require.NoError(t, err)
	assert.Equal(t, "UTC+07:00", p.TZ)
	assert.Equal(t, "en", p.Lang)
	assert.False(t, p.Sound)
	assert.Equal(t, "bell", p.Melody)
}

func TestWipe(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, 1, 2, "x", time.Now().Add(time.Minute), "UTC")
	require.NoError(t, err)
	require.NoError(t, repo.SetLang(ctx, 1, 2, "en"))

	require.NoError(t, repo.Wipe(ctx))

	all, err := repo.ListAllScheduled(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	p, err := repo.GetPrefs(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "ru", p.Lang)
}
