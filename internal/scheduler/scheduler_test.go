package scheduler

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tombelial666/reminderBot/internal/domain"
	"github.com/tombelial666/reminderBot/internal/store"
)

type sentMsg struct {
	chatID     int64
	reminderID int64
	text       string
	silent     bool
}

type fakeSender struct {
	mu    sync.Mutex
	sends []sentMsg
	fail  bool
}

func (f *fakeSender) SendReminder(chatID, reminderID int64, text string, silent bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = append(f.sends, sentMsg{chatID, reminderID, text, silent})
	if f.fail {
		return errors.New("transport down")
	}
	return nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sends)
}

func (f *fakeSender) last() sentMsg {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sends[len(f.sends)-1]
}

func newTestEngine(t *testing.T, repeat time.Duration) (*Engine, *store.SQLiteRepo, *fakeSender) {
	t.Helper()
	repo, err := store.OpenSQLite(context.Background(),
		filepath.Join(t.TempDir(), "sched.db"),
		store.Defaults{TZ: "UTC", Lang: "en"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	sender := &fakeSender{}
	eng := New(repo, zap.NewNop(), sender, Options{RepeatInterval: repeat})
	t.Cleanup(eng.Stop)
	return eng, repo, sender
}

func TestDeliverOnDue(t *testing.T) {
	eng, repo, sender := newTestEngine(t, time.Hour)
	ctx := context.Background()

	due := time.Now().UTC().Add(50 * time.Millisecond)
	id, err := repo.Create(ctx, 7, 8, "drink water", due, "UTC")
	require.NoError(t, err)
	eng.Arm(id, 7, "drink water", due)

	require.Eventually(t, func() bool { return sender.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	got := sender.last()
	assert.Equal(t, int64(7), got.chatID)
	assert.Equal(t, id, got.reminderID)
	assert.Equal(t, "drink water", got.text)

	// delivery does not mark the store sent; the repeat cycle owns that
	rem, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusScheduled, rem.Status)
	assert.True(t, eng.armed(id), "repeat timer must be armed after delivery")
}

func TestRearmReplacesTimer(t *testing.T) {
	eng, repo, sender := newTestEngine(t, time.Hour)
	ctx := context.Background()

	due := time.Now().UTC().Add(60 * time.Millisecond)
	id, err := repo.Create(ctx, 1, 2, "once", due, "UTC")
	require.NoError(t, err)

	// arming twice in succession leaves exactly one live timer
	eng.Arm(id, 1, "once", due)
	eng.Arm(id, 1, "once", due)

	require.Eventually(t, func() bool { return sender.count() >= 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 1, sender.count(), "duplicate timers must not double-deliver")
}

func TestRepeatUntilAcknowledged(t *testing.T) {
	eng, repo, sender := newTestEngine(t, 60*time.Millisecond)
	ctx := context.Background()

	due := time.Now().UTC().Add(20 * time.Millisecond)
	id, err := repo.Create(ctx, 1, 2, "nag me", due, "UTC")
	require.NoError(t, err)
	eng.Arm(id, 1, "nag me", due)

	require.Eventually(t, func() bool { return sender.count() >= 2 }, 3*time.Second, 10*time.Millisecond)

	require.NoError(t, eng.Acknowledge(ctx, id))
	rem, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSent, rem.Status)

	settled := sender.count()
	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, settled, sender.count(), "repeats must stop after acknowledge")
	assert.False(t, eng.armed(id))
}

func TestAcknowledgeIdempotent(t *testing.T) {
	eng, repo, _ := newTestEngine(t, time.Hour)
	ctx := context.Background()

	id, err := repo.Create(ctx, 1, 2, "x", time.Now().Add(time.Hour), "UTC")
	require.NoError(t, err)

	require.NoError(t, eng.Acknowledge(ctx, id))
	require.NoError(t, eng.Acknowledge(ctx, id))

	rem, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSent, rem.Status)
}

func TestRepeatStopsWhenCanceledElsewhere(t *testing.T) {
	eng, repo, sender := newTestEngine(t, 60*time.Millisecond)
	ctx := context.Background()

	due := time.Now().UTC().Add(20 * time.Millisecond)
	id, err := repo.Create(ctx, 1, 2, "cancel me", due, "UTC")
	require.NoError(t, err)
	eng.Arm(id, 1, "cancel me", due)

	require.Eventually(t, func() bool { return sender.count() >= 1 }, 2*time.Second, 10*time.Millisecond)

	// cancel directly in the store, as a concurrent caller would;
	// the next repeat check must observe the status and stop
	ok, err := repo.Cancel(ctx, id, 2)
	require.NoError(t, err)
	require.True(t, ok)

	settled := sender.count()
	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, settled, sender.count())
	assert.False(t, eng.armed(id))
}

func TestCancelBeforeFire(t *testing.T) {
	eng, repo, sender := newTestEngine(t, time.Hour)
	ctx := context.Background()

	due := time.Now().UTC().Add(80 * time.Millisecond)
	id, err := repo.Create(ctx, 1, 2, "never", due, "UTC")
	require.NoError(t, err)
	eng.Arm(id, 1, "never", due)

	ok, err := eng.Cancel(ctx, id, 2)
	require.NoError(t, err)
	require.True(t, ok)

	time.Sleep(250 * time.Millisecond)
	assert.Zero(t, sender.count(), "canceled reminder must never be delivered")

	// foreign cancel is a reported failure, not an error
	ok, err = eng.Cancel(ctx, id, 999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSnoozeResetsCycle(t *testing.T) {
	eng, repo, sender := newTestEngine(t, time.Hour)
	ctx := context.Background()

	due := time.Now().UTC().Add(time.Hour)
	id, err := repo.Create(ctx, 1, 2, "later", due, "UTC")
	require.NoError(t, err)
	eng.Arm(id, 1, "later", due)

	newDue, err := eng.Snooze(ctx, id, 2, 60*time.Millisecond)
	require.NoError(t, err)

	rem, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusScheduled, rem.Status)
	assert.WithinDuration(t, newDue, rem.DueAtUTC, time.Second)

	require.Eventually(t, func() bool { return sender.count() == 1 }, 2*time.Second, 10*time.Millisecond)

	// ownership and boundary guards
	_, err = eng.Snooze(ctx, id, 999, time.Minute)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = eng.Snooze(ctx, id, 2, -time.Minute)
	assert.True(t, errors.Is(err, domain.ErrTimeAlreadyPassed))
}

func TestSendFailureKeepsRepeating(t *testing.T) {
	eng, repo, sender := newTestEngine(t, 60*time.Millisecond)
	sender.fail = true
	ctx := context.Background()

	due := time.Now().UTC().Add(20 * time.Millisecond)
	id, err := repo.Create(ctx, 1, 2, "flaky", due, "UTC")
	require.NoError(t, err)
	eng.Arm(id, 1, "flaky", due)

	// the repeat cycle is the resilience mechanism: attempts continue
	require.Eventually(t, func() bool { return sender.count() >= 2 }, 3*time.Second, 10*time.Millisecond)

	rem, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusScheduled, rem.Status)
}

func TestReconcile(t *testing.T) {
	eng, repo, sender := newTestEngine(t, time.Hour)
	ctx := context.Background()
	now := time.Now().UTC()

	pastID, err := repo.Create(ctx, 1, 2, "overdue", now.Add(-time.Hour), "UTC")
	require.NoError(t, err)
	futureID, err := repo.Create(ctx, 1, 2, "upcoming", now.Add(2*time.Minute), "UTC")
	require.NoError(t, err)

	require.NoError(t, eng.Reconcile(ctx))

	// overdue: delivered once with the lateness marker and marked sent
	require.Equal(t, 1, sender.count())
	assert.Contains(t, sender.last().text, "overdue")
	assert.Contains(t, sender.last().text, "(late) ")

	past, err := repo.GetByID(ctx, pastID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSent, past.Status)
	assert.False(t, eng.armed(pastID))

	// upcoming: armed, untouched in the store
	future, err := repo.GetByID(ctx, futureID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusScheduled, future.Status)
	assert.True(t, eng.armed(futureID))

	// no duplicate deliveries
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, 1, sender.count())
}

func TestSilentDeliveryFollowsSoundPref(t *testing.T) {
	eng, repo, sender := newTestEngine(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.SetSound(ctx, 1, 2, false))

	due := time.Now().UTC().Add(30 * time.Millisecond)
	id, err := repo.Create(ctx, 1, 2, "shh", due, "UTC")
	require.NoError(t, err)
	eng.Arm(id, 1, "shh", due)

	require.Eventually(t, func() bool { return sender.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.True(t, sender.last().silent)
}
