// Package scheduler maps active reminders to wake-up timers and drives the
// repeat-until-acknowledged delivery protocol. Timers are ephemeral; the
// store is the single source of truth and the engine is fully rebuilt from
// it on startup via Reconcile.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tombelial666/reminderBot/internal/domain"
	"github.com/tombelial666/reminderBot/internal/store"
)

// Sender is the outbound transport capability the engine needs. The
// transport renders acknowledgment and snooze actions itself.
type Sender interface {
	SendReminder(chatID, reminderID int64, text string, silent bool) error
}

const (
	defaultRepeatInterval = 5 * time.Minute
	defaultWorkers        = 5
	opTimeout             = 15 * time.Second
)

// Options tune the engine. Zero values fall back to defaults.
type Options struct {
	// RepeatInterval is the delay between re-deliveries of an
	// unacknowledged reminder.
	RepeatInterval time.Duration
	// Workers bounds concurrent deliveries so a burst of simultaneously
	// due reminders does not starve the process.
	Workers int
	// LatePrefix renders the lateness marker for overdue deliveries found
	// during startup reconciliation, localized per user language.
	LatePrefix func(lang string) string
}

// Engine owns one live timer per reminder id, covering both the primary
// due-time fire and the follow-up repeat cycle.
type Engine struct {
	repo       store.Repo
	log        *zap.Logger
	sender     Sender
	repeat     time.Duration
	latePrefix func(lang string) string
	sem        chan struct{}

	mu     sync.Mutex
	timers map[int64]*time.Timer
}

func New(repo store.Repo, log *zap.Logger, sender Sender, opts Options) *Engine {
	if opts.RepeatInterval <= 0 {
		opts.RepeatInterval = defaultRepeatInterval
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.LatePrefix == nil {
		opts.LatePrefix = func(string) string { return "(late) " }
	}
	return &Engine{
		repo:       repo,
		log:        log,
		sender:     sender,
		repeat:     opts.RepeatInterval,
		latePrefix: opts.LatePrefix,
		sem:        make(chan struct{}, opts.Workers),
		timers:     make(map[int64]*time.Timer),
	}
}

// Arm schedules a one-shot fire at dueUTC, replacing any live timer for id.
// The durable row must already exist: write-then-arm ordering is the
// caller's obligation.
func (e *Engine) Arm(id, chatID int64, text string, dueUTC time.Time) {
	d := time.Until(dueUTC)
	if d < 0 {
		d = 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked(id)
	e.timers[id] = time.AfterFunc(d, func() { e.fire(id) })
	e.log.Debug("armed reminder",
		zap.Int64("id", id),
		zap.Int64("chat_id", chatID),
		zap.Time("due_utc", dueUTC),
	)
}

// Disarm cancels any live timer for id. No-op if none exists; safe to call
// concurrently with a firing timer, which aborts via the status re-check.
func (e *Engine) Disarm(id int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked(id)
}

func (e *Engine) stopLocked(id int64) {
	if t, ok := e.timers[id]; ok {
		t.Stop()
		delete(e.timers, id)
	}
}

// Stop cancels every live timer. In-flight deliveries finish on their own.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for id, t := range e.timers {
		t.Stop()
		delete(e.timers, id)
	}
}

// armed reports whether a live timer exists for id (test hook).
func (e *Engine) armed(id int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.timers[id]
	return ok
}

// fire handles the primary due-time wake-up.
func (e *Engine) fire(id int64) {
	e.sem <- struct{}{}
	defer func() { <-e.sem }()

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rem, err := e.repo.GetByID(ctx, id)
	if err != nil {
		e.log.Error("fire: load reminder failed", zap.Int64("id", id), zap.Error(err))
		e.Disarm(id)
		return
	}
	// A fire that lost the race against cancel/acknowledge must not send.
	if rem.Status != domain.StatusScheduled {
		e.Disarm(id)
		return
	}

	e.deliver(ctx, rem, false)
	e.armRepeat(id)
}

// repeatCheck is the 5-minute follow-up: the status re-read is the sole
// check that terminates the loop.
func (e *Engine) repeatCheck(id int64) {
	e.sem <- struct{}{}
	defer func() { <-e.sem }()

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rem, err := e.repo.GetByID(ctx, id)
	if err != nil || rem.Status != domain.StatusScheduled {
		e.Disarm(id)
		return
	}

	e.deliver(ctx, rem, false)
	e.armRepeat(id)
}

func (e *Engine) armRepeat(id int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked(id)
	e.timers[id] = time.AfterFunc(e.repeat, func() { e.repeatCheck(id) })
}

// deliver sends the reminder text. A transport failure is logged and never
// interrupts the repeat cycle, which is the engine's resilience mechanism.
func (e *Engine) deliver(ctx context.Context, rem *domain.Reminder, late bool) {
	silent := false
	prefs, err := e.repo.GetPrefs(ctx, rem.ChatID, rem.UserID)
	if err != nil {
		e.log.Warn("deliver: prefs lookup failed", zap.Int64("id", rem.ID), zap.Error(err))
	} else {
		silent = !prefs.Sound
	}

	text := rem.Text
	if late {
		text = e.latePrefix(prefs.Lang) + text
	}

	if err := e.sender.SendReminder(rem.ChatID, rem.ID, text, silent); err != nil {
		e.log.Error("deliver: send failed",
			zap.Int64("id", rem.ID),
			zap.Int64("chat_id", rem.ChatID),
			zap.Error(err),
		)
	}
}

// Acknowledge permanently stops repeats for a reminder without deleting its
// record. Idempotent.
func (e *Engine) Acknowledge(ctx context.Context, id int64) error {
	if err := e.repo.MarkSent(ctx, id); err != nil {
		return fmt.Errorf("mark sent: %w", err)
	}
	e.Disarm(id)
	return nil
}

// Snooze reschedules an active reminder to now+extra and restarts its cycle.
// Returns the new due instant.
func (e *Engine) Snooze(ctx context.Context, id, userID int64, extra time.Duration) (time.Time, error) {
	if extra <= 0 {
		return time.Time{}, domain.ErrTimeAlreadyPassed
	}
	newDue := time.Now().UTC().Add(extra)

	ok, err := e.repo.Reschedule(ctx, id, userID, newDue)
	if err != nil {
		return time.Time{}, fmt.Errorf("reschedule: %w", err)
	}
	if !ok {
		return time.Time{}, domain.ErrNotFound
	}

	rem, err := e.repo.GetByID(ctx, id)
	if err != nil {
		return time.Time{}, err
	}
	e.Arm(rem.ID, rem.ChatID, rem.Text, rem.DueAtUTC)
	return newDue, nil
}

// Cancel aborts an active reminder owned by userID and disarms its timer.
func (e *Engine) Cancel(ctx context.Context, id, userID int64) (bool, error) {
	ok, err := e.repo.Cancel(ctx, id, userID)
	if err != nil {
		return false, err
	}
	if ok {
		e.Disarm(id)
	}
	return ok, nil
}

// Reconcile rebuilds timers from durable state after a process start:
// overdue reminders get one immediate late-prefixed delivery and are marked
// sent; future ones are armed normally.
func (e *Engine) Reconcile(ctx context.Context) error {
	rows, err := e.repo.ListAllScheduled(ctx)
	if err != nil {
		return fmt.Errorf("list scheduled: %w", err)
	}

	now := time.Now().UTC()
	lateCount := 0
	for i := range rows {
		rem := &rows[i]
		if !rem.DueAtUTC.After(now) {
			e.deliver(ctx, rem, true)
			if err := e.repo.MarkSent(ctx, rem.ID); err != nil {
				e.log.Error("reconcile: mark sent failed", zap.Int64("id", rem.ID), zap.Error(err))
			}
			lateCount++
			continue
		}
		e.Arm(rem.ID, rem.ChatID, rem.Text, rem.DueAtUTC)
	}

	e.log.Info("reconciled reminders",
		zap.Int("total", len(rows)),
		zap.Int("delivered_late", lateCount),
		zap.Int("armed", len(rows)-lateCount),
	)
	return nil
}
