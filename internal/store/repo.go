package store

import (
	"context"
	"time"

	"github.com/tombelial666/reminderBot/internal/domain"
)

// Repo defines storage operations for reminders and user preferences.
// Every mutation is atomic per reminder; conditional updates compare against
// the expected status and owner instead of overwriting blindly.
type Repo interface {
	// Create inserts a reminder in scheduled status and returns its id.
	Create(ctx context.Context, chatID, userID int64, text string, dueAtUTC time.Time, tz string) (int64, error)
	// GetByID returns a reminder or domain.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*domain.Reminder, error)
	// MarkSent sets status to sent unconditionally; idempotent.
	MarkSent(ctx context.Context, id int64) error
	// Cancel transitions scheduled→canceled if the reminder belongs to userID.
	// Returns whether the transition occurred.
	Cancel(ctx context.Context, id, userID int64) (bool, error)
	// Reschedule updates due time under the same owner+scheduled guard.
	Reschedule(ctx context.Context, id, userID int64, newDueAtUTC time.Time) (bool, error)
	// ListActive returns scheduled reminders for the pair, due-ascending.
	ListActive(ctx context.Context, chatID, userID int64, limit int) ([]domain.Reminder, error)
	// ListAllScheduled returns every scheduled reminder; used at startup.
	ListAllScheduled(ctx context.Context) ([]domain.Reminder, error)

	GetPrefs(ctx context.Context, chatID, userID int64) (domain.UserPrefs, error)
	SetTZ(ctx context.Context, chatID, userID int64, tz string) error
	SetLang(ctx context.Context, chatID, userID int64, lang string) error
	SetSound(ctx context.Context, chatID, userID int64, on bool) error
	SetMelody(ctx context.Context, chatID, userID int64, melody string) error

	// Wipe deletes all persisted state. Used by the restart directive.
	Wipe(ctx context.Context) error
	Close() error
}
