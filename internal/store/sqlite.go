package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/tombelial666/reminderBot/internal/domain"
)

// Defaults are the preference values returned before a user's first write.
type Defaults struct {
	TZ   string
	Lang string
}

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct {
	db       *sql.DB
	defaults Defaults
}

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string, defaults Defaults) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// SQLite is a single-writer engine; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db, defaults: defaults}, nil
}

// applyPragmas configures the SQLite connection for durability and concurrency.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

const reminderColumns = "id, chat_id, user_id, text, due_at_utc, tz, status, created_at_utc"

func (r *SQLiteRepo) Create(ctx context.Context, chatID, userID int64, text string, dueAtUTC time.Time, tz string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO reminders (chat_id, user_id, text, due_at_utc, tz, status, created_at_utc)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		chatID, userID, text, dueAtUTC.UTC().Unix(), tz,
		string(domain.StatusScheduled), time.Now().UTC().Unix(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteRepo) GetByID(ctx context.Context, id int64) (*domain.Reminder, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+reminderColumns+" FROM reminders WHERE id = ?", id)
	rem, err := scanReminder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rem, nil
}

func (r *SQLiteRepo) MarkSent(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE reminders SET status = ? WHERE id = ?",
		string(domain.StatusSent), id)
	return err
}

func (r *SQLiteRepo) Cancel(ctx context.Context, id, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reminders SET status = ?
		WHERE id = ? AND user_id = ? AND status = ?`,
		string(domain.StatusCanceled), id, userID, string(domain.StatusScheduled))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *SQLiteRepo) Reschedule(ctx context.Context, id, userID int64, newDueAtUTC time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reminders SET due_at_utc = ?
		WHERE id = ? AND user_id = ? AND status = ?`,
		newDueAtUTC.UTC().Unix(), id, userID, string(domain.StatusScheduled))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *SQLiteRepo) ListActive(ctx context.Context, chatID, userID int64, limit int) ([]domain.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+reminderColumns+` FROM reminders
		WHERE chat_id = ? AND user_id = ? AND status = ?
		ORDER BY due_at_utc ASC
		LIMIT ?`,
		chatID, userID, string(domain.StatusScheduled), limit)
	if err != nil {
		return nil, err
	}
	return collectReminders(rows)
}

func (r *SQLiteRepo) ListAllScheduled(ctx context.Context) ([]domain.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+reminderColumns+` FROM reminders
		WHERE status = ?
		ORDER BY due_at_utc ASC`,
		string(domain.StatusScheduled))
	if err != nil {
		return nil, err
	}
	return collectReminders(rows)
}

func (r *SQLiteRepo) GetPrefs(ctx context.Context, chatID, userID int64) (domain.UserPrefs, error) {
	p := domain.UserPrefs{
		ChatID: chatID,
		UserID: userID,
		TZ:     r.defaults.TZ,
		Lang:   r.defaults.Lang,
		Sound:  true,
		Melody: "default",
	}
	var soundInt int
	err := r.db.QueryRowContext(ctx, `
		SELECT tz, lang, sound, melody FROM user_prefs
		WHERE chat_id = ? AND user_id = ?`,
		chatID, userID,
	).Scan(&p.TZ, &p.Lang, &soundInt, &p.Melody)
	if errors.Is(err, sql.ErrNoRows) {
		return p, nil
	}
	if err != nil {
		return p, err
	}
	p.Sound = soundInt != 0
	return p, nil
}

// Preference setters upsert lazily and preserve sibling fields via COALESCE
// subselects, so a /lang change never resets the user's timezone.

func (r *SQLiteRepo) SetTZ(ctx context.Context, chatID, userID int64, tz string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_prefs (chat_id, user_id, tz, lang, sound, melody, updated_at_utc)
		VALUES (?, ?, ?,
			COALESCE((SELECT lang FROM user_prefs WHERE chat_id=? AND user_id=?), ?),
			COALESCE((SELECT sound FROM user_prefs WHERE chat_id=? AND user_id=?), 1),
			COALESCE((SELECT melody FROM user_prefs WHERE chat_id=? AND user_id=?), 'default'),
			?)
		ON CONFLICT(chat_id, user_id) DO UPDATE SET
			tz = excluded.tz, updated_at_utc = excluded.updated_at_utc`,
		chatID, userID, tz,
		chatID, userID, r.defaults.Lang,
		chatID, userID,
		chatID, userID,
		time.Now().UTC().Unix())
	return err
}

func (r *SQLiteRepo) SetLang(ctx context.Context, chatID, userID int64, lang string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_prefs (chat_id, user_id, tz, lang, sound, melody, updated_at_utc)
		VALUES (?, ?,
			COALESCE((SELECT tz FROM user_prefs WHERE chat_id=? AND user_id=?), ?),
			?,
			COALESCE((SELECT sound FROM user_prefs WHERE chat_id=? AND user_id=?), 1),
			COALESCE((SELECT melody FROM user_prefs WHERE chat_id=? AND user_id=?), 'default'),
			?)
		ON CONFLICT(chat_id, user_id) DO UPDATE SET
			lang = excluded.lang, updated_at_utc = excluded.updated_at_utc`,
		chatID, userID,
		chatID, userID, r.defaults.TZ,
		lang,
		chatID, userID,
		chatID, userID,
		time.Now().UTC().Unix())
	return err
}

func (r *SQLiteRepo) SetSound(ctx context.Context, chatID, userID int64, on bool) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_prefs (chat_id, user_id, tz, lang, sound, melody, updated_at_utc)
		VALUES (?, ?,
			COALESCE((SELECT tz FROM user_prefs WHERE chat_id=? AND user_id=?), ?),
			COALESCE((SELECT lang FROM user_prefs WHERE chat_id=? AND user_id=?), ?),
			?,
			COALESCE((SELECT melody FROM user_prefs WHERE chat_id=? AND user_id=?), 'default'),
			?)
		ON CONFLICT(chat_id, user_id) DO UPDATE SET
			sound = excluded.sound, updated_at_utc = excluded.updated_at_utc`,
		chatID, userID,
		chatID, userID, r.defaults.TZ,
		chatID, userID, r.defaults.Lang,
		boolToInt(on),
		chatID, userID,
		time.Now().UTC().Unix())
	return err
}

func (r *SQLiteRepo) SetMelody(ctx context.Context, chatID, userID int64, melody string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_prefs (chat_id, user_id, tz, lang, sound, melody, updated_at_utc)
		VALUES (?, ?,
			COALESCE((SELECT tz FROM user_prefs WHERE chat_id=? AND user_id=?), ?),
			COALESCE((SELECT lang FROM user_prefs WHERE chat_id=? AND user_id=?), ?),
			COALESCE((SELECT sound FROM user_prefs WHERE chat_id=? AND user_id=?), 1),
			?,
			?)
		ON CONFLICT(chat_id, user_id) DO UPDATE SET
			melody = excluded.melody, updated_at_utc = excluded.updated_at_utc`,
		chatID, userID,
		chatID, userID, r.defaults.TZ,
		chatID, userID, r.defaults.Lang,
		chatID, userID,
		melody,
		time.Now().UTC().Unix())
	return err
}

func (r *SQLiteRepo) Wipe(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM reminders"); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, "DELETE FROM user_prefs")
	return err
}
