package store

import (
	"database/sql"
	"time"

	"github.com/tombelial666/reminderBot/internal/domain"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReminder(row rowScanner) (*domain.Reminder, error) {
	var (
		rem       domain.Reminder
		dueUnix   int64
		createdAt int64
		status    string
	)
	if err := row.Scan(
		&rem.ID, &rem.ChatID, &rem.UserID, &rem.Text,
		&dueUnix, &rem.TZ, &status, &createdAt,
	); err != nil {
		return nil, err
	}
	rem.DueAtUTC = time.Unix(dueUnix, 0).UTC()
	rem.CreatedAtUTC = time.Unix(createdAt, 0).UTC()
	rem.Status = domain.Status(status)
	return &rem, nil
}

func collectReminders(rows *sql.Rows) ([]domain.Reminder, error) {
	defer rows.Close()
	var res []domain.Reminder
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *rem)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
