package telegram

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tombelial666/reminderBot/internal/domain"
	"github.com/tombelial666/reminderBot/internal/timeparse"
)

func TestParseInArgs(t *testing.T) {
	d, text, err := parseInArgs("10m drink water")
	require.NoError(t, err)
	require.Equal(t, 10*time.Minute, d)
	require.Equal(t, "drink water", text)

	_, _, err = parseInArgs("soon-ish water")
	require.ErrorIs(t, err, domain.ErrParseFailure)

	_, _, err = parseInArgs("10m")
	require.ErrorIs(t, err, domain.ErrEmptyText)

	// A zero-sum duration is indistinguishable from no duration at all.
	_, _, err = parseInArgs("0m drink water")
	require.ErrorIs(t, err, domain.ErrParseFailure)
}

func TestParseAtArgs(t *testing.T) {
	r := &Router{when: timeparse.New()}
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	due, text, err := r.parseAtArgs("tomorrow at 10:00 buy bread", time.UTC, now)
	require.NoError(t, err)
	require.Equal(t, "buy bread", text)
	require.Equal(t, time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC), due)

	_, _, err = r.parseAtArgs("whenever feels right", time.UTC, now)
	require.ErrorIs(t, err, domain.ErrParseFailure)

	_, _, err = r.parseAtArgs("tomorrow at 10:00", time.UTC, now)
	require.ErrorIs(t, err, domain.ErrEmptyText)
}

func TestInputErrKey(t *testing.T) {
	require.Equal(t, "empty_text", inputErrKey(domain.ErrEmptyText, "need_duration"))
	require.Equal(t, "time_passed", inputErrKey(domain.ErrTimeAlreadyPassed, "need_duration"))
	require.Equal(t, "need_duration", inputErrKey(domain.ErrParseFailure, "need_duration"))
	require.Equal(t, "at_unparsed", inputErrKey(domain.ErrParseFailure, "at_unparsed"))
}
