package tz

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombelial666/reminderBot/internal/domain"
)

func TestResolve_IANA(t *testing.T) {
	r := NewResolver(nil)
	loc, err := r.Resolve("Europe/Moscow")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestResolve_FixedOffset(t *testing.T) {
	r := NewResolver(nil)

	loc, err := r.Resolve("UTC+07:00")
	require.NoError(t, err)
	_, off := time.Date(2026, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, 7*3600, off)

	loc, err = r.Resolve("utc-3:30")
	require.NoError(t, err)
	_, off = time.Date(2026, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, -(3*3600 + 30*60), off)

	loc, err = r.Resolve("UTC")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	// beyond ±14:00
	_, err = r.Resolve("UTC+15")
	assert.True(t, errors.Is(err, domain.ErrInvalidZone))
	// minutes out of range
	_, err = r.Resolve("UTC+07:60")
	assert.True(t, errors.Is(err, domain.ErrInvalidZone))
	// boundary is allowed
	_, err = r.Resolve("UTC+14:00")
	assert.NoError(t, err)
}

func TestResolve_City(t *testing.T) {
	r := NewResolver(NewOfflineCities())

	name, err := r.Canonical("Москва")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", name)

	name, err = r.Canonical("bangkok")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Bangkok", name)

	_, err = r.Canonical("Atlantis")
	assert.True(t, errors.Is(err, domain.ErrUnresolvableCity))
}

func TestOfflineCities_PrefixPrefersPopulous(t *testing.T) {
	c := NewOfflineCities()
	// "S" prefix matches several cities; Shanghai has the largest population.
	zone, ok := c.LookupZone("S")
	require.True(t, ok)
	assert.Equal(t, "Asia/Shanghai", zone)
}

func TestDeriveOffsetFromLocalClock(t *testing.T) {
	nowUTC := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "UTC+07:00", DeriveOffsetFromLocalClock(19, 0, nowUTC))
	assert.Equal(t, "UTC-05:00", DeriveOffsetFromLocalClock(7, 0, nowUTC))
	assert.Equal(t, "UTC+00:00", DeriveOffsetFromLocalClock(12, 0, nowUTC))

	// Local 23:30 while UTC is 12:00 → +11:30, not −12:30.
	assert.Equal(t, "UTC+11:30", DeriveOffsetFromLocalClock(23, 30, nowUTC))

	// Crossing midnight: UTC 23:00, local 01:00 next day → +02:00.
	lateUTC := time.Date(2026, 8, 28, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "UTC+02:00", DeriveOffsetFromLocalClock(1, 0, lateUTC))

	// Clamp: local 02:30 while UTC is 12:00 picks −09:30 (same day, smallest |offset|).
	assert.Equal(t, "UTC-09:30", DeriveOffsetFromLocalClock(2, 30, nowUTC))
}
