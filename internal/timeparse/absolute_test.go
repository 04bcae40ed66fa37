package timeparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAbsolute_Tomorrow(t *testing.T) {
	p := New()
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	nowUTC := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC) // 12:00 in Moscow

	got, span, ok := p.ParseAbsolute("tomorrow at 10:00 buy bread", loc, nowUTC)
	require.True(t, ok)

	local := got.In(loc)
	assert.Equal(t, 29, local.Day())
	assert.Equal(t, 10, local.Hour())
	assert.Equal(t, 0, local.Minute())

	assert.Equal(t, "buy bread", StripSpan("tomorrow at 10:00 buy bread", span))
}

func TestParseAbsolute_ClockOnlyRollsForward(t *testing.T) {
	p := New()
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	// 12:00 local; "at 9:30" already passed today, so it means tomorrow.
	nowUTC := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)

	got, _, ok := p.ParseAbsolute("at 9:30 call mom", loc, nowUTC)
	require.True(t, ok)

	local := got.In(loc)
	assert.True(t, got.After(nowUTC), "resolved instant must be in the future")
	assert.Equal(t, 9, local.Hour())
	assert.Equal(t, 30, local.Minute())
	assert.Equal(t, 29, local.Day())
}

func TestParseAbsolute_ExplicitDateStaysPast(t *testing.T) {
	p := New()
	nowUTC := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	// A phrase that names a day is taken literally; the rejection of past
	// instants belongs to the caller.
	got, _, ok := p.ParseAbsolute("yesterday at 13:00 pay rent", time.UTC, nowUTC)
	require.True(t, ok)
	assert.True(t, got.Before(nowUTC), "yesterday must not be rolled into the future, got %v", got)
	assert.Equal(t, 27, got.Day())
	assert.Equal(t, 13, got.Hour())

	got, _, ok = p.ParseAbsolute("today at 9:00 standup", time.UTC, nowUTC)
	require.True(t, ok)
	assert.True(t, got.Before(nowUTC), "an already-passed today clock must stay past, got %v", got)
	assert.Equal(t, 28, got.Day())

	got, _, ok = p.ParseAbsolute("вчера в 13:00 оплатить", time.UTC, nowUTC)
	require.True(t, ok)
	assert.True(t, got.Before(nowUTC), "вчера must not be rolled into the future, got %v", got)
}

func TestParseAbsolute_Russian(t *testing.T) {
	p := New()
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	nowUTC := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)

	got, span, ok := p.ParseAbsolute("завтра в 10:00 позвонить", loc, nowUTC)
	require.True(t, ok)

	local := got.In(loc)
	assert.Equal(t, 29, local.Day())
	assert.Equal(t, 10, local.Hour())
	assert.Equal(t, "позвонить", StripSpan("завтра в 10:00 позвонить", span))
}

func TestParseAbsolute_NoMatch(t *testing.T) {
	p := New()
	_, _, ok := p.ParseAbsolute("just some words", time.UTC, time.Now())
	assert.False(t, ok)
}

func TestStripSpan_Bounds(t *testing.T) {
	assert.Equal(t, "text", StripSpan("text", Span{Start: -1, End: 99}))
	assert.Equal(t, "tail", StripSpan("head tail", Span{Start: 0, End: 5}))
}
