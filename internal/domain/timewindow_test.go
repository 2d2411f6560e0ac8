package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithinWindow_HalfOpen(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// [0, 60): due this minute fires, due exactly 60s out does not.
	assert.True(t, WithinWindow(now, now, DueWindowLo, DueWindowHi))
	assert.True(t, WithinWindow(now.Add(59*time.Second), now, DueWindowLo, DueWindowHi))
	assert.False(t, WithinWindow(now.Add(60*time.Second), now, DueWindowLo, DueWindowHi))
	// Past due is outside the window.
	assert.False(t, WithinWindow(now.Add(-time.Second), now, DueWindowLo, DueWindowHi))
}

func TestWithinWindow_EarlyBand(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.True(t, WithinWindow(now.Add(29*time.Minute), now, EarlyWindowLo, EarlyWindowHi))
	assert.True(t, WithinWindow(now.Add(29*time.Minute+59*time.Second), now, EarlyWindowLo, EarlyWindowHi))
	assert.False(t, WithinWindow(now.Add(30*time.Minute), now, EarlyWindowLo, EarlyWindowHi))
	assert.False(t, WithinWindow(now.Add(28*time.Minute+59*time.Second), now, EarlyWindowLo, EarlyWindowHi))
}

func TestLocalDayBounds(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// 22:30 UTC on March 9 is already March 10 in Kolkata (+05:30).
	instant := time.Date(2026, 3, 9, 22, 30, 0, 0, time.UTC)
	start, end := LocalDayBounds(instant, loc)

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, loc).Unix(), start.Unix())
	assert.Equal(t, 10, start.In(loc).Day())
	assert.Equal(t, 10, end.In(loc).Day())
	assert.True(t, end.After(start))
}

func TestSameLocalDay(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	ref := time.Date(2026, 6, 15, 12, 0, 0, 0, loc)
	assert.True(t, SameLocalDay(time.Date(2026, 6, 15, 0, 0, 0, 0, loc), ref, loc))
	assert.True(t, SameLocalDay(time.Date(2026, 6, 15, 23, 59, 59, 0, loc), ref, loc))
	assert.False(t, SameLocalDay(time.Date(2026, 6, 16, 0, 0, 0, 0, loc), ref, loc))
	// Instant in another zone, same Berlin day.
	assert.True(t, SameLocalDay(time.Date(2026, 6, 15, 21, 0, 0, 0, time.UTC), ref, loc))
}
