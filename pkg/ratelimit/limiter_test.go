package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestKeyedLimiterBurstPerKey(t *testing.T) {
	l := NewPerMinute(1, 2, time.Minute)
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	require.True(t, l.Allow("a"))
	require.True(t, l.Allow("a"))
	require.False(t, l.Allow("a"))
	require.True(t, l.Allow("b"))
	require.Equal(t, 2, l.Len())
}

func TestKeyedLimiterEvictsIdleKeys(t *testing.T) {
	l := NewPerMinute(1, 1, time.Minute)
	current := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return current }

	require.True(t, l.Allow("a"))
	require.False(t, l.Allow("a"))

	current = current.Add(2 * time.Minute)
	require.True(t, l.Allow("b"))
	require.Equal(t, 1, l.Len())
	require.True(t, l.Allow("a"))
}

func TestKeyedLimiterReset(t *testing.T) {
	l := NewPerMinute(1, 1, time.Minute)
	require.True(t, l.Allow("a"))
	require.False(t, l.Allow("a"))
	l.Reset()
	require.Equal(t, 0, l.Len())
	require.True(t, l.Allow("a"))
}

func TestKeyedLimiterUnlimited(t *testing.T) {
	l := NewPerMinute(0, 0, 0)
	for i := 0; i < 100; i++ {
		require.True(t, l.Allow("a"))
	}
	var nilLimiter *KeyedLimiter
	require.True(t, nilLimiter.Allow("a"))
}
