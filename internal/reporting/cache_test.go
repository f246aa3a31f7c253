package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResultCache_TTLExpiry(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c := newResultCache(5 * time.Minute)
	c.nowFn = func() time.Time { return now }

	c.Put("kpis||v1", 42)

	v, ok := c.Get("kpis||v1")
	require.True(t, ok)
	require.Equal(t, 42, v)

	now = now.Add(5*time.Minute + time.Second)
	_, ok = c.Get("kpis||v1")
	require.False(t, ok, "entry expired")
}

func TestResultCache_MissOnUnknownKey(t *testing.T) {
	c := newResultCache(time.Minute)
	_, ok := c.Get("absent")
	require.False(t, ok)
}

func TestResultCache_PutSweepsExpired(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c := newResultCache(time.Minute)
	c.nowFn = func() time.Time { return now }

	c.Put("old", 1)
	now = now.Add(2 * time.Minute)
	c.Put("new", 2)

	c.mu.Lock()
	defer c.mu.Unlock()
	require.Len(t, c.entries, 1)
	require.Contains(t, c.entries, "new")
}
