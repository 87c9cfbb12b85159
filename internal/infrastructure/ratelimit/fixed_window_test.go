package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(limit int, size time.Duration) (*FixedWindow, *time.Time) {
	l := NewFixedWindow(limit, size)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestFixedWindowAllowsUpToLimit(t *testing.T) {
	l, _ := newTestLimiter(10, time.Minute)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		ok, err := l.Allow(ctx, "client-a")
		require.NoError(t, err)
		assert.True(t, ok, "request %d should be allowed", i+1)
	}

	ok, err := l.Allow(ctx, "client-a")
	require.NoError(t, err)
	assert.False(t, ok, "11th request should be rejected")
}

func TestFixedWindowResetsAfterExpiry(t *testing.T) {
	l, now := newTestLimiter(2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := l.Allow(ctx, "client-a")
		require.NoError(t, err)
	}

	// 窗口内仍然拒绝
	*now = now.Add(59 * time.Second)
	ok, err := l.Allow(ctx, "client-a")
	require.NoError(t, err)
	assert.False(t, ok)

	// 窗口起点锚定在首个请求，满一分钟后重置
	*now = now.Add(time.Second)
	ok, err = l.Allow(ctx, "client-a")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFixedWindowKeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)
	ctx := context.Background()

	ok, err := l.Allow(ctx, "client-a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.Allow(ctx, "client-a")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = l.Allow(ctx, "client-b")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFixedWindowDefaults(t *testing.T) {
	l := NewFixedWindow(0, 0)
	assert.Equal(t, 10, l.limit)
	assert.Equal(t, time.Minute, l.size)
}
