package semrush

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewLimiterRejectsNonPositiveLimit(t *testing.T) {
	_, err := NewLimiter(0)
	require.Error(t, err)

	_, err = NewLimiter(-3)
	require.Error(t, err)
}

func TestLimiterAdmitsUpToLimitImmediately(t *testing.T) {
	limiter, err := NewLimiter(3)
	require.NoError(t, err)

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	limiter.sleep = func(ctx context.Context, d time.Duration) error {
		t.Fatal("admission below the limit must not sleep")
		return nil
	}

	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Wait(context.Background()))
	}
}

func TestLimiterDelaysOverflowUntilWindowSlides(t *testing.T) {
	limiter, err := NewLimiter(2)
	require.NoError(t, err)

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	slept := 0
	limiter.now = func() time.Time { return now }
	limiter.sleep = func(ctx context.Context, d time.Duration) error {
		require.Equal(t, 100*time.Millisecond, d)
		slept++
		now = now.Add(d)
		return nil
	}

	require.NoError(t, limiter.Wait(context.Background()))
	require.NoError(t, limiter.Wait(context.Background()))

	// Third admission must wait until the first timestamp leaves the
	// rolling window, delayed rather than rejected.
	require.NoError(t, limiter.Wait(context.Background()))
	require.Equal(t, 10, slept)
}

func TestLimiterNeverExceedsLimitPerWindow(t *testing.T) {
	limiter, err := NewLimiter(5)
	require.NoError(t, err)

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	var admissions []time.Time
	limiter.now = func() time.Time { return now }
	limiter.sleep = func(ctx context.Context, d time.Duration) error {
		now = now.Add(d)
		return nil
	}

	for i := 0; i < 20; i++ {
		require.NoError(t, limiter.Wait(context.Background()))
		admissions = append(admissions, now)
	}

	for i := range admissions {
		count := 0
		windowEnd := admissions[i].Add(time.Second)
		for _, ts := range admissions {
			if !ts.Before(admissions[i]) && ts.Before(windowEnd) {
				count++
			}
		}
		require.LessOrEqual(t, count, 5)
	}
}

func TestLimiterWaitHonorsContextCancellation(t *testing.T) {
	limiter, err := NewLimiter(1)
	require.NoError(t, err)

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	require.NoError(t, limiter.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, limiter.Wait(ctx), context.Canceled)
}

func TestLimiterSleepAbortsOnCancel(t *testing.T) {
	limiter, err := NewLimiter(1)
	require.NoError(t, err)

	require.NoError(t, limiter.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err = limiter.Wait(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
