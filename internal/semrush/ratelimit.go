package semrush

import (
	"context"
	"errors"
	"sync"
	"time"
)

const (
	limiterWindow = time.Second
	limiterPoll   = 100 * time.Millisecond
)

// Limiter gates outbound requests to at most limit per rolling one-second
// window. Admission is a blocking operation: callers wait until a slot is
// free rather than being rejected.
type Limiter struct {
	mu     sync.Mutex
	limit  int
	stamps []time.Time

	// Clock and sleep are injectable for deterministic tests.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewLimiter creates a limiter admitting at most limit requests per second.
// A limit of zero or below is a configuration error.
func NewLimiter(limit int) (*Limiter, error) {
	if limit <= 0 {
		return nil, errors.New("rate limit must be greater than zero")
	}
	return &Limiter{
		limit: limit,
		now:   time.Now,
		sleep: sleepContext,
	}, nil
}

// Wait blocks until a request slot is available within the rolling window,
// then records the admission. It returns early only when ctx is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if l.tryAdmit() {
			return nil
		}
		if err := l.sleep(ctx, limiterPoll); err != nil {
			return err
		}
	}
}

// tryAdmit prunes timestamps that have left the window and admits the
// caller if the remaining count is below the limit. Prune and record are
// a single critical section so concurrent waiters cannot overshoot.
func (l *Limiter) tryAdmit() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-limiterWindow)

	kept := l.stamps[:0]
	for _, ts := range l.stamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	l.stamps = kept

	if len(l.stamps) >= l.limit {
		return false
	}

	l.stamps = append(l.stamps, now)
	return true
}

// sleepContext sleeps for d or until ctx is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
