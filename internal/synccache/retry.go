package synccache

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// backoff - экспоненциальная задержка с equal jitter: половина фиксирована, половина случайна.
type backoff struct {
	initial time.Duration
	max     time.Duration

	mu  sync.Mutex
	rnd *rand.Rand
}

func newBackoff(initial, maxDelay time.Duration) *backoff {
	if initial <= 0 {
		initial = 500 * time.Millisecond
	}
	if maxDelay < initial {
		maxDelay = initial
	}
	return &backoff{
		initial: initial,
		max:     maxDelay,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // джиттер, не криптография
	}
}

// delay - задержка перед повтором номер attempt (с нуля).
func (b *backoff) delay(attempt int) time.Duration {
	d := b.initial
	for i := 0; i < attempt && d < b.max; i++ {
		d *= 2
	}
	if d > b.max {
		d = b.max
	}
	return b.withJitterEqual(d)
}

func (b *backoff) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	b.mu.Lock()
	jitter := time.Duration(b.rnd.Int63n(int64(d-half) + 1))
	b.mu.Unlock()
	return half + jitter
}

// sleep - ждёт d или отмену контекста; false при отмене.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
