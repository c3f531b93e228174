package synccache_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Gunvolt24/table_orders/internal/domain"
	"github.com/Gunvolt24/table_orders/internal/synccache"
	"github.com/stretchr/testify/require"
)

type snapshots struct {
	mu   sync.Mutex
	list []synccache.Snapshot
}

func (s *snapshots) add(snap synccache.Snapshot) {
	s.mu.Lock()
	s.list = append(s.list, snap)
	s.mu.Unlock()
}

func (s *snapshots) lastID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.list) - 1; i >= 0; i-- {
		if !s.list[i].Fetching && len(s.list[i].Orders) > 0 {
			return s.list[i].Orders[0].ID
		}
	}
	return 0
}

func TestSubscribe_InitialFetchAndPeriodicRefresh(t *testing.T) {
	t.Parallel()

	c := newCache(t, nil)
	f := &countingFetcher{}
	got := &snapshots{}

	stop := c.Subscribe(context.Background(), synccache.DashboardKey,
		synccache.QueryOptions{StaleTime: time.Hour}, 10*time.Millisecond, f.fetch, got.add)
	defer stop()

	require.Eventually(t, func() bool { return got.lastID() >= 1 }, time.Second, time.Millisecond)
	// таймер обновляет независимо от свежести
	require.Eventually(t, func() bool { return f.calls.Load() >= 3 }, time.Second, time.Millisecond)
	require.Eventually(t, func() bool { return got.lastID() >= 3 }, time.Second, time.Millisecond)
}

func TestSubscribe_StopTearsDownTimer(t *testing.T) {
	t.Parallel()

	c := newCache(t, nil)
	f := &countingFetcher{}

	stop := c.Subscribe(context.Background(), synccache.DashboardKey,
		synccache.QueryOptions{StaleTime: time.Hour}, 5*time.Millisecond, f.fetch, func(synccache.Snapshot) {})
	require.Eventually(t, func() bool { return f.calls.Load() >= 2 }, time.Second, time.Millisecond)

	stop()
	stop() // повторный вызов безопасен
	time.Sleep(20 * time.Millisecond)
	after := f.calls.Load()
	time.Sleep(60 * time.Millisecond)
	require.Equal(t, after, f.calls.Load(), "no orphaned periodic fetches after stop")
}

func TestSubscribe_ContextCancelTearsDown(t *testing.T) {
	t.Parallel()

	c := newCache(t, nil)
	f := &countingFetcher{}
	ctx, cancel := context.WithCancel(context.Background())

	_ = c.Subscribe(ctx, synccache.DashboardKey,
		synccache.QueryOptions{StaleTime: time.Hour}, 5*time.Millisecond, f.fetch, func(synccache.Snapshot) {})
	require.Eventually(t, func() bool { return f.calls.Load() >= 1 }, time.Second, time.Millisecond)

	cancel()
	time.Sleep(20 * time.Millisecond)
	after := f.calls.Load()
	time.Sleep(60 * time.Millisecond)
	require.Equal(t, after, f.calls.Load())
}

func TestSubscribe_MutationTriggersRefetchForSubscribers(t *testing.T) {
	t.Parallel()

	c := newCache(t, nil)
	f := &countingFetcher{}
	got := &snapshots{}

	// интервал большой: обновление после мутации приходит только от инвалидации
	stop := c.Subscribe(context.Background(), synccache.DashboardKey,
		synccache.QueryOptions{StaleTime: time.Hour}, time.Hour, f.fetch, got.add)
	defer stop()
	require.Eventually(t, func() bool { return got.lastID() == 1 }, time.Second, time.Millisecond)

	_, err := synccache.Mutate(context.Background(), c, synccache.OrderTarget(1),
		func(context.Context) (domain.Order, error) {
			return domain.Order{ID: 1, Status: domain.StatusReady}, nil
		},
		synccache.Exact(synccache.DashboardKey))
	require.NoError(t, err)

	require.Eventually(t, func() bool { return got.lastID() == 2 }, time.Second, time.Millisecond)
	require.Eventually(t, func() bool { return c.Fresh(synccache.DashboardKey) }, time.Second, time.Millisecond)
}
