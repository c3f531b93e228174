package synccache

import (
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/table_orders/pkg/metrics"
)

// subscriber - последний неотданный снимок (буфер 1, новый вытесняет старый).
type subscriber struct {
	ch chan Snapshot
}

func (s *subscriber) offer(snap Snapshot) {
	for {
		select {
		case s.ch <- snap:
			return
		default:
		}
		select {
		case <-s.ch:
		default:
		}
	}
}

// Subscribe - подписка вью на запрос. Запись загружается сразу (если не свежая)
// и затем каждые interval независимо от свежести; fn получает каждый новый снимок.
// Таймер и доставка останавливаются при вызове stop или отмене ctx.
func (c *Cache) Subscribe(ctx context.Context, key Key, opts QueryOptions, interval time.Duration, fetch Fetcher, fn func(Snapshot)) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	sub := &subscriber{ch: make(chan Snapshot, 1)}

	c.mu.Lock()
	ent := c.store.getOrCreate(key, c.now())
	ent.fetch, ent.opts = fetch, opts
	ent.subscribers++
	if c.subs[key] == nil {
		c.subs[key] = make(map[*subscriber]struct{})
	}
	c.subs[key][sub] = struct{}{}
	if ent.hasData {
		sub.offer(snapshotOf(ent))
	}
	needFetch := !ent.fresh(c.now())
	gen := ent.gen
	c.mu.Unlock()
	metrics.Subscriptions.Inc()

	// доставка снимков; stop может вызываться из fn, поэтому её не ждём
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case snap := <-sub.ch:
				if ctx.Err() != nil {
					return
				}
				fn(snap)
			}
		}
	}()

	// загрузка при подписке и по таймеру
	pollerDone := make(chan struct{})
	go func() {
		defer close(pollerDone)
		if needFetch {
			c.refresh(ctx, key, gen, opts, fetch)
		}
		if interval <= 0 {
			<-ctx.Done()
			return
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.mu.Lock()
				cur := c.store.peek(key)
				if cur == nil {
					c.mu.Unlock()
					continue
				}
				gen := cur.gen
				c.mu.Unlock()
				c.refresh(ctx, key, gen, opts, fetch)
			}
		}
	}()

	var once sync.Once
	stop = func() {
		once.Do(func() {
			cancel()
			<-pollerDone
			c.unsubscribe(key, sub)
			metrics.Subscriptions.Dec()
		})
	}
	// отмена ctx вызывающего равносильна stop
	context.AfterFunc(ctx, stop)
	return stop
}

// refresh - загрузка подписки; ошибка уже записана в запись и ушла подписчикам.
func (c *Cache) refresh(ctx context.Context, key Key, gen uint64, opts QueryOptions, fetch Fetcher) {
	if _, err := c.load(ctx, key, gen, opts, fetch); err != nil && ctx.Err() == nil {
		c.log.Warnf(ctx, "subscription refresh %s: %v", key, err)
	}
}

func (c *Cache) unsubscribe(key Key, sub *subscriber) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if set := c.subs[key]; set != nil {
		delete(set, sub)
		if len(set) == 0 {
			delete(c.subs, key)
		}
	}
	if ent := c.store.peek(key); ent != nil && ent.subscribers > 0 {
		ent.subscribers--
		ent.lastAccess = c.now()
	}
}

// publishLocked - снимок записи всем её подписчикам (вызывается под c.mu).
func (c *Cache) publishLocked(ent *entry, fetching bool) {
	set := c.subs[ent.key]
	if len(set) == 0 {
		return
	}
	snap := snapshotOf(ent)
	snap.Fetching = snap.Fetching || fetching
	for sub := range set {
		sub.offer(snap)
	}
}
