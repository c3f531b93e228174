// Пакет synccache - общий кэш запросов заказов для вью (стол клиента, дашборд персонала):
// свежесть, единственная загрузка в полёте на запрос, повторы с backoff,
// инвалидация по поколениям, подписки с периодическим обновлением и
// эксклюзивные мутации по цели.
package synccache

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/Gunvolt24/table_orders/internal/domain"
	"github.com/Gunvolt24/table_orders/internal/ports"
	"github.com/Gunvolt24/table_orders/pkg/ctxmeta"
	"github.com/Gunvolt24/table_orders/pkg/metrics"
	"golang.org/x/sync/singleflight"
)

// Fetcher - загрузка значения запроса из API.
type Fetcher func(ctx context.Context) ([]domain.Order, error)

// QueryOptions - политика одного запроса.
type QueryOptions struct {
	// Name - метка для метрик и логов (table, dashboard).
	Name string
	// StaleTime - сколько значение считается свежим.
	StaleTime time.Duration
	// Retry - число автоматических повторов после неудачной загрузки.
	Retry int
}

// Snapshot - состояние записи, которое видит подписчик.
type Snapshot struct {
	Orders    []domain.Order
	UpdatedAt time.Time
	Err       error
	Fetching  bool
}

// Options - параметры кэша.
type Options struct {
	Capacity     int
	GCTime       time.Duration
	RetryInitial time.Duration
	RetryMax     time.Duration
	Now          func() time.Time
}

// Cache - кэш запросов. Запись по ключу - единственное разделяемое изменяемое состояние.
type Cache struct {
	mu       sync.Mutex
	store    *entryStore
	subs     map[Key]map[*subscriber]struct{}
	mutating map[string]struct{}

	group   singleflight.Group
	backoff *backoff
	now     func() time.Time
	log     ports.Logger

	// base отменяется в Close - останавливает фоновые загрузки
	base   context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New - конструктор кэша.
func New(opts Options, log ports.Logger) *Cache {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	base, cancel := context.WithCancel(context.Background())
	return &Cache{
		store:    newEntryStore(opts.Capacity, opts.GCTime),
		subs:     make(map[Key]map[*subscriber]struct{}),
		mutating: make(map[string]struct{}),
		backoff:  newBackoff(opts.RetryInitial, opts.RetryMax),
		now:      now,
		log:      log,
		base:     base,
		cancel:   cancel,
	}
}

// Query - свежее значение из кэша или загрузка (общая для всех одновременных читателей).
// Ошибка загрузки возвращается, последнее удачное значение в записи сохраняется.
func (c *Cache) Query(ctx context.Context, key Key, opts QueryOptions, fetch Fetcher) ([]domain.Order, error) {
	c.mu.Lock()
	ent := c.store.getOrCreate(key, c.now())
	ent.fetch, ent.opts = fetch, opts
	if ent.fresh(c.now()) {
		orders := domain.CloneOrders(ent.orders)
		c.mu.Unlock()
		metrics.CacheOps.WithLabelValues("hit").Inc()
		return orders, nil
	}
	if ent.hasData {
		metrics.CacheOps.WithLabelValues("stale").Inc()
	} else {
		metrics.CacheOps.WithLabelValues("miss").Inc()
	}
	gen := ent.gen
	c.mu.Unlock()

	return c.load(ctx, key, gen, opts, fetch)
}

// Refetch - принудительная загрузка: запись инвалидируется, затем читается заново.
func (c *Cache) Refetch(ctx context.Context, key Key, opts QueryOptions, fetch Fetcher) ([]domain.Order, error) {
	c.Invalidate(Exact(key))
	return c.Query(ctx, key, opts, fetch)
}

// Invalidate - помечает подходящие записи устаревшими (рост поколения).
// Записи с подписчиками перезапрашиваются в фоне. Возвращает число записей.
func (c *Cache) Invalidate(matchers ...Matcher) int {
	type refetch struct {
		key   Key
		gen   uint64
		opts  QueryOptions
		fetch Fetcher
	}
	var pending []refetch

	c.mu.Lock()
	n := 0
	c.store.each(func(ent *entry) {
		if !matchAny(ent.key, matchers) {
			return
		}
		ent.gen++
		n++
		metrics.CacheOps.WithLabelValues("invalidated").Inc()
		if ent.subscribers > 0 && ent.fetch != nil {
			pending = append(pending, refetch{key: ent.key, gen: ent.gen, opts: ent.opts, fetch: ent.fetch})
			c.publishLocked(ent, true)
		}
	})
	c.mu.Unlock()

	for _, p := range pending {
		c.background(p.key, p.gen, p.opts, p.fetch)
	}
	return n
}

// Peek - текущее состояние записи без загрузки.
func (c *Cache) Peek(key Key) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ent := c.store.peek(key)
	if ent == nil {
		return Snapshot{}, false
	}
	return snapshotOf(ent), true
}

// Fresh - свежа ли запись сейчас.
func (c *Cache) Fresh(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	ent := c.store.peek(key)
	return ent != nil && ent.fresh(c.now())
}

// Len - число записей.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.len()
}

// Close - останавливает фоновые загрузки и ждёт их завершения.
func (c *Cache) Close() {
	c.cancel()
	c.wg.Wait()
}

// load - ожидание общей загрузки для (key, gen). Читатели после инвалидации
// получают новый ключ singleflight и не присоединяются к старой загрузке.
func (c *Cache) load(ctx context.Context, key Key, gen uint64, opts QueryOptions, fetch Fetcher) ([]domain.Order, error) {
	sfKey := string(key) + "#" + strconv.FormatUint(gen, 10)

	ch := c.group.DoChan(sfKey, func() (any, error) {
		// загрузка переживает отмену первого читателя; её прерывает только Close
		fetchCtx, cancel := context.WithCancel(ctxmeta.WithoutCancel(ctx))
		defer cancel()
		stop := context.AfterFunc(c.base, cancel)
		defer stop()
		return c.run(fetchCtx, key, gen, opts, fetch)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			metrics.CacheOps.WithLabelValues("dedup").Inc()
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return domain.CloneOrders(res.Val.([]domain.Order)), nil
	}
}

// background - фоновая загрузка (после инвалидации или по таймеру подписки).
func (c *Cache) background(key Key, gen uint64, opts QueryOptions, fetch Fetcher) {
	if c.base.Err() != nil {
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if _, err := c.load(c.base, key, gen, opts, fetch); err != nil && c.base.Err() == nil {
			c.log.Warnf(c.base, "background refetch %s: %v", key, err)
		}
	}()
}

// run - загрузка с повторами и запись результата, если поколение не сменилось.
func (c *Cache) run(ctx context.Context, key Key, gen uint64, opts QueryOptions, fetch Fetcher) ([]domain.Order, error) {
	c.mu.Lock()
	if ent := c.store.peek(key); ent != nil {
		ent.fetching++
		c.publishLocked(ent, true)
	}
	c.mu.Unlock()

	orders, err := c.fetchWithRetry(ctx, key, opts, fetch)

	c.mu.Lock()
	defer c.mu.Unlock()

	ent := c.store.peek(key)
	if ent == nil {
		return orders, err
	}
	ent.fetching--

	switch {
	case err != nil:
		// ошибка устаревшего поколения не затирает результат нового
		if ent.gen == gen {
			ent.err = err
		}
	case ent.gen == gen:
		ent.orders = domain.CloneOrders(orders)
		ent.updatedAt = c.now()
		ent.dataGen = gen
		ent.hasData = true
		ent.err = nil
	case !ent.hasData || gen > ent.dataGen:
		// инвалидация во время загрузки: значение показываем, но свежим не считаем
		ent.orders = domain.CloneOrders(orders)
		ent.updatedAt = c.now()
		ent.dataGen = gen
		ent.hasData = true
		c.log.Debugf(ctx, "sync cache %s: fetch of generation %d superseded by %d", key, gen, ent.gen)
	default:
		c.log.Debugf(ctx, "sync cache %s: dropped result of generation %d, data of %d kept", key, gen, ent.dataGen)
	}
	c.publishLocked(ent, false)
	return orders, err
}

func (c *Cache) fetchWithRetry(ctx context.Context, key Key, opts QueryOptions, fetch Fetcher) ([]domain.Order, error) {
	name := opts.Name
	if name == "" {
		name = string(key)
	}

	for attempt := 0; ; attempt++ {
		orders, err := fetch(ctx)
		if err == nil {
			metrics.QueryFetches.WithLabelValues(name, "ok").Inc()
			if orders == nil {
				orders = []domain.Order{}
			}
			return orders, nil
		}
		if attempt >= opts.Retry || ctx.Err() != nil {
			metrics.QueryFetches.WithLabelValues(name, "error").Inc()
			return nil, fmt.Errorf("query %s: %w", key, err)
		}

		metrics.QueryFetches.WithLabelValues(name, "retry").Inc()
		d := c.backoff.delay(attempt)
		c.log.Debugf(ctx, "query %s failed (attempt %d/%d), retry in %s: %v", key, attempt+1, opts.Retry+1, d, err)
		if !sleep(ctx, d) {
			metrics.QueryFetches.WithLabelValues(name, "error").Inc()
			return nil, fmt.Errorf("query %s: %w", key, err)
		}
	}
}

func snapshotOf(ent *entry) Snapshot {
	return Snapshot{
		Orders:    domain.CloneOrders(ent.orders),
		UpdatedAt: ent.updatedAt,
		Err:       ent.err,
		Fetching:  ent.fetching > 0,
	}
}

func matchAny(key Key, matchers []Matcher) bool {
	for _, m := range matchers {
		if m != nil && m(key) {
			return true
		}
	}
	return false
}
