package synccache

import (
	"container/list"
	"time"

	"github.com/Gunvolt24/table_orders/internal/domain"
	"github.com/Gunvolt24/table_orders/pkg/metrics"
)

// entry - запись кэша; все поля под мьютексом Cache.
type entry struct {
	key Key

	orders    []domain.Order
	updatedAt time.Time
	err       error
	hasData   bool

	// gen растёт при инвалидации; данные свежие, только если dataGen == gen.
	gen     uint64
	dataGen uint64

	fetching    int
	subscribers int
	lastAccess  time.Time

	// последний известный способ загрузки - для фонового перезапроса после инвалидации
	fetch Fetcher
	opts  QueryOptions
}

func (e *entry) fresh(now time.Time) bool {
	if !e.hasData || e.err != nil || e.dataGen != e.gen {
		return false
	}
	return now.Sub(e.updatedAt) < e.opts.StaleTime
}

func (e *entry) evictable() bool { return e.subscribers == 0 && e.fetching == 0 }

// entryStore - LRU записей с GC по времени последнего обращения.
// Записи с подписчиками или загрузкой в полёте не вытесняются.
type entryStore struct {
	capacity int
	gcTime   time.Duration

	ll    *list.List
	index map[Key]*list.Element
}

func newEntryStore(capacity int, gcTime time.Duration) *entryStore {
	if capacity <= 0 {
		capacity = 1
	}
	return &entryStore{
		capacity: capacity,
		gcTime:   gcTime,
		ll:       list.New(),
		index:    make(map[Key]*list.Element),
	}
}

// peek - запись без обновления LRU.
func (s *entryStore) peek(key Key) *entry {
	if elem, ok := s.index[key]; ok {
		return elem.Value.(*entry)
	}
	return nil
}

// getOrCreate - запись по ключу (новая при отсутствии), отмечается как использованная.
func (s *entryStore) getOrCreate(key Key, now time.Time) *entry {
	if elem, ok := s.index[key]; ok {
		s.ll.MoveToFront(elem)
		ent := elem.Value.(*entry)
		ent.lastAccess = now
		return ent
	}

	s.pruneExpiredFromBack(now)

	ent := &entry{key: key, lastAccess: now}
	s.index[key] = s.ll.PushFront(ent)
	metrics.CacheSize.Set(float64(len(s.index)))

	if s.ll.Len() > s.capacity {
		s.evictLRU()
	}
	return ent
}

// each - обход всех записей (от свежих к старым).
func (s *entryStore) each(fn func(*entry)) {
	for elem := s.ll.Front(); elem != nil; elem = elem.Next() {
		fn(elem.Value.(*entry))
	}
}

func (s *entryStore) len() int { return len(s.index) }

// evictLRU - вытесняет самую старую свободную запись.
func (s *entryStore) evictLRU() {
	for elem := s.ll.Back(); elem != nil; elem = elem.Prev() {
		if elem.Value.(*entry).evictable() {
			s.removeElement(elem)
			metrics.CacheOps.WithLabelValues("evicted").Inc()
			metrics.CacheSize.Set(float64(len(s.index)))
			return
		}
	}
}

func (s *entryStore) removeElement(elem *list.Element) {
	ent := elem.Value.(*entry)
	delete(s.index, ent.key)
	s.ll.Remove(elem)
}

// pruneExpiredFromBack - удаляет неиспользуемые записи с хвоста до первой актуальной.
func (s *entryStore) pruneExpiredFromBack(now time.Time) {
	if s.gcTime <= 0 {
		return
	}
	for elem := s.ll.Back(); elem != nil; {
		ent := elem.Value.(*entry)
		if now.Sub(ent.lastAccess) <= s.gcTime {
			return
		}
		prev := elem.Prev()
		if ent.evictable() {
			s.removeElement(elem)
			metrics.CacheOps.WithLabelValues("expired").Inc()
			metrics.CacheSize.Set(float64(len(s.index)))
		}
		elem = prev
	}
}
