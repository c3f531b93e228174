package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/table_orders/internal/domain"
	"github.com/Gunvolt24/table_orders/internal/ports"
	"github.com/Gunvolt24/table_orders/internal/synccache"
	"github.com/Gunvolt24/table_orders/pkg/metrics"
)

// Проверка, что OrderService удовлетворяет интерфейсам сервисного слоя.
var (
	_ ports.OrderSyncService = (*OrderService)(nil)
	_ ports.ChangeHandler    = (*OrderService)(nil)
)

// Policy - политика запросов вью.
type Policy struct {
	TableStaleTime     time.Duration
	DashboardStaleTime time.Duration
	RefetchInterval    time.Duration
	DashboardRetry     int
}

// DefaultPolicy - стол: свежесть 10s без повторов; дашборд: 5s, 3 повтора, обновление раз в 30s.
func DefaultPolicy() Policy {
	return Policy{
		TableStaleTime:     10 * time.Second,
		DashboardStaleTime: 5 * time.Second,
		RefetchInterval:    30 * time.Second,
		DashboardRetry:     3,
	}
}

// OrderService — запросы и изменения заказов для вью поверх кэша синхронизации (без знаний о транспорте).
type OrderService struct {
	gateway   ports.OrderGateway        // удалённый API заказов
	cache     *synccache.Cache          // общий кэш запросов
	validator ports.OrderInputValidator // проверка входных данных
	notifier  ports.ChangeNotifier      // лента изменений (может быть nil)
	log       ports.Logger              // логгер
	policy    Policy
	now       func() time.Time
}

// NewOrderService — DI-конструктор.
func NewOrderService(
	gateway ports.OrderGateway,
	cache *synccache.Cache,
	validator ports.OrderInputValidator,
	notifier ports.ChangeNotifier,
	log ports.Logger,
	policy Policy,
) *OrderService {
	return &OrderService{
		gateway:   gateway,
		cache:     cache,
		validator: validator,
		notifier:  notifier,
		log:       log,
		policy:    policy,
		now:       time.Now,
	}
}

func (s *OrderService) tableQuery() synccache.QueryOptions {
	// шлюз уже поглощает ошибки стола, повторять нечего
	return synccache.QueryOptions{Name: "table", StaleTime: s.policy.TableStaleTime, Retry: 0}
}

func (s *OrderService) dashboardQuery() synccache.QueryOptions {
	return synccache.QueryOptions{Name: "dashboard", StaleTime: s.policy.DashboardStaleTime, Retry: s.policy.DashboardRetry}
}

func (s *OrderService) fetchTable(table string) synccache.Fetcher {
	return func(ctx context.Context) ([]domain.Order, error) {
		return s.gateway.ListOrdersForTable(ctx, table), nil
	}
}

func (s *OrderService) fetchAll(ctx context.Context) ([]domain.Order, error) {
	return s.gateway.ListAllOrders(ctx)
}

// TableOrders — заказы стола для клиента. Ошибки API не выходят наружу (пустой список).
func (s *OrderService) TableOrders(ctx context.Context, table string) ([]domain.Order, error) {
	if err := s.validator.ValidateTable(ctx, table); err != nil {
		return nil, err
	}
	orders, err := s.cache.Query(ctx, synccache.TableKey(table), s.tableQuery(), s.fetchTable(table))
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// DashboardOrders — активные заказы для персонала, сгруппированные по статусам.
func (s *OrderService) DashboardOrders(ctx context.Context) (domain.Dashboard, error) {
	orders, err := s.cache.Query(ctx, synccache.DashboardKey, s.dashboardQuery(), s.fetchAll)
	if err != nil {
		s.log.Errorf(ctx, "dashboard orders: %v", err)
		return domain.Dashboard{}, err
	}
	return domain.NewDashboard(orders, s.updatedAt(synccache.DashboardKey)), nil
}

// RefreshDashboard — принудительное обновление (кнопка "Atualizar").
func (s *OrderService) RefreshDashboard(ctx context.Context) (domain.Dashboard, error) {
	orders, err := s.cache.Refetch(ctx, synccache.DashboardKey, s.dashboardQuery(), s.fetchAll)
	if err != nil {
		s.log.Errorf(ctx, "refresh dashboard: %v", err)
		return domain.Dashboard{}, err
	}
	return domain.NewDashboard(orders, s.updatedAt(synccache.DashboardKey)), nil
}

// WatchDashboard — подписка на дашборд с периодическим обновлением.
// fn получает каждый завершённый снимок; при ошибке - последние известные заказы и ошибку.
func (s *OrderService) WatchDashboard(ctx context.Context, fn func(domain.Dashboard, error)) (stop func()) {
	return s.cache.Subscribe(ctx, synccache.DashboardKey, s.dashboardQuery(), s.policy.RefetchInterval, s.fetchAll,
		func(snap synccache.Snapshot) {
			if snap.Fetching {
				return
			}
			fn(domain.NewDashboard(snap.Orders, snap.UpdatedAt), snap.Err)
		})
}

// CreateOrder — новый заказ клиента. Идентификатора ещё нет, поэтому без эксклюзивности.
func (s *OrderService) CreateOrder(ctx context.Context, in domain.NewOrder) (domain.Order, error) {
	if err := s.validator.ValidateNew(ctx, &in); err != nil {
		s.log.Warnf(ctx, "create order rejected: %v", err)
		return domain.Order{}, err
	}

	order, err := s.gateway.CreateOrder(ctx, in)
	if err != nil {
		metrics.Mutations.WithLabelValues("create", "error").Inc()
		s.log.Errorf(ctx, "create order table=%s: %v", in.Table, err)
		return domain.Order{}, err
	}
	metrics.Mutations.WithLabelValues("create", "ok").Inc()

	s.cache.Invalidate(synccache.Exact(synccache.DashboardKey), synccache.AllTables())
	s.notify(ctx, domain.ChangeCreated, order)
	s.log.Infof(ctx, "order created id=%d table=%s", order.ID, order.Table)
	return order, nil
}

// AdvanceStatus — один шаг вперёд по статусам; повторный вызов для того же заказа
// во время выполнения отклоняется.
func (s *OrderService) AdvanceStatus(ctx context.Context, id int64) (domain.Order, error) {
	order, err := synccache.Mutate(ctx, s.cache, synccache.OrderTarget(id),
		func(ctx context.Context) (domain.Order, error) {
			return s.gateway.AdvanceStatus(ctx, id)
		},
		synccache.Exact(synccache.DashboardKey), synccache.AllTables(),
	)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// заказа уже нет в API: вью, где он ещё показан, устарели
			s.cache.Invalidate(synccache.Exact(synccache.DashboardKey), synccache.AllTables())
		}
		s.mutationFailed(ctx, "advance", id, err)
		return domain.Order{}, err
	}
	metrics.Mutations.WithLabelValues("advance", "ok").Inc()

	s.notify(ctx, domain.ChangeAdvanced, order)
	s.log.Infof(ctx, "order advanced id=%d status=%s", order.ID, order.Status)
	return order, nil
}

// EditOrder — правка стола/описания/примечания. Статус не вычисляется: если не передан,
// берётся текущий из списка дашборда.
func (s *OrderService) EditOrder(ctx context.Context, id int64, edit domain.OrderEdit) (domain.Order, error) {
	if err := s.validator.ValidateEdit(ctx, &edit); err != nil {
		s.log.Warnf(ctx, "edit order id=%d rejected: %v", id, err)
		return domain.Order{}, err
	}

	order, err := synccache.Mutate(ctx, s.cache, synccache.OrderTarget(id),
		func(ctx context.Context) (domain.Order, error) {
			if edit.Status == "" {
				current, err := s.currentStatus(ctx, id)
				if err != nil {
					return domain.Order{}, err
				}
				edit.Status = current
			}
			return s.gateway.EditOrder(ctx, id, edit)
		},
		synccache.Exact(synccache.DashboardKey), synccache.AllTables(),
	)
	if err != nil {
		s.mutationFailed(ctx, "edit", id, err)
		return domain.Order{}, err
	}
	metrics.Mutations.WithLabelValues("edit", "ok").Inc()

	s.notify(ctx, domain.ChangeEdited, order)
	s.log.Infof(ctx, "order edited id=%d table=%s", order.ID, order.Table)
	return order, nil
}

// ApplyChange — событие из ленты изменений: инвалидирует затронутые запросы.
// Неразобранное событие - ErrInvalidChange (повторять бессмысленно).
func (s *OrderService) ApplyChange(ctx context.Context, raw []byte) error {
	ev, err := domain.ParseChangeEvent(raw)
	if err != nil {
		return err
	}

	tables := synccache.AllTables()
	if ev.Table != "" {
		tables = synccache.Exact(synccache.TableKey(ev.Table))
	}
	n := s.cache.Invalidate(synccache.Exact(synccache.DashboardKey), tables)
	s.log.Debugf(ctx, "change %s order=%d table=%s invalidated %d queries", ev.Kind, ev.OrderID, ev.Table, n)
	return nil
}

// currentStatus - статус заказа из запроса дашборда (свежего или перезагруженного).
func (s *OrderService) currentStatus(ctx context.Context, id int64) (domain.Status, error) {
	orders, err := s.cache.Query(ctx, synccache.DashboardKey, s.dashboardQuery(), s.fetchAll)
	if err != nil {
		return "", err
	}
	for _, o := range orders {
		if o.ID == id {
			return o.Status, nil
		}
	}
	return "", fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
}

func (s *OrderService) updatedAt(key synccache.Key) time.Time {
	if snap, ok := s.cache.Peek(key); ok && !snap.UpdatedAt.IsZero() {
		return snap.UpdatedAt
	}
	return s.now()
}

func (s *OrderService) mutationFailed(ctx context.Context, kind string, id int64, err error) {
	if errors.Is(err, domain.ErrMutationInFlight) {
		metrics.Mutations.WithLabelValues(kind, "rejected").Inc()
		s.log.Warnf(ctx, "%s order id=%d: %v", kind, id, err)
		return
	}
	metrics.Mutations.WithLabelValues(kind, "error").Inc()
	s.log.Errorf(ctx, "%s order id=%d: %v", kind, id, err)
}

// notify - публикация в ленту; ошибка только логируется.
func (s *OrderService) notify(ctx context.Context, kind domain.ChangeKind, order domain.Order) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, domain.ChangeFromOrder(kind, order, s.now())); err != nil {
		s.log.Warnf(ctx, "publish %s change for order id=%d: %v", kind, order.ID, err)
	}
}
