package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Gunvolt24/table_orders/internal/domain"
	"github.com/Gunvolt24/table_orders/internal/ports"
	"github.com/Gunvolt24/table_orders/internal/ports/mocks"
	"github.com/Gunvolt24/table_orders/internal/synccache"
	"github.com/Gunvolt24/table_orders/internal/usecase"
	"github.com/Gunvolt24/table_orders/pkg/validate"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debugf(context.Context, string, ...any) {}
func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

func testPolicy() usecase.Policy {
	p := usecase.DefaultPolicy()
	p.DashboardRetry = 0
	return p
}

func newService(t *testing.T, gw ports.OrderGateway, notifier ports.ChangeNotifier) (*usecase.OrderService, *synccache.Cache) {
	t.Helper()
	return newServiceWith(t, gw, validate.NewOrderValidator(), notifier, testPolicy())
}

func newServiceWith(t *testing.T, gw ports.OrderGateway, v ports.OrderInputValidator, notifier ports.ChangeNotifier, p usecase.Policy) (*usecase.OrderService, *synccache.Cache) {
	t.Helper()
	cache := synccache.New(synccache.Options{
		Capacity:     64,
		GCTime:       time.Minute,
		RetryInitial: time.Millisecond,
		RetryMax:     2 * time.Millisecond,
	}, noopLogger{})
	t.Cleanup(cache.Close)
	return usecase.NewOrderService(gw, cache, v, notifier, noopLogger{}, p), cache
}

var created = time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

func activeOrders() []domain.Order {
	return []domain.Order{
		{ID: 1, Table: "5", Items: "Pizza", Status: domain.StatusReceived, CreatedAt: created},
		{ID: 2, Table: "3", Items: "Suco", Status: domain.StatusReady, CreatedAt: created.Add(time.Minute)},
		{ID: 3, Table: "5", Items: "Lasanha", Status: domain.StatusInPreparation, CreatedAt: created.Add(2 * time.Minute)},
	}
}

func TestTableOrders_CachedWithinStaleTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockOrderGateway(ctrl)
	svc, _ := newService(t, gw, nil)

	gw.EXPECT().ListOrdersForTable(gomock.Any(), "5").Return(activeOrders()[:1]).Times(1)

	for range 2 {
		got, err := svc.TableOrders(context.Background(), "5")
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, int64(1), got[0].ID)
	}
}

func TestTableOrders_InvalidTableNeverReachesGateway(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockOrderGateway(ctrl)
	v := mocks.NewMockOrderInputValidator(ctrl)
	svc, _ := newServiceWith(t, gw, v, nil, testPolicy())

	v.EXPECT().ValidateTable(gomock.Any(), "").Return(validate.ErrInvalidOrder)

	_, err := svc.TableOrders(context.Background(), "")
	require.ErrorIs(t, err, validate.ErrInvalidOrder)
}

func TestDashboardOrders_GroupsByStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockOrderGateway(ctrl)
	svc, _ := newService(t, gw, nil)

	gw.EXPECT().ListAllOrders(gomock.Any()).Return(activeOrders(), nil)

	d, err := svc.DashboardOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, d.Orders, 3)
	require.Len(t, d.Sections, 3)
	require.Equal(t, domain.StatusReceived, d.Sections[0].Status)
	require.Equal(t, domain.StatusInPreparation, d.Sections[1].Status)
	require.Equal(t, domain.StatusReady, d.Sections[2].Status)
	require.False(t, d.UpdatedAt.IsZero())
}

func TestDashboardOrders_ErrorReachesCaller(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockOrderGateway(ctrl)
	svc, _ := newService(t, gw, nil)

	apiErr := &domain.ServerError{Method: "GET", Path: "/api/Pedidos", StatusCode: 503}
	gw.EXPECT().ListAllOrders(gomock.Any()).Return(nil, apiErr)

	_, err := svc.DashboardOrders(context.Background())
	require.ErrorIs(t, err, domain.ErrServer)
}

func TestRefreshDashboard_BypassesFreshness(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockOrderGateway(ctrl)
	svc, _ := newService(t, gw, nil)

	gw.EXPECT().ListAllOrders(gomock.Any()).Return(activeOrders(), nil).Times(2)

	_, err := svc.DashboardOrders(context.Background())
	require.NoError(t, err)
	_, err = svc.RefreshDashboard(context.Background())
	require.NoError(t, err)
}

func TestCreateOrder_InvalidatesDashboardAndNotifies(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockOrderGateway(ctrl)
	notifier := mocks.NewMockChangeNotifier(ctrl)
	svc, cache := newService(t, gw, notifier)
	ctx := context.Background()

	gw.EXPECT().ListAllOrders(gomock.Any()).Return(activeOrders(), nil)
	_, err := svc.DashboardOrders(ctx)
	require.NoError(t, err)
	require.True(t, cache.Fresh(synccache.DashboardKey))

	newOrder := domain.Order{ID: 4, Table: "5", Items: "Pizza", Status: domain.StatusReceived, CreatedAt: created}
	gw.EXPECT().CreateOrder(gomock.Any(), domain.NewOrder{Table: "5", Items: "Pizza", Note: "sem cebola"}).Return(newOrder, nil)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ev domain.ChangeEvent) error {
			require.Equal(t, domain.ChangeCreated, ev.Kind)
			require.Equal(t, int64(4), ev.OrderID)
			require.Equal(t, "5", ev.Table)
			return nil
		})

	got, err := svc.CreateOrder(ctx, domain.NewOrder{Table: "5", Items: "Pizza", Note: "sem cebola"})
	require.NoError(t, err)
	require.Equal(t, int64(4), got.ID)
	require.False(t, cache.Fresh(synccache.DashboardKey))

	// следующее чтение дашборда идёт в API и видит новый заказ
	gw.EXPECT().ListAllOrders(gomock.Any()).Return(append(activeOrders(), newOrder), nil)
	d, err := svc.DashboardOrders(ctx)
	require.NoError(t, err)
	require.Len(t, d.Orders, 4)
}

func TestCreateOrder_ValidationFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockOrderGateway(ctrl)
	svc, _ := newService(t, gw, nil)

	_, err := svc.CreateOrder(context.Background(), domain.NewOrder{Table: "5"})
	require.ErrorIs(t, err, validate.ErrInvalidOrder)
}

func TestCreateOrder_GatewayErrorKeepsCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockOrderGateway(ctrl)
	svc, cache := newService(t, gw, nil)
	ctx := context.Background()

	gw.EXPECT().ListAllOrders(gomock.Any()).Return(activeOrders(), nil)
	_, err := svc.DashboardOrders(ctx)
	require.NoError(t, err)

	gw.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(domain.Order{}, domain.ErrTransport)
	_, err = svc.CreateOrder(ctx, domain.NewOrder{Table: "5", Items: "Pizza"})
	require.ErrorIs(t, err, domain.ErrTransport)
	require.True(t, cache.Fresh(synccache.DashboardKey))
}

func TestAdvanceStatus_SecondCallWhileInFlightRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockOrderGateway(ctrl)
	svc, cache := newService(t, gw, nil)

	release := make(chan struct{})
	gw.EXPECT().AdvanceStatus(gomock.Any(), int64(1)).
		DoAndReturn(func(context.Context, int64) (domain.Order, error) {
			<-release
			return domain.Order{ID: 1, Table: "5", Status: domain.StatusInPreparation}, nil
		}).Times(1)

	var wg sync.WaitGroup
	wg.Add(1)
	var first domain.Order
	var firstErr error
	go func() {
		defer wg.Done()
		first, firstErr = svc.AdvanceStatus(context.Background(), 1)
	}()
	require.Eventually(t, func() bool { return cache.InFlight(synccache.OrderTarget(1)) }, time.Second, time.Millisecond)

	_, err := svc.AdvanceStatus(context.Background(), 1)
	require.ErrorIs(t, err, domain.ErrMutationInFlight)

	close(release)
	wg.Wait()
	require.NoError(t, firstErr)
	require.Equal(t, domain.StatusInPreparation, first.Status)
}

func TestAdvanceStatus_DeliveredPublishedAsRemoved(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockOrderGateway(ctrl)
	notifier := mocks.NewMockChangeNotifier(ctrl)
	svc, _ := newService(t, gw, notifier)

	gw.EXPECT().AdvanceStatus(gomock.Any(), int64(2)).
		Return(domain.Order{ID: 2, Table: "3", Status: domain.StatusDelivered}, nil)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ev domain.ChangeEvent) error {
			require.Equal(t, domain.ChangeRemoved, ev.Kind)
			return nil
		})

	got, err := svc.AdvanceStatus(context.Background(), 2)
	require.NoError(t, err)
	require.True(t, got.Status.IsTerminal())
}

func TestAdvanceStatus_NotifyFailureDoesNotFailMutation(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockOrderGateway(ctrl)
	notifier := mocks.NewMockChangeNotifier(ctrl)
	svc, _ := newService(t, gw, notifier)

	gw.EXPECT().AdvanceStatus(gomock.Any(), int64(1)).
		Return(domain.Order{ID: 1, Table: "5", Status: domain.StatusInPreparation}, nil)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	_, err := svc.AdvanceStatus(context.Background(), 1)
	require.NoError(t, err)
}

func TestAdvanceStatus_NotFoundInvalidatesDashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockOrderGateway(ctrl)
	svc, cache := newService(t, gw, nil)

	gw.EXPECT().ListAllOrders(gomock.Any()).Return(activeOrders(), nil)
	_, err := svc.DashboardOrders(context.Background())
	require.NoError(t, err)
	require.True(t, cache.Fresh(synccache.DashboardKey))

	gw.EXPECT().AdvanceStatus(gomock.Any(), int64(1)).
		Return(domain.Order{}, fmt.Errorf("order 1: %w", domain.ErrNotFound))

	_, err = svc.AdvanceStatus(context.Background(), 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.False(t, cache.Fresh(synccache.DashboardKey))

	gw.EXPECT().ListAllOrders(gomock.Any()).Return(activeOrders()[1:], nil)
	d, err := svc.DashboardOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, d.Orders, len(activeOrders())-1)
}

func TestEditOrder_StatusTakenFromDashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockOrderGateway(ctrl)
	svc, _ := newService(t, gw, nil)

	gw.EXPECT().ListAllOrders(gomock.Any()).Return(activeOrders(), nil)
	gw.EXPECT().EditOrder(gomock.Any(), int64(3), domain.OrderEdit{
		Table: "6", Items: "Lasanha", Note: "mesa trocada", Status: domain.StatusInPreparation,
	}).Return(domain.Order{ID: 3, Table: "6", Items: "Lasanha", Note: "mesa trocada", Status: domain.StatusInPreparation}, nil)

	got, err := svc.EditOrder(context.Background(), 3, domain.OrderEdit{Table: "6", Items: "Lasanha", Note: "mesa trocada"})
	require.NoError(t, err)
	require.Equal(t, "6", got.Table)
	require.Equal(t, domain.StatusInPreparation, got.Status)
}

func TestEditOrder_UnknownOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockOrderGateway(ctrl)
	svc, cache := newService(t, gw, nil)

	gw.EXPECT().ListAllOrders(gomock.Any()).Return(activeOrders(), nil)

	_, err := svc.EditOrder(context.Background(), 99, domain.OrderEdit{Table: "6", Items: "Pizza"})
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.False(t, cache.InFlight(synccache.OrderTarget(99)))
}

func TestEditOrder_ExplicitStatusPassedThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockOrderGateway(ctrl)
	svc, _ := newService(t, gw, nil)

	edit := domain.OrderEdit{Table: "5", Items: "Pizza", Status: domain.StatusReady}
	gw.EXPECT().EditOrder(gomock.Any(), int64(1), edit).
		Return(domain.Order{ID: 1, Table: "5", Items: "Pizza", Status: domain.StatusReady}, nil)

	_, err := svc.EditOrder(context.Background(), 1, edit)
	require.NoError(t, err)
}

func TestApplyChange_InvalidatesDashboardAndTable(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockOrderGateway(ctrl)
	svc, cache := newService(t, gw, nil)
	ctx := context.Background()

	gw.EXPECT().ListAllOrders(gomock.Any()).Return(activeOrders(), nil)
	gw.EXPECT().ListOrdersForTable(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	_, err := svc.DashboardOrders(ctx)
	require.NoError(t, err)
	_, err = svc.TableOrders(ctx, "5")
	require.NoError(t, err)
	_, err = svc.TableOrders(ctx, "3")
	require.NoError(t, err)

	err = svc.ApplyChange(ctx, []byte(`{"kind":"advanced","orderId":1,"table":"5","status":"InPreparation"}`))
	require.NoError(t, err)

	require.False(t, cache.Fresh(synccache.DashboardKey))
	require.False(t, cache.Fresh(synccache.TableKey("5")))
	require.True(t, cache.Fresh(synccache.TableKey("3")))
}

func TestApplyChange_WithoutTableInvalidatesAllTables(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockOrderGateway(ctrl)
	svc, cache := newService(t, gw, nil)
	ctx := context.Background()

	gw.EXPECT().ListOrdersForTable(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	_, err := svc.TableOrders(ctx, "5")
	require.NoError(t, err)
	_, err = svc.TableOrders(ctx, "3")
	require.NoError(t, err)

	require.NoError(t, svc.ApplyChange(ctx, []byte(`{"kind":"edited","orderId":7}`)))
	require.False(t, cache.Fresh(synccache.TableKey("5")))
	require.False(t, cache.Fresh(synccache.TableKey("3")))
}

func TestApplyChange_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockOrderGateway(ctrl)
	svc, _ := newService(t, gw, nil)

	for _, raw := range []string{"{", `{"kind":"exploded","orderId":1}`, `{"kind":"created"}`} {
		err := svc.ApplyChange(context.Background(), []byte(raw))
		require.ErrorIs(t, err, domain.ErrInvalidChange, raw)
	}
}

func TestWatchDashboard_DeliversPeriodicSnapshots(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockOrderGateway(ctrl)
	p := testPolicy()
	p.RefetchInterval = 10 * time.Millisecond
	svc, _ := newServiceWith(t, gw, validate.NewOrderValidator(), nil, p)

	gw.EXPECT().ListAllOrders(gomock.Any()).Return(activeOrders(), nil).MinTimes(2)

	var mu sync.Mutex
	var seen int
	stop := svc.WatchDashboard(context.Background(), func(d domain.Dashboard, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err == nil && len(d.Orders) == 3 {
			seen++
		}
	})
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return seen >= 2
	}, 2*time.Second, 5*time.Millisecond)
	stop()
}
