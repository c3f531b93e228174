package ports

import (
	"context"

	"github.com/Gunvolt24/table_orders/internal/domain"
)

// OrderSyncService - запросы и изменения, которые видят вью (стол клиента, дашборд).
type OrderSyncService interface {
	TableOrders(ctx context.Context, table string) ([]domain.Order, error)
	DashboardOrders(ctx context.Context) (domain.Dashboard, error)
	RefreshDashboard(ctx context.Context) (domain.Dashboard, error)
	WatchDashboard(ctx context.Context, fn func(domain.Dashboard, error)) (stop func())

	CreateOrder(ctx context.Context, in domain.NewOrder) (domain.Order, error)
	AdvanceStatus(ctx context.Context, id int64) (domain.Order, error)
	EditOrder(ctx context.Context, id int64, edit domain.OrderEdit) (domain.Order, error)
}
