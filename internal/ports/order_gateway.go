package ports

import (
	"context"

	"github.com/Gunvolt24/table_orders/internal/domain"
)

// OrderGateway - типизированная граница к удалённому API заказов.
type OrderGateway interface {
	// CreateOrder - создать заказ со статусом Received.
	CreateOrder(ctx context.Context, in domain.NewOrder) (domain.Order, error)

	// ListOrdersForTable - заказы стола; ошибки поглощаются, результат - пустой срез.
	ListOrdersForTable(ctx context.Context, table string) []domain.Order

	// ListAllOrders - все активные заказы (для персонала); ошибки возвращаются.
	ListAllOrders(ctx context.Context) ([]domain.Order, error)

	// AdvanceStatus - перечитать список, найти заказ и сдвинуть статус на один шаг.
	// Переход в Delivered выполняется удалением заказа.
	AdvanceStatus(ctx context.Context, id int64) (domain.Order, error)

	// EditOrder - PUT с переданными полями; статус не вычисляется.
	EditOrder(ctx context.Context, id int64, edit domain.OrderEdit) (domain.Order, error)
}
