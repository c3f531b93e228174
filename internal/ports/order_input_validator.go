package ports

import (
	"context"

	"github.com/Gunvolt24/table_orders/internal/domain"
)

// OrderInputValidator - проверка данных заказа перед отправкой в API.
type OrderInputValidator interface {
	ValidateNew(ctx context.Context, in *domain.NewOrder) error
	ValidateEdit(ctx context.Context, edit *domain.OrderEdit) error
	ValidateTable(ctx context.Context, table string) error
}
