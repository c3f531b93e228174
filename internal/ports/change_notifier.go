package ports

import (
	"context"

	"github.com/Gunvolt24/table_orders/internal/domain"
)

// ChangeNotifier - публикация событий об изменении заказов для других сессий/реплик.
type ChangeNotifier interface {
	Notify(ctx context.Context, ev domain.ChangeEvent) error
	Close() error
}
