package ports

import "context"

// MessageConsumer - фоновый читатель ленты изменений заказов.
type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
