package ports

import "context"

// ChangeHandler - применение события из ленты изменений (сырой JSON).
// Возвращает domain.ErrInvalidChange для событий, которые нельзя разобрать.
type ChangeHandler interface {
	ApplyChange(ctx context.Context, raw []byte) error
}
