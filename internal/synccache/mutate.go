package synccache

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/table_orders/internal/domain"
)

// Mutate - эксклюзивная по target мутация. Второй вызов для той же цели, пока первый
// выполняется, сразу получает ErrMutationInFlight (не ставится в очередь).
// При успехе подходящие записи инвалидируются; при ошибке кэш не меняется.
func Mutate[T any](ctx context.Context, c *Cache, target string, fn func(context.Context) (T, error), invalidate ...Matcher) (T, error) {
	var zero T
	if !c.acquire(target) {
		return zero, fmt.Errorf("%s: %w", target, domain.ErrMutationInFlight)
	}
	defer c.release(target)

	v, err := fn(ctx)
	if err != nil {
		return zero, err
	}
	c.Invalidate(invalidate...)
	return v, nil
}

// InFlight - выполняется ли сейчас мутация цели.
func (c *Cache) InFlight(target string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.mutating[target]
	return ok
}

func (c *Cache) acquire(target string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.mutating[target]; busy {
		return false
	}
	c.mutating[target] = struct{}{}
	return true
}

func (c *Cache) release(target string) {
	c.mu.Lock()
	delete(c.mutating, target)
	c.mu.Unlock()
}
