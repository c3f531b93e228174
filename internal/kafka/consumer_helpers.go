package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/Gunvolt24/table_orders/internal/domain"
	"github.com/Gunvolt24/table_orders/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

// collect добирает к первому сообщению те, что пришли в окне batchWindow (не больше batchSize).
// Окно закрылось, контекст отменён или брокер вернул ошибку - пачка отдаётся как есть.
func (c *Consumer) collect(ctx context.Context, first kafka.Message) []kafka.Message {
	batch := []kafka.Message{first}
	if c.batchWindow <= 0 || c.batchSize <= 1 {
		return batch
	}

	wctx, cancel := context.WithTimeout(ctx, c.batchWindow)
	defer cancel()
	for len(batch) < c.batchSize {
		msg, err := c.reader.FetchMessage(wctx)
		if err != nil {
			break
		}
		batch = append(batch, msg)
	}
	return batch
}

// invalidation - одно применение события за всю группу склеенных сообщений.
type invalidation struct {
	raw    []byte
	offset int64
	count  int
}

// coalesce группирует события пачки по столу. Событие без стола инвалидирует все столы,
// поэтому поглощает остальные. Для каждой группы берётся последнее событие.
func (c *Consumer) coalesce(ctx context.Context, topic string, batch []kafka.Message) []invalidation {
	const allTables = "*"

	groups := make(map[string]*invalidation, len(batch))
	order := make([]string, 0, len(batch))
	for i := range batch {
		msg := &batch[i]
		ev, err := domain.ParseChangeEvent(msg.Value)
		if err != nil {
			// Событие не разобрано: логируем и пропускаем (коммитится вместе с пачкой)
			metrics.ChangeEventsFailed.WithLabelValues(topic).Inc()
			c.log.Warnf(ctx, "invalid change event offset=%d: %v (skipped)", msg.Offset, err)
			continue
		}
		target := ev.Table
		if target == "" {
			target = allTables
		}
		g, ok := groups[target]
		if !ok {
			g = &invalidation{}
			groups[target] = g
			order = append(order, target)
		}
		g.raw, g.offset = msg.Value, msg.Offset
		g.count++
	}

	if all, ok := groups[allTables]; ok {
		for _, g := range groups {
			if g != all {
				all.count += g.count
			}
		}
		return []invalidation{*all}
	}

	out := make([]invalidation, 0, len(order))
	for _, target := range order {
		out = append(out, *groups[target])
	}
	return out
}

// applyBatch применяет склеенные события и определяет, нужно ли коммитить пачку.
func (c *Consumer) applyBatch(ctx context.Context, topic string, batch []kafka.Message) bool {
	invs := c.coalesce(ctx, topic, batch)
	if len(batch) > 1 {
		c.log.Debugf(ctx, "change feed: %d events coalesced into %d invalidations", len(batch), len(invs))
	}

	for _, inv := range invs {
		ctxTimeout, cancel := context.WithTimeout(ctx, c.processTimeout)
		err := c.handler.ApplyChange(ctxTimeout, inv.raw)
		cancel()

		switch {
		case err == nil:
			metrics.ChangeEventsApplied.WithLabelValues(topic).Add(float64(inv.count))
		case errors.Is(err, domain.ErrInvalidChange):
			metrics.ChangeEventsFailed.WithLabelValues(topic).Add(float64(inv.count))
			c.log.Warnf(ctx, "change event offset=%d rejected: %v (skipped)", inv.offset, err)
		default:
			// Временная ошибка (таймаут/остановка): НЕ коммитим - пачка будет обработана повторно
			metrics.ChangeEventsFailed.WithLabelValues(topic).Add(float64(inv.count))
			c.log.Warnf(ctx, "process failed offset=%d: %v (will retry without commit)", inv.offset, err)
			return false
		}
	}
	return true
}

// commitSafely коммитит оффсеты пачки и логирует ошибку.
func (c *Consumer) commitSafely(ctx context.Context, batch []kafka.Message) {
	if commitErr := c.reader.CommitMessages(ctx, batch...); commitErr != nil {
		c.log.Warnf(ctx, "commit failed offsets=%d..%d: %v", batch[0].Offset, batch[len(batch)-1].Offset, commitErr)
	}
}

// sleepWithBackoff ждет backoff или останавливается по контексту.
func (c *Consumer) sleepWithBackoff(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

// nextBackoff возвращает следующее время ожидания повтора с учетом retryMax.
func (c *Consumer) nextBackoff(current time.Duration) time.Duration {
	current *= 2
	if current > c.retryMax {
		return c.retryMax
	}
	return current
}

// withJitterEqual — умеренная случайность: половина задержки фиксирована,
// вторая половина — случайная. Баланс между стабильностью и случайностью.
func (c *Consumer) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	jitter := time.Duration(c.jitterRand.Int63n(int64(d-half) + 1))
	return half + jitter
}

// minDuration возвращает минимальное время из двух.
func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
