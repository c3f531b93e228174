package kafka

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/Gunvolt24/table_orders/internal/ports"
	"github.com/Gunvolt24/table_orders/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

// Проверка, что Consumer удовлетворяет интерфейсу верхнего уровня (порт приложения).
var _ ports.MessageConsumer = (*Consumer)(nil)

// reader — минимальный контракт над источником (kafka.Reader),
// чтобы легко подменять его моками в тестах.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// Consumer — читатель ленты изменений заказов: kafka.Reader + обработчик (usecase) + logger.
// Каждое событие инвалидирует затронутые запросы кэша этой реплики.
type Consumer struct {
	reader         reader
	handler        ports.ChangeHandler
	log            ports.Logger
	processTimeout time.Duration
	retryInitial   time.Duration
	retryMax       time.Duration
	batchWindow    time.Duration
	batchSize      int
	jitterRand     *rand.Rand
	closeOnce      sync.Once
}

// NewConsumer — конструктор. ReaderConfig() настроен на ручной коммит оффсетов.
func NewConsumer(cfg *ConsumerConfig, handler ports.ChangeHandler, log ports.Logger) *Consumer {
	reader := kafka.NewReader(cfg.ReaderConfig())

	// Параметры по умолчанию (если не заданы в конфиге)
	pt := cfg.ProcessTimeout
	if pt <= 0 {
		pt = 5 * time.Second
	}

	rInit := cfg.RetryInitial
	if rInit <= 0 {
		rInit = 1 * time.Second
	}

	rMax := cfg.RetryMax
	if rMax <= 0 {
		rMax = 30 * time.Second
	}

	// BatchWindow 0 - без склейки: каждое событие применяется отдельно
	size := cfg.BatchSize
	if size <= 0 {
		size = 64
	}

	return &Consumer{
		reader:         reader,
		handler:        handler,
		log:            log,
		processTimeout: pt,
		retryInitial:   rInit,
		retryMax:       rMax,
		batchWindow:    cfg.BatchWindow,
		batchSize:      size,
		// jitterRand — источник случайности, чтобы рассинхронизировать экспоненциальный backoff.
		jitterRand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run — основной цикл:
// 1) читаем сообщение без авто-коммита и добираем пачку за batchWindow;
// 2) события пачки склеиваются по затронутому столу: одна инвалидация на стол;
// 3) пачка применена → один CommitMessages на всю пачку;
// 4) неразобранные события логируются и коммитятся вместе с пачкой;
// 5) временная ошибка → без коммита (повторная обработка всей пачки, at-least-once).
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "change feed consumer started topic=%s group_id=%s brokers=%v batch_window=%s",
		rc.Topic, rc.GroupID, rc.Brokers, c.batchWindow)

	// Экспоненциальный backoff на ошибках FetchMessage с equal-jitter
	retry := c.retryInitial

	for {
		// Читаем первое сообщение пачки (без автокоммита)
		msg, fetchErr := c.reader.FetchMessage(ctx)
		if fetchErr != nil {
			// Если контекст отменен -> выходим
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// Иначе - временная ошибка брокера/сети. Ожидаем и повторяем
			sleep := c.withJitterEqual(retry)
			c.log.Warnf(ctx, "fetch failed: %v (will retry in %s)", fetchErr, sleep)
			if !c.sleepWithBackoff(ctx, sleep) {
				return ctx.Err()
			}
			retry = c.nextBackoff(retry)
			continue
		}

		// Успешный FetchMessage -> сбрасываем интервал ожидания
		retry = c.retryInitial

		batch := c.collect(ctx, msg)
		metrics.ChangeEventsConsumed.WithLabelValues(rc.Topic).Add(float64(len(batch)))

		if c.applyBatch(ctx, rc.Topic, batch) {
			c.commitSafely(ctx, batch)
			continue
		}
		// Пауза с джиттером после временной ошибки, чтобы разнести повторы во времени.
		_ = c.sleepWithBackoff(ctx, c.withJitterEqual(minDuration(c.retryInitial, 500*time.Millisecond)))
	}
}

// Close - закрывает reader. Вызывается при остановке приложения.
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.reader.Close()
	})
	return retErr
}
