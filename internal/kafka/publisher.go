package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/Gunvolt24/table_orders/internal/domain"
	"github.com/Gunvolt24/table_orders/internal/ports"
	"github.com/Gunvolt24/table_orders/pkg/ctxmeta"
	"github.com/Gunvolt24/table_orders/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

var _ ports.ChangeNotifier = (*Publisher)(nil)

// requestIDHeader - заголовок сообщения с request_id инициатора изменения.
const requestIDHeader = ctxmeta.HeaderRequestID

// writer - минимальный контракт над kafka.Writer.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// PublisherConfig - параметры публикации в ленту изменений.
type PublisherConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// Publisher - публикует события об успешных изменениях заказов.
type Publisher struct {
	writer       writer
	topic        string
	writeTimeout time.Duration
	log          ports.Logger
	closeOnce    sync.Once
}

// NewPublisher - конструктор. Ключ сообщения - стол (или id заказа), чтобы события одного стола шли в одну партицию.
func NewPublisher(cfg *PublisherConfig, log ports.Logger) *Publisher {
	wt := cfg.WriteTimeout
	if wt <= 0 {
		wt = 5 * time.Second
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           wt,
	}

	return &Publisher{writer: w, topic: cfg.Topic, writeTimeout: wt, log: log}
}

// Notify - отправка события. Ошибка возвращается вызывающему; изменение к этому моменту уже выполнено.
func (p *Publisher) Notify(ctx context.Context, ev domain.ChangeEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		metrics.ChangeEventsPublished.WithLabelValues("error").Inc()
		return fmt.Errorf("marshal change event: %w", err)
	}

	msg := kafka.Message{Key: []byte(messageKey(ev)), Value: value, Time: ev.At}
	if rid, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		msg.Headers = append(msg.Headers, kafka.Header{Key: requestIDHeader, Value: []byte(rid)})
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, p.writeTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctxTimeout, msg); err != nil {
		metrics.ChangeEventsPublished.WithLabelValues("error").Inc()
		return fmt.Errorf("publish change event topic=%s: %w", p.topic, err)
	}

	metrics.ChangeEventsPublished.WithLabelValues("ok").Inc()
	p.log.Debugf(ctx, "change event published kind=%s order_id=%d table=%s", ev.Kind, ev.OrderID, ev.Table)
	return nil
}

// Close - сбрасывает буфер и закрывает writer.
func (p *Publisher) Close() (retErr error) {
	p.closeOnce.Do(func() {
		retErr = p.writer.Close()
	})
	return retErr
}

func messageKey(ev domain.ChangeEvent) string {
	if ev.Table != "" {
		return ev.Table
	}
	return strconv.FormatInt(ev.OrderID, 10)
}
