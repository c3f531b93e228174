//go:build integration

package testutil

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"sync/atomic"
	"time"

	"github.com/Gunvolt24/table_orders/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeChange - событие изменения для уникального стола.
func MakeChange(opts ...func(*domain.ChangeEvent)) domain.ChangeEvent {
	id, _ := rand.Int(rand.Reader, big.NewInt(1_000_000))
	ev := domain.ChangeEvent{
		Kind:    domain.ChangeCreated,
		OrderID: id.Int64() + 1,
		Table:   "t-" + UniqSuffix(),
		Status:  domain.StatusReceived,
		At:      time.Now().UTC().Truncate(time.Millisecond),
	}
	for _, opt := range opts {
		opt(&ev)
	}
	return ev
}

// WithKind - вид изменения.
func WithKind(kind domain.ChangeKind) func(*domain.ChangeEvent) {
	return func(ev *domain.ChangeEvent) { ev.Kind = kind }
}

// StubGateway - шлюз-заглушка: фиксированный список заказов и счётчик обращений к списку.
type StubGateway struct {
	Orders []domain.Order
	lists  atomic.Int64
}

// ListCalls - сколько раз запрашивался полный список.
func (g *StubGateway) ListCalls() int64 { return g.lists.Load() }

func (g *StubGateway) CreateOrder(_ context.Context, in domain.NewOrder) (domain.Order, error) {
	return domain.Order{ID: 1, Table: in.Table, Items: in.Items, Note: in.Note, Status: domain.StatusReceived}, nil
}

func (g *StubGateway) ListOrdersForTable(_ context.Context, table string) []domain.Order {
	var out []domain.Order
	for _, o := range g.Orders {
		if o.Table == table {
			out = append(out, o)
		}
	}
	return out
}

func (g *StubGateway) ListAllOrders(context.Context) ([]domain.Order, error) {
	g.lists.Add(1)
	return domain.CloneOrders(g.Orders), nil
}

func (g *StubGateway) AdvanceStatus(_ context.Context, id int64) (domain.Order, error) {
	return domain.Order{ID: id, Status: domain.StatusInPreparation}, nil
}

func (g *StubGateway) EditOrder(_ context.Context, id int64, edit domain.OrderEdit) (domain.Order, error) {
	return domain.Order{ID: id, Table: edit.Table, Items: edit.Items, Note: edit.Note, Status: edit.Status}, nil
}
