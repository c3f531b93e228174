package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ChangeKind - вид изменения заказа.
type ChangeKind string

const (
	ChangeCreated  ChangeKind = "created"
	ChangeAdvanced ChangeKind = "advanced"
	ChangeEdited   ChangeKind = "edited"
	ChangeRemoved  ChangeKind = "removed"
)

// ChangeEvent - событие в ленте изменений.
type ChangeEvent struct {
	Kind    ChangeKind `json:"kind"`
	OrderID int64      `json:"orderId"`
	Table   string     `json:"table"`
	Status  Status     `json:"status"`
	At      time.Time  `json:"at"`
}

// ChangeFromOrder - событие для результата успешного изменения.
func ChangeFromOrder(kind ChangeKind, o Order, at time.Time) ChangeEvent {
	if kind == ChangeAdvanced && o.Status.IsTerminal() {
		kind = ChangeRemoved
	}
	return ChangeEvent{Kind: kind, OrderID: o.ID, Table: o.Table, Status: o.Status, At: at}
}

// ParseChangeEvent - строгий разбор события; любая проблема оборачивает ErrInvalidChange.
func ParseChangeEvent(raw []byte) (ChangeEvent, error) {
	var ev ChangeEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return ChangeEvent{}, fmt.Errorf("%w: %v", ErrInvalidChange, err)
	}
	switch ev.Kind {
	case ChangeCreated, ChangeAdvanced, ChangeEdited, ChangeRemoved:
	default:
		return ChangeEvent{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidChange, ev.Kind)
	}
	ev.Table = strings.TrimSpace(ev.Table)
	if ev.OrderID <= 0 && ev.Table == "" {
		return ChangeEvent{}, fmt.Errorf("%w: neither order id nor table", ErrInvalidChange)
	}
	return ev, nil
}
