package domain

import "time"

// Order - каноническое представление заказа стола.
type Order struct {
	ID        int64     `json:"id"`
	Table     string    `json:"table"`
	Items     string    `json:"items"`
	Note      string    `json:"note"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewOrder - данные нового заказа от клиента.
type NewOrder struct {
	Table string `json:"table" validate:"required,max=16"`
	Items string `json:"items" validate:"required,max=2000"`
	Note  string `json:"note"  validate:"max=500"`
}

// OrderEdit - правка заказа персоналом. Статус только переносится, не вычисляется.
type OrderEdit struct {
	Table  string `json:"table"  validate:"required,max=16"`
	Items  string `json:"items"  validate:"required,max=2000"`
	Note   string `json:"note"   validate:"max=500"`
	Status Status `json:"status" validate:"omitempty,active_status"`
}

// Record - обратное преобразование в запись бэкенда (поля и статусы в формате API).
// Normalize(o.Record()) возвращает тот же заказ.
func (o Order) Record() map[string]any {
	return map[string]any{
		"id":          o.ID,
		"mesa":        o.Table,
		"sabores":     o.Items,
		"obs":         o.Note,
		"status":      o.Status.Wire(),
		"dataCriacao": o.CreatedAt.Format(time.RFC3339Nano),
	}
}

// WireOrder - тело POST/PUT запроса к API заказов.
type WireOrder struct {
	ID      int64  `json:"id"`
	Mesa    string `json:"mesa"`
	Sabores string `json:"sabores"`
	Obs     string `json:"obs"`
	Status  string `json:"status"`
}

// Payload - тело запроса создания/обновления в формате API.
func Payload(id int64, table, items, note string, status Status) WireOrder {
	return WireOrder{ID: id, Mesa: table, Sabores: items, Obs: note, Status: status.Wire()}
}

// PayloadFromRecord - тело PUT из исходной записи бэкенда: поля переносятся как есть,
// без подстановок нормализатора ("0", ItemsFallback).
func PayloadFromRecord(rec map[string]any, id int64, status Status) WireOrder {
	w := WireOrder{ID: id, Status: status.Wire()}
	if v, ok := lookup(rec, tableKeys); ok {
		w.Mesa = toString(v)
	}
	if v, ok := lookup(rec, itemsKeys); ok {
		w.Sabores = toString(v)
	}
	if v, ok := lookup(rec, noteKeys); ok {
		w.Obs = toString(v)
	}
	return w
}

// Record - запись WireOrder в нетипизированном виде (для нормализации пустого ответа).
func (w WireOrder) Record() map[string]any {
	return map[string]any{
		"id":      w.ID,
		"mesa":    w.Mesa,
		"sabores": w.Sabores,
		"obs":     w.Obs,
		"status":  w.Status,
	}
}

// CloneOrders - копия среза, чтобы внешние изменения не задевали кэш.
func CloneOrders(orders []Order) []Order {
	if orders == nil {
		return nil
	}
	return append([]Order(nil), orders...)
}
