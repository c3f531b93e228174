package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ItemsFallback - описание заказа, если бэкенд не прислал ни одного варианта поля.
const ItemsFallback = "Sem descrição"

// Синонимы полей в порядке приоритета.
var (
	idKeys        = []string{"id", "Id", "ID"}
	tableKeys     = []string{"mesa", "Mesa", "table", "Table"}
	itemsKeys     = []string{"sabores", "Sabores", "descricao", "Descricao", "items", "Items", "description", "Description"}
	noteKeys      = []string{"obs", "Obs", "note", "Note"}
	statusKeys    = []string{"status", "Status"}
	createdAtKeys = []string{"dataCriacao", "DataCriacao", "createdAt", "CreatedAt"}
)

// Форматы дат, которые отдаёт бэкенд (с зоной и без неё).
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Normalize - запись бэкенда произвольной формы -> канонический Order.
func Normalize(rec map[string]any) Order {
	return NormalizeAt(rec, time.Now())
}

// NormalizeAt - то же, что Normalize, но с явным "сейчас" для createdAt по умолчанию.
// Каждое поле всегда заполнено; функция не паникует на любом входе.
func NormalizeAt(rec map[string]any, now time.Time) Order {
	order := Order{
		Table:     "0",
		Items:     ItemsFallback,
		Status:    StatusReceived,
		CreatedAt: now,
	}

	if v, ok := lookup(rec, idKeys); ok {
		if id, ok := toInt64(v); ok {
			order.ID = id
		}
	}
	if v, ok := lookup(rec, tableKeys); ok {
		if s := toString(v); strings.TrimSpace(s) != "" {
			order.Table = strings.TrimSpace(s)
		}
	}
	if v, ok := lookup(rec, itemsKeys); ok {
		if s := toString(v); strings.TrimSpace(s) != "" {
			order.Items = s
		}
	}
	if v, ok := lookup(rec, noteKeys); ok {
		order.Note = toString(v)
	}
	if v, ok := lookup(rec, statusKeys); ok {
		order.Status, _ = ParseStatus(toString(v))
	}
	if v, ok := lookup(rec, createdAtKeys); ok {
		if ts, ok := toTime(v); ok {
			order.CreatedAt = ts
		}
	}
	return order
}

// NormalizeAll - нормализация коллекции.
func NormalizeAll(recs []map[string]any, now time.Time) []Order {
	orders := make([]Order, 0, len(recs))
	for _, rec := range recs {
		orders = append(orders, NormalizeAt(rec, now))
	}
	return orders
}

// NormalizeBody - разбор ответа API (с любым конвертом) в канонические заказы.
func NormalizeBody(body []byte, now time.Time) ([]Order, error) {
	recs, err := DecodeRecords(body)
	if err != nil {
		return []Order{}, err
	}
	return NormalizeAll(recs, now), nil
}

// DecodeRecords - разворачивает конверт ответа:
//   - массив объектов -> как есть (не-объекты пропускаются);
//   - {value: [...]} -> содержимое value;
//   - любой другой объект -> коллекция из одного элемента;
//   - пустое тело, null, скаляры -> пустая коллекция.
//
// Ошибка возвращается только для синтаксически некорректного JSON.
func DecodeRecords(body []byte) ([]map[string]any, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return []map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return []map[string]any{}, fmt.Errorf("decode payload: %w", err)
	}
	return Records(raw), nil
}

// Records - то же правило конверта для уже разобранного значения.
func Records(raw any) []map[string]any {
	switch v := raw.(type) {
	case []any:
		return objects(v)
	case map[string]any:
		for _, key := range []string{"value", "Value"} {
			if list, ok := v[key].([]any); ok {
				return objects(list)
			}
		}
		return []map[string]any{v}
	default:
		return []map[string]any{}
	}
}

func objects(list []any) []map[string]any {
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

// lookup - первое не-null значение среди синонимов.
func lookup(rec map[string]any, keys []string) (any, bool) {
	for _, key := range keys {
		if v, ok := rec[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case bool:
		return strconv.FormatBool(t)
	case map[string]any, []any:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

func toInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
		if f, err := t.Float64(); err == nil {
			return floatToInt(f)
		}
	case float64:
		return floatToInt(t)
	case float32:
		return floatToInt(float64(t))
	case int:
		return int64(t), true
	case int64:
		return t, true
	case int32:
		return int64(t), true
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, true
			}
		}
	}
	return time.Time{}, false
}
