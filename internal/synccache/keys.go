package synccache

import (
	"strconv"
	"strings"
)

// Key - идентичность запроса (операция + параметры).
type Key string

const (
	tablePrefix = "orders:table:"

	// DashboardKey - список всех активных заказов для персонала.
	DashboardKey Key = "orders:dashboard"
)

// TableKey - заказы одного стола.
func TableKey(table string) Key { return Key(tablePrefix + table) }

// OrderTarget - цель эксклюзивной мутации для заказа.
func OrderTarget(id int64) string { return "order:" + strconv.FormatInt(id, 10) }

// Matcher - какие записи инвалидировать.
type Matcher func(Key) bool

// Exact - одна запись.
func Exact(key Key) Matcher {
	return func(k Key) bool { return k == key }
}

// Prefix - все записи с префиксом.
func Prefix(prefix string) Matcher {
	return func(k Key) bool { return strings.HasPrefix(string(k), prefix) }
}

// AllTables - все запросы по столам.
func AllTables() Matcher { return Prefix(tablePrefix) }
