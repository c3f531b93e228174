package domain

import "strings"

// Status - закрытое множество статусов жизненного цикла заказа.
type Status string

const (
	StatusReceived      Status = "Received"
	StatusInPreparation Status = "InPreparation"
	StatusReady         Status = "Ready"
	StatusDelivered     Status = "Delivered"
)

// Метки статусов в API бэкенда.
const (
	wireReceived      = "Recebido"
	wireInPreparation = "EmPreparo"
	wireReady         = "Pronto"
	wireDelivered     = "Entregue"
	wireLegacyQueued  = "Na fila"
)

// ActiveStatuses - статусы, которые видит дашборд, в порядке секций.
var ActiveStatuses = []Status{StatusReceived, StatusInPreparation, StatusReady}

// Next - единственный допустимый переход. Для значения вне множества возвращает Received.
func Next(s Status) Status {
	switch s {
	case StatusReceived:
		return StatusInPreparation
	case StatusInPreparation:
		return StatusReady
	case StatusReady:
		return StatusDelivered
	default:
		return StatusReceived
	}
}

// IsTerminal - Delivered означает удаление заказа из активной коллекции.
func (s Status) IsTerminal() bool { return s == StatusDelivered }

// Valid - входит ли статус в закрытое множество.
func (s Status) Valid() bool {
	switch s {
	case StatusReceived, StatusInPreparation, StatusReady, StatusDelivered:
		return true
	}
	return false
}

// Wire - метка статуса для API. Неизвестный статус отправляется как Recebido.
func (s Status) Wire() string {
	switch s {
	case StatusInPreparation:
		return wireInPreparation
	case StatusReady:
		return wireReady
	case StatusDelivered:
		return wireDelivered
	default:
		return wireReceived
	}
}

// ParseStatus - разбор метки из API (включая устаревшую "Na fila") или канонического имени.
// Второе значение false, если метка не распознана; статус тогда Received.
func ParseStatus(raw string) (Status, bool) {
	switch strings.TrimSpace(raw) {
	case wireReceived, wireLegacyQueued, string(StatusReceived):
		return StatusReceived, true
	case wireInPreparation, string(StatusInPreparation):
		return StatusInPreparation, true
	case wireReady, string(StatusReady):
		return StatusReady, true
	case wireDelivered, string(StatusDelivered):
		return StatusDelivered, true
	}
	return StatusReceived, false
}

// StatusView - то, как статус показывается во вью.
type StatusView struct {
	Label        string `json:"label"`
	Color        string `json:"color"`
	SectionTitle string `json:"sectionTitle"`
	NextAction   string `json:"nextAction,omitempty"`
}

var statusViews = map[Status]StatusView{
	StatusReceived: {
		Label:        "Recebido",
		Color:        "status-received",
		SectionTitle: "Recebidos",
		NextAction:   "Iniciar preparo",
	},
	StatusInPreparation: {
		Label:        "Em Preparo",
		Color:        "status-preparing",
		SectionTitle: "Em Preparo",
		NextAction:   "Marcar como pronto",
	},
	StatusReady: {
		Label:        "Pronto",
		Color:        "status-ready",
		SectionTitle: "Prontos para Servir",
		NextAction:   "Entregar",
	},
	StatusDelivered: {
		Label:        "Entregue",
		Color:        "muted",
		SectionTitle: "Entregues",
	},
}

// Presentation - тотальная таблица отображения; неизвестный статус получает нейтральный вид.
func Presentation(s Status) StatusView {
	if v, ok := statusViews[s]; ok {
		return v
	}
	return StatusView{Label: string(s), Color: "muted", SectionTitle: string(s)}
}
