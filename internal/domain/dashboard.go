package domain

import (
	"sort"
	"time"
)

// Section - группа заказов одного статуса на дашборде.
type Section struct {
	Status Status     `json:"status"`
	View   StatusView `json:"view"`
	Orders []Order    `json:"orders"`
}

// Dashboard - снимок списка заказов для персонала.
type Dashboard struct {
	Orders    []Order   `json:"orders"`
	Sections  []Section `json:"sections"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewDashboard - группировка по статусам в порядке ActiveStatuses, внутри секции - по времени создания.
// Пустые секции не включаются.
func NewDashboard(orders []Order, updatedAt time.Time) Dashboard {
	d := Dashboard{
		Orders:    CloneOrders(orders),
		Sections:  make([]Section, 0, len(ActiveStatuses)),
		UpdatedAt: updatedAt,
	}
	if d.Orders == nil {
		d.Orders = []Order{}
	}

	for _, st := range ActiveStatuses {
		var group []Order
		for _, o := range orders {
			if o.Status == st {
				group = append(group, o)
			}
		}
		if len(group) == 0 {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool { return group[i].CreatedAt.Before(group[j].CreatedAt) })
		d.Sections = append(d.Sections, Section{Status: st, View: Presentation(st), Orders: group})
	}
	return d
}
