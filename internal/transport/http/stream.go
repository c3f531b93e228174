package rest

import (
	"io"
	"net/http"
	"time"

	"github.com/Gunvolt24/table_orders/internal/domain"
	"github.com/Gunvolt24/table_orders/pkg/httpx"
	"github.com/gin-gonic/gin"
)

// Имена событий SSE.
const (
	eventDashboard = "dashboard"
	eventError     = "error"
)

type streamEvent struct {
	name    string
	payload any
}

// streamDashboard — SSE-поток снимков дашборда. Подписка снимается при отключении клиента.
// ?heartbeat=N - период пингов в секундах (1..60).
func (h *Handler) streamDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	heartbeat := time.Duration(httpx.ParseIntQuery(c, "heartbeat", int(h.heartbeat/time.Second), 1, 60)) * time.Second

	// побеждает последний снимок: медленный клиент не копит очередь
	updates := make(chan streamEvent, 1)
	push := func(ev streamEvent) {
		for {
			select {
			case updates <- ev:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	}

	stop := h.service.WatchDashboard(ctx, func(d domain.Dashboard, err error) {
		if err != nil {
			push(streamEvent{name: eventError, payload: gin.H{"error": "Erro ao carregar pedidos", "retry": true, "orders": d.Orders}})
			return
		}
		push(streamEvent{name: eventDashboard, payload: d})
	})
	defer stop()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	h.log.Infof(ctx, "dashboard stream opened heartbeat=%s", heartbeat)
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev := <-updates:
			c.SSEvent(ev.name, ev.payload)
			return true
		case <-ticker.C:
			_, err := io.WriteString(w, ": ping\n\n")
			return err == nil
		}
	})
	h.log.Infof(ctx, "dashboard stream closed")
}
