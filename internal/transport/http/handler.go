package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Gunvolt24/table_orders/internal/domain"
	"github.com/Gunvolt24/table_orders/internal/ports"
	"github.com/Gunvolt24/table_orders/pkg/httpx"
	"github.com/Gunvolt24/table_orders/pkg/validate"
	"github.com/gin-gonic/gin"
)

// emptyTableMessage - подпись для стола без заказов.
const emptyTableMessage = "Nenhum pedido encontrado para esta mesa."

// HandlerOptions - параметры обработчиков.
type HandlerOptions struct {
	Timeout      time.Duration // таймаут обычных запросов (0 - без таймаута)
	Heartbeat    time.Duration // период пингов SSE
	EnforceRoles bool          // проверять роль персонала
}

// Handler — HTTP-обработчики поверх сервиса синхронизации заказов.
type Handler struct {
	service      ports.OrderSyncService
	log          ports.Logger
	reqTimeout   time.Duration
	heartbeat    time.Duration
	enforceRoles bool
}

func NewHandler(service ports.OrderSyncService, log ports.Logger, opts HandlerOptions) *Handler {
	hb := opts.Heartbeat
	if hb <= 0 {
		hb = 15 * time.Second
	}
	return &Handler{
		service:      service,
		log:          log,
		reqTimeout:   opts.Timeout,
		heartbeat:    hb,
		enforceRoles: opts.EnforceRoles,
	}
}

type tableOrdersResponse struct {
	Table   string         `json:"table"`
	Orders  []domain.Order `json:"orders"`
	Message string         `json:"message,omitempty"`
}

type editRequest struct {
	Table  string `json:"table"`
	Items  string `json:"items"`
	Note   string `json:"note"`
	Status string `json:"status"`
}

func (h *Handler) withTimeout(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.reqTimeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.reqTimeout)
}

func (h *Handler) tableOrders(c *gin.Context) {
	table, err := httpx.ParseTable(c, "table")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty table"})
		return
	}

	ctx, cancel := h.withTimeout(c)
	defer cancel()

	orders, err := h.service.TableOrders(ctx, table)
	if err != nil {
		h.fail(c, "table orders", err)
		return
	}

	resp := tableOrdersResponse{Table: table, Orders: orders}
	if resp.Orders == nil {
		resp.Orders = []domain.Order{}
	}
	if len(resp.Orders) == 0 {
		resp.Message = emptyTableMessage
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createOrder(c *gin.Context) {
	var in domain.NewOrder
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}

	ctx, cancel := h.withTimeout(c)
	defer cancel()

	order, err := h.service.CreateOrder(ctx, in)
	if err != nil {
		h.fail(c, "create order", err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) dashboardOrders(c *gin.Context) {
	ctx, cancel := h.withTimeout(c)
	defer cancel()

	d, err := h.service.DashboardOrders(ctx)
	if err != nil {
		h.dashboardFailed(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) refreshDashboard(c *gin.Context) {
	ctx, cancel := h.withTimeout(c)
	defer cancel()

	d, err := h.service.RefreshDashboard(ctx)
	if err != nil {
		h.dashboardFailed(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) advanceStatus(c *gin.Context) {
	id, err := httpx.ParseOrderID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	ctx, cancel := h.withTimeout(c)
	defer cancel()

	order, err := h.service.AdvanceStatus(ctx, id)
	if err != nil {
		h.fail(c, "advance status", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) editOrder(c *gin.Context) {
	id, err := httpx.ParseOrderID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req editRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}

	edit := domain.OrderEdit{Table: req.Table, Items: req.Items, Note: req.Note}
	if req.Status != "" {
		st, ok := domain.ParseStatus(req.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrUnknownStatus.Error()})
			return
		}
		edit.Status = st
	}

	ctx, cancel := h.withTimeout(c)
	defer cancel()

	order, err := h.service.EditOrder(ctx, id, edit)
	if err != nil {
		h.fail(c, "edit order", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// dashboardFailed — 503 с признаком retry: вью показывает кнопку повтора.
func (h *Handler) dashboardFailed(c *gin.Context, err error) {
	h.log.Errorf(c.Request.Context(), "dashboard failed: %v", err)
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Erro ao carregar pedidos", "retry": true})
}

// fail — отображение ошибок сервиса в HTTP-коды.
func (h *Handler) fail(c *gin.Context, op string, err error) {
	ctx := c.Request.Context()
	switch {
	case errors.Is(err, validate.ErrInvalidOrder), errors.Is(err, domain.ErrUnknownStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "order no longer exists, the list has been refreshed"})
	case errors.Is(err, domain.ErrMutationInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrServer), errors.Is(err, domain.ErrTransport):
		h.log.Errorf(ctx, "%s failed: %v", op, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "order api unavailable"})
	default:
		h.log.Errorf(ctx, "%s failed: %v", op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
