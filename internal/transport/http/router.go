package rest

import (
	"net/http"

	"github.com/Gunvolt24/table_orders/internal/auth"
	"github.com/Gunvolt24/table_orders/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter — gin-роутер: маршруты стола (клиент) и дашборда (персонал).
// otelServiceName пустой - без otelgin.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api", h.session())

	// клиент за столом
	api.GET("/tables/:table/orders", h.tableOrders)
	api.POST("/orders", h.createOrder)

	// персонал
	dashboard := api.Group("/dashboard", h.requireRole(auth.Role.IsStaff))
	dashboard.GET("/orders", h.dashboardOrders)
	dashboard.POST("/refresh", h.refreshDashboard)
	dashboard.GET("/stream", h.streamDashboard)

	api.POST("/orders/:id/advance", h.requireRole(isKitchen), h.advanceStatus)
	api.PUT("/orders/:id", h.requireRole(isWaiter), h.editOrder)

	return r
}

func isKitchen(r auth.Role) bool { return r == auth.RoleKitchen }
func isWaiter(r auth.Role) bool  { return r == auth.RoleWaiter }
