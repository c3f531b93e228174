package httpx

import (
	"time"

	"github.com/Gunvolt24/table_orders/internal/ports"
	"github.com/Gunvolt24/table_orders/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
)

// quietPaths - служебные маршруты без журнала запросов.
var quietPaths = map[string]struct{}{
	"/metrics": {},
	"/ping":    {},
}

// RequestLogger — журнал HTTP-запросов: 5xx пишутся как ошибки, 4xx как предупреждения.
// Для потоков (SSE) duration - время жизни подписки.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if _, quiet := quietPaths[path]; quiet {
			return
		}
		if path == "" {
			path = c.Request.URL.Path
		}

		ctx := c.Request.Context()
		rid, _ := ctxmeta.RequestIDFromContext(ctx)
		tr, _ := ctxmeta.TraceIDFromContext(ctx)
		status := c.Writer.Status()

		logf := log.Infof
		switch {
		case status >= 500:
			logf = log.Errorf
		case status >= 400:
			logf = log.Warnf
		}
		logf(ctx,
			"request id=%s trace=%s method=%s path=%s status=%d ip=%s duration=%s size=%d errors=%d",
			rid, tr, c.Request.Method, path, status, c.ClientIP(), time.Since(start), c.Writer.Size(), len(c.Errors),
		)
	}
}
