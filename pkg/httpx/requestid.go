package httpx

import (
	"github.com/Gunvolt24/table_orders/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxRequestIDLen - request_id уходит дальше в API заказов и в заголовки сообщений ленты.
const maxRequestIDLen = 128

// RequestIDMiddleware:
// - принимает X-Request-ID вызывающего, если он короткий и печатный, иначе генерирует UUID
// - кладёт request_id в контекст (его подхватят логгер, шлюз и публикатор ленты)
// - возвращает его в ответном заголовке X-Request-ID
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(ctxmeta.HeaderRequestID)
		if !validRequestID(requestID) {
			requestID = uuid.New().String()
		}
		c.Header(ctxmeta.HeaderRequestID, requestID)

		ctx := ctxmeta.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}
