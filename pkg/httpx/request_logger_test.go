package httpx_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Gunvolt24/table_orders/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// recordingLogger - запоминает уровень и текст каждой записи.
type recordingLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *recordingLogger) add(level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, level+" "+fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Debugf(_ context.Context, f string, a ...any) { l.add("debug", f, a...) }
func (l *recordingLogger) Infof(_ context.Context, f string, a ...any)  { l.add("info", f, a...) }
func (l *recordingLogger) Warnf(_ context.Context, f string, a ...any)  { l.add("warn", f, a...) }
func (l *recordingLogger) Errorf(_ context.Context, f string, a ...any) { l.add("error", f, a...) }

func TestRequestLogger_LevelByStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	log := &recordingLogger{}
	r := gin.New()
	r.Use(httpx.RequestIDMiddleware(), httpx.RequestLogger(log))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/tables/:table/orders", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/api/orders", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/api/dashboard/orders", func(c *gin.Context) { c.Status(http.StatusServiceUnavailable) })

	for _, rq := range []struct{ method, path string }{
		{http.MethodGet, "/ping"},
		{http.MethodGet, "/api/tables/4/orders"},
		{http.MethodPost, "/api/orders"},
		{http.MethodGet, "/api/dashboard/orders"},
	} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(rq.method, rq.path, http.NoBody))
	}

	require.Len(t, log.entries, 3, "/ping не журналируется")
	require.Contains(t, log.entries[0], "info request")
	require.Contains(t, log.entries[0], "path=/api/tables/:table/orders")
	require.Contains(t, log.entries[1], "warn request")
	require.Contains(t, log.entries[1], "status=400")
	require.Contains(t, log.entries[2], "error request")
}
