package telemetry

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewHTTPTransport - транспорт клиента API заказов со спанами и пропагацией traceparent.
// При выключенном трейсинге глобальный провайдер no-op, накладные расходы минимальны.
func NewHTTPTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return otelhttp.NewTransport(base,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return "order-api " + r.Method
		}),
	)
}
