// Пакет httpapi - шлюз к удалённому API заказов поверх net/http.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Gunvolt24/table_orders/internal/domain"
	"github.com/Gunvolt24/table_orders/internal/ports"
	"github.com/Gunvolt24/table_orders/pkg/ctxmeta"
	"github.com/Gunvolt24/table_orders/pkg/metrics"
	"github.com/Gunvolt24/table_orders/pkg/telemetry"
)

// Проверка, что Gateway удовлетворяет интерфейсу OrderGateway.
var _ ports.OrderGateway = (*Gateway)(nil)

const (
	pathCustomerOrders = "/api/Cliente/pedidosCliente"
	pathStaffOrders    = "/api/API/pedidos"

	// клиентские пути идут без авторизации
	customerSegment = "/Cliente/"

	maxBodyBytes  = 8 << 20
	maxErrorBytes = 512
)

// Options - параметры шлюза.
type Options struct {
	BaseURL string
	// Timeout 0 - без таймаута (ограничивает только контекст вызывающего).
	Timeout time.Duration
	// Transport - базовый транспорт (nil = http.DefaultTransport); всегда оборачивается otelhttp.
	Transport http.RoundTripper
	// Now - часы для createdAt по умолчанию (nil = time.Now).
	Now func() time.Time
}

// Gateway - типизированные операции над API заказов.
type Gateway struct {
	base   *url.URL
	client *http.Client
	tokens ports.TokenSource
	log    ports.Logger
	now    func() time.Time
}

// New - конструктор; tokens может быть nil (все запросы без авторизации).
func New(opts Options, tokens ports.TokenSource, log ports.Logger) (*Gateway, error) {
	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q: нужны схема и хост", opts.BaseURL)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Gateway{
		base: base,
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: telemetry.NewHTTPTransport(opts.Transport),
		},
		tokens: tokens,
		log:    log,
		now:    now,
	}, nil
}

// CreateOrder - POST нового заказа со статусом Recebido.
// Пустой ответ - результат нормализации отправленного тела.
func (g *Gateway) CreateOrder(ctx context.Context, in domain.NewOrder) (domain.Order, error) {
	payload := domain.Payload(0, in.Table, in.Items, in.Note, domain.StatusReceived)

	body, err := g.do(ctx, http.MethodPost, "create", pathCustomerOrders, payload)
	if err != nil {
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}
	return g.fromResponse(ctx, body, domain.NormalizeAt(payload.Record(), g.now())), nil
}

// ListOrdersForTable - заказы стола; любые ошибки логируются, результат - пустой срез.
func (g *Gateway) ListOrdersForTable(ctx context.Context, table string) []domain.Order {
	path := pathCustomerOrders + "/" + url.PathEscape(table)

	body, err := g.do(ctx, http.MethodGet, "table", path, nil)
	if err != nil {
		g.log.Warnf(ctx, "list orders for table %q: %v", table, err)
		return []domain.Order{}
	}
	orders, err := domain.NormalizeBody(body, g.now())
	if err != nil {
		g.log.Warnf(ctx, "list orders for table %q: %v", table, err)
		return []domain.Order{}
	}
	return orders
}

// ListAllOrders - все активные заказы; ошибки возвращаются вызывающему.
func (g *Gateway) ListAllOrders(ctx context.Context) ([]domain.Order, error) {
	recs, err := g.listRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return domain.NormalizeAll(recs, g.now()), nil
}

// AdvanceStatus - чтение-изменение-запись: свежий список, поиск по id, Next, затем PUT или DELETE.
// Между чтением и записью другой писатель может изменить заказ; сервер не даёт
// отдельной операции продвижения, поэтому окно гонки принимается как есть.
func (g *Gateway) AdvanceStatus(ctx context.Context, id int64) (domain.Order, error) {
	recs, err := g.listRecords(ctx)
	if err != nil {
		return domain.Order{}, fmt.Errorf("advance order %d: list orders: %w", id, err)
	}

	rec, current, ok := g.findRecord(recs, id)
	if !ok {
		return domain.Order{}, fmt.Errorf("advance order %d: %w", id, domain.ErrNotFound)
	}

	next := domain.Next(current.Status)
	path := pathStaffOrders + "/" + strconv.FormatInt(id, 10)

	if next.IsTerminal() {
		if _, err := g.do(ctx, http.MethodDelete, "delete", path, nil); err != nil {
			return domain.Order{}, fmt.Errorf("advance order %d: %w", id, err)
		}
		current.Status = next
		return current, nil
	}

	// в PUT уходят поля исходной записи, а не значения по умолчанию нормализатора
	payload := domain.PayloadFromRecord(rec, current.ID, next)
	body, err := g.do(ctx, http.MethodPut, "update", path, payload)
	if err != nil {
		return domain.Order{}, fmt.Errorf("advance order %d: %w", id, err)
	}

	fallback := current
	fallback.Status = next
	return g.fromResponse(ctx, body, fallback), nil
}

// EditOrder - PUT с переданными полями, статус переносится без изменений.
func (g *Gateway) EditOrder(ctx context.Context, id int64, edit domain.OrderEdit) (domain.Order, error) {
	if !edit.Status.Valid() {
		return domain.Order{}, fmt.Errorf("edit order %d: %w: %q", id, domain.ErrUnknownStatus, edit.Status)
	}

	payload := domain.Payload(id, edit.Table, edit.Items, edit.Note, edit.Status)
	path := pathStaffOrders + "/" + strconv.FormatInt(id, 10)

	body, err := g.do(ctx, http.MethodPut, "update", path, payload)
	if err != nil {
		return domain.Order{}, fmt.Errorf("edit order %d: %w", id, err)
	}
	return g.fromResponse(ctx, body, domain.NormalizeAt(payload.Record(), g.now())), nil
}

// fromResponse - первый заказ из ответа или fallback, если ответ пуст или не разобран.
func (g *Gateway) fromResponse(ctx context.Context, body []byte, fallback domain.Order) domain.Order {
	orders, err := domain.NormalizeBody(body, g.now())
	if err != nil {
		g.log.Warnf(ctx, "order api response not decoded, using request payload: %v", err)
		return fallback
	}
	if len(orders) == 0 {
		return fallback
	}
	return orders[0]
}

// do - один HTTP-вызов с авторизацией, request id и классификацией ошибок.
func (g *Gateway) do(ctx context.Context, method, route, path string, payload any) ([]byte, error) {
	var reqBody io.Reader = http.NoBody
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.base.String()+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if rid, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		req.Header.Set(ctxmeta.HeaderRequestID, rid)
	}
	g.authorize(ctx, req, path)

	start := time.Now()
	resp, err := g.client.Do(req)
	metrics.GatewayLatency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GatewayRequests.WithLabelValues(method, route, "transport").Inc()
		return nil, fmt.Errorf("%w: %s %s: %w", domain.ErrTransport, method, path, err)
	}
	defer resp.Body.Close()
	metrics.GatewayRequests.WithLabelValues(method, route, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s %s: %w", domain.ErrTransport, method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.ServerError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(body), maxErrorBytes),
		}
	}
	return body, nil
}

// authorize - bearer-токен для всех путей, кроме клиентских. Неудача не блокирует запрос.
func (g *Gateway) authorize(ctx context.Context, req *http.Request, path string) {
	if g.tokens == nil || strings.Contains(path, customerSegment) {
		return
	}
	tok, err := g.tokens.Token(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrAuthAcquisition) {
			err = fmt.Errorf("%w: %v", domain.ErrAuthAcquisition, err)
		}
		g.log.Warnf(ctx, "order api %s %s: запрос без авторизации: %v", req.Method, path, err)
		return
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
}

// listRecords - сырые записи GET /api/API/pedidos.
func (g *Gateway) listRecords(ctx context.Context) ([]map[string]any, error) {
	body, err := g.do(ctx, http.MethodGet, "list", pathStaffOrders, nil)
	if err != nil {
		return nil, err
	}
	return domain.DecodeRecords(body)
}

func (g *Gateway) findRecord(recs []map[string]any, id int64) (map[string]any, domain.Order, bool) {
	now := g.now()
	for _, rec := range recs {
		if o := domain.NormalizeAt(rec, now); o.ID == id {
			return rec, o, true
		}
	}
	return nil, domain.Order{}, false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
