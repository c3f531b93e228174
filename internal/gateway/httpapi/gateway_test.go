package httpapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Gunvolt24/table_orders/internal/domain"
	"github.com/Gunvolt24/table_orders/internal/gateway/httpapi"
	"github.com/Gunvolt24/table_orders/internal/ports/mocks"
	"github.com/Gunvolt24/table_orders/pkg/ctxmeta"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC)

type noopLogger struct{}

func (noopLogger) Debugf(context.Context, string, ...any) {}
func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

type recorded struct {
	Method, Path, Auth, RequestID string
	Body                          map[string]any
}

// fakeAPI - бэкенд заказов с заранее заданными ответами по "METHOD path".
type fakeAPI struct {
	mu        sync.Mutex
	requests  []recorded
	responses map[string]func(w http.ResponseWriter)
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{responses: map[string]func(w http.ResponseWriter){}}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeAPI) on(method, path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[method+" "+path] = func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	rec := recorded{
		Method:    r.Method,
		Path:      r.URL.Path,
		Auth:      r.Header.Get("Authorization"),
		RequestID: r.Header.Get("X-Request-ID"),
	}
	if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
		_ = json.Unmarshal(raw, &rec.Body)
	}

	f.mu.Lock()
	f.requests = append(f.requests, rec)
	h, ok := f.responses[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	h(w)
}

func (f *fakeAPI) calls() []recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recorded(nil), f.requests...)
}

func newGateway(t *testing.T, srv *httptest.Server, tokens *mocks.MockTokenSource) *httpapi.Gateway {
	t.Helper()
	opts := httpapi.Options{BaseURL: srv.URL, Now: func() time.Time { return fixedNow }}
	var gw *httpapi.Gateway
	var err error
	if tokens == nil {
		gw, err = httpapi.New(opts, nil, noopLogger{})
	} else {
		gw, err = httpapi.New(opts, tokens, noopLogger{})
	}
	require.NoError(t, err)
	return gw
}

func TestCreateOrder_PostsWirePayload_Unauthenticated(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	tokens := mocks.NewMockTokenSource(ctrl) // не должен вызываться для /Cliente/

	api, srv := newFakeAPI(t)
	api.on(http.MethodPost, "/api/Cliente/pedidosCliente", http.StatusCreated,
		`{"id":57,"mesa":"12","sabores":"1x Pizza Calabresa + 1x Coca-Cola 2L","obs":"","status":"Recebido","dataCriacao":"2025-03-14T18:29:00Z"}`)

	gw := newGateway(t, srv, tokens)
	ctx := ctxmeta.WithRequestID(context.Background(), "rid-1")

	got, err := gw.CreateOrder(ctx, domain.NewOrder{Table: "12", Items: "1x Pizza Calabresa + 1x Coca-Cola 2L"})
	require.NoError(t, err)
	require.Equal(t, domain.Order{
		ID:        57,
		Table:     "12",
		Items:     "1x Pizza Calabresa + 1x Coca-Cola 2L",
		Status:    domain.StatusReceived,
		CreatedAt: time.Date(2025, 3, 14, 18, 29, 0, 0, time.UTC),
	}, got)

	calls := api.calls()
	require.Len(t, calls, 1)
	require.Empty(t, calls[0].Auth)
	require.Equal(t, "rid-1", calls[0].RequestID)
	require.Equal(t, map[string]any{
		"id": float64(0), "mesa": "12", "sabores": "1x Pizza Calabresa + 1x Coca-Cola 2L",
		"obs": "", "status": "Recebido",
	}, calls[0].Body)
}

func TestCreateOrder_EmptyResponse_NormalizesPayload(t *testing.T) {
	t.Parallel()

	api, srv := newFakeAPI(t)
	api.on(http.MethodPost, "/api/Cliente/pedidosCliente", http.StatusOK, "")

	got, err := newGateway(t, srv, nil).CreateOrder(context.Background(), domain.NewOrder{Table: "3", Items: "Suco", Note: "gelo"})
	require.NoError(t, err)
	require.Equal(t, domain.Order{Table: "3", Items: "Suco", Note: "gelo", Status: domain.StatusReceived, CreatedAt: fixedNow}, got)
}

func TestCreateOrder_ServerError(t *testing.T) {
	t.Parallel()

	api, srv := newFakeAPI(t)
	api.on(http.MethodPost, "/api/Cliente/pedidosCliente", http.StatusInternalServerError, `{"error":"boom"}`)

	_, err := newGateway(t, srv, nil).CreateOrder(context.Background(), domain.NewOrder{Table: "3", Items: "Suco"})
	require.ErrorIs(t, err, domain.ErrServer)

	var se *domain.ServerError
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusInternalServerError, se.StatusCode)
}

func TestListOrdersForTable_AbsorbsErrors(t *testing.T) {
	t.Parallel()

	api, srv := newFakeAPI(t)
	api.on(http.MethodGet, "/api/Cliente/pedidosCliente/12", http.StatusOK, `{"value":[{"Id":1,"Mesa":12,"Sabores":"Pizza"}]}`)
	api.on(http.MethodGet, "/api/Cliente/pedidosCliente/13", http.StatusServiceUnavailable, "")
	api.on(http.MethodGet, "/api/Cliente/pedidosCliente/14", http.StatusOK, "{broken")

	gw := newGateway(t, srv, nil)

	got := gw.ListOrdersForTable(context.Background(), "12")
	require.Len(t, got, 1)
	require.Equal(t, "12", got[0].Table)

	require.NotNil(t, gw.ListOrdersForTable(context.Background(), "13"))
	require.Empty(t, gw.ListOrdersForTable(context.Background(), "13"))
	require.Empty(t, gw.ListOrdersForTable(context.Background(), "14"))
}

func TestListOrdersForTable_TransportError(t *testing.T) {
	t.Parallel()

	_, srv := newFakeAPI(t)
	gw := newGateway(t, srv, nil)
	srv.Close()

	require.Empty(t, gw.ListOrdersForTable(context.Background(), "12"))
	_, err := gw.ListAllOrders(context.Background())
	require.ErrorIs(t, err, domain.ErrTransport)
}

func TestListAllOrders_AttachesBearer(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	tokens := mocks.NewMockTokenSource(ctrl)
	tokens.EXPECT().Token(gomock.Any()).Return("tok-1", nil)

	api, srv := newFakeAPI(t)
	api.on(http.MethodGet, "/api/API/pedidos", http.StatusOK, `[{"id":1,"mesa":"2","sabores":"Pizza","status":"EmPreparo"}]`)

	got, err := newGateway(t, srv, tokens).ListAllOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, domain.StatusInPreparation, got[0].Status)
	require.Equal(t, "Bearer tok-1", api.calls()[0].Auth)
}

func TestListAllOrders_AuthFailure_ProceedsUnauthenticated(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	tokens := mocks.NewMockTokenSource(ctrl)
	tokens.EXPECT().Token(gomock.Any()).Return("", domain.ErrAuthAcquisition)

	api, srv := newFakeAPI(t)
	api.on(http.MethodGet, "/api/API/pedidos", http.StatusOK, `[]`)

	got, err := newGateway(t, srv, tokens).ListAllOrders(context.Background())
	require.NoError(t, err)
	require.Empty(t, got)
	require.Empty(t, api.calls()[0].Auth)
}

func TestAdvanceStatus_ReadyDeletes(t *testing.T) {
	t.Parallel()

	api, srv := newFakeAPI(t)
	api.on(http.MethodGet, "/api/API/pedidos", http.StatusOK,
		`[{"id":7,"mesa":"4","sabores":"Pizza","status":"Pronto","dataCriacao":"2025-03-14T18:00:00Z"}]`)
	api.on(http.MethodDelete, "/api/API/pedidos/7", http.StatusNoContent, "")

	got, err := newGateway(t, srv, nil).AdvanceStatus(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, domain.StatusDelivered, got.Status)
	require.Equal(t, int64(7), got.ID)

	calls := api.calls()
	require.Len(t, calls, 2)
	require.Equal(t, http.MethodGet, calls[0].Method)
	require.Equal(t, http.MethodDelete, calls[1].Method)
}

func TestAdvanceStatus_PutsNextStatus(t *testing.T) {
	t.Parallel()

	api, srv := newFakeAPI(t)
	api.on(http.MethodGet, "/api/API/pedidos", http.StatusOK,
		`{"value":[{"Id":8,"Mesa":"5","Sabores":"Suco","Obs":"gelo","Status":"Na fila","DataCriacao":"2025-03-14T18:00:00Z"}]}`)
	api.on(http.MethodPut, "/api/API/pedidos/8", http.StatusNoContent, "")

	got, err := newGateway(t, srv, nil).AdvanceStatus(context.Background(), 8)
	require.NoError(t, err)
	require.Equal(t, domain.Order{
		ID: 8, Table: "5", Items: "Suco", Note: "gelo", Status: domain.StatusInPreparation,
		CreatedAt: time.Date(2025, 3, 14, 18, 0, 0, 0, time.UTC),
	}, got)

	calls := api.calls()
	require.Len(t, calls, 2)
	require.Equal(t, http.MethodPut, calls[1].Method)
	require.Equal(t, map[string]any{
		"id": float64(8), "mesa": "5", "sabores": "Suco", "obs": "gelo", "status": "EmPreparo",
	}, calls[1].Body)
}

func TestAdvanceStatus_PutKeepsRawFields(t *testing.T) {
	t.Parallel()

	api, srv := newFakeAPI(t)
	// строка без mesa и sabores: нормализатор подставит "0" и ItemsFallback
	api.on(http.MethodGet, "/api/API/pedidos", http.StatusOK,
		`[{"id":9,"descricao":"Calzone","status":"Recebido"}]`)
	api.on(http.MethodPut, "/api/API/pedidos/9", http.StatusNoContent, "")

	got, err := newGateway(t, srv, nil).AdvanceStatus(context.Background(), 9)
	require.NoError(t, err)
	require.Equal(t, domain.StatusInPreparation, got.Status)
	require.Equal(t, "0", got.Table)

	calls := api.calls()
	require.Len(t, calls, 2)
	require.Equal(t, map[string]any{
		"id": float64(9), "mesa": "", "sabores": "Calzone", "obs": "", "status": "EmPreparo",
	}, calls[1].Body)
	require.NotEqual(t, domain.ItemsFallback, calls[1].Body["sabores"])
}

func TestAdvanceStatus_MissingID_NoMutation(t *testing.T) {
	t.Parallel()

	api, srv := newFakeAPI(t)
	api.on(http.MethodGet, "/api/API/pedidos", http.StatusOK, `[{"id":1,"mesa":"2","sabores":"Pizza"}]`)

	_, err := newGateway(t, srv, nil).AdvanceStatus(context.Background(), 99)
	require.ErrorIs(t, err, domain.ErrNotFound)

	calls := api.calls()
	require.Len(t, calls, 1)
	require.Equal(t, http.MethodGet, calls[0].Method)
}

func TestEditOrder_PassesStatusThrough(t *testing.T) {
	t.Parallel()

	api, srv := newFakeAPI(t)
	api.on(http.MethodPut, "/api/API/pedidos/5", http.StatusOK, "")

	gw := newGateway(t, srv, nil)
	got, err := gw.EditOrder(context.Background(), 5, domain.OrderEdit{
		Table: "9", Items: "Pizza", Note: "", Status: domain.StatusReady,
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusReady, got.Status)
	require.Equal(t, "Pronto", api.calls()[0].Body["status"])

	_, err = gw.EditOrder(context.Background(), 5, domain.OrderEdit{Table: "9", Items: "Pizza"})
	require.ErrorIs(t, err, domain.ErrUnknownStatus)
	require.Len(t, api.calls(), 1)
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	t.Parallel()

	_, err := httpapi.New(httpapi.Options{BaseURL: "localhost"}, nil, noopLogger{})
	require.Error(t, err)
}
