package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Gunvolt24/table_orders/config"
	"github.com/Gunvolt24/table_orders/internal/auth"
	"github.com/Gunvolt24/table_orders/internal/gateway/httpapi"
	"github.com/Gunvolt24/table_orders/internal/kafka"
	"github.com/Gunvolt24/table_orders/internal/ports"
	"github.com/Gunvolt24/table_orders/internal/synccache"
	rest "github.com/Gunvolt24/table_orders/internal/transport/http"
	"github.com/Gunvolt24/table_orders/internal/usecase"
	"github.com/Gunvolt24/table_orders/pkg/logger"
	"github.com/Gunvolt24/table_orders/pkg/metrics"
	"github.com/Gunvolt24/table_orders/pkg/telemetry"
	"github.com/Gunvolt24/table_orders/pkg/validate"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// App — собранное приложение и его внешние интерфейсы (HTTP, лента изменений).
type App struct {
	Logger          ports.Logger          // логгер
	HTTPServer      *http.Server          // HTTP-сервер
	MetricsServer   *http.Server          // отдельный /metrics (может быть nil)
	KafkaConsumer   ports.MessageConsumer // читатель ленты изменений (nil, если Kafka выключена)
	gracefulTimeout time.Duration         // время ожидания завершения HTTP-сервера
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// consumerGroup — группа читателя ленты. Каждая реплика держит свой кэш,
// поэтому без явной настройки группа уникальна для хоста.
func consumerGroup(configured string) string {
	if g := strings.TrimSpace(configured); g != "" {
		return g
	}
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "local"
	}
	return "table-orders-" + host
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	// Токены: сессия вызывающего, иначе client credentials (если настроены).
	fallback := auth.NewClientCredentialsSource(ctx, auth.ClientCredentials{
		TokenURL:     cfg.Auth.TokenURL,
		ClientID:     cfg.Auth.ClientID,
		ClientSecret: cfg.Auth.ClientSecret,
		Scopes:       cfg.Auth.Scopes,
	})
	if fallback == nil {
		logg.Infof(ctx, "client credentials not configured, staff calls use caller session only")
	}
	tokens := auth.NewSessionTokenSource(fallback)

	// Шлюз к API заказов.
	gateway, err := httpapi.New(httpapi.Options{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout}, tokens, logg)
	if err != nil {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
		return nil, func() {}, err
	}

	// Кэш синхронизации.
	cache := synccache.New(synccache.Options{
		Capacity:     cfg.Sync.Capacity,
		GCTime:       cfg.Sync.GCTime,
		RetryInitial: cfg.Sync.RetryInitial,
		RetryMax:     cfg.Sync.RetryMax,
	}, logg)

	// Лента изменений (Kafka): публикация после изменений и чтение событий других реплик.
	var (
		notifier  ports.ChangeNotifier
		publisher *kafka.Publisher
		consumer  *kafka.Consumer
	)
	if cfg.Kafka.Enabled {
		publisher = kafka.NewPublisher(&kafka.PublisherConfig{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			WriteTimeout: cfg.Kafka.ProcessTimeout,
		}, logg)
		notifier = publisher
	}

	policy := usecase.Policy{
		TableStaleTime:     cfg.Sync.TableStaleTime,
		DashboardStaleTime: cfg.Sync.DashboardStaleTime,
		RefetchInterval:    cfg.Sync.RefetchInterval,
		DashboardRetry:     cfg.Sync.DashboardRetry,
	}
	orderService := usecase.NewOrderService(gateway, cache, validate.NewOrderValidator(), notifier, logg, policy)

	if cfg.Kafka.Enabled {
		kafkaCfg := kafka.ConsumerConfig{
			Brokers:        cfg.Kafka.Brokers,
			GroupID:        consumerGroup(cfg.Kafka.GroupID),
			Topic:          cfg.Kafka.Topic,
			StartOffset:    cfg.Kafka.StartOffset,
			ProcessTimeout: cfg.Kafka.ProcessTimeout,
			RetryInitial:   cfg.Kafka.RetryInitial,
			RetryMax:       cfg.Kafka.RetryMax,
			BatchWindow:    cfg.Kafka.BatchWindow,
			BatchSize:      cfg.Kafka.BatchSize,
		}
		consumer = kafka.NewConsumer(&kafkaCfg, orderService, logg)
	}

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(orderService, logg, rest.HandlerOptions{
		Timeout:      cfg.HTTP.HandlerTimeout,
		Heartbeat:    cfg.HTTP.Heartbeat,
		EnforceRoles: cfg.Auth.EnforceRoles,
	})
	router := rest.NewRouter(httpHandler, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}
	// Shutdown отменяет контексты запросов: SSE-потоки дашборда закрываются сразу.
	streamsCtx, closeStreams := context.WithCancel(context.Background())
	httpSrv.BaseContext = func(net.Listener) context.Context { return streamsCtx }
	httpSrv.RegisterOnShutdown(closeStreams)

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}
	if consumer != nil {
		app.KafkaConsumer = consumer
	}
	if addr := strings.TrimSpace(cfg.Metrics.Addr); addr != "" && addr != cfg.HTTP.Addr {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		app.MetricsServer = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout}
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		if consumer != nil {
			if err := consumer.Close(); err != nil {
				logg.Warnf(ctx, "kafka consumer close error: %v", err)
			}
		}
		if publisher != nil {
			if err := publisher.Close(); err != nil {
				logg.Warnf(ctx, "kafka publisher close error: %v", err)
			}
		}
		cache.Close()
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}

	return app, cleanup, nil
}

// Run — запускает HTTP-сервер и читателя ленты; ждёт отмены контекста или ошибки и останавливает их.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 3)

	// Запуск читателя ленты изменений.
	if a.KafkaConsumer != nil {
		go func() {
			a.Logger.Infof(ctx, "change feed consumer starting")
			if err := a.KafkaConsumer.Run(ctx); err != nil {
				errCh <- err
			}
		}()
	}

	// Отдельный сервер метрик.
	if a.MetricsServer != nil {
		go func() {
			a.Logger.Infof(ctx, "metrics server starting (addr=%s)", a.MetricsServer.Addr)
			if err := a.MetricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}

	// Запуск HTTP-сервера.
	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Ожидание сигнала остановки или фоновой ошибки.
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.Logger.Infof(ctx, "background component stopped: %v", err)
		} else {
			a.Logger.Warnf(ctx, "background error: %v", err)
		}
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка HTTP-сервера.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}
	if a.MetricsServer != nil {
		if err := a.MetricsServer.Shutdown(shutdownCtx); err != nil {
			a.Logger.Warnf(ctx, "metrics server shutdown failed: %v", err)
		}
	}

	// Остановка читателя ленты.
	if a.KafkaConsumer != nil {
		if err := a.KafkaConsumer.Close(); err != nil {
			a.Logger.Warnf(ctx, "kafka consumer close error: %v", err)
		}
	}

	a.Logger.Infof(ctx, "service stopped")
	return nil
}
