package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix - префикс переменных окружения сервиса (ORDERS_HTTP_ADDR и т.д.).
const Prefix = "ORDERS"

type HTTP struct {
	Addr              string        `default:":8080" envconfig:"ADDR"`
	GinMode           string        `default:"debug" envconfig:"GIN_MODE"`
	ReadTimeout       time.Duration `default:"10s" envconfig:"READ_TIMEOUT"`
	ReadHeaderTimeout time.Duration `default:"5s" envconfig:"READ_HEADER_TIMEOUT"`
	// WriteTimeout 0 - без ограничения (SSE-поток дашборда долгоживущий).
	WriteTimeout   time.Duration `default:"0s" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout    time.Duration `default:"60s" envconfig:"IDLE_TIMEOUT"`
	HandlerTimeout time.Duration `default:"15s" envconfig:"HANDLER_TIMEOUT"`
	// Heartbeat - период комментариев-пингов в SSE.
	Heartbeat       time.Duration `default:"15s" envconfig:"HEARTBEAT"`
	GracefulTimeout time.Duration `default:"5s" envconfig:"GRACEFUL_TIMEOUT"`
}

// Metrics - отдельный адрес для /metrics (пусто - только на основном роутере).
type Metrics struct {
	Addr string `default:":2112" envconfig:"ADDR"`
}

type Tracing struct {
	Enabled     bool    `default:"false" envconfig:"OTEL_ENABLED"`
	ServiceName string  `default:"table-orders" envconfig:"OTEL_SERVICE_NAME"`
	Endpoint    string  `default:"jaeger:4318" envconfig:"OTEL_ENDPOINT"`
	SampleRatio float64 `default:"1" envconfig:"OTEL_SAMPLE_RATIO"`
}

type Logger struct {
	IsProd bool `default:"false" envconfig:"IS_PROD"`
}

// API - удалённый API заказов.
type API struct {
	BaseURL string `default:"http://localhost:5000" envconfig:"BASE_URL"`
	// Timeout 0 - без таймаута на запрос.
	Timeout time.Duration `default:"0s" envconfig:"TIMEOUT"`
}

// Auth - получение токена без участия пользователя и проверка ролей.
type Auth struct {
	TokenURL     string   `envconfig:"TOKEN_URL"`
	ClientID     string   `envconfig:"CLIENT_ID"`
	ClientSecret string   `envconfig:"CLIENT_SECRET"`
	Scopes       []string `envconfig:"SCOPES"`
	EnforceRoles bool     `default:"true" envconfig:"ENFORCE_ROLES"`
}

// Sync - параметры кэша синхронизации.
type Sync struct {
	TableStaleTime     time.Duration `default:"10s" envconfig:"TABLE_STALE_TIME"`
	DashboardStaleTime time.Duration `default:"5s" envconfig:"DASHBOARD_STALE_TIME"`
	RefetchInterval    time.Duration `default:"30s" envconfig:"REFETCH_INTERVAL"`
	DashboardRetry     int           `default:"3" envconfig:"DASHBOARD_RETRY"`
	RetryInitial       time.Duration `default:"500ms" envconfig:"RETRY_INITIAL"`
	RetryMax           time.Duration `default:"8s" envconfig:"RETRY_MAX"`
	Capacity           int           `default:"256" envconfig:"CAPACITY"`
	GCTime             time.Duration `default:"5m" envconfig:"GC_TIME"`
}

type Kafka struct {
	Enabled        bool          `default:"false" envconfig:"ENABLED"`
	Brokers        []string      `default:"kafka:9092" envconfig:"BROKERS"`
	Topic          string        `default:"order-changes" envconfig:"TOPIC"`
	GroupID        string        `envconfig:"GROUP_ID"`
	StartOffset    string        `default:"last" envconfig:"START_OFFSET"`
	ProcessTimeout time.Duration `default:"5s" envconfig:"PROCESS_TIMEOUT"`
	RetryInitial   time.Duration `default:"1s" envconfig:"RETRY_INITIAL"`
	RetryMax       time.Duration `default:"30s" envconfig:"RETRY_MAX"`
	// BatchWindow - окно склейки событий ленты в одну инвалидацию на стол.
	BatchWindow time.Duration `default:"50ms" envconfig:"BATCH_WINDOW"`
	BatchSize   int           `default:"64" envconfig:"BATCH_SIZE"`
}

type Config struct {
	HTTP    HTTP
	Metrics Metrics
	Tracing Tracing
	Logger  Logger
	API     API
	Auth    Auth
	Sync    Sync
	Kafka   Kafka
}

// Load - конфигурация из окружения с префиксом ORDERS.
func Load() (Config, error) {
	return LoadWithPrefix(Prefix)
}

// LoadWithPrefix - то же с произвольным префиксом (для тестов).
func LoadWithPrefix(prefix string) (Config, error) {
	var c Config

	if err := envconfig.Process(prefix, &c); err != nil {
		return Config{}, err
	}

	return c, nil
}
