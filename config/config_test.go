package config_test

import (
	"slices"
	"testing"
	"time"

	cfg "github.com/Gunvolt24/table_orders/config"
)

// TestLoadWithPrefix_Defaults — проверка наличия значений по умолчанию.
func TestLoadWithPrefix_Defaults(t *testing.T) {
	t.Parallel()

	c, err := cfg.LoadWithPrefix("ORDERS_TEST_DEFAULTS")
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	// HTTP
	if c.HTTP.Addr != ":8080" || c.HTTP.GinMode != "debug" {
		t.Fatalf("HTTP defaults wrong: %+v", c.HTTP)
	}
	if c.HTTP.ReadTimeout != 10*time.Second || c.HTTP.WriteTimeout != 0 {
		t.Fatalf("HTTP timeouts wrong: %+v", c.HTTP)
	}
	if c.HTTP.ReadHeaderTimeout != 5*time.Second || c.HTTP.IdleTimeout != 60*time.Second {
		t.Fatalf("HTTP header/idle timeouts wrong: %+v", c.HTTP)
	}
	if c.HTTP.HandlerTimeout != 15*time.Second || c.HTTP.Heartbeat != 15*time.Second || c.HTTP.GracefulTimeout != 5*time.Second {
		t.Fatalf("HTTP handler/heartbeat wrong: %+v", c.HTTP)
	}

	// Metrics
	if c.Metrics.Addr != ":2112" {
		t.Fatalf("Metrics.Addr: want :2112, got %q", c.Metrics.Addr)
	}

	// Tracing
	if c.Tracing.Enabled {
		t.Fatalf("Tracing.Enabled: want false, got true")
	}
	if c.Tracing.ServiceName != "table-orders" || c.Tracing.Endpoint != "jaeger:4318" || c.Tracing.SampleRatio != 1 {
		t.Fatalf("Tracing defaults wrong: %+v", c.Tracing)
	}

	// API
	if c.API.BaseURL != "http://localhost:5000" || c.API.Timeout != 0 {
		t.Fatalf("API defaults wrong: %+v", c.API)
	}

	// Auth
	if !c.Auth.EnforceRoles || c.Auth.TokenURL != "" {
		t.Fatalf("Auth defaults wrong: %+v", c.Auth)
	}

	// Sync
	if c.Sync.TableStaleTime != 10*time.Second || c.Sync.DashboardStaleTime != 5*time.Second ||
		c.Sync.RefetchInterval != 30*time.Second || c.Sync.DashboardRetry != 3 {
		t.Fatalf("Sync query defaults wrong: %+v", c.Sync)
	}
	if c.Sync.Capacity != 256 || c.Sync.GCTime != 5*time.Minute {
		t.Fatalf("Sync store defaults wrong: %+v", c.Sync)
	}

	// Kafka
	if c.Kafka.Enabled {
		t.Fatalf("Kafka.Enabled: want false")
	}
	if !slices.Equal(c.Kafka.Brokers, []string{"kafka:9092"}) {
		t.Fatalf("Kafka.Brokers: want [kafka:9092], got %v", c.Kafka.Brokers)
	}
	if c.Kafka.Topic != "order-changes" || c.Kafka.GroupID != "" || c.Kafka.StartOffset != "last" {
		t.Fatalf("Kafka defaults wrong: %+v", c.Kafka)
	}
	if c.Kafka.ProcessTimeout != 5*time.Second || c.Kafka.RetryInitial != 1*time.Second || c.Kafka.RetryMax != 30*time.Second {
		t.Fatalf("Kafka timeouts wrong: %+v", c.Kafka)
	}
	if c.Kafka.BatchWindow != 50*time.Millisecond || c.Kafka.BatchSize != 64 {
		t.Fatalf("Kafka batch defaults wrong: %+v", c.Kafka)
	}

	// Logger
	if c.Logger.IsProd {
		t.Fatalf("Logger.IsProd: want false, got true")
	}
}

// Меняем окружение.
func TestLoadWithPrefix_Overrides(t *testing.T) {
	const p = "ORDERS_TEST_OVR"

	t.Setenv(p+"_HTTP_ADDR", ":9999")
	t.Setenv(p+"_HTTP_GIN_MODE", "release")
	t.Setenv(p+"_HTTP_HANDLER_TIMEOUT", "4500ms")
	t.Setenv(p+"_METRICS_ADDR", ":9998")
	t.Setenv(p+"_TRACING_OTEL_ENABLED", "true")
	t.Setenv(p+"_TRACING_OTEL_SAMPLE_RATIO", "0.25")
	t.Setenv(p+"_API_BASE_URL", "https://api.example.test")
	t.Setenv(p+"_API_TIMEOUT", "3s")
	t.Setenv(p+"_AUTH_TOKEN_URL", "https://login.example.test/token")
	t.Setenv(p+"_AUTH_CLIENT_ID", "bff")
	t.Setenv(p+"_AUTH_SCOPES", "api://orders/.default,openid")
	t.Setenv(p+"_AUTH_ENFORCE_ROLES", "false")
	t.Setenv(p+"_SYNC_DASHBOARD_RETRY", "1")
	t.Setenv(p+"_SYNC_REFETCH_INTERVAL", "2s")
	t.Setenv(p+"_KAFKA_ENABLED", "true")
	t.Setenv(p+"_KAFKA_BROKERS", "k1:9092,k2:9093")
	t.Setenv(p+"_KAFKA_GROUP_ID", "replica-1")
	t.Setenv(p+"_LOGGER_IS_PROD", "true")

	c, err := cfg.LoadWithPrefix(p)
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	if c.HTTP.Addr != ":9999" || c.HTTP.GinMode != "release" || c.HTTP.HandlerTimeout != 4500*time.Millisecond {
		t.Fatalf("HTTP overrides wrong: %+v", c.HTTP)
	}
	if c.Metrics.Addr != ":9998" {
		t.Fatalf("Metrics.Addr override wrong: %q", c.Metrics.Addr)
	}
	if !c.Tracing.Enabled || c.Tracing.SampleRatio != 0.25 {
		t.Fatalf("Tracing overrides wrong: %+v", c.Tracing)
	}
	if c.API.BaseURL != "https://api.example.test" || c.API.Timeout != 3*time.Second {
		t.Fatalf("API overrides wrong: %+v", c.API)
	}
	if c.Auth.TokenURL == "" || c.Auth.ClientID != "bff" || c.Auth.EnforceRoles ||
		!slices.Equal(c.Auth.Scopes, []string{"api://orders/.default", "openid"}) {
		t.Fatalf("Auth overrides wrong: %+v", c.Auth)
	}
	if c.Sync.DashboardRetry != 1 || c.Sync.RefetchInterval != 2*time.Second {
		t.Fatalf("Sync overrides wrong: %+v", c.Sync)
	}
	if !c.Kafka.Enabled || c.Kafka.GroupID != "replica-1" ||
		!slices.Equal(c.Kafka.Brokers, []string{"k1:9092", "k2:9093"}) {
		t.Fatalf("Kafka overrides wrong: %+v", c.Kafka)
	}
	if !c.Logger.IsProd {
		t.Fatalf("Logger.IsProd override wrong: %+v", c.Logger)
	}
}

// Тоже меняем окружение — но с невалидным значением.
func TestLoadWithPrefix_InvalidValue_ReturnsError(t *testing.T) {
	const p = "ORDERS_TEST_BAD"
	t.Setenv(p+"_SYNC_RETRY_MAX", "not-a-duration")

	if _, err := cfg.LoadWithPrefix(p); err == nil {
		t.Fatalf("expected error for invalid duration, got nil")
	}
}
