package app

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.HTTPAddr != ":8000" {
		t.Errorf("expected HTTPAddr :8000, got %s", cfg.HTTPAddr)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("expected MetricsAddr :9090, got %s", cfg.MetricsAddr)
	}
	if cfg.PostgresDSN != "" {
		t.Errorf("expected empty PostgresDSN, got %s", cfg.PostgresDSN)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("expected empty RedisAddr, got %s", cfg.RedisAddr)
	}
	if cfg.ImageRoot == "" {
		t.Error("expected non-empty default ImageRoot")
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SHIPSTORE_HTTP_ADDR", ":18000")
	t.Setenv("SHIPSTORE_METRICS_ADDR", ":19090")
	t.Setenv("SHIPSTORE_POSTGRES_DSN", "postgres://localhost/orders")
	t.Setenv("SHIPSTORE_REDIS_ADDR", "localhost:6380")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("SHIPSTORE_IMAGE_ROOT", "http://cdn.local/images")

	cfg := ConfigFromEnv()

	if cfg.HTTPAddr != ":18000" {
		t.Errorf("HTTPAddr = %s", cfg.HTTPAddr)
	}
	if cfg.MetricsAddr != ":19090" {
		t.Errorf("MetricsAddr = %s", cfg.MetricsAddr)
	}
	if cfg.PostgresDSN != "postgres://localhost/orders" {
		t.Errorf("PostgresDSN = %s", cfg.PostgresDSN)
	}
	if cfg.RedisAddr != "localhost:6380" {
		t.Errorf("RedisAddr = %s", cfg.RedisAddr)
	}
	if cfg.KafkaBrokers != "broker1:9092,broker2:9092" {
		t.Errorf("KafkaBrokers = %s", cfg.KafkaBrokers)
	}
	if cfg.ImageRoot != "http://cdn.local/images" {
		t.Errorf("ImageRoot = %s", cfg.ImageRoot)
	}
}

func TestConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("SHIPSTORE_HTTP_ADDR", "")
	t.Setenv("SHIPSTORE_METRICS_ADDR", "")

	cfg := ConfigFromEnv()

	if cfg.HTTPAddr != ":8000" {
		t.Errorf("expected default HTTPAddr, got %s", cfg.HTTPAddr)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("expected default MetricsAddr, got %s", cfg.MetricsAddr)
	}
}
