package app

import "os"

// Config описывает настройки запуска шлюза.
type Config struct {
	HTTPAddr     string
	MetricsAddr  string
	PostgresDSN  string
	RedisAddr    string
	KafkaBrokers string
	ImageRoot    string
}

// DefaultConfig возвращает базовые адреса и корень картинок каталога.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:    ":8000",
		MetricsAddr: ":9090",
		ImageRoot:   "http://example.com/airship/images",
	}
}

// ConfigFromEnv строит конфигурацию из переменных окружения поверх
// значений по умолчанию. Пустые postgres/redis/kafka означают работу
// на in-memory реализациях.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("SHIPSTORE_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("SHIPSTORE_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("SHIPSTORE_POSTGRES_DSN"); v != "" {
		cfg.PostgresDSN = v
	}
	if v := os.Getenv("SHIPSTORE_REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.KafkaBrokers = v
	}
	if v := os.Getenv("SHIPSTORE_IMAGE_ROOT"); v != "" {
		cfg.ImageRoot = v
	}
	return cfg
}
