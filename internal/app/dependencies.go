package app

import (
	"context"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/marrcelo/shipstore/internal/domain"
	"github.com/marrcelo/shipstore/internal/health"
	"github.com/marrcelo/shipstore/internal/messaging/kafka"
	"github.com/marrcelo/shipstore/internal/storage/memory"
	"github.com/marrcelo/shipstore/internal/storage/postgres"
	redisstore "github.com/marrcelo/shipstore/internal/storage/redis"
)

const pingTimeout = 2 * time.Second

// Dependencies содержит внешние зависимости шлюза. Postgres, Redis и Kafka
// опциональны: при пустой конфигурации используются in-memory хранилища и
// лог-издатель событий, так что бинарь запускается автономно.
type Dependencies struct {
	Orders    domain.OrderStore
	Products  domain.ProductStore
	Publisher domain.EventPublisher
	Logger    *log.Entry

	pg       *postgres.Store
	redis    *goredis.Client
	producer *kafka.Producer
}

// NewDependencies создаёт и инициализирует зависимости по конфигурации.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	deps := &Dependencies{Logger: logger}

	if cfg.PostgresDSN != "" {
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
		deps.pg = store
		deps.Orders = postgres.NewOrderStore(store)
		logger.Info("postgres order store initialized")
	} else {
		deps.Orders = memory.NewOrderStore()
		logger.Info("using in-memory order store")
	}

	if cfg.RedisAddr != "" {
		client := redisstore.NewClient(cfg.RedisAddr)
		if err := client.Ping(ctx).Err(); err != nil {
			deps.Close()
			return nil, err
		}
		deps.redis = client
		deps.Products = redisstore.NewProductStore(client)
		logger.WithField("addr", cfg.RedisAddr).Info("redis product store initialized")
	} else {
		deps.Products = memory.NewProductStore()
		logger.Info("using in-memory product store")
	}

	deps.producer = initKafkaProducer(cfg.KafkaBrokers, logger)
	if deps.producer != nil {
		deps.Publisher = kafka.NewEventPublisher(deps.producer)
	} else {
		deps.Publisher = kafka.NewLogPublisher(logger)
	}

	return deps, nil
}

// RegisterHealthChecks регистрирует проверки подключённых компонентов.
func (d *Dependencies) RegisterHealthChecks(handler *health.Handler) {
	if d.pg != nil {
		handler.RegisterChecker("postgres", health.NewPingChecker("postgres", pingTimeout, d.pg.Ping))
	}
	if d.redis != nil {
		handler.RegisterChecker("redis", health.NewPingChecker("redis", pingTimeout, func(ctx context.Context) error {
			return d.redis.Ping(ctx).Err()
		}))
	}
}

// Close освобождает подключения в обратном порядке инициализации.
func (d *Dependencies) Close() {
	if d.producer != nil {
		if err := d.producer.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close kafka producer")
		} else {
			d.Logger.Info("kafka producer closed")
		}
	}
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close redis client")
		}
	}
	if d.pg != nil {
		if err := d.pg.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close postgres store")
		}
	}
}

// initKafkaProducer инициализирует Kafka producer если brokers не пустой.
// Ошибка подключения не фатальна: шлюз продолжает работу без Kafka.
func initKafkaProducer(brokers string, logger *log.Entry) *kafka.Producer {
	if brokers == "" {
		return nil
	}

	brokerList := strings.Split(brokers, ",")
	producer, err := kafka.NewProducer(brokerList)
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		return nil
	}

	logger.WithField("brokers", brokerList).Info("kafka producer initialized")
	return producer
}
