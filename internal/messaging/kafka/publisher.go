package kafka

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/marrcelo/shipstore/internal/domain"
)

// eventPublisher адаптирует Producer под доменный порт EventPublisher:
// все события заказов идут в один topic, ключ задаёт партиционирование.
type eventPublisher struct {
	producer *Producer
	topic    string
}

// NewEventPublisher оборачивает producer в доменный EventPublisher.
func NewEventPublisher(producer *Producer) domain.EventPublisher {
	return &eventPublisher{
		producer: producer,
		topic:    TopicOrderEvents,
	}
}

// Publish отправляет событие синхронно; ошибку интерпретирует вызывающая
// сторона (для заказов — fire-and-forget).
func (p *eventPublisher) Publish(_ context.Context, eventType, key string, payload any) error {
	_ = eventType // тип события уже зашит в payload
	return p.producer.PublishEvent(p.topic, key, payload)
}

// logPublisher — заглушка на случай, когда Kafka не сконфигурирован:
// событие просто пишется в лог, чтобы поток создания заказов не менялся.
type logPublisher struct {
	logger *log.Entry
}

// NewLogPublisher возвращает publisher, пишущий события только в лог.
func NewLogPublisher(logger *log.Entry) domain.EventPublisher {
	if logger == nil {
		logger = log.WithField("component", "log-publisher")
	}
	return &logPublisher{logger: logger}
}

func (p *logPublisher) Publish(_ context.Context, eventType, key string, payload any) error {
	p.logger.WithFields(log.Fields{
		"event_type": eventType,
		"key":        key,
		"payload":    payload,
	}).Info("event published to log only (kafka disabled)")
	return nil
}

var (
	_ domain.EventPublisher = (*eventPublisher)(nil)
	_ domain.EventPublisher = (*logPublisher)(nil)
)
