package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/IBM/sarama"

	"github.com/marrcelo/shipstore/internal/domain"
)

// Типы событий заказов.
const (
	EventTypeOrderCreated = "order_created"
)

// Topics для Kafka
const (
	TopicOrderEvents     = "shipstore.order.events"
	TopicDeadLetterQueue = "shipstore.dlq" // Dead Letter Queue для failed messages
)

// Kafka headers для retry логики
const (
	HeaderRetryCount = "x-retry-count"
)

// OrderDetailPayload — позиция заказа в теле события.
type OrderDetailPayload struct {
	ID        int64   `json:"id"`
	ProductID string  `json:"product_id"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// OrderCreatedEvent — событие о созданном заказе. Несёт полный сохранённый
// заказ, чтобы подписчикам не требовался обратный запрос.
type OrderCreatedEvent struct {
	EventID      string               `json:"event_id"`
	EventType    string               `json:"event_type"`
	OrderID      int64                `json:"order_id"`
	OrderDetails []OrderDetailPayload `json:"order_details"`
	Timestamp    time.Time            `json:"timestamp"`
}

// NewOrderCreatedEvent строит событие по сохранённому заказу.
func NewOrderCreatedEvent(order domain.Order) *OrderCreatedEvent {
	details := make([]OrderDetailPayload, 0, len(order.Details))
	for _, detail := range order.Details {
		details = append(details, OrderDetailPayload{
			ID:        detail.ID,
			ProductID: detail.ProductID,
			Price:     detail.Price,
			Quantity:  detail.Quantity,
		})
	}
	return &OrderCreatedEvent{
		EventID:      uuid.NewString(),
		EventType:    EventTypeOrderCreated,
		OrderID:      order.ID,
		OrderDetails: details,
		Timestamp:    time.Now().UTC(),
	}
}

// Key возвращает ключ партиционирования — ID заказа.
func (e *OrderCreatedEvent) Key() string {
	return fmt.Sprintf("%d", e.OrderID)
}

// ParseOrderCreatedEvent парсит OrderCreatedEvent из сообщения.
func ParseOrderCreatedEvent(message *sarama.ConsumerMessage) (*OrderCreatedEvent, error) {
	var event OrderCreatedEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order event: %w", err)
	}
	return &event, nil
}
