package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama"

	"github.com/marrcelo/shipstore/internal/domain"
)

func TestNewOrderCreatedEvent(t *testing.T) {
	order := domain.Order{
		ID:        42,
		CreatedAt: time.Now(),
		Details: []domain.OrderDetail{
			{ID: 1, ProductID: "the_odyssey", Price: 99.99, Quantity: 2},
			{ID: 2, ProductID: "the_enigma", Price: 5.99, Quantity: 1},
		},
	}

	event := NewOrderCreatedEvent(order)

	if event.EventID == "" {
		t.Error("event id should be assigned")
	}
	if event.EventType != EventTypeOrderCreated {
		t.Errorf("event type = %s, want %s", event.EventType, EventTypeOrderCreated)
	}
	if event.OrderID != 42 {
		t.Errorf("order id = %d, want 42", event.OrderID)
	}
	if len(event.OrderDetails) != 2 {
		t.Fatalf("expected 2 details, got %d", len(event.OrderDetails))
	}
	if event.OrderDetails[0].ProductID != "the_odyssey" {
		t.Errorf("unexpected first detail product: %s", event.OrderDetails[0].ProductID)
	}
	if event.Key() != "42" {
		t.Errorf("key = %s, want 42", event.Key())
	}
}

func TestParseOrderCreatedEvent(t *testing.T) {
	source := NewOrderCreatedEvent(domain.Order{
		ID:      7,
		Details: []domain.OrderDetail{{ID: 1, ProductID: "p1", Price: 1.5, Quantity: 3}},
	})

	raw, err := json.Marshal(source)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	event, err := ParseOrderCreatedEvent(&sarama.ConsumerMessage{Value: raw})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if event.OrderID != 7 {
		t.Errorf("order id = %d, want 7", event.OrderID)
	}
	if event.EventID != source.EventID {
		t.Errorf("event id = %s, want %s", event.EventID, source.EventID)
	}
	if len(event.OrderDetails) != 1 || event.OrderDetails[0].Quantity != 3 {
		t.Errorf("unexpected details: %+v", event.OrderDetails)
	}
}

func TestParseOrderCreatedEventInvalidJSON(t *testing.T) {
	_, err := ParseOrderCreatedEvent(&sarama.ConsumerMessage{Value: []byte("{broken")})
	if err == nil {
		t.Fatal("expected error for invalid json")
	}
}
