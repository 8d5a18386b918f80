package orchestrator

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/marrcelo/shipstore/internal/domain"
	"github.com/marrcelo/shipstore/internal/storage/memory"
)

type recordingPublisher struct {
	published atomic.Int64
	failWith  error
	lastType  string
	lastKey   string
}

func (p *recordingPublisher) Publish(_ context.Context, eventType, key string, _ any) error {
	if p.failWith != nil {
		return p.failWith
	}
	p.published.Add(1)
	p.lastType = eventType
	p.lastKey = key
	return nil
}

type countingProductStore struct {
	domain.ProductStore
	listCalls atomic.Int64
}

func (s *countingProductStore) List(ctx context.Context, ids ...string) ([]domain.Product, error) {
	s.listCalls.Add(1)
	return s.ProductStore.List(ctx, ids...)
}

func seedProducts(t *testing.T, store domain.ProductStore, ids ...string) {
	t.Helper()
	for _, id := range ids {
		err := store.Create(context.Background(), domain.Product{
			ID:                id,
			Title:             "Ship " + id,
			PassengerCapacity: 10,
			MaximumSpeed:      5,
			InStock:           100,
		})
		if err != nil {
			t.Fatalf("seed product %s: %v", id, err)
		}
	}
}

func TestCreateOrder(t *testing.T) {
	orders := memory.NewOrderStore()
	products := &countingProductStore{ProductStore: memory.NewProductStore()}
	publisher := &recordingPublisher{}
	seedProducts(t, products, "p1", "p2")

	svc := NewWithoutMetrics(orders, products, publisher, nil)

	details := []domain.NewOrderDetail{
		{ProductID: "p1", Price: 99.99, Quantity: 2},
		{ProductID: "p2", Price: 10.50, Quantity: 1},
	}
	orderID, err := svc.CreateOrder(context.Background(), details)
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if orderID == 0 {
		t.Fatalf("expected non-zero order id")
	}

	order, err := orders.Get(context.Background(), orderID)
	if err != nil {
		t.Fatalf("Get created order: %v", err)
	}
	if len(order.Details) != 2 {
		t.Fatalf("expected 2 details, got %d", len(order.Details))
	}
	for i, detail := range order.Details {
		if detail.ProductID != details[i].ProductID {
			t.Errorf("detail %d: product_id = %s, want %s", i, detail.ProductID, details[i].ProductID)
		}
		if detail.Price != details[i].Price {
			t.Errorf("detail %d: price = %v, want %v", i, detail.Price, details[i].Price)
		}
		if detail.Quantity != details[i].Quantity {
			t.Errorf("detail %d: quantity = %d, want %d", i, detail.Quantity, details[i].Quantity)
		}
	}

	if got := publisher.published.Load(); got != 1 {
		t.Fatalf("expected exactly 1 published event, got %d", got)
	}
	if publisher.lastType != "order_created" {
		t.Errorf("event type = %s, want order_created", publisher.lastType)
	}
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	orders := memory.NewOrderStore()
	products := memory.NewProductStore()
	publisher := &recordingPublisher{}
	seedProducts(t, products, "p1")

	svc := NewWithoutMetrics(orders, products, publisher, nil)

	details := []domain.NewOrderDetail{
		{ProductID: "p1", Price: 99.99, Quantity: 1},
		{ProductID: "ghost", Price: 1.00, Quantity: 1},
		{ProductID: "phantom", Price: 2.00, Quantity: 1},
	}
	_, err := svc.CreateOrder(context.Background(), details)
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	// Первый неизвестный ID во входном порядке.
	if want := "product not found: ghost"; err.Error() != want {
		t.Errorf("error message = %q, want %q", err.Error(), want)
	}

	// Отказ валидации не должен оставить запись в хранилище.
	_, total, err := orders.List(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected empty order store after rejection, got %d orders", total)
	}
	if got := publisher.published.Load(); got != 0 {
		t.Fatalf("expected no published events, got %d", got)
	}
}

func TestCreateOrderSingleBulkLookup(t *testing.T) {
	orders := memory.NewOrderStore()
	products := &countingProductStore{ProductStore: memory.NewProductStore()}
	seedProducts(t, products, "p1", "p2", "p3")

	svc := NewWithoutMetrics(orders, products, &recordingPublisher{}, nil)

	details := []domain.NewOrderDetail{
		{ProductID: "p1", Price: 1, Quantity: 1},
		{ProductID: "p2", Price: 2, Quantity: 1},
		{ProductID: "p1", Price: 1, Quantity: 3},
		{ProductID: "p3", Price: 3, Quantity: 1},
	}
	if _, err := svc.CreateOrder(context.Background(), details); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if got := products.listCalls.Load(); got != 1 {
		t.Fatalf("expected exactly 1 bulk product lookup, got %d", got)
	}
}

func TestCreateOrderPublishFailureDoesNotFailCreation(t *testing.T) {
	orders := memory.NewOrderStore()
	products := memory.NewProductStore()
	publisher := &recordingPublisher{failWith: errors.New("broker unavailable")}
	seedProducts(t, products, "p1")

	svc := NewWithoutMetrics(orders, products, publisher, nil)

	orderID, err := svc.CreateOrder(context.Background(), []domain.NewOrderDetail{
		{ProductID: "p1", Price: 5, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("CreateOrder should succeed despite publish failure: %v", err)
	}
	if _, err := orders.Get(context.Background(), orderID); err != nil {
		t.Fatalf("order should be persisted: %v", err)
	}
}

func TestCreateOrderNilPublisher(t *testing.T) {
	orders := memory.NewOrderStore()
	products := memory.NewProductStore()
	seedProducts(t, products, "p1")

	svc := NewWithoutMetrics(orders, products, nil, nil)

	if _, err := svc.CreateOrder(context.Background(), []domain.NewOrderDetail{
		{ProductID: "p1", Price: 5, Quantity: 1},
	}); err != nil {
		t.Fatalf("CreateOrder with nil publisher: %v", err)
	}
}
