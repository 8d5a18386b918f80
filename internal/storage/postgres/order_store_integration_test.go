package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/marrcelo/shipstore/internal/domain"
)

func integrationDetails() []domain.NewOrderDetail {
	return []domain.NewOrderDetail{
		{ProductID: "the_odyssey", Price: 99.99, Quantity: 1},
		{ProductID: "the_enigma", Price: 5.99, Quantity: 2},
	}
}

func TestOrderStoreIntegration_CreateGet(t *testing.T) {
	store := openStoreForIntegrationTest(t)
	repo := NewOrderStore(store)
	ctx := context.Background()

	order, err := repo.Create(ctx, integrationDetails())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if order.ID == 0 {
		t.Fatal("expected assigned order id")
	}

	stored, err := repo.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(stored.Details) != 2 {
		t.Fatalf("expected 2 details, got %d", len(stored.Details))
	}
	if stored.Details[0].ProductID != "the_odyssey" || stored.Details[0].Price != 99.99 {
		t.Fatalf("unexpected first detail: %+v", stored.Details[0])
	}
}

func TestOrderStoreIntegration_GetMissing(t *testing.T) {
	store := openStoreForIntegrationTest(t)
	repo := NewOrderStore(store)

	if _, err := repo.Get(context.Background(), 424242); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderStoreIntegration_ListPagination(t *testing.T) {
	store := openStoreForIntegrationTest(t)
	repo := NewOrderStore(store)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		if _, err := repo.Create(ctx, integrationDetails()); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	rows, total, err := repo.List(ctx, 2, 3)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 7 || len(rows) != 3 {
		t.Fatalf("expected 3 rows of 7, got %d of %d", len(rows), total)
	}

	rows, total, err = repo.List(ctx, 5, 3)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 0 || total != 7 {
		t.Fatalf("expected empty page with total 7, got %d rows total %d", len(rows), total)
	}

	if _, _, err := repo.List(ctx, 0, 3); !errors.Is(err, domain.ErrInvalidQueryParam) {
		t.Fatalf("expected ErrInvalidQueryParam, got %v", err)
	}
}

func TestOrderStoreIntegration_UpdateSemantics(t *testing.T) {
	store := openStoreForIntegrationTest(t)
	repo := NewOrderStore(store)
	ctx := context.Background()

	order, err := repo.Create(ctx, integrationDetails())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := repo.Update(ctx, domain.Order{
		ID: order.ID,
		Details: []domain.OrderDetail{
			{ID: order.Details[0].ID, Price: 150, Quantity: 4},
			{ID: 999999, Price: 1, Quantity: 1}, // неизвестный ID — no-op
		},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Details[0].Price != 150 || updated.Details[0].Quantity != 4 {
		t.Fatalf("first detail not updated: %+v", updated.Details[0])
	}
	if updated.Details[1].Price != 5.99 || updated.Details[1].Quantity != 2 {
		t.Fatalf("untouched detail changed: %+v", updated.Details[1])
	}

	if _, err := repo.Update(ctx, domain.Order{ID: 424242}); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderStoreIntegration_DeleteCascades(t *testing.T) {
	store := openStoreForIntegrationTest(t)
	repo := NewOrderStore(store)
	ctx := context.Background()

	order, err := repo.Create(ctx, integrationDetails())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Delete(ctx, order.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var remaining int
	if err := store.DB().QueryRowContext(ctx, `
		SELECT COUNT(*) FROM order_details WHERE order_id = $1
	`, order.ID).Scan(&remaining); err != nil {
		t.Fatalf("count details: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("expected cascade delete of details, %d left", remaining)
	}

	if err := repo.Delete(ctx, order.ID); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound on repeated delete, got %v", err)
	}
}
