package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/marrcelo/shipstore/internal/domain"
	"github.com/marrcelo/shipstore/internal/storage/memory"
)

func newDetails() []domain.NewOrderDetail {
	return []domain.NewOrderDetail{
		{ProductID: "the_odyssey", Price: 99.99, Quantity: 1},
		{ProductID: "the_enigma", Price: 5.99, Quantity: 2},
	}
}

func TestOrderStore_CreateGet(t *testing.T) {
	store := memory.NewOrderStore()
	ctx := context.Background()

	order, err := store.Create(ctx, newDetails())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if order.ID == 0 {
		t.Fatal("expected assigned order id")
	}
	if len(order.Details) != 2 {
		t.Fatalf("expected 2 details, got %d", len(order.Details))
	}
	if order.Details[0].ID == 0 || order.Details[1].ID == 0 {
		t.Fatal("expected assigned detail ids")
	}
	if order.Details[0].ProductID != "the_odyssey" {
		t.Fatalf("detail order not preserved: %+v", order.Details)
	}

	stored, err := store.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(stored.Details) != 2 {
		t.Fatalf("expected 2 stored details, got %d", len(stored.Details))
	}
}

func TestOrderStore_GetMissing(t *testing.T) {
	store := memory.NewOrderStore()

	_, err := store.Get(context.Background(), 404)
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderStore_ListPagination(t *testing.T) {
	store := memory.NewOrderStore()
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		if _, err := store.Create(ctx, newDetails()); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	rows, total, err := store.List(ctx, 2, 3)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 7 {
		t.Fatalf("expected total 7, got %d", total)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	// Страница за пределами данных — пустой срез и прежний total.
	rows, total, err = store.List(ctx, 10, 3)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 0 || total != 7 {
		t.Fatalf("expected empty page with total 7, got %d rows total %d", len(rows), total)
	}
}

func TestOrderStore_ListInvalidParams(t *testing.T) {
	store := memory.NewOrderStore()
	ctx := context.Background()

	for _, tc := range []struct{ page, limit int }{{0, 5}, {-1, 5}, {1, 0}, {1, -3}} {
		if _, _, err := store.List(ctx, tc.page, tc.limit); !errors.Is(err, domain.ErrInvalidQueryParam) {
			t.Fatalf("page=%d limit=%d: expected ErrInvalidQueryParam, got %v", tc.page, tc.limit, err)
		}
	}
}

func TestOrderStore_Update(t *testing.T) {
	store := memory.NewOrderStore()
	ctx := context.Background()

	order, err := store.Create(ctx, newDetails())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	patch := domain.Order{
		ID: order.ID,
		Details: []domain.OrderDetail{
			{ID: order.Details[0].ID, Price: 120, Quantity: 3},
		},
	}
	updated, err := store.Update(ctx, patch)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Details[0].Price != 120 || updated.Details[0].Quantity != 3 {
		t.Fatalf("first detail not updated: %+v", updated.Details[0])
	}
	// Позиция, не упомянутая во входе, остаётся прежней.
	if updated.Details[1].Price != 5.99 || updated.Details[1].Quantity != 2 {
		t.Fatalf("untouched detail changed: %+v", updated.Details[1])
	}
}

func TestOrderStore_UpdateUnknownDetailIsNoop(t *testing.T) {
	store := memory.NewOrderStore()
	ctx := context.Background()

	order, err := store.Create(ctx, newDetails())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	patch := domain.Order{
		ID:      order.ID,
		Details: []domain.OrderDetail{{ID: 9999, Price: 1, Quantity: 1}},
	}
	updated, err := store.Update(ctx, patch)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	for i, detail := range updated.Details {
		if detail != order.Details[i] {
			t.Fatalf("detail %d changed unexpectedly: %+v", i, detail)
		}
	}
}

func TestOrderStore_UpdateMissingOrder(t *testing.T) {
	store := memory.NewOrderStore()

	_, err := store.Update(context.Background(), domain.Order{ID: 404})
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderStore_Delete(t *testing.T) {
	store := memory.NewOrderStore()
	ctx := context.Background()

	order, err := store.Create(ctx, newDetails())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := store.Delete(ctx, order.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Get(ctx, order.ID); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, order.ID); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound on repeated delete, got %v", err)
	}
}
