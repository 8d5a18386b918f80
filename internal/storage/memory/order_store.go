package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/marrcelo/shipstore/internal/domain"
)

// orderStoreInMemory — in-memory реализация OrderStore с теми же семантиками
// пагинации и обновления, что и у PostgreSQL-реализации.
type orderStoreInMemory struct {
	mu         sync.RWMutex
	orders     map[int64]domain.Order
	nextOrder  int64
	nextDetail int64
}

// NewOrderStore возвращает in-memory хранилище заказов.
func NewOrderStore() domain.OrderStore {
	return &orderStoreInMemory{
		orders: make(map[int64]domain.Order),
	}
}

// Get возвращает заказ с позициями или ErrOrderNotFound.
func (s *orderStoreInMemory) Get(_ context.Context, id int64) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return domain.Order{}, domain.OrderNotFound(id)
	}
	return copyOrder(order), nil
}

// List возвращает страницу заказов (по возрастанию ID) и общее количество.
// Страница за пределами данных — пустой срез, не ошибка.
func (s *orderStoreInMemory) List(_ context.Context, page, limit int) ([]domain.Order, int, error) {
	if page < 1 {
		return nil, 0, domain.InvalidQueryParam("page")
	}
	if limit < 1 {
		return nil, 0, domain.InvalidQueryParam("limit")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]domain.Order, 0, len(s.orders))
	for _, order := range s.orders {
		all = append(all, order)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := len(all)
	offset := (page - 1) * limit
	if offset >= total {
		return []domain.Order{}, total, nil
	}

	end := offset + limit
	if end > total {
		end = total
	}

	result := make([]domain.Order, 0, end-offset)
	for _, order := range all[offset:end] {
		result = append(result, copyOrder(order))
	}
	return result, total, nil
}

// Create назначает идентификаторы заказу и позициям и сохраняет их атомарно.
func (s *orderStoreInMemory) Create(_ context.Context, details []domain.NewOrderDetail) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextOrder++
	order := domain.Order{
		ID:        s.nextOrder,
		Details:   make([]domain.OrderDetail, 0, len(details)),
		CreatedAt: time.Now().UTC(),
	}
	for _, detail := range details {
		s.nextDetail++
		order.Details = append(order.Details, domain.OrderDetail{
			ID:        s.nextDetail,
			ProductID: detail.ProductID,
			Price:     detail.Price,
			Quantity:  detail.Quantity,
		})
	}

	s.orders[order.ID] = copyOrder(order)
	return order, nil
}

// Update перезаписывает цену и количество позиций по их ID. Входные позиции
// с ID, которого нет у заказа, игнорируются без ошибки.
func (s *orderStoreInMemory) Update(_ context.Context, order domain.Order) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.orders[order.ID]
	if !ok {
		return domain.Order{}, domain.OrderNotFound(order.ID)
	}

	incoming := make(map[int64]domain.NewOrderDetail, len(order.Details))
	for _, detail := range order.Details {
		incoming[detail.ID] = domain.NewOrderDetail{Price: detail.Price, Quantity: detail.Quantity}
	}

	updated := copyOrder(stored)
	for i, detail := range updated.Details {
		patch, ok := incoming[detail.ID]
		if !ok {
			continue
		}
		updated.Details[i].Price = patch.Price
		updated.Details[i].Quantity = patch.Quantity
	}

	s.orders[updated.ID] = copyOrder(updated)
	return updated, nil
}

// Delete удаляет заказ вместе с позициями или возвращает ErrOrderNotFound.
func (s *orderStoreInMemory) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[id]; !ok {
		return domain.OrderNotFound(id)
	}
	delete(s.orders, id)
	return nil
}

// copyOrder копирует заказ вместе со срезом позиций, чтобы избежать
// непредсказуемых мутаций извне.
func copyOrder(order domain.Order) domain.Order {
	clone := order
	clone.Details = make([]domain.OrderDetail, len(order.Details))
	copy(clone.Details, order.Details)
	return clone
}

var _ domain.OrderStore = (*orderStoreInMemory)(nil)
