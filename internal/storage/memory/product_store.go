package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/marrcelo/shipstore/internal/domain"
)

// productStoreInMemory — простая in-memory реализация ProductStore.
type productStoreInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Product
}

// NewProductStore возвращает in-memory каталог для локальной разработки и тестов.
func NewProductStore() domain.ProductStore {
	return &productStoreInMemory{
		items: make(map[string]domain.Product),
	}
}

// Get возвращает товар или ErrProductNotFound, если его нет.
func (s *productStoreInMemory) Get(_ context.Context, id string) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.items[id]
	if !ok {
		return domain.Product{}, domain.ProductNotFound(id)
	}
	return product, nil
}

// List возвращает товары по набору ID (отсутствующие молча пропускаются)
// или весь каталог, если набор пуст. Полный список сортируется по ID,
// чтобы выдача была детерминированной.
func (s *productStoreInMemory) List(_ context.Context, ids ...string) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(ids) == 0 {
		result := make([]domain.Product, 0, len(s.items))
		for _, product := range s.items {
			result = append(result, product)
		}
		sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
		return result, nil
	}

	seen := make(map[string]struct{}, len(ids))
	result := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if product, ok := s.items[id]; ok {
			result = append(result, product)
		}
	}
	return result, nil
}

// Create сохраняет товар, перезаписывая существующую запись (upsert).
func (s *productStoreInMemory) Create(_ context.Context, product domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[product.ID] = product
	return nil
}

// DecrementStock уменьшает остаток под мьютексом, поэтому конкурентные вызовы
// не теряют обновлений. Отсутствующая запись трактуется как нулевой остаток —
// так же ведёт себя HINCRBY в Redis-реализации.
func (s *productStoreInMemory) DecrementStock(_ context.Context, id string, amount int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := s.items[id]
	if product.ID == "" {
		product.ID = id
	}
	product.InStock -= amount
	s.items[id] = product
	return product.InStock, nil
}

// Delete удаляет товар или возвращает ErrProductNotFound.
func (s *productStoreInMemory) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return domain.ProductNotFound(id)
	}
	delete(s.items, id)
	return nil
}

var _ domain.ProductStore = (*productStoreInMemory)(nil)
