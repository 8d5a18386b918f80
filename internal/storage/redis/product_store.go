package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/marrcelo/shipstore/internal/domain"
)

// keyPrefix — схема ключей каталога: один hash на товар.
const keyPrefix = "products:"

// productStore реализует ProductStore поверх Redis. Каждый товар хранится
// плоским hash-документом; числовые поля приводятся из строк при чтении.
type productStore struct {
	client *redis.Client
}

// NewClient создаёт Redis-клиент по адресу host:port.
func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

// NewProductStore создаёт Redis-реализацию каталога товаров.
func NewProductStore(client *redis.Client) domain.ProductStore {
	return &productStore{client: client}
}

func formatKey(id string) string {
	return keyPrefix + id
}

// fromHash декодирует hash-документ товара. Пустой документ означает, что
// ключа нет — Redis не различает отсутствующий и пустой hash.
func fromHash(fields map[string]string, id string) (domain.Product, error) {
	if len(fields) == 0 {
		return domain.Product{}, domain.ProductNotFound(id)
	}

	capacity, err := strconv.Atoi(fields["passenger_capacity"])
	if err != nil {
		return domain.Product{}, fmt.Errorf("decode passenger_capacity for %s: %w", id, err)
	}
	speed, err := strconv.Atoi(fields["maximum_speed"])
	if err != nil {
		return domain.Product{}, fmt.Errorf("decode maximum_speed for %s: %w", id, err)
	}
	inStock, err := strconv.Atoi(fields["in_stock"])
	if err != nil {
		return domain.Product{}, fmt.Errorf("decode in_stock for %s: %w", id, err)
	}

	return domain.Product{
		ID:                fields["id"],
		Title:             fields["title"],
		PassengerCapacity: capacity,
		MaximumSpeed:      speed,
		InStock:           inStock,
	}, nil
}

// Get возвращает товар или ErrProductNotFound.
func (s *productStore) Get(ctx context.Context, id string) (domain.Product, error) {
	fields, err := s.client.HGetAll(ctx, formatKey(id)).Result()
	if err != nil {
		return domain.Product{}, fmt.Errorf("hgetall %s: %w", id, err)
	}
	return fromHash(fields, id)
}

// List возвращает товары по набору ID одним pipeline-запросом; отсутствующие
// ID молча пропускаются. Пустой набор означает полное сканирование каталога.
func (s *productStore) List(ctx context.Context, ids ...string) ([]domain.Product, error) {
	var keys []string
	if len(ids) > 0 {
		seen := make(map[string]struct{}, len(ids))
		keys = make([]string, 0, len(ids))
		for _, id := range ids {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			keys = append(keys, formatKey(id))
		}
	} else {
		iter := s.client.Scan(ctx, 0, formatKey("*"), 0).Iterator()
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return nil, fmt.Errorf("scan product keys: %w", err)
		}
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(keys))
	for i, key := range keys {
		cmds[i] = pipe.HGetAll(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("bulk hgetall: %w", err)
	}

	products := make([]domain.Product, 0, len(keys))
	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			// В bulk-режиме отсутствующий ID не ошибка; при полном
			// сканировании ключ мог исчезнуть между SCAN и HGETALL.
			continue
		}
		product, err := fromHash(fields, strings.TrimPrefix(keys[i], keyPrefix))
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

// Create перезаписывает hash товара целиком (upsert без проверок).
func (s *productStore) Create(ctx context.Context, product domain.Product) error {
	fields := map[string]any{
		"id":                 product.ID,
		"title":              product.Title,
		"passenger_capacity": product.PassengerCapacity,
		"maximum_speed":      product.MaximumSpeed,
		"in_stock":           product.InStock,
	}
	if err := s.client.HSet(ctx, formatKey(product.ID), fields).Err(); err != nil {
		return fmt.Errorf("hset %s: %w", product.ID, err)
	}
	return nil
}

// DecrementStock опирается на атомарность HINCRBY: конкурентные декременты
// одного товара не теряют обновлений. Остаток может уйти в минус.
func (s *productStore) DecrementStock(ctx context.Context, id string, amount int) (int, error) {
	value, err := s.client.HIncrBy(ctx, formatKey(id), "in_stock", int64(-amount)).Result()
	if err != nil {
		return 0, fmt.Errorf("hincrby %s: %w", id, err)
	}
	return int(value), nil
}

// Delete удаляет товар, предварительно проверяя существование ключа.
func (s *productStore) Delete(ctx context.Context, id string) error {
	key := formatKey(id)
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("exists %s: %w", id, err)
	}
	if exists == 0 {
		return domain.ProductNotFound(id)
	}
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("del %s: %w", id, err)
	}
	return nil
}

var _ domain.ProductStore = (*productStore)(nil)
