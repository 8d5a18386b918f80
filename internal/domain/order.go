package domain

import "time"

// OrderDetail представляет одну позицию заказа. product_id ссылается на товар
// каталога, но хранилище заказов эту ссылку не проверяет — валидность
// обеспечивает оркестратор при создании заказа.
type OrderDetail struct {
	ID        int64   `json:"id"`
	ProductID string  `json:"product_id"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// NewOrderDetail — входные данные позиции при создании заказа.
// Идентификаторы позиций назначает хранилище.
type NewOrderDetail struct {
	ProductID string
	Price     float64
	Quantity  int
}

// Order агрегирует заказ и его позиции в порядке добавления.
type Order struct {
	ID        int64
	Details   []OrderDetail
	CreatedAt time.Time
}
