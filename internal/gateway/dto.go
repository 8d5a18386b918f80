package gateway

// CreateProductRequest — тело запроса POST /products.
type CreateProductRequest struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	PassengerCapacity int    `json:"passenger_capacity"`
	MaximumSpeed      int    `json:"maximum_speed"`
	InStock           int    `json:"in_stock"`
}

// CreateProductResponse возвращает ID созданного товара.
type CreateProductResponse struct {
	ID string `json:"id"`
}

// CreateOrderRequest — тело запроса POST /orders.
type CreateOrderRequest struct {
	OrderDetails []CreateOrderDetailDTO `json:"order_details"`
}

// CreateOrderDetailDTO описывает одну позицию нового заказа.
type CreateOrderDetailDTO struct {
	ProductID string  `json:"product_id"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// CreateOrderResponse возвращает ID созданного заказа.
type CreateOrderResponse struct {
	ID int64 `json:"id"`
}

// ErrorResponse — единый формат ошибок HTTP-шлюза.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
