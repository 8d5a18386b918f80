package domain

import "context"

// ProductStore описывает контракт key-value каталога товаров.
type ProductStore interface {
	// Get возвращает товар по ID или ErrProductNotFound.
	Get(ctx context.Context, id string) (Product, error)
	// List возвращает товары по набору идентификаторов: дубликаты
	// схлопываются, отсутствующие ID молча пропускаются (в отличие от Get).
	// Пустой набор означает весь каталог.
	List(ctx context.Context, ids ...string) ([]Product, error)
	// Create сохраняет товар, перезаписывая существующую запись с тем же ID.
	// Существование и диапазоны полей не проверяются.
	Create(ctx context.Context, product Product) error
	// DecrementStock атомарно уменьшает остаток на amount и возвращает новое
	// значение. Операция атомарна на стороне хранилища и может увести остаток
	// в минус — порог не контролируется на этом уровне.
	DecrementStock(ctx context.Context, id string, amount int) (int, error)
	// Delete удаляет товар или возвращает ErrProductNotFound.
	Delete(ctx context.Context, id string) error
}

// OrderStore описывает контракт хранилища заказов.
type OrderStore interface {
	// Get возвращает заказ со всеми позициями или ErrOrderNotFound.
	Get(ctx context.Context, id int64) (Order, error)
	// List возвращает до limit заказов со смещением (page-1)*limit и общее
	// количество заказов. page/limit < 1 — ErrInvalidQueryParam; страница за
	// пределами данных — пустой срез без ошибки.
	List(ctx context.Context, page, limit int) ([]Order, int, error)
	// Create атомарно сохраняет новый заказ, назначая ID заказу и позициям.
	Create(ctx context.Context, details []NewOrderDetail) (Order, error)
	// Update перезаписывает цену и количество позиций по их ID. Позиции, не
	// упомянутые во входе, не меняются; входные позиции с неизвестным ID
	// игнорируются. ErrOrderNotFound, если заказа нет.
	Update(ctx context.Context, order Order) (Order, error)
	// Delete удаляет заказ вместе с позициями или возвращает ErrOrderNotFound.
	Delete(ctx context.Context, id int64) error
}

// EventPublisher публикует доменные события наружу в режиме fire-and-forget:
// вызывающая сторона не обязана трактовать ошибку публикации как отказ операции.
type EventPublisher interface {
	Publish(ctx context.Context, eventType, key string, payload any) error
}
