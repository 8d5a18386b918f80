package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrOrderNotFound возвращается, если заказ не найден в хранилище.
	ErrOrderNotFound = errors.New("order not found")
	// ErrProductNotFound возвращается, если товар отсутствует в каталоге.
	// Поднимается и при валидации нового заказа, и при обогащении, когда
	// позиция ссылается на уже удалённый товар.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidQueryParam сигнализирует о некорректных параметрах пагинации.
	ErrInvalidQueryParam = errors.New("invalid query param")
)

// ProductNotFound оборачивает ErrProductNotFound, называя конкретный ID товара.
// errors.Is по-прежнему распознаёт результат как ErrProductNotFound.
func ProductNotFound(productID string) error {
	return fmt.Errorf("%w: %s", ErrProductNotFound, productID)
}

// OrderNotFound оборачивает ErrOrderNotFound с идентификатором заказа.
func OrderNotFound(orderID int64) error {
	return fmt.Errorf("%w: %d", ErrOrderNotFound, orderID)
}

// InvalidQueryParam оборачивает ErrInvalidQueryParam, называя параметр запроса.
func InvalidQueryParam(name string) error {
	return fmt.Errorf("%w: %q should be greater or equal 1", ErrInvalidQueryParam, name)
}

// IsNotFound проверяет, относится ли ошибка к классу "не найдено".
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound) || errors.Is(err, ErrProductNotFound)
}
