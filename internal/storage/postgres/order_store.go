package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/marrcelo/shipstore/internal/domain"
)

const (
	opTimeout = 5 * time.Second
)

type orderStore struct {
	db *sql.DB
}

// NewOrderStore создаёт PostgreSQL-реализацию OrderStore.
func NewOrderStore(store *Store) domain.OrderStore {
	return &orderStore{db: store.DB()}
}

// Get возвращает заказ с позициями или ErrOrderNotFound.
func (r *orderStore) Get(ctx context.Context, id int64) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var order domain.Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, created_at
		FROM orders
		WHERE id = $1
	`, id).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.OrderNotFound(id)
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}

	details, err := r.loadDetails(ctx, order.ID)
	if err != nil {
		return domain.Order{}, err
	}
	order.Details = details

	return order, nil
}

// List возвращает страницу заказов со смещением (page-1)*limit и общее
// количество заказов. Страница за пределами данных — пустой срез.
func (r *orderStore) List(ctx context.Context, page, limit int) ([]domain.Order, int, error) {
	if page < 1 {
		return nil, 0, domain.InvalidQueryParam("page")
	}
	if limit < 1 {
		return nil, 0, domain.InvalidQueryParam("limit")
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	offset := (page - 1) * limit
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, created_at
		FROM orders
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0, limit)
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate order rows: %w", err)
	}

	for i := range orders {
		details, err := r.loadDetails(ctx, orders[i].ID)
		if err != nil {
			return nil, 0, err
		}
		orders[i].Details = details
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	return orders, total, nil
}

// Create сохраняет заказ и позиции в одной транзакции (всё или ничего),
// идентификаторы назначает база.
func (r *orderStore) Create(ctx context.Context, details []domain.NewOrderDetail) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Order{}, fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var order domain.Order
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders DEFAULT VALUES
		RETURNING id, created_at
	`).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}

	order.Details = make([]domain.OrderDetail, 0, len(details))
	for _, detail := range details {
		row := domain.OrderDetail{
			ProductID: detail.ProductID,
			Price:     detail.Price,
			Quantity:  detail.Quantity,
		}
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_details (order_id, product_id, price, quantity)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, order.ID, detail.ProductID, detail.Price, detail.Quantity).Scan(&row.ID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("insert order detail: %w", err)
		}
		order.Details = append(order.Details, row)
	}

	if err = tx.Commit(); err != nil {
		return domain.Order{}, fmt.Errorf("commit create order: %w", err)
	}

	return order, nil
}

// Update перезаписывает цену и количество позиций по их ID. UPDATE ограничен
// парой (id, order_id), поэтому входная позиция с чужим или неизвестным ID
// затрагивает 0 строк и молча игнорируется.
func (r *orderStore) Update(ctx context.Context, order domain.Order) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Order{}, fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var exists bool
	if err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)
	`, order.ID).Scan(&exists); err != nil {
		return domain.Order{}, fmt.Errorf("check order exists: %w", err)
	}
	if !exists {
		err = domain.OrderNotFound(order.ID)
		return domain.Order{}, err
	}

	for _, detail := range order.Details {
		if _, err = tx.ExecContext(ctx, `
			UPDATE order_details
			SET price = $1, quantity = $2
			WHERE id = $3 AND order_id = $4
		`, detail.Price, detail.Quantity, detail.ID, order.ID); err != nil {
			return domain.Order{}, fmt.Errorf("update order detail: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return domain.Order{}, fmt.Errorf("commit update order: %w", err)
	}

	return r.Get(ctx, order.ID)
}

// Delete удаляет заказ; позиции каскадируются на уровне схемы.
func (r *orderStore) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.OrderNotFound(id)
	}
	return nil
}

func (r *orderStore) loadDetails(ctx context.Context, orderID int64) ([]domain.OrderDetail, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, price, quantity
		FROM order_details
		WHERE order_id = $1
		ORDER BY id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order details: %w", err)
	}
	defer rows.Close()

	details := make([]domain.OrderDetail, 0)
	for rows.Next() {
		var detail domain.OrderDetail
		if err := rows.Scan(&detail.ID, &detail.ProductID, &detail.Price, &detail.Quantity); err != nil {
			return nil, fmt.Errorf("scan order detail: %w", err)
		}
		details = append(details, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order details: %w", err)
	}

	return details, nil
}

var _ domain.OrderStore = (*orderStore)(nil)
