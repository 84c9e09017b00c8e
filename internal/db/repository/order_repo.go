package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/texan-rex/diner-service/internal/api"
	"github.com/texan-rex/diner-service/internal/models"
)

// OrderRepository handles internal order data access
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, employee_id, order_number, total_amount, bonus_percentage, bonus_amount, created_at, updated_at`

// GetByID retrieves an order with its items
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	var order models.Order
	err := r.db.GetContext(ctx, &order, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, api.NotFound("order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.getItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

func (r *OrderRepository) getItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	query := `
		SELECT id, order_id, product_name, unit_price, quantity, total_price, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at ASC
	`

	var items []models.OrderItem
	err := r.db.SelectContext(ctx, &items, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}

	return items, nil
}

// Create inserts the order and its items in one transaction.
func (r *OrderRepository) Create(ctx context.Context, order models.Order) (*models.Order, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	orderQuery := `
		INSERT INTO orders (employee_id, order_number, total_amount, bonus_percentage, bonus_amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + orderColumns

	var created models.Order
	err = tx.GetContext(
		ctx,
		&created,
		orderQuery,
		order.EmployeeID,
		order.OrderNumber,
		order.TotalAmount,
		order.BonusPercentage,
		order.BonusAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	created.Items = make([]models.OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		var createdItem models.OrderItem
		err = tx.GetContext(
			ctx,
			&createdItem,
			`INSERT INTO order_items (order_id, product_name, unit_price, quantity, total_price)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id, order_id, product_name, unit_price, quantity, total_price, created_at`,
			created.ID,
			item.ProductName,
			item.UnitPrice,
			item.Quantity,
			item.TotalPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}
		created.Items = append(created.Items, createdItem)
	}

	err = tx.Commit()
	if err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &created, nil
}

// ListByEmployee retrieves one employee's orders with items, newest first.
func (r *OrderRepository) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE employee_id = $1
		ORDER BY created_at DESC
	`

	var orders []models.Order
	err := r.db.SelectContext(ctx, &orders, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	for i := range orders {
		items, err := r.getItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

// ListAll retrieves every order with items, newest first.
func (r *OrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`

	var orders []models.Order
	err := r.db.SelectContext(ctx, &orders, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list all orders: %w", err)
	}

	for i := range orders {
		items, err := r.getItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

// Delete hard-deletes an order. Items go with it via ON DELETE CASCADE.
func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return api.NotFound("order not found")
	}

	return nil
}

// DeleteAll hard-deletes every order and returns the count removed.
func (r *OrderRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM orders`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete orders: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}
