package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/texan-rex/diner-service/internal/api"
	"github.com/texan-rex/diner-service/internal/models"
)

// ClientOrderRepository handles public customer order data access
type ClientOrderRepository struct {
	db *sqlx.DB
}

// NewClientOrderRepository creates a new client order repository
func NewClientOrderRepository(db *sqlx.DB) *ClientOrderRepository {
	return &ClientOrderRepository{db: db}
}

const clientOrderColumns = `id, order_number, customer_name, customer_phone, customer_email,
	total_amount, status, order_type, notes, created_at, updated_at`

// Create inserts the order, its items and their add-ons in one transaction.
func (r *ClientOrderRepository) Create(ctx context.Context, order models.ClientOrder) (*models.ClientOrder, error) {
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
		INSERT INTO client_orders (order_number, customer_name, customer_phone, customer_email,
			total_amount, status, order_type, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + clientOrderColumns

	var created models.ClientOrder
	err = tx.GetContext(
		ctx,
		&created,
		orderQuery,
		order.OrderNumber,
		order.CustomerName,
		order.CustomerPhone,
		order.CustomerEmail,
		order.TotalAmount,
		order.Status,
		order.OrderType,
		order.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create client order: %w", err)
	}

	created.Items = make([]models.ClientOrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		var createdItem models.ClientOrderItem
		err = tx.GetContext(
			ctx,
			&createdItem,
			`INSERT INTO client_order_items (client_order_id, product_name, base_price, quantity, item_total, notes)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id, client_order_id, product_name, base_price, quantity, item_total, notes`,
			created.ID,
			item.ProductName,
			item.BasePrice,
			item.Quantity,
			item.ItemTotal,
			item.Notes,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create client order item: %w", err)
		}

		createdItem.Ingredients = make([]models.ClientOrderIngredient, 0, len(item.Ingredients))
		for _, ing := range item.Ingredients {
			var createdIng models.ClientOrderIngredient
			err = tx.GetContext(
				ctx,
				&createdIng,
				`INSERT INTO client_order_item_ingredients (client_order_item_id, name, price)
				 VALUES ($1, $2, $3)
				 RETURNING id, client_order_item_id, name, price`,
				createdItem.ID,
				ing.Name,
				ing.Price,
			)
			if err != nil {
				return nil, fmt.Errorf("failed to create item ingredient: %w", err)
			}
			createdItem.Ingredients = append(createdItem.Ingredients, createdIng)
		}

		created.Items = append(created.Items, createdItem)
	}

	err = tx.Commit()
	if err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &created, nil
}

// GetByOrderNumber retrieves a client order with items and add-ons.
func (r *ClientOrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*models.ClientOrder, error) {
	query := `SELECT ` + clientOrderColumns + ` FROM client_orders WHERE order_number = $1`

	var order models.ClientOrder
	err := r.db.GetContext(ctx, &order, query, orderNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, api.NotFound("order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client order: %w", err)
	}

	items, err := r.getItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

func (r *ClientOrderRepository) getItems(ctx context.Context, orderID uuid.UUID) ([]models.ClientOrderItem, error) {
	var items []models.ClientOrderItem
	err := r.db.SelectContext(ctx, &items,
		`SELECT id, client_order_id, product_name, base_price, quantity, item_total, notes
		 FROM client_order_items WHERE client_order_id = $1 ORDER BY id ASC`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client order items: %w", err)
	}

	for i := range items {
		var ingredients []models.ClientOrderIngredient
		err = r.db.SelectContext(ctx, &ingredients,
			`SELECT id, client_order_item_id, name, price
			 FROM client_order_item_ingredients WHERE client_order_item_id = $1 ORDER BY id ASC`,
			items[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get item ingredients: %w", err)
		}
		items[i].Ingredients = ingredients
	}

	return items, nil
}

// UpdateStatus moves a client order to a new status.
func (r *ClientOrderRepository) UpdateStatus(ctx context.Context, orderNumber string, status models.ClientOrderStatus) (*models.ClientOrder, error) {
	query := `
		UPDATE client_orders
		SET status = $1, updated_at = $2
		WHERE order_number = $3
		RETURNING ` + clientOrderColumns

	var order models.ClientOrder
	err := r.db.GetContext(ctx, &order, query, status, time.Now(), orderNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, api.NotFound("order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update client order status: %w", err)
	}

	items, err := r.getItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}
