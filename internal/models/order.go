package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is an internal multi-item order recorded by an employee. Unlike a
// Sale it has no soft-delete: deletion is permanent.
type Order struct {
	ID              uuid.UUID `db:"id" json:"id"`
	EmployeeID      uuid.UUID `db:"employee_id" json:"employee_id"`
	OrderNumber     string    `db:"order_number" json:"order_number"`
	TotalAmount     float64   `db:"total_amount" json:"total_amount"`
	BonusPercentage int       `db:"bonus_percentage" json:"bonus_percentage"`
	BonusAmount     float64   `db:"bonus_amount" json:"bonus_amount"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`

	// Not stored directly in the database
	Items    []OrderItem `db:"-" json:"items"`
	Employee *User       `db:"-" json:"employee,omitempty"`
}

// OrderItem is one line of an internal order.
type OrderItem struct {
	ID          uuid.UUID `db:"id" json:"id"`
	OrderID     uuid.UUID `db:"order_id" json:"order_id"`
	ProductName string    `db:"product_name" json:"product_name"`
	UnitPrice   float64   `db:"unit_price" json:"unit_price"`
	Quantity    int       `db:"quantity" json:"quantity"`
	TotalPrice  float64   `db:"total_price" json:"total_price"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// OrderRequest is used for order creation
type OrderRequest struct {
	Items []OrderItemRequest `json:"items"`
}

// OrderItemRequest is used for order line creation
type OrderItemRequest struct {
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
}

// EmployeeOrderStats is the per-employee aggregate for internal orders.
type EmployeeOrderStats struct {
	Employee     User    `json:"employee"`
	TotalRevenue float64 `json:"total_revenue"`
	TotalBonus   float64 `json:"total_bonus"`
	OrdersCount  int     `json:"orders_count"`
}
