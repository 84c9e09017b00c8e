package models

import (
	"time"

	"github.com/google/uuid"
)

// ClientOrderStatus tracks a public order from submission to handoff.
type ClientOrderStatus string

const (
	ClientOrderPending   ClientOrderStatus = "pending"
	ClientOrderConfirmed ClientOrderStatus = "confirmed"
	ClientOrderPreparing ClientOrderStatus = "preparing"
	ClientOrderReady     ClientOrderStatus = "ready"
	ClientOrderDelivered ClientOrderStatus = "delivered"
)

// ValidClientOrderStatus reports whether s is a known status value.
func ValidClientOrderStatus(s ClientOrderStatus) bool {
	switch s {
	case ClientOrderPending, ClientOrderConfirmed, ClientOrderPreparing,
		ClientOrderReady, ClientOrderDelivered:
		return true
	}
	return false
}

// OrderType is how the customer wants the order served.
type OrderType string

const (
	OrderTypeTakeaway OrderType = "takeaway"
	OrderTypeDineIn   OrderType = "dine-in"
	OrderTypeDelivery OrderType = "delivery"
)

// ValidOrderType reports whether t is a known order type.
func ValidOrderType(t OrderType) bool {
	switch t {
	case OrderTypeTakeaway, OrderTypeDineIn, OrderTypeDelivery:
		return true
	}
	return false
}

// ClientOrder is a public customer order submitted without authentication.
// Immutable once created except for its status.
type ClientOrder struct {
	ID            uuid.UUID         `db:"id" json:"id"`
	OrderNumber   string            `db:"order_number" json:"order_number"`
	CustomerName  string            `db:"customer_name" json:"customer_name"`
	CustomerPhone string            `db:"customer_phone" json:"customer_phone"`
	CustomerEmail string            `db:"customer_email" json:"customer_email"`
	TotalAmount   float64           `db:"total_amount" json:"total_amount"`
	Status        ClientOrderStatus `db:"status" json:"status"`
	OrderType     OrderType         `db:"order_type" json:"order_type"`
	Notes         string            `db:"notes" json:"notes"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time         `db:"updated_at" json:"updated_at"`

	// Not stored directly in the database
	Items []ClientOrderItem `db:"-" json:"items"`
}

// ClientOrderItem is one line of a public order, with optional paid add-ons.
type ClientOrderItem struct {
	ID            uuid.UUID `db:"id" json:"id"`
	ClientOrderID uuid.UUID `db:"client_order_id" json:"client_order_id"`
	ProductName   string    `db:"product_name" json:"product_name"`
	BasePrice     float64   `db:"base_price" json:"base_price"`
	Quantity      int       `db:"quantity" json:"quantity"`
	ItemTotal     float64   `db:"item_total" json:"item_total"`
	Notes         string    `db:"notes" json:"notes"`

	// Not stored directly in the database
	Ingredients []ClientOrderIngredient `db:"-" json:"ingredients"`
}

// ClientOrderIngredient is a paid add-on attached to an order item.
type ClientOrderIngredient struct {
	ID                uuid.UUID `db:"id" json:"id"`
	ClientOrderItemID uuid.UUID `db:"client_order_item_id" json:"client_order_item_id"`
	Name              string    `db:"name" json:"name"`
	Price             float64   `db:"price" json:"price"`
}

// CustomerInfo identifies the customer placing a public order.
type CustomerInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// ClientOrderRequest is the public submission payload.
type ClientOrderRequest struct {
	CustomerInfo CustomerInfo             `json:"customer_info"`
	Items        []ClientOrderItemRequest `json:"items"`
	OrderType    OrderType                `json:"order_type"`
	Notes        string                   `json:"notes"`
}

// ClientOrderItemRequest is one submitted line.
type ClientOrderItemRequest struct {
	ProductName string              `json:"product_name"`
	BasePrice   float64             `json:"base_price"`
	Quantity    int                 `json:"quantity"`
	Ingredients []IngredientRequest `json:"ingredients"`
	Notes       string              `json:"notes"`
}

// IngredientRequest is a submitted add-on.
type IngredientRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}
