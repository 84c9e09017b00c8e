package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/texan-rex/diner-service/internal/api"
	"github.com/texan-rex/diner-service/internal/models"
)

// clientOrderStore is the public order data access the service needs.
type clientOrderStore interface {
	Create(ctx context.Context, order models.ClientOrder) (*models.ClientOrder, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*models.ClientOrder, error)
	UpdateStatus(ctx context.Context, orderNumber string, status models.ClientOrderStatus) (*models.ClientOrder, error)
}

// orderNotifier delivers the staff notification for a new public order.
// Delivery is best-effort: a failure is logged and never surfaced.
type orderNotifier interface {
	OrderCreated(ctx context.Context, order *models.ClientOrder) error
}

// orderBroadcaster pushes order events to connected staff clients.
type orderBroadcaster interface {
	BroadcastEvent(event string, payload interface{})
}

// ClientOrderService handles the unauthenticated customer ordering flow.
type ClientOrderService struct {
	orders      clientOrderStore
	counters    sequenceStore
	notifier    orderNotifier
	broadcaster orderBroadcaster
	menu        models.Menu
	info        models.RestaurantInfo
}

// NewClientOrderService creates a new client order service. notifier and
// broadcaster may be nil, which disables the corresponding channel.
func NewClientOrderService(orders clientOrderStore, counters sequenceStore, notifier orderNotifier, broadcaster orderBroadcaster) *ClientOrderService {
	return &ClientOrderService{
		orders:      orders,
		counters:    counters,
		notifier:    notifier,
		broadcaster: broadcaster,
		menu:        models.DefaultMenu(),
		info:        models.DefaultRestaurantInfo(),
	}
}

const clientOrderCounterScope = "client_orders"

// initialEstimate is returned to the customer right after submission.
const initialEstimate = "15-25 minutes"

// Menu returns the public catalog and restaurant info block.
func (s *ClientOrderService) Menu() (models.Menu, models.RestaurantInfo) {
	return s.menu, s.info
}

// SubmitResult is the customer-facing confirmation of a new order.
type SubmitResult struct {
	OrderNumber   string  `json:"order_number"`
	TotalAmount   float64 `json:"total_amount"`
	EstimatedTime string  `json:"estimated_time"`
}

// Submit validates and persists a public order, then attempts the staff
// notification. Item totals are derived from the submitted base price and
// quantity; add-on prices are recorded but not cross-checked against the
// catalog.
func (s *ClientOrderService) Submit(ctx context.Context, req models.ClientOrderRequest) (*SubmitResult, error) {
	if req.CustomerInfo.Name == "" || req.CustomerInfo.Phone == "" {
		return nil, api.Validation("customer name and phone are required")
	}
	if len(req.Items) == 0 {
		return nil, api.Validation("at least one item is required")
	}

	orderType := req.OrderType
	if orderType == "" {
		orderType = models.OrderTypeTakeaway
	}
	if !models.ValidOrderType(orderType) {
		return nil, api.Validation("unknown order type")
	}

	items := make([]models.ClientOrderItem, 0, len(req.Items))
	var totalAmount float64
	for _, item := range req.Items {
		if item.ProductName == "" {
			return nil, api.Validation("each item needs a product name")
		}
		if item.BasePrice < 0 {
			return nil, api.Validation("base price must not be negative")
		}
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}
		if quantity < 1 {
			return nil, api.Validation("quantity must be at least 1")
		}

		ingredients := make([]models.ClientOrderIngredient, 0, len(item.Ingredients))
		for _, ing := range item.Ingredients {
			ingredients = append(ingredients, models.ClientOrderIngredient{
				Name:  ing.Name,
				Price: ing.Price,
			})
		}

		itemTotal := item.BasePrice * float64(quantity)
		totalAmount += itemTotal
		items = append(items, models.ClientOrderItem{
			ProductName: item.ProductName,
			BasePrice:   item.BasePrice,
			Quantity:    quantity,
			ItemTotal:   itemTotal,
			Notes:       item.Notes,
			Ingredients: ingredients,
		})
	}

	day := time.Now().Format("20060102")
	seq, err := s.counters.Next(ctx, clientOrderCounterScope, day)
	if err != nil {
		return nil, api.Internal("failed to generate order number", err)
	}

	order := models.ClientOrder{
		OrderNumber:   fmt.Sprintf("TEX%s%03d", day, seq),
		CustomerName:  req.CustomerInfo.Name,
		CustomerPhone: req.CustomerInfo.Phone,
		CustomerEmail: req.CustomerInfo.Email,
		TotalAmount:   totalAmount,
		Status:        models.ClientOrderPending,
		OrderType:     orderType,
		Notes:         req.Notes,
		Items:         items,
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, api.Internal("failed to create order", err)
	}

	// One notification attempt; the order is already committed, so a
	// failing webhook must not fail the request.
	if s.notifier != nil {
		if err := s.notifier.OrderCreated(ctx, created); err != nil {
			log.Printf("order notification failed for %s: %v", created.OrderNumber, err)
		}
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastEvent("client_order.created", created)
	}

	return &SubmitResult{
		OrderNumber:   created.OrderNumber,
		TotalAmount:   created.TotalAmount,
		EstimatedTime: initialEstimate,
	}, nil
}

// StatusResult is the customer-facing view of an order's progress.
type StatusResult struct {
	OrderNumber   string                   `json:"order_number"`
	Status        models.ClientOrderStatus `json:"status"`
	TotalAmount   float64                  `json:"total_amount"`
	CreatedAt     time.Time                `json:"created_at"`
	EstimatedTime string                   `json:"estimated_time"`
}

// GetStatus looks up an order by number and maps its status to a
// human-readable estimate.
func (s *ClientOrderService) GetStatus(ctx context.Context, orderNumber string) (*StatusResult, error) {
	order, err := s.orders.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	return &StatusResult{
		OrderNumber:   order.OrderNumber,
		Status:        order.Status,
		TotalAmount:   order.TotalAmount,
		CreatedAt:     order.CreatedAt,
		EstimatedTime: EstimatedTime(order.Status),
	}, nil
}

// UpdateStatus moves an order along the pending→delivered progression and
// notifies connected staff clients.
func (s *ClientOrderService) UpdateStatus(ctx context.Context, orderNumber string, status models.ClientOrderStatus) (*models.ClientOrder, error) {
	if !models.ValidClientOrderStatus(status) {
		return nil, api.Validation("unknown order status")
	}

	order, err := s.orders.UpdateStatus(ctx, orderNumber, status)
	if err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastEvent("client_order.status", order)
	}

	return order, nil
}

// EstimatedTime maps an order status to the estimate shown to customers.
func EstimatedTime(status models.ClientOrderStatus) string {
	switch status {
	case models.ClientOrderPending:
		return "En attente de confirmation..."
	case models.ClientOrderConfirmed:
		return "15-25 minutes"
	case models.ClientOrderPreparing:
		return "10-15 minutes"
	case models.ClientOrderReady:
		return "Prête !"
	case models.ClientOrderDelivered:
		return "Livrée"
	default:
		return "Mise à jour en cours..."
	}
}
