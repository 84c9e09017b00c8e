package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/texan-rex/diner-service/internal/api"
	"github.com/texan-rex/diner-service/internal/models"
	"github.com/texan-rex/diner-service/internal/policy"
)

// orderStore is the internal order data access the service needs.
type orderStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Create(ctx context.Context, order models.Order) (*models.Order, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) (int64, error)
}

// sequenceStore hands out per-day order sequence numbers.
type sequenceStore interface {
	Next(ctx context.Context, scope, day string) (int, error)
}

// OrderService handles the internal multi-item order lifecycle.
type OrderService struct {
	orders   orderStore
	users    userStore
	counters sequenceStore
}

// NewOrderService creates a new order service
func NewOrderService(orders orderStore, users userStore, counters sequenceStore) *OrderService {
	return &OrderService{orders: orders, users: users, counters: counters}
}

const orderCounterScope = "orders"

// Create records an internal order. Line totals, the order total and the
// bonus are all derived server-side; the order number is drawn from an
// atomic per-day sequence.
func (s *OrderService) Create(ctx context.Context, employeeID uuid.UUID, req models.OrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, api.Validation("at least one item is required")
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	var totalAmount float64
	for _, item := range req.Items {
		if item.ProductName == "" {
			return nil, api.Validation("each item needs a product name")
		}
		if item.UnitPrice < 0 {
			return nil, api.Validation("unit price must not be negative")
		}
		if item.Quantity < 1 {
			return nil, api.Validation("quantity must be at least 1")
		}
		totalPrice := item.UnitPrice * float64(item.Quantity)
		totalAmount += totalPrice
		items = append(items, models.OrderItem{
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			TotalPrice:  totalPrice,
		})
	}

	employee, err := s.users.GetByID(ctx, employeeID)
	if err != nil {
		return nil, api.Internal("employee record not found", err)
	}
	pct := policy.BonusPercentage(employee.Role)

	day := time.Now().Format("20060102")
	seq, err := s.counters.Next(ctx, orderCounterScope, day)
	if err != nil {
		return nil, api.Internal("failed to generate order number", err)
	}

	order := models.Order{
		EmployeeID:      employeeID,
		OrderNumber:     fmt.Sprintf("ORD_%s_%03d", day, seq),
		TotalAmount:     totalAmount,
		BonusPercentage: pct,
		BonusAmount:     policy.ComputeBonus(totalAmount, pct),
		Items:           items,
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, api.Internal("failed to create order", err)
	}

	return created, nil
}

// ListMine returns the employee's orders, newest first, with their
// accumulated bonus.
func (s *OrderService) ListMine(ctx context.Context, employeeID uuid.UUID) ([]models.Order, float64, error) {
	orders, err := s.orders.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, 0, api.Internal("failed to list orders", err)
	}

	var totalBonus float64
	for _, order := range orders {
		totalBonus += order.BonusAmount
	}

	return orders, totalBonus, nil
}

// ListAll returns every order populated with its owner, plus per-employee
// revenue aggregates.
func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, []models.EmployeeOrderStats, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, nil, api.Internal("failed to list orders", err)
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, nil, api.Internal("failed to list users", err)
	}

	usersByID := make(map[uuid.UUID]models.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	statsByEmployee := make(map[uuid.UUID]*models.EmployeeOrderStats)
	for i := range orders {
		order := &orders[i]
		if owner, ok := usersByID[order.EmployeeID]; ok {
			order.Employee = &owner
		}

		stats, ok := statsByEmployee[order.EmployeeID]
		if !ok {
			stats = &models.EmployeeOrderStats{}
			if owner, found := usersByID[order.EmployeeID]; found {
				stats.Employee = owner
			}
			statsByEmployee[order.EmployeeID] = stats
		}
		stats.TotalRevenue += order.TotalAmount
		stats.TotalBonus += order.BonusAmount
		stats.OrdersCount++
	}

	employeeStats := make([]models.EmployeeOrderStats, 0, len(statsByEmployee))
	for _, stats := range statsByEmployee {
		employeeStats = append(employeeStats, *stats)
	}
	sort.Slice(employeeStats, func(i, j int) bool {
		return employeeStats[i].Employee.Username < employeeStats[j].Employee.Username
	})

	return orders, employeeStats, nil
}

// Delete permanently removes an order. Owner or admin only.
func (s *OrderService) Delete(ctx context.Context, orderID uuid.UUID, actor policy.Actor) error {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	if !policy.CanModify(actor, order.EmployeeID) {
		return api.Forbidden("cannot delete this order")
	}

	return s.orders.Delete(ctx, orderID)
}

// WeeklyReset hard-deletes every order and returns the count removed.
func (s *OrderService) WeeklyReset(ctx context.Context) (int64, error) {
	deleted, err := s.orders.DeleteAll(ctx)
	if err != nil {
		return 0, api.Internal("failed to reset orders", err)
	}
	return deleted, nil
}
