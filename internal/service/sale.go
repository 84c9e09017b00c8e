package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/texan-rex/diner-service/internal/api"
	"github.com/texan-rex/diner-service/internal/models"
	"github.com/texan-rex/diner-service/internal/policy"
)

// saleStore is the sale data access the service needs.
type saleStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Sale, error)
	Create(ctx context.Context, sale models.Sale) (*models.Sale, error)
	Update(ctx context.Context, sale models.Sale) (*models.Sale, error)
	SoftDelete(ctx context.Context, id, deletedBy uuid.UUID, deletedAt time.Time) error
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]models.Sale, error)
	ListAll(ctx context.Context) ([]models.Sale, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// SaleService handles the sale record lifecycle: creation with derived
// amounts, owner-or-admin edits, soft deletion and aggregation.
type SaleService struct {
	sales saleStore
	users userStore
}

// NewSaleService creates a new sale service
func NewSaleService(sales saleStore, users userStore) *SaleService {
	return &SaleService{sales: sales, users: users}
}

// Create records a sale for an employee. The bonus rate is read fresh
// from the employee's current role, never cached.
func (s *SaleService) Create(ctx context.Context, employeeID uuid.UUID, req models.SaleRequest) (*models.Sale, error) {
	if req.ProductName == "" {
		return nil, api.Validation("product name is required")
	}
	if req.UnitPrice < 0 {
		return nil, api.Validation("unit price must not be negative")
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, api.Validation("quantity must be at least 1")
	}

	employee, err := s.users.GetByID(ctx, employeeID)
	if err != nil {
		// The authenticated employee's row is gone; that is a server-side
		// inconsistency, not a client mistake.
		return nil, api.Internal("employee record not found", err)
	}

	totalPrice := req.UnitPrice * float64(quantity)
	pct := policy.BonusPercentage(employee.Role)

	sale := models.Sale{
		EmployeeID:      employeeID,
		ProductName:     req.ProductName,
		UnitPrice:       req.UnitPrice,
		Quantity:        quantity,
		TotalPrice:      totalPrice,
		BonusPercentage: pct,
		BonusAmount:     policy.ComputeBonus(totalPrice, pct),
	}

	created, err := s.sales.Create(ctx, sale)
	if err != nil {
		return nil, api.Internal("failed to create sale", err)
	}

	return created, nil
}

// Update edits a sale's product name, unit price or quantity. Whenever
// price or quantity change, the total and bonus are recomputed at the
// employee's current rate.
func (s *SaleService) Update(ctx context.Context, saleID uuid.UUID, actor policy.Actor, req models.SaleUpdateRequest) (*models.Sale, error) {
	sale, err := s.sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if !policy.CanModifySale(actor, sale) {
		return nil, api.Forbidden("cannot modify this sale")
	}

	if req.ProductName != nil {
		if *req.ProductName == "" {
			return nil, api.Validation("product name is required")
		}
		sale.ProductName = *req.ProductName
	}

	amountsChanged := false
	if req.UnitPrice != nil {
		if *req.UnitPrice < 0 {
			return nil, api.Validation("unit price must not be negative")
		}
		sale.UnitPrice = *req.UnitPrice
		amountsChanged = true
	}
	if req.Quantity != nil {
		if *req.Quantity < 1 {
			return nil, api.Validation("quantity must be at least 1")
		}
		sale.Quantity = *req.Quantity
		amountsChanged = true
	}

	if amountsChanged {
		employee, err := s.users.GetByID(ctx, sale.EmployeeID)
		if err != nil {
			return nil, api.Internal("employee record not found", err)
		}
		sale.TotalPrice = sale.UnitPrice * float64(sale.Quantity)
		sale.BonusPercentage = policy.BonusPercentage(employee.Role)
		sale.BonusAmount = policy.ComputeBonus(sale.TotalPrice, sale.BonusPercentage)
	}

	updated, err := s.sales.Update(ctx, *sale)
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// SoftDelete hides a sale from the owner while keeping the row for admin
// audit. A sale can only be soft-deleted once.
func (s *SaleService) SoftDelete(ctx context.Context, saleID uuid.UUID, actor policy.Actor) error {
	sale, err := s.sales.GetByID(ctx, saleID)
	if err != nil {
		return err
	}

	if !policy.CanModifySale(actor, sale) {
		return api.Forbidden("cannot modify this sale")
	}

	if err := s.sales.SoftDelete(ctx, saleID, actor.ID, time.Now()); err != nil {
		return err
	}

	return nil
}

// ListMine returns the employee's visible sales, newest first, with their
// accumulated bonus.
func (s *SaleService) ListMine(ctx context.Context, employeeID uuid.UUID) ([]models.Sale, float64, error) {
	sales, err := s.sales.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, 0, api.Internal("failed to list sales", err)
	}

	var totalBonus float64
	for _, sale := range sales {
		totalBonus += sale.BonusAmount
	}

	return sales, totalBonus, nil
}

// ListAll returns every sale including soft-deleted rows, each populated
// with its owner (and deleter, when applicable), plus per-employee stats.
// Revenue and bonus aggregates count deleted rows; SalesCount does not.
func (s *SaleService) ListAll(ctx context.Context) ([]models.Sale, []models.EmployeeSaleStats, error) {
	sales, err := s.sales.ListAll(ctx)
	if err != nil {
		return nil, nil, api.Internal("failed to list sales", err)
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, nil, api.Internal("failed to list users", err)
	}

	usersByID := make(map[uuid.UUID]models.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	statsByEmployee := make(map[uuid.UUID]*models.EmployeeSaleStats)
	for i := range sales {
		sale := &sales[i]
		if owner, ok := usersByID[sale.EmployeeID]; ok {
			sale.Employee = &owner
		}
		if sale.DeletedBy != nil {
			if deleter, ok := usersByID[*sale.DeletedBy]; ok {
				sale.Deleter = &deleter
			}
		}

		stats, ok := statsByEmployee[sale.EmployeeID]
		if !ok {
			stats = &models.EmployeeSaleStats{}
			if owner, found := usersByID[sale.EmployeeID]; found {
				stats.Employee = owner
			}
			statsByEmployee[sale.EmployeeID] = stats
		}
		stats.TotalSales += sale.TotalPrice
		stats.TotalBonus += sale.BonusAmount
		if sale.IsDeleted {
			stats.DeletedSalesCount++
		} else {
			stats.SalesCount++
		}
	}

	employeeStats := make([]models.EmployeeSaleStats, 0, len(statsByEmployee))
	for _, stats := range statsByEmployee {
		employeeStats = append(employeeStats, *stats)
	}
	sort.Slice(employeeStats, func(i, j int) bool {
		return employeeStats[i].Employee.Username < employeeStats[j].Employee.Username
	})

	return sales, employeeStats, nil
}

// WeeklyReset hard-deletes every sale row, deleted or not, and returns
// the count removed. There is no undo.
func (s *SaleService) WeeklyReset(ctx context.Context) (int64, error) {
	deleted, err := s.sales.DeleteAll(ctx)
	if err != nil {
		return 0, api.Internal("failed to reset sales", err)
	}
	return deleted, nil
}
