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

// SaleRepository handles sale record data access
type SaleRepository struct {
	db *sqlx.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *sqlx.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

const saleColumns = `id, employee_id, product_name, unit_price, quantity, total_price,
	bonus_percentage, bonus_amount, is_deleted, deleted_at, deleted_by, created_at, updated_at`

// GetByID retrieves a sale by ID, including soft-deleted rows.
func (r *SaleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`

	var sale models.Sale
	err := r.db.GetContext(ctx, &sale, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, api.NotFound("sale not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}

	return &sale, nil
}

// Create creates a new sale
func (r *SaleRepository) Create(ctx context.Context, sale models.Sale) (*models.Sale, error) {
	query := `
		INSERT INTO sales (employee_id, product_name, unit_price, quantity, total_price, bonus_percentage, bonus_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + saleColumns

	var created models.Sale
	err := r.db.GetContext(
		ctx,
		&created,
		query,
		sale.EmployeeID,
		sale.ProductName,
		sale.UnitPrice,
		sale.Quantity,
		sale.TotalPrice,
		sale.BonusPercentage,
		sale.BonusAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sale: %w", err)
	}

	return &created, nil
}

// Update persists the mutable fields and recomputed amounts of a sale.
func (r *SaleRepository) Update(ctx context.Context, sale models.Sale) (*models.Sale, error) {
	query := `
		UPDATE sales
		SET product_name = $1, unit_price = $2, quantity = $3, total_price = $4,
		    bonus_percentage = $5, bonus_amount = $6, updated_at = $7
		WHERE id = $8
		RETURNING ` + saleColumns

	var updated models.Sale
	err := r.db.GetContext(
		ctx,
		&updated,
		query,
		sale.ProductName,
		sale.UnitPrice,
		sale.Quantity,
		sale.TotalPrice,
		sale.BonusPercentage,
		sale.BonusAmount,
		time.Now(),
		sale.ID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, api.NotFound("sale not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update sale: %w", err)
	}

	return &updated, nil
}

// SoftDelete marks a sale deleted. The row is retained for admin audit.
func (r *SaleRepository) SoftDelete(ctx context.Context, id uuid.UUID, deletedBy uuid.UUID, deletedAt time.Time) error {
	query := `
		UPDATE sales
		SET is_deleted = TRUE, deleted_at = $1, deleted_by = $2, updated_at = $1
		WHERE id = $3
	`

	result, err := r.db.ExecContext(ctx, query, deletedAt, deletedBy, id)
	if err != nil {
		return fmt.Errorf("failed to soft-delete sale: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return api.NotFound("sale not found")
	}

	return nil
}

// ListByEmployee retrieves the non-deleted sales of one employee, newest first.
func (r *SaleRepository) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]models.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE employee_id = $1 AND is_deleted = FALSE
		ORDER BY created_at DESC
	`

	var sales []models.Sale
	err := r.db.SelectContext(ctx, &sales, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	return sales, nil
}

// ListAll retrieves every sale including soft-deleted rows, newest first.
func (r *SaleRepository) ListAll(ctx context.Context) ([]models.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY created_at DESC`

	var sales []models.Sale
	err := r.db.SelectContext(ctx, &sales, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list all sales: %w", err)
	}

	return sales, nil
}

// DeleteAll hard-deletes every sale row and returns the count removed.
func (r *SaleRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sales`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete sales: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}
