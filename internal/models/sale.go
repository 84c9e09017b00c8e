package models

import (
	"time"

	"github.com/google/uuid"
)

// Sale is a single-product commission record logged by an employee.
// TotalPrice and BonusAmount are derived server-side and are never taken
// from client input.
type Sale struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	EmployeeID      uuid.UUID  `db:"employee_id" json:"employee_id"`
	ProductName     string     `db:"product_name" json:"product_name"`
	UnitPrice       float64    `db:"unit_price" json:"unit_price"`
	Quantity        int        `db:"quantity" json:"quantity"`
	TotalPrice      float64    `db:"total_price" json:"total_price"`
	BonusPercentage int        `db:"bonus_percentage" json:"bonus_percentage"`
	BonusAmount     float64    `db:"bonus_amount" json:"bonus_amount"`
	IsDeleted       bool       `db:"is_deleted" json:"is_deleted"`
	DeletedAt       *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
	DeletedBy       *uuid.UUID `db:"deleted_by" json:"deleted_by,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`

	// Not stored directly in the database
	Employee *User `db:"-" json:"employee,omitempty"`
	Deleter  *User `db:"-" json:"deleter,omitempty"`
}

// SaleRequest is used for sale creation. Quantity defaults to 1.
type SaleRequest struct {
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
}

// SaleUpdateRequest is used for sale edits. Only these three fields are
// mutable; derived amounts are recomputed whenever price or quantity change.
type SaleUpdateRequest struct {
	ProductName *string  `json:"product_name"`
	UnitPrice   *float64 `json:"unit_price"`
	Quantity    *int     `json:"quantity"`
}

// EmployeeSaleStats is the per-employee aggregate shown on the admin
// dashboard. TotalSales and TotalBonus cover every row including
// soft-deleted ones; SalesCount only the visible ones.
type EmployeeSaleStats struct {
	Employee          User    `json:"employee"`
	TotalSales        float64 `json:"total_sales"`
	TotalBonus        float64 `json:"total_bonus"`
	SalesCount        int     `json:"sales_count"`
	DeletedSalesCount int     `json:"deleted_sales_count"`
}
