// Package policy holds the pure business rules: the role-to-commission
// table, bonus arithmetic, and the ownership rule gating record mutations.
package policy

import (
	"github.com/google/uuid"

	"github.com/texan-rex/diner-service/internal/models"
)

// bonusRates maps each employee role to its commission percentage.
var bonusRates = map[models.EmployeeRole]int{
	models.RoleStagiaire:  30,
	models.RolePolyvalent: 35,
	models.RoleChefEquipe: 40,
	models.RoleCoPatron:   45,
	models.RoleDirecteur:  50,
}

// DefaultBonusPercentage applies when the role is unknown.
const DefaultBonusPercentage = 30

// BonusPercentage returns the commission percentage for a role.
func BonusPercentage(role models.EmployeeRole) int {
	if pct, ok := bonusRates[role]; ok {
		return pct
	}
	return DefaultBonusPercentage
}

// ComputeBonus returns the commission owed on amount at the given
// percentage. Plain floating-point arithmetic, no rounding.
func ComputeBonus(amount float64, percentage int) float64 {
	return amount * float64(percentage) / 100
}

// Actor is the authenticated identity performing an operation.
type Actor struct {
	ID      uuid.UUID
	IsAdmin bool
}

// CanModify reports whether actor may mutate or delete a record owned by
// ownerID. Admins may always; everyone else only their own records.
func CanModify(actor Actor, ownerID uuid.UUID) bool {
	return actor.IsAdmin || actor.ID == ownerID
}

// CanModifySale applies the ownership rule plus the soft-delete gate: a
// sale that has been soft-deleted rejects all further mutation.
func CanModifySale(actor Actor, sale *models.Sale) bool {
	if sale.IsDeleted {
		return false
	}
	return CanModify(actor, sale.EmployeeID)
}
