package models

import (
	"time"

	"github.com/google/uuid"
)

// EmployeeRole is the restaurant hierarchy. Each role maps to a fixed
// commission percentage (see internal/policy).
type EmployeeRole string

const (
	RoleStagiaire  EmployeeRole = "Stagiaire"
	RolePolyvalent EmployeeRole = "Employé polyvalent"
	RoleChefEquipe EmployeeRole = "Chef d'équipe"
	RoleCoPatron   EmployeeRole = "Co-patron"
	RoleDirecteur  EmployeeRole = "Directeur"
)

// ValidRole reports whether role is one of the known employee roles.
func ValidRole(role EmployeeRole) bool {
	switch role {
	case RoleStagiaire, RolePolyvalent, RoleChefEquipe, RoleCoPatron, RoleDirecteur:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	Username     string       `db:"username" json:"username"`
	Email        string       `db:"email" json:"email"`
	PasswordHash string       `db:"password_hash" json:"-"` // Never expose in JSON
	FirstName    string       `db:"first_name" json:"first_name"`
	LastName     string       `db:"last_name" json:"last_name"`
	Role         EmployeeRole `db:"role" json:"role"`
	IsAdmin      bool         `db:"is_admin" json:"is_admin"`
	IsActive     bool         `db:"is_active" json:"is_active"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

// RegisterRequest is used for self-registration
type RegisterRequest struct {
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	Password  string       `json:"password"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Role      EmployeeRole `json:"role"`
}

// UserRequest is used for admin user creation
type UserRequest struct {
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	Password  string       `json:"password"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Role      EmployeeRole `json:"role"`
	IsAdmin   bool         `json:"is_admin"`
}

// UserUpdateRequest is used for admin user edits. Nil fields are left
// unchanged; a non-empty Password is re-hashed before storage.
type UserUpdateRequest struct {
	Username  *string       `json:"username"`
	Email     *string       `json:"email"`
	Password  *string       `json:"password"`
	FirstName *string       `json:"first_name"`
	LastName  *string       `json:"last_name"`
	Role      *EmployeeRole `json:"role"`
	IsAdmin   *bool         `json:"is_admin"`
	IsActive  *bool         `json:"is_active"`
}
