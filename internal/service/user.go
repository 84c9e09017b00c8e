package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/texan-rex/diner-service/internal/api"
	"github.com/texan-rex/diner-service/internal/config"
	"github.com/texan-rex/diner-service/internal/models"
)

// EmployeeService handles admin-side account management.
type EmployeeService struct {
	users userStore
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(users userStore) *EmployeeService {
	return &EmployeeService{users: users}
}

// List returns all active employee accounts.
func (s *EmployeeService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.ListActive(ctx)
	if err != nil {
		return nil, api.Internal("failed to list users", err)
	}
	return users, nil
}

// Create provisions an account on behalf of an admin, including the admin
// flag which self-registration never sets.
func (s *EmployeeService) Create(ctx context.Context, req models.UserRequest) (*models.User, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" ||
		req.FirstName == "" || req.LastName == "" {
		return nil, api.Validation("username, email, password, first name and last name are required")
	}

	role := req.Role
	if role == "" {
		role = models.RoleStagiaire
	}
	if !models.ValidRole(role) {
		return nil, api.Validation("unknown role")
	}

	exists, err := s.users.UsernameOrEmailExists(ctx, req.Username, req.Email)
	if err != nil {
		return nil, api.Internal("failed to check existing accounts", err)
	}
	if exists {
		return nil, api.Validation("an account with this username or email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, api.Internal("failed to hash password", err)
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		IsAdmin:      req.IsAdmin,
		IsActive:     true,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, api.Internal("failed to create user", err)
	}

	return created, nil
}

// Update applies the provided fields to an account. A non-empty password
// is re-hashed.
func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, req models.UserUpdateRequest) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			return nil, api.Validation("unknown role")
		}
		user.Role = *req.Role
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != nil && *req.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, api.Internal("failed to hash password", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	updated, err := s.users.Update(ctx, *user)
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete deactivates an account. The row is kept so the employee's
// historical sales remain attributable.
func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.users.Deactivate(ctx, id)
}

// EnsureAdmin provisions the bootstrap admin account on first startup.
// This replaces promoting a reserved username at write time: one explicit
// seed, no hidden coupling between identity and privilege.
func (s *EmployeeService) EnsureAdmin(ctx context.Context, cfg config.Admin) error {
	exists, err := s.users.AdminExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = s.Create(ctx, models.UserRequest{
		Username:  cfg.Username,
		Email:     cfg.Email,
		Password:  cfg.Password,
		FirstName: cfg.FirstName,
		LastName:  cfg.LastName,
		Role:      models.RoleDirecteur,
		IsAdmin:   true,
	})
	if err != nil {
		return err
	}

	log.Printf("Provisioned bootstrap admin account %q", cfg.Username)
	return nil
}
