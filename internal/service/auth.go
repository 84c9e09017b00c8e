package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/texan-rex/diner-service/internal/api"
	"github.com/texan-rex/diner-service/internal/models"
	"github.com/texan-rex/diner-service/internal/policy"
)

// JWTConfig holds configuration for JWT token generation
type JWTConfig struct {
	Secret    string
	ExpiresIn int // hours
}

// userStore is the account access the auth and employee services need.
type userStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameOrEmailExists(ctx context.Context, username, email string) (bool, error)
	AdminExists(ctx context.Context) (bool, error)
	ListActive(ctx context.Context) ([]models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, user models.User) (*models.User, error)
	Update(ctx context.Context, user models.User) (*models.User, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// AuthService handles registration, login and token validation.
type AuthService struct {
	users     userStore
	jwtConfig JWTConfig
}

// NewAuthService creates a new authentication service
func NewAuthService(users userStore, jwtConfig JWTConfig) *AuthService {
	return &AuthService{
		users:     users,
		jwtConfig: jwtConfig,
	}
}

// Claims represents JWT claims
type Claims struct {
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// Register creates an employee account from the public registration form
// and returns it with a fresh token.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (string, *models.User, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" ||
		req.FirstName == "" || req.LastName == "" {
		return "", nil, api.Validation("username, email, password, first name and last name are required")
	}

	role := req.Role
	if role == "" {
		role = models.RoleStagiaire
	}
	if !models.ValidRole(role) {
		return "", nil, api.Validation("unknown role")
	}

	exists, err := s.users.UsernameOrEmailExists(ctx, req.Username, req.Email)
	if err != nil {
		return "", nil, api.Internal("failed to check existing accounts", err)
	}
	if exists {
		return "", nil, api.Validation("an account with this username or email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, api.Internal("failed to hash password", err)
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		IsAdmin:      false,
		IsActive:     true,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return "", nil, api.Internal("failed to create account", err)
	}

	token, err := s.generateToken(created)
	if err != nil {
		return "", nil, api.Internal("failed to generate token", err)
	}

	return token, created, nil
}

// Login authenticates a user and returns a JWT token
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, api.Authentication("invalid credentials or inactive account")
	}

	if !user.IsActive {
		return "", nil, api.Authentication("invalid credentials or inactive account")
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return "", nil, api.Authentication("invalid credentials or inactive account")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, api.Internal("failed to generate token", err)
	}

	return token, user, nil
}

// Me returns the profile of the authenticated employee together with the
// commission rate their role currently earns.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*models.User, int, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return user, policy.BonusPercentage(user.Role), nil
}

// generateToken generates a JWT token for a user
func (s *AuthService) generateToken(user *models.User) (string, error) {
	expirationTime := time.Now().Add(time.Duration(s.jwtConfig.ExpiresIn) * time.Hour)

	claims := &Claims{
		UserID:  user.ID.String(),
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns the claims
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// Actor builds the policy actor for a set of validated claims.
func (c *Claims) Actor() (policy.Actor, error) {
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return policy.Actor{}, fmt.Errorf("invalid user ID in token: %w", err)
	}
	return policy.Actor{ID: id, IsAdmin: c.IsAdmin}, nil
}
