package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/texan-rex/diner-service/internal/middleware"
	"github.com/texan-rex/diner-service/internal/service"
)

const testSecret = "test-secret"

func signToken(t *testing.T, userID uuid.UUID, isAdmin bool, secret string) string {
	t.Helper()
	claims := &service.Claims{
		UserID:  userID.String(),
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthPopulatesContext(t *testing.T) {
	auth := service.NewAuthService(nil, service.JWTConfig{Secret: testSecret, ExpiresIn: 1})
	userID := uuid.New()

	var gotActor bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.GetUserID(r.Context())
		assert.True(t, ok)
		assert.Equal(t, userID, id)
		assert.True(t, middleware.GetIsAdmin(r.Context()))

		actor, ok := middleware.GetActor(r.Context())
		assert.True(t, ok)
		assert.True(t, actor.IsAdmin)
		gotActor = true
	})

	req := httptest.NewRequest(http.MethodGet, "/sales", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, userID, true, testSecret))
	rec := httptest.NewRecorder()
	middleware.Auth(auth)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gotActor)
}

func TestAuthRejections(t *testing.T) {
	auth := service.NewAuthService(nil, service.JWTConfig{Secret: testSecret, ExpiresIn: 1})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer token", "Basic abc123"},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong secret", "Bearer " + signToken(t, uuid.New(), false, "other-secret")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/sales", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			middleware.Auth(auth)(next).ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	auth := service.NewAuthService(nil, service.JWTConfig{Secret: testSecret, ExpiresIn: 1})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	protected := middleware.Auth(auth)(middleware.RequireAdmin(next))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.New(), false, testSecret))
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.New(), true, testSecret))
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
