package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/texan-rex/diner-service/internal/api"
	"github.com/texan-rex/diner-service/internal/models"
	"github.com/texan-rex/diner-service/internal/policy"
)

func newOrderFixture(role models.EmployeeRole) (*OrderService, *fakeOrderStore, models.User) {
	users := &fakeUserStore{}
	employee := users.add(models.User{
		Username: "marcel",
		Role:     role,
		IsActive: true,
	})
	orders := &fakeOrderStore{}
	return NewOrderService(orders, users, &fakeCounter{}), orders, employee
}

func TestOrderCreateDerivesTotals(t *testing.T) {
	svc, _, employee := newOrderFixture(models.RoleCoPatron)

	order, err := svc.Create(context.Background(), employee.ID, models.OrderRequest{
		Items: []models.OrderItemRequest{
			{ProductName: "Brisket Burger", UnitPrice: 12.5, Quantity: 2},
			{ProductName: "Coleslaw", UnitPrice: 5, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 30.0, order.TotalAmount)
	assert.Equal(t, 45, order.BonusPercentage)
	assert.Equal(t, 13.5, order.BonusAmount)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 25.0, order.Items[0].TotalPrice)
}

func TestOrderNumbersIncrementWithinTheDay(t *testing.T) {
	svc, _, employee := newOrderFixture(models.RoleStagiaire)
	day := time.Now().Format("20060102")

	for i := 1; i <= 3; i++ {
		order, err := svc.Create(context.Background(), employee.ID, models.OrderRequest{
			Items: []models.OrderItemRequest{{ProductName: "Ribs", UnitPrice: 18, Quantity: 1}},
		})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("ORD_%s_%03d", day, i), order.OrderNumber)
	}
}

func TestOrderCreateValidation(t *testing.T) {
	svc, orders, employee := newOrderFixture(models.RoleStagiaire)

	tests := []struct {
		name  string
		items []models.OrderItemRequest
	}{
		{"no items", nil},
		{"missing product name", []models.OrderItemRequest{{UnitPrice: 10, Quantity: 1}}},
		{"negative price", []models.OrderItemRequest{{ProductName: "Ribs", UnitPrice: -1, Quantity: 1}}},
		{"zero quantity", []models.OrderItemRequest{{ProductName: "Ribs", UnitPrice: 10}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), employee.ID, models.OrderRequest{Items: tt.items})
			require.Error(t, err)
			assert.Equal(t, 400, api.StatusCode(err))
		})
	}
	assert.Empty(t, orders.orders)
}

func TestOrderDeleteOwnership(t *testing.T) {
	svc, orders, employee := newOrderFixture(models.RoleStagiaire)

	order, err := svc.Create(context.Background(), employee.ID, models.OrderRequest{
		Items: []models.OrderItemRequest{{ProductName: "Ribs", UnitPrice: 18, Quantity: 1}},
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), order.ID, policy.Actor{ID: uuid.New()})
	require.Error(t, err)
	assert.Equal(t, 403, api.StatusCode(err))
	assert.Len(t, orders.orders, 1)

	require.NoError(t, svc.Delete(context.Background(), order.ID, policy.Actor{ID: uuid.New(), IsAdmin: true}))
	assert.Empty(t, orders.orders)
}

func TestOrderListAllAggregatesRevenue(t *testing.T) {
	users := &fakeUserStore{}
	anna := users.add(models.User{Username: "anna", Role: models.RoleStagiaire, IsActive: true})
	zoe := users.add(models.User{Username: "zoe", Role: models.RoleDirecteur, IsActive: true})
	svc := NewOrderService(&fakeOrderStore{}, users, &fakeCounter{})

	_, err := svc.Create(context.Background(), anna.ID, models.OrderRequest{
		Items: []models.OrderItemRequest{{ProductName: "Ribs", UnitPrice: 100, Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), zoe.ID, models.OrderRequest{
		Items: []models.OrderItemRequest{{ProductName: "Brisket", UnitPrice: 50, Quantity: 2}},
	})
	require.NoError(t, err)

	orders, stats, err := svc.ListAll(context.Background())
	require.NoError(t, err)

	require.Len(t, orders, 2)
	require.Len(t, stats, 2)
	// Sorted by username
	assert.Equal(t, "anna", stats[0].Employee.Username)
	assert.Equal(t, 100.0, stats[0].TotalRevenue)
	assert.Equal(t, 30.0, stats[0].TotalBonus)
	assert.Equal(t, "zoe", stats[1].Employee.Username)
	assert.Equal(t, 100.0, stats[1].TotalRevenue)
	assert.Equal(t, 50.0, stats[1].TotalBonus)
	assert.Equal(t, 1, stats[1].OrdersCount)
}

func TestOrderWeeklyReset(t *testing.T) {
	svc, orders, employee := newOrderFixture(models.RoleStagiaire)

	for i := 0; i < 2; i++ {
		_, err := svc.Create(context.Background(), employee.ID, models.OrderRequest{
			Items: []models.OrderItemRequest{{ProductName: "Ribs", UnitPrice: 18, Quantity: 1}},
		})
		require.NoError(t, err)
	}

	deleted, err := svc.WeeklyReset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.Empty(t, orders.orders)
}
