package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/texan-rex/diner-service/internal/api"
	"github.com/texan-rex/diner-service/internal/models"
	"github.com/texan-rex/diner-service/internal/policy"
)

func newSaleFixture(role models.EmployeeRole) (*SaleService, *fakeSaleStore, models.User) {
	users := &fakeUserStore{}
	employee := users.add(models.User{
		Username: "marcel",
		Email:    "marcel@texan-rex.fr",
		Role:     role,
		IsActive: true,
	})
	sales := &fakeSaleStore{}
	return NewSaleService(sales, users), sales, employee
}

func TestSaleCreateDerivesAmounts(t *testing.T) {
	svc, _, employee := newSaleFixture(models.RoleChefEquipe)

	sale, err := svc.Create(context.Background(), employee.ID, models.SaleRequest{
		ProductName: "Brisket Burger",
		UnitPrice:   12.5,
		Quantity:    4,
	})
	require.NoError(t, err)

	assert.Equal(t, 50.0, sale.TotalPrice)
	assert.Equal(t, 40, sale.BonusPercentage)
	assert.Equal(t, 20.0, sale.BonusAmount)
	assert.False(t, sale.IsDeleted)
}

func TestSaleCreateDefaultsQuantityToOne(t *testing.T) {
	svc, _, employee := newSaleFixture(models.RoleStagiaire)

	sale, err := svc.Create(context.Background(), employee.ID, models.SaleRequest{
		ProductName: "Ribs",
		UnitPrice:   18,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, sale.Quantity)
	assert.Equal(t, 18.0, sale.TotalPrice)
}

func TestSaleCreateValidation(t *testing.T) {
	svc, sales, employee := newSaleFixture(models.RoleStagiaire)

	tests := []struct {
		name string
		req  models.SaleRequest
	}{
		{"missing product name", models.SaleRequest{UnitPrice: 10}},
		{"negative price", models.SaleRequest{ProductName: "Ribs", UnitPrice: -1}},
		{"negative quantity", models.SaleRequest{ProductName: "Ribs", UnitPrice: 10, Quantity: -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), employee.ID, tt.req)
			require.Error(t, err)
			assert.Equal(t, 400, api.StatusCode(err))
		})
	}
	assert.Empty(t, sales.sales)
}

func TestSaleUpdateRecomputesAtCurrentRate(t *testing.T) {
	users := &fakeUserStore{}
	employee := users.add(models.User{Username: "anna", Role: models.RoleStagiaire, IsActive: true})
	sales := &fakeSaleStore{}
	svc := NewSaleService(sales, users)

	sale, err := svc.Create(context.Background(), employee.ID, models.SaleRequest{
		ProductName: "Pulled Pork",
		UnitPrice:   10,
		Quantity:    2,
	})
	require.NoError(t, err)
	require.Equal(t, 30, sale.BonusPercentage)

	// Promotion after the sale was recorded
	for i := range users.users {
		users.users[i].Role = models.RoleDirecteur
	}

	newQty := 3
	updated, err := svc.Update(context.Background(), sale.ID, policy.Actor{ID: employee.ID}, models.SaleUpdateRequest{
		Quantity: &newQty,
	})
	require.NoError(t, err)

	assert.Equal(t, 30.0, updated.TotalPrice)
	assert.Equal(t, 50, updated.BonusPercentage)
	assert.Equal(t, 15.0, updated.BonusAmount)
}

func TestSaleUpdateNameOnlyKeepsAmounts(t *testing.T) {
	svc, _, employee := newSaleFixture(models.RoleCoPatron)

	sale, err := svc.Create(context.Background(), employee.ID, models.SaleRequest{
		ProductName: "Smoked Sausage",
		UnitPrice:   8,
		Quantity:    2,
	})
	require.NoError(t, err)

	name := "Saucisse fumée"
	updated, err := svc.Update(context.Background(), sale.ID, policy.Actor{ID: employee.ID}, models.SaleUpdateRequest{
		ProductName: &name,
	})
	require.NoError(t, err)

	assert.Equal(t, name, updated.ProductName)
	assert.Equal(t, sale.TotalPrice, updated.TotalPrice)
	assert.Equal(t, sale.BonusAmount, updated.BonusAmount)
}

func TestSaleUpdateDeniedForNonOwner(t *testing.T) {
	svc, _, employee := newSaleFixture(models.RoleStagiaire)

	sale, err := svc.Create(context.Background(), employee.ID, models.SaleRequest{
		ProductName: "Ribs",
		UnitPrice:   18,
	})
	require.NoError(t, err)

	name := "Ribs XL"
	_, err = svc.Update(context.Background(), sale.ID, policy.Actor{ID: uuid.New()}, models.SaleUpdateRequest{
		ProductName: &name,
	})
	require.Error(t, err)
	assert.Equal(t, 403, api.StatusCode(err))
}

func TestSaleSoftDeleteBlocksFurtherEdits(t *testing.T) {
	svc, sales, employee := newSaleFixture(models.RoleStagiaire)
	owner := policy.Actor{ID: employee.ID}

	sale, err := svc.Create(context.Background(), employee.ID, models.SaleRequest{
		ProductName: "Ribs",
		UnitPrice:   18,
	})
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(context.Background(), sale.ID, owner))

	stored := sales.sales[0]
	assert.True(t, stored.IsDeleted)
	require.NotNil(t, stored.DeletedBy)
	assert.Equal(t, employee.ID, *stored.DeletedBy)
	assert.NotNil(t, stored.DeletedAt)

	// Even an admin cannot touch a soft-deleted sale
	admin := policy.Actor{ID: uuid.New(), IsAdmin: true}
	name := "Ribs XL"
	_, err = svc.Update(context.Background(), sale.ID, admin, models.SaleUpdateRequest{ProductName: &name})
	require.Error(t, err)
	assert.Equal(t, 403, api.StatusCode(err))

	err = svc.SoftDelete(context.Background(), sale.ID, admin)
	require.Error(t, err)
	assert.Equal(t, 403, api.StatusCode(err))
}

func TestSaleListMineHidesDeleted(t *testing.T) {
	svc, _, employee := newSaleFixture(models.RolePolyvalent)
	owner := policy.Actor{ID: employee.ID}

	first, err := svc.Create(context.Background(), employee.ID, models.SaleRequest{ProductName: "Brisket", UnitPrice: 20})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), employee.ID, models.SaleRequest{ProductName: "Ribs", UnitPrice: 10})
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(context.Background(), first.ID, owner))

	visible, totalBonus, err := svc.ListMine(context.Background(), employee.ID)
	require.NoError(t, err)

	require.Len(t, visible, 1)
	assert.Equal(t, "Ribs", visible[0].ProductName)
	assert.Equal(t, 3.5, totalBonus)
}

func TestSaleListAllKeepsDeletedInAggregates(t *testing.T) {
	users := &fakeUserStore{}
	employee := users.add(models.User{Username: "anna", Role: models.RoleStagiaire, IsActive: true})
	admin := users.add(models.User{Username: "boss", Role: models.RoleDirecteur, IsAdmin: true, IsActive: true})
	sales := &fakeSaleStore{}
	svc := NewSaleService(sales, users)

	kept, err := svc.Create(context.Background(), employee.ID, models.SaleRequest{ProductName: "Brisket", UnitPrice: 100})
	require.NoError(t, err)
	deleted, err := svc.Create(context.Background(), employee.ID, models.SaleRequest{ProductName: "Ribs", UnitPrice: 50})
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(context.Background(), deleted.ID, policy.Actor{ID: admin.ID, IsAdmin: true}))

	all, stats, err := svc.ListAll(context.Background())
	require.NoError(t, err)

	require.Len(t, all, 2)
	require.Len(t, stats, 1)
	assert.Equal(t, employee.ID, stats[0].Employee.ID)
	assert.Equal(t, 150.0, stats[0].TotalSales)
	assert.Equal(t, 45.0, stats[0].TotalBonus)
	assert.Equal(t, 1, stats[0].SalesCount)
	assert.Equal(t, 1, stats[0].DeletedSalesCount)

	for _, s := range all {
		require.NotNil(t, s.Employee)
		if s.ID == kept.ID {
			assert.Nil(t, s.Deleter)
		} else {
			require.NotNil(t, s.Deleter)
			assert.Equal(t, admin.ID, s.Deleter.ID)
		}
	}
}

func TestSaleWeeklyResetRemovesEverything(t *testing.T) {
	svc, sales, employee := newSaleFixture(models.RoleStagiaire)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), employee.ID, models.SaleRequest{ProductName: "Ribs", UnitPrice: 10})
		require.NoError(t, err)
	}

	deleted, err := svc.WeeklyReset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.Empty(t, sales.sales)
}
