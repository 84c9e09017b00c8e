package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/texan-rex/diner-service/internal/api"
	"github.com/texan-rex/diner-service/internal/models"
)

// In-memory stand-ins for the repository layer. Each fake keeps its rows
// in insertion order and mints IDs the way the database would.

type fakeUserStore struct {
	users []models.User
}

func (f *fakeUserStore) add(u models.User) models.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.users = append(f.users, u)
	return u
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, api.NotFound("user not found")
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].Username == username {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, api.NotFound("user not found")
}

func (f *fakeUserStore) UsernameOrEmailExists(_ context.Context, username, email string) (bool, error) {
	for i := range f.users {
		if f.users[i].Username == username || f.users[i].Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) AdminExists(_ context.Context) (bool, error) {
	for i := range f.users {
		if f.users[i].IsAdmin && f.users[i].IsActive {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) ListActive(_ context.Context) ([]models.User, error) {
	var active []models.User
	for _, u := range f.users {
		if u.IsActive {
			active = append(active, u)
		}
	}
	return active, nil
}

func (f *fakeUserStore) List(_ context.Context) ([]models.User, error) {
	return append([]models.User(nil), f.users...), nil
}

func (f *fakeUserStore) Create(_ context.Context, user models.User) (*models.User, error) {
	created := f.add(user)
	return &created, nil
}

func (f *fakeUserStore) Update(_ context.Context, user models.User) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == user.ID {
			f.users[i] = user
			u := user
			return &u, nil
		}
	}
	return nil, api.NotFound("user not found")
}

func (f *fakeUserStore) Deactivate(_ context.Context, id uuid.UUID) error {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].IsActive = false
			return nil
		}
	}
	return api.NotFound("user not found")
}

type fakeSaleStore struct {
	sales []models.Sale
}

func (f *fakeSaleStore) GetByID(_ context.Context, id uuid.UUID) (*models.Sale, error) {
	for i := range f.sales {
		if f.sales[i].ID == id {
			s := f.sales[i]
			return &s, nil
		}
	}
	return nil, api.NotFound("sale not found")
}

func (f *fakeSaleStore) Create(_ context.Context, sale models.Sale) (*models.Sale, error) {
	sale.ID = uuid.New()
	sale.CreatedAt = time.Now()
	f.sales = append(f.sales, sale)
	s := sale
	return &s, nil
}

func (f *fakeSaleStore) Update(_ context.Context, sale models.Sale) (*models.Sale, error) {
	for i := range f.sales {
		if f.sales[i].ID == sale.ID {
			f.sales[i] = sale
			s := sale
			return &s, nil
		}
	}
	return nil, api.NotFound("sale not found")
}

func (f *fakeSaleStore) SoftDelete(_ context.Context, id, deletedBy uuid.UUID, deletedAt time.Time) error {
	for i := range f.sales {
		if f.sales[i].ID == id {
			f.sales[i].IsDeleted = true
			f.sales[i].DeletedAt = &deletedAt
			f.sales[i].DeletedBy = &deletedBy
			return nil
		}
	}
	return api.NotFound("sale not found")
}

func (f *fakeSaleStore) ListByEmployee(_ context.Context, employeeID uuid.UUID) ([]models.Sale, error) {
	var visible []models.Sale
	for _, s := range f.sales {
		if s.EmployeeID == employeeID && !s.IsDeleted {
			visible = append(visible, s)
		}
	}
	return visible, nil
}

func (f *fakeSaleStore) ListAll(_ context.Context) ([]models.Sale, error) {
	return append([]models.Sale(nil), f.sales...), nil
}

func (f *fakeSaleStore) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(f.sales))
	f.sales = nil
	return n, nil
}

type fakeOrderStore struct {
	orders []models.Order
}

func (f *fakeOrderStore) GetByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	for i := range f.orders {
		if f.orders[i].ID == id {
			o := f.orders[i]
			return &o, nil
		}
	}
	return nil, api.NotFound("order not found")
}

func (f *fakeOrderStore) Create(_ context.Context, order models.Order) (*models.Order, error) {
	order.ID = uuid.New()
	order.CreatedAt = time.Now()
	f.orders = append(f.orders, order)
	o := order
	return &o, nil
}

func (f *fakeOrderStore) ListByEmployee(_ context.Context, employeeID uuid.UUID) ([]models.Order, error) {
	var mine []models.Order
	for _, o := range f.orders {
		if o.EmployeeID == employeeID {
			mine = append(mine, o)
		}
	}
	return mine, nil
}

func (f *fakeOrderStore) ListAll(_ context.Context) ([]models.Order, error) {
	return append([]models.Order(nil), f.orders...), nil
}

func (f *fakeOrderStore) Delete(_ context.Context, id uuid.UUID) error {
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders = append(f.orders[:i], f.orders[i+1:]...)
			return nil
		}
	}
	return api.NotFound("order not found")
}

func (f *fakeOrderStore) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(f.orders))
	f.orders = nil
	return n, nil
}

type fakeClientOrderStore struct {
	orders []models.ClientOrder
}

func (f *fakeClientOrderStore) Create(_ context.Context, order models.ClientOrder) (*models.ClientOrder, error) {
	order.ID = uuid.New()
	order.CreatedAt = time.Now()
	f.orders = append(f.orders, order)
	o := order
	return &o, nil
}

func (f *fakeClientOrderStore) GetByOrderNumber(_ context.Context, orderNumber string) (*models.ClientOrder, error) {
	for i := range f.orders {
		if f.orders[i].OrderNumber == orderNumber {
			o := f.orders[i]
			return &o, nil
		}
	}
	return nil, api.NotFound("order not found")
}

func (f *fakeClientOrderStore) UpdateStatus(_ context.Context, orderNumber string, status models.ClientOrderStatus) (*models.ClientOrder, error) {
	for i := range f.orders {
		if f.orders[i].OrderNumber == orderNumber {
			f.orders[i].Status = status
			o := f.orders[i]
			return &o, nil
		}
	}
	return nil, api.NotFound("order not found")
}

// fakeCounter increments per scope+day the way the daily_counters table
// does.
type fakeCounter struct {
	seqs map[string]int
}

func (f *fakeCounter) Next(_ context.Context, scope, day string) (int, error) {
	if f.seqs == nil {
		f.seqs = make(map[string]int)
	}
	key := scope + "|" + day
	f.seqs[key]++
	return f.seqs[key], nil
}

type fakeNotifier struct {
	calls []string
	err   error
}

func (f *fakeNotifier) OrderCreated(_ context.Context, order *models.ClientOrder) error {
	f.calls = append(f.calls, order.OrderNumber)
	return f.err
}

type fakeBroadcaster struct {
	events []string
}

func (f *fakeBroadcaster) BroadcastEvent(event string, _ interface{}) {
	f.events = append(f.events, event)
}

var errStoreDown = errors.New("store down")
