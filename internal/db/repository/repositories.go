package repository

import (
	"github.com/texan-rex/diner-service/internal/db"
)

// Repositories provides access to all repository instances
type Repositories struct {
	User        *UserRepository
	Sale        *SaleRepository
	Order       *OrderRepository
	ClientOrder *ClientOrderRepository
	Counter     *CounterRepository
}

// NewRepositories creates a new repositories container
func NewRepositories(database *db.Postgres) *Repositories {
	return &Repositories{
		User:        NewUserRepository(database.DB),
		Sale:        NewSaleRepository(database.DB),
		Order:       NewOrderRepository(database.DB),
		ClientOrder: NewClientOrderRepository(database.DB),
		Counter:     NewCounterRepository(database.DB),
	}
}
