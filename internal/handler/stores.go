package handler

// Handlers depend on narrow store interfaces rather than the concrete
// repository types so tests can substitute in-memory implementations.  The
// *Repo types in internal/repository satisfy these at compile time through
// the wiring in cmd/server.

import (
	"context"

	"github.com/tablereserve/table-reserve/internal/model"
	"github.com/tablereserve/table-reserve/internal/repository"
)

// UserStore is the slice of UserRepo the auth endpoints need.
type UserStore interface {
	Create(ctx context.Context, name, email, password, role string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// RestaurantStore covers public listing and admin CRUD over restaurants.
type RestaurantStore interface {
	List(ctx context.Context) ([]model.Restaurant, error)
	GetByID(ctx context.Context, id uint64) (model.Restaurant, error)
	Create(ctx context.Context, name, location, description string, imageURL *string) (model.Restaurant, error)
	Update(ctx context.Context, id uint64, name, location, description string, imageURL *string) (model.Restaurant, error)
	Delete(ctx context.Context, id uint64) error
}

// MenuStore covers menu item listing and creation.
type MenuStore interface {
	ListByRestaurant(ctx context.Context, restaurantID uint64) ([]model.MenuItem, error)
	Create(ctx context.Context, restaurantID uint64, name, description string, price float64, category string) (model.MenuItem, error)
}

// ReservationStore covers the reservation lifecycle end to end.
type ReservationStore interface {
	Create(ctx context.Context, userID, restaurantID uint64, date, timeOfDay string, peopleCount int) (model.Reservation, error)
	GetByID(ctx context.Context, id uint64) (model.Reservation, error)
	ListByUser(ctx context.Context, userID uint64) ([]repository.UserReservation, error)
	ListByRestaurant(ctx context.Context, restaurantID uint64) ([]repository.RestaurantReservation, error)
	OwnerID(ctx context.Context, id uint64) (uint64, error)
	Update(ctx context.Context, id, userID uint64, date, timeOfDay string, peopleCount int) (model.Reservation, error)
	Delete(ctx context.Context, id, userID uint64) error
	SetStatus(ctx context.Context, id uint64, status string) (model.Reservation, error)
}
