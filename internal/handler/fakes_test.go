package handler

// In-memory store fakes implementing the interfaces in stores.go.  They
// reproduce the repository error contract (sql.ErrNoRows, ErrForbidden,
// ErrEmailExists, ErrInvalidTransition, ErrMissingReference) so handlers
// exercise the same branches they would against MySQL.

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/tablereserve/table-reserve/internal/model"
	"github.com/tablereserve/table-reserve/internal/repository"
	"github.com/tablereserve/table-reserve/internal/utils"
)

// ----- users -----

type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint64
	users  map[uint64]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uint64]model.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, name, email, password, role string, _ int) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			return 0, repository.ErrEmailExists
		}
	}
	hash, err := utils.HashPassword(password, bcrypt.MinCost)
	if err != nil {
		return 0, err
	}
	s.nextID++
	s.users[s.nextID] = model.User{ID: s.nextID, Name: name, Email: email, PasswordHash: hash, Role: role}
	return s.nextID, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, sql.ErrNoRows
}

func (s *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

// ----- restaurants -----

type fakeRestaurantStore struct {
	mu          sync.Mutex
	nextID      uint64
	restaurants map[uint64]model.Restaurant
}

func newFakeRestaurantStore() *fakeRestaurantStore {
	return &fakeRestaurantStore{restaurants: map[uint64]model.Restaurant{}}
}

func (s *fakeRestaurantStore) List(_ context.Context) ([]model.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Restaurant, 0, len(s.restaurants))
	for _, r := range s.restaurants {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *fakeRestaurantStore) GetByID(_ context.Context, id uint64) (model.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.restaurants[id]
	if !ok {
		return model.Restaurant{}, sql.ErrNoRows
	}
	return r, nil
}

func (s *fakeRestaurantStore) Create(_ context.Context, name, location, description string, imageURL *string) (model.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	r := model.Restaurant{ID: s.nextID, Name: name, Location: location, Description: description, ImageURL: imageURL}
	s.restaurants[r.ID] = r
	return r, nil
}

func (s *fakeRestaurantStore) Update(_ context.Context, id uint64, name, location, description string, imageURL *string) (model.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.restaurants[id]
	if !ok {
		return model.Restaurant{}, sql.ErrNoRows
	}
	r.Name, r.Location, r.Description = name, location, description
	if imageURL != nil {
		r.ImageURL = imageURL
	}
	s.restaurants[id] = r
	return r, nil
}

func (s *fakeRestaurantStore) Delete(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.restaurants[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.restaurants, id)
	return nil
}

// ----- menu items -----

type fakeMenuStore struct {
	mu          sync.Mutex
	nextID      uint64
	restaurants *fakeRestaurantStore
	items       map[uint64]model.MenuItem
}

func newFakeMenuStore(restaurants *fakeRestaurantStore) *fakeMenuStore {
	return &fakeMenuStore{restaurants: restaurants, items: map[uint64]model.MenuItem{}}
}

func (s *fakeMenuStore) ListByRestaurant(_ context.Context, restaurantID uint64) ([]model.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.MenuItem, 0)
	for _, m := range s.items {
		if m.RestaurantID == restaurantID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *fakeMenuStore) Create(ctx context.Context, restaurantID uint64, name, description string, price float64, category string) (model.MenuItem, error) {
	if _, err := s.restaurants.GetByID(ctx, restaurantID); err != nil {
		return model.MenuItem{}, repository.ErrMissingReference
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	m := model.MenuItem{ID: s.nextID, RestaurantID: restaurantID, Name: name,
		Description: description, Price: price, Category: category}
	s.items[m.ID] = m
	return m, nil
}

// ----- reservations -----

type fakeReservationStore struct {
	mu           sync.Mutex
	nextID       uint64
	restaurants  *fakeRestaurantStore
	users        *fakeUserStore
	reservations map[uint64]model.Reservation
}

func newFakeReservationStore(restaurants *fakeRestaurantStore, users *fakeUserStore) *fakeReservationStore {
	return &fakeReservationStore{restaurants: restaurants, users: users,
		reservations: map[uint64]model.Reservation{}}
}

func (s *fakeReservationStore) Create(ctx context.Context, userID, restaurantID uint64, date, timeOfDay string, peopleCount int) (model.Reservation, error) {
	if _, err := s.restaurants.GetByID(ctx, restaurantID); err != nil {
		return model.Reservation{}, repository.ErrMissingReference
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	r := model.Reservation{ID: s.nextID, UserID: userID, RestaurantID: restaurantID,
		Date: date, Time: timeOfDay, PeopleCount: peopleCount, Status: model.StatusPending}
	s.reservations[r.ID] = r
	return r, nil
}

func (s *fakeReservationStore) GetByID(_ context.Context, id uint64) (model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reservations[id]
	if !ok {
		return model.Reservation{}, sql.ErrNoRows
	}
	return r, nil
}

func (s *fakeReservationStore) ListByUser(ctx context.Context, userID uint64) ([]repository.UserReservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]repository.UserReservation, 0)
	for _, r := range s.reservations {
		if r.UserID != userID {
			continue
		}
		ur := repository.UserReservation{Reservation: r}
		if rest, err := s.restaurants.GetByID(ctx, r.RestaurantID); err == nil {
			ur.RestaurantName = rest.Name
		}
		out = append(out, ur)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].Time > out[j].Time
	})
	return out, nil
}

func (s *fakeReservationStore) ListByRestaurant(ctx context.Context, restaurantID uint64) ([]repository.RestaurantReservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]repository.RestaurantReservation, 0)
	for _, r := range s.reservations {
		if r.RestaurantID != restaurantID {
			continue
		}
		rr := repository.RestaurantReservation{Reservation: r}
		if u, err := s.users.GetByID(ctx, r.UserID); err == nil {
			rr.UserName, rr.UserEmail = u.Name, u.Email
		}
		out = append(out, rr)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].Time > out[j].Time
	})
	return out, nil
}

func (s *fakeReservationStore) OwnerID(_ context.Context, id uint64) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reservations[id]
	if !ok {
		return 0, sql.ErrNoRows
	}
	return r.UserID, nil
}

func (s *fakeReservationStore) Update(_ context.Context, id, userID uint64, date, timeOfDay string, peopleCount int) (model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reservations[id]
	if !ok {
		return model.Reservation{}, sql.ErrNoRows
	}
	if r.UserID != userID {
		return model.Reservation{}, repository.ErrForbidden
	}
	r.Date, r.Time, r.PeopleCount = date, timeOfDay, peopleCount
	s.reservations[id] = r
	return r, nil
}

func (s *fakeReservationStore) Delete(_ context.Context, id, userID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reservations[id]
	if !ok {
		return sql.ErrNoRows
	}
	if r.UserID != userID {
		return repository.ErrForbidden
	}
	delete(s.reservations, id)
	return nil
}

func (s *fakeReservationStore) SetStatus(_ context.Context, id uint64, status string) (model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reservations[id]
	if !ok {
		return model.Reservation{}, sql.ErrNoRows
	}
	if !model.CanTransition(r.Status, status) {
		return model.Reservation{}, repository.ErrInvalidTransition
	}
	r.Status = status
	s.reservations[id] = r
	return r, nil
}
