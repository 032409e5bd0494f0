package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/tablereserve/table-reserve/internal/model"
)

// ReservationRepo provides CRUD operations for reservations.  Ownership is
// enforced inside the queries themselves: every user-facing statement is
// scoped to the owning user_id so a mismatched caller can never touch the
// row.  Status transitions are guarded atomically in SetStatus.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// UserReservation is a reservation joined with the restaurant name, as
// listed back to the owning user.
type UserReservation struct {
	model.Reservation
	RestaurantName string `json:"restaurant_name"`
}

// RestaurantReservation is a reservation joined with the owning user's name
// and email, as listed to admins per restaurant.
type RestaurantReservation struct {
	model.Reservation
	UserName  string `json:"user_name"`
	UserEmail string `json:"email"`
}

// Create inserts a new pending reservation and returns the stored row.
// Input validation (required fields, positive people count, well-formed
// date/time) happens in the handler; the foreign keys guarantee the user
// and restaurant exist, and a violation surfaces as ErrMissingReference.
func (r *ReservationRepo) Create(ctx context.Context, userID, restaurantID uint64, date, timeOfDay string, peopleCount int) (model.Reservation, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO reservations (user_id, restaurant_id, date, time, people_count, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		userID, restaurantID, date, timeOfDay, peopleCount, model.StatusPending)
	if err != nil {
		// MySQL 1452: foreign key constraint fails.
		if strings.Contains(err.Error(), "1452") {
			return model.Reservation{}, ErrMissingReference
		}
		return model.Reservation{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Reservation{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID returns a single reservation.  sql.ErrNoRows when absent.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT reservation_id, user_id, restaurant_id, date, time, people_count, status
		 FROM reservations WHERE reservation_id = ?`, id)
	return scanReservation(row)
}

// ListByUser returns all reservations of a user joined with restaurant
// names, most recent booking date first.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]UserReservation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT r.reservation_id, r.user_id, r.restaurant_id, r.date, r.time, r.people_count, r.status,
				rs.name
		 FROM reservations r
		 JOIN restaurants rs ON rs.restaurant_id = r.restaurant_id
		 WHERE r.user_id = ?
		 ORDER BY r.date DESC, r.time DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]UserReservation, 0)
	for rows.Next() {
		var ur UserReservation
		var d time.Time
		if err := rows.Scan(&ur.ID, &ur.UserID, &ur.RestaurantID, &d, &ur.Time,
			&ur.PeopleCount, &ur.Status, &ur.RestaurantName); err != nil {
			return nil, err
		}
		ur.Date = d.UTC().Format("2006-01-02")
		out = append(out, ur)
	}
	return out, rows.Err()
}

// ListByRestaurant returns all reservations placed at a restaurant joined
// with the booking users' names and emails, most recent first.  Consumed by
// the admin view only; the role check happens before this call.
func (r *ReservationRepo) ListByRestaurant(ctx context.Context, restaurantID uint64) ([]RestaurantReservation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT r.reservation_id, r.user_id, r.restaurant_id, r.date, r.time, r.people_count, r.status,
				u.name, u.email
		 FROM reservations r
		 JOIN users u ON u.user_id = r.user_id
		 WHERE r.restaurant_id = ?
		 ORDER BY r.date DESC, r.time DESC`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RestaurantReservation, 0)
	for rows.Next() {
		var rr RestaurantReservation
		var d time.Time
		if err := rows.Scan(&rr.ID, &rr.UserID, &rr.RestaurantID, &d, &rr.Time,
			&rr.PeopleCount, &rr.Status, &rr.UserName, &rr.UserEmail); err != nil {
			return nil, err
		}
		rr.Date = d.UTC().Format("2006-01-02")
		out = append(out, rr)
	}
	return out, rows.Err()
}

// OwnerID returns the user who owns a reservation.  sql.ErrNoRows when the
// reservation does not exist.  Handlers use this to feed the authorization
// decision before mutating anything.
func (r *ReservationRepo) OwnerID(ctx context.Context, id uint64) (uint64, error) {
	var owner uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT user_id FROM reservations WHERE reservation_id = ?", id).Scan(&owner)
	return owner, err
}

// Update edits a reservation's date, time and people count.  The statement
// is scoped to the owning user; when nothing matches, a follow-up lookup
// distinguishes a missing reservation (sql.ErrNoRows) from one owned by
// someone else (ErrForbidden).  The current status is deliberately not
// checked: the reference behavior allows editing a decided reservation.
func (r *ReservationRepo) Update(ctx context.Context, id, userID uint64, date, timeOfDay string, peopleCount int) (model.Reservation, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET date = ?, time = ?, people_count = ?
		 WHERE reservation_id = ? AND user_id = ?`,
		date, timeOfDay, peopleCount, id, userID)
	if err != nil {
		return model.Reservation{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Reservation{}, err
	}
	if n == 0 {
		owner, err := r.OwnerID(ctx, id)
		if err != nil {
			return model.Reservation{}, err // sql.ErrNoRows: no such reservation
		}
		if owner != userID {
			return model.Reservation{}, ErrForbidden
		}
		// Same values rewritten; fall through to return the row.
	}
	return r.GetByID(ctx, id)
}

// Delete removes a reservation owned by the given user.  Hard delete, no
// audit trail, allowed in any status so a user can withdraw even an
// accepted booking.  sql.ErrNoRows when absent, ErrForbidden when owned by
// someone else.
func (r *ReservationRepo) Delete(ctx context.Context, id, userID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM reservations WHERE reservation_id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		owner, err := r.OwnerID(ctx, id)
		if err != nil {
			return err
		}
		if owner != userID {
			return ErrForbidden
		}
	}
	return nil
}

// SetStatus records an admin decision.  The UPDATE only matches while the
// reservation is still pending, which makes the terminal-state invariant
// atomic: when two concurrent decisions race, exactly one statement matches
// and the other comes back with zero rows.  Zero rows then splits into
// sql.ErrNoRows (no such reservation) or ErrInvalidTransition (already
// decided).  The requested status itself must be accepted or denied; the
// handler validates that before calling.
func (r *ReservationRepo) SetStatus(ctx context.Context, id uint64, status string) (model.Reservation, error) {
	if !model.CanTransition(model.StatusPending, status) {
		return model.Reservation{}, ErrInvalidTransition
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE reservations SET status = ? WHERE reservation_id = ? AND status = ?",
		status, id, model.StatusPending)
	if err != nil {
		return model.Reservation{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Reservation{}, err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return model.Reservation{}, err // sql.ErrNoRows: no such reservation
		}
		// The row exists but was not pending anymore.
		return model.Reservation{}, ErrInvalidTransition
	}
	return r.GetByID(ctx, id)
}

// scanReservation reads one reservations row with the standard column order.
func scanReservation(row *sql.Row) (model.Reservation, error) {
	var m model.Reservation
	var d time.Time
	if err := row.Scan(&m.ID, &m.UserID, &m.RestaurantID, &d, &m.Time,
		&m.PeopleCount, &m.Status); err != nil {
		return model.Reservation{}, err
	}
	m.Date = d.UTC().Format("2006-01-02")
	return m, nil
}
