package repository

import (
	"context"
	"database/sql"

	"github.com/tablereserve/table-reserve/internal/model"
)

// RestaurantRepo provides CRUD over the restaurants table.  Writes are
// admin-only; the authorization decision happens in the handler before any
// repository call.
type RestaurantRepo struct{ DB *sql.DB }

func NewRestaurantRepo(db *sql.DB) *RestaurantRepo { return &RestaurantRepo{DB: db} }

// List returns all restaurants ordered by name.
func (r *RestaurantRepo) List(ctx context.Context) ([]model.Restaurant, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT restaurant_id, name, location, description, image_url FROM restaurants ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Restaurant, 0)
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rest)
	}
	return out, rows.Err()
}

// GetByID fetches a single restaurant.  sql.ErrNoRows when absent.
func (r *RestaurantRepo) GetByID(ctx context.Context, id uint64) (model.Restaurant, error) {
	var rest model.Restaurant
	var img sql.NullString
	err := r.DB.QueryRowContext(ctx,
		"SELECT restaurant_id, name, location, description, image_url FROM restaurants WHERE restaurant_id=?",
		id).Scan(&rest.ID, &rest.Name, &rest.Location, &rest.Description, &img)
	if err != nil {
		return model.Restaurant{}, err
	}
	if img.Valid {
		rest.ImageURL = &img.String
	}
	return rest, nil
}

// Create inserts a restaurant and returns the stored row.  imageURL may be
// nil when no image was uploaded.
func (r *RestaurantRepo) Create(ctx context.Context, name, location, description string, imageURL *string) (model.Restaurant, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO restaurants (name, location, description, image_url) VALUES (?,?,?,?)",
		name, location, description, imageURL)
	if err != nil {
		return model.Restaurant{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Restaurant{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Update edits a restaurant's fields.  The image reference is only replaced
// when a new one is supplied; a nil imageURL preserves whatever was stored
// before.  sql.ErrNoRows when the restaurant does not exist.
func (r *RestaurantRepo) Update(ctx context.Context, id uint64, name, location, description string, imageURL *string) (model.Restaurant, error) {
	var res sql.Result
	var err error
	if imageURL != nil {
		res, err = r.DB.ExecContext(ctx,
			"UPDATE restaurants SET name=?, location=?, description=?, image_url=? WHERE restaurant_id=?",
			name, location, description, *imageURL, id)
	} else {
		res, err = r.DB.ExecContext(ctx,
			"UPDATE restaurants SET name=?, location=?, description=? WHERE restaurant_id=?",
			name, location, description, id)
	}
	if err != nil {
		return model.Restaurant{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Either absent or unchanged; distinguish with a lookup.
		if _, gerr := r.GetByID(ctx, id); gerr != nil {
			return model.Restaurant{}, gerr
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a restaurant and all of its menu items in one transaction.
// Reservations that reference the restaurant are deliberately left in place
// (documented orphaning).  sql.ErrNoRows when the restaurant does not exist.
func (r *RestaurantRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM menu_items WHERE restaurant_id=?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM restaurants WHERE restaurant_id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return tx.Commit()
}

// scanRestaurant reads one row from a restaurants SELECT with the standard
// column order.
func scanRestaurant(rows *sql.Rows) (model.Restaurant, error) {
	var rest model.Restaurant
	var img sql.NullString
	if err := rows.Scan(&rest.ID, &rest.Name, &rest.Location, &rest.Description, &img); err != nil {
		return model.Restaurant{}, err
	}
	if img.Valid {
		rest.ImageURL = &img.String
	}
	return rest, nil
}
