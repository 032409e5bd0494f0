package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/tablereserve/table-reserve/internal/model"
)

// MenuRepo provides access to menu items.  Items always belong to a
// restaurant; deleting the restaurant removes them (see RestaurantRepo).
type MenuRepo struct{ DB *sql.DB }

func NewMenuRepo(db *sql.DB) *MenuRepo { return &MenuRepo{DB: db} }

// ListByRestaurant returns all menu items of a restaurant, newest first.
func (r *MenuRepo) ListByRestaurant(ctx context.Context, restaurantID uint64) ([]model.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, restaurant_id, name, description, price, category, image_url, created_at
		 FROM menu_items WHERE restaurant_id=? ORDER BY created_at DESC`,
		restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.MenuItem, 0)
	for rows.Next() {
		var m model.MenuItem
		var img sql.NullString
		if err := rows.Scan(&m.ID, &m.RestaurantID, &m.Name, &m.Description,
			&m.Price, &m.Category, &img, &m.CreatedAt); err != nil {
			return nil, err
		}
		if img.Valid {
			m.ImageURL = &img.String
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Create inserts a menu item and returns the stored row.  A foreign-key
// failure (MySQL 1452) means the restaurant does not exist and surfaces as
// ErrMissingReference.
func (r *MenuRepo) Create(ctx context.Context, restaurantID uint64, name, description string, price float64, category string) (model.MenuItem, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO menu_items (restaurant_id, name, description, price, category) VALUES (?,?,?,?,?)",
		restaurantID, name, description, price, category)
	if err != nil {
		if strings.Contains(err.Error(), "1452") {
			return model.MenuItem{}, ErrMissingReference
		}
		return model.MenuItem{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.MenuItem{}, err
	}

	var m model.MenuItem
	var img sql.NullString
	err = r.DB.QueryRowContext(ctx,
		`SELECT id, restaurant_id, name, description, price, category, image_url, created_at
		 FROM menu_items WHERE id=?`, id).
		Scan(&m.ID, &m.RestaurantID, &m.Name, &m.Description, &m.Price, &m.Category, &img, &m.CreatedAt)
	if err != nil {
		return model.MenuItem{}, err
	}
	if img.Valid {
		m.ImageURL = &img.String
	}
	return m, nil
}
