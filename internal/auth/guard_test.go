package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	admin := &Principal{ID: 1, Email: "admin@example.com", Role: "admin"}
	owner := &Principal{ID: 7, Email: "user@example.com", Role: "user"}
	other := &Principal{ID: 8, Email: "other@example.com", Role: "user"}

	tests := []struct {
		name      string
		principal *Principal
		action    Action
		resource  Resource
		allowed   bool
	}{
		{"admin creates restaurant", admin, ActionRestaurantCreate, Resource{}, true},
		{"user creates restaurant", owner, ActionRestaurantCreate, Resource{}, false},
		{"anonymous creates restaurant", nil, ActionRestaurantCreate, Resource{}, false},
		{"admin updates restaurant", admin, ActionRestaurantUpdate, Resource{}, true},
		{"admin deletes restaurant", admin, ActionRestaurantDelete, Resource{}, true},
		{"user deletes restaurant", other, ActionRestaurantDelete, Resource{}, false},
		{"admin lists restaurants", admin, ActionRestaurantAdminList, Resource{}, true},
		{"user lists restaurants admin-side", owner, ActionRestaurantAdminList, Resource{}, false},

		{"admin creates menu item", admin, ActionMenuItemCreate, Resource{}, true},
		{"user creates menu item", owner, ActionMenuItemCreate, Resource{}, false},
		{"anonymous creates menu item", nil, ActionMenuItemCreate, Resource{}, false},

		{"admin decides reservation", admin, ActionReservationDecide, Resource{}, true},
		{"user decides reservation", owner, ActionReservationDecide, Resource{OwnerID: owner.ID}, false},
		{"anonymous decides reservation", nil, ActionReservationDecide, Resource{}, false},

		{"owner reads reservation", owner, ActionReservationRead, Resource{OwnerID: 7}, true},
		{"other reads reservation", other, ActionReservationRead, Resource{OwnerID: 7}, false},
		{"owner edits reservation", owner, ActionReservationEdit, Resource{OwnerID: 7}, true},
		{"other edits reservation", other, ActionReservationEdit, Resource{OwnerID: 7}, false},
		{"admin edits someone's reservation", admin, ActionReservationEdit, Resource{OwnerID: 7}, false},
		{"owner cancels reservation", owner, ActionReservationCancel, Resource{OwnerID: 7}, true},
		{"other cancels reservation", other, ActionReservationCancel, Resource{OwnerID: 7}, false},
		{"anonymous cancels reservation", nil, ActionReservationCancel, Resource{OwnerID: 7}, false},

		{"admin lists restaurant reservations", admin, ActionReservationList, Resource{}, true},
		{"user lists restaurant reservations", owner, ActionReservationList, Resource{}, false},

		{"anonymous reads catalog", nil, ActionCatalogRead, Resource{}, true},
		{"user reads catalog", owner, ActionCatalogRead, Resource{}, true},
		{"admin reads catalog", admin, ActionCatalogRead, Resource{}, true},

		{"unknown action", admin, Action("bogus"), Resource{}, false},
		{"empty action", nil, Action(""), Resource{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.principal, tt.action, tt.resource)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrDenied)
			}
		})
	}
}

// An admin owning a reservation still cannot edit it through the admin
// role alone: the ownership rule compares IDs, not roles.
func TestAuthorizeOwnershipIsByID(t *testing.T) {
	adminOwner := &Principal{ID: 3, Role: "admin"}
	assert.NoError(t, Authorize(adminOwner, ActionReservationCancel, Resource{OwnerID: 3}))
	assert.ErrorIs(t, Authorize(adminOwner, ActionReservationCancel, Resource{OwnerID: 4}), ErrDenied)
}
