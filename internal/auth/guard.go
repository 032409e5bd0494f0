// Package auth implements the authorization policy as a single decision
// function.  Every protected handler calls Authorize with the authenticated
// principal, the action it is about to perform and the resource it targets,
// so the whole policy lives in one place and is testable without HTTP or a
// database.
package auth

import "errors"

// ErrDenied is returned for every refused decision.  Handlers translate it
// into an HTTP 403 response.
var ErrDenied = errors.New("forbidden")

// Principal is the identity extracted from a verified access token.
type Principal struct {
	ID    uint64
	Email string
	Role  string
}

// Action enumerates everything a request can ask the system to do.
type Action string

const (
	ActionRestaurantCreate    Action = "restaurant.create"
	ActionRestaurantUpdate    Action = "restaurant.update"
	ActionRestaurantDelete    Action = "restaurant.delete"
	ActionRestaurantAdminList Action = "restaurant.admin_list"
	ActionMenuItemCreate      Action = "menu_item.create"

	ActionReservationDecide Action = "reservation.decide" // accept or deny
	ActionReservationRead   Action = "reservation.read"
	ActionReservationEdit   Action = "reservation.edit"
	ActionReservationCancel Action = "reservation.cancel"
	ActionReservationList   Action = "reservation.list_for_restaurant" // admin view

	ActionCatalogRead Action = "catalog.read"
)

// Resource carries the ownership information a decision may need.  For
// catalog actions it is zero-valued.
type Resource struct {
	OwnerID uint64
}

// Authorize decides whether a principal may perform an action on a resource.
// Rules are evaluated in order and the first match wins; anything that
// matches no rule is denied.  A nil principal means the request carried no
// credential, which only the public catalog reads accept.
func Authorize(p *Principal, act Action, res Resource) error {
	switch act {
	// 1. Catalog writes and the admin-side listings require the admin
	// role.  Menu-item creation belongs here too: it is an admin mutation
	// of the catalog.
	case ActionRestaurantCreate, ActionRestaurantUpdate, ActionRestaurantDelete,
		ActionRestaurantAdminList, ActionMenuItemCreate, ActionReservationList:
		if p != nil && p.Role == "admin" {
			return nil
		}
		return ErrDenied

	// 2. Only an admin may move a reservation out of pending.
	case ActionReservationDecide:
		if p != nil && p.Role == "admin" {
			return nil
		}
		return ErrDenied

	// 3. Reading, editing or cancelling a reservation is reserved for the
	// owning user.
	case ActionReservationRead, ActionReservationEdit, ActionReservationCancel:
		if p != nil && p.ID == res.OwnerID {
			return nil
		}
		return ErrDenied

	// 4. Catalog reads are public; no credential required.
	case ActionCatalogRead:
		return nil
	}

	// 5. Default deny.
	return ErrDenied
}
