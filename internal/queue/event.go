// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationDecidedEvent is published when an admin accepts or denies a
// reservation.  It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type ReservationDecidedEvent struct {
	ReservationID  uint64 `json:"reservation_id"`
	UserID         uint64 `json:"user_id"`
	RestaurantID   uint64 `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name,omitempty"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	PeopleCount    int    `json:"people_count"`
	Status         string `json:"status"` // accepted | denied
	DecidedAt      string `json:"decided_at"`
}
