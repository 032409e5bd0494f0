package model

// Reservation status values.  A reservation starts out pending; an admin
// decision moves it to accepted or denied, both of which are terminal.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDenied   = "denied"
)

// Reservation mirrors the 'reservations' table.  Date is stored as
// YYYY-MM-DD and Time as HH:MM:SS; both travel as strings on the wire.
type Reservation struct {
	ID           uint64 `json:"reservation_id"`
	UserID       uint64 `json:"user_id"`
	RestaurantID uint64 `json:"restaurant_id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	PeopleCount  int    `json:"people_count"`
	Status       string `json:"status"`
}

// transition pairs define the complete reservation state machine.  No
// transition leaves accepted or denied.
var validTransitions = map[[2]string]bool{
	{StatusPending, StatusAccepted}: true,
	{StatusPending, StatusDenied}:   true,
}

// ValidStatus reports whether s is one of the known status values.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusAccepted || s == StatusDenied
}

// TerminalStatus reports whether s permits no further transitions.
func TerminalStatus(s string) bool {
	return s == StatusAccepted || s == StatusDenied
}

// CanTransition reports whether a reservation may move from one status to
// another.  Identity transitions are not valid: re-deciding an already
// accepted reservation is rejected like any other move out of a terminal
// state.
func CanTransition(from, to string) bool {
	return validTransitions[[2]string{from, to}]
}
