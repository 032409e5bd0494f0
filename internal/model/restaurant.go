package model

// Restaurant mirrors the 'restaurants' table.  ImageURL is an opaque
// reference produced at upload time; the server never inspects the bytes it
// points to.
type Restaurant struct {
	ID          uint64  `json:"restaurant_id"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Description string  `json:"description"`
	ImageURL    *string `json:"image_url,omitempty"`
}
