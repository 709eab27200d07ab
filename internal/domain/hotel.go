package domain

import "time"

type Hotel struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HotelInput carries the writable fields of a hotel; create and update both
// overwrite name and address as a whole.
type HotelInput struct {
	Name    string `json:"name" validate:"required,max=255"`
	Address string `json:"address" validate:"required"`
}
