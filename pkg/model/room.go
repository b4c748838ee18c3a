package model

import "time"

// Room is the bookable unit on the Hotel side. The lock engine needs only
// its id and availability flag; the rest serves the room registry.
type Room struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty"`
	Number        string    `json:"number" bson:"number" validate:"required,min=1,max=20"`
	Capacity      int       `json:"capacity" bson:"capacity" validate:"required,min=1,max=20"`
	PricePerNight float64   `json:"price_per_night" bson:"price_per_night" validate:"required,gt=0"`
	Available     bool      `json:"available" bson:"available"`
	TimesBooked   int64     `json:"times_booked" bson:"times_booked"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}
