package model

import "time"

// Booking holds a non-owning reference to an Event. At most one booking may
// exist per event; the unique index on event_id is the authority for that
// invariant.
type Booking struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	EventID   string    `json:"event_id" bson:"event_id" validate:"required,mongodb"`
	Email     string    `json:"email" bson:"email" validate:"required,email_addr"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}
