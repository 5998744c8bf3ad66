package model

import "time"

type Event struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Title       string    `json:"title" bson:"title" validate:"required,min=2,max=200"`
	Slug        string    `json:"slug,omitempty" bson:"slug" validate:"omitempty,slug"`
	Description string    `json:"description" bson:"description" validate:"required,min=2,max=5000"`
	Overview    string    `json:"overview" bson:"overview" validate:"required,min=2,max=1000"`
	ImageURL    string    `json:"image" bson:"image" validate:"omitempty,url"`
	Venue       string    `json:"venue" bson:"venue" validate:"required,min=2,max=200"`
	Location    string    `json:"location" bson:"location" validate:"required,min=2,max=200"`
	Date        time.Time `json:"date" bson:"date" validate:"required"`
	Time        string    `json:"time" bson:"time" validate:"required,clock"`
	Mode        string    `json:"mode" bson:"mode" validate:"required,min=2,max=50"`
	Audience    string    `json:"audience" bson:"audience" validate:"required,min=2,max=200"`
	Agenda      []string  `json:"agenda" bson:"agenda" validate:"required,min=1,max=50,dive,required"`
	Organizer   string    `json:"organizer" bson:"organizer" validate:"required,min=2,max=200"`
	Tags        []string  `json:"tags" bson:"tags" validate:"required,min=1,max=20,dive,required"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// EventUpdate carries a partial update; nil or empty fields are left
// untouched when merged onto the stored event.
type EventUpdate struct {
	Title       string    `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	Description string    `json:"description,omitempty" validate:"omitempty,min=2,max=5000"`
	Overview    string    `json:"overview,omitempty" validate:"omitempty,min=2,max=1000"`
	ImageURL    string    `json:"image,omitempty" validate:"omitempty,url"`
	Venue       string    `json:"venue,omitempty" validate:"omitempty,min=2,max=200"`
	Location    string    `json:"location,omitempty" validate:"omitempty,min=2,max=200"`
	Date        string    `json:"date,omitempty" validate:"omitempty"`
	Time        string    `json:"time,omitempty" validate:"omitempty"`
	Mode        string    `json:"mode,omitempty" validate:"omitempty,min=2,max=50"`
	Audience    string    `json:"audience,omitempty" validate:"omitempty,min=2,max=200"`
	Agenda      *[]string `json:"agenda,omitempty" validate:"omitempty,min=1,max=50,dive,required"`
	Organizer   string    `json:"organizer,omitempty" validate:"omitempty,min=2,max=200"`
	Tags        *[]string `json:"tags,omitempty" validate:"omitempty,min=1,max=20,dive,required"`
}

// EventInput is the raw creation payload as it arrives from the form: date
// and time still free-form text, lists untrimmed. The event service turns
// it into a normalized Event or rejects it.
type EventInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Overview    string   `json:"overview"`
	ImageURL    string   `json:"image"`
	Venue       string   `json:"venue"`
	Location    string   `json:"location"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Mode        string   `json:"mode"`
	Audience    string   `json:"audience"`
	Agenda      []string `json:"agenda"`
	Organizer   string   `json:"organizer"`
	Tags        []string `json:"tags"`
}
