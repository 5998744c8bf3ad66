package testutil

// EventFormBuilder assembles the multipart creation form for an event.
type EventFormBuilder struct {
	fields map[string][]string
}

func NewEventFormBuilder() *EventFormBuilder {
	return &EventFormBuilder{
		fields: map[string][]string{
			"title":       {"Launch Party"},
			"description": {"The annual product launch."},
			"overview":    {"An evening with the whole team."},
			"venue":       {"Main Hall"},
			"location":    {"Tel Aviv"},
			"date":        {"2026-09-14"},
			"time":        {"14:30"},
			"mode":        {"in-person"},
			"audience":    {"everyone"},
			"agenda":      {"Doors open", "Keynote"},
			"organizer":   {"Evently Team"},
			"tags":        {"launch", "party"},
		},
	}
}

func (b *EventFormBuilder) WithTitle(title string) *EventFormBuilder {
	b.fields["title"] = []string{title}
	return b
}

func (b *EventFormBuilder) WithDate(date string) *EventFormBuilder {
	b.fields["date"] = []string{date}
	return b
}

func (b *EventFormBuilder) WithTime(clock string) *EventFormBuilder {
	b.fields["time"] = []string{clock}
	return b
}

func (b *EventFormBuilder) WithField(key string, values ...string) *EventFormBuilder {
	b.fields[key] = values
	return b
}

func (b *EventFormBuilder) Without(key string) *EventFormBuilder {
	delete(b.fields, key)
	return b
}

func (b *EventFormBuilder) Build() map[string][]string {
	out := make(map[string][]string, len(b.fields))
	for k, v := range b.fields {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// BookingBuilder assembles the JSON creation payload for a booking.
type BookingBuilder struct {
	payload map[string]any
}

func NewBookingBuilder(eventID string) *BookingBuilder {
	return &BookingBuilder{
		payload: map[string]any{
			"event_id": eventID,
			"email":    "alice@example.com",
		},
	}
}

func (b *BookingBuilder) WithEmail(email string) *BookingBuilder {
	b.payload["email"] = email
	return b
}

func (b *BookingBuilder) Build() map[string]any {
	return b.payload
}
