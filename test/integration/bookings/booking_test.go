package bookings_test

import (
	"net/http"
	"testing"

	"evently/pkg/model"
	"evently/test/integration/testutil"
)

type bookingResponse struct {
	Message string        `json:"message"`
	Booking model.Booking `json:"booking"`
}

type eventResponse struct {
	Message string      `json:"message"`
	Event   model.Event `json:"event"`
}

func createEvent(t *testing.T, client *testutil.Client) model.Event {
	t.Helper()

	resp := client.POSTForm(t, "/api/v1/events", testutil.NewEventFormBuilder().Build())
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("event setup failed: status = %d: %s", resp.StatusCode, resp.Body)
	}

	var body eventResponse
	if err := resp.DecodeJSON(&body); err != nil {
		t.Fatalf("failed to decode event response: %v", err)
	}
	return body.Event
}

func TestBookingLifecycle(t *testing.T) {
	testutil.RequireIntegration(t)

	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	event := createEvent(t, client)

	t.Run("create normalizes email", func(t *testing.T) {
		payload := testutil.NewBookingBuilder(event.ID).
			WithEmail("  Alice@Example.COM ").
			Build()

		resp := client.POST(t, "/api/v1/bookings", payload)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want %d: %s", resp.StatusCode, http.StatusCreated, resp.Body)
		}

		var body bookingResponse
		if err := resp.DecodeJSON(&body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body.Booking.Email != "alice@example.com" {
			t.Errorf("email = %q, want %q", body.Booking.Email, "alice@example.com")
		}
	})

	t.Run("second booking for the same event conflicts", func(t *testing.T) {
		payload := testutil.NewBookingBuilder(event.ID).
			WithEmail("bob@example.com").
			Build()

		resp := client.POST(t, "/api/v1/bookings", payload)
		if resp.StatusCode != http.StatusConflict {
			t.Errorf("status = %d, want %d: %s", resp.StatusCode, http.StatusConflict, resp.Body)
		}

		if count := mongo.CountDocuments(t, testutil.BookingsCollection); count != 1 {
			t.Errorf("bookings stored = %d, want 1", count)
		}
	})

	t.Run("booking a nonexistent event is not found", func(t *testing.T) {
		payload := testutil.NewBookingBuilder("65f1a2b3c4d5e6f7a8b9c0ff").Build()

		resp := client.POST(t, "/api/v1/bookings", payload)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want %d: %s", resp.StatusCode, http.StatusNotFound, resp.Body)
		}
	})

	t.Run("malformed email rejected", func(t *testing.T) {
		payload := testutil.NewBookingBuilder(event.ID).
			WithEmail("not-an-email").
			Build()

		resp := client.POST(t, "/api/v1/bookings", payload)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want %d: %s", resp.StatusCode, http.StatusBadRequest, resp.Body)
		}
	})

	t.Run("fetch by event id", func(t *testing.T) {
		resp := client.GET(t, "/api/v1/bookings/event/"+event.ID)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d: %s", resp.StatusCode, http.StatusOK, resp.Body)
		}

		var body bookingResponse
		if err := resp.DecodeJSON(&body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body.Booking.EventID != event.ID {
			t.Errorf("event_id = %q, want %q", body.Booking.EventID, event.ID)
		}
	})

	t.Run("deleting the event leaves the booking behind", func(t *testing.T) {
		resp := client.DELETE(t, "/api/v1/events/id/"+event.ID)
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("status = %d, want %d: %s", resp.StatusCode, http.StatusNoContent, resp.Body)
		}

		if count := mongo.CountDocuments(t, testutil.BookingsCollection); count != 1 {
			t.Errorf("bookings stored = %d, want 1 after event delete", count)
		}
	})
}
