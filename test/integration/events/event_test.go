package events_test

import (
	"net/http"
	"testing"

	"evently/pkg/model"
	"evently/test/integration/testutil"
)

type eventResponse struct {
	Message string      `json:"message"`
	Event   model.Event `json:"event"`
}

type eventListResponse struct {
	Message    string        `json:"message"`
	Events     []model.Event `json:"events"`
	TotalCount int64         `json:"total_count"`
	Limit      int           `json:"limit"`
	Offset     int64         `json:"offset"`
}

func TestEventLifecycle(t *testing.T) {
	testutil.RequireIntegration(t)

	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	var created model.Event

	t.Run("create normalizes date time and slug", func(t *testing.T) {
		form := testutil.NewEventFormBuilder().
			WithTitle("  Re:  Launch   Party!!!  ").
			WithTime("2:30 pm").
			Build()

		resp := client.POSTForm(t, "/api/v1/events", form)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want %d: %s", resp.StatusCode, http.StatusCreated, resp.Body)
		}

		var body eventResponse
		if err := resp.DecodeJSON(&body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		created = body.Event

		if created.Slug != "re-launch-party" {
			t.Errorf("slug = %q, want %q", created.Slug, "re-launch-party")
		}
		if created.Time != "14:30" {
			t.Errorf("time = %q, want %q", created.Time, "14:30")
		}
		if created.ID == "" {
			t.Error("created event has no ID")
		}
	})

	t.Run("second event with same title gets suffixed slug", func(t *testing.T) {
		form := testutil.NewEventFormBuilder().
			WithTitle("Re: Launch Party").
			Build()

		resp := client.POSTForm(t, "/api/v1/events", form)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want %d: %s", resp.StatusCode, http.StatusCreated, resp.Body)
		}

		var body eventResponse
		if err := resp.DecodeJSON(&body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body.Event.Slug == created.Slug {
			t.Errorf("slug %q collides with the first event", body.Event.Slug)
		}
	})

	t.Run("fetch by slug round trips", func(t *testing.T) {
		resp := client.GET(t, "/api/v1/events/slug/"+created.Slug)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d: %s", resp.StatusCode, http.StatusOK, resp.Body)
		}

		var body eventResponse
		if err := resp.DecodeJSON(&body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body.Event.ID != created.ID {
			t.Errorf("id = %q, want %q", body.Event.ID, created.ID)
		}
	})

	t.Run("list returns both events", func(t *testing.T) {
		resp := client.GET(t, "/api/v1/events")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d: %s", resp.StatusCode, http.StatusOK, resp.Body)
		}

		var body eventListResponse
		if err := resp.DecodeJSON(&body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body.TotalCount != 2 {
			t.Errorf("total_count = %d, want 2", body.TotalCount)
		}
	})

	t.Run("update without title change keeps slug", func(t *testing.T) {
		resp := client.PATCH(t, "/api/v1/events/id/"+created.ID, map[string]any{
			"venue": "Side Hall",
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d: %s", resp.StatusCode, http.StatusOK, resp.Body)
		}

		var body eventResponse
		if err := resp.DecodeJSON(&body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body.Event.Slug != created.Slug {
			t.Errorf("slug = %q, want unchanged %q", body.Event.Slug, created.Slug)
		}
		if body.Event.Venue != "Side Hall" {
			t.Errorf("venue = %q, want %q", body.Event.Venue, "Side Hall")
		}
	})

	t.Run("invalid time rejected", func(t *testing.T) {
		form := testutil.NewEventFormBuilder().
			WithTitle("Broken Clock").
			WithTime("25:00").
			Build()

		resp := client.POSTForm(t, "/api/v1/events", form)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want %d: %s", resp.StatusCode, http.StatusBadRequest, resp.Body)
		}
	})

	t.Run("delete removes the event", func(t *testing.T) {
		resp := client.DELETE(t, "/api/v1/events/id/"+created.ID)
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("status = %d, want %d: %s", resp.StatusCode, http.StatusNoContent, resp.Body)
		}

		resp = client.GET(t, "/api/v1/events/id/"+created.ID)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want %d after delete", resp.StatusCode, http.StatusNotFound)
		}
	})
}
