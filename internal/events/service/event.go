package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	eventserrors "evently/internal/events/errors"
	"evently/internal/events/repository"
	"evently/internal/events/validator"
	"evently/pkg/config"
	apperrors "evently/pkg/errors"
	"evently/pkg/kafka"
	"evently/pkg/model"
	"evently/pkg/normalize"
)

// maxSlugAttempts bounds the collision retry loop: the base slug plus four
// suffixed candidates.
const maxSlugAttempts = 5

// Publisher pushes notification messages after successful writes. A nil
// publisher disables notifications.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type EventService interface {
	Create(ctx context.Context, input *model.EventInput) (*model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
	GetBySlug(ctx context.Context, slug string) (*model.Event, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Event, int64, error)
	Update(ctx context.Context, id string, updates *model.EventUpdate) (*model.Event, error)
	Delete(ctx context.Context, id string) error
}

type eventService struct {
	repo      repository.EventRepository
	validator *validator.EventValidator
	publisher Publisher
	cfg       *config.Config
}

func NewEventService(
	repo repository.EventRepository,
	validator *validator.EventValidator,
	publisher Publisher,
	cfg *config.Config,
) EventService {
	return &eventService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *eventService) Create(ctx context.Context, input *model.EventInput) (*model.Event, error) {
	event, err := s.normalizeInput(input)
	if err != nil {
		return nil, err
	}

	if err := s.validate(event); err != nil {
		return nil, err
	}

	slug, err := s.generateSlug(ctx, event.Title, "")
	if err != nil {
		return nil, err
	}
	event.Slug = slug

	if err := s.repo.Create(ctx, event); err != nil {
		// Two racing creations can both pass the pre-check; the unique
		// index turns the loser into a conflict rather than a double write.
		if errors.Is(err, eventserrors.ErrDuplicateSlug) {
			return nil, apperrors.Conflict(fmt.Sprintf("Event slug %q already exists", event.Slug))
		}
		s.cfg.Log.Error("Failed to create event", "error", err)
		return nil, apperrors.Internal("Failed to create event", err)
	}

	s.cfg.Log.Info("Event created successfully",
		"id", event.ID,
		"slug", event.Slug,
		"title", event.Title,
	)
	s.notify(ctx, kafka.TypeEventCreated, event.ID, event)
	return event, nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*model.Event, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Event ID cannot be empty")
	}

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err, id)
	}

	return event, nil
}

func (s *eventService) GetBySlug(ctx context.Context, slug string) (*model.Event, error) {
	if slug == "" {
		return nil, apperrors.InvalidInput("Event slug cannot be empty")
	}

	event, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, eventserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Event", slug)
		}
		return nil, apperrors.Internal("Failed to retrieve event", err)
	}

	return event, nil
}

func (s *eventService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Event, int64, error) {
	var count int64
	var events []*model.Event
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count events", "error", errCount)
			errCount = apperrors.Internal("Failed to count events", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		events, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list events", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve events", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return events, count, nil
}

func (s *eventService) Update(ctx context.Context, id string, updates *model.EventUpdate) (*model.Event, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Event ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err, id)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Event update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged, err := s.mergeEventUpdates(existing, updates)
	if err != nil {
		return nil, err
	}

	// The slug is stable: it is recomputed only when the title actually
	// changed or no slug was ever assigned.
	if merged.Title != existing.Title || existing.Slug == "" {
		slug, err := s.generateSlug(ctx, merged.Title, id)
		if err != nil {
			return nil, err
		}
		merged.Slug = slug
	}

	if err := s.validate(merged); err != nil {
		return nil, err
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, eventserrors.ErrDuplicateSlug) {
			return nil, apperrors.Conflict(fmt.Sprintf("Event slug %q already exists", merged.Slug))
		}
		if errors.Is(err, eventserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Event", id)
		}
		s.cfg.Log.Error("Failed to update event", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update event", err)
	}

	s.cfg.Log.Info("Event updated successfully", "id", id, "slug", merged.Slug)
	s.notify(ctx, kafka.TypeEventUpdated, id, merged)
	return merged, nil
}

// Delete removes the event only. Bookings hold a weak reference and are
// not cascade-deleted.
func (s *eventService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Event ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, eventserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Event", id)
		}
		if errors.Is(err, eventserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid event ID format")
		}
		return apperrors.Internal("Failed to delete event", err)
	}

	s.cfg.Log.Info("Event deleted successfully", "id", id)
	s.notify(ctx, kafka.TypeEventDeleted, id, map[string]string{"id": id})
	return nil
}

// --- Helpers ---

// normalizeInput is the pure raw-input-to-record stage: trims and collapses
// every string field, deduplicates the lists and converts date and time to
// their canonical stored forms.
func (s *eventService) normalizeInput(input *model.EventInput) (*model.Event, error) {
	date, err := normalize.CalendarDate(input.Date)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("Invalid date: %v", err))
	}

	clock, err := normalize.ClockTime(input.Time)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("Invalid time: %v", err))
	}

	return &model.Event{
		Title:       normalize.TrimAndCollapse(input.Title),
		Description: normalize.TrimAndCollapse(input.Description),
		Overview:    normalize.TrimAndCollapse(input.Overview),
		ImageURL:    normalize.TrimAndCollapse(input.ImageURL),
		Venue:       normalize.TrimAndCollapse(input.Venue),
		Location:    normalize.TrimAndCollapse(input.Location),
		Date:        date,
		Time:        clock,
		Mode:        normalize.TrimAndCollapse(input.Mode),
		Audience:    normalize.TrimAndCollapse(input.Audience),
		Agenda:      normalize.StringList(input.Agenda),
		Organizer:   normalize.TrimAndCollapse(input.Organizer),
		Tags:        normalize.StringList(input.Tags),
	}, nil
}

// generateSlug derives the base slug from the title and resolves collisions
// by appending a short random suffix, up to maxSlugAttempts candidates. The
// existence check is advisory; the unique index is the source of truth.
func (s *eventService) generateSlug(ctx context.Context, title string, excludeID string) (string, error) {
	base := normalize.Slugify(title)
	candidate := base

	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		exists, err := s.repo.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", apperrors.Internal("Failed to check slug uniqueness", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = base + "-" + normalize.SlugSuffix()
	}

	return "", apperrors.Conflict(fmt.Sprintf("Could not generate a unique slug for %q after %d attempts", title, maxSlugAttempts))
}

func (s *eventService) mergeEventUpdates(existing *model.Event, updates *model.EventUpdate) (*model.Event, error) {
	merged := *existing

	if updates.Title != "" {
		merged.Title = normalize.TrimAndCollapse(updates.Title)
	}
	if updates.Description != "" {
		merged.Description = normalize.TrimAndCollapse(updates.Description)
	}
	if updates.Overview != "" {
		merged.Overview = normalize.TrimAndCollapse(updates.Overview)
	}
	if updates.ImageURL != "" {
		merged.ImageURL = normalize.TrimAndCollapse(updates.ImageURL)
	}
	if updates.Venue != "" {
		merged.Venue = normalize.TrimAndCollapse(updates.Venue)
	}
	if updates.Location != "" {
		merged.Location = normalize.TrimAndCollapse(updates.Location)
	}
	if updates.Date != "" {
		date, err := normalize.CalendarDate(updates.Date)
		if err != nil {
			return nil, apperrors.InvalidInput(fmt.Sprintf("Invalid date: %v", err))
		}
		merged.Date = date
	}
	if updates.Time != "" {
		clock, err := normalize.ClockTime(updates.Time)
		if err != nil {
			return nil, apperrors.InvalidInput(fmt.Sprintf("Invalid time: %v", err))
		}
		merged.Time = clock
	}
	if updates.Mode != "" {
		merged.Mode = normalize.TrimAndCollapse(updates.Mode)
	}
	if updates.Audience != "" {
		merged.Audience = normalize.TrimAndCollapse(updates.Audience)
	}
	if updates.Agenda != nil {
		merged.Agenda = normalize.StringList(*updates.Agenda)
	}
	if updates.Organizer != "" {
		merged.Organizer = normalize.TrimAndCollapse(updates.Organizer)
	}
	if updates.Tags != nil {
		merged.Tags = normalize.StringList(*updates.Tags)
	}

	return &merged, nil
}

func (s *eventService) validate(event *model.Event) error {
	if err := s.validator.Validate(event); err != nil {
		s.cfg.Log.Warn("Event validation failed", "error", err)
		return apperrors.Validation("Event validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *eventService) mapLookupError(err error, id string) error {
	if errors.Is(err, eventserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Event", id)
	}
	if errors.Is(err, eventserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid event ID format")
	}
	return apperrors.Internal("Failed to retrieve event", err)
}

// notify publishes fire-and-forget: a broker hiccup must never fail the
// write that already happened.
func (s *eventService) notify(ctx context.Context, eventType, key string, payload any) {
	if s.publisher == nil {
		return
	}

	msg, err := kafka.NewMessage(eventType, key, payload)
	if err != nil {
		s.cfg.Log.Warn("Failed to build notification", "type", eventType, "error", err)
		return
	}
	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish notification", "type", eventType, "error", err)
	}
}
