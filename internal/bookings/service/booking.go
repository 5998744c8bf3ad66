package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	bookingserrors "evently/internal/bookings/errors"
	"evently/internal/bookings/repository"
	"evently/internal/bookings/validator"
	eventserrors "evently/internal/events/errors"
	"evently/pkg/config"
	apperrors "evently/pkg/errors"
	"evently/pkg/kafka"
	"evently/pkg/model"
	"evently/pkg/normalize"
)

// EventFinder is the slice of the event repository the booking path needs
// for its referential check.
type EventFinder interface {
	FindByID(ctx context.Context, id string) (*model.Event, error)
}

// Publisher pushes notification messages after successful writes. A nil
// publisher disables notifications.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetByEventID(ctx context.Context, eventID string) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	Delete(ctx context.Context, id string) error
}

type bookingService struct {
	repo      repository.BookingRepository
	events    EventFinder
	validator *validator.BookingValidator
	publisher Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	events EventFinder,
	validator *validator.BookingValidator,
	publisher Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		events:    events,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Create books a slot: email normalized and validated, the referenced event
// must exist, and at most one booking may exist per event. The duplicate
// pre-check is an early rejection for a better error message; the unique
// index on event_id is what actually guarantees the invariant.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	booking.Email = normalize.Email(booking.Email)

	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	if _, err := s.events.FindByID(ctx, booking.EventID); err != nil {
		if errors.Is(err, eventserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Event", booking.EventID)
		}
		if errors.Is(err, eventserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid event ID format")
		}
		return apperrors.Internal("Failed to verify event existence", err)
	}

	if err := s.verifyNotBooked(ctx, booking.EventID); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		if errors.Is(err, bookingserrors.ErrDuplicateEvent) {
			return apperrors.Conflict(fmt.Sprintf("Event %s is already booked", booking.EventID))
		}
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"event_id", booking.EventID,
	)
	s.notify(ctx, kafka.TypeBookingCreated, booking.EventID, booking)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetByEventID(ctx context.Context, eventID string) (*model.Booking, error) {
	if eventID == "" {
		return nil, apperrors.InvalidInput("Event ID cannot be empty")
	}

	booking, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", eventID)
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid booking ID format")
		}
		return apperrors.Internal("Failed to delete booking", err)
	}

	s.cfg.Log.Info("Booking deleted successfully", "id", id)
	s.notify(ctx, kafka.TypeBookingDeleted, id, map[string]string{"id": id})
	return nil
}

// --- Helpers ---

func (s *bookingService) verifyNotBooked(ctx context.Context, eventID string) error {
	_, err := s.repo.FindByEventID(ctx, eventID)
	if err == nil {
		return apperrors.Conflict(fmt.Sprintf("Event %s is already booked", eventID))
	}
	if errors.Is(err, bookingserrors.ErrNotFound) {
		return nil
	}
	return apperrors.Internal("Failed to check existing bookings", err)
}

func (s *bookingService) notify(ctx context.Context, eventType, key string, payload any) {
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
