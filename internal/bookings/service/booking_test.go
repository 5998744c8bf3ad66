package service

import (
	"context"
	"testing"
	"time"

	bookingserrors "evently/internal/bookings/errors"
	"evently/internal/bookings/validator"
	eventserrors "evently/internal/events/errors"
	"evently/pkg/config"
	apperrors "evently/pkg/errors"
	"evently/pkg/logger"
	"evently/pkg/model"
)

// Mock repository for testing
type mockBookingRepository struct {
	createFunc        func(ctx context.Context, booking *model.Booking) error
	findByIDFunc      func(ctx context.Context, id string) (*model.Booking, error)
	findByEventIDFunc func(ctx context.Context, eventID string) (*model.Booking, error)
	findAllFunc       func(ctx context.Context, limit int, offset int64) ([]*model.Booking, error)
	countFunc         func(ctx context.Context) (int64, error)
	deleteFunc        func(ctx context.Context, id string) error
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindByEventID(ctx context.Context, eventID string) (*model.Booking, error) {
	if m.findByEventIDFunc != nil {
		return m.findByEventIDFunc(ctx, eventID)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockBookingRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockEventFinder struct {
	findByIDFunc func(ctx context.Context, id string) (*model.Event, error)
}

func (m *mockEventFinder) FindByID(ctx context.Context, id string) (*model.Event, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return &model.Event{ID: id, Title: "Launch Party"}, nil
}

func testConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func newTestService(repo *mockBookingRepository, events *mockEventFinder) *bookingService {
	cfg := testConfig()
	return &bookingService{
		repo:      repo,
		events:    events,
		validator: validator.NewBookingValidator(cfg.Log),
		cfg:       cfg,
	}
}

const eventID = "65f1a2b3c4d5e6f7a8b9c0d1"

func TestCreate_NormalizesEmail(t *testing.T) {
	var created *model.Booking
	repo := &mockBookingRepository{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			created = booking
			return nil
		},
	}
	svc := newTestService(repo, &mockEventFinder{})

	booking := &model.Booking{EventID: eventID, Email: "  Alice@Example.COM "}
	if err := svc.Create(context.Background(), booking); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("Create() never reached the repository")
	}
	if created.Email != "alice@example.com" {
		t.Errorf("email = %q, want %q", created.Email, "alice@example.com")
	}
}

func TestCreate_NonexistentEventNotFound(t *testing.T) {
	events := &mockEventFinder{
		findByIDFunc: func(ctx context.Context, id string) (*model.Event, error) {
			return nil, eventserrors.ErrNotFound
		},
	}
	svc := newTestService(&mockBookingRepository{}, events)

	err := svc.Create(context.Background(), &model.Booking{EventID: eventID, Email: "alice@example.com"})
	if err == nil {
		t.Fatal("Create() expected error, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeNotFound)
	}
}

func TestCreate_AlreadyBookedConflicts(t *testing.T) {
	repo := &mockBookingRepository{
		findByEventIDFunc: func(ctx context.Context, eid string) (*model.Booking, error) {
			return &model.Booking{ID: "existing", EventID: eid}, nil
		},
	}
	svc := newTestService(repo, &mockEventFinder{})

	err := svc.Create(context.Background(), &model.Booking{EventID: eventID, Email: "alice@example.com"})
	if err == nil {
		t.Fatal("Create() expected conflict, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeConflict)
	}
}

func TestCreate_DuplicateKeyConflicts(t *testing.T) {
	// Both racing creations pass the pre-check; the unique index rejects the
	// second insert and the service maps it to a conflict.
	repo := &mockBookingRepository{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			return bookingserrors.ErrDuplicateEvent
		},
	}
	svc := newTestService(repo, &mockEventFinder{})

	err := svc.Create(context.Background(), &model.Booking{EventID: eventID, Email: "alice@example.com"})
	if err == nil {
		t.Fatal("Create() expected conflict, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeConflict)
	}
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		booking *model.Booking
	}{
		{
			name:    "missing email",
			booking: &model.Booking{EventID: eventID},
		},
		{
			name:    "email without dotted domain",
			booking: &model.Booking{EventID: eventID, Email: "alice@localhost"},
		},
		{
			name:    "missing event id",
			booking: &model.Booking{Email: "alice@example.com"},
		},
		{
			name:    "malformed event id",
			booking: &model.Booking{EventID: "not-an-object-id", Email: "alice@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&mockBookingRepository{}, &mockEventFinder{})
			err := svc.Create(context.Background(), tt.booking)
			if err == nil {
				t.Fatal("Create() expected error, got nil")
			}
			if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeValidation {
				t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeValidation)
			}
		})
	}
}

func TestGetByEventID_NotFound(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, &mockEventFinder{})

	_, err := svc.GetByEventID(context.Background(), eventID)
	if err == nil {
		t.Fatal("GetByEventID() expected error, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeNotFound)
	}
}

func TestGetAll_ConcurrentCountAndFind(t *testing.T) {
	repo := &mockBookingRepository{
		countFunc: func(ctx context.Context) (int64, error) {
			time.Sleep(10 * time.Millisecond)
			return 3, nil
		},
		findAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
			time.Sleep(10 * time.Millisecond)
			return []*model.Booking{{ID: "1", EventID: eventID}}, nil
		},
	}
	svc := newTestService(repo, &mockEventFinder{})

	// Run with -race to catch unsynchronized access
	for i := 0; i < 20; i++ {
		bookings, count, err := svc.GetAll(context.Background(), 10, 0)
		if err != nil {
			t.Fatalf("iteration %d: unexpected error: %v", i, err)
		}
		if count != 3 {
			t.Errorf("iteration %d: count = %d, want 3", i, count)
		}
		if len(bookings) != 1 {
			t.Errorf("iteration %d: bookings = %d, want 1", i, len(bookings))
		}
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockBookingRepository{
		deleteFunc: func(ctx context.Context, id string) error {
			return bookingserrors.ErrNotFound
		},
	}
	svc := newTestService(repo, &mockEventFinder{})

	err := svc.Delete(context.Background(), "65f1a2b3c4d5e6f7a8b9c0d2")
	if err == nil {
		t.Fatal("Delete() expected error, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeNotFound)
	}
}
