package validator

import (
	"strings"
	"testing"

	"evently/pkg/logger"
	"evently/pkg/model"
)

func newTestValidator() *BookingValidator {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return NewBookingValidator(log)
}

func TestValidate(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name      string
		booking   *model.Booking
		wantError bool
		errorMsg  string
	}{
		{
			name: "valid booking",
			booking: &model.Booking{
				EventID: "65f1a2b3c4d5e6f7a8b9c0d1",
				Email:   "alice@example.com",
			},
			wantError: false,
		},
		{
			name: "subaddressed email",
			booking: &model.Booking{
				EventID: "65f1a2b3c4d5e6f7a8b9c0d1",
				Email:   "alice+events@example.co.uk",
			},
			wantError: false,
		},
		{
			name: "missing event id",
			booking: &model.Booking{
				Email: "alice@example.com",
			},
			wantError: true,
			errorMsg:  "EventID",
		},
		{
			name: "event id not an object id",
			booking: &model.Booking{
				EventID: "launch-party",
				Email:   "alice@example.com",
			},
			wantError: true,
			errorMsg:  "EventID",
		},
		{
			name: "missing email",
			booking: &model.Booking{
				EventID: "65f1a2b3c4d5e6f7a8b9c0d1",
			},
			wantError: true,
			errorMsg:  "Email",
		},
		{
			name: "email without at sign",
			booking: &model.Booking{
				EventID: "65f1a2b3c4d5e6f7a8b9c0d1",
				Email:   "alice.example.com",
			},
			wantError: true,
			errorMsg:  "Email",
		},
		{
			name: "email without dotted domain",
			booking: &model.Booking{
				EventID: "65f1a2b3c4d5e6f7a8b9c0d1",
				Email:   "alice@localhost",
			},
			wantError: true,
			errorMsg:  "Email",
		},
		{
			name: "uppercase email rejected before normalization",
			booking: &model.Booking{
				EventID: "65f1a2b3c4d5e6f7a8b9c0d1",
				Email:   "Alice@Example.com",
			},
			wantError: true,
			errorMsg:  "Email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.booking)
			if (err != nil) != tt.wantError {
				t.Fatalf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
			if tt.wantError && tt.errorMsg != "" {
				if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("expected error to mention %q, got %q", tt.errorMsg, err.Error())
				}
			}
		})
	}
}
