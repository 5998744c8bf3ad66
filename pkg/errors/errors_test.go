package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		appErr     *AppError
		wantCode   string
		wantStatus int
	}{
		{
			name:       "invalid input maps to 400",
			appErr:     InvalidInput("title cannot be empty"),
			wantCode:   CodeInvalidInput,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "validation maps to 400",
			appErr:     Validation("event validation failed", nil),
			wantCode:   CodeValidation,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not found maps to 404",
			appErr:     NotFound("Event"),
			wantCode:   CodeNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "conflict maps to 409",
			appErr:     Conflict("event is already booked"),
			wantCode:   CodeConflict,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "internal maps to 500",
			appErr:     Internal("insert failed", errors.New("socket closed")),
			wantCode:   CodeInternal,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.appErr.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, tt.appErr.Code)
			}
			if tt.appErr.StatusCode() != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, tt.appErr.StatusCode())
			}
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			appErr:   NotFound("Booking"),
			expected: "NOT_FOUND: Booking not found",
		},
		{
			name:     "with underlying error",
			appErr:   Internal("failed to create event", errors.New("connection reset")),
			expected: "INTERNAL_ERROR: failed to create event (caused by: connection reset)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Internal("wrapped", originalErr)

	if unwrapped := errors.Unwrap(appErr); unwrapped != originalErr {
		t.Errorf("Unwrap() should return original error")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := Conflict("duplicate slug")
	if got := AsAppError(appErr); got != appErr {
		t.Errorf("AsAppError should return the same AppError unchanged")
	}

	plain := errors.New("driver error")
	converted := AsAppError(plain)
	if converted.Code != CodeInternal {
		t.Errorf("expected plain error to convert to %s, got %s", CodeInternal, converted.Code)
	}
	if !errors.Is(converted, plain) {
		t.Errorf("converted error should wrap the original")
	}

	wrapped := fmt.Errorf("repo: %w", NotFoundWithID("Event", "abc"))
	if got := AsAppError(wrapped); got.Code != CodeNotFound {
		t.Errorf("expected wrapped AppError to be unwrapped, got code %s", got.Code)
	}
}

func TestNotFoundWithID_Details(t *testing.T) {
	appErr := NotFoundWithID("Event", "66f0a1")
	if appErr.Details["id"] != "66f0a1" {
		t.Errorf("expected id detail to be preserved, got %v", appErr.Details["id"])
	}
	if appErr.Details["resource"] != "Event" {
		t.Errorf("expected resource detail to be preserved, got %v", appErr.Details["resource"])
	}
}
