package failure_test

import (
	"errors"
	"net/http"
	"resto/shared/failure"
	"testing"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestPredefinedFailures(t *testing.T) {
	tests := []struct {
		name    string
		failure *failure.Failure
		code    int
		message string
	}{
		{
			name:    "InvalidPageParam",
			failure: failure.InvalidPageParam,
			code:    http.StatusBadRequest,
			message: "invalid page parameter",
		},
		{
			name:    "InvalidLimitParam",
			failure: failure.InvalidLimitParam,
			code:    http.StatusBadRequest,
			message: "invalid limit parameter",
		},
		{
			name:    "ForbiddenError",
			failure: failure.ForbiddenError,
			code:    http.StatusForbidden,
			message: "You don't have the required permissions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.failure.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, tt.failure.Code)
			}
			if tt.failure.Message != tt.message {
				t.Errorf("expected message to be %s, got %s", tt.message, tt.failure.Message)
			}
		})
	}
}

func TestBadRequest(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected *failure.Failure
	}{
		{
			name:     "with error",
			input:    errors.New("validation failed"),
			expected: &failure.Failure{Code: http.StatusBadRequest, Message: "validation failed"},
		},
		{
			name:     "with nil error",
			input:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.BadRequest(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", result)
				}

				return
			}

			var fail *failure.Failure
			if !errors.As(result, &fail) {
				t.Fatalf("expected *failure.Failure, got %T", result)
			}

			if fail.Code != tt.expected.Code {
				t.Errorf("expected code %d, got %d", tt.expected.Code, fail.Code)
			}

			if fail.Message != tt.expected.Message {
				t.Errorf("expected message %s, got %s", tt.expected.Message, fail.Message)
			}
		})
	}
}

func TestBadRequestFromString(t *testing.T) {
	result := failure.BadRequestFromString("party size too large")

	if failure.GetCode(result) != http.StatusBadRequest {
		t.Errorf("expected code %d, got %d", http.StatusBadRequest, failure.GetCode(result))
	}

	if result.Error() != "party size too large" {
		t.Errorf("expected message 'party size too large', got %s", result.Error())
	}
}

func TestUnauthorized(t *testing.T) {
	result := failure.Unauthorized("unauthorized")

	if failure.GetCode(result) != http.StatusUnauthorized {
		t.Errorf("expected code %d, got %d", http.StatusUnauthorized, failure.GetCode(result))
	}
}

func TestInternalError(t *testing.T) {
	if failure.InternalError(nil) != nil {
		t.Error("expected nil for nil error")
	}

	result := failure.InternalError(errors.New("boom"))
	if failure.GetCode(result) != http.StatusInternalServerError {
		t.Errorf("expected code %d, got %d", http.StatusInternalServerError, failure.GetCode(result))
	}
}

func TestNotFound(t *testing.T) {
	result := failure.NotFound("booking not found")

	if failure.GetCode(result) != http.StatusNotFound {
		t.Errorf("expected code %d, got %d", http.StatusNotFound, failure.GetCode(result))
	}

	if result.Error() != "booking not found" {
		t.Errorf("expected message 'booking not found', got %s", result.Error())
	}
}

func TestConflict(t *testing.T) {
	result := failure.Conflict("table number 7 already exists")

	if failure.GetCode(result) != http.StatusConflict {
		t.Errorf("expected code %d, got %d", http.StatusConflict, failure.GetCode(result))
	}
}

func TestTablesUnavailable(t *testing.T) {
	result := failure.TablesUnavailable([]string{"3", "7"})

	if failure.GetCode(result) != http.StatusConflict {
		t.Errorf("expected code %d, got %d", http.StatusConflict, failure.GetCode(result))
	}

	expected := "table(s) 3, 7 already booked for this time slot"
	if result.Error() != expected {
		t.Errorf("expected message %q, got %q", expected, result.Error())
	}
}

func TestForbidden(t *testing.T) {
	result := failure.Forbidden("admins only")

	if failure.GetCode(result) != http.StatusForbidden {
		t.Errorf("expected code %d, got %d", http.StatusForbidden, failure.GetCode(result))
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    failure.NotFound("missing"),
			expected: http.StatusNotFound,
		},
		{
			name:     "plain error falls back to 500",
			input:    errors.New("boom"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := failure.GetCode(tt.input); code != tt.expected {
				t.Errorf("expected code %d, got %d", tt.expected, code)
			}
		})
	}
}
