package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestErrorCodesMapToStatuses(t *testing.T) {
	tests := []struct {
		err    *AppError
		code   string
		status int
	}{
		{NotFound("Hold"), CodeNotFound, http.StatusNotFound},
		{Validation("bad input", nil), CodeValidation, http.StatusBadRequest},
		{InvalidInput("bad limit"), CodeInvalidInput, http.StatusBadRequest},
		{Conflict("overlap"), CodeConflict, http.StatusConflict},
		{State("already released"), CodeState, http.StatusConflict},
		{Internal("boom", nil), CodeInternal, http.StatusInternalServerError},
		{Timeout("gave up"), CodeTimeout, http.StatusGatewayTimeout},
		{Unavailable("Hotel service"), CodeUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		if tt.err.Code != tt.code {
			t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
		}
		if tt.err.StatusCode() != tt.status {
			t.Errorf("%s: expected status %d, got %d", tt.code, tt.status, tt.err.StatusCode())
		}
	}
}

func TestConflictAndStateShareStatusButNotCode(t *testing.T) {
	conflict := Conflict("overlap")
	state := State("wrong transition")

	if conflict.StatusCode() != state.StatusCode() {
		t.Error("conflict and state errors both surface as 409")
	}
	if conflict.Code == state.Code {
		t.Error("conflict and state errors must stay distinguishable by code")
	}
}

func TestIsCode(t *testing.T) {
	err := Conflict("overlap")
	if !IsCode(err, CodeConflict) {
		t.Error("IsCode should match the error's code")
	}
	if IsCode(err, CodeState) {
		t.Error("IsCode should not match a different code")
	}
	if IsCode(errors.New("plain"), CodeConflict) {
		t.Error("IsCode should reject non-AppErrors")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Internal("write failed", cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause must be reachable via errors.Is")
	}
}

func TestAsAppError(t *testing.T) {
	if got := AsAppError(Conflict("overlap")); got.Code != CodeConflict {
		t.Errorf("expected pass-through, got %v", got)
	}
	if got := AsAppError(errors.New("plain")); got.Code != CodeInternal {
		t.Errorf("expected INTERNAL_ERROR wrapper, got %v", got)
	}
}
