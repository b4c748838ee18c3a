package validator

import (
	"strings"
	"testing"
	"time"

	"bookd/pkg/logger"
	"bookd/pkg/model"
)

func testValidator() *ReservationValidator {
	return NewReservationValidator(logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"}))
}

func pinToday(t *testing.T, d model.Date) {
	t.Helper()
	orig := Today
	Today = func() model.Date { return d }
	t.Cleanup(func() { Today = orig })
}

func TestValidateCreateReservation(t *testing.T) {
	today := model.NewDate(2030, time.June, 15)
	pinToday(t, today)

	tests := []struct {
		name    string
		input   CreateReservationInput
		wantErr string
	}{
		{
			name: "valid with request id",
			input: CreateReservationInput{
				UserID:    "user-1",
				RoomID:    "room-7",
				StartDate: today.AddDays(1),
				EndDate:   today.AddDays(3),
				RequestID: "req-A",
			},
		},
		{
			name: "valid without request id",
			input: CreateReservationInput{
				UserID:    "user-1",
				RoomID:    "room-7",
				StartDate: today.AddDays(1),
				EndDate:   today.AddDays(3),
			},
		},
		{
			name: "missing user",
			input: CreateReservationInput{
				RoomID:    "room-7",
				StartDate: today.AddDays(1),
				EndDate:   today.AddDays(3),
			},
			wantErr: "UserID",
		},
		{
			name: "missing room",
			input: CreateReservationInput{
				UserID:    "user-1",
				StartDate: today.AddDays(1),
				EndDate:   today.AddDays(3),
			},
			wantErr: "RoomID",
		},
		{
			name: "inverted range",
			input: CreateReservationInput{
				UserID:    "user-1",
				RoomID:    "room-7",
				StartDate: today.AddDays(5),
				EndDate:   today.AddDays(2),
			},
			wantErr: "end_date must be after start_date",
		},
		{
			name: "past start",
			input: CreateReservationInput{
				UserID:    "user-1",
				RoomID:    "room-7",
				StartDate: today.AddDays(-3),
				EndDate:   today.AddDays(2),
			},
			wantErr: "start_date cannot be in the past",
		},
		{
			name: "request id too long",
			input: CreateReservationInput{
				UserID:    "user-1",
				RoomID:    "room-7",
				StartDate: today.AddDays(1),
				EndDate:   today.AddDays(3),
				RequestID: strings.Repeat("x", 65),
			},
			wantErr: "RequestID",
		},
	}

	v := testValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.input)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}
