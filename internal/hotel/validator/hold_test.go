package validator

import (
	"strings"
	"testing"
	"time"

	"bookd/pkg/logger"
	"bookd/pkg/model"
)

func testValidator() *HoldValidator {
	return NewHoldValidator(logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"}))
}

func pinToday(t *testing.T, d model.Date) {
	t.Helper()
	orig := Today
	Today = func() model.Date { return d }
	t.Cleanup(func() { Today = orig })
}

func TestValidateHold(t *testing.T) {
	today := model.NewDate(2030, time.June, 15)
	pinToday(t, today)

	tests := []struct {
		name    string
		input   HoldInput
		wantErr string
	}{
		{
			name: "valid",
			input: HoldInput{
				RequestID: "req-A",
				RoomID:    "room-7",
				StartDate: today.AddDays(1),
				EndDate:   today.AddDays(3),
			},
		},
		{
			name: "today is a valid start",
			input: HoldInput{
				RequestID: "req-A",
				RoomID:    "room-7",
				StartDate: today,
				EndDate:   today.AddDays(1),
			},
		},
		{
			name: "missing request id",
			input: HoldInput{
				RoomID:    "room-7",
				StartDate: today.AddDays(1),
				EndDate:   today.AddDays(3),
			},
			wantErr: "RequestID",
		},
		{
			name: "missing dates",
			input: HoldInput{
				RequestID: "req-A",
				RoomID:    "room-7",
			},
			wantErr: "required",
		},
		{
			name: "start equals end",
			input: HoldInput{
				RequestID: "req-A",
				RoomID:    "room-7",
				StartDate: today.AddDays(1),
				EndDate:   today.AddDays(1),
			},
			wantErr: "end_date must be after start_date",
		},
		{
			name: "start after end",
			input: HoldInput{
				RequestID: "req-A",
				RoomID:    "room-7",
				StartDate: today.AddDays(3),
				EndDate:   today.AddDays(1),
			},
			wantErr: "end_date must be after start_date",
		},
		{
			name: "start in the past",
			input: HoldInput{
				RequestID: "req-A",
				RoomID:    "room-7",
				StartDate: today.AddDays(-1),
				EndDate:   today.AddDays(3),
			},
			wantErr: "start_date cannot be in the past",
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
