package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestOverlaps_StrictHalfOpen(t *testing.T) {
	base := NewDate(2030, time.March, 10)

	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     Date
		want                           bool
	}{
		{"identical", base, base.AddDays(2), base, base.AddDays(2), true},
		{"contained", base, base.AddDays(4), base.AddDays(1), base.AddDays(2), true},
		{"partial overlap", base, base.AddDays(2), base.AddDays(1), base.AddDays(3), true},
		{"adjacent, a before b", base, base.AddDays(2), base.AddDays(2), base.AddDays(4), false},
		{"adjacent, b before a", base.AddDays(2), base.AddDays(4), base, base.AddDays(2), false},
		{"disjoint", base, base.AddDays(1), base.AddDays(3), base.AddDays(4), false},
		{"single-night inside", base, base.AddDays(3), base.AddDays(1), base.AddDays(2), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
				t.Errorf("Overlaps(%s,%s,%s,%s) = %v, want %v",
					tt.aStart, tt.aEnd, tt.bStart, tt.bEnd, got, tt.want)
			}
			// Overlap is symmetric.
			if got := Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd); got != tt.want {
				t.Errorf("Overlaps is not symmetric for %s", tt.name)
			}
		})
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2030, time.July, 4)

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"2030-07-04"` {
		t.Errorf("unexpected wire format: %s", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Errorf("round trip changed the date: %v != %v", back, d)
	}
}

func TestDate_UnmarshalRejectsGarbage(t *testing.T) {
	for _, raw := range []string{`"04/07/2030"`, `"2030-13-01"`, `42`, `"yesterday"`} {
		var d Date
		if err := json.Unmarshal([]byte(raw), &d); err == nil {
			t.Errorf("expected %s to be rejected", raw)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2030-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2030 || d.Month() != time.January || d.Day() != 31 {
		t.Errorf("unexpected date: %v", d)
	}

	if _, err := ParseDate("2030-1-31"); err == nil {
		t.Error("expected non-padded date to be rejected")
	}
}

func TestRoomLock_ExpiredBy(t *testing.T) {
	now := time.Now().UTC()

	held := &RoomLock{Status: LockHeld, ExpiresAt: now.Add(-time.Second)}
	if !held.ExpiredBy(now) {
		t.Error("a HELD lock past expires_at is expired")
	}

	live := &RoomLock{Status: LockHeld, ExpiresAt: now.Add(time.Minute)}
	if live.ExpiredBy(now) {
		t.Error("a HELD lock before expires_at is not expired")
	}

	confirmed := &RoomLock{Status: LockConfirmed, ExpiresAt: now.Add(-time.Hour)}
	if confirmed.ExpiredBy(now) {
		t.Error("CONFIRMED locks never expire")
	}
}
