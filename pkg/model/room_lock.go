package model

import "time"

type LockStatus string

const (
	LockHeld      LockStatus = "HELD"
	LockConfirmed LockStatus = "CONFIRMED"
	LockReleased  LockStatus = "RELEASED"
	LockExpired   LockStatus = "EXPIRED"
)

// RoomLock is one entry in the Hotel side's interval-exclusion family.
// Invariant: for a given room, locks in {HELD, CONFIRMED} never overlap.
type RoomLock struct {
	ID            string     `json:"id,omitempty" bson:"_id,omitempty"`
	RequestID     string     `json:"request_id" bson:"request_id"`
	RoomID        string     `json:"room_id" bson:"room_id"`
	StartDate     Date       `json:"start_date" bson:"start_date"`
	EndDate       Date       `json:"end_date" bson:"end_date"`
	Status        LockStatus `json:"status" bson:"status"`
	CorrelationID string     `json:"-" bson:"correlation_id,omitempty"`
	CreatedAt     time.Time  `json:"-" bson:"created_at"`
	UpdatedAt     time.Time  `json:"-" bson:"updated_at"`
	ExpiresAt     time.Time  `json:"-" bson:"expires_at"`
}

// Blocking reports whether the lock currently excludes other holds on its
// interval.
func (l *RoomLock) Blocking() bool {
	return l.Status == LockHeld || l.Status == LockConfirmed
}

// ExpiredBy reports whether a HELD lock has outlived its TTL. Only HELD
// locks expire; CONFIRMED locks block their interval indefinitely.
func (l *RoomLock) ExpiredBy(now time.Time) bool {
	return l.Status == LockHeld && now.After(l.ExpiresAt)
}

// TerminalStatus reports whether the lock is in a status that accepts no
// further transitions.
func (l *RoomLock) TerminalStatus() bool {
	return l.Status == LockReleased || l.Status == LockExpired
}
