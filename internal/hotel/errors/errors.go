package errors

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidID        = errors.New("invalid id")
	ErrDuplicateRequest = errors.New("duplicate request id")
	ErrDuplicateRoom    = errors.New("duplicate room number")
	ErrGuardHeld        = errors.New("room guard held by another request")
)
