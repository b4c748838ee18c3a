package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	hotelerrors "bookd/internal/hotel/errors"
	"bookd/internal/hotel/repository"
	"bookd/internal/hotel/validator"
	"bookd/pkg/config"
	apperrors "bookd/pkg/errors"
	"bookd/pkg/middleware"
	"bookd/pkg/model"
)

const (
	// How long Hold waits for the per-room guard before giving up. Holds
	// on one room are short, so contention clears in tens of
	// milliseconds.
	guardAcquireAttempts = 5
	guardAcquireBackoff  = 50 * time.Millisecond
)

// LockService is the room-lock engine. It owns the central invariant:
// for any room, locks in {HELD, CONFIRMED} form a non-overlapping family
// of half-open date intervals.
type LockService interface {
	Hold(ctx context.Context, roomID, requestID string, startDate, endDate model.Date) (*model.RoomLock, error)
	Confirm(ctx context.Context, requestID string) (*model.RoomLock, error)
	Release(ctx context.Context, requestID string) (*model.RoomLock, error)
}

type lockService struct {
	locks     repository.LockRepository
	rooms     repository.RoomRepository
	guard     repository.RoomGuard
	validator *validator.HoldValidator
	cfg       *config.Config
	now       func() time.Time
}

func NewLockService(
	locks repository.LockRepository,
	rooms repository.RoomRepository,
	guard repository.RoomGuard,
	holdValidator *validator.HoldValidator,
	cfg *config.Config,
) LockService {
	return &lockService{
		locks:     locks,
		rooms:     rooms,
		guard:     guard,
		validator: holdValidator,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *lockService) Hold(ctx context.Context, roomID, requestID string, startDate, endDate model.Date) (*model.RoomLock, error) {
	input := &validator.HoldInput{
		RequestID: requestID,
		RoomID:    roomID,
		StartDate: startDate,
		EndDate:   endDate,
	}
	if err := s.validator.Validate(input); err != nil {
		s.cfg.Log.Warn("Hold validation failed", "request_id", requestID, "error", err)
		return nil, apperrors.Validation("Hold validation failed", map[string]any{"error": err.Error()})
	}

	// Idempotency: the identity of the request decides, not the payload.
	// A replayed hold returns the existing lock in whatever status it
	// reached, and never reports a conflict.
	if existing, err := s.locks.FindByRequestID(ctx, requestID); err == nil {
		s.cfg.Log.Info("Hold replay, returning existing lock",
			"request_id", requestID,
			"status", existing.Status,
		)
		return existing, nil
	} else if !errors.Is(err, hotelerrors.ErrNotFound) {
		return nil, apperrors.Internal("Failed to look up lock", err)
	}

	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, hotelerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room", roomID)
		}
		return nil, apperrors.Internal("Failed to look up room", err)
	}
	if !room.Available {
		return nil, apperrors.Conflict("Room is not available for booking")
	}

	// Serialize conflict-check + insert per room, closing the
	// check-then-insert race between concurrent holds.
	if err := s.acquireGuard(ctx, roomID); err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.guard.Release(ctx, roomID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release room guard", "room_id", roomID, "error", releaseErr)
		}
	}()

	now := s.now()
	lock := &model.RoomLock{
		ID:            primitive.NewObjectID().Hex(),
		RequestID:     requestID,
		RoomID:        roomID,
		StartDate:     startDate,
		EndDate:       endDate,
		Status:        model.LockHeld,
		CorrelationID: middleware.CorrelationID(ctx),
		CreatedAt:     now,
		UpdatedAt:     now,
		ExpiresAt:     now.Add(s.cfg.LockHoldTTL),
	}

	err = s.locks.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		conflict, err := s.locks.ExistsConflicting(sessCtx, roomID, startDate, endDate)
		if err != nil {
			return apperrors.Internal("Failed to check conflicting locks", err)
		}
		if conflict {
			return apperrors.Conflict("Room is not available for the selected dates")
		}
		return s.locks.Insert(sessCtx, lock)
	})
	if err != nil {
		// Lost an insert race on request_id to a concurrent replay of the
		// same request: the winner's row is the answer.
		if errors.Is(err, hotelerrors.ErrDuplicateRequest) {
			return s.findExisting(ctx, requestID)
		}
		if apperrors.IsAppError(err) {
			if apperrors.IsCode(err, apperrors.CodeConflict) {
				s.cfg.Log.Warn("Hold conflict detected",
					"room_id", roomID,
					"request_id", requestID,
					"start_date", startDate.String(),
					"end_date", endDate.String(),
				)
			}
			return nil, err
		}
		return nil, apperrors.Internal("Failed to create hold", err)
	}

	s.cfg.Log.Info("Room hold created",
		"lock_id", lock.ID,
		"room_id", roomID,
		"request_id", requestID,
		"correlation_id", lock.CorrelationID,
		"expires_at", lock.ExpiresAt,
	)
	return lock, nil
}

func (s *lockService) Confirm(ctx context.Context, requestID string) (*model.RoomLock, error) {
	lock, err := s.findExisting(ctx, requestID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	switch {
	case lock.Status == model.LockConfirmed:
		// Redundant confirm is a no-op.
		return lock, nil
	case lock.Status == model.LockReleased:
		return nil, apperrors.State("Hold already released")
	case lock.Status == model.LockExpired || lock.ExpiredBy(now):
		return nil, apperrors.State("Hold expired")
	}

	updated, err := s.locks.ConfirmHeld(ctx, requestID, now)
	if err != nil {
		return nil, apperrors.Internal("Failed to confirm hold", err)
	}
	if !updated {
		// Lost a race against release or the sweeper; re-read and report
		// the state that won.
		return s.classifyLostConfirm(ctx, requestID, now)
	}

	lock.Status = model.LockConfirmed
	lock.UpdatedAt = now

	if err := s.rooms.IncrementTimesBooked(ctx, lock.RoomID); err != nil {
		// The counter is a statistic; the confirm itself stands.
		s.cfg.Log.Error("Failed to increment times_booked",
			"room_id", lock.RoomID,
			"request_id", requestID,
			"error", err,
		)
	}

	s.cfg.Log.Info("Room hold confirmed",
		"lock_id", lock.ID,
		"room_id", lock.RoomID,
		"request_id", requestID,
		"correlation_id", middleware.CorrelationID(ctx),
	)
	return lock, nil
}

func (s *lockService) Release(ctx context.Context, requestID string) (*model.RoomLock, error) {
	lock, err := s.findExisting(ctx, requestID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	switch lock.Status {
	case model.LockReleased:
		return lock, nil
	case model.LockConfirmed:
		// A late compensation must not undo a confirmed booking. The
		// caller treats this as a benign no-op.
		s.cfg.Log.Info("Release on confirmed lock skipped",
			"request_id", requestID,
			"room_id", lock.RoomID,
		)
		return lock, nil
	case model.LockExpired:
		return nil, apperrors.State("Hold already in final status")
	}

	updated, err := s.locks.ReleaseHeld(ctx, requestID, now)
	if err != nil {
		return nil, apperrors.Internal("Failed to release hold", err)
	}
	if !updated {
		return s.classifyLostRelease(ctx, requestID)
	}

	lock.Status = model.LockReleased
	lock.UpdatedAt = now

	s.cfg.Log.Info("Room hold released",
		"lock_id", lock.ID,
		"room_id", lock.RoomID,
		"request_id", requestID,
		"correlation_id", middleware.CorrelationID(ctx),
	)
	return lock, nil
}

func (s *lockService) findExisting(ctx context.Context, requestID string) (*model.RoomLock, error) {
	lock, err := s.locks.FindByRequestID(ctx, requestID)
	if err != nil {
		if errors.Is(err, hotelerrors.ErrNotFound) {
			return nil, apperrors.NotFound("Hold")
		}
		return nil, apperrors.Internal("Failed to look up lock", err)
	}
	return lock, nil
}

func (s *lockService) classifyLostConfirm(ctx context.Context, requestID string, now time.Time) (*model.RoomLock, error) {
	lock, err := s.findExisting(ctx, requestID)
	if err != nil {
		return nil, err
	}
	switch {
	case lock.Status == model.LockConfirmed:
		return lock, nil
	case lock.Status == model.LockReleased:
		return nil, apperrors.State("Hold already released")
	case lock.Status == model.LockExpired || lock.ExpiredBy(now):
		return nil, apperrors.State("Hold expired")
	}
	return nil, apperrors.Internal("Lock transition raced and could not be classified", nil)
}

func (s *lockService) classifyLostRelease(ctx context.Context, requestID string) (*model.RoomLock, error) {
	lock, err := s.findExisting(ctx, requestID)
	if err != nil {
		return nil, err
	}
	switch lock.Status {
	case model.LockReleased, model.LockConfirmed:
		return lock, nil
	case model.LockExpired:
		return nil, apperrors.State("Hold already in final status")
	}
	return nil, apperrors.Internal("Lock transition raced and could not be classified", nil)
}

func (s *lockService) acquireGuard(ctx context.Context, roomID string) error {
	for attempt := 1; ; attempt++ {
		err := s.guard.Acquire(ctx, roomID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, hotelerrors.ErrGuardHeld) {
			return apperrors.Internal("Failed to acquire room guard", err)
		}
		if attempt == guardAcquireAttempts {
			return apperrors.Conflict("Room is busy with another reservation attempt, please retry")
		}

		timer := time.NewTimer(time.Duration(attempt) * guardAcquireBackoff)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return apperrors.Timeout("Gave up waiting for room guard")
		}
	}
}
