package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	bookingerrors "bookd/internal/booking/errors"
	"bookd/internal/booking/repository"
	"bookd/internal/booking/validator"
	"bookd/pkg/config"
	apperrors "bookd/pkg/errors"
	"bookd/pkg/model"
)

// HotelGateway is the wire surface the saga drives. Implemented by
// client.HotelClient; calls return nil on 2xx and a classified AppError
// otherwise. Retries and timeouts live below this interface.
type HotelGateway interface {
	Hold(ctx context.Context, roomID, requestID string, startDate, endDate model.Date, correlationID string) error
	Confirm(ctx context.Context, roomID, requestID, correlationID string) error
	Release(ctx context.Context, roomID, requestID, correlationID string) error
	ListRooms(ctx context.Context, correlationID string) ([]model.Room, error)
}

// ReservationService is the saga orchestrator. Create drives every
// reservation it inserts to a terminal status before returning. A replay,
// or a caller that loses the insert race, gets the stored row unchanged,
// which is still PENDING while the original request's saga runs.
type ReservationService interface {
	Create(ctx context.Context, input *validator.CreateReservationInput) (*model.Reservation, error)
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	ListByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Reservation, int64, error)
	RoomSuggestions(ctx context.Context) ([]model.Room, error)
}

type reservationService struct {
	repo      repository.ReservationRepository
	hotel     HotelGateway
	validator *validator.ReservationValidator
	events    EventPublisher
	cfg       *config.Config
}

func NewReservationService(
	repo repository.ReservationRepository,
	hotel HotelGateway,
	reservationValidator *validator.ReservationValidator,
	events EventPublisher,
	cfg *config.Config,
) ReservationService {
	return &reservationService{
		repo:      repo,
		hotel:     hotel,
		validator: reservationValidator,
		events:    events,
		cfg:       cfg,
	}
}

func (s *reservationService) Create(ctx context.Context, input *validator.CreateReservationInput) (*model.Reservation, error) {
	if err := s.validator.Validate(input); err != nil {
		s.cfg.Log.Warn("Reservation validation failed", "error", err)
		return nil, apperrors.Validation("Reservation validation failed", map[string]any{"error": err.Error()})
	}

	requestID := input.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	// Idempotency probe: a replay sees the stored outcome of the
	// original request and triggers zero hotel calls.
	if existing, err := s.repo.FindByRequestID(ctx, requestID); err == nil {
		s.cfg.Log.Info("Reservation replay, returning existing",
			"request_id", requestID,
			"id", existing.ID,
			"status", existing.Status,
		)
		return existing, nil
	} else if !errors.Is(err, bookingerrors.ErrNotFound) {
		return nil, apperrors.Internal("Failed to look up reservation", err)
	}

	reservation := &model.Reservation{
		ID:            primitive.NewObjectID().Hex(),
		RequestID:     requestID,
		UserID:        input.UserID,
		RoomID:        input.RoomID,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		Status:        model.ReservationPending,
		CorrelationID: "booking-" + uuid.New().String(),
	}

	if err := s.repo.Insert(ctx, reservation); err != nil {
		// Lost the unique-index race to a concurrent duplicate; its row
		// is the answer.
		if errors.Is(err, bookingerrors.ErrDuplicateRequest) {
			winner, findErr := s.repo.FindByRequestID(ctx, requestID)
			if findErr != nil {
				return nil, apperrors.Internal("Failed to read duplicate reservation", findErr)
			}
			return winner, nil
		}
		return nil, apperrors.Internal("Failed to create reservation", err)
	}

	s.cfg.Log.Info("Reservation PENDING created",
		"id", reservation.ID,
		"request_id", requestID,
		"correlation_id", reservation.CorrelationID,
	)

	// The PENDING row is the commit point: from here the saga must reach
	// a terminal status even if the client disconnects, so the forward
	// path runs on a context detached from the request's cancellation.
	sagaCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.sagaBudget())
	defer cancel()

	if err := s.executeSaga(sagaCtx, reservation); err != nil {
		s.compensate(sagaCtx, reservation, err)
	}

	s.publishOutcome(sagaCtx, reservation)
	return reservation, nil
}

// executeSaga drives the forward path: hold, then confirm, then the local
// terminal write.
func (s *reservationService) executeSaga(ctx context.Context, reservation *model.Reservation) error {
	if err := s.hotel.Hold(ctx, reservation.RoomID, reservation.RequestID,
		reservation.StartDate, reservation.EndDate, reservation.CorrelationID); err != nil {
		return err
	}
	s.cfg.Log.Info("Room hold successful",
		"request_id", reservation.RequestID,
		"room_id", reservation.RoomID,
		"correlation_id", reservation.CorrelationID,
	)

	if err := s.hotel.Confirm(ctx, reservation.RoomID, reservation.RequestID, reservation.CorrelationID); err != nil {
		return err
	}
	s.cfg.Log.Info("Room confirm successful",
		"request_id", reservation.RequestID,
		"room_id", reservation.RoomID,
		"correlation_id", reservation.CorrelationID,
	)

	s.finalize(ctx, reservation, model.ReservationConfirmed)
	return nil
}

// compensate releases the hold and cancels the reservation. A failed
// release is logged and swallowed: the hotel's expiration sweeper frees
// the interval within hold_ttl + sweep_interval.
func (s *reservationService) compensate(ctx context.Context, reservation *model.Reservation, cause error) {
	s.cfg.Log.Error("Reservation saga failed, compensating",
		"request_id", reservation.RequestID,
		"correlation_id", reservation.CorrelationID,
		"error", cause,
	)

	if err := s.hotel.Release(ctx, reservation.RoomID, reservation.RequestID, reservation.CorrelationID); err != nil {
		s.cfg.Log.Error("Compensation release failed, sweeper will expire the hold",
			"request_id", reservation.RequestID,
			"correlation_id", reservation.CorrelationID,
			"error", err,
		)
	} else {
		s.cfg.Log.Info("Compensation release successful",
			"request_id", reservation.RequestID,
			"correlation_id", reservation.CorrelationID,
		)
	}

	s.finalize(ctx, reservation, model.ReservationCancelled)
}

func (s *reservationService) finalize(ctx context.Context, reservation *model.Reservation, status string) {
	updated, err := s.repo.UpdateStatusIfPending(ctx, reservation.ID, status)
	if err != nil {
		s.cfg.Log.Error("Failed to persist terminal reservation status",
			"id", reservation.ID,
			"status", status,
			"error", err,
		)
	} else if !updated {
		s.cfg.Log.Error("Reservation was not PENDING at terminal write",
			"id", reservation.ID,
			"status", status,
		)
	}
	reservation.Status = status

	s.cfg.Log.Info("Reservation reached terminal status",
		"id", reservation.ID,
		"request_id", reservation.RequestID,
		"status", status,
		"correlation_id", reservation.CorrelationID,
	)
}

// sagaBudget bounds the whole forward-plus-compensation path: three calls,
// each worth maxRetries attempts with backoff between them.
func (s *reservationService) sagaBudget() time.Duration {
	perCall := time.Duration(s.cfg.HotelMaxRetries)*(s.cfg.HotelTimeout+2*time.Second) + time.Second
	return 3 * perCall
}

func (s *reservationService) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", id)
		}
		return nil, apperrors.Internal("Failed to retrieve reservation", err)
	}
	return reservation, nil
}

func (s *reservationService) ListByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Reservation, int64, error) {
	if userID == "" {
		return nil, 0, apperrors.InvalidInput("user_id is required")
	}

	reservations, err := s.repo.FindByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list reservations", err)
	}

	count, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to count reservations", err)
	}

	return reservations, count, nil
}
