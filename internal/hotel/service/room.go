package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	hotelerrors "bookd/internal/hotel/errors"
	"bookd/internal/hotel/repository"
	"bookd/pkg/config"
	apperrors "bookd/pkg/errors"
	"bookd/pkg/model"
)

// RoomService is the registry the lock engine checks rooms against.
type RoomService interface {
	Create(ctx context.Context, room *model.Room) error
	GetByID(ctx context.Context, id string) (*model.Room, error)
	GetAll(ctx context.Context) ([]*model.Room, error)
}

type roomService struct {
	repo     repository.RoomRepository
	validate *validator.Validate
	cfg      *config.Config
}

func NewRoomService(repo repository.RoomRepository, cfg *config.Config) RoomService {
	return &roomService{
		repo:     repo,
		validate: validator.New(),
		cfg:      cfg,
	}
}

func (s *roomService) Create(ctx context.Context, room *model.Room) error {
	if err := s.validate.Struct(room); err != nil {
		s.cfg.Log.Warn("Room validation failed", "error", err)
		return apperrors.Validation("Room validation failed", map[string]any{"error": err.Error()})
	}

	room.ID = primitive.NewObjectID().Hex()
	room.TimesBooked = 0

	if err := s.repo.Insert(ctx, room); err != nil {
		if errors.Is(err, hotelerrors.ErrDuplicateRoom) {
			return apperrors.Conflict("Room number already exists")
		}
		return apperrors.Internal("Failed to create room", err)
	}

	s.cfg.Log.Info("Room created", "id", room.ID, "number", room.Number)
	return nil
}

func (s *roomService) GetByID(ctx context.Context, id string) (*model.Room, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Room ID cannot be empty")
	}

	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, hotelerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room", id)
		}
		return nil, apperrors.Internal("Failed to retrieve room", err)
	}
	return room, nil
}

func (s *roomService) GetAll(ctx context.Context) ([]*model.Room, error) {
	rooms, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to list rooms", err)
	}
	return rooms, nil
}
