package main

import (
	"context"

	"bookd/internal/hotel/handler"
	"bookd/internal/hotel/repository"
	"bookd/internal/hotel/service"
	"bookd/internal/hotel/sweeper"
	"bookd/internal/hotel/validator"
	"bookd/pkg/app"
	"bookd/pkg/config"
)

const ServiceName = "hotel"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Hotel service")

	lockRepo := repository.NewMongoLockRepository(cfg)
	roomRepo := repository.NewMongoRoomRepository(cfg)
	roomGuard := repository.NewMongoRoomGuard(cfg)
	ensureIndexes(cfg, lockRepo, roomRepo, roomGuard)

	lockService := service.NewLockService(
		lockRepo,
		roomRepo,
		roomGuard,
		validator.NewHoldValidator(cfg.Log),
		cfg,
	)
	roomService := service.NewRoomService(roomRepo, cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewLockHandler(lockService, cfg.Log),
		handler.NewRoomHandler(roomService, cfg.Log),
		handler.NewHealthHandler(cfg.Client.Mongo, cfg.Log),
	)
	serverApp.AddWorker(sweeper.New(lockRepo, cfg.LockSweepInterval, cfg.LockRetention, cfg.Log))
	serverApp.Run()
}

func ensureIndexes(cfg *config.Config, lockRepo repository.LockRepository, roomRepo repository.RoomRepository, roomGuard repository.RoomGuard) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	defer cancel()

	if err := lockRepo.EnsureIndexes(ctx); err != nil {
		cfg.Log.Fatal("Failed to ensure lock indexes", "error", err)
	}
	if err := roomRepo.EnsureIndexes(ctx); err != nil {
		cfg.Log.Fatal("Failed to ensure room indexes", "error", err)
	}
	if err := roomGuard.EnsureIndexes(ctx); err != nil {
		cfg.Log.Fatal("Failed to ensure guard indexes", "error", err)
	}

	cfg.Log.Info("Hotel indexes ensured", "database", cfg.MongoDatabaseName)
}
