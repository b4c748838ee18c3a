package main

import (
	"context"

	"bookd/internal/booking/handler"
	"bookd/internal/booking/repository"
	"bookd/internal/booking/service"
	"bookd/internal/booking/validator"
	"bookd/pkg/app"
	"bookd/pkg/client"
	"bookd/pkg/config"
	"bookd/pkg/kafka"
)

const ServiceName = "booking"

func main() {
	cfg := config.Load(ServiceName)
	if cfg.HotelBaseURL == "" {
		cfg.Log.Fatal("HOTEL_BASE_URL must be set for the booking service")
	}

	cfg.SetMongo()

	cfg.Log.Info("Starting Booking service")
	reservationService := initServices(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewReservationHandler(reservationService, cfg.Log),
		handler.NewHealthHandler(cfg.Client.Mongo, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config) service.ReservationService {
	reservationRepo := repository.NewMongoReservationRepository(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	defer cancel()
	if err := reservationRepo.EnsureIndexes(ctx); err != nil {
		cfg.Log.Fatal("Failed to ensure reservation indexes", "error", err)
	}

	hotelClient := client.NewHotelClient(cfg.HotelBaseURL, cfg.HotelTimeout, cfg.HotelMaxRetries)

	var events service.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaReservationsTopic)
		if err != nil {
			cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
		}
		events = producer
		cfg.Log.Info("Reservation event publishing enabled", "topic", cfg.KafkaReservationsTopic)
	} else {
		cfg.Log.Info("Reservation event publishing disabled, no Kafka brokers configured")
	}

	reservationService := service.NewReservationService(
		reservationRepo,
		hotelClient,
		validator.NewReservationValidator(cfg.Log),
		events,
		cfg,
	)

	cfg.Log.Info("Booking service initialized",
		"database", cfg.MongoDatabaseName,
		"hotel_base_url", cfg.HotelBaseURL,
	)
	return reservationService
}
