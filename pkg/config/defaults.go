package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "bookd"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultLogLevel = "info"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 << 20 // 1 MiB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultHotelTimeoutMs  = 5000
	DefaultHotelMaxRetries = 3

	DefaultLockHoldTTL       = 15 * time.Minute
	DefaultLockSweepInterval = 30 * time.Second
	DefaultLockRetention     = 30 * 24 * time.Hour

	DefaultKafkaReservationsTopic = "reservation-events"

	DefaultPaginationLimit = 100
)
