package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort = "PORT"

	EnvLogLevel = "LOG_LEVEL"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvHotelBaseURL    = "HOTEL_BASE_URL"
	EnvHotelTimeoutMs  = "HOTEL_TIMEOUT_MS"
	EnvHotelMaxRetries = "HOTEL_MAX_RETRIES"

	EnvLockHoldTTL       = "LOCK_HOLD_TTL"
	EnvLockSweepInterval = "LOCK_SWEEP_INTERVAL"
	EnvLockRetention     = "LOCK_RETENTION"

	EnvKafkaBrokers           = "KAFKA_BROKERS"
	EnvKafkaReservationsTopic = "KAFKA_RESERVATIONS_TOPIC"
)
