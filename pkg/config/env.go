package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvSlotGranularity = "SLOT_GRANULARITY"
	EnvMaxRangeDays    = "MAX_RANGE_DAYS"

	EnvCalendarSource          = "CALENDAR_SOURCE"
	EnvExternalCalendarTimeout = "EXTERNAL_CALENDAR_TIMEOUT"
	EnvGoogleCalendarID        = "GOOGLE_CALENDAR_ID"
	EnvGoogleClientID          = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret      = "GOOGLE_CLIENT_SECRET"
	EnvGoogleToken             = "GOOGLE_TOKEN_JSON"

	EnvKafkaBrokers      = "KAFKA_BROKERS"
	EnvKafkaBookingTopic = "KAFKA_BOOKING_TOPIC"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
