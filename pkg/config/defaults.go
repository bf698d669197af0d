package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "shutterbook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultSlotGranularity = 30 * time.Minute
	DefaultMaxRangeDays    = 365

	// CalendarSourceNone disables the external feed entirely; availability is
	// computed from the booking ledger alone.
	CalendarSourceNone   = "none"
	CalendarSourceGoogle = "google"
	CalendarSourceStatic = "static"

	DefaultCalendarSource          = CalendarSourceNone
	DefaultExternalCalendarTimeout = 3 * time.Second
	DefaultGoogleCalendarID        = "primary"

	DefaultKafkaBookingTopic = "booking-events"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
