package main

import (
	"context"

	"shutterbook/internal/availability"
	bookinghandler "shutterbook/internal/bookings/handler"
	bookingrepository "shutterbook/internal/bookings/repository"
	bookingservice "shutterbook/internal/bookings/service"
	bookingvalidator "shutterbook/internal/bookings/validator"
	"shutterbook/internal/calendar"
	"shutterbook/internal/events"
	rulehandler "shutterbook/internal/rules/handler"
	rulerepository "shutterbook/internal/rules/repository"
	ruleservice "shutterbook/internal/rules/service"
	rulevalidator "shutterbook/internal/rules/validator"
	"shutterbook/pkg/app"
	"shutterbook/pkg/config"
	"shutterbook/pkg/kafka"
)

const ServiceName = "booking"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	cfg.SetMongo()

	cfg.Log.Info("Starting booking service")
	bookingService, ruleService := initServices(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		bookinghandler.NewBookingHandler(bookingService, cfg.Log),
		rulehandler.NewRuleHandler(ruleService, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config) (bookingservice.BookingService, ruleservice.RuleService) {
	ruleRepo := rulerepository.NewMongoRuleRepository(cfg)
	ruleService := ruleservice.NewRuleService(
		ruleRepo,
		rulevalidator.NewRuleValidator(cfg.Log),
		cfg,
	)

	ledger := bookingrepository.NewMongoBookingLedger(cfg)
	generator := availability.NewGenerator(cfg.SlotGranularity, cfg.MaxRangeDays)
	conflicts := calendar.NewComposite(
		calendar.NewLedgerSource(ledger),
		cfg.ExternalCalendarTimeout,
		cfg.Log,
		externalSources(cfg)...,
	)

	bookingService := bookingservice.NewBookingService(
		ledger,
		ruleRepo,
		generator,
		conflicts,
		bookingvalidator.NewBookingValidator(cfg.Log),
		newPublisher(cfg),
		cfg.Log,
	)

	cfg.Log.Info("Booking service initialized",
		"database", cfg.MongoDatabaseName,
		"calendar_source", cfg.CalendarSource,
		"slot_granularity", cfg.SlotGranularity)
	return bookingService, ruleService
}

func externalSources(cfg *config.Config) []calendar.ConflictSource {
	switch cfg.CalendarSource {
	case config.CalendarSourceGoogle:
		source, err := calendar.NewGoogleSource(context.Background(), calendar.GoogleConfig{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			TokenJSON:    cfg.GoogleTokenJSON,
			CalendarID:   cfg.GoogleCalendarID,
		})
		if err != nil {
			cfg.Log.Fatal("Failed to initialize Google Calendar source", "error", err)
		}
		return []calendar.ConflictSource{source}
	case config.CalendarSourceStatic:
		return []calendar.ConflictSource{calendar.NewStaticSource("static-calendar", nil)}
	default:
		return nil
	}
}

func newPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("No Kafka brokers configured, booking events disabled")
		return events.NewNoopPublisher()
	}

	producer, err := kafka.NewProducer(kafka.Config{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaBookingTopic,
	})
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka producer", "error", err)
	}
	return events.NewKafkaPublisher(producer, cfg.Log)
}
