// Package events publishes booking lifecycle notifications. Publishing is
// best-effort: the booking ledger is the source of truth, so a failed emit
// is logged and never rolls back the write that triggered it.
package events

import (
	"context"

	"shutterbook/pkg/kafka"
	"shutterbook/pkg/logger"
	"shutterbook/pkg/model"
)

const (
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"

	eventSource = "shutterbook"
)

type Publisher interface {
	BookingConfirmed(ctx context.Context, booking *model.Booking)
	BookingCancelled(ctx context.Context, booking *model.Booking)
}

type kafkaPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, log *logger.Logger) Publisher {
	return &kafkaPublisher{
		producer: producer,
		log:      log,
	}
}

func (p *kafkaPublisher) BookingConfirmed(ctx context.Context, booking *model.Booking) {
	p.emit(ctx, EventBookingConfirmed, booking)
}

func (p *kafkaPublisher) BookingCancelled(ctx context.Context, booking *model.Booking) {
	p.emit(ctx, EventBookingCancelled, booking)
}

func (p *kafkaPublisher) emit(ctx context.Context, eventType string, booking *model.Booking) {
	msg := kafka.NewMessage().
		WithKey(booking.ID).
		WithValue(booking).
		WithEventType(eventType).
		WithSource(eventSource).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"error", err)
		return
	}

	p.log.Debug("Published booking event",
		"event_type", eventType,
		"booking_id", booking.ID)
}

type noopPublisher struct{}

// NewNoopPublisher is used when no broker is configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) BookingConfirmed(context.Context, *model.Booking) {}
func (noopPublisher) BookingCancelled(context.Context, *model.Booking) {}
