package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"shutterbook/internal/availability"
	bookingerrors "shutterbook/internal/bookings/errors"
	"shutterbook/internal/bookings/repository"
	"shutterbook/internal/bookings/validator"
	"shutterbook/internal/calendar"
	"shutterbook/internal/events"
	apperrors "shutterbook/pkg/errors"
	"shutterbook/pkg/logger"
	"shutterbook/pkg/model"
)

// RuleSource is the slice of the rules context this service reads.
type RuleSource interface {
	ListByResource(ctx context.Context, resourceID string) ([]model.AvailabilityRule, error)
}

// ConflictQuerier merges busy intervals across all configured sources.
type ConflictQuerier interface {
	BusyIntervals(ctx context.Context, resourceID string, start, end time.Time) ([]model.BusyInterval, []calendar.SourceWarning, error)
}

// AvailabilityResult carries the computed slots plus degradation signals so
// callers can tell a quiet calendar from a blind one.
type AvailabilityResult struct {
	ResourceID string                   `json:"resource_id"`
	Slots      []model.BookingSlot      `json:"slots"`
	Degraded   bool                     `json:"degraded"`
	Warnings   []calendar.SourceWarning `json:"warnings,omitempty"`
}

type BookingService interface {
	GetAvailability(ctx context.Context, resourceID string, start, end time.Time) (*AvailabilityResult, error)
	RequestBooking(ctx context.Context, booking *model.Booking) error
	CancelBooking(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
}

type bookingService struct {
	ledger    repository.BookingLedger
	rules     RuleSource
	generator *availability.Generator
	conflicts ConflictQuerier
	validator *validator.BookingValidator
	publisher events.Publisher
	log       *logger.Logger
}

func NewBookingService(
	ledger repository.BookingLedger,
	rules RuleSource,
	generator *availability.Generator,
	conflicts ConflictQuerier,
	v *validator.BookingValidator,
	publisher events.Publisher,
	log *logger.Logger,
) BookingService {
	return &bookingService{
		ledger:    ledger,
		rules:     rules,
		generator: generator,
		conflicts: conflicts,
		validator: v,
		publisher: publisher,
		log:       log,
	}
}

func (s *bookingService) GetAvailability(ctx context.Context, resourceID string, start, end time.Time) (*AvailabilityResult, error) {
	resourceID = strings.TrimSpace(resourceID)
	if resourceID == "" {
		return nil, apperrors.InvalidInput("resource_id is required")
	}

	rules, err := s.rules.ListByResource(ctx, resourceID)
	if err != nil {
		return nil, apperrors.Internal("failed to load availability rules", err)
	}

	slots, err := s.generator.Generate(resourceID, rules, start, end)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidRange) || errors.Is(err, availability.ErrRangeTooLarge) {
			return nil, apperrors.InvalidInput(err.Error())
		}
		return nil, apperrors.Internal("failed to generate slots", err)
	}

	busy, warnings, err := s.conflicts.BusyIntervals(ctx, resourceID, start, end)
	if err != nil {
		return nil, apperrors.Internal("failed to resolve busy intervals", err)
	}

	return &AvailabilityResult{
		ResourceID: resourceID,
		Slots:      availability.Filter(slots, busy),
		Degraded:   len(warnings) > 0,
		Warnings:   warnings,
	}, nil
}

func (s *bookingService) RequestBooking(ctx context.Context, booking *model.Booking) error {
	// The ledger assigns the document ID; a caller-supplied one would be
	// stored as a raw string and never match ObjectID lookups again.
	booking.ID = ""
	booking.ResourceID = strings.TrimSpace(booking.ResourceID)
	booking.ClientRef = strings.TrimSpace(booking.ClientRef)
	booking.SlotStart = booking.SlotStart.UTC()
	booking.SlotEnd = booking.SlotEnd.UTC()
	booking.Status = model.BookingConfirmed

	if err := s.validator.Validate(booking); err != nil {
		return apperrors.Validation(err.Error(), nil)
	}

	if err := s.verifySlotAlignment(ctx, booking); err != nil {
		return err
	}

	if err := s.ledger.Reserve(ctx, booking); err != nil {
		if errors.Is(err, bookingerrors.ErrSlotTaken) {
			s.log.Info("Slot reservation lost race",
				"resource_id", booking.ResourceID,
				"slot_start", booking.SlotStart)
			return apperrors.Conflict("slot already has an active booking")
		}
		return apperrors.Internal("failed to reserve slot", err)
	}

	s.log.Info("Booking confirmed",
		"booking_id", booking.ID,
		"resource_id", booking.ResourceID,
		"slot_start", booking.SlotStart,
		"client_ref", booking.ClientRef)
	s.publisher.BookingConfirmed(ctx, booking)
	return nil
}

// verifySlotAlignment regenerates the slots of the requested day and demands
// an exact boundary match. Intervals are never rounded to the nearest slot.
func (s *bookingService) verifySlotAlignment(ctx context.Context, booking *model.Booking) error {
	rules, err := s.rules.ListByResource(ctx, booking.ResourceID)
	if err != nil {
		return apperrors.Internal("failed to load availability rules", err)
	}

	day := booking.SlotStart.Truncate(24 * time.Hour)
	slots, err := s.generator.Generate(booking.ResourceID, rules, day, day.AddDate(0, 0, 1))
	if err != nil {
		return apperrors.Internal("failed to generate slots", err)
	}

	for _, slot := range slots {
		if slot.StartTime.Equal(booking.SlotStart) && slot.EndTime.Equal(booking.SlotEnd) {
			return nil
		}
	}
	return apperrors.InvalidInput(bookingerrors.ErrInvalidSlot.Error())
}

func (s *bookingService) CancelBooking(ctx context.Context, id string) error {
	booking, transitioned, err := s.ledger.Cancel(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, bookingerrors.ErrNotFound):
			return apperrors.NotFoundWithID("booking", id)
		case errors.Is(err, bookingerrors.ErrInvalidID):
			return apperrors.InvalidInput(err.Error())
		default:
			return apperrors.Internal("failed to cancel booking", err)
		}
	}

	if transitioned {
		s.log.Info("Booking cancelled",
			"booking_id", booking.ID,
			"resource_id", booking.ResourceID,
			"slot_start", booking.SlotStart)
		s.publisher.BookingCancelled(ctx, booking)
	}
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.ledger.FindByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, bookingerrors.ErrNotFound):
			return nil, apperrors.NotFoundWithID("booking", id)
		case errors.Is(err, bookingerrors.ErrInvalidID):
			return nil, apperrors.InvalidInput(err.Error())
		default:
			return nil, apperrors.Internal("failed to find booking", err)
		}
	}
	return booking, nil
}
