package calendar

import (
	"context"
	"fmt"
	"time"

	"shutterbook/pkg/model"
)

// BookingReader is the slice of the booking ledger this package needs.
type BookingReader interface {
	ActiveBookingsInRange(ctx context.Context, resourceID string, start, end time.Time) ([]*model.Booking, error)
}

// LedgerSource derives busy intervals from confirmed bookings. This is the
// mandatory, authoritative source.
type LedgerSource struct {
	bookings BookingReader
}

func NewLedgerSource(bookings BookingReader) *LedgerSource {
	return &LedgerSource{bookings: bookings}
}

func (s *LedgerSource) Name() string {
	return "booking-ledger"
}

func (s *LedgerSource) BusyIntervals(ctx context.Context, resourceID string, start, end time.Time) ([]model.BusyInterval, error) {
	bookings, err := s.bookings.ActiveBookingsInRange(ctx, resourceID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load active bookings: %w", err)
	}

	intervals := make([]model.BusyInterval, 0, len(bookings))
	for _, b := range bookings {
		intervals = append(intervals, model.BusyInterval{
			ResourceID: b.ResourceID,
			Start:      b.SlotStart,
			End:        b.SlotEnd,
			Source:     model.IntervalInternal,
		})
	}
	return intervals, nil
}
