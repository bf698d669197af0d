package availability

import (
	"shutterbook/pkg/model"
)

// Filter marks every slot that intersects any busy interval as booked.
// A partial overlap removes the whole slot; slots are never truncated.
// Internal and external intervals are unioned, never ranked, so applying the
// same busy set twice yields the same result.
func Filter(slots []model.BookingSlot, busy []model.BusyInterval) []model.BookingSlot {
	if len(busy) == 0 {
		return slots
	}

	filtered := make([]model.BookingSlot, len(slots))
	copy(filtered, slots)

	for i := range filtered {
		for _, interval := range busy {
			if interval.Overlaps(filtered[i].StartTime, filtered[i].EndTime) {
				filtered[i].Status = model.SlotBooked
				break
			}
		}
	}
	return filtered
}

// OpenOnly drops everything but open slots. Handy for callers that only want
// what is actually bookable.
func OpenOnly(slots []model.BookingSlot) []model.BookingSlot {
	open := make([]model.BookingSlot, 0, len(slots))
	for _, s := range slots {
		if s.Status == model.SlotOpen {
			open = append(open, s)
		}
	}
	return open
}
