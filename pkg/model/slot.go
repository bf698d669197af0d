package model

import (
	"time"
)

type SlotStatus string

const (
	SlotOpen   SlotStatus = "open"
	SlotHeld   SlotStatus = "held"
	SlotBooked SlotStatus = "booked"
)

// BookingSlot is a derived, fixed-duration bookable window. Slots are
// recomputed on every availability query and never persisted on their own.
type BookingSlot struct {
	ResourceID string     `json:"resource_id"`
	Date       string     `json:"date"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    time.Time  `json:"end_time"`
	Status     SlotStatus `json:"status"`
}
