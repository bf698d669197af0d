package model

import (
	"time"
)

const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Booking is the ledger record for a reserved slot. Bookings are never
// physically deleted; cancellation is a status transition that frees the slot.
type Booking struct {
	ID          string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ResourceID  string     `json:"resource_id" bson:"resource_id" validate:"required,min=1,max=64"`
	SlotStart   time.Time  `json:"slot_start" bson:"slot_start" validate:"required"`
	SlotEnd     time.Time  `json:"slot_end" bson:"slot_end" validate:"required,gtfield=SlotStart"`
	ClientRef   string     `json:"client_ref" bson:"client_ref" validate:"required,min=1,max=120"`
	Status      string     `json:"status" bson:"status" validate:"required,oneof=confirmed cancelled"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at" validate:"omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty" bson:"cancelled_at,omitempty" validate:"omitempty"`
}
