package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrSlotTaken signals a lost race: another confirmed booking already
	// holds the requested slot. Expected under concurrent demand.
	ErrSlotTaken = errors.New("slot already has an active booking")

	ErrInvalidSlot = errors.New("requested interval does not match a bookable slot")
)
