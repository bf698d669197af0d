package model

import (
	"time"
)

// AvailabilityRule describes one recurring weekly availability window for a
// bookable resource. Multiple rules may exist per resource/day (split shifts),
// but available rules on the same day must not overlap.
type AvailabilityRule struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ResourceID      string    `json:"resource_id" bson:"resource_id" validate:"required,min=1,max=64"`
	DayOfWeek       int       `json:"day_of_week" bson:"day_of_week" validate:"min=0,max=6"`
	StartTime       string    `json:"start_time" bson:"start_time" validate:"required,valid_time_range"`
	EndTime         string    `json:"end_time" bson:"end_time" validate:"required,valid_time_range"`
	IsAvailable     bool      `json:"is_available" bson:"is_available"`
	BufferBeforeMin int       `json:"buffer_before_min" bson:"buffer_before_min" validate:"min=0,max=480"`
	BufferAfterMin  int       `json:"buffer_after_min" bson:"buffer_after_min" validate:"min=0,max=480"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type AvailabilityRuleUpdate struct {
	DayOfWeek       *int   `json:"day_of_week,omitempty" validate:"omitempty,min=0,max=6"`
	StartTime       string `json:"start_time,omitempty" validate:"omitempty,valid_time_range"`
	EndTime         string `json:"end_time,omitempty" validate:"omitempty,valid_time_range"`
	IsAvailable     *bool  `json:"is_available,omitempty"`
	BufferBeforeMin *int   `json:"buffer_before_min,omitempty" validate:"omitempty,min=0,max=480"`
	BufferAfterMin  *int   `json:"buffer_after_min,omitempty" validate:"omitempty,min=0,max=480"`
}
