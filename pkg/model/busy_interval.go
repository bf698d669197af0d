package model

import (
	"time"
)

type IntervalSource string

const (
	IntervalInternal IntervalSource = "internal"
	IntervalExternal IntervalSource = "external"
)

// BusyInterval is a normalized view over anything that blocks a slot:
// a confirmed booking or an event from an external calendar feed.
// Read-only to the availability pipeline.
type BusyInterval struct {
	ResourceID string         `json:"resource_id"`
	Start      time.Time      `json:"start"`
	End        time.Time      `json:"end"`
	Source     IntervalSource `json:"source"`
}

// Overlaps reports whether the interval has a non-zero intersection with
// [start, end). Touching boundaries do not count.
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	return b.Start.Before(end) && b.End.After(start)
}
