package calendar

import (
	"context"
	"time"

	"shutterbook/pkg/model"
)

// StaticSource serves a fixed set of busy intervals. It stands in for the
// external feed in development and tests, selected through the same
// construction-time injection as the real one.
type StaticSource struct {
	name      string
	intervals []model.BusyInterval
}

func NewStaticSource(name string, intervals []model.BusyInterval) *StaticSource {
	return &StaticSource{
		name:      name,
		intervals: intervals,
	}
}

func (s *StaticSource) Name() string {
	return s.name
}

func (s *StaticSource) BusyIntervals(_ context.Context, resourceID string, start, end time.Time) ([]model.BusyInterval, error) {
	var matched []model.BusyInterval
	for _, interval := range s.intervals {
		if interval.ResourceID != resourceID {
			continue
		}
		if interval.Overlaps(start, end) {
			matched = append(matched, interval)
		}
	}
	return matched, nil
}
