package availability

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"shutterbook/pkg/model"
)

var (
	ErrInvalidRange  = errors.New("range start must not be after range end")
	ErrRangeTooLarge = errors.New("date range exceeds the allowed maximum")
)

// Generator expands recurring weekly availability rules over a date range
// into discrete bookable slots. It is pure: rules come in, slots come out.
type Generator struct {
	granularity  time.Duration
	maxRangeDays int
}

func NewGenerator(granularity time.Duration, maxRangeDays int) *Generator {
	return &Generator{
		granularity:  granularity,
		maxRangeDays: maxRangeDays,
	}
}

func (g *Generator) Granularity() time.Duration {
	return g.granularity
}

// Generate produces every slot between rangeStart and rangeEnd. Buffers are
// subtracted from each rule window before partitioning; a trailing window
// remainder shorter than the granularity is discarded. Days without a
// matching rule yield no slots.
func (g *Generator) Generate(resourceID string, rules []model.AvailabilityRule, rangeStart, rangeEnd time.Time) ([]model.BookingSlot, error) {
	if rangeStart.After(rangeEnd) {
		return nil, ErrInvalidRange
	}
	if rangeEnd.Sub(rangeStart) > time.Duration(g.maxRangeDays)*24*time.Hour {
		return nil, ErrRangeTooLarge
	}

	byWeekday, err := groupRules(rules)
	if err != nil {
		return nil, err
	}

	rangeStart = rangeStart.UTC()
	rangeEnd = rangeEnd.UTC()

	var slots []model.BookingSlot
	firstDay := truncateToDay(rangeStart)
	lastDay := truncateToDay(rangeEnd)
	for day := firstDay; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		for _, rule := range byWeekday[int(day.Weekday())] {
			slots = append(slots, g.slotsForRule(resourceID, rule, day, rangeStart, rangeEnd)...)
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.Before(slots[j].StartTime)
	})
	return slots, nil
}

func (g *Generator) slotsForRule(resourceID string, rule boundedRule, day, rangeStart, rangeEnd time.Time) []model.BookingSlot {
	windowStart := day.Add(rule.windowOpen)
	windowEnd := day.Add(rule.windowClose)

	var slots []model.BookingSlot
	for start := windowStart; !start.Add(g.granularity).After(windowEnd); start = start.Add(g.granularity) {
		end := start.Add(g.granularity)
		// Slots are atomic: anything sticking out of the requested range is
		// skipped whole, never truncated.
		if start.Before(rangeStart) || end.After(rangeEnd) {
			continue
		}
		slots = append(slots, model.BookingSlot{
			ResourceID: resourceID,
			Date:       day.Format("2006-01-02"),
			StartTime:  start,
			EndTime:    end,
			Status:     model.SlotOpen,
		})
	}
	return slots
}

// boundedRule carries a rule's buffered window as offsets from midnight.
type boundedRule struct {
	model.AvailabilityRule
	windowOpen  time.Duration
	windowClose time.Duration
}

func groupRules(rules []model.AvailabilityRule) (map[int][]boundedRule, error) {
	byWeekday := make(map[int][]boundedRule)
	for _, r := range rules {
		if !r.IsAvailable {
			continue
		}

		open, err := ParseClock(r.StartTime)
		if err != nil {
			return nil, fmt.Errorf("rule %s: invalid start_time: %w", r.ID, err)
		}
		close, err := ParseClock(r.EndTime)
		if err != nil {
			return nil, fmt.Errorf("rule %s: invalid end_time: %w", r.ID, err)
		}

		byWeekday[r.DayOfWeek] = append(byWeekday[r.DayOfWeek], boundedRule{
			AvailabilityRule: r,
			windowOpen:       open + time.Duration(r.BufferBeforeMin)*time.Minute,
			windowClose:      close - time.Duration(r.BufferAfterMin)*time.Minute,
		})
	}

	for _, dayRules := range byWeekday {
		sort.Slice(dayRules, func(i, j int) bool {
			return dayRules[i].windowOpen < dayRules[j].windowOpen
		})
	}
	return byWeekday, nil
}

// ParseClock converts an "HH:MM" wall-clock string into an offset from
// midnight.
func ParseClock(clock string) (time.Duration, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
