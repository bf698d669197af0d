package availability

import (
	"errors"
	"testing"
	"time"

	"shutterbook/pkg/model"
)

// 2026-01-05 is a Monday.
var monday = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

func mondayRule(start, end string, bufBefore, bufAfter int) model.AvailabilityRule {
	return model.AvailabilityRule{
		ID:              "rule-1",
		ResourceID:      "studio-a",
		DayOfWeek:       1,
		StartTime:       start,
		EndTime:         end,
		IsAvailable:     true,
		BufferBeforeMin: bufBefore,
		BufferAfterMin:  bufAfter,
	}
}

func TestGenerateAppliesBuffers(t *testing.T) {
	g := NewGenerator(time.Hour, 365)
	rules := []model.AvailabilityRule{mondayRule("09:00", "17:00", 30, 30)}

	slots, err := g.Generate("studio-a", rules, monday, monday.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	// Buffered window is 09:30-16:30, which fits seven one-hour slots.
	if len(slots) != 7 {
		t.Fatalf("expected 7 slots, got %d", len(slots))
	}

	wantFirst := monday.Add(9*time.Hour + 30*time.Minute)
	if !slots[0].StartTime.Equal(wantFirst) {
		t.Errorf("first slot starts at %v, want %v", slots[0].StartTime, wantFirst)
	}

	wantLastEnd := monday.Add(16*time.Hour + 30*time.Minute)
	if !slots[6].EndTime.Equal(wantLastEnd) {
		t.Errorf("last slot ends at %v, want %v", slots[6].EndTime, wantLastEnd)
	}

	for _, s := range slots {
		if s.Status != model.SlotOpen {
			t.Errorf("slot %v generated with status %q, want open", s.StartTime, s.Status)
		}
		if s.Date != "2026-01-05" {
			t.Errorf("slot date %q, want 2026-01-05", s.Date)
		}
	}
}

func TestGenerateTwoSlotWindow(t *testing.T) {
	g := NewGenerator(time.Hour, 365)
	rules := []model.AvailabilityRule{mondayRule("10:00", "12:00", 0, 0)}

	slots, err := g.Generate("studio-a", rules, monday, monday.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if !slots[0].StartTime.Equal(monday.Add(10 * time.Hour)) {
		t.Errorf("unexpected first slot start: %v", slots[0].StartTime)
	}
	if !slots[1].EndTime.Equal(monday.Add(12 * time.Hour)) {
		t.Errorf("unexpected second slot end: %v", slots[1].EndTime)
	}
}

func TestGenerateDiscardsTrailingPartialSlot(t *testing.T) {
	g := NewGenerator(time.Hour, 365)
	// 90-minute window holds exactly one whole slot; the trailing half hour
	// must not become a short slot.
	rules := []model.AvailabilityRule{mondayRule("10:00", "11:30", 0, 0)}

	slots, err := g.Generate("studio-a", rules, monday, monday.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	if !slots[0].EndTime.Equal(monday.Add(11 * time.Hour)) {
		t.Errorf("slot end %v, want %v", slots[0].EndTime, monday.Add(11*time.Hour))
	}
}

func TestGenerateBufferConsumesWholeWindow(t *testing.T) {
	g := NewGenerator(time.Hour, 365)
	rules := []model.AvailabilityRule{mondayRule("10:00", "11:00", 30, 30)}

	slots, err := g.Generate("studio-a", rules, monday, monday.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots from a fully buffered window, got %d", len(slots))
	}
}

func TestGenerateSkipsUnavailableRules(t *testing.T) {
	g := NewGenerator(time.Hour, 365)
	rule := mondayRule("09:00", "17:00", 0, 0)
	rule.IsAvailable = false

	slots, err := g.Generate("studio-a", []model.AvailabilityRule{rule}, monday, monday.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots for an unavailable rule, got %d", len(slots))
	}
}

func TestGenerateDayWithoutRuleIsEmpty(t *testing.T) {
	g := NewGenerator(time.Hour, 365)
	rules := []model.AvailabilityRule{mondayRule("09:00", "17:00", 0, 0)}

	tuesday := monday.AddDate(0, 0, 1)
	slots, err := g.Generate("studio-a", rules, tuesday, tuesday.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots on a day without rules, got %d", len(slots))
	}
}

func TestGenerateSkipsSlotsOutsideRangeWhole(t *testing.T) {
	g := NewGenerator(time.Hour, 365)
	rules := []model.AvailabilityRule{mondayRule("09:00", "17:00", 0, 0)}

	// Range opens mid-window: the 10:30 boundary cuts through the 10:00
	// slot, which must be dropped entirely rather than truncated.
	rangeStart := monday.Add(10*time.Hour + 30*time.Minute)
	slots, err := g.Generate("studio-a", rules, rangeStart, monday.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if len(slots) == 0 {
		t.Fatal("expected slots after the range start")
	}
	if !slots[0].StartTime.Equal(monday.Add(11 * time.Hour)) {
		t.Errorf("first slot starts at %v, want %v", slots[0].StartTime, monday.Add(11*time.Hour))
	}
}

func TestGenerateOrdersSlotsAcrossRules(t *testing.T) {
	g := NewGenerator(time.Hour, 365)
	evening := mondayRule("18:00", "20:00", 0, 0)
	evening.ID = "rule-2"
	rules := []model.AvailabilityRule{evening, mondayRule("09:00", "11:00", 0, 0)}

	slots, err := g.Generate("studio-a", rules, monday, monday.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	for i := 1; i < len(slots); i++ {
		if slots[i].StartTime.Before(slots[i-1].StartTime) {
			t.Fatalf("slots out of order at index %d: %v before %v", i, slots[i].StartTime, slots[i-1].StartTime)
		}
	}
}

func TestGenerateRejectsInvertedRange(t *testing.T) {
	g := NewGenerator(time.Hour, 365)

	_, err := g.Generate("studio-a", nil, monday.AddDate(0, 0, 1), monday)
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestGenerateRejectsOversizedRange(t *testing.T) {
	g := NewGenerator(time.Hour, 7)

	_, err := g.Generate("studio-a", nil, monday, monday.AddDate(0, 0, 30))
	if !errors.Is(err, ErrRangeTooLarge) {
		t.Fatalf("expected ErrRangeTooLarge, got %v", err)
	}
}

func TestGenerateRejectsMalformedClock(t *testing.T) {
	g := NewGenerator(time.Hour, 365)
	rule := mondayRule("9am", "17:00", 0, 0)

	_, err := g.Generate("studio-a", []model.AvailabilityRule{rule}, monday, monday.AddDate(0, 0, 1))
	if err == nil {
		t.Fatal("expected error for malformed clock string")
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		clock   string
		want    time.Duration
		wantErr bool
	}{
		{clock: "00:00", want: 0},
		{clock: "09:30", want: 9*time.Hour + 30*time.Minute},
		{clock: "23:59", want: 23*time.Hour + 59*time.Minute},
		{clock: "24:00", wantErr: true},
		{clock: "9:30pm", wantErr: true},
		{clock: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.clock)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error", tt.clock)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): unexpected error: %v", tt.clock, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %v, want %v", tt.clock, got, tt.want)
		}
	}
}
