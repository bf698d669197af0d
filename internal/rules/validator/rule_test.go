package validator

import (
	"io"
	"testing"

	"shutterbook/pkg/logger"
	"shutterbook/pkg/model"
)

func newTestValidator() *RuleValidator {
	return NewRuleValidator(logger.New(logger.Config{Level: "error", Output: io.Discard}))
}

func baseRule() *model.AvailabilityRule {
	return &model.AvailabilityRule{
		ResourceID:  "studio-a",
		DayOfWeek:   1,
		StartTime:   "09:00",
		EndTime:     "17:00",
		IsAvailable: true,
	}
}

func TestValidateAcceptsWellFormedRule(t *testing.T) {
	v := newTestValidator()
	if err := v.Validate(baseRule()); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateRejectsBadFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *model.AvailabilityRule)
	}{
		{"missing resource", func(r *model.AvailabilityRule) { r.ResourceID = "" }},
		{"weekday out of range", func(r *model.AvailabilityRule) { r.DayOfWeek = 7 }},
		{"negative weekday", func(r *model.AvailabilityRule) { r.DayOfWeek = -1 }},
		{"malformed clock", func(r *model.AvailabilityRule) { r.StartTime = "9:00am" }},
		{"missing end time", func(r *model.AvailabilityRule) { r.EndTime = "" }},
		{"negative buffer", func(r *model.AvailabilityRule) { r.BufferBeforeMin = -5 }},
	}

	v := newTestValidator()
	for _, tt := range tests {
		rule := baseRule()
		tt.mutate(rule)
		if err := v.Validate(rule); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}
