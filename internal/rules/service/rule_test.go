package service

import (
	"context"
	"io"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	ruleerrors "shutterbook/internal/rules/errors"
	"shutterbook/internal/rules/validator"
	"shutterbook/pkg/config"
	mongotx "shutterbook/pkg/db/mongo"
	apperrors "shutterbook/pkg/errors"
	"shutterbook/pkg/logger"
	"shutterbook/pkg/model"
)

type mockRuleRepository struct {
	createFn         func(ctx context.Context, rule *model.AvailabilityRule) error
	findByIDFn       func(ctx context.Context, id string) (*model.AvailabilityRule, error)
	listByResourceFn func(ctx context.Context, resourceID string) ([]model.AvailabilityRule, error)
	updateFn         func(ctx context.Context, id string, rule *model.AvailabilityRule) error
	deleteFn         func(ctx context.Context, id string) error
}

func (m *mockRuleRepository) Create(ctx context.Context, rule *model.AvailabilityRule) error {
	return m.createFn(ctx, rule)
}

func (m *mockRuleRepository) FindByID(ctx context.Context, id string) (*model.AvailabilityRule, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockRuleRepository) ListByResource(ctx context.Context, resourceID string) ([]model.AvailabilityRule, error) {
	return m.listByResourceFn(ctx, resourceID)
}

func (m *mockRuleRepository) Update(ctx context.Context, id string, rule *model.AvailabilityRule) error {
	return m.updateFn(ctx, id, rule)
}

func (m *mockRuleRepository) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockRuleRepository) ExecuteTransaction(_ context.Context, fn mongotx.TransactionFunc) error {
	var sessCtx mongo.SessionContext
	return fn(sessCtx)
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{Level: "error", Output: io.Discard}),
	}
}

func newTestRuleService(repo *mockRuleRepository) RuleService {
	cfg := testConfig()
	return NewRuleService(repo, validator.NewRuleValidator(cfg.Log), cfg)
}

func validRule() *model.AvailabilityRule {
	return &model.AvailabilityRule{
		ResourceID:  "studio-a",
		DayOfWeek:   1,
		StartTime:   "09:00",
		EndTime:     "17:00",
		IsAvailable: true,
	}
}

func TestCreateRejectsOverlappingRule(t *testing.T) {
	existing := *validRule()
	existing.ID = "rule-1"
	existing.StartTime = "12:00"
	existing.EndTime = "20:00"

	repo := &mockRuleRepository{
		listByResourceFn: func(context.Context, string) ([]model.AvailabilityRule, error) {
			return []model.AvailabilityRule{existing}, nil
		},
		createFn: func(context.Context, *model.AvailabilityRule) error {
			t.Fatal("overlapping rule must not reach the repository")
			return nil
		},
	}
	svc := newTestRuleService(repo)

	err := svc.Create(context.Background(), validRule())
	if err == nil {
		t.Fatal("expected conflict for overlapping rule")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreateAllowsAdjacentWindows(t *testing.T) {
	existing := *validRule()
	existing.ID = "rule-1"
	existing.StartTime = "17:00"
	existing.EndTime = "20:00"

	created := false
	repo := &mockRuleRepository{
		listByResourceFn: func(context.Context, string) ([]model.AvailabilityRule, error) {
			return []model.AvailabilityRule{existing}, nil
		},
		createFn: func(_ context.Context, rule *model.AvailabilityRule) error {
			created = true
			rule.ID = "rule-2"
			return nil
		},
	}
	svc := newTestRuleService(repo)

	if err := svc.Create(context.Background(), validRule()); err != nil {
		t.Fatalf("adjacent windows must not conflict: %v", err)
	}
	if !created {
		t.Fatal("expected rule to be created")
	}
}

func TestCreateAllowsOverlapAcrossWeekdays(t *testing.T) {
	existing := *validRule()
	existing.ID = "rule-1"
	existing.DayOfWeek = 2

	repo := &mockRuleRepository{
		listByResourceFn: func(context.Context, string) ([]model.AvailabilityRule, error) {
			return []model.AvailabilityRule{existing}, nil
		},
		createFn: func(_ context.Context, rule *model.AvailabilityRule) error {
			rule.ID = "rule-2"
			return nil
		},
	}
	svc := newTestRuleService(repo)

	if err := svc.Create(context.Background(), validRule()); err != nil {
		t.Fatalf("same window on another weekday must not conflict: %v", err)
	}
}

func TestCreateRejectsInvertedWindow(t *testing.T) {
	rule := validRule()
	rule.StartTime = "17:00"
	rule.EndTime = "09:00"

	svc := newTestRuleService(&mockRuleRepository{})

	err := svc.Create(context.Background(), rule)
	if err == nil {
		t.Fatal("expected rejection of inverted window")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeInvalidInput {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestCreateRejectsBadClockFormat(t *testing.T) {
	rule := validRule()
	rule.StartTime = "9am"

	svc := newTestRuleService(&mockRuleRepository{})

	if err := svc.Create(context.Background(), rule); err == nil {
		t.Fatal("expected rejection of malformed start_time")
	}
}

func TestGetByIDMapsNotFound(t *testing.T) {
	repo := &mockRuleRepository{
		findByIDFn: func(context.Context, string) (*model.AvailabilityRule, error) {
			return nil, ruleerrors.ErrNotFound
		},
	}
	svc := newTestRuleService(repo)

	_, err := svc.GetByID(context.Background(), "65f000000000000000000000")
	if err == nil {
		t.Fatal("expected not found error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateRevalidatesMergedRule(t *testing.T) {
	existing := *validRule()
	existing.ID = "65f000000000000000000000"

	repo := &mockRuleRepository{
		findByIDFn: func(context.Context, string) (*model.AvailabilityRule, error) {
			rule := existing
			return &rule, nil
		},
		listByResourceFn: func(context.Context, string) ([]model.AvailabilityRule, error) {
			return []model.AvailabilityRule{existing}, nil
		},
		updateFn: func(context.Context, string, *model.AvailabilityRule) error {
			t.Fatal("invalid merged rule must not reach the repository")
			return nil
		},
	}
	svc := newTestRuleService(repo)

	// Moving the end before the existing start inverts the window.
	err := svc.Update(context.Background(), existing.ID, &model.AvailabilityRuleUpdate{EndTime: "08:00"})
	if err == nil {
		t.Fatal("expected rejection of inverted merged window")
	}
}
