package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"shutterbook/internal/availability"
	ruleerrors "shutterbook/internal/rules/errors"
	"shutterbook/internal/rules/repository"
	"shutterbook/internal/rules/validator"
	"shutterbook/pkg/config"
	apperrors "shutterbook/pkg/errors"
	"shutterbook/pkg/model"
)

type RuleService interface {
	Create(ctx context.Context, rule *model.AvailabilityRule) error
	GetByID(ctx context.Context, id string) (*model.AvailabilityRule, error)
	ListByResource(ctx context.Context, resourceID string) ([]model.AvailabilityRule, error)
	Update(ctx context.Context, id string, updates *model.AvailabilityRuleUpdate) error
	Delete(ctx context.Context, id string) error
}

type ruleService struct {
	repo      repository.RuleRepository
	validator *validator.RuleValidator
	cfg       *config.Config
}

func NewRuleService(
	repo repository.RuleRepository,
	validator *validator.RuleValidator,
	cfg *config.Config,
) RuleService {
	return &ruleService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *ruleService) Create(ctx context.Context, rule *model.AvailabilityRule) error {
	if err := s.validate(rule); err != nil {
		return err
	}

	// The overlap check and the insert must observe the same state, so both
	// run inside one transaction.
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoOverlap(sessCtx, rule); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, rule); err != nil {
			return apperrors.Internal("Failed to create availability rule", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create availability rule",
			"resource_id", rule.ResourceID,
			"day_of_week", rule.DayOfWeek,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Availability rule created",
		"id", rule.ID,
		"resource_id", rule.ResourceID,
		"day_of_week", rule.DayOfWeek,
		"window", rule.StartTime+"-"+rule.EndTime,
	)
	return nil
}

func (s *ruleService) GetByID(ctx context.Context, id string) (*model.AvailabilityRule, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Rule ID cannot be empty")
	}

	rule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ruleerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Availability rule", id)
		}
		if errors.Is(err, ruleerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid rule ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve availability rule", err)
	}

	return rule, nil
}

func (s *ruleService) ListByResource(ctx context.Context, resourceID string) ([]model.AvailabilityRule, error) {
	if resourceID == "" {
		return nil, apperrors.InvalidInput("resource_id is required")
	}

	rules, err := s.repo.ListByResource(ctx, resourceID)
	if err != nil {
		s.cfg.Log.Error("Failed to list availability rules", "resource_id", resourceID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve availability rules", err)
	}
	return rules, nil
}

func (s *ruleService) Update(ctx context.Context, id string, updates *model.AvailabilityRuleUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Rule ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ruleerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Availability rule", id)
		}
		if errors.Is(err, ruleerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid rule ID format")
		}
		return apperrors.Internal("Failed to check rule existence", err)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeRuleUpdates(existing, updates)
	if err := s.validate(merged); err != nil {
		return err
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoOverlap(sessCtx, merged); err != nil {
			return err
		}
		if err := s.repo.Update(sessCtx, id, merged); err != nil {
			return apperrors.Internal("Failed to update availability rule", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update availability rule", "id", id, "error", err)
		return err
	}

	s.cfg.Log.Info("Availability rule updated", "id", id)
	return nil
}

func (s *ruleService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Rule ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ruleerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Availability rule", id)
		}
		if errors.Is(err, ruleerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid rule ID format")
		}
		return apperrors.Internal("Failed to delete availability rule", err)
	}

	s.cfg.Log.Info("Availability rule deleted", "id", id)
	return nil
}

// --- Helpers ---

func (s *ruleService) validate(rule *model.AvailabilityRule) error {
	if err := s.validator.Validate(rule); err != nil {
		s.cfg.Log.Warn("Availability rule validation failed", "error", err)
		return apperrors.Validation("Availability rule validation failed", map[string]any{"error": err.Error()})
	}

	start, err := availability.ParseClock(rule.StartTime)
	if err != nil {
		return apperrors.InvalidInput("start_time must be in HH:MM format")
	}
	end, err := availability.ParseClock(rule.EndTime)
	if err != nil {
		return apperrors.InvalidInput("end_time must be in HH:MM format")
	}
	if end <= start {
		return apperrors.InvalidInput("end_time must be after start_time")
	}

	return nil
}

// verifyNoOverlap enforces the store invariant: available rules for the same
// resource and weekday must not overlap.
func (s *ruleService) verifyNoOverlap(ctx context.Context, rule *model.AvailabilityRule) error {
	if !rule.IsAvailable {
		return nil
	}

	existing, err := s.repo.ListByResource(ctx, rule.ResourceID)
	if err != nil {
		return apperrors.Internal("Failed to check existing rules", err)
	}

	start, _ := availability.ParseClock(rule.StartTime)
	end, _ := availability.ParseClock(rule.EndTime)

	for _, e := range existing {
		if e.ID == rule.ID || e.DayOfWeek != rule.DayOfWeek || !e.IsAvailable {
			continue
		}
		eStart, err := availability.ParseClock(e.StartTime)
		if err != nil {
			continue
		}
		eEnd, err := availability.ParseClock(e.EndTime)
		if err != nil {
			continue
		}
		if start < eEnd && end > eStart {
			return apperrors.Conflict(fmt.Sprintf(
				"%v: rule window %s-%s collides with %s-%s",
				ruleerrors.ErrOverlap, rule.StartTime, rule.EndTime, e.StartTime, e.EndTime,
			))
		}
	}
	return nil
}

func (s *ruleService) mergeRuleUpdates(existing *model.AvailabilityRule, updates *model.AvailabilityRuleUpdate) *model.AvailabilityRule {
	merged := *existing

	if updates.DayOfWeek != nil {
		merged.DayOfWeek = *updates.DayOfWeek
	}
	if updates.StartTime != "" {
		merged.StartTime = updates.StartTime
	}
	if updates.EndTime != "" {
		merged.EndTime = updates.EndTime
	}
	if updates.IsAvailable != nil {
		merged.IsAvailable = *updates.IsAvailable
	}
	if updates.BufferBeforeMin != nil {
		merged.BufferBeforeMin = *updates.BufferBeforeMin
	}
	if updates.BufferAfterMin != nil {
		merged.BufferAfterMin = *updates.BufferAfterMin
	}

	return &merged
}
