package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"shutterbook/pkg/logger"
	"shutterbook/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type RuleValidator struct {
	validate *validator.Validate
	log      *logger.Logger
}

func NewRuleValidator(log *logger.Logger) *RuleValidator {
	v := validator.New()

	if err := v.RegisterValidation("valid_time_range", validateClock); err != nil {
		log.Fatal("Failed to register 'valid_time_range' validator", "error", err)
	}

	return &RuleValidator{
		validate: v,
		log:      log,
	}
}

func validateClock(fl validator.FieldLevel) bool {
	clock := strings.TrimSpace(fl.Field().String())
	if clock == "" {
		return true
	}
	_, err := time.Parse("15:04", clock)
	return err == nil
}

func (v *RuleValidator) Validate(rule *model.AvailabilityRule) error {
	if err := v.validate.Struct(rule); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translate(validationErrs)
		}
		return err
	}
	return nil
}

func (v *RuleValidator) ValidateUpdate(updates *model.AvailabilityRuleUpdate) error {
	if err := v.validate.Struct(updates); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translate(validationErrs)
		}
		return err
	}
	return nil
}

func translate(errs validator.ValidationErrors) ValidationErrors {
	var out ValidationErrors
	for _, err := range errs {
		var message string
		switch err.Tag() {
		case "required":
			message = "is required"
		case "valid_time_range":
			message = "must be a wall-clock time in HH:MM format"
		case "min":
			message = fmt.Sprintf("must be at least %s", err.Param())
		case "max":
			message = fmt.Sprintf("must be at most %s", err.Param())
		case "mongodb":
			message = "must be a valid object ID"
		default:
			message = fmt.Sprintf("failed '%s' validation", err.Tag())
		}
		out = append(out, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}
	return out
}
