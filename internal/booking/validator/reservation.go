package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"bookd/pkg/logger"
	"bookd/pkg/model"
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

// CreateReservationInput is the saga entry payload. RequestID is optional;
// the orchestrator mints one when absent.
type CreateReservationInput struct {
	UserID    string `json:"user_id" validate:"required,min=1,max=64"`
	RoomID    string `json:"room_id" validate:"required,min=1,max=64"`
	StartDate model.Date
	EndDate   model.Date
	RequestID string `json:"request_id" validate:"omitempty,min=1,max=64"`
}

type ReservationValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewReservationValidator(log *logger.Logger) *ReservationValidator {
	return &ReservationValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (v *ReservationValidator) Validate(input *CreateReservationInput) error {
	if err := v.validate.Struct(input); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translate(validationErrs)
		}
		return err
	}

	return validateDates(input.StartDate, input.EndDate)
}

func validateDates(startDate, endDate model.Date) error {
	var errs ValidationErrors

	if startDate.IsZero() {
		errs = append(errs, ValidationError{Field: "StartDate", Message: "start_date is required"})
	}
	if endDate.IsZero() {
		errs = append(errs, ValidationError{Field: "EndDate", Message: "end_date is required"})
	}
	if len(errs) > 0 {
		return errs
	}

	if !startDate.Before(endDate.Time) {
		errs = append(errs, ValidationError{Field: "EndDate", Message: "end_date must be after start_date"})
	}
	if startDate.Before(Today().Time) {
		errs = append(errs, ValidationError{Field: "StartDate", Message: "start_date cannot be in the past"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Today is a seam for tests that pin the clock.
var Today = model.Today

func translate(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		}
		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
