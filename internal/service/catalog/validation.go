package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
	"github.com/m04kA/SMC-PostBookingService/internal/service/catalog/models"
)

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	return nil
}

// validateService валидирует данные услуги
func validateService(req *models.ServiceRequest) error {
	if err := validateName(req.Name); err != nil {
		return err
	}

	if req.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidInput)
	}

	if req.DurationMinutes < domain.MinServiceDurationMinutes || req.DurationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}

	return nil
}

// validatePost валидирует данные поста
func validatePost(req *models.PostRequest) error {
	if err := validateName(req.Name); err != nil {
		return err
	}

	if err := req.WorkStart.Validate(); err != nil {
		return fmt.Errorf("%w: workStart: %v", ErrInvalidInput, err)
	}

	if err := req.WorkEnd.Validate(); err != nil {
		return fmt.Errorf("%w: workEnd: %v", ErrInvalidInput, err)
	}

	if !req.WorkEnd.IsAfter(req.WorkStart) {
		return fmt.Errorf("%w: workEnd must be after workStart", ErrInvalidInput)
	}

	if req.IntervalMinutes < domain.MinIntervalMinutes || req.IntervalMinutes > domain.MaxIntervalMinutes {
		return fmt.Errorf("%w: intervalMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinIntervalMinutes, domain.MaxIntervalMinutes)
	}

	return nil
}
