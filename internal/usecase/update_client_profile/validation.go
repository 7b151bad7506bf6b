package update_client_profile

import (
	"fmt"
	"net/mail"
	"unicode/utf8"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	p := req.Patch
	for name, v := range map[string]*string{
		"name":             p.Name,
		"phone":            p.Phone,
		"telegram":         p.Telegram,
		"instagram":        p.Instagram,
		"selectedCategory": p.SelectedCategory,
	} {
		if v != nil && utf8.RuneCountInString(*v) > domain.MaxNameLength {
			return fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidInput, name, domain.MaxNameLength)
		}
	}

	if p.Email != nil && *p.Email != "" {
		if _, err := mail.ParseAddress(*p.Email); err != nil {
			return fmt.Errorf("%w: invalid email: %v", ErrInvalidInput, err)
		}
	}

	if p.SelectedPostID != nil && *p.SelectedPostID <= 0 {
		return fmt.Errorf("%w: selectedPostId must be positive", ErrInvalidInput)
	}

	return nil
}
