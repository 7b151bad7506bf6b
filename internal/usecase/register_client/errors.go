package register_client

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректном device id
	ErrInvalidInput = fmt.Errorf("%w: register_client: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("register_client: internal error")
)
