package catalog

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("%w: catalog: service not found", domain.ErrNotFound)

	// ErrPostNotFound возвращается, когда пост не найден
	ErrPostNotFound = fmt.Errorf("%w: catalog: post not found", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: catalog: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)
