package update_client_profile

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
)

var (
	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = fmt.Errorf("%w: update_client_profile: client not found", domain.ErrNotFound)

	// ErrSelectedPostNotFound возвращается, когда выбранный пост не существует
	ErrSelectedPostNotFound = fmt.Errorf("%w: update_client_profile: selected post not found", domain.ErrValidation)

	// ErrPhoneConflict возвращается, когда номер занял другой клиент параллельно с текущим обновлением
	ErrPhoneConflict = fmt.Errorf("%w: update_client_profile: phone was taken concurrently", domain.ErrConflict)

	// ErrConcurrentUpdate возвращается, когда транзакция откатилась из-за параллельного изменения, запрос можно повторить
	ErrConcurrentUpdate = fmt.Errorf("%w: update_client_profile: concurrent update, retry", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: update_client_profile: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_client_profile: internal error")
)
