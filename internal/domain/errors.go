package domain

import (
	"errors"
	"fmt"
)

// Виды ошибок. Ошибки всех слоев оборачивают один из них,
// чтобы вызывающий код мог отличить вид ошибки через errors.Is.
var (
	// ErrNotFound услуга, пост, бронирование или клиент не найдены
	ErrNotFound = errors.New("not found")

	// ErrDisabled услуга неактивна или пост отключен
	ErrDisabled = errors.New("disabled")

	// ErrConflict слот пересекается с существующим бронированием
	ErrConflict = errors.New("conflict")

	// ErrValidation некорректные входные данные или недопустимый переход статуса
	ErrValidation = errors.New("validation failed")

	// ErrForbidden действие над чужим бронированием
	ErrForbidden = errors.New("forbidden")

	// ErrAlreadyTerminal бронирование уже завершено или отменено
	ErrAlreadyTerminal = errors.New("already terminal")
)

var (
	// ErrUnknownStatus статус не входит в граф состояний
	ErrUnknownStatus = fmt.Errorf("%w: unknown booking status", ErrValidation)

	// ErrIllegalTransition переход не разрешен графом состояний
	ErrIllegalTransition = fmt.Errorf("%w: illegal status transition", ErrValidation)

	// ErrOutsideWorkingHours интервал выходит за рабочие часы поста
	ErrOutsideWorkingHours = fmt.Errorf("%w: interval is outside post working hours", ErrValidation)
)
