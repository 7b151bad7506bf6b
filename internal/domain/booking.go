package domain

import (
	"fmt"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// statusRank порядок статусов на основной ветке графа.
// Переход разрешен только вперед по рангу, cancelled стоит вне ветки.
var statusRank = map[BookingStatus]int{
	StatusPending:    0,
	StatusConfirmed:  1,
	StatusInProgress: 2,
	StatusCompleted:  3,
}

// ParseBookingStatus проверяет, что строка является известным статусом
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return status, nil
}

// IsValid returns true for statuses of the booking lifecycle
func (s BookingStatus) IsValid() bool {
	if s == StatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

// IsTerminal returns true for completed and cancelled
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Transition результат проверки перехода статуса
type Transition struct {
	From BookingStatus
	To   BookingStatus
	// Noop повторный вход в in_progress, запись и уведомление не нужны
	Noop bool
	// SkipsInProgress переход в completed минуя in_progress
	SkipsInProgress bool
}

// PlanTransition проверяет переход from -> to по графу состояний:
// вперед по основной ветке (в том числе с пропуском шагов),
// в cancelled из любого нетерминального статуса,
// повторный in_progress как no-op. Всё остальное ErrIllegalTransition.
func PlanTransition(from, to BookingStatus) (Transition, error) {
	if !to.IsValid() {
		return Transition{}, fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	if !from.IsValid() {
		return Transition{}, fmt.Errorf("%w: stored status %q", ErrUnknownStatus, from)
	}
	if from.IsTerminal() {
		return Transition{}, fmt.Errorf("%w: %s is terminal", ErrIllegalTransition, from)
	}

	t := Transition{From: from, To: to}

	if to == StatusCancelled {
		return t, nil
	}

	if from == to {
		if to == StatusInProgress {
			t.Noop = true
			return t, nil
		}
		return Transition{}, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}

	if statusRank[to] < statusRank[from] {
		return Transition{}, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}

	t.SkipsInProgress = to == StatusCompleted && statusRank[from] < statusRank[StatusInProgress]
	return t, nil
}

// Booking represents a reservation of one service at one post for one client
type Booking struct {
	ID              int64
	ServiceID       int64
	PostID          int64
	ClientID        int64
	StartAt         time.Time
	EndAt           time.Time
	DurationMinutes int
	Status          BookingStatus
	Notes           *string

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64

	InProgressStartedAt *time.Time
	CompletedAt         *time.Time
	CancelledAt         *time.Time

	Rating        *int
	RatingComment *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Duration длительность бронирования
func (b *Booking) Duration() time.Duration {
	return time.Duration(b.DurationMinutes) * time.Minute
}

// IsActive returns true if the booking still occupies its interval
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsOwnedBy returns true if the booking belongs to the client
func (b *Booking) IsOwnedBy(clientID int64) bool {
	return b.ClientID == clientID
}

// ProgressStart момент начала обслуживания: записанный in_progress_started_at,
// если его нет, то время начала слота
func (b *Booking) ProgressStart() time.Time {
	if b.InProgressStartedAt != nil {
		return *b.InProgressStartedAt
	}
	return b.StartAt
}

// BookingsFilter фильтр для административного списка бронирований
type BookingsFilter struct {
	PostID           *int64         // Фильтр по посту (опционально)
	From             *time.Time     // Начало периода, включительно (опционально)
	To               *time.Time     // Конец периода, не включительно (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отмененные бронирования
}
