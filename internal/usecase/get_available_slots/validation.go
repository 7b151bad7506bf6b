package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.PostID <= 0 {
		return fmt.Errorf("%w: postID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// buildSlots генерирует кандидатов от начала окна с шагом interval.
// Кандидат, конец которого выходит за окно, не создается.
// Кандидат занят, если пересекается с любым из bookings или начинается раньше now.
func buildSlots(windowStart, windowEnd time.Time, interval, duration time.Duration, now time.Time, bookings []*domain.Booking) []Slot {
	slots := make([]Slot, 0)
	if interval <= 0 || duration <= 0 {
		return slots
	}

	for start := windowStart; !start.Add(duration).After(windowEnd); start = start.Add(interval) {
		end := start.Add(duration)
		slots = append(slots, Slot{
			StartAt:     start,
			EndAt:       end,
			IsAvailable: !start.Before(now) && !isTaken(start, end, bookings),
		})
	}

	return slots
}

func isTaken(start, end time.Time, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if b.IsActive() && domain.Overlaps(start, end, b.StartAt, b.EndAt) {
			return true
		}
	}
	return false
}
