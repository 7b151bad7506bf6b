package transition_status

import "github.com/m04kA/SMC-PostBookingService/internal/domain"

// Request модель запроса на смену статуса
type Request struct {
	BookingID int64  // ID бронирования
	Status    string // Целевой статус
}

// Response результат перехода
type Response struct {
	Booking        *domain.Booking // Бронирование после перехода
	Changed        bool            // false для повторного in_progress
	NotificationID *int64          // ID уведомления, если оно было создано
}
