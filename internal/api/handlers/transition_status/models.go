package transition_status

import (
	"github.com/m04kA/SMC-PostBookingService/internal/service/bookings/models"
	transitionStatus "github.com/m04kA/SMC-PostBookingService/internal/usecase/transition_status"
)

// TransitionRequest HTTP request model
type TransitionRequest struct {
	Status string `json:"status"`
}

// TransitionResponse HTTP response model
type TransitionResponse struct {
	Booking        *models.BookingResponse `json:"booking"`
	Changed        bool                    `json:"changed"`
	NotificationID *int64                  `json:"notificationId,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *transitionStatus.Response) *TransitionResponse {
	return &TransitionResponse{
		Booking:        models.FromDomainBooking(resp.Booking),
		Changed:        resp.Changed,
		NotificationID: resp.NotificationID,
	}
}
