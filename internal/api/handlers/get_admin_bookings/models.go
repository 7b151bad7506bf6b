package get_admin_bookings

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-PostBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PostBookingService/internal/domain"
	"github.com/m04kA/SMC-PostBookingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(r *http.Request) (*models.GetAdminBookingsRequest, error) {
	req := &models.GetAdminBookingsRequest{}

	postID, err := handlers.QueryInt64(r, "postId")
	if err != nil {
		return nil, err
	}
	req.PostID = postID

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	includeCancelled, err := handlers.QueryBool(r, "includeCancelled")
	if err != nil {
		return nil, err
	}
	req.IncludeCancelled = includeCancelled

	return req, nil
}
