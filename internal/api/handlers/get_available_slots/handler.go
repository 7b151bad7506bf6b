package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PostBookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-PostBookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidPostID    = "некорректный ID поста"
	msgInvalidServiceID = "некорректный ID услуги"
	msgMissingServiceID = "ID услуги обязателен"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPostUnavailable  = "пост недоступен для записи"
	msgServiceNotFound  = "услуга не найдена"
	msgServiceInactive  = "услуга недоступна для записи"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/posts/{postId}/available-slots
// Query params: serviceId (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	postID, err := handlers.PathInt64(r, "postId")
	if err != nil {
		h.logger.Warn("GET /posts/{id}/available-slots - Invalid post ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPostID)
		return
	}

	serviceID, err := handlers.QueryInt64(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /posts/{id}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}
	if serviceID == nil {
		h.logger.Warn("GET /posts/{id}/available-slots - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /posts/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(postID, *serviceID, dateStr)
	if err != nil {
		h.logger.Warn("GET /posts/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrPostNotFound), errors.Is(err, getAvailableSlots.ErrPostDisabled):
			h.logger.Warn("GET /posts/{id}/available-slots - Post unavailable: post_id=%d", postID)
			handlers.RespondUnprocessable(w, msgPostUnavailable)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /posts/{id}/available-slots - Service not found: service_id=%d", *serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceInactive):
			h.logger.Warn("GET /posts/{id}/available-slots - Service inactive: service_id=%d", *serviceID)
			handlers.RespondUnprocessable(w, msgServiceInactive)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /posts/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /posts/{id}/available-slots - Failed to get slots: post_id=%d, service_id=%d, error=%v",
				postID, *serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /posts/{id}/available-slots - Slots retrieved successfully: post_id=%d, service_id=%d, slots_count=%d",
		postID, *serviceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
