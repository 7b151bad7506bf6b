package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PostBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PostBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-PostBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgMissingClientID       = "отсутствует ID клиента"
	msgSlotNotAvailable      = "выбранный временной слот недоступен"
	msgClientNotFound        = "клиент не найден"
	msgServiceNotFound       = "услуга не найдена"
	msgPostNotFound          = "пост не найден"
	msgServiceInactive       = "услуга недоступна для записи"
	msgPostDisabled          = "пост закрыт для записи"
	msgStartInPast           = "нельзя записаться на прошедшее время"
	msgOutsideWorkingHours   = "выбранное время вне рабочих часов поста"
	msgInvalidBookingRequest = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetClientID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing client ID")
		handlers.RespondUnauthorized(w, msgMissingClientID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(clientID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: client_id=%d, post_id=%d, start_at=%s",
				clientID, req.PostID, req.StartAt)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrClientNotFound):
			h.logger.Warn("POST /bookings - Client not found: client_id=%d", clientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrPostNotFound):
			h.logger.Warn("POST /bookings - Post not found: post_id=%d", req.PostID)
			handlers.RespondNotFound(w, msgPostNotFound)

		case errors.Is(err, createBooking.ErrServiceInactive):
			h.logger.Warn("POST /bookings - Service inactive: service_id=%d", req.ServiceID)
			handlers.RespondUnprocessable(w, msgServiceInactive)

		case errors.Is(err, createBooking.ErrPostDisabled):
			h.logger.Warn("POST /bookings - Post disabled: post_id=%d", req.PostID)
			handlers.RespondUnprocessable(w, msgPostDisabled)

		case errors.Is(err, createBooking.ErrStartInPast):
			h.logger.Warn("POST /bookings - Start in past: client_id=%d, start_at=%s", clientID, req.StartAt)
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, createBooking.ErrOutsideWorkingHours):
			h.logger.Warn("POST /bookings - Outside working hours: post_id=%d, start_at=%s", req.PostID, req.StartAt)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidBookingRequest)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: client_id=%d, post_id=%d, error=%v",
				clientID, req.PostID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, client_id=%d, post_id=%d",
		result.ID, clientID, req.PostID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
