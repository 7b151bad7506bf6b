package send_notification

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PostBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PostBookingService/internal/service/notifications"
	"github.com/m04kA/SMC-PostBookingService/internal/service/notifications/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgClientNotFound     = "клиент не найден"
	msgInvalidMessage     = "некорректные данные сообщения"
)

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/notifications
// clientId задан: личное сообщение, иначе рассылка всем клиентам
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.SendRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/notifications - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Send(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, notifications.ErrClientNotFound):
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, notifications.ErrInvalidInput):
			h.logger.Warn("POST /admin/notifications - Invalid message: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMessage)

		default:
			h.logger.Error("POST /admin/notifications - Failed to send: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/notifications - Sent: kind=%s, recipients=%d", req.Kind, result.Recipients)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
