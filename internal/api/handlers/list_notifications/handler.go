package list_notifications

import (
	"net/http"

	"github.com/m04kA/SMC-PostBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PostBookingService/internal/api/middleware"
)

const (
	msgMissingClientID = "отсутствует ID клиента"
	msgInvalidParams   = "некорректные параметры запроса"
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

// Handle GET /api/v1/me/notifications
// Query params: unreadOnly (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetClientID(r.Context())
	if !ok {
		h.logger.Warn("GET /me/notifications - Missing client ID")
		handlers.RespondUnauthorized(w, msgMissingClientID)
		return
	}

	unreadOnly, err := handlers.QueryBool(r, "unreadOnly")
	if err != nil {
		h.logger.Warn("GET /me/notifications - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), clientID, unreadOnly)
	if err != nil {
		h.logger.Error("GET /me/notifications - Failed to list notifications: client_id=%d, error=%v", clientID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
