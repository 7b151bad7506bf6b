package get_profile

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PostBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PostBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-PostBookingService/internal/service/clients"
)

const (
	msgMissingClientID = "отсутствует ID клиента"
	msgNotFound        = "клиент не найден"
)

type Handler struct {
	service ClientService
	logger  Logger
}

func NewHandler(service ClientService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetClientID(r.Context())
	if !ok {
		h.logger.Warn("GET /me - Missing client ID")
		handlers.RespondUnauthorized(w, msgMissingClientID)
		return
	}

	result, err := h.service.GetProfile(r.Context(), clientID)
	if err != nil {
		if errors.Is(err, clients.ErrClientNotFound) {
			// Токен валиден, но клиент был поглощен слиянием
			h.logger.Warn("GET /me - Client not found: client_id=%d", clientID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /me - Failed to get profile: client_id=%d, error=%v", clientID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
