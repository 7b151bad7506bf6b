package register_client

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PostBookingService/internal/api/handlers"
	registerClient "github.com/m04kA/SMC-PostBookingService/internal/usecase/register_client"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDeviceID    = "некорректный ID устройства"
)

type Handler struct {
	useCase RegisterClientUseCase
	logger  Logger
}

func NewHandler(useCase RegisterClientUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/clients/register
// Повторный вызов с тем же deviceId возвращает существующего клиента и новый токен.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /clients/register - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &registerClient.Request{DeviceID: req.DeviceID})
	if err != nil {
		if errors.Is(err, registerClient.ErrInvalidInput) {
			h.logger.Warn("POST /clients/register - Invalid device ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDeviceID)
			return
		}
		h.logger.Error("POST /clients/register - Failed to register client: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}

	h.logger.Info("POST /clients/register - Client registered: client_id=%d, created=%t", result.ClientID, result.Created)
	handlers.RespondJSON(w, status, &RegisterResponse{ClientID: result.ClientID, Token: result.Token})
}
