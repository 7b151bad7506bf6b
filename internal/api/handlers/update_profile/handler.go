package update_profile

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PostBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PostBookingService/internal/api/middleware"
	updateProfile "github.com/m04kA/SMC-PostBookingService/internal/usecase/update_client_profile"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingClientID     = "отсутствует ID клиента"
	msgNotFound            = "клиент не найден"
	msgSelectedPostMissing = "выбранный пост не найден"
	msgPhoneConflict       = "номер телефона уже используется, повторите запрос"
	msgInvalidProfile      = "некорректные данные профиля"
	msgConcurrentUpdate    = "профиль изменяется параллельно, повторите запрос"
)

type Handler struct {
	useCase UpdateProfileUseCase
	logger  Logger
}

func NewHandler(useCase UpdateProfileUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetClientID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /me - Missing client ID")
		handlers.RespondUnauthorized(w, msgMissingClientID)
		return
	}

	var req UpdateProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /me - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(clientID))
	if err != nil {
		switch {
		case errors.Is(err, updateProfile.ErrClientNotFound):
			h.logger.Warn("PATCH /me - Client not found: client_id=%d", clientID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateProfile.ErrSelectedPostNotFound):
			h.logger.Warn("PATCH /me - Selected post not found: client_id=%d, post_id=%v", clientID, req.SelectedPostID)
			handlers.RespondBadRequest(w, msgSelectedPostMissing)

		case errors.Is(err, updateProfile.ErrPhoneConflict):
			h.logger.Warn("PATCH /me - Phone conflict: client_id=%d", clientID)
			handlers.RespondConflict(w, msgPhoneConflict)

		case errors.Is(err, updateProfile.ErrConcurrentUpdate):
			h.logger.Warn("PATCH /me - Concurrent update: client_id=%d", clientID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		case errors.Is(err, updateProfile.ErrInvalidInput):
			h.logger.Warn("PATCH /me - Invalid profile: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidProfile)

		default:
			h.logger.Error("PATCH /me - Failed to update profile: client_id=%d, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /me - Profile updated: client_id=%d, merged=%v", clientID, result.MergedClientID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
