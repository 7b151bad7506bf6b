package list_catalog

import (
	"net/http"

	"github.com/m04kA/SMC-PostBookingService/internal/api/handlers"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleServices GET /api/v1/services
// Публичный endpoint, только активные услуги
func (h *Handler) HandleServices(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListServices(r.Context(), true)
	if err != nil {
		h.logger.Error("GET /services - Failed to list services: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandlePosts GET /api/v1/posts
// Публичный endpoint, только включенные посты
func (h *Handler) HandlePosts(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListPosts(r.Context(), true)
	if err != nil {
		h.logger.Error("GET /posts - Failed to list posts: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}
