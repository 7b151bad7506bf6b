package manage_catalog

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PostBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PostBookingService/internal/service/catalog"
	"github.com/m04kA/SMC-PostBookingService/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidPostID      = "некорректный ID поста"
	msgServiceNotFound    = "услуга не найдена"
	msgPostNotFound       = "пост не найден"
	msgInvalidData        = "некорректные данные"
)

// Handler администрирование услуг и постов
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

// HandleCreateService POST /api/v1/admin/services
func (h *Handler) HandleCreateService(w http.ResponseWriter, r *http.Request) {
	var req models.ServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateService(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/services", err)
		return
	}

	h.logger.Info("POST /admin/services - Service created: service_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleUpdateService PUT /api/v1/admin/services/{serviceId}
// Изменения не затрагивают снимки услуги в уже созданных бронированиях.
func (h *Handler) HandleUpdateService(w http.ResponseWriter, r *http.Request) {
	serviceID, err := handlers.PathInt64(r, "serviceId")
	if err != nil {
		h.logger.Warn("PUT /admin/services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req models.ServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/services/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateService(r.Context(), serviceID, &req)
	if err != nil {
		h.respondError(w, "PUT /admin/services/{id}", err)
		return
	}

	h.logger.Info("PUT /admin/services/{id} - Service updated: service_id=%d", serviceID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleCreatePost POST /api/v1/admin/posts
func (h *Handler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req models.PostRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/posts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreatePost(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/posts", err)
		return
	}

	h.logger.Info("POST /admin/posts - Post created: post_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleUpdatePost PUT /api/v1/admin/posts/{postId}
func (h *Handler) HandleUpdatePost(w http.ResponseWriter, r *http.Request) {
	postID, err := handlers.PathInt64(r, "postId")
	if err != nil {
		h.logger.Warn("PUT /admin/posts/{id} - Invalid post ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPostID)
		return
	}

	var req models.PostRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/posts/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdatePost(r.Context(), postID, &req)
	if err != nil {
		h.respondError(w, "PUT /admin/posts/{id}", err)
		return
	}

	h.logger.Info("PUT /admin/posts/{id} - Post updated: post_id=%d", postID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, catalog.ErrServiceNotFound):
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, catalog.ErrPostNotFound):
		handlers.RespondNotFound(w, msgPostNotFound)

	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidData)

	default:
		h.logger.Error("%s - Failed: error=%v", route, err)
		handlers.RespondInternalError(w)
	}
}
