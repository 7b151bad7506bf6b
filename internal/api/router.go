package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	cancelBooking "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/cancel_booking"
	createBooking "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/create_booking"
	getAdminBookings "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/get_admin_bookings"
	getAvailableSlots "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/get_available_slots"
	getBooking "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/get_booking"
	getBookingProgress "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/get_booking_progress"
	getClientBookings "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/get_client_bookings"
	getProfile "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/get_profile"
	listCatalog "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/list_catalog"
	listNotifications "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/list_notifications"
	manageCatalog "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/manage_catalog"
	markNotificationRead "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/mark_notification_read"
	rateBooking "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/rate_booking"
	registerClient "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/register_client"
	sendNotification "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/send_notification"
	transitionStatus "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/transition_status"
	updateProfile "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/update_profile"

	"github.com/m04kA/SMC-PostBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PostBookingService/internal/api/middleware"
)

const msgUnhealthy = "сервис недоступен"

// Handlers все HTTP обработчики сервиса
type Handlers struct {
	RegisterClient       *registerClient.Handler
	ListCatalog          *listCatalog.Handler
	GetAvailableSlots    *getAvailableSlots.Handler
	GetProfile           *getProfile.Handler
	UpdateProfile        *updateProfile.Handler
	GetClientBookings    *getClientBookings.Handler
	CreateBooking        *createBooking.Handler
	GetBooking           *getBooking.Handler
	GetBookingProgress   *getBookingProgress.Handler
	CancelBooking        *cancelBooking.Handler
	RateBooking          *rateBooking.Handler
	ListNotifications    *listNotifications.Handler
	MarkNotificationRead *markNotificationRead.Handler
	GetAdminBookings     *getAdminBookings.Handler
	TransitionStatus     *transitionStatus.Handler
	ManageCatalog        *manageCatalog.Handler
	SendNotification     *sendNotification.Handler
}

// Options параметры роутера
type Options struct {
	Tokens     middleware.TokenParser
	AdminToken string
	Logger     middleware.Logger

	// HTTPMetrics nil, если метрики выключены
	HTTPMetrics    middleware.HTTPRecorder
	MetricsPath    string
	MetricsHandler http.Handler

	// HealthCheck проверка зависимостей для /health, nil = всегда ok
	HealthCheck func(ctx context.Context) error
}

// NewRouter собирает маршруты /api/v1 и служебные endpoints
func NewRouter(h *Handlers, opts Options) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.RequestID(opts.Logger))
	if opts.HTTPMetrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.HTTPMetrics))
	}

	if opts.MetricsHandler != nil {
		r.Handle(opts.MetricsPath, opts.MetricsHandler).Methods(http.MethodGet)
	}
	r.HandleFunc("/health", healthHandler(opts.HealthCheck)).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/clients/register", h.RegisterClient.Handle).Methods(http.MethodPost)
	api.HandleFunc("/services", h.ListCatalog.HandleServices).Methods(http.MethodGet)
	api.HandleFunc("/posts", h.ListCatalog.HandlePosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/{postId}/available-slots", h.GetAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (X-Admin-Token)
	// Регистрируются до клиентских: у клиентского subrouter пустой префикс
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Admin(opts.AdminToken))

	admin.HandleFunc("/bookings", h.GetAdminBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/status", h.TransitionStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/services", h.ManageCatalog.HandleCreateService).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId}", h.ManageCatalog.HandleUpdateService).Methods(http.MethodPut)
	admin.HandleFunc("/posts", h.ManageCatalog.HandleCreatePost).Methods(http.MethodPost)
	admin.HandleFunc("/posts/{postId}", h.ManageCatalog.HandleUpdatePost).Methods(http.MethodPut)
	admin.HandleFunc("/notifications", h.SendNotification.Handle).Methods(http.MethodPost)

	// ============================================================
	// CLIENT ROUTES (Bearer токен)
	// ============================================================

	client := api.PathPrefix("").Subrouter()
	client.Use(middleware.Auth(opts.Tokens))

	// --- Профиль ---
	client.HandleFunc("/me", h.GetProfile.Handle).Methods(http.MethodGet)
	client.HandleFunc("/me", h.UpdateProfile.Handle).Methods(http.MethodPatch)
	client.HandleFunc("/me/bookings", h.GetClientBookings.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	client.HandleFunc("/bookings", h.CreateBooking.Handle).Methods(http.MethodPost)
	client.HandleFunc("/bookings/{bookingId}", h.GetBooking.Handle).Methods(http.MethodGet)
	client.HandleFunc("/bookings/{bookingId}/progress", h.GetBookingProgress.Handle).Methods(http.MethodGet)
	client.HandleFunc("/bookings/{bookingId}/cancel", h.CancelBooking.Handle).Methods(http.MethodPatch)
	client.HandleFunc("/bookings/{bookingId}/rating", h.RateBooking.Handle).Methods(http.MethodPost)

	// --- Уведомления ---
	client.HandleFunc("/me/notifications", h.ListNotifications.Handle).Methods(http.MethodGet)
	client.HandleFunc("/me/notifications/{notificationId}/read", h.MarkNotificationRead.Handle).Methods(http.MethodPatch)

	return r
}

func healthHandler(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				handlers.RespondError(w, http.StatusServiceUnavailable, msgUnhealthy)
				return
			}
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
