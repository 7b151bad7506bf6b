package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-PostBookingService/internal/api"
	cancelBookingHandler "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/create_booking"
	getAdminBookingsHandler "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/get_admin_bookings"
	getAvailableSlotsHandler "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/get_booking"
	getBookingProgressHandler "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/get_booking_progress"
	getClientBookingsHandler "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/get_client_bookings"
	getProfileHandler "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/get_profile"
	listCatalogHandler "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/list_catalog"
	listNotificationsHandler "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/list_notifications"
	manageCatalogHandler "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/manage_catalog"
	markNotificationReadHandler "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/mark_notification_read"
	rateBookingHandler "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/rate_booking"
	registerClientHandler "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/register_client"
	sendNotificationHandler "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/send_notification"
	transitionStatusHandler "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/transition_status"
	updateProfileHandler "github.com/m04kA/SMC-PostBookingService/internal/api/handlers/update_profile"
	"github.com/m04kA/SMC-PostBookingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-PostBookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-PostBookingService/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/SMC-PostBookingService/internal/infra/storage/client"
	notificationRepo "github.com/m04kA/SMC-PostBookingService/internal/infra/storage/notification"
	"github.com/m04kA/SMC-PostBookingService/internal/integrations/pushgateway"
	bookingsService "github.com/m04kA/SMC-PostBookingService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-PostBookingService/internal/service/catalog"
	clientsService "github.com/m04kA/SMC-PostBookingService/internal/service/clients"
	notificationsService "github.com/m04kA/SMC-PostBookingService/internal/service/notifications"
	createBookingUC "github.com/m04kA/SMC-PostBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-PostBookingService/internal/usecase/get_available_slots"
	registerClientUC "github.com/m04kA/SMC-PostBookingService/internal/usecase/register_client"
	transitionStatusUC "github.com/m04kA/SMC-PostBookingService/internal/usecase/transition_status"
	updateProfileUC "github.com/m04kA/SMC-PostBookingService/internal/usecase/update_client_profile"
	"github.com/m04kA/SMC-PostBookingService/internal/worker"
	"github.com/m04kA/SMC-PostBookingService/internal/worker/outbox"
	progressWorker "github.com/m04kA/SMC-PostBookingService/internal/worker/progress"
	"github.com/m04kA/SMC-PostBookingService/pkg/auth"
	"github.com/m04kA/SMC-PostBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PostBookingService/pkg/keylock"
	"github.com/m04kA/SMC-PostBookingService/pkg/logger"
	"github.com/m04kA/SMC-PostBookingService/pkg/metrics"
	"github.com/m04kA/SMC-PostBookingService/pkg/mq"
	"github.com/m04kA/SMC-PostBookingService/pkg/txmanager"
)

// jobTimeout ограничение одной итерации фоновой задачи
const jobTimeout = time.Minute

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-PostBookingService...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Business.Location()
	if err != nil {
		log.Fatal("Invalid business timezone: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Обёртка пишет метрики запросов, при выключенных метриках работает как *sql.DB
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	clientRepository := clientRepo.NewRepository(wrappedDB)
	notificationRepository := notificationRepo.NewRepository(wrappedDB)

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLDuration())
	if err != nil {
		log.Fatal("Failed to initialize token manager: %v", err)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, metricsCollector, location, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)
	clientSvc := clientsService.NewService(clientRepository, log)
	notificationSvc := notificationsService.NewService(notificationRepository, clientRepository, txMgr, log)

	// Инициализируем use cases
	registerClientUseCase := registerClientUC.NewUseCase(clientRepository, tokens, log)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		location,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		clientRepository,
		txMgr,
		keylock.New(),
		metricsCollector,
		location,
		log,
	)

	updateProfileUseCase := updateProfileUC.NewUseCase(
		clientRepository,
		bookingRepository,
		notificationRepository,
		catalogRepository,
		txMgr,
		metricsCollector,
		log,
	)

	transitionStatusUseCase := transitionStatusUC.NewUseCase(
		bookingRepository,
		notificationRepository,
		txMgr,
		metricsCollector,
		location,
		log,
	)

	// Инициализируем handlers
	handlers := &api.Handlers{
		RegisterClient:       registerClientHandler.NewHandler(registerClientUseCase, log),
		ListCatalog:          listCatalogHandler.NewHandler(catalogSvc, log),
		GetAvailableSlots:    getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log),
		GetProfile:           getProfileHandler.NewHandler(clientSvc, log),
		UpdateProfile:        updateProfileHandler.NewHandler(updateProfileUseCase, log),
		GetClientBookings:    getClientBookingsHandler.NewHandler(bookingSvc, log),
		CreateBooking:        createBookingHandler.NewHandler(createBookingUseCase, log),
		GetBooking:           getBookingHandler.NewHandler(bookingSvc, log),
		GetBookingProgress:   getBookingProgressHandler.NewHandler(bookingSvc, log),
		CancelBooking:        cancelBookingHandler.NewHandler(bookingSvc, log),
		RateBooking:          rateBookingHandler.NewHandler(bookingSvc, log),
		ListNotifications:    listNotificationsHandler.NewHandler(notificationSvc, log),
		MarkNotificationRead: markNotificationReadHandler.NewHandler(notificationSvc, log),
		GetAdminBookings:     getAdminBookingsHandler.NewHandler(bookingSvc, log),
		TransitionStatus:     transitionStatusHandler.NewHandler(transitionStatusUseCase, log),
		ManageCatalog:        manageCatalogHandler.NewHandler(catalogSvc, log),
		SendNotification:     sendNotificationHandler.NewHandler(notificationSvc, log),
	}

	// Настраиваем роутер
	routerOpts := api.Options{
		Tokens:      tokens,
		AdminToken:  cfg.Auth.AdminToken,
		Logger:      log,
		HealthCheck: wrappedDB.PingContext,
	}
	if cfg.Metrics.Enabled {
		routerOpts.HTTPMetrics = metricsCollector
		routerOpts.MetricsPath = cfg.Metrics.Path
		routerOpts.MetricsHandler = promhttp.Handler()
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}
	r := api.NewRouter(handlers, routerOpts)

	// Фоновые задачи
	scheduler := worker.NewScheduler(jobTimeout, log)

	var publisher *mq.Publisher
	if cfg.Outbox.Enabled {
		var transport outbox.Transport
		switch cfg.Outbox.Transport {
		case config.TransportAMQP:
			publisher, err = mq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
			if err != nil {
				log.Fatal("Failed to connect to RabbitMQ: %v", err)
			}
			transport = outbox.NewAMQPTransport(publisher)
			log.Info("Outbox transport: amqp (exchange=%s)", cfg.AMQP.Exchange)
		case config.TransportHTTP:
			gateway := pushgateway.NewClient(
				cfg.PushGateway.URL,
				time.Duration(cfg.PushGateway.Timeout)*time.Second,
				log,
			)
			transport = outbox.NewHTTPTransport(gateway)
			log.Info("Outbox transport: http (url=%s, timeout=%ds)", cfg.PushGateway.URL, cfg.PushGateway.Timeout)
		}

		retry := outbox.RetryPolicy{MaxAttempts: cfg.Outbox.MaxAttempts, Backoff: cfg.Outbox.RetryBackoffDuration()}
		relay := outbox.NewRelay(notificationRepository, txMgr, transport, metricsCollector, cfg.Outbox.BatchSize, retry, log)
		if err := scheduler.AddJob(cfg.Outbox.Schedule, "outbox-relay", relay.RunOnce); err != nil {
			log.Fatal("Failed to schedule outbox relay: %v", err)
		}
	}

	if cfg.Progress.Enabled {
		if !cfg.Metrics.Enabled {
			log.Warn("Progress exporter requires metrics, skipping")
		} else {
			exporter := progressWorker.NewExporter(bookingRepository, metricsCollector, log)
			if err := scheduler.AddJob(cfg.Progress.Schedule, "progress-exporter", exporter.RunOnce); err != nil {
				log.Fatal("Failed to schedule progress exporter: %v", err)
			}
		}
	}

	scheduler.Start()

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем фоновые задачи
	scheduler.Stop()
	log.Info("Background jobs stopped")

	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close RabbitMQ connection: %v", err)
		}
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
