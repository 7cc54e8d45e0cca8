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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	cancelBookingHandler "github.com/salonmarket/booking-service/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/salonmarket/booking-service/internal/api/handlers/create_booking"
	createTimeOffHandler "github.com/salonmarket/booking-service/internal/api/handlers/create_time_off"
	deleteTimeOffHandler "github.com/salonmarket/booking-service/internal/api/handlers/delete_time_off"
	getAvailableSlotsHandler "github.com/salonmarket/booking-service/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/salonmarket/booking-service/internal/api/handlers/get_booking"
	getBusinessBookingsHandler "github.com/salonmarket/booking-service/internal/api/handlers/get_business_bookings"
	getCombinedAvailabilityHandler "github.com/salonmarket/booking-service/internal/api/handlers/get_combined_availability"
	getCustomerBookingsHandler "github.com/salonmarket/booking-service/internal/api/handlers/get_customer_bookings"
	getStaffScheduleHandler "github.com/salonmarket/booking-service/internal/api/handlers/get_staff_schedule"
	joinWaitlistHandler "github.com/salonmarket/booking-service/internal/api/handlers/join_waitlist"
	updateBookingStatusHandler "github.com/salonmarket/booking-service/internal/api/handlers/update_booking_status"
	updateStaffScheduleHandler "github.com/salonmarket/booking-service/internal/api/handlers/update_staff_schedule"
	"github.com/salonmarket/booking-service/internal/api/middleware"
	"github.com/salonmarket/booking-service/internal/config"
	bookingRepo "github.com/salonmarket/booking-service/internal/infra/storage/booking"
	scheduleRepo "github.com/salonmarket/booking-service/internal/infra/storage/schedule"
	timeoffRepo "github.com/salonmarket/booking-service/internal/infra/storage/timeoff"
	waitlistRepo "github.com/salonmarket/booking-service/internal/infra/storage/waitlist"
	catalogServiceClient "github.com/salonmarket/booking-service/internal/integrations/catalogservice"
	"github.com/salonmarket/booking-service/internal/notify"
	bookingsService "github.com/salonmarket/booking-service/internal/service/bookings"
	scheduleService "github.com/salonmarket/booking-service/internal/service/schedule"
	waitlistService "github.com/salonmarket/booking-service/internal/service/waitlist"
	createBookingUC "github.com/salonmarket/booking-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/salonmarket/booking-service/internal/usecase/get_available_slots"
	getCombinedAvailabilityUC "github.com/salonmarket/booking-service/internal/usecase/get_combined_availability"
	"github.com/salonmarket/booking-service/pkg/dbmetrics"
	"github.com/salonmarket/booking-service/pkg/logger"
	"github.com/salonmarket/booking-service/pkg/metrics"
	"github.com/salonmarket/booking-service/pkg/simpletxmanager"
	"github.com/salonmarket/booking-service/pkg/txmanager"
)

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

	log.Info("Starting BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем клиент CatalogService
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("CatalogService client initialized (url=%s, timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем отправку уведомлений
	emailSender := notify.NewEmailSender(
		cfg.Notifications.SendGridAPIKey,
		cfg.Notifications.FromEmail,
		cfg.Notifications.FromName,
		log,
	)
	smsSender := notify.NewSMSSender(
		cfg.Notifications.TwilioAccountSID,
		cfg.Notifications.TwilioAuthToken,
		cfg.Notifications.TwilioFromNumber,
		log,
	)
	notifier := notify.New(emailSender, smsSender, log)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		timeOffRepository  *timeoffRepo.Repository
		waitlistRepository *waitlistRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		timeOffRepository = timeoffRepo.NewRepository(wrappedDB)
		waitlistRepository = waitlistRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		timeOffRepository = timeoffRepo.NewRepository(db)
		waitlistRepository = waitlistRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		timeOffRepository,
		catalogClient,
		txMgr,
		log,
	)
	waitlistSvc := waitlistService.NewService(
		waitlistRepository,
		catalogClient,
		notifier,
		waitlistService.RealTimeProvider{},
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		catalogClient,
		waitlistSvc,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleSvc,
		catalogClient,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		scheduleSvc,
		catalogClient,
		log,
	)
	getCombinedAvailabilityUseCase := getCombinedAvailabilityUC.NewUseCase(
		bookingRepository,
		scheduleSvc,
		catalogClient,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getCombinedAvailability := getCombinedAvailabilityHandler.NewHandler(getCombinedAvailabilityUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getBusinessBookings := getBusinessBookingsHandler.NewHandler(bookingSvc, log)
	getStaffSchedule := getStaffScheduleHandler.NewHandler(scheduleSvc, log)
	updateStaffSchedule := updateStaffScheduleHandler.NewHandler(scheduleSvc, log)
	createTimeOff := createTimeOffHandler.NewHandler(scheduleSvc, log)
	deleteTimeOff := deleteTimeOffHandler.NewHandler(scheduleSvc, log)
	joinWaitlist := joinWaitlistHandler.NewHandler(waitlistSvc, log)

	// Периодическая очистка устаревших записей листа ожидания
	cronRunner := cron.New()
	if _, err := cronRunner.AddFunc(cfg.Waitlist.ExpireSchedule, func() {
		waitlistSvc.ExpireStale(context.Background())
	}); err != nil {
		log.Fatal("Failed to schedule waitlist expiry job: %v", err)
	}
	cronRunner.Start()
	log.Info("Waitlist expiry job scheduled (%s)", cfg.Waitlist.ExpireSchedule)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты конкретного мастера
	api.HandleFunc("/businesses/{businessId}/staff/{staffId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Сводная доступность услуги по всем мастерам
	api.HandleFunc("/businesses/{businessId}/services/{serviceId}/availability",
		getCombinedAvailability.Handle).Methods(http.MethodGet)

	// Недельное расписание мастера
	api.HandleFunc("/businesses/{businessId}/staff/{staffId}/schedule",
		getStaffSchedule.Handle).Methods(http.MethodGet)

	// Запись в лист ожидания
	api.HandleFunc("/waitlist", joinWaitlist.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Смена статуса бронирования (для менеджеров)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/customers/{customerId}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// --- Управление бизнесом (для менеджеров) ---
	// Список бронирований бизнеса
	protected.HandleFunc("/businesses/{businessId}/bookings", getBusinessBookings.Handle).Methods(http.MethodGet)

	// Замена недельного расписания мастера
	protected.HandleFunc("/businesses/{businessId}/staff/{staffId}/schedule",
		updateStaffSchedule.Handle).Methods(http.MethodPut)

	// Создание и удаление time-off
	protected.HandleFunc("/businesses/{businessId}/time-off", createTimeOff.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/time-off/{timeOffId}",
		deleteTimeOff.Handle).Methods(http.MethodDelete)

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

	// Останавливаем cron и сбор метрик connection pool
	cronRunner.Stop()
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
