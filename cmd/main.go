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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createBookingHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/get_booking"
	getNextSlotHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/get_next_slot"
	getSettingsHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/get_settings"
	healthHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/health"
	listBookingsHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/list_bookings"
	timeOffHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/time_off"
	updateBookingStatusHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/update_booking_status"
	updateSettingsHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/update_settings"
	workingHoursHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/working_hours"
	"github.com/m04kA/SMC-ClinicScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicScheduler/internal/config"
	bookingRepo "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/booking"
	calendarRepo "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/calendar"
	clientRepo "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/client"
	settingsRepo "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/settings"
	auditServiceClient "github.com/m04kA/SMC-ClinicScheduler/internal/integrations/auditservice"
	bookingsService "github.com/m04kA/SMC-ClinicScheduler/internal/service/bookings"
	calendarService "github.com/m04kA/SMC-ClinicScheduler/internal/service/calendar"
	settingsService "github.com/m04kA/SMC-ClinicScheduler/internal/service/settings"
	"github.com/m04kA/SMC-ClinicScheduler/internal/slotgen"
	createBookingUC "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/create_booking"
	findNextSlotUC "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/find_next_slot"
	getAvailableSlotsUC "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ClinicScheduler/migrations"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/logger"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/metrics"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/txmanager"
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

	log.Info("Starting SMC-ClinicScheduler...")
	log.Info("Configuration loaded from config.toml")

	loc, err := cfg.Clinic.Location()
	if err != nil {
		log.Fatal("Failed to load clinic timezone %q: %v", cfg.Clinic.Timezone, err)
	}
	log.Info("Clinic timezone: %s", loc)

	// Метрики регистрируются всегда; при выключенных метриках реестр просто не публикуется
	var registry prometheus.Registerer = prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		registry = prometheus.DefaultRegisterer
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}
	metricsCollector := metrics.New(cfg.Metrics.ServiceName, registry)
	stopMetricsCh := make(chan struct{})

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

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		pingCancel()
		log.Fatal("Failed to ping database: %v", err)
	}
	pingCancel()
	log.Info("Database connection established")

	if cfg.Database.AutoMigrate {
		if err := migrations.Run(db, log); err != nil {
			log.Fatal("Failed to run migrations: %v", err)
		}
	}

	// Оборачиваем БД для сбора метрик запросов и пула соединений
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	calendarRepository := calendarRepo.NewRepository(wrappedDB)
	clientRepository := clientRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем клиенты внешних сервисов
	auditClient := auditServiceClient.NewClient(cfg.AuditService.URL, cfg.AuditService.TimeoutDuration(), log)
	if cfg.AuditService.URL == "" {
		log.Warn("Audit service URL is empty, audit events will only be logged")
	}

	// Инициализируем сервисы
	settingsSvc := settingsService.NewService(settingsRepository, cfg.Clinic.Policy(), log)
	calendarSvc := calendarService.NewService(calendarRepository, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		auditClient,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	generator := slotgen.New(loc)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		calendarRepository,
		settingsSvc,
		generator,
		txMgr,
		metricsCollector,
		log,
	)

	findNextSlotUseCase := findNextSlotUC.NewUseCase(getAvailableSlotsUseCase, settingsSvc, loc, log)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		clientRepository,
		calendarRepository,
		auditClient,
		txMgr,
		metricsCollector,
		loc,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getNextSlot := getNextSlotHandler.NewHandler(findNextSlotUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	workingHours := workingHoursHandler.NewHandler(calendarSvc, log)
	timeOff := timeOffHandler.NewHandler(calendarSvc, log)
	health := healthHandler.NewHandler(db, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Слоты ---
	// /slots/next регистрируется раньше, чтобы не совпадать с другими маршрутами /slots
	api.HandleFunc("/slots/next", getNextSlot.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Записи ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPost)

	// --- Настройки расписания ---
	api.HandleFunc("/settings/scheduling", getSettings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/settings/scheduling", updateSettings.Handle).Methods(http.MethodPut)

	// --- Рабочие часы и блокировки ---
	api.HandleFunc("/working-hours", workingHours.List).Methods(http.MethodGet)
	api.HandleFunc("/working-hours", workingHours.Create).Methods(http.MethodPost)
	api.HandleFunc("/working-hours/{ruleId}", workingHours.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/time-off", timeOff.List).Methods(http.MethodGet)
	api.HandleFunc("/time-off", timeOff.Create).Methods(http.MethodPost)
	api.HandleFunc("/time-off/{timeOffId}", timeOff.Delete).Methods(http.MethodDelete)

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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

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
