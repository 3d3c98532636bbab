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

	cancelAppointmentHandler "github.com/m04kA/TRG-ScheduleService/internal/api/handlers/cancel_appointment"
	confirmAppointmentHandler "github.com/m04kA/TRG-ScheduleService/internal/api/handlers/confirm_appointment"
	createAppointmentHandler "github.com/m04kA/TRG-ScheduleService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/TRG-ScheduleService/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/m04kA/TRG-ScheduleService/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/TRG-ScheduleService/internal/api/handlers/get_available_slots"
	getPatientAppointmentsHandler "github.com/m04kA/TRG-ScheduleService/internal/api/handlers/get_patient_appointments"
	getScheduleConfigHandler "github.com/m04kA/TRG-ScheduleService/internal/api/handlers/get_schedule_config"
	getTherapistAppointmentsHandler "github.com/m04kA/TRG-ScheduleService/internal/api/handlers/get_therapist_appointments"
	updateAvailabilityHandler "github.com/m04kA/TRG-ScheduleService/internal/api/handlers/update_availability"
	updateScheduleConfigHandler "github.com/m04kA/TRG-ScheduleService/internal/api/handlers/update_schedule_config"
	"github.com/m04kA/TRG-ScheduleService/internal/api/middleware"
	"github.com/m04kA/TRG-ScheduleService/internal/config"
	appointmentRepo "github.com/m04kA/TRG-ScheduleService/internal/infra/storage/appointment"
	availabilityRepo "github.com/m04kA/TRG-ScheduleService/internal/infra/storage/availability"
	scheduleConfigRepo "github.com/m04kA/TRG-ScheduleService/internal/infra/storage/scheduleconfig"
	directoryClient "github.com/m04kA/TRG-ScheduleService/internal/integrations/directory"
	appointmentsService "github.com/m04kA/TRG-ScheduleService/internal/service/appointments"
	availabilityService "github.com/m04kA/TRG-ScheduleService/internal/service/availability"
	scheduleConfigService "github.com/m04kA/TRG-ScheduleService/internal/service/scheduleconfig"
	createAppointmentUC "github.com/m04kA/TRG-ScheduleService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/TRG-ScheduleService/internal/usecase/get_available_slots"
	"github.com/m04kA/TRG-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/TRG-ScheduleService/pkg/logger"
	"github.com/m04kA/TRG-ScheduleService/pkg/metrics"
	"github.com/m04kA/TRG-ScheduleService/pkg/simpletxmanager"
	"github.com/m04kA/TRG-ScheduleService/pkg/txmanager"
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

	log.Info("Starting TRG-ScheduleService...")
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

	// Клиент сервиса профилей (терапевты и пациенты)
	dirClient := directoryClient.NewClient(
		cfg.DirectoryService.URL,
		time.Duration(cfg.DirectoryService.Timeout)*time.Second,
		log,
	)
	log.Info("Directory client initialized (url=%s, timeout=%ds)",
		cfg.DirectoryService.URL, cfg.DirectoryService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository    *appointmentRepo.Repository
		availabilityRepository   *availabilityRepo.Repository
		scheduleConfigRepository *scheduleConfigRepo.Repository
	)

	// Общий интерфейс для обоих менеджеров транзакций
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		scheduleConfigRepository = scheduleConfigRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		scheduleConfigRepository = scheduleConfigRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, log)
	availabilitySvc := availabilityService.NewService(availabilityRepository, txMgr, log)
	scheduleConfigSvc := scheduleConfigService.NewService(scheduleConfigRepository, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		availabilityRepository,
		scheduleConfigRepository,
		dirClient,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		availabilityRepository,
		appointmentRepository,
		scheduleConfigRepository,
		dirClient,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	confirmAppointment := confirmAppointmentHandler.NewHandler(appointmentsSvc, log)
	getPatientAppointments := getPatientAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getTherapistAppointments := getTherapistAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(availabilitySvc, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(scheduleConfigSvc, log)
	updateScheduleConfig := updateScheduleConfigHandler.NewHandler(scheduleConfigSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты терапевта на дату
	api.HandleFunc("/therapists/{therapistId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Недельное расписание терапевта
	api.HandleFunc("/therapists/{therapistId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Конфигурация расписания терапевта
	api.HandleFunc("/therapists/{therapistId}/schedule-config",
		getScheduleConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Сеансы ---
	// Запись на сеанс
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение сеанса по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена сеанса
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Подтверждение сеанса терапевтом
	protected.HandleFunc("/appointments/{appointmentId}/confirm", confirmAppointment.Handle).Methods(http.MethodPatch)

	// История сеансов пациента
	protected.HandleFunc("/patients/{patientId}/appointments", getPatientAppointments.Handle).Methods(http.MethodGet)

	// --- Кабинет терапевта ---
	// Сеансы терапевта с фильтрацией
	protected.HandleFunc("/therapists/{therapistId}/appointments", getTherapistAppointments.Handle).Methods(http.MethodGet)

	// Замена недельного расписания
	protected.HandleFunc("/therapists/{therapistId}/availability", updateAvailability.Handle).Methods(http.MethodPut)

	// Обновление конфигурации расписания
	protected.HandleFunc("/therapists/{therapistId}/schedule-config", updateScheduleConfig.Handle).Methods(http.MethodPut)

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
