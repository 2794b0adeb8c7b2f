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

	cancelReservationHandler "github.com/m04kA/SMC-DealSchedulerService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/SMC-DealSchedulerService/internal/api/handlers/create_reservation"
	getEntityReservationsHandler "github.com/m04kA/SMC-DealSchedulerService/internal/api/handlers/get_entity_reservations"
	getReservationHandler "github.com/m04kA/SMC-DealSchedulerService/internal/api/handlers/get_reservation"
	getScheduleConfigHandler "github.com/m04kA/SMC-DealSchedulerService/internal/api/handlers/get_schedule_config"
	suggestLaunchDateHandler "github.com/m04kA/SMC-DealSchedulerService/internal/api/handlers/suggest_launch_date"
	updateScheduleConfigHandler "github.com/m04kA/SMC-DealSchedulerService/internal/api/handlers/update_schedule_config"
	validateLaunchDateHandler "github.com/m04kA/SMC-DealSchedulerService/internal/api/handlers/validate_launch_date"
	"github.com/m04kA/SMC-DealSchedulerService/internal/api/middleware"
	"github.com/m04kA/SMC-DealSchedulerService/internal/config"
	reservationRepo "github.com/m04kA/SMC-DealSchedulerService/internal/infra/storage/reservation"
	scheduleRepo "github.com/m04kA/SMC-DealSchedulerService/internal/infra/storage/schedule"
	catalogServiceClient "github.com/m04kA/SMC-DealSchedulerService/internal/integrations/catalogservice"
	reservationsService "github.com/m04kA/SMC-DealSchedulerService/internal/service/reservations"
	scheduleConfigService "github.com/m04kA/SMC-DealSchedulerService/internal/service/scheduleconfig"
	createReservationUC "github.com/m04kA/SMC-DealSchedulerService/internal/usecase/create_reservation"
	suggestLaunchDateUC "github.com/m04kA/SMC-DealSchedulerService/internal/usecase/suggest_launch_date"
	validateLaunchDateUC "github.com/m04kA/SMC-DealSchedulerService/internal/usecase/validate_launch_date"
	"github.com/m04kA/SMC-DealSchedulerService/pkg/civilday"
	"github.com/m04kA/SMC-DealSchedulerService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DealSchedulerService/pkg/logger"
	"github.com/m04kA/SMC-DealSchedulerService/pkg/metrics"
	"github.com/m04kA/SMC-DealSchedulerService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-DealSchedulerService/pkg/txmanager"
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

	log.Info("Starting SMC-DealSchedulerService...")
	log.Info("Configuration loaded from config.toml")

	// Календарь локального дня площадки
	calendar := civilday.NewCalendar(cfg.Scheduler.UTCOffsetHours)
	log.Info("Scheduler calendar initialized (utc_offset_hours=%d)", cfg.Scheduler.UTCOffsetHours)

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

	// Инициализируем клиента сервиса каталога
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (CatalogService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
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

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(reservationRepository, log)
	scheduleConfigSvc := scheduleConfigService.NewService(scheduleRepository, txMgr, log)

	// Инициализируем use cases
	suggestLaunchDateUseCase := suggestLaunchDateUC.NewUseCase(
		reservationRepository,
		scheduleRepository,
		catalogClient,
		calendar,
		metricsCollector,
		log,
	)

	validateLaunchDateUseCase := validateLaunchDateUC.NewUseCase(
		reservationRepository,
		scheduleRepository,
		catalogClient,
		calendar,
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		scheduleRepository,
		catalogClient,
		txMgr,
		calendar,
		log,
	)

	// Инициализируем handlers
	suggestLaunchDate := suggestLaunchDateHandler.NewHandler(suggestLaunchDateUseCase, log)
	validateLaunchDate := validateLaunchDateHandler.NewHandler(validateLaunchDateUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	getEntityReservations := getEntityReservationsHandler.NewHandler(reservationsSvc, calendar, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(scheduleConfigSvc, log)
	updateScheduleConfig := updateScheduleConfigHandler.NewHandler(scheduleConfigSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Сквозной идентификатор запроса
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
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

	// Подбор ближайшей доступной даты запуска
	api.HandleFunc("/schedule/next-available", suggestLaunchDate.Handle).Methods(http.MethodGet)

	// Проверка конкретной даты запуска
	api.HandleFunc("/schedule/validate", validateLaunchDate.Handle).Methods(http.MethodPost)

	// Эффективная политика планирования
	api.HandleFunc("/schedule/config", getScheduleConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// --- Мерчанты ---
	// Список бронирований мерчанта
	protected.HandleFunc("/entities/{entityName}/reservations", getEntityReservations.Handle).Methods(http.MethodGet)

	// --- Управление политикой планирования (для админов) ---
	protected.HandleFunc("/schedule/config", updateScheduleConfig.Handle).Methods(http.MethodPut)

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
