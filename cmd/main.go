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

	cancelReservationHandler "github.com/manueles91/stella-booking-service/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/manueles91/stella-booking-service/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/manueles91/stella-booking-service/internal/api/handlers/get_available_slots"
	getBookableItemHandler "github.com/manueles91/stella-booking-service/internal/api/handlers/get_bookable_item"
	getBookableItemsHandler "github.com/manueles91/stella-booking-service/internal/api/handlers/get_bookable_items"
	getEligibleEmployeesHandler "github.com/manueles91/stella-booking-service/internal/api/handlers/get_eligible_employees"
	getMonthAvailabilityHandler "github.com/manueles91/stella-booking-service/internal/api/handlers/get_month_availability"
	getReservationHandler "github.com/manueles91/stella-booking-service/internal/api/handlers/get_reservation"
	listReservationsHandler "github.com/manueles91/stella-booking-service/internal/api/handlers/list_reservations"
	"github.com/manueles91/stella-booking-service/internal/api/middleware"
	"github.com/manueles91/stella-booking-service/internal/config"
	catalogRepo "github.com/manueles91/stella-booking-service/internal/infra/storage/catalog"
	commitmentsRepo "github.com/manueles91/stella-booking-service/internal/infra/storage/commitments"
	staffRepo "github.com/manueles91/stella-booking-service/internal/infra/storage/staff"
	catalogService "github.com/manueles91/stella-booking-service/internal/service/catalog"
	reservationsService "github.com/manueles91/stella-booking-service/internal/service/reservations"
	staffService "github.com/manueles91/stella-booking-service/internal/service/staff"
	createReservationUC "github.com/manueles91/stella-booking-service/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/manueles91/stella-booking-service/internal/usecase/get_available_slots"
	getMonthAvailabilityUC "github.com/manueles91/stella-booking-service/internal/usecase/get_month_availability"
	"github.com/manueles91/stella-booking-service/pkg/dbmetrics"
	"github.com/manueles91/stella-booking-service/pkg/logger"
	"github.com/manueles91/stella-booking-service/pkg/metrics"
	"github.com/manueles91/stella-booking-service/pkg/simpletxmanager"
	"github.com/manueles91/stella-booking-service/pkg/txmanager"
	"github.com/manueles91/stella-booking-service/pkg/types"
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

	log.Info("Starting stella-booking-service...")
	log.Info("Configuration loaded from config.toml")

	// Рабочие часы салона из конфигурации
	businessStart, err := types.ParseTimeString(cfg.Booking.BusinessHoursStart)
	if err != nil {
		log.Fatal("Invalid booking.business_hours_start: %v", err)
	}
	businessEnd, err := types.ParseTimeString(cfg.Booking.BusinessHoursEnd)
	if err != nil {
		log.Fatal("Invalid booking.business_hours_end: %v", err)
	}
	businessHours, err := types.NewInterval(businessStart, businessEnd)
	if err != nil {
		log.Fatal("Invalid business hours: %v", err)
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

	// Инициализируем репозитории (с метриками или без)
	var (
		catalogRepository     *catalogRepo.Repository
		staffRepository       *staffRepo.Repository
		commitmentsRepository *commitmentsRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		staffRepository = staffRepo.NewRepository(wrappedDB)
		commitmentsRepository = commitmentsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		catalogRepository = catalogRepo.NewRepository(db)
		staffRepository = staffRepo.NewRepository(db)
		commitmentsRepository = commitmentsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(catalogRepository, cfg.Booking.CollationLocale, log)
	staffSvc := staffService.NewService(staffRepository, log)
	reservationsSvc := reservationsService.NewService(commitmentsRepository, log)

	slotsPolicy := getAvailableSlotsUC.Policy{
		CadenceMinutes: cfg.Booking.SlotCadenceMinutes,
		BusinessHours:  businessHours,
		ClosedWeekdays: cfg.Booking.ClosedWeekdays,
		PendingBlocks:  cfg.Booking.PendingBlocks,
	}

	monthPolicy := getMonthAvailabilityUC.Policy{
		Workers:    cfg.Booking.MonthWorkers,
		DayTimeout: time.Duration(cfg.Booking.DayTimeoutSeconds) * time.Second,
		FetchRate:  cfg.Booking.FetchRatePerSecond,
		FetchBurst: cfg.Booking.FetchBurst,
	}

	reservationPolicy := createReservationUC.Policy{
		CadenceMinutes: cfg.Booking.SlotCadenceMinutes,
		BusinessHours:  businessHours,
		ClosedWeekdays: cfg.Booking.ClosedWeekdays,
		PendingBlocks:  cfg.Booking.PendingBlocks,
	}

	// Метрики в usecases опциональны: nil-интерфейс выключает наблюдение
	var slotsMetrics getAvailableSlotsUC.MetricsRecorder
	var monthMetrics getMonthAvailabilityUC.MetricsRecorder
	if cfg.Metrics.Enabled {
		slotsMetrics = metricsCollector
		monthMetrics = metricsCollector
	}

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		catalogSvc,
		staffSvc,
		staffRepository,
		commitmentsRepository,
		slotsPolicy,
		slotsMetrics,
		log,
	)

	getMonthAvailabilityUseCase := getMonthAvailabilityUC.NewUseCase(
		getAvailableSlotsUseCase,
		monthPolicy,
		monthMetrics,
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		catalogSvc,
		staffSvc,
		staffRepository,
		commitmentsRepository,
		txMgr,
		reservationPolicy,
		log,
	)

	// Инициализируем handlers
	getBookableItems := getBookableItemsHandler.NewHandler(catalogSvc, log)
	getBookableItem := getBookableItemHandler.NewHandler(catalogSvc, log)
	getEligibleEmployees := getEligibleEmployeesHandler.NewHandler(catalogSvc, staffSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getMonthAvailability := getMonthAvailabilityHandler.NewHandler(getMonthAvailabilityUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationsSvc, log)

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

	// Каталог бронируемых позиций
	api.HandleFunc("/catalog/items", getBookableItems.Handle).Methods(http.MethodGet)
	api.HandleFunc("/catalog/items/{itemType}/{itemId}", getBookableItem.Handle).Methods(http.MethodGet)
	api.HandleFunc("/catalog/items/{itemType}/{itemId}/employees", getEligibleEmployees.Handle).Methods(http.MethodGet)

	// Доступность слотов
	api.HandleFunc("/availability/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/month", getMonthAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

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
