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

	createBookingHandler "github.com/m04kA/WorkSlot-BookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/WorkSlot-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/WorkSlot-BookingService/internal/api/handlers/get_booking"
	getProviderHandler "github.com/m04kA/WorkSlot-BookingService/internal/api/handlers/get_provider"
	getProviderBookingsHandler "github.com/m04kA/WorkSlot-BookingService/internal/api/handlers/get_provider_bookings"
	getProviderConfigHandler "github.com/m04kA/WorkSlot-BookingService/internal/api/handlers/get_provider_config"
	updateBookingStatusHandler "github.com/m04kA/WorkSlot-BookingService/internal/api/handlers/update_booking_status"
	updateProviderConfigHandler "github.com/m04kA/WorkSlot-BookingService/internal/api/handlers/update_provider_config"
	"github.com/m04kA/WorkSlot-BookingService/internal/api/middleware"
	"github.com/m04kA/WorkSlot-BookingService/internal/config"
	bookingRepo "github.com/m04kA/WorkSlot-BookingService/internal/infra/storage/booking"
	providerRepo "github.com/m04kA/WorkSlot-BookingService/internal/infra/storage/provider"
	availabilityService "github.com/m04kA/WorkSlot-BookingService/internal/service/availability"
	bookingsService "github.com/m04kA/WorkSlot-BookingService/internal/service/bookings"
	createBookingUC "github.com/m04kA/WorkSlot-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/WorkSlot-BookingService/internal/usecase/get_available_slots"
	sweepExpiredUC "github.com/m04kA/WorkSlot-BookingService/internal/usecase/sweep_expired"
	"github.com/m04kA/WorkSlot-BookingService/internal/worker/expiry"
	"github.com/m04kA/WorkSlot-BookingService/pkg/dbmetrics"
	"github.com/m04kA/WorkSlot-BookingService/pkg/logger"
	"github.com/m04kA/WorkSlot-BookingService/pkg/metrics"
	"github.com/m04kA/WorkSlot-BookingService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting WorkSlot-BookingService...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Invalid scheduling timezone %q: %v", cfg.Scheduling.Timezone, err)
	}

	// Метрики (nil, если выключены: все вызовы на nil безопасны)
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
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = db.PingContext(pingCtx)
	pingCancel()
	if err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)

	// Репозитории и transaction manager
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	providerRepository := providerRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, metricsCollector, log)
	availabilitySvc := availabilityService.NewService(providerRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		providerRepository,
		txMgr,
		metricsCollector,
		location,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		providerRepository,
		location,
		log,
	)

	sweepExpiredUseCase := sweepExpiredUC.NewUseCase(
		bookingRepository,
		metricsCollector,
		cfg.Expiry.BatchSize,
		log,
	)

	// Фоновая просрочка удержаний
	var expiryWorker *expiry.Worker
	if cfg.Expiry.Enabled {
		expiryWorker, err = expiry.NewWorker(sweepExpiredUseCase, cfg.Expiry.Schedule, log)
		if err != nil {
			log.Fatal("Failed to create expiry worker: %v", err)
		}
		expiryWorker.Start()
		log.Info("Expiry worker scheduled: %s (batch=%d)", cfg.Expiry.Schedule, cfg.Expiry.BatchSize)
	}

	// Инициализируем handlers
	getProvider := getProviderHandler.NewHandler(availabilitySvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getProviderBookings := getProviderBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getProviderConfig := getProviderConfigHandler.NewHandler(availabilitySvc, log)
	updateProviderConfig := updateProviderConfigHandler.NewHandler(availabilitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (клиенты без аутентификации)
	// ============================================================

	public := api.PathPrefix("/public").Subrouter()

	// Публичный профиль провайдера
	public.HandleFunc("/providers/{slug}", getProvider.Handle).Methods(http.MethodGet)

	// Свободные слоты на день
	public.HandleFunc("/providers/{slug}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования (с ограничением частоты)
	createBookingRoute := http.Handler(http.HandlerFunc(createBooking.Handle))
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, cfg.RateLimit.TrustProxy)
		createBookingRoute = limiter.Middleware(createBookingRoute)
		log.Info("Rate limit for booking creation: %.2f rps, burst %d, trust proxy %t",
			cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, cfg.RateLimit.TrustProxy)
	}
	public.Handle("/bookings", createBookingRoute).Methods(http.MethodPost)

	// ============================================================
	// PROVIDER ROUTES (требуют X-Provider-ID header)
	// ============================================================

	protected := api.PathPrefix("/provider").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования провайдера ---
	protected.HandleFunc("/bookings", getProviderBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPut)

	// --- Расписание и правила бронирования ---
	protected.HandleFunc("/config", getProviderConfig.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/config", updateProviderConfig.Handle).Methods(http.MethodPut)

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

	if expiryWorker != nil {
		expiryWorker.Stop(shutdownCtx)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
