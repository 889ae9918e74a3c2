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
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	cancelBookingHandler "github.com/m04kA/barbershop-booking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/barbershop-booking/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/barbershop-booking/internal/api/handlers/get_available_slots"
	getBarbershopHandler "github.com/m04kA/barbershop-booking/internal/api/handlers/get_barbershop"
	getBarbershopsHandler "github.com/m04kA/barbershop-booking/internal/api/handlers/get_barbershops"
	getDayBookingsHandler "github.com/m04kA/barbershop-booking/internal/api/handlers/get_day_bookings"
	getUserBookingsHandler "github.com/m04kA/barbershop-booking/internal/api/handlers/get_user_bookings"
	healthHandler "github.com/m04kA/barbershop-booking/internal/api/handlers/health"
	"github.com/m04kA/barbershop-booking/internal/api/middleware"
	"github.com/m04kA/barbershop-booking/internal/config"
	barbershopRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/barbershop"
	bookingRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/booking"
	"github.com/m04kA/barbershop-booking/internal/infra/storage/migrations"
	barbershopsService "github.com/m04kA/barbershop-booking/internal/service/barbershops"
	bookingsService "github.com/m04kA/barbershop-booking/internal/service/bookings"
	createBookingUC "github.com/m04kA/barbershop-booking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/barbershop-booking/internal/usecase/get_available_slots"
	"github.com/m04kA/barbershop-booking/pkg/dbmetrics"
	"github.com/m04kA/barbershop-booking/pkg/logger"
	"github.com/m04kA/barbershop-booking/pkg/metrics"
	"github.com/m04kA/barbershop-booking/pkg/telemetry"
	"github.com/m04kA/barbershop-booking/pkg/txmanager"
)

const configPath = "config.toml"

func main() {
	// Загружаем конфигурацию (config.toml, затем .env и переменные BOOKING_*)
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

	log.Info("Starting barbershop-booking...")

	// Контекст фоновых задач, отменяется при остановке
	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	// Сетка слотов и часовой пояс барбершопов
	schedule, err := cfg.Booking.Schedule()
	if err != nil {
		log.Fatal("Invalid booking schedule: %v", err)
	}
	candidates, err := schedule.CandidateTimes()
	if err != nil {
		log.Fatal("Failed to build slot grid: %v", err)
	}
	log.Info("Slot grid: %s..%s every %d min in %s (%d slots)",
		schedule.OpeningTime, schedule.ClosingTime, schedule.StepMinutes, schedule.Location, len(candidates))

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Трассировка (пустой endpoint отключает экспорт)
	shutdownTracing, err := telemetry.Setup(appCtx, cfg.Metrics.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.Insecure)
	if err != nil {
		log.Fatal("Failed to initialize tracing: %v", err)
	}
	if cfg.Tracing.Endpoint != "" {
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.Endpoint)
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
	if err := db.PingContext(appCtx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обёртка работает как обычный *sql.DB
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Применяем миграции
	if cfg.Migrations.AutoApply {
		migrator, err := migrations.NewMigrator(wrappedDB.Unwrap(), log)
		if err != nil {
			log.Fatal("Failed to initialize migrator: %v", err)
		}
		if err := migrator.Up(appCtx); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	barbershopRepository := barbershopRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		txMgr,
		log,
	)
	barbershopSvc := barbershopsService.NewService(
		barbershopRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		barbershopRepository,
		schedule.Location,
		candidates,
		metricsCollector,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		barbershopRepository,
		schedule.Location,
		candidates,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getDayBookings := getDayBookingsHandler.NewHandler(bookingSvc, schedule.Location, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, schedule.Location, log)
	getBarbershops := getBarbershopsHandler.NewHandler(barbershopSvc, log)
	getBarbershop := getBarbershopHandler.NewHandler(barbershopSvc, log)
	health := healthHandler.NewHandler(wrappedDB, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	auth := middleware.Auth(cfg.Auth.JWTSecret, log)

	// Создание бронирования ограничено по IP
	createHandler := http.Handler(http.HandlerFunc(createBooking.Handle))
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(appCtx, cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		createHandler = middleware.RateLimit(limiter, log)(createHandler)
		log.Info("Rate limit for POST /booking: %.2f rps, burst %d",
			cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// Каталог
	r.HandleFunc("/barbershop", getBarbershops.Handle).Methods(http.MethodGet)
	r.HandleFunc("/barbershop/{id}", getBarbershop.Handle).Methods(http.MethodGet)

	// Свободные слоты услуги на день
	r.HandleFunc("/services/{serviceId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Бронирования услуги за день
	r.HandleFunc("/booking", getDayBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <jwt>)
	// ============================================================

	r.Handle("/booking", auth(createHandler)).Methods(http.MethodPost)
	r.Handle("/booking/{id}", auth(http.HandlerFunc(cancelBooking.Handle))).Methods(http.MethodDelete)
	r.Handle("/booking/{userId}", auth(http.HandlerFunc(getUserBookings.Handle))).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(r, cfg.Metrics.ServiceName),
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

	// Останавливаем фоновые задачи и сбор метрик connection pool
	cancelApp()
	close(stopMetricsCh)

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
