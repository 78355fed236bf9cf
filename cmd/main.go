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

	cancelBookingHandler "github.com/znsteam/ZNS-MassageService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/znsteam/ZNS-MassageService/internal/api/handlers/create_booking"
	getCandidatesHandler "github.com/znsteam/ZNS-MassageService/internal/api/handlers/get_candidates"
	getPartiesHandler "github.com/znsteam/ZNS-MassageService/internal/api/handlers/get_parties"
	getSpecialistBookingsHandler "github.com/znsteam/ZNS-MassageService/internal/api/handlers/get_specialist_bookings"
	getUserBookingsHandler "github.com/znsteam/ZNS-MassageService/internal/api/handlers/get_user_bookings"
	updateNotificationsHandler "github.com/znsteam/ZNS-MassageService/internal/api/handlers/update_specialist_notifications"
	"github.com/znsteam/ZNS-MassageService/internal/api/middleware"
	"github.com/znsteam/ZNS-MassageService/internal/config"
	bookingRepo "github.com/znsteam/ZNS-MassageService/internal/infra/storage/booking"
	rosterRepo "github.com/znsteam/ZNS-MassageService/internal/infra/storage/roster"
	bookingsService "github.com/znsteam/ZNS-MassageService/internal/service/bookings"
	rosterService "github.com/znsteam/ZNS-MassageService/internal/service/roster"
	createBookingUC "github.com/znsteam/ZNS-MassageService/internal/usecase/create_booking"
	getCandidatesUC "github.com/znsteam/ZNS-MassageService/internal/usecase/get_candidates"
	"github.com/znsteam/ZNS-MassageService/pkg/dbmetrics"
	"github.com/znsteam/ZNS-MassageService/pkg/logger"
	"github.com/znsteam/ZNS-MassageService/pkg/metrics"
	"github.com/znsteam/ZNS-MassageService/pkg/simpletxmanager"
	"github.com/znsteam/ZNS-MassageService/pkg/txmanager"
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

	log.Info("Starting ZNS-MassageService...")
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

	// Политика бронирования
	policy := cfg.Booking.BookingPolicy()
	log.Info("Booking policy: client_lead=%s, lead_buffer=%s, flyover=%s, early_comer=%s, max_window=%d slots, daily_cap=%d",
		policy.ClientLeadTime, policy.LeadBuffer, policy.SpecialistFlyover,
		policy.EarlyComerTolerance, policy.MaxWindowSlots, policy.DailyBookingCap)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		rosterRepository  *rosterRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		rosterRepository = rosterRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		rosterRepository = rosterRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Загружаем и валидируем конфигурацию расписания
	// Невалидная конфигурация фатальна: лучше не стартовать, чем
	// молча отдавать кривую доступность
	rosterSvc := rosterService.NewService(rosterRepository, log)
	if err := rosterSvc.Load(context.Background()); err != nil {
		log.Fatal("Failed to load roster configuration: %v", err)
	}
	log.Info("Roster configuration loaded: %d parties, %d specialists",
		len(rosterSvc.Parties()), len(rosterSvc.Specialists()))

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, rosterSvc, log)

	// Инициализируем use cases
	getCandidatesUseCase := getCandidatesUC.NewUseCase(
		bookingRepository,
		rosterSvc,
		policy,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		rosterSvc,
		txMgr,
		policy,
		log,
	)

	// Инициализируем handlers
	getCandidates := getCandidatesHandler.NewHandler(getCandidatesUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getSpecialistBookings := getSpecialistBookingsHandler.NewHandler(bookingSvc, log)
	getParties := getPartiesHandler.NewHandler(rosterSvc, log)
	updateNotifications := updateNotificationsHandler.NewHandler(rosterSvc, log)

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

	// Список вечеринок
	api.HandleFunc("/parties", getParties.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Подбор окон ---
	protected.HandleFunc("/parties/{partyKey}/candidates", getCandidates.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	// Финализация бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Бронирования клиента
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Специалисты ---
	// Расписание специалиста на вечеринку
	protected.HandleFunc("/specialists/{specialistId}/bookings", getSpecialistBookings.Handle).Methods(http.MethodGet)

	// Флаги уведомлений специалиста
	protected.HandleFunc("/specialists/{specialistId}/notifications", updateNotifications.Handle).Methods(http.MethodPut)

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

	log.Info("Server stopped")
}
