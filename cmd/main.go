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
	"github.com/redis/go-redis/v9"

	createAppointmentHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/create_appointment"
	deleteAppointmentHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/delete_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_available_slots"
	getCalendarHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_calendar"
	getProfileHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_profile"
	getServiceHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_service"
	getSessionHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_session"
	listMastersHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/list_masters"
	listServicesHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/list_services"
	loginHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/login"
	logoutHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/logout"
	registerHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/register"
	toggleThemeHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/toggle_theme"
	updateProfileHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/update_profile"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/availability"
	"github.com/m04kA/SMC-BarberBooking/internal/config"
	sessionStore "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/session"
	submissionRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/submission"
	"github.com/m04kA/SMC-BarberBooking/internal/integrations/bookingapi"
	catalogService "github.com/m04kA/SMC-BarberBooking/internal/service/catalog"
	profileService "github.com/m04kA/SMC-BarberBooking/internal/service/profile"
	sessionService "github.com/m04kA/SMC-BarberBooking/internal/service/session"
	createAppointmentUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_available_slots"
	getCalendarUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_calendar"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/metrics"
)

func main() {
	// Загружаем конфигурацию
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

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

	log.Info("Starting SMC-BarberBooking...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Расписание барбершопа
	location, err := cfg.Schedule.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Schedule.Timezone, err)
	}

	engine, err := availability.NewEngine(availability.Config{
		Location:        location,
		OpenTime:        cfg.Schedule.OpenTime,
		CloseTime:       cfg.Schedule.CloseTime,
		SlotStepMinutes: cfg.Schedule.SlotStepMinutes,
	})
	if err != nil {
		log.Fatal("Failed to build availability engine: %v", err)
	}
	log.Info("Schedule: %s-%s every %d min (%s)",
		cfg.Schedule.OpenTime, cfg.Schedule.CloseTime, cfg.Schedule.SlotStepMinutes, cfg.Schedule.Timezone)

	// Хранилище сессий
	var sessions sessionStore.Store
	switch cfg.Session.Storage {
	case config.StorageRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr: cfg.Session.RedisAddr,
			DB:   cfg.Session.RedisDB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Session.RedisAddr, err)
		}

		sessions = sessionStore.NewRedisStore(redisClient, cfg.Session.SessionTTL())
		log.Info("Session storage: redis (addr=%s, db=%d)", cfg.Session.RedisAddr, cfg.Session.RedisDB)
	default:
		sessions = sessionStore.NewMemoryStore(cfg.Session.SessionTTL())
		log.Info("Session storage: memory")
	}

	// Журнал отправленных записей
	var ledger createAppointmentUC.SubmissionLedger
	switch cfg.Ledger.Storage {
	case config.StoragePostgres:
		db, err := sql.Open("postgres", cfg.Ledger.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Ledger.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Ledger.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Ledger.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Ledger.Host, cfg.Ledger.Port, cfg.Ledger.DBName)

		ledger = submissionRepo.NewRepository(db).WithPendingTTL(cfg.Ledger.PendingTTLDuration())
	default:
		ledger = submissionRepo.NewMemoryRepository().WithPendingTTL(cfg.Ledger.PendingTTLDuration())
		log.Info("Submission ledger: memory")
	}

	// Клиент Booking API
	apiClient := bookingapi.NewClient(
		cfg.BookingAPI.URL,
		time.Duration(cfg.BookingAPI.Timeout)*time.Second,
		log,
	)
	log.Info("Booking API client initialized (url=%s, timeout=%ds)", cfg.BookingAPI.URL, cfg.BookingAPI.Timeout)

	// Инициализируем сервисы
	sessionSvc := sessionService.NewService(sessions, apiClient, log)
	catalogSvc := catalogService.NewService(apiClient, log)
	profileSvc := profileService.NewService(apiClient, log)

	unsubscribe := sessionSvc.Subscribe(func(e sessionService.Event) {
		log.Debug("Session event: kind=%s, session=%s, theme=%s", e.Kind, e.Session.ID, e.Session.Theme)
	})
	defer unsubscribe()

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(apiClient, engine, log)
	getCalendarUseCase := getCalendarUC.NewUseCase(apiClient, engine, log)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(apiClient, ledger, engine, log)

	if cfg.Metrics.Enabled {
		apiClient.WithObserver(metricsCollector)
		getAvailableSlotsUseCase.WithObserver(metricsCollector)
		createAppointmentUseCase.WithObserver(metricsCollector)
	}

	// Инициализируем handlers
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getService := getServiceHandler.NewHandler(catalogSvc, log)
	listMasters := listMastersHandler.NewHandler(catalogSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, log)
	getSession := getSessionHandler.NewHandler(log)
	login := loginHandler.NewHandler(sessionSvc, log)
	register := registerHandler.NewHandler(sessionSvc, log)
	logout := logoutHandler.NewHandler(sessionSvc, log)
	toggleTheme := toggleThemeHandler.NewHandler(sessionSvc, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, sessionSvc, log)
	getProfile := getProfileHandler.NewHandler(profileSvc, sessionSvc, log)
	updateProfile := updateProfileHandler.NewHandler(profileSvc, sessionSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(profileSvc, sessionSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix, каждый запрос получает сессию
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Session(sessionSvc, cfg.Session.CookieName, cfg.Session.SessionTTL(), log))

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// --- Каталог ---
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}", getService.Handle).Methods(http.MethodGet)
	api.HandleFunc("/masters", listMasters.Handle).Methods(http.MethodGet)

	// --- Календарь и слоты ---
	api.HandleFunc("/services/{serviceId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/calendar", getCalendar.Handle).Methods(http.MethodGet)

	// --- Сессия ---
	api.HandleFunc("/session", getSession.Handle).Methods(http.MethodGet)
	api.HandleFunc("/session/login", login.Handle).Methods(http.MethodPost)
	api.HandleFunc("/session/register", register.Handle).Methods(http.MethodPost)
	api.HandleFunc("/session/logout", logout.Handle).Methods(http.MethodPost)
	api.HandleFunc("/session/theme", toggleTheme.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют вход в систему)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", deleteAppointment.Handle).Methods(http.MethodDelete)

	// --- Профиль ---
	protected.HandleFunc("/profile", getProfile.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/profile", updateProfile.Handle).Methods(http.MethodPatch)

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

	log.Info("Server stopped gracefully")
}
