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
	"github.com/redis/go-redis/v9"

	approveRequestHandler "github.com/m04kA/SMC-TrainerScheduleService/internal/api/handlers/approve_request"
	cancelSessionHandler "github.com/m04kA/SMC-TrainerScheduleService/internal/api/handlers/cancel_session"
	completeSessionHandler "github.com/m04kA/SMC-TrainerScheduleService/internal/api/handlers/complete_session"
	createRequestHandler "github.com/m04kA/SMC-TrainerScheduleService/internal/api/handlers/create_request"
	createSessionHandler "github.com/m04kA/SMC-TrainerScheduleService/internal/api/handlers/create_session"
	declineRequestHandler "github.com/m04kA/SMC-TrainerScheduleService/internal/api/handlers/decline_request"
	getAvailabilityTemplateHandler "github.com/m04kA/SMC-TrainerScheduleService/internal/api/handlers/get_availability_template"
	getCalendarWindowHandler "github.com/m04kA/SMC-TrainerScheduleService/internal/api/handlers/get_calendar_window"
	getDayAvailabilityHandler "github.com/m04kA/SMC-TrainerScheduleService/internal/api/handlers/get_day_availability"
	getSessionHandler "github.com/m04kA/SMC-TrainerScheduleService/internal/api/handlers/get_session"
	listRequestsHandler "github.com/m04kA/SMC-TrainerScheduleService/internal/api/handlers/list_requests"
	listSessionsHandler "github.com/m04kA/SMC-TrainerScheduleService/internal/api/handlers/list_sessions"
	removeTimeSlotHandler "github.com/m04kA/SMC-TrainerScheduleService/internal/api/handlers/remove_time_slot"
	rescheduleSessionHandler "github.com/m04kA/SMC-TrainerScheduleService/internal/api/handlers/reschedule_session"
	toggleDayAvailabilityHandler "github.com/m04kA/SMC-TrainerScheduleService/internal/api/handlers/toggle_day_availability"
	upsertTimeSlotHandler "github.com/m04kA/SMC-TrainerScheduleService/internal/api/handlers/upsert_time_slot"
	validateSessionHandler "github.com/m04kA/SMC-TrainerScheduleService/internal/api/handlers/validate_session"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/config"
	availabilityCache "github.com/m04kA/SMC-TrainerScheduleService/internal/infra/cache/availability"
	availabilityRepo "github.com/m04kA/SMC-TrainerScheduleService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/infra/storage/memory"
	requestRepo "github.com/m04kA/SMC-TrainerScheduleService/internal/infra/storage/request"
	sessionRepo "github.com/m04kA/SMC-TrainerScheduleService/internal/infra/storage/session"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/integrations/notifier"
	userServiceClient "github.com/m04kA/SMC-TrainerScheduleService/internal/integrations/userservice"
	availabilityService "github.com/m04kA/SMC-TrainerScheduleService/internal/service/availability"
	sessionsService "github.com/m04kA/SMC-TrainerScheduleService/internal/service/sessions"
	getCalendarWindowUC "github.com/m04kA/SMC-TrainerScheduleService/internal/usecase/get_calendar_window"
	validateSessionUC "github.com/m04kA/SMC-TrainerScheduleService/internal/usecase/validate_session"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/keymutex"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/logger"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/metrics"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/tracing"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/txmanager"
)

// Репозитории нужны нескольким потребителям, поэтому интерфейсы объединены
type templateStore interface {
	availabilityService.TemplateRepository
	validateSessionUC.TemplateRepository
	getCalendarWindowUC.TemplateRepository
}

type sessionStore interface {
	sessionsService.SessionRepository
	availabilityService.SessionRepository
	validateSessionUC.SessionRepository
	getCalendarWindowUC.SessionRepository
}

type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

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

	log.Info("Starting SMC-TrainerScheduleService...")
	log.Info("Configuration loaded from config.toml")

	// Трассировка (без включения провайдер no-op, пропагаторы ставятся всегда)
	shutdownTracing, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Tracing.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to initialize tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.OTLPEndpoint)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилище
	var (
		repos repositories
		txMgr TxManager
	)

	switch cfg.Database.Driver {
	case config.DriverPostgres:
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

		var wrappedDB *dbmetrics.DB
		if cfg.Metrics.Enabled {
			wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
			log.Info("Database metrics collection started")
		} else {
			wrappedDB = dbmetrics.Wrap(db, nil)
		}

		repos = repositories{
			templates: availabilityRepo.NewRepository(wrappedDB),
			sessions:  sessionRepo.NewRepository(wrappedDB),
			requests:  requestRepo.NewRepository(wrappedDB),
		}
		txMgr = txmanager.NewTransactionManager(wrappedDB)

	default:
		store := memory.NewStore()
		repos = repositories{
			templates: memory.NewAvailabilityRepository(store),
			sessions:  memory.NewSessionRepository(store),
			requests:  memory.NewRequestRepository(store),
		}
		txMgr = memory.NewTxManager(store)
		log.Warn("Using in-memory storage: data is lost on restart")
	}

	// Кэш пересчитанной доступности: Redis или память процесса
	snapshotCache := newSnapshotCache(cfg.Redis, log)

	// Доставка уведомлений клиентам
	sink, err := notifier.New(notifier.Config{
		Driver: cfg.Notifications.Driver,
		RabbitMQ: notifier.RabbitMQConfig{
			URL:   cfg.Notifications.RabbitMQURL,
			Queue: cfg.Notifications.RabbitMQQueue,
		},
		Kafka: notifier.KafkaConfig{
			Brokers: cfg.Notifications.KafkaBrokers,
			Topic:   cfg.Notifications.KafkaTopic,
		},
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize notifier: %v", err)
	}
	if sink != nil {
		defer sink.Close()
	}
	log.Info("Notifications driver: %s", cfg.Notifications.Driver)

	// Справочник клиентов (опционально)
	var userClient sessionsService.UserServiceClient
	if cfg.UserService.URL != "" {
		userClient = userServiceClient.NewClient(
			cfg.UserService.URL,
			time.Duration(cfg.UserService.Timeout)*time.Second,
			log,
		)
		log.Info("UserService client initialized (url=%s, timeout=%ds)", cfg.UserService.URL, cfg.UserService.Timeout)
	} else {
		log.Warn("UserService URL is not set, client names fall back to ids")
	}

	// Один замок на тренера для шаблона и сессий
	locker := keymutex.New[int64]()

	// Инициализируем сервисы
	availabilitySvc, err := availabilityService.NewService(
		repos.templates,
		repos.sessions,
		snapshotCache,
		txMgr,
		locker,
		metricsCollector,
		log,
		availabilityService.Config{
			DefaultDayStart: cfg.Schedule.DefaultDayStart,
			DefaultDayEnd:   cfg.Schedule.DefaultDayEnd,
		},
	)
	if err != nil {
		log.Fatal("Failed to initialize availability service: %v", err)
	}

	// Инициализируем use cases
	validateSessionUseCase := validateSessionUC.NewUseCase(
		repos.templates,
		repos.sessions,
		metricsCollector,
		log,
	)

	getCalendarWindowUseCase := getCalendarWindowUC.NewUseCase(
		repos.templates,
		repos.sessions,
		metricsCollector,
		log,
	)

	sessionsSvc := sessionsService.NewService(
		repos.sessions,
		repos.requests,
		validateSessionUseCase,
		availabilitySvc,
		sink,
		userClient,
		txMgr,
		locker,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getAvailabilityTemplate := getAvailabilityTemplateHandler.NewHandler(availabilitySvc, log)
	getDayAvailability := getDayAvailabilityHandler.NewHandler(availabilitySvc, log)
	toggleDayAvailability := toggleDayAvailabilityHandler.NewHandler(availabilitySvc, log)
	upsertTimeSlot := upsertTimeSlotHandler.NewHandler(availabilitySvc, log)
	removeTimeSlot := removeTimeSlotHandler.NewHandler(availabilitySvc, log)
	getCalendarWindow := getCalendarWindowHandler.NewHandler(getCalendarWindowUseCase, log)
	validateSession := validateSessionHandler.NewHandler(validateSessionUseCase, log)
	createSession := createSessionHandler.NewHandler(sessionsSvc, log)
	listSessions := listSessionsHandler.NewHandler(sessionsSvc, log)
	getSession := getSessionHandler.NewHandler(sessionsSvc, log)
	cancelSession := cancelSessionHandler.NewHandler(sessionsSvc, log)
	rescheduleSession := rescheduleSessionHandler.NewHandler(sessionsSvc, log)
	completeSession := completeSessionHandler.NewHandler(sessionsSvc, log)
	createRequest := createRequestHandler.NewHandler(sessionsSvc, log)
	listRequests := listRequestsHandler.NewHandler(sessionsSvc, log)
	approveRequest := approveRequestHandler.NewHandler(sessionsSvc, log)
	declineRequest := declineRequestHandler.NewHandler(sessionsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Ограничение частоты запросов на пользователя
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		r.Use(limiter.Middleware)
		log.Info("Rate limiting enabled: %.1f rps, burst=%d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Недельный шаблон доступности тренера
	api.HandleFunc("/trainers/{trainerId}/availability",
		getAvailabilityTemplate.Handle).Methods(http.MethodGet)

	// Свободные и занятые интервалы дня недели
	api.HandleFunc("/trainers/{trainerId}/availability/{day}",
		getDayAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Клиент ---
	// Проверка предлагаемого времени
	protected.HandleFunc("/trainers/{trainerId}/sessions/validate",
		validateSession.Handle).Methods(http.MethodPost)

	// Заявка на сессию
	protected.HandleFunc("/trainers/{trainerId}/requests",
		createRequest.Handle).Methods(http.MethodPost)

	// --- Владелец расписания (X-User-ID == trainerId) ---
	owner := func(h http.HandlerFunc) http.Handler {
		return middleware.TrainerOwner(h)
	}

	// Шаблон доступности
	protected.Handle("/trainers/{trainerId}/availability/{day}/toggle",
		owner(toggleDayAvailability.Handle)).Methods(http.MethodPost)
	protected.Handle("/trainers/{trainerId}/availability/{day}/slots",
		owner(upsertTimeSlot.Handle)).Methods(http.MethodPut)
	protected.Handle("/trainers/{trainerId}/availability/{day}/slots/{index}",
		owner(removeTimeSlot.Handle)).Methods(http.MethodDelete)

	// Календарь
	protected.Handle("/trainers/{trainerId}/calendar",
		owner(getCalendarWindow.Handle)).Methods(http.MethodGet)

	// Сессии
	protected.Handle("/trainers/{trainerId}/sessions",
		owner(createSession.Handle)).Methods(http.MethodPost)
	protected.Handle("/trainers/{trainerId}/sessions",
		owner(listSessions.Handle)).Methods(http.MethodGet)
	protected.Handle("/trainers/{trainerId}/sessions/{sessionId}",
		owner(getSession.Handle)).Methods(http.MethodGet)
	protected.Handle("/trainers/{trainerId}/sessions/{sessionId}/cancel",
		owner(cancelSession.Handle)).Methods(http.MethodPost)
	protected.Handle("/trainers/{trainerId}/sessions/{sessionId}/reschedule",
		owner(rescheduleSession.Handle)).Methods(http.MethodPost)
	protected.Handle("/trainers/{trainerId}/sessions/{sessionId}/complete",
		owner(completeSession.Handle)).Methods(http.MethodPost)

	// Входящие заявки
	protected.Handle("/trainers/{trainerId}/requests",
		owner(listRequests.Handle)).Methods(http.MethodGet)
	protected.Handle("/trainers/{trainerId}/requests/{requestId}/approve",
		owner(approveRequest.Handle)).Methods(http.MethodPost)
	protected.Handle("/trainers/{trainerId}/requests/{requestId}/decline",
		owner(declineRequest.Handle)).Methods(http.MethodPost)

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

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// repositories репозитории выбранного драйвера хранилища
type repositories struct {
	templates templateStore
	sessions  sessionStore
	requests  sessionsService.RequestRepository
}

// newSnapshotCache подключается к Redis; при недоступности работает кэш в памяти
func newSnapshotCache(cfg config.RedisConfig, log *logger.Logger) availabilityService.SnapshotCache {
	if !cfg.Enabled {
		log.Info("Redis disabled, availability snapshots are cached in memory")
		return availabilityCache.NewMemoryCache()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis at %s is unreachable, falling back to in-memory cache: %v", cfg.Addr, err)
		_ = client.Close()
		return availabilityCache.NewMemoryCache()
	}

	log.Info("Availability snapshots cached in Redis at %s (ttl=%ds)", cfg.Addr, cfg.TTL)
	return availabilityCache.NewRedisCache(client, time.Duration(cfg.TTL)*time.Second)
}
