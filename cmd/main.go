package main

import (
	"context"
	"database/sql"
	"errors"
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
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	bookAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/book_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_slots"
	getEmployeeScheduleHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_employee_schedule"
	getSalonHoursHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_salon_hours"
	updateSalonHoursHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_salon_hours"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	salonRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/salon"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/events"
	appointmentsService "github.com/m04kA/SMC-SalonBooking/internal/service/appointments"
	salonsService "github.com/m04kA/SMC-SalonBooking/internal/service/salons"
	bookAppointmentUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/book_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/locker"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/tracing"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

// Хранилище салонов: одинаково для postgres и memory
type salonStore interface {
	getAvailableSlotsUC.SalonRepository
	bookAppointmentUC.SalonRepository
	salonsService.SalonRepository
	appointmentsService.SalonRepository
}

// Хранилище записей
type appointmentStore interface {
	getAvailableSlotsUC.AppointmentRepository
	bookAppointmentUC.AppointmentRepository
	appointmentsService.AppointmentRepository
}

type txManager interface {
	bookAppointmentUC.TransactionManager
	salonsService.TransactionManager
}

func main() {
	configPath := "config.toml"
	if v, ok := os.LookupEnv("CONFIG_PATH"); ok && v != "" {
		configPath = v
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

	log.Info("Starting SMC-SalonBooking...")
	log.Info("Configuration loaded from %s", configPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Трассировка (при выключенной настраиваются только пропагаторы)
	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OTLPEndpoint: cfg.Tracing.Endpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to setup tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.Endpoint)
	}

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		slotsMetrics     getAvailableSlotsUC.Metrics
		bookingMetrics   bookAppointmentUC.Metrics
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		slotsMetrics = metricsCollector
		bookingMetrics = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	location, err := cfg.Slots.Location()
	if err != nil {
		log.Fatal("Invalid slots timezone: %v", err)
	}

	// Инициализируем хранилище
	var (
		salons       salonStore
		appointments appointmentStore
		txMgr        txManager
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store := memory.NewStore()
		if cfg.Storage.SeedFile != "" {
			if err := store.LoadSeed(cfg.Storage.SeedFile); err != nil {
				log.Fatal("Failed to load seed %s: %v", cfg.Storage.SeedFile, err)
			}
			log.Info("In-memory storage seeded from %s", cfg.Storage.SeedFile)
		}
		salons, appointments, txMgr = store, store, memory.NewTxManager(store)
		log.Info("Using in-memory storage")

	default:
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
		if err := db.PingContext(ctx); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		// С nil metricsCollector обёртка только прокидывает запросы
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
		if metricsCollector != nil {
			log.Info("Database metrics collection started")
		}

		salons = salonRepo.NewRepository(wrappedDB)
		appointments = appointmentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	}

	// Блокировка дня сотрудника
	var lock bookAppointmentUC.Locker
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		lock = locker.NewRedis(rdb, locker.RedisConfig{
			Prefix:       cfg.Redis.LockKeyPrefix,
			TTL:          time.Duration(cfg.Redis.LockTTLMs) * time.Millisecond,
			WaitTimeout:  time.Duration(cfg.Redis.LockWaitMs) * time.Millisecond,
			RetryBackoff: time.Duration(cfg.Redis.LockRetryMs) * time.Millisecond,
		})
		log.Info("Using redis locks (addr=%s)", cfg.Redis.Addr)
	} else {
		lock = locker.NewLocal()
		log.Info("Using in-process locks")
	}

	// Публикация событий о записях
	var publisher bookAppointmentUC.EventPublisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled {
		kafkaPublisher := events.NewKafkaPublisher(events.KafkaConfig{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			WriteTimeout: time.Duration(cfg.Kafka.WriteTimeoutMs) * time.Millisecond,
		})
		defer func() {
			if err := kafkaPublisher.Close(); err != nil {
				log.Error("Failed to close kafka publisher: %v", err)
			}
		}()
		publisher = kafkaPublisher
		log.Info("Publishing booking events to kafka topic %s (brokers=%v)", cfg.Kafka.Topic, cfg.Kafka.Brokers)
	}

	mode, err := availability.ParseMode(cfg.Slots.FilterMode)
	if err != nil {
		log.Fatal("Invalid slots filter mode: %v", err)
	}

	// Инициализируем сервисы
	salonSvc := salonsService.NewService(salons, txMgr, log)
	appointmentSvc := appointmentsService.NewService(appointments, salons, location, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		salons,
		appointments,
		getAvailableSlotsUC.Options{
			Step:     time.Duration(cfg.Slots.StepMinutes) * time.Minute,
			Mode:     mode,
			Location: location,
		},
		slotsMetrics,
		log,
	)

	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		salons,
		appointments,
		txMgr,
		lock,
		publisher,
		bookingMetrics,
		location,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, log)
	getSalonHours := getSalonHoursHandler.NewHandler(salonSvc, log)
	updateSalonHours := updateSalonHoursHandler.NewHandler(salonSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	getEmployeeSchedule := getEmployeeScheduleHandler.NewHandler(appointmentSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
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

	// Доступные слоты сотрудника на дату
	api.HandleFunc("/salons/{salonId}/employees/{employeeId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Часы работы салона
	api.HandleFunc("/salons/{salonId}/hours", getSalonHours.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	bookRoute := http.Handler(http.HandlerFunc(bookAppointment.Handle))
	if cfg.RateLimit.Enabled {
		limiter, err := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.TrustedProxies, log)
		if err != nil {
			log.Fatal("Invalid rate limit config: %v", err)
		}
		bookRoute = limiter.Middleware(bookRoute)
		log.Info("Rate limit on booking enabled (rps=%.2f, burst=%d, trusted_proxies=%d)",
			cfg.RateLimit.RPS, cfg.RateLimit.Burst, len(cfg.RateLimit.TrustedProxies))
	}
	protected.Handle("/appointments", bookRoute).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// --- Управление салоном (для владельца) ---
	protected.HandleFunc("/salons/{salonId}/employees/{employeeId}/appointments",
		getEmployeeSchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/salons/{salonId}/hours", updateSalonHours.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(r, "salon-booking"),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
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
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("%v", err)
	}

	log.Info("Server stopped gracefully")
}
