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
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	approveReservationHandler "github.com/condoflow/booking-service/internal/api/handlers/approve_reservation"
	cancelReservationHandler "github.com/condoflow/booking-service/internal/api/handlers/cancel_reservation"
	checkinReservationHandler "github.com/condoflow/booking-service/internal/api/handlers/checkin_reservation"
	completeReservationHandler "github.com/condoflow/booking-service/internal/api/handlers/complete_reservation"
	createReservationHandler "github.com/condoflow/booking-service/internal/api/handlers/create_reservation"
	createSpaceHandler "github.com/condoflow/booking-service/internal/api/handlers/create_space"
	createSpaceBlockHandler "github.com/condoflow/booking-service/internal/api/handlers/create_space_block"
	getAvailableSlotsHandler "github.com/condoflow/booking-service/internal/api/handlers/get_available_slots"
	getReservationHandler "github.com/condoflow/booking-service/internal/api/handlers/get_reservation"
	getSpaceHandler "github.com/condoflow/booking-service/internal/api/handlers/get_space"
	getSpaceReservationsHandler "github.com/condoflow/booking-service/internal/api/handlers/get_space_reservations"
	getUnitReservationsHandler "github.com/condoflow/booking-service/internal/api/handlers/get_unit_reservations"
	markNoShowHandler "github.com/condoflow/booking-service/internal/api/handlers/mark_no_show"
	rejectReservationHandler "github.com/condoflow/booking-service/internal/api/handlers/reject_reservation"
	updateSpaceHandler "github.com/condoflow/booking-service/internal/api/handlers/update_space"
	updateSpaceScheduleHandler "github.com/condoflow/booking-service/internal/api/handlers/update_space_schedule"
	"github.com/condoflow/booking-service/internal/api/middleware"
	"github.com/condoflow/booking-service/internal/config"
	"github.com/condoflow/booking-service/internal/infra/cache"
	"github.com/condoflow/booking-service/internal/infra/events"
	reservationRepo "github.com/condoflow/booking-service/internal/infra/storage/reservation"
	spaceRepo "github.com/condoflow/booking-service/internal/infra/storage/space"
	governanceClient "github.com/condoflow/booking-service/internal/integrations/governance"
	reservationsService "github.com/condoflow/booking-service/internal/service/reservations"
	spacesService "github.com/condoflow/booking-service/internal/service/spaces"
	createReservationUC "github.com/condoflow/booking-service/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/condoflow/booking-service/internal/usecase/get_available_slots"
	"github.com/condoflow/booking-service/pkg/dbmetrics"
	"github.com/condoflow/booking-service/pkg/logger"
	"github.com/condoflow/booking-service/pkg/metrics"
	"github.com/condoflow/booking-service/pkg/simpletxmanager"
	"github.com/condoflow/booking-service/pkg/txmanager"
)

func main() {
	// .env overrides are optional; config.toml is the source of truth.
	_ = godotenv.Load()

	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting booking-service...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	governance := governanceClient.NewClient(
		cfg.Governance.URL,
		time.Duration(cfg.Governance.Timeout)*time.Second,
		log,
	)
	log.Info("Governance client initialized (url=%s timeout=%ds)", cfg.Governance.URL, cfg.Governance.Timeout)

	var (
		reservationRepository *reservationRepo.Repository
		spaceRepository       *spaceRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		spaceRepository = spaceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		spaceRepository = spaceRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Availability cache (optional).
	var slotsCache *cache.AvailabilityCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		slotsCache = cache.New(redisClient, time.Duration(cfg.Redis.SlotsTTL)*time.Second, log)
		log.Info("Availability cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.SlotsTTL)
	}

	// Event dispatcher and subscribers.
	var dispatcherMetrics events.Metrics
	if cfg.Metrics.Enabled {
		dispatcherMetrics = metricsCollector
	}
	dispatcher := events.NewDispatcher(log, dispatcherMetrics)

	if slotsCache != nil {
		dispatcher.Subscribe(cache.NewInvalidator(slotsCache))
		log.Info("Cache invalidation subscriber registered")
	}

	if cfg.AMQP.Enabled {
		amqpConn, err := amqp.Dial(cfg.AMQP.URL)
		if err != nil {
			log.Fatal("Failed to connect to AMQP broker: %v", err)
		}
		defer amqpConn.Close()

		publisher, err := events.NewAMQPPublisher(amqpConn, cfg.AMQP.Exchange, log)
		if err != nil {
			log.Fatal("Failed to initialize AMQP publisher: %v", err)
		}
		defer publisher.Close()

		dispatcher.Subscribe(publisher)
		log.Info("AMQP publisher registered (exchange=%s)", cfg.AMQP.Exchange)
	}

	// Services.
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		spaceRepository,
		dispatcher,
		&createReservationUC.RealTimeProvider{},
		log,
	)
	spaceSvc := spacesService.NewService(
		spaceRepository,
		txMgr,
		slotsCacheOrNil(slotsCache),
		log,
	)

	// Use cases.
	createReservationUseCase := createReservationUC.NewUseCase(
		spaceRepository,
		reservationRepository,
		governance,
		txMgr,
		dispatcher,
		&createReservationUC.RealTimeProvider{},
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		spaceRepository,
		reservationRepository,
		slotsCacheForSlots(slotsCache),
		log,
	)

	// Handlers.
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	getUnitReservations := getUnitReservationsHandler.NewHandler(reservationSvc, log)
	getSpaceReservations := getSpaceReservationsHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	approveReservation := approveReservationHandler.NewHandler(reservationSvc, log)
	rejectReservation := rejectReservationHandler.NewHandler(reservationSvc, log)
	checkinReservation := checkinReservationHandler.NewHandler(reservationSvc, log)
	completeReservation := completeReservationHandler.NewHandler(reservationSvc, log)
	markNoShow := markNoShowHandler.NewHandler(reservationSvc, log)
	getSpace := getSpaceHandler.NewHandler(spaceSvc, log)
	createSpace := createSpaceHandler.NewHandler(spaceSvc, log)
	updateSpace := updateSpaceHandler.NewHandler(spaceSvc, log)
	updateSpaceSchedule := updateSpaceScheduleHandler.NewHandler(spaceSvc, log)
	createSpaceBlock := createSpaceBlockHandler.NewHandler(spaceSvc, log)

	// Router.
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes.
	api.HandleFunc("/spaces/{spaceId}", getSpace.Handle).Methods(http.MethodGet)
	api.HandleFunc("/spaces/{spaceId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Protected routes (require X-User-ID header).
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Reservations.
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/approve", approveReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/reject", rejectReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/checkin", checkinReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/complete", completeReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/no-show", markNoShow.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/units/{unitId}/reservations", getUnitReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/spaces/{spaceId}/reservations", getSpaceReservations.Handle).Methods(http.MethodGet)

	// Space administration.
	protected.HandleFunc("/spaces", createSpace.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/spaces/{spaceId}", updateSpace.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/spaces/{spaceId}/schedule", updateSpaceSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/spaces/{spaceId}/blocks", createSpaceBlock.Handle).Methods(http.MethodPost)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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

// slotsCacheOrNil keeps the typed-nil pointer out of the service's
// interface field when caching is disabled.
func slotsCacheOrNil(c *cache.AvailabilityCache) spacesService.SlotsCache {
	if c == nil {
		return nil
	}
	return c
}

// slotsCacheForSlots does the same for the slots use case.
func slotsCacheForSlots(c *cache.AvailabilityCache) getAvailableSlotsUC.SlotsCache {
	if c == nil {
		return nil
	}
	return c
}
