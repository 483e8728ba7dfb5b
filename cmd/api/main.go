package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/adapters/advisory"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/adapters/cache"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/adapters/database"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/adapters/events"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/adapters/memory"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/adapters/store"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/api/handlers"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/api/routes"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/application/services"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/providers"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/infrastructure/clients/gemini"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/infrastructure/clients/redis"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/infrastructure/observability"
	"github.com/zatekoja/ayurvedaclinic/backend/pkg/config"
	"github.com/zatekoja/ayurvedaclinic/backend/pkg/retry"
)

const (
	defaultWriteTimeout = 15 * time.Second
	advisoryWriteMargin = 5 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLoggerWithOptions(cfg.OTEL.ServiceName, cfg.Server.Env, cfg.Log.Level, cfg.Log.Format, os.Stdout)
	logger := observability.GetLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Redis backs the store when selected and otherwise only the cache and event bus
	var redisClient *redis.Client
	if cfg.Store.Backend == config.StoreBackendRedis || cfg.Redis.Enabled {
		redisClient, err = redis.NewClient(ctx, &cfg.Redis, retry.StartupConfig())
		if err != nil {
			logger.Warn().Err(err).Str("addr", cfg.Redis.RedisAddr()).Msg("Redis unavailable, continuing without it")
			redisClient = nil
		} else {
			defer redisClient.Close()
			logger.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("Redis client initialized")
		}
	}

	kv := openStore(ctx, cfg, redisClient)

	var (
		cacheProvider providers.CacheProvider
		eventBus      providers.EventBus
	)
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient, "clinic:cache:")
		eventBus = events.NewRedisEventBus(redisClient)
	} else {
		cacheProvider = cache.NewMemoryAdapter()
		eventBus = events.NewMemoryEventBus()
	}

	location, err := cfg.Clinic.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid clinic timezone")
	}

	records := services.NewRecordManager(store.NewClinicStore(kv),
		services.WithEventBus(eventBus),
		services.WithLocation(location),
		services.WithStoreMetrics(metrics),
		services.WithSeed(cfg.Store.SeedOnFirstRun),
	)
	if err := records.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load clinic records")
	}
	logger.Info().
		Int("patients", len(records.Patients())).
		Int("appointments", len(records.Appointments())).
		Msg("Clinic records loaded")

	// Advisory calls answer with their use-case error when no key is configured
	var provider providers.AdvisoryProvider
	geminiClient, err := gemini.NewClient(&cfg.Gemini,
		gemini.WithMetrics(metrics),
		gemini.WithPractitioner(cfg.Clinic.Practitioner),
	)
	if err != nil {
		logger.Warn().Err(err).Msg("Gemini client not configured, advisory features disabled")
		provider = gemini.Unavailable{Reason: err}
	} else {
		provider = geminiClient
		logger.Info().Str("model", cfg.Gemini.Model).Msg("Gemini client initialized")
	}
	provider = advisory.NewCachedProvider(provider, cacheProvider, cfg.Advisory.SearchCacheTTLSeconds, metrics)

	tasks := services.NewTaskRegistry()
	views := services.NewViewController(tasks)

	stream := handlers.NewSSEHandler(eventBus)
	if err := observability.RegisterStreamClients(stream.ClientCount); err != nil {
		logger.Warn().Err(err).Msg("Failed to register stream client gauge")
	}

	router := routes.NewRouter(routes.Handlers{
		Patients:     handlers.NewPatientHandler(records),
		Appointments: handlers.NewAppointmentHandler(records),
		Calendar:     handlers.NewCalendarHandler(services.NewCalendarService(records)),
		Dashboard:    handlers.NewDashboardHandler(services.NewDashboardService(records)),
		Bookings:     handlers.NewBookingHandler(services.NewBookingService(records, views)),
		Advisory:     handlers.NewAdvisoryHandler(services.NewAdvisoryService(provider, records, tasks)),
		Views:        handlers.NewViewHandler(views),
		Stream:       stream,
	}, cfg.Server.AllowedOrigins, metrics)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout(cfg.Gemini.Timeout),
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().Str("addr", serverAddr).Str("store", cfg.Store.Backend).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	// Stop running advisory calls so their handlers return before the deadline
	for _, view := range []entities.View{entities.ViewSearch, entities.ViewPatients} {
		tasks.CancelScreen(view)
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Error during server shutdown")
	}

	if err := eventBus.Close(); err != nil {
		logger.Error().Err(err).Msg("Error closing event bus")
	}

	logger.Info().Msg("Server stopped")
}

// writeTimeout leaves room for a full advisory call; record streams clear their own deadline
func writeTimeout(advisoryTimeout time.Duration) time.Duration {
	return max(defaultWriteTimeout, advisoryTimeout+advisoryWriteMargin)
}

// openStore connects the configured backend, falling back to memory when it is unreachable
func openStore(ctx context.Context, cfg *config.Config, redisClient *redis.Client) providers.KeyValueStore {
	logger := observability.GetLogger()

	switch cfg.Store.Backend {
	case config.StoreBackendRedis:
		if redisClient != nil {
			return cache.NewRedisKVAdapter(redisClient)
		}
	case config.StoreBackendPostgres:
		pgClient, err := postgres.NewClient(ctx, &cfg.Database, retry.StartupConfig())
		if err != nil {
			logger.Warn().Err(err).Str("host", cfg.Database.Host).Msg("PostgreSQL unavailable")
			break
		}
		adapter := database.NewKVAdapter(pgClient)
		if err := adapter.EnsureSchema(ctx); err != nil {
			logger.Warn().Err(err).Msg("Failed to prepare PostgreSQL schema")
			_ = pgClient.Close()
			break
		}
		logger.Info().Str("host", cfg.Database.Host).Msg("PostgreSQL store initialized")
		return adapter
	default:
		return memory.NewKVStore()
	}

	logger.Warn().Str("backend", cfg.Store.Backend).Msg("Store backend unreachable, records will not survive a restart")
	return memory.NewKVStore()
}
