package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/samarthbanodia/yatrafy/config"
	"github.com/samarthbanodia/yatrafy/internal/handler"
	"github.com/samarthbanodia/yatrafy/internal/inventory"
	"github.com/samarthbanodia/yatrafy/internal/middleware"
	"github.com/samarthbanodia/yatrafy/internal/repository"
	"github.com/samarthbanodia/yatrafy/internal/service"
	"github.com/samarthbanodia/yatrafy/pkg/cache"
	"github.com/samarthbanodia/yatrafy/pkg/db"
)

func main() {
	// ── Load configuration ──────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	// ── Storage wiring ──────────────────────────────────
	// "postgres" keeps trips/events in PostgreSQL and transcripts in
	// Redis; "memory" runs everything in-process (demo mode).
	var (
		trips    service.TripStore
		events   service.EventLog
		sessions service.SessionStore
		pgPool   *pgxpool.Pool
		redisCli *redis.Client
	)

	switch cfg.Planner.StoreDriver {
	case "memory":
		mem := repository.NewMemoryStore()
		trips, events, sessions = mem, mem, mem
		log.Println("✓ In-memory store (demo mode)")

	default:
		pgPool, err = db.NewPostgresPool(ctx, cfg.Postgres)
		if err != nil {
			log.Fatalf("failed to connect to PostgreSQL: %v", err)
		}
		defer pgPool.Close()
		log.Println("✓ PostgreSQL connected")

		redisCli, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatalf("failed to connect to Redis: %v", err)
		}
		defer redisCli.Close()
		log.Println("✓ Redis connected")

		trips = repository.NewTripRepository(pgPool)
		events = repository.NewAnalyticsRepository(pgPool, redisCli)
		sessions = repository.NewSessionRepository(redisCli)
	}

	// ── Initialize layers ───────────────────────────────
	catalog := inventory.New(time.Now())

	extractor := service.NewIntentExtractor(catalog.KnownDestinations())
	generator := service.NewOptionGenerator(catalog, nil)
	plannerSvc := service.NewPlannerService(extractor, generator, trips, events, sessions, cfg.Planner.TopOptions)
	bookingSvc := service.NewBookingService(trips, events, sessions, nil)
	notifier := service.NewNotifier(trips, sessions)
	analyticsSvc := service.NewAnalyticsService(events, sessions)

	chatHandler := handler.NewChatHandler(plannerSvc)
	bookingHandler := handler.NewBookingHandler(bookingSvc)
	eventHandler := handler.NewEventHandler(notifier)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsSvc)
	tripHandler := handler.NewTripHandler(trips)

	// ── Setup router ────────────────────────────────────
	router := mux.NewRouter()

	router.HandleFunc("/health", healthHandler(pgPool, redisCli)).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	// Conversational pipeline
	api.HandleFunc("/chat/plan-trip", chatHandler.PlanTrip).Methods(http.MethodPost)
	api.HandleFunc("/chat/book", bookingHandler.Book).Methods(http.MethodPost)
	api.HandleFunc("/chat/simulate-event", eventHandler.SimulateEvent).Methods(http.MethodPost)
	api.HandleFunc("/chat/history/{user_id}", chatHandler.History).Methods(http.MethodGet)
	// Trips and analytics
	api.HandleFunc("/trips/{id}", tripHandler.GetTrip).Methods(http.MethodGet)
	api.HandleFunc("/analytics/summary", analyticsHandler.Summary).Methods(http.MethodGet)

	// CORS so the chat UI and dashboard can call the API from a browser.
	root := middleware.CORS(middleware.RequestLogger(middleware.Recoverer(router)))

	// ── Start HTTP server ───────────────────────────────
	srv := &http.Server{
		Addr:         cfg.Server.ServerAddr(),
		Handler:      root,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("🚀 Server listening on %s", cfg.Server.ServerAddr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// ── Graceful shutdown ───────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("⏳ Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("✅ Server gracefully stopped")
}

// HealthResponse represents the /health endpoint response.
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// healthHandler returns an HTTP handler that checks PG and Redis
// connectivity. In memory mode both are nil and the store is always
// reported healthy.
func healthHandler(pgPool *pgxpool.Pool, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:   "ok",
			Services: make(map[string]string),
		}

		if pgPool == nil && redisClient == nil {
			resp.Services["store"] = "memory"
		}

		if pgPool != nil {
			if err := db.HealthCheck(r.Context(), pgPool); err != nil {
				resp.Status = "degraded"
				resp.Services["postgres"] = "unhealthy: " + err.Error()
			} else {
				resp.Services["postgres"] = "healthy"
			}
		}

		if redisClient != nil {
			if err := cache.HealthCheck(r.Context(), redisClient); err != nil {
				resp.Status = "degraded"
				resp.Services["redis"] = "unhealthy: " + err.Error()
			} else {
				resp.Services["redis"] = "healthy"
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if resp.Status != "ok" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(resp)
	}
}
