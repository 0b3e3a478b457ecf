package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"timecard/internal/config"
	"timecard/internal/db"
	"timecard/internal/domain/report"
	"timecard/internal/domain/schedule"
	"timecard/internal/domain/user"
	"timecard/internal/domain/worklog"
	authhandler "timecard/internal/transport/http/handlers/auth"
	conditionhandler "timecard/internal/transport/http/handlers/conditions"
	reporthandler "timecard/internal/transport/http/handlers/report"
	userhandler "timecard/internal/transport/http/handlers/users"
	workdayhandler "timecard/internal/transport/http/handlers/workday"
	"timecard/internal/transport/http/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	userStore := user.NewStore(pool)
	conditionStore := schedule.NewStore(pool)
	worklogStore := worklog.NewStore(pool)
	reportBuilder := report.NewBuilder(conditionStore, worklogStore)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(1 << 20))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(userStore, cfg.JWTSecret, cfg.TokenTTL)
		r.With(middleware.RateLimit(10, time.Minute)).Post("/auth/login", authHandler.HandleLogin)

		userhandler.NewHandler(userStore).RegisterRoutes(r)
		conditionhandler.NewHandler(conditionStore).RegisterRoutes(r)
		workdayhandler.NewHandler(worklogStore).RegisterRoutes(r)
		reporthandler.NewHandler(reportBuilder).RegisterRoutes(r)
	})

	log.Printf("timecard server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
