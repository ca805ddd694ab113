package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"supplierintake/internal/notify"
	"supplierintake/internal/platform/config"
	"supplierintake/internal/platform/httpserver"
	"supplierintake/internal/platform/logger"
	"supplierintake/internal/platform/metrics"
	"supplierintake/internal/platform/middleware"
	platformredis "supplierintake/internal/platform/redis"
	"supplierintake/internal/ratelimit"
	ratelimitmw "supplierintake/internal/ratelimit/middleware"
	ratelimitstore "supplierintake/internal/ratelimit/store"
	"supplierintake/internal/registration/handler"
	"supplierintake/internal/registration/service"
	"supplierintake/internal/registration/store"
	"supplierintake/internal/registration/validate"
	"supplierintake/internal/secrets"
	"supplierintake/pkg/platform/middleware/metadata"
)

// main wires configuration, secrets, storage, the rate limiter, and the mail
// dispatcher into the HTTP server. Business logic lives in the internal
// packages; this file only assembles them.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	providers := []secrets.Provider{}
	if cfg.SecretsDir != "" {
		providers = append(providers, secrets.NewFileProvider(cfg.SecretsDir))
	}
	providers = append(providers, secrets.NewEnvProvider())
	resolver := secrets.NewResolver(log, providers...)

	dbURL := resolver.GetOrDefault(ctx, "database-url", cfg.Database.URL)
	if dbURL == "" {
		log.Error("no database configured, set DATABASE_URL")
		os.Exit(1)
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Error("open database", "error", err.Error())
		os.Exit(1)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Error("database unreachable", "error", err.Error())
		os.Exit(1)
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err.Error())
		os.Exit(1)
	}
	var windowStore ratelimit.WindowStore
	if redisClient != nil {
		defer redisClient.Close()
		windowStore = ratelimitstore.NewRedis(redisClient.Client)
		log.Info("rate limiter using redis store")
	} else {
		windowStore = ratelimitstore.NewInMemory()
		log.Info("rate limiter using in-process store")
	}
	limiter := ratelimit.New(windowStore, log,
		ratelimit.WithLimit(cfg.RateLimit.Limit),
		ratelimit.WithWindow(cfg.RateLimit.Window),
	)

	if cfg.SMTP.Addr == "" {
		log.Warn("SMTP not configured, notification emails will be reported as not sent")
	}
	sender := notify.NewSMTPSender(
		cfg.SMTP.Addr,
		cfg.SMTP.From,
		cfg.SMTP.User,
		resolver.GetOrDefault(ctx, "smtp-password", ""),
	)
	dispatcher := notify.NewDispatcher(sender, resolver.GetOrDefault(ctx, "admin-emails", ""), log)

	m := metrics.New()
	suppliers := store.NewPostgres(db)
	svc := service.New(validate.New(), suppliers, dispatcher, log, service.WithMetrics(m))

	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(cfg.Server.CORSOrigin))
	r.Use(metadata.ClientMetadata)

	checks := []handler.HealthCheck{
		{Name: "database", Probe: db.PingContext},
	}
	if redisClient != nil {
		checks = append(checks, handler.HealthCheck{Name: "redis", Probe: redisClient.Health})
	}

	h := handler.New(svc, log, checks...)
	h.Register(r, ratelimitmw.New(limiter, log, m).RateLimit)
	r.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Server.Addr, r)

	log.Info("starting supplier intake service", "addr", cfg.Server.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
	log.Info("server stopped")
}
