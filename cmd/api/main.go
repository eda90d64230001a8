package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/harentsoaR/dentist-booking-web/internal/backend"
	"github.com/harentsoaR/dentist-booking-web/internal/config"
	"github.com/harentsoaR/dentist-booking-web/internal/handlers"
	"github.com/harentsoaR/dentist-booking-web/internal/logging"
	"github.com/harentsoaR/dentist-booking-web/internal/metrics"
	"github.com/harentsoaR/dentist-booking-web/internal/middleware"
	"github.com/harentsoaR/dentist-booking-web/internal/services"
	"github.com/harentsoaR/dentist-booking-web/internal/utils"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	if envErr != nil {
		logger.Info("no .env file found, relying on environment variables")
	}
	logger.Info("starting dentist booking web server",
		"env", cfg.Env,
		"port", cfg.Port,
		"backend_url", cfg.BackendURL,
		"session_tokens_verified", cfg.JWTSecret != "",
		"sms_enabled", cfg.TextbeltAPIKey != "",
	)

	notifier := services.NewNotificationService(cfg.TextbeltAPIKey, cfg.TextbeltURL, cfg.FrontendURL, logger)
	var linkNotifier services.LinkNotifier
	if notifier.Enabled() {
		linkNotifier = notifier
	}
	r := newRouter(cfg, logger, prometheus.NewRegistry(), linkNotifier)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.BackendTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	notifier.Wait()

	logger.Info("server stopped")
}

// newRouter wires the backend client, flows and middleware into a gin engine.
func newRouter(cfg *config.Config, logger *logging.Logger, reg *prometheus.Registry, notifier services.LinkNotifier) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	api := backend.NewClient(cfg.BackendURL, logger,
		backend.WithTimeout(cfg.BackendTimeout),
		backend.WithMetrics(metrics.NewBackendMetrics(reg)),
	)
	h := handlers.NewHandler(api, notifier, cfg, logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics(metrics.NewHTTPMetrics(reg)))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
	}))

	auth := middleware.AuthMiddleware(utils.NewTokenParser(cfg.JWTSecret))
	handlers.RegisterRoutes(r, h, auth, metrics.Handler(reg))
	return r
}
