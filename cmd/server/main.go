package main

import (
	"context"  // context package is needed for Redis operations
	"net/http" // HTTP server
	"os"       // Log output
	"time"     // Server timeouts

	"car_rental/internal/api"           // Custom package for API handlers
	"car_rental/internal/config"        // Custom package for configuration
	"car_rental/internal/db"            // Database connection
	"car_rental/internal/observability" // Logging and metrics
	"car_rental/internal/repository"    // GORM-backed store
	"car_rental/internal/security"      // Password hashing
	"car_rental/internal/service"       // User access service
	"car_rental/internal/utils"         // Login throttle

	"github.com/gin-gonic/gin"                                  // Gin web framework
	"github.com/prometheus/client_golang/prometheus"            // Prometheus registry
	"github.com/prometheus/client_golang/prometheus/collectors" // Runtime collectors
	"github.com/prometheus/client_golang/prometheus/promhttp"   // Prometheus HTTP handler
	"github.com/redis/go-redis/v9"                              // Redis client
	"github.com/sirupsen/logrus"                                // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.ValidateServer(); err != nil {
		logrus.Fatalf("invalid config: %v", err)
	}

	// Setup logger
	log := observability.SetupLogger(os.Stdout, cfg.IsProd)

	// Connect to the database
	gdb, err := db.Open(cfg.DSN())
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)

	users := service.NewUserAccessService(
		repository.NewGormStore(gdb),
		security.NewBcryptHasher(cfg.BcryptCost),
		service.FieldMapper{},
		log,
	)

	r := api.NewRouter(api.RouterDeps{
		Users:   users,
		Limiter: utils.NewLoginThrottle(redisClient, cfg.LoginMaxAttempts, cfg.LoginLockWindow),
		Session: api.SessionConfig{
			Secret:     cfg.JWTSecret,
			TTL:        cfg.JWTTTL,
			CookieName: cfg.CookieName,
			Secure:     cfg.IsProd,
		},
		Metrics:        metrics,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Log:            log,
	})

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		log.Fatalf("failed to set trusted proxies: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.WithField("port", cfg.AppPort).Info("Server running") // Log server start
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server stopped: %v", err)
	}
}
