package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/evsync/evsync/internal/adapter/cache"
	"github.com/evsync/evsync/internal/adapter/external/geocoding"
	"github.com/evsync/evsync/internal/adapter/http/fiber/handlers"
	"github.com/evsync/evsync/internal/adapter/http/fiber/middleware"
	"github.com/evsync/evsync/internal/adapter/queue"
	"github.com/evsync/evsync/internal/adapter/storage/postgres"
	"github.com/evsync/evsync/internal/adapter/vault"
	wsAdapter "github.com/evsync/evsync/internal/adapter/websocket"
	"github.com/evsync/evsync/internal/domain"
	"github.com/evsync/evsync/internal/observability/telemetry"
	"github.com/evsync/evsync/internal/service/auth"
	"github.com/evsync/evsync/internal/service/email"
	"github.com/evsync/evsync/internal/service/health"
	"github.com/evsync/evsync/internal/service/notification"
	"github.com/evsync/evsync/internal/service/rating"
	"github.com/evsync/evsync/internal/service/reservation"
	"github.com/evsync/evsync/internal/service/session"
	"github.com/evsync/evsync/internal/service/station"
	"github.com/evsync/evsync/internal/service/wallet"
	"github.com/evsync/evsync/pkg/config"
)

const (
	serviceName    = "evsync"
	serviceVersion = "v1.0.0"
)

func main() {
	// 1. Initialize Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting EVSync",
		zap.String("service", serviceName),
		zap.String("version", serviceVersion),
	)

	// 2. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Resolve secrets from Vault when enabled
	if cfg.Vault.Enabled {
		sm, err := vault.NewSecretManager(cfg.Vault.Address, cfg.Vault.Token)
		if err != nil {
			logger.Fatal("Failed to connect to Vault", zap.Error(err))
		}
		if dbURL, err := sm.GetDatabaseURL(); err == nil && dbURL != "" {
			cfg.Database.URL = dbURL
		}
		if jwtSecret, err := sm.GetJWTSecret(); err == nil && jwtSecret != "" {
			cfg.JWT.Secret = jwtSecret
		}
	}

	// 3. Initialize OpenTelemetry (Distributed Tracing)
	if cfg.OpenTelemetry.Enabled {
		tracerProvider, err := telemetry.InitTracer(serviceName, serviceVersion, cfg.OpenTelemetry.Jaeger.Endpoint)
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := telemetry.ShutdownTracer(tracerProvider); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	// 4. Initialize PostgreSQL Connection Pool
	db, err := postgres.NewConnection(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying SQL DB", zap.Error(err))
	}
	defer sqlDB.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(db); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// 5. Initialize Cache (Redis with in-memory fallback)
	appCache, err := cache.NewRedisCache(cfg.Redis.URL, logger)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to local cache", zap.Error(err))
		appCache = cache.NewLocalCache(time.Minute, logger)
	}
	defer appCache.Close()

	// 6. Initialize Message Queue (NATS)
	messageQueue, err := queue.NewNATSQueue(cfg.NATS.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer messageQueue.Close()

	// 7. Initialize Repositories
	accountRepo := postgres.NewAccountRepository(db, logger)
	stationRepo := postgres.NewStationRepository(db, logger)
	outletRepo := postgres.NewOutletRepository(db, logger)
	reservationRepo := postgres.NewReservationRepository(db, logger)
	sessionRepo := postgres.NewSessionRepository(db, logger)
	walletRepo := postgres.NewWalletRepository(db, logger)
	ratingRepo := postgres.NewRatingRepository(db, logger)

	// 8. Initialize Services (Business Logic Layer)
	authService := auth.NewService(accountRepo, appCache, cfg.JWT.Secret, logger)
	walletService := wallet.NewService(walletRepo, logger)

	reservationConfig := &domain.ReservationConfig{
		FeePercent:            cfg.Reservation.FeePercent,
		MaxAdvanceBookingDays: cfg.Reservation.MaxAdvanceBookingDays,
	}
	reservationService := reservation.NewService(
		reservationRepo, stationRepo, outletRepo, accountRepo,
		walletService, messageQueue, reservationConfig, logger,
	)

	pricingConfig := &domain.PricingConfig{
		Policy: domain.PricingPolicy(cfg.Pricing.Policy),
		PerKWh: cfg.Pricing.PerKWh,
	}
	sessionService := session.NewService(
		sessionRepo, reservationRepo, outletRepo,
		walletService, messageQueue, pricingConfig, logger,
	)

	geocoder := geocoding.NewNominatimGeocoder(cfg.Geocoding.BaseURL, logger)
	stationService := station.NewService(stationRepo, outletRepo, geocoder, appCache, logger)
	ratingService := rating.NewService(ratingRepo, stationRepo, logger)

	emailService, err := email.NewService(&email.Config{
		Provider:       cfg.Email.Provider,
		FromEmail:      cfg.Email.FromEmail,
		FromName:       cfg.Email.FromName,
		SendGridAPIKey: cfg.Email.SendGridAPIKey,
		SMTPHost:       cfg.Email.SMTPHost,
		SMTPPort:       cfg.Email.SMTPPort,
		SMTPUsername:   cfg.Email.SMTPUsername,
		SMTPPassword:   cfg.Email.SMTPPassword,
		SMTPUseTLS:     cfg.Email.SMTPUseTLS,
		BaseURL:        cfg.Email.BaseURL,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize email service", zap.Error(err))
	}

	// 9. Start Notification Worker
	notifyWorker := notification.NewWorker(messageQueue, accountRepo, reservationRepo, emailService, logger)
	if err := notifyWorker.Start(); err != nil {
		logger.Fatal("Failed to start notification worker", zap.Error(err))
	}

	// 10. Initialize WebSocket Hub (for real-time updates)
	wsHub := wsAdapter.NewHub()
	go wsHub.Run()

	for _, subject := range []string{queue.TopicReservationAll, queue.TopicSessionAll} {
		if err := messageQueue.Subscribe(subject, func(data []byte) error {
			wsHub.Broadcast(data)
			return nil
		}); err != nil {
			logger.Error("Failed to subscribe websocket hub", zap.String("subject", subject), zap.Error(err))
		}
	}

	// 11. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ServerHeader:          serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	if cfg.CORS.Enabled {
		app.Use(middleware.NewCORS(cfg.CORS))
	} else {
		app.Use(middleware.DefaultCORS())
	}
	app.Use(middleware.CircuitBreaker(logger))

	// Health Check Endpoints
	healthService := health.NewService(&health.Config{
		Version: serviceVersion,
		DB:      sqlDB,
		Cache:   appCache,
		NatsURL: cfg.NATS.URL,
	}, logger)
	health.NewFiberHandler(healthService).RegisterRoutes(app)

	// Metrics endpoint for Prometheus
	if cfg.Prometheus.Enabled {
		app.Get(cfg.Prometheus.Path, func(c *fiber.Ctx) error {
			handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
			handler(c.Context())
			return nil
		})
	}

	// API v1 Routes
	v1 := app.Group("/api/v1")
	authMiddleware := middleware.AuthRequired(authService)

	handlers.NewAuthHandler(authService, logger).RegisterRoutes(v1, authMiddleware)
	reservation.NewHandler(reservationService).RegisterRoutes(app, authMiddleware)
	session.NewHandler(sessionService).RegisterRoutes(app, authMiddleware)
	station.NewHandler(stationService).RegisterRoutes(app, authMiddleware)
	wallet.NewHandler(walletService).RegisterRoutes(app, authMiddleware)
	rating.NewHandler(ratingService).RegisterRoutes(app, authMiddleware)

	// WebSocket endpoint for live reservation and session updates
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/updates", websocket.New(func(conn *websocket.Conn) {
		accountID, _ := conn.Locals("account_id").(string)
		wsHub.AddClient(conn, accountID)
	}))

	// 12. Start Server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
		logger.Info("HTTP server listening", zap.String("addr", addr))
		if err := app.Listen(addr); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 13. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server stopped")
}
