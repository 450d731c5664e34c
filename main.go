package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"infinitewash/config"
	"infinitewash/cron"
	"infinitewash/database"
	bookingRecordRepo "infinitewash/database/repository/bookingrecord"
	driverRepo "infinitewash/database/repository/driver"
	"infinitewash/handlers"
	"infinitewash/middleware"
	"infinitewash/routes"
	"infinitewash/services/admin"
	"infinitewash/services/backend"
	"infinitewash/services/booking"
	"infinitewash/services/payment"
	"infinitewash/services/subscription"
	"infinitewash/services/tasks"
	"infinitewash/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// Sessions live in redis when configured, otherwise in process.
	var store booking.SessionStore
	redisClient := utils.GetSessionCacheClient()
	if redisClient != nil {
		store = booking.NewRedisSessionStore(redisClient, cfg.SessionTTL())
		logger.Info("booking sessions stored in redis", zap.String("addr", cfg.RedisAddr))
	} else {
		store = booking.NewMemorySessionStore(cfg.SessionTTL())
		logger.Warn("REDIS_ADDR not set, booking sessions kept in memory")
	}

	backendClient := backend.NewClient(cfg.BackendURL, logger)
	payments, err := payment.NewProvider(payment.Config{
		Provider:             cfg.PaymentProvider,
		StripeSecretKey:      cfg.StripeSecretKey,
		StripePublishableKey: cfg.StripePublishableKey,
	}, backendClient)
	if err != nil {
		// Bookings without a deposit still go through; deposits fail with a configuration error.
		logger.Error("payment provider unavailable", zap.Error(err))
	}

	bookingService := &booking.DefaultBookingService{
		Store:    store,
		API:      backendClient,
		Payments: payments,
		Services: booking.DefaultCatalog(),
		Currency: cfg.Currency,
		Logger:   logger,
	}

	// Admin dashboard, backed by mongo.
	var adminHandler *handlers.AdminHandler
	if cfg.DatabaseURL != "" {
		database.InitDB()
		db := database.Database()
		adminService := &admin.DefaultAdminService{
			Drivers:  driverRepo.NewMongoDriverRepo(db, logger),
			Bookings: bookingRecordRepo.NewMongoBookingRecordRepo(db, logger),
			Credentials: admin.Credentials{
				Email:        cfg.AdminEmail,
				PasswordHash: cfg.AdminPasswordHash,
				JWTSecret:    cfg.JWTSecret,
			},
			Logger: logger,
		}
		bookingService.Recorder = adminService
		adminHandler = handlers.NewAdminHandler(adminService, logger)
		if cfg.JWTSecret == "" || cfg.AdminEmail == "" {
			logger.Warn("admin credentials not configured, dashboard logins will be rejected")
		}
	} else {
		logger.Warn("DATABASE_URL not set, admin dashboard disabled")
	}

	// Reminders need the asynq queue on redis.
	var (
		queueClient    *asynq.Client
		reminderWorker *asynq.Server
	)
	if cfg.RemindersEnabled && utils.RedisEnabled() {
		queueClient = asynq.NewClient(cron.QueueRedisOpt())
		bookingService.Reminders = tasks.NewScheduler(queueClient, logger)
		reminderWorker = cron.InitReminderWorker(rootCtx, logger)
	}

	utils.StartHealthMonitor(rootCtx, redisClient, database.MongoClient)

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	chatHandler := handlers.NewChatHandler(logger)
	trackingHandler := handlers.NewTrackingHandler(cfg.TrackingInterval(), logger)
	subscriptionHandler := handlers.NewSubscriptionHandler(
		subscription.NewService(backendClient, bookingService.Services, logger), logger)
	handlerBundle := handlers.NewHandlerBundle(bookingHandler, chatHandler, trackingHandler, subscriptionHandler, adminHandler, cfg.JWTSecret)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlerBundle)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if reminderWorker != nil {
		reminderWorker.Shutdown()
	}
	if queueClient != nil {
		_ = queueClient.Close()
	}
	if err := database.Close(ctx); err != nil {
		logger.Warn("main: mongo disconnect failed", zap.Error(err))
	}
	_ = logger.Sync()

	logger.Sugar().Info("main: server stopped gracefully")
}
