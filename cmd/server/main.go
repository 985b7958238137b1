package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sponsorhub/internal/config"
	"sponsorhub/internal/handlers"
	"sponsorhub/internal/middleware"
	"sponsorhub/internal/repositories/mongodb"
	"sponsorhub/internal/services"
	"sponsorhub/pkg/cache"
	"sponsorhub/pkg/database"
	"sponsorhub/pkg/logger"
	"sponsorhub/pkg/mail"
	"sponsorhub/pkg/payout"
	"sponsorhub/pkg/push"
	"sponsorhub/pkg/sms"
	"sponsorhub/pkg/storage"
	"sponsorhub/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer db.Close()

	if err := database.NewMigrator(db.Database).Up(); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redisCache.Close()

	cacheService := services.NewCacheService(redisCache)

	// Repositories
	sponsorRepo := mongodb.NewSponsorRepository(db.Database, cacheService)
	vehicleRepo := mongodb.NewVehicleRepository(db.Database, cacheService)
	requestRepo := mongodb.NewVehicleRequestRepository(db.Database)
	bookingRepo := mongodb.NewBookingRepository(db.Database)
	withdrawalRepo := mongodb.NewWithdrawalRepository(db.Database)

	// Outbound providers
	mailer := mail.NewSMTPMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.FromEmail,
		FromName: cfg.SMTP.FromName,
	})

	var smsProvider sms.SMSProvider
	switch cfg.SMS.Provider {
	case "sns":
		smsProvider, err = sms.NewAWSSNSProvider(cfg.SMS.AWS.Region)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize SNS, SMS notifications disabled")
			smsProvider = nil
		}
	default:
		if cfg.SMS.Twilio.AccountSID != "" {
			smsProvider = sms.NewTwilioProvider(cfg.SMS.Twilio.AccountSID, cfg.SMS.Twilio.AuthToken, cfg.SMS.Twilio.FromNumber)
		}
	}

	var pushProvider push.PushProvider
	if cfg.Push.FCM.Credentials != "" {
		fcmProvider, err := push.NewFCMProvider(cfg.Push.FCM.Credentials)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize FCM, push notifications disabled")
		} else {
			pushProvider = fcmProvider
		}
	}

	storageProvider, err := newStorageProvider(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize storage provider")
	}

	var payoutProvider payout.Provider
	if cfg.Payout.Razorpay.KeyID != "" {
		payoutProvider = payout.NewRazorpayProvider(cfg.Payout.Razorpay.KeyID, cfg.Payout.Razorpay.KeySecret)
	}

	// Services
	notificationService := services.NewNotificationService(mailer, smsProvider, pushProvider, cfg.SMS.DefaultFrom, log)
	registryService := services.NewRegistryService(vehicleRepo, requestRepo, log)
	revenueService := services.NewRevenueService(registryService, bookingRepo, log)
	earningsService := services.NewEarningsService(revenueService, sponsorRepo, withdrawalRepo, notificationService, log)
	reportService := services.NewReportService(earningsService, sponsorRepo, log)
	vehicleService := services.NewVehicleService(vehicleRepo, requestRepo, sponsorRepo, storageProvider, notificationService, log)
	sponsorService := services.NewSponsorService(sponsorRepo, registryService, revenueService, earningsService, payoutProvider, log)

	auditLogger, err := logger.NewAuditLogger(&logger.Config{
		Level:  logger.InfoLevel,
		Output: "stdout",
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize audit logger")
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(cfg.Security.JWTSecret)
	sponsorHandler := handlers.NewSponsorHandler(sponsorService, earningsService)
	vehicleHandler := handlers.NewVehicleHandler(vehicleService)
	withdrawalHandler := handlers.NewWithdrawalHandler(earningsService, auditLogger)
	adminHandler := handlers.NewAdminHandler(reportService)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(middleware.CORSMiddleware())

	router.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": cfg.App.Version,
		})
	})

	routes.SetupSponsorRoutes(router, authHandler, sponsorHandler, vehicleHandler, withdrawalHandler, cfg.Security.JWTSecret)
	routes.SetupAdminRoutes(router, vehicleHandler, withdrawalHandler, adminHandler, cfg.Security.JWTSecret)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		log.WithField("port", cfg.App.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Forced shutdown")
	}
}

func newStorageProvider(cfg *config.Config) (storage.StorageProvider, error) {
	switch cfg.Storage.Provider {
	case "s3", "aws":
		return storage.NewAWSS3Storage(cfg.Storage.AWS.Region, cfg.Storage.AWS.Bucket, cfg.Storage.AWS.CDNDomain)
	default:
		return storage.NewLocalStorage(cfg.Storage.Local.BasePath, cfg.Storage.Local.BaseURL)
	}
}
