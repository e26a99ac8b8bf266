// File: safaricamp/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"safaricamp/config"
	"safaricamp/handlers"
	"safaricamp/middleware"
	"safaricamp/routes"
	"safaricamp/services/booking"
	"safaricamp/services/contact"
	"safaricamp/services/notification"
	"safaricamp/utils"
)

func main() {
	// Load .env for local runs; deployed environments set variables directly.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
	}
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Sugar().Fatalf("main: invalid configuration: %v", err)
	}
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	contacts := contact.Handles{
		SupportEmail:   cfg.SupportEmail,
		CustomEmail:    cfg.CustomAdminEmail,
		WhatsAppNumber: cfg.WhatsAppNumber,
	}
	if _, err := notification.ResolveAdminRecipients(cfg.AdminEmail, cfg.CustomAdminEmail); err != nil {
		logger.Warn("main: no admin mailbox configured, bookings will be rejected", zap.Error(err))
	}

	// One sender identity per audience.
	adminMailer, err := notification.NewSMTPMailer(notification.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.AdminSMTPUser,
		Password: cfg.AdminSMTPPassword,
		FromName: cfg.EmailFromName,
		Timeout:  cfg.SMTPTimeout,
	}, logger.Named("admin-mailer"))
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize admin mailer: %v", err)
	}
	customerMailer, err := notification.NewSMTPMailer(notification.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.CustomerSMTPUser,
		Password: cfg.CustomerSMTPPassword,
		FromName: cfg.EmailFromName,
		Timeout:  cfg.SMTPTimeout,
	}, logger.Named("customer-mailer"))
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize customer mailer: %v", err)
	}

	notificationService, err := notification.NewDefaultNotificationService(notification.Options{
		AdminMailer:    adminMailer,
		CustomerMailer: customerMailer,
		PrimaryAdmin:   cfg.AdminEmail,
		SecondaryAdmin: cfg.CustomAdminEmail,
		Contacts:       contacts,
		Logger:         logger.Named("notification"),
	})
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	var replay booking.ReplayGuard = booking.NoopReplayGuard{}
	if err := utils.InitReplayCache(); err != nil {
		logger.Warn("main: duplicate-submission guard disabled", zap.Error(err))
	} else if client := utils.GetReplayClient(); client != nil {
		replay = booking.NewRedisReplayGuard(client, cfg.ReplayTTL)
		logger.Info("main: duplicate-submission guard enabled", zap.String("redis", cfg.RedisAddr))
	}

	bookingService := &booking.DefaultBookingService{
		Policy: booking.PricingPolicy{
			ExtraGuestRate:        cfg.ExtraGuestRate,
			DiscountPerGuestNight: cfg.DiscountPerGuestNight,
		},
		NotificationSvc: notificationService,
		Replay:          replay,
		Logger:          logger.Named("booking"),
	}
	bookingHandler := handlers.NewBookingHandler(bookingService, contacts)

	// Create the Gin router.
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Sugar().Fatalf("main: invalid TRUSTED_PROXIES: %v", err)
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(utils.ErrorHandler(contacts.Fallback()))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	routes.RegisterRoutes(router, &handlers.HandlerBundle{
		RedisClient:    utils.GetReplayClient(),
		AllowedOrigins: cfg.AllowedOrigins,
		SubmitBooking:  bookingHandler.SubmitBooking,
		QuoteBooking:   bookingHandler.QuoteBooking,
	})

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if client := utils.GetReplayClient(); client != nil {
		client.Close()
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
