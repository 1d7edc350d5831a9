package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"turnobot/config"
	"turnobot/cron"
	"turnobot/handlers"
	"turnobot/middleware"
	"turnobot/routes"
	"turnobot/services/booking"
	"turnobot/services/calendar"
	"turnobot/services/conversation"
	"turnobot/services/payment"
	"turnobot/services/turnos"
	"turnobot/services/whatsapp"
	"turnobot/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Conversation state lives in Redis; the TTL is the abandonment policy.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisConversationDB,
	})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancelPing()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		logger.Sugar().Fatalf("main: failed to connect to Redis: %v", err)
	}

	// External service clients.
	calendarClient := calendar.NewClient(config.AppConfig.CalAPIURL, config.AppConfig.CalAPIKey, logger)
	checkCtx, cancelCheck := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelCheck()
	if eventTypes, err := calendarClient.GetEventTypes(checkCtx); err != nil {
		logger.Sugar().Warnf("main: scheduling service not reachable at startup: %v", err)
	} else {
		logger.Sugar().Infof("main: scheduling service reachable, %d event types", len(eventTypes))
	}
	paymentIssuer := payment.NewMercadoPagoIssuer(config.AppConfig.MPAPIURL, config.AppConfig.MPAccessToken, logger)
	messenger := whatsapp.NewHTTPProvider(config.AppConfig.WAAPIURL, config.AppConfig.WAAccessToken, logger)

	// Domain services.
	turnosRepo := turnos.NewMemoryRepository()
	negotiator := booking.NewNegotiator(paymentIssuer, config.AppConfig.Currency, logger)
	expiry := cron.NewScheduler(logger)
	defer expiry.Close()

	convStore := conversation.NewRedisStore(redisClient, 30*time.Minute)
	engine, err := conversation.NewEngine(
		convStore,
		messenger,
		calendarClient,
		negotiator,
		turnosRepo,
		expiry,
		config.AppConfig.Timezone,
		config.AppConfig.Locale,
		logger,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to build conversation engine: %v", err)
	}

	cron.InitExpiryWorker(turnosRepo, messenger, logger)

	// Handlers.
	messageHandler := handlers.NewMessageHandler(engine, config.AppConfig.WAVerifyToken, logger)
	paymentHandler := handlers.NewPaymentWebhookHandler(paymentIssuer, calendarClient, turnosRepo, messenger, logger)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	routes.RegisterRoutes(router, messageHandler, paymentHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "3008"
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

	logger.Sugar().Info("main: server stopped gracefully")
}
