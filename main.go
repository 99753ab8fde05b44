package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"facilitybot/bot"
	"facilitybot/config"
	"facilitybot/cron"
	"facilitybot/database"
	bookingRepoPkg "facilitybot/database/repository/booking"
	userRepoPkg "facilitybot/database/repository/user"
	"facilitybot/handlers"
	"facilitybot/routes"
	"facilitybot/services/booking"
	"facilitybot/services/notification"
	"facilitybot/services/user"
	"facilitybot/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()
	utils.InitCalendarService()

	// Telegram API client.
	api, err := tgbotapi.NewBotAPI(config.AppConfig.BotToken)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to Telegram: %v", err)
	}
	api.Debug = !config.IsProduction()
	logger.Sugar().Infof("Authorized as @%s", api.Self.UserName)

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	bookingRepo := bookingRepoPkg.NewGCalBookingRepo(utils.GetCalendarService())

	// services.
	userService := &user.DefaultUserService{
		Repo: userRepo,
	}

	bookingEngine := &booking.DefaultBookingEngine{
		Resolver:   &booking.ConflictResolver{Repo: bookingRepo},
		Repo:       bookingRepo,
		Facilities: config.AppConfig.Facilities,
		Alternates: config.AppConfig.AlternateFacilities,
		Logger:     logger,
	}

	notificationService := &notification.ChannelNotificationService{
		API:             api,
		ChannelUsername: config.AppConfig.ChannelUsername,
		Muted:           config.AppConfig.ChannelMuted,
	}
	cron.InitChannelWorker(notificationService)

	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()

	sessionStore := bot.NewSessionStore(utils.GetSessionCacheClient())
	facilityBot := bot.New(api, sessionStore, userService, bookingEngine, queueClient)
	facilityBot.RegisterCommands()

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Without a webhook URL the bot long-polls and the HTTP surface only
	// serves /health.
	if config.AppConfig.WebhookURL == "" {
		logger.Sugar().Info("main: no webhook URL configured, long polling")
		// A leftover webhook registration makes getUpdates return 409s.
		if _, err := api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
			logger.Sugar().Warnf("main: failed to delete webhook: %v", err)
		}
		go facilityBot.RunPolling(rootCtx)
	} else {
		webhook, err := tgbotapi.NewWebhook(config.AppConfig.WebhookURL + "/webhook/" + config.AppConfig.BotToken)
		if err != nil {
			logger.Sugar().Fatalf("main: invalid webhook URL: %v", err)
		}
		if _, err := api.Request(webhook); err != nil {
			logger.Sugar().Fatalf("main: failed to register webhook: %v", err)
		}
	}

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	handlerBundle := &handlers.HandlerBundle{
		Bot: facilityBot,
	}
	routes.SetupRoutes(router, handlerBundle)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetSessionCacheClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
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

	<-rootCtx.Done()
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
