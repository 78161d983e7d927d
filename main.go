package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"huduma/config"
	"huduma/cron"
	"huduma/database"
	catalogRepoPkg "huduma/database/repository/catalog"
	orderRepoPkg "huduma/database/repository/order"
	reviewRepoPkg "huduma/database/repository/review"
	userRepoPkg "huduma/database/repository/user"
	"huduma/handlers"
	"huduma/middleware"
	"huduma/routes"
	"huduma/services/catalog"
	"huduma/services/notification"
	"huduma/services/order"
	"huduma/services/payment"
	"huduma/services/review"
	"huduma/services/tasks"
	"huduma/services/user"
	"huduma/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	catalogRepo := catalogRepoPkg.NewMongoCatalogRepo()
	orderRepo := orderRepoPkg.NewMongoOrderRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()

	// reminder queue.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer asynqClient.Close()

	// services.
	userService := &user.DefaultUserService{Repo: userRepo}

	notificationService, err := notification.NewFCMNotificationService(userService)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	catalogService := &catalog.DefaultCatalogService{
		Repo:   catalogRepo,
		Cache:  utils.GetCacheClient(),
		Logger: logger,
	}

	orderService := &order.DefaultOrderService{
		Orders:  orderRepo,
		Catalog: catalogRepo,
		Users:   userRepo,
		Reminder: &tasks.AsynqReminderScheduler{
			Client: asynqClient,
			Logger: logger,
		},
		Logger: logger,
	}

	paymentService := &payment.DefaultPaymentService{
		Orders:   orderRepo,
		Notifier: notificationService,
		Logger:   logger,
	}

	reviewService := &review.DefaultReviewService{
		Reviews: reviewRepo,
		Catalog: catalogRepo,
		Logger:  logger,
	}

	// background reminder worker.
	cron.InitReminderWorker(notificationService)

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		UserRepo: userRepo,
		User:     handlers.NewUserHandler(userService, logger),
		Catalog:  handlers.NewCatalogHandler(catalogService, logger),
		Order:    handlers.NewOrderHandler(orderService, logger),
		Payment:  handlers.NewPaymentHandler(paymentService, logger),
		Review:   handlers.NewReviewHandler(reviewService, userService, logger),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

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
