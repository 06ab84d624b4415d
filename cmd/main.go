package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/trachanh-shop/order-dashboard/internal/events"
	"github.com/trachanh-shop/order-dashboard/internal/handler"
	"github.com/trachanh-shop/order-dashboard/internal/notify"
	"github.com/trachanh-shop/order-dashboard/internal/repository"
	"github.com/trachanh-shop/order-dashboard/internal/service"
	"github.com/trachanh-shop/order-dashboard/pkg/config"
	"github.com/trachanh-shop/order-dashboard/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.Info("Service configuration",
		zap.String("port", cfg.Port),
		zap.String("project_id", cfg.ProjectID),
		zap.String("orders_collection", cfg.OrdersCollection),
		zap.String("kafka_brokers", cfg.KafkaBrokers),
		zap.Duration("new_order_window", cfg.NewOrderWindow))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize components
	fsClient, err := repository.NewFirestoreClient(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to create Firestore client:", err)
	}
	defer fsClient.Close()

	producer := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	defer producer.Close()

	orderRepo := repository.NewOrderRepository(fsClient, cfg.OrdersCollection, logger)
	orderService := service.NewOrderService(orderRepo, producer, logger)

	hub := notify.NewHub(logger)
	watcher := notify.NewWatcher(hub, cfg.NewOrderWindow, notify.BellChime{}, logger)
	go watcher.Run(ctx, orderRepo.WatchNewOrders(ctx))

	orderHandler := handler.NewOrderHandler(orderService, hub, logger)

	// Setup Gin Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		MaxAge:       12 * time.Hour,
	}))

	v1 := router.Group("/api/v1")
	orderHandler.Register(v1)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":            "healthy",
			"service":           "order-dashboard",
			"alert_subscribers": hub.SubscriberCount(),
		})
	})

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	stop()

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
