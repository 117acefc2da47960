package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"rawkart/internal/chat"
	"rawkart/internal/config"
	"rawkart/internal/database"
	"rawkart/internal/handler"
	"rawkart/internal/middleware"
	"rawkart/internal/monitor"
	"rawkart/internal/redis"
	"rawkart/internal/repository"
	"rawkart/internal/service/auth"
	"rawkart/internal/service/inventory"
	"rawkart/internal/service/order"
	"rawkart/internal/utils"
	"rawkart/pkg/log"
)

func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log.Init(log.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		Filename:   cfg.Log.Filename,
		MaxSize:    cfg.Log.MaxSize,
		MaxAge:     cfg.Log.MaxAge,
		MaxBackups: cfg.Log.MaxBackups,
		Compress:   cfg.Log.Compress,
	})

	// database
	if err := database.Init(cfg); err != nil {
		log.WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Fatal("Failed to initialize database")
	}
	defer database.Close()

	db := database.GetDB()
	if err := database.AutoMigrate(db); err != nil {
		log.WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Fatal("Failed to migrate database")
	}
	if err := database.CreateIndexes(db); err != nil {
		log.WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Fatal("Failed to create indexes")
	}
	// Fold legacy timestamp-suffixed room ids into the canonical form so old
	// conversations stay reachable
	if err := database.NormalizeRoomIDs(db); err != nil {
		log.WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Fatal("Failed to normalize room ids")
	}

	// redis
	if err := redis.Init(cfg); err != nil {
		log.WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Fatal("Failed to initialize redis")
	}
	defer redis.Close()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router, err := setupRouter(cfg)
	if err != nil {
		log.WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Fatal("Failed to set up router")
	}

	server := &http.Server{
		Addr:           cfg.Server.GetAddr(),
		Handler:        router,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	go func() {
		log.WithFields(map[string]interface{}{
			"addr": cfg.Server.GetAddr(),
			"mode": cfg.Server.Mode,
		}).Info("Starting HTTP server")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithFields(map[string]interface{}{
				"error": err.Error(),
			}).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Fatal("Server forced to shutdown")
	}

	log.Info("Server exited")
}

func setupRouter(cfg *config.Config) (*gin.Engine, error) {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	if cfg.Metrics.Enabled {
		router.Use(monitor.Metrics())
		router.GET(cfg.Metrics.Path, monitor.Handler())
	}
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	router.GET("/health", healthCheck)

	db := database.GetDB()
	redisClient := redis.GetClient()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// Chat coordinator
	coordinator := chat.NewCoordinator(chat.Config{
		HistoryLimit:        cfg.Chat.HistoryLimit,
		RequireSupplierJoin: cfg.Chat.RequireSupplierJoin,
	}, messageRepo)

	// Services
	jwtManager := utils.NewJWTManager(
		cfg.Security.JWT.Secret,
		cfg.Security.JWT.Issuer,
		cfg.Security.JWT.Expire,
	)
	authService := auth.NewAuthService(userRepo, jwtManager, redisClient)
	inventoryService, err := inventory.NewInventoryService(inventoryRepo, cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("failed to create inventory service: %w", err)
	}
	orderService := order.NewOrderService(orderRepo, inventoryRepo, coordinator, redisClient)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	orderHandler := handler.NewOrderHandler(orderService)
	messageHandler := handler.NewMessageHandler(messageRepo, coordinator, cfg.Chat.HistoryLimit)
	wsHandler := handler.NewWSHandler(coordinator, cfg.Chat.SendBuffer)

	tokenValidator := func(c *gin.Context, token string) (*middleware.UserInfo, error) {
		claims, err := authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			return nil, err
		}
		return &middleware.UserInfo{
			ID:   claims.UserID,
			Name: claims.Name,
			Role: claims.Role,
		}, nil
	}

	api := router.Group("/api")
	{
		v1 := api.Group("/v1")
		{
			v1.GET("/health", healthCheck)

			// Public auth routes
			authGroup := v1.Group("/auth")
			{
				authGroup.POST("/register", authHandler.Register)
				authGroup.POST("/login", authHandler.Login)
			}

			// Public marketplace browsing
			v1.GET("/inventory/search/:ingredient", inventoryHandler.Search)

			protected := v1.Group("")
			protected.Use(middleware.Auth(tokenValidator))
			{
				protected.POST("/auth/logout", authHandler.Logout)
				protected.GET("/suppliers/:name", authHandler.SearchSupplier)

				// Supplier inventory management
				inventoryGroup := protected.Group("/inventory")
				inventoryGroup.Use(middleware.RequireRole("supplier"))
				{
					inventoryGroup.POST("", inventoryHandler.AddItem)
					inventoryGroup.GET("", inventoryHandler.ListMine)
				}

				// Purchase requests
				protected.POST("/orders", orderHandler.Create)
				protected.GET("/orders", orderHandler.List)
				protected.DELETE("/orders/:id", middleware.RequireRole("supplier"), orderHandler.Delete)

				// Chat history
				protected.GET("/messages/:roomID", messageHandler.History)
				protected.PUT("/messages/read/:roomID", messageHandler.MarkRead)
			}
		}
	}

	// Realtime chat; auth accepts a query token since browsers cannot set
	// headers on websocket dials
	router.GET("/ws", middleware.Auth(tokenValidator), wsHandler.Serve)

	return router, nil
}

func healthCheck(c *gin.Context) {
	dbErr := database.Health()
	redisErr := redis.Health()

	health := gin.H{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
		"services": gin.H{
			"database": dbErr == nil,
			"redis":    redisErr == nil,
		},
	}

	if dbErr != nil || redisErr != nil {
		health["status"] = "error"
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}

	c.JSON(http.StatusOK, health)
}
