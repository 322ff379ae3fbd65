package main

import (
	"context"
	"fmt"
	"log"

	"github.com/qs3c/kino_go_server/config"
	"github.com/qs3c/kino_go_server/internal/api"
	"github.com/qs3c/kino_go_server/internal/api/handler"
	"github.com/qs3c/kino_go_server/internal/database"
	"github.com/qs3c/kino_go_server/internal/pkg/cron"
	"github.com/qs3c/kino_go_server/internal/pkg/email"
	"github.com/qs3c/kino_go_server/internal/pkg/oauth"
	"github.com/qs3c/kino_go_server/internal/pkg/oss"
	"github.com/qs3c/kino_go_server/internal/pkg/pubsub"
	"github.com/qs3c/kino_go_server/internal/pkg/queue"
	"github.com/qs3c/kino_go_server/internal/pkg/ws"
	"github.com/qs3c/kino_go_server/internal/repository"
	"github.com/qs3c/kino_go_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化 OSS（可选）
	var ossClient *oss.Client
	if cfg.OSS.Endpoint != "" && cfg.OSS.AccessKeyID != "" {
		ossClient, err = oss.NewClient(&cfg.OSS)
		if err != nil {
			log.Printf("Warning: Failed to init OSS client: %v", err)
		} else {
			log.Println("OSS client initialized")
		}
	}

	// 初始化 Queue 和 Pub/Sub
	receiptQueue := queue.NewQueue(rdb, cfg.Queue.ReceiptQueue)
	publisher := pubsub.NewPublisher(rdb)
	stateStore := oauth.NewStateStore(rdb)

	// 初始化 WebSocket Hub
	wsHub := ws.NewHub()

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	movieRepo := repository.NewMovieRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	planRepo := repository.NewPlanRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	watchHistoryRepo := repository.NewWatchHistoryRepository(db)

	// 初始化 Service
	authService := service.NewAuthService(userRepo, cfg)
	if cfg.Email.SMTPHost != "" {
		authService.SetEmailService(email.NewService(&cfg.Email))
	}
	userService := service.NewUserService(userRepo, ossClient, cfg)
	movieService := service.NewMovieService(movieRepo, favoriteRepo, ossClient, cfg)
	categoryService := service.NewCategoryService(categoryRepo)
	planService := service.NewPlanService(planRepo, rdb, cfg)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, publisher, receiptQueue)
	favoriteService := service.NewFavoriteService(favoriteRepo, movieRepo)
	watchHistoryService := service.NewWatchHistoryService(watchHistoryRepo, movieRepo)

	// 订阅购买事件并推送给在线用户
	subscriber := pubsub.NewSubscriber(rdb)
	go func() {
		err := subscriber.Subscribe(context.Background(), func(msg *pubsub.PurchaseMessage) {
			wsHub.SendToUser(msg.UserID, &ws.Message{
				Type: msg.Type,
				Data: msg,
			})
		})
		if err != nil {
			log.Printf("Purchase event subscription stopped: %v", err)
		}
	}()
	log.Println("Purchase event subscriber started")

	// 每日到期订阅扫描
	cronService := cron.NewService(subscriptionService)
	cronService.Start()
	defer cronService.Stop()
	log.Println("Expiry sweep scheduler started")

	// 初始化 Handler
	authHandler := handler.NewAuthHandler(authService, stateStore)
	userHandler := handler.NewUserHandler(userService, cfg)
	movieHandler := handler.NewMovieHandler(movieService, cfg)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	planHandler := handler.NewPlanHandler(planService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)
	watchHistoryHandler := handler.NewWatchHistoryHandler(watchHistoryService)
	websocketHandler := handler.NewWebSocketHandler(wsHub, cfg.JWT.Secret)

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		userHandler,
		movieHandler,
		categoryHandler,
		planHandler,
		subscriptionHandler,
		favoriteHandler,
		watchHistoryHandler,
		websocketHandler,
		authService,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
