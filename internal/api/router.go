package api

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/kino_go_server/config"
	"github.com/qs3c/kino_go_server/internal/api/handler"
	"github.com/qs3c/kino_go_server/internal/api/middleware"
	"github.com/qs3c/kino_go_server/internal/service"
)

type Router struct {
	authHandler         *handler.AuthHandler
	userHandler         *handler.UserHandler
	movieHandler        *handler.MovieHandler
	categoryHandler     *handler.CategoryHandler
	planHandler         *handler.PlanHandler
	subscriptionHandler *handler.SubscriptionHandler
	favoriteHandler     *handler.FavoriteHandler
	watchHistoryHandler *handler.WatchHistoryHandler
	websocketHandler    *handler.WebSocketHandler
	authService         *service.AuthService
	cfg                 *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	movieHandler *handler.MovieHandler,
	categoryHandler *handler.CategoryHandler,
	planHandler *handler.PlanHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	favoriteHandler *handler.FavoriteHandler,
	watchHistoryHandler *handler.WatchHistoryHandler,
	websocketHandler *handler.WebSocketHandler,
	authService *service.AuthService,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:         authHandler,
		userHandler:         userHandler,
		movieHandler:        movieHandler,
		categoryHandler:     categoryHandler,
		planHandler:         planHandler,
		subscriptionHandler: subscriptionHandler,
		favoriteHandler:     favoriteHandler,
		watchHistoryHandler: watchHistoryHandler,
		websocketHandler:    websocketHandler,
		authService:         authService,
		cfg:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// WebSocket
		api.GET("/ws", r.websocketHandler.Handle)

		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.GET("/github", r.authHandler.GithubAuth)
			auth.GET("/github/callback", r.authHandler.GithubCallback)
		}

		// 公开接口 - 分类、套餐
		api.GET("/categories", r.categoryHandler.List)
		api.GET("/categories/:id", r.categoryHandler.Get)
		api.GET("/plans", r.planHandler.List)

		// 公开接口 - 影片（登录用户附带收藏状态）
		movies := api.Group("/movies")
		movies.Use(middleware.OptionalAuth(r.cfg.JWT.Secret))
		{
			movies.GET("", r.movieHandler.List)
			movies.GET("/:slug", r.movieHandler.Get)
		}

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			// 用户
			user := authenticated.Group("/user")
			{
				user.GET("/profile", r.userHandler.GetProfile)
				user.PUT("/profile", r.userHandler.UpdateProfile)
				user.POST("/avatar", r.userHandler.UploadAvatar)
			}

			// 订阅
			subscriptions := authenticated.Group("/subscriptions")
			{
				subscriptions.POST("/purchase", r.subscriptionHandler.Purchase)
				subscriptions.GET("/current", r.subscriptionHandler.GetCurrent)
				subscriptions.GET("", r.subscriptionHandler.List)
				subscriptions.POST("/:id/cancel", r.subscriptionHandler.Cancel)
			}

			// 收藏
			favorites := authenticated.Group("/favorites")
			{
				favorites.POST("", r.favoriteHandler.Add)
				favorites.GET("", r.favoriteHandler.List)
				favorites.DELETE("/:movieId", r.favoriteHandler.Remove)
			}

			// 观看记录
			watchHistory := authenticated.Group("/watch-history")
			{
				watchHistory.POST("", r.watchHistoryHandler.Record)
				watchHistory.GET("", r.watchHistoryHandler.List)
				watchHistory.DELETE("/:movieId", r.watchHistoryHandler.Delete)
			}
		}

		// 管理接口
		admin := api.Group("/admin")
		admin.Use(middleware.Auth(r.cfg.JWT.Secret), middleware.AdminOnly(r.authService))
		{
			admin.POST("/movies", r.movieHandler.Create)
			admin.POST("/movies/:id/poster", r.movieHandler.UploadPoster)
			admin.DELETE("/movies/:id", r.movieHandler.Delete)

			admin.POST("/categories", r.categoryHandler.Create)
			admin.PUT("/categories/:id", r.categoryHandler.Update)
			admin.DELETE("/categories/:id", r.categoryHandler.Delete)

			admin.POST("/plans", r.planHandler.Create)
			admin.DELETE("/plans/:id", r.planHandler.Delete)
		}
	}

	return engine
}
