package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pinory-system/config"
	"pinory-system/internal/handler"
	"pinory-system/internal/model"
	"pinory-system/internal/repository"
	"pinory-system/internal/service"
	dbPkg "pinory-system/pkg/db"
	"pinory-system/pkg/jwt"
	"pinory-system/pkg/logger"
	redisPkg "pinory-system/pkg/redis"
	"pinory-system/pkg/response"
	"pinory-system/pkg/slug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	cfg := config.LoadConfig()

	// 2. 初始化日志系统
	log := logger.InitLogger(cfg.Log)
	defer log.Sync()

	log.Info("=== Pinory分享服务启动 ===")
	log.Info("服务器配置信息",
		zap.String("port", cfg.Server.Port),
		zap.String("database_host", cfg.Database.Host),
		zap.Int("database_port", cfg.Database.Port),
		zap.String("database_name", cfg.Database.Database),
		zap.Duration("jwt_expire_time", cfg.JWT.ExpireTime),
		zap.String("share_base_url", cfg.Share.BaseURL),
		zap.Duration("share_default_ttl", cfg.Share.DefaultTTL),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 初始化数据库连接
	if _, err := dbPkg.InitDB(cfg.Database); err != nil {
		log.Fatal("数据库连接失败", zap.Error(err))
	}
	defer func() {
		if err := dbPkg.CloseDB(); err != nil {
			log.Error("关闭数据库连接失败", zap.Error(err))
		}
	}()
	log.Info("数据库连接成功")

	// 3.1 自动迁移表结构
	if err := dbPkg.AutoMigrate(
		&model.User{},
		&model.Pinory{},
		&model.Friendship{},
		&model.ShareLink{},
	); err != nil {
		log.Fatal("自动迁移失败", zap.Error(err))
	}
	log.Info("自动迁移完成")

	// 3.2 初始化Redis（不可用时降级为直连数据库）
	if err := redisPkg.InitRedis(cfg.Redis); err != nil {
		log.Warn("Redis连接失败，分享缓存不可用", zap.Error(err))
	} else {
		redisPkg.SetShareCacheTTL(cfg.Share.ResolveCacheTTL)
		defer redisPkg.Close()
	}

	// 3.3 初始化业务服务
	db := dbPkg.GetDB()
	jwtSvc := jwt.NewJWTService(cfg.JWT)
	userRepo := repository.NewUserRepository(db)
	pinoryRepo := repository.NewPinoryRepository(db)
	friendshipRepo := repository.NewFriendshipRepository(db)
	shareRepo := repository.NewShareRepository(db)

	slugGen := slug.NewGenerator(cfg.Share.SlugLength, cfg.Share.SlugMaxAttempts)
	userSvc := service.NewUserService(userRepo, jwtSvc)
	pinorySvc := service.NewPinoryService(pinoryRepo)
	friendshipSvc := service.NewFriendshipService(friendshipRepo, userRepo)
	shareSvc := service.NewShareService(shareRepo, pinoryRepo, friendshipRepo, slugGen, cfg.Share.BaseURL, cfg.Share.DefaultTTL)

	userHandler := handler.NewUserHandler(userSvc)
	pinoryHandler := handler.NewPinoryHandler(pinorySvc)
	friendshipHandler := handler.NewFriendshipHandler(friendshipSvc)
	shareHandler := handler.NewShareHandler(shareSvc)

	// 4. 设置Gin模式
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 5. 创建Gin路由
	router := gin.New()
	router.Use(logger.LoggerMiddleware())      // 自定义日志中间件
	router.Use(logger.ErrorLoggerMiddleware()) // 错误日志中间件

	// 6. 基础路由
	setupBasicRoutes(router)

	// 6.1 业务路由
	v1 := router.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			// 公开接口（无需认证）
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)

			// 需要认证的接口
			authUsers := users.Group("")
			authUsers.Use(jwtSvc.AuthMiddleware())
			{
				authUsers.GET("/profile", userHandler.GetProfile)
			}
		}

		// pinory路由（需要认证）
		pinories := v1.Group("/pinories")
		pinories.Use(jwtSvc.AuthMiddleware())
		{
			pinories.POST("", pinoryHandler.Create)
			pinories.GET("", pinoryHandler.ListMine)
			pinories.GET("/:pinory_id", pinoryHandler.Get)
		}

		// 分享路由
		shares := v1.Group("/shares")
		{
			// 解析分享链接：匿名可访问，带token则识别身份
			shares.GET("/:slug", jwtSvc.OptionalAuthMiddleware(), shareHandler.Resolve)

			authShares := shares.Group("")
			authShares.Use(jwtSvc.AuthMiddleware())
			{
				authShares.POST("", shareHandler.Create)
				authShares.POST("/:slug/revoke", shareHandler.Revoke)
				authShares.DELETE("/:slug", shareHandler.Delete)
			}
		}

		// 好友关系路由（需要认证）
		friends := v1.Group("/friends")
		friends.Use(jwtSvc.AuthMiddleware())
		{
			friends.POST("/requests", friendshipHandler.Request)
			friends.PUT("/requests/:friendship_id/accept", friendshipHandler.Accept)
			friends.DELETE("/:friendship_id", friendshipHandler.Remove)
			friends.POST("/block", friendshipHandler.Block)
			friends.GET("", friendshipHandler.List)
			friends.GET("/status", friendshipHandler.Status)
		}
	}

	// 6.2 对外分享短路径（分享URL指向这里）
	router.GET("/s/:slug", jwtSvc.OptionalAuthMiddleware(), shareHandler.Resolve)

	// 7. 创建HTTP服务器
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 8. 启动HTTP服务器
	go func() {
		log.Info("HTTP服务器启动", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP服务器启动失败", zap.Error(err))
		}
	}()

	// 9. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("HTTP服务器关闭失败", zap.Error(err))
	}

	log.Info("服务器已安全关闭")
}

// setupBasicRoutes 设置基础路由
func setupBasicRoutes(router *gin.Engine) {
	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		status := "ok"
		if err := dbPkg.HealthCheck(); err != nil {
			status = "db-down"
		} else if err := redisPkg.HealthCheck(); err != nil {
			status = "cache-down"
		}
		response.Success(c, gin.H{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// 根路径
	router.GET("/", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "Pinory分享服务",
			"version": "1.0.0",
		})
	})
}
