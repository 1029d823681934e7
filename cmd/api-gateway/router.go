// Package main 是应用程序入口
package main

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/dumeirei/campus-life-backend/internal/common/config"
	"github.com/dumeirei/campus-life-backend/internal/common/metrics"
	namingHandler "github.com/dumeirei/campus-life-backend/internal/handler/naming"
	takeoutHandler "github.com/dumeirei/campus-life-backend/internal/handler/takeout"
	"github.com/dumeirei/campus-life-backend/internal/middleware"
	namingService "github.com/dumeirei/campus-life-backend/internal/service/naming"
	takeoutService "github.com/dumeirei/campus-life-backend/internal/service/takeout"
	"github.com/dumeirei/campus-life-backend/pkg/amap"
	"github.com/dumeirei/campus-life-backend/pkg/llm"
)

// setupRouter 设置路由
func setupRouter(
	r *gin.Engine,
	cfg *config.Config,
	logger *zap.Logger,
	redisClient *redis.Client,
) {
	// 初始化外部服务客户端
	llmClient := llm.NewClient(&llm.Config{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.TimeoutDuration(),
	})
	amapClient := amap.NewClient(&amap.Config{
		Key:     cfg.Amap.Key,
		BaseURL: cfg.Amap.BaseURL,
		Timeout: cfg.Amap.TimeoutDuration(),
	})

	// 初始化服务
	namingSvc := namingService.NewService(llmClient, &cfg.Naming)
	takeoutSvc := takeoutService.NewService(amapClient, &cfg.Amap, &cfg.Takeout, redisClient)

	// 初始化处理器
	namingH := namingHandler.NewHandler(namingSvc, &cfg.Naming)
	takeoutH := takeoutHandler.NewHandler(takeoutSvc)

	// 全局中间件
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RealIP())
	r.Use(middleware.CORS(&middleware.CORSConfig{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))
	r.Use(middleware.AccessLog(logger))

	// 监控指标
	if cfg.Metrics.Enabled {
		m := metrics.Init("")
		r.Use(m.Middleware())
		r.GET(cfg.Metrics.Path, metrics.Handler())
	}

	// 健康检查
	r.GET("/health", healthHandler)
	r.GET("/ping", pingHandler)
	r.GET("/ready", readyHandler(redisClient))

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 路由组
	v1 := r.Group("/api/v1")
	{
		// 起名接口（带 IP 限流，保护大模型调用）
		naming := v1.Group("/naming")
		if cfg.RateLimit.Enabled && redisClient != nil {
			naming.Use(middleware.IPRateLimit(redisClient, cfg.RateLimit.Limit, cfg.RateLimit.WindowDuration()))
		}
		{
			naming.POST("/free", namingH.GenerateFree)
			naming.POST("/vip", namingH.GenerateVIP)
			naming.GET("/vip/payment", namingH.Payment)
		}

		// 外卖接口
		takeout := v1.Group("/takeout")
		{
			takeout.GET("/shops", takeoutH.SearchShops)
		}
	}

	// 404 处理
	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"code":    404,
			"message": "接口不存在",
		})
	})
}
