// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"

	"pixelforge-asset-api/internal/config"
	"pixelforge-asset-api/internal/infrastructure/ratelimit"
	"pixelforge-asset-api/internal/interfaces/http/handler"
	"pixelforge-asset-api/internal/interfaces/http/middleware"
)

// Handlers 路由依赖的处理器集合
type Handlers struct {
	Root     *handler.RootHandler
	Health   *handler.HealthHandler
	Generate *handler.GenerateHandler
	Assets   *handler.AssetHandler
}

// Router HTTP 路由器
type Router struct {
	engine   *gin.Engine
	cfg      *config.Config
	handlers Handlers
	limiter  ratelimit.Limiter
}

// New 创建新的路由器
func New(cfg *config.Config, handlers Handlers, limiter ratelimit.Limiter) *Router {
	// 设置 Gin 模式
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	r := &Router{
		engine:   engine,
		cfg:      cfg,
		handlers: handlers,
		limiter:  limiter,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// Engine 返回 Gin Engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// setupMiddleware 配置中间件
func (r *Router) setupMiddleware() {
	// 基础中间件
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())

	// CORS 中间件
	r.engine.Use(middleware.CORS(r.cfg.Security.CORS))

	// 追踪中间件
	if r.cfg.Observability.Tracing.Enabled {
		r.engine.Use(middleware.Trace(r.cfg.App.Name))
		r.engine.Use(middleware.TraceContext())
	}

	// 指标中间件
	if r.cfg.Observability.Metrics.Enabled {
		r.engine.Use(middleware.Metrics())
	}
}

// setupRoutes 配置路由
func (r *Router) setupRoutes() {
	// 系统端点
	r.engine.GET("/", r.handlers.Root.Index)
	r.engine.GET("/health", r.handlers.Health.Health)
	r.engine.GET("/ready", r.handlers.Health.Ready)
	r.engine.GET("/live", r.handlers.Health.Live)

	// API 路由组，限流在校验之前生效
	api := r.engine.Group("/api")
	api.Use(middleware.RateLimit(r.cfg.Security.RateLimit, r.limiter))
	{
		api.POST("/generate", r.handlers.Generate.Generate)

		if r.handlers.Assets != nil {
			api.GET("/assets", r.handlers.Assets.List)
		}
	}
}
