// Package middleware 提供 HTTP 中间件
package middleware

import (
	"github.com/gin-gonic/gin"

	"pixelforge-asset-api/internal/config"
	"pixelforge-asset-api/internal/infrastructure/ratelimit"
	"pixelforge-asset-api/pkg/errors"
	"pixelforge-asset-api/pkg/logger"
	"pixelforge-asset-api/pkg/metrics"
)

// RateLimit 限流中间件
// 以客户端地址为键做固定窗口计数，超额请求在校验之前被拒绝。
func RateLimit(cfg config.RateLimitConfig, limiter ratelimit.Limiter) gin.HandlerFunc {
	// 如果未启用限流，返回空中间件
	if !cfg.Enabled || limiter == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		key := "ratelimit:" + c.ClientIP()

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// 限流器故障时放行，避免影响业务
			logger.Warn(c.Request.Context(), "rate limiter unavailable", "error", err.Error())
			c.Next()
			return
		}

		if !allowed {
			metrics.RateLimitRejected.WithLabelValues(c.Request.URL.Path).Inc()
			c.AbortWithStatusJSON(errors.ErrRateLimited.HTTPStatus, gin.H{
				"status":  "error",
				"message": errors.ErrRateLimited.Message,
			})
			return
		}

		c.Next()
	}
}
