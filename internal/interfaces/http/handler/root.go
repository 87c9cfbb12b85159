// Package handler 提供 HTTP 请求处理器
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RootHandler 服务描述处理器
type RootHandler struct {
	name    string
	version string
}

// NewRootHandler 创建服务描述处理器
func NewRootHandler(name, version string) *RootHandler {
	return &RootHandler{
		name:    name,
		version: version,
	}
}

// Index 静态服务描述
// @Summary 服务描述
// @Tags System
// @Produce json
// @Router / [get]
func (h *RootHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": h.name,
		"version": h.version,
		"status":  "ok",
		"endpoints": gin.H{
			"generate": "POST /api/generate",
			"assets":   "GET /api/assets",
			"health":   "GET /health",
		},
	})
}
