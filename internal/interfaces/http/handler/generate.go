// Package handler 提供 HTTP 请求处理器
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pixelforge-asset-api/internal/application/generation"
	"pixelforge-asset-api/internal/interfaces/http/dto"
	"pixelforge-asset-api/pkg/errors"
	"pixelforge-asset-api/pkg/logger"
)

// GenerateHandler 素材生成处理器
type GenerateHandler struct {
	svc *generation.Service
}

// NewGenerateHandler 创建素材生成处理器
func NewGenerateHandler(svc *generation.Service) *GenerateHandler {
	return &GenerateHandler{svc: svc}
}

// Generate 生成素材
// @Summary 生成素材
// @Description 校验请求、调用提供商生成图像并保存到本地磁盘
// @Tags Generation
// @Accept json
// @Produce json
// @Param body body dto.GenerateRequest true "生成请求"
// @Success 200 {object} dto.GenerateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/generate [post]
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	asset, err := h.svc.Generate(c.Request.Context(), req.ToRaw())
	if err != nil {
		appErr := errors.AsAppError(err)
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			logger.Error(c.Request.Context(), "asset generation failed", err)
		}
		dto.ErrorFrom(c, err)
		return
	}

	dto.Success(c, asset)
}
