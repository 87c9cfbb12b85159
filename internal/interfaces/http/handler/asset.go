// Package handler 提供 HTTP 请求处理器
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pixelforge-asset-api/internal/domain/entity"
	"pixelforge-asset-api/internal/infrastructure/persistence/postgres"
	"pixelforge-asset-api/internal/interfaces/http/dto"
	"pixelforge-asset-api/pkg/logger"
)

// AssetHandler 素材目录处理器
type AssetHandler struct {
	repo *postgres.AssetRepository
}

// NewAssetHandler 创建素材目录处理器
func NewAssetHandler(repo *postgres.AssetRepository) *AssetHandler {
	return &AssetHandler{repo: repo}
}

// List 列出最近生成的素材
// @Summary 素材目录
// @Description 按时间倒序列出最近生成的素材记录
// @Tags Assets
// @Produce json
// @Param limit query int false "返回条数，默认 50，上限 100"
// @Success 200 {object} dto.AssetListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/assets [get]
func (h *AssetHandler) List(c *gin.Context) {
	if h.repo == nil {
		dto.Error(c, http.StatusServiceUnavailable, "asset catalog not configured", "")
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))

	records, err := h.repo.ListRecent(c.Request.Context(), limit)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to list assets", err)
		dto.Error(c, http.StatusInternalServerError, "failed to list assets", err.Error())
		return
	}
	if records == nil {
		records = []*entity.AssetRecord{}
	}

	c.JSON(http.StatusOK, dto.AssetListResponse{
		Status: "success",
		Assets: records,
	})
}
