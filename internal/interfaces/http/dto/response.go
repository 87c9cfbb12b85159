// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"github.com/gin-gonic/gin"

	"pixelforge-asset-api/internal/domain/entity"
	"pixelforge-asset-api/pkg/errors"
)

// AssetMeta 素材元数据
type AssetMeta struct {
	Format      string `json:"format"`
	Style       string `json:"style"`
	Dimensions  string `json:"dimensions"`
	Transparent bool   `json:"transparent"`
	Query       string `json:"query"`
}

// GenerateResponse 生成成功响应
type GenerateResponse struct {
	Status   string    `json:"status"`
	FilePath string    `json:"file_path"`
	FileName string    `json:"file_name"`
	Meta     AssetMeta `json:"meta"`
}

// ErrorResponse 错误响应结构
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// AssetListResponse 素材目录列表响应
type AssetListResponse struct {
	Status string `json:"status"`
	Assets any    `json:"assets"`
}

// Success 返回生成成功响应
func Success(c *gin.Context, asset *entity.GeneratedAsset) {
	c.JSON(200, GenerateResponse{
		Status:   "success",
		FilePath: asset.FilePath,
		FileName: asset.FileName,
		Meta: AssetMeta{
			Format:      asset.Format,
			Style:       asset.Style,
			Dimensions:  asset.Dimensions,
			Transparent: asset.Transparent,
			Query:       asset.Query,
		},
	})
}

// Error 返回错误响应
// message 保持通用可读，原始细节始终放在 details 字段。
func Error(c *gin.Context, httpCode int, message, details string) {
	c.JSON(httpCode, ErrorResponse{
		Status:  "error",
		Message: message,
		Details: details,
	})
}

// ErrorFrom 按应用错误的类型映射 HTTP 状态并返回错误响应
func ErrorFrom(c *gin.Context, err error) {
	appErr := errors.AsAppError(err)
	details := appErr.Detail
	if details == "" && appErr.Err != nil {
		details = appErr.Err.Error()
	}
	Error(c, appErr.HTTPStatus, appErr.Message, details)
}
