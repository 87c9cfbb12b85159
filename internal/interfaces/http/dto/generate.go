// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"encoding/json"

	"pixelforge-asset-api/internal/application/generation"
)

// GenerateRequest 素材生成请求体
// 可选字段使用指针/原始字节，以便校验层区分"缺失"与"非法取值"。
type GenerateRequest struct {
	Query       string          `json:"query"`
	Type        *string         `json:"type"`
	Format      *string         `json:"format,omitempty"`
	Style       string          `json:"style,omitempty"`
	APIKey      string          `json:"api_key,omitempty"`
	Provider    *string         `json:"provider,omitempty"`
	Transparent json.RawMessage `json:"transparent,omitempty"`
}

// ToRaw 转换为应用层原始请求
func (r *GenerateRequest) ToRaw() *generation.RawRequest {
	if r == nil {
		return &generation.RawRequest{}
	}
	return &generation.RawRequest{
		Query:       r.Query,
		Type:        r.Type,
		Format:      r.Format,
		Style:       r.Style,
		APIKey:      r.APIKey,
		Provider:    r.Provider,
		Transparent: r.Transparent,
	}
}
