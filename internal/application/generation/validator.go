// Package generation 提供素材生成的应用层逻辑
package generation

import (
	"bytes"
	"encoding/json"

	"pixelforge-asset-api/internal/config"
	"pixelforge-asset-api/internal/domain/entity"
	"pixelforge-asset-api/pkg/errors"
)

// RawRequest 解码后的原始请求体
// 可选字段使用指针/原始字节以区分"缺失"与"非法取值"。
type RawRequest struct {
	Query       string
	Type        *string
	Format      *string
	Style       string
	APIKey      string
	Provider    *string
	Transparent json.RawMessage
}

var (
	jsonTrue  = []byte("true")
	jsonFalse = []byte("false")
)

// Validate 校验原始请求体并生成规范化请求
// 规则按序执行，首个失败即返回；无副作用，仅读取配置快照。
func Validate(raw *RawRequest, defaults config.GeneratorConfig) (*entity.GenerationRequest, error) {
	// 1. query 必填且非空
	if raw.Query == "" {
		return nil, errors.MissingField("query")
	}

	// 2. type 必填且必须为 image
	if raw.Type == nil {
		return nil, errors.MissingField("type")
	}
	if *raw.Type != "image" {
		return nil, errors.New(errors.CodeUnsupportedType, "only type \"image\" is supported").
			WithDetail(*raw.Type)
	}

	// 3. format 可选，给定时必须受支持
	format := ""
	if raw.Format != nil {
		if !entity.KnownFormat(*raw.Format) {
			return nil, errors.New(errors.CodeUnsupportedFormat, "unsupported asset format").
				WithDetail(*raw.Format)
		}
		format = *raw.Format
	}

	// 4. 解析生效提供商与 API Key（请求值覆盖配置默认值）
	provider := defaults.Provider
	if raw.Provider != nil {
		provider = *raw.Provider
	}
	apiKey := raw.APIKey
	if apiKey == "" {
		apiKey = defaults.APIKey
	}
	if apiKey == "" {
		return nil, errors.MissingField("api_key")
	}

	// 5. provider 显式给定时必须受支持
	if raw.Provider != nil && !entity.KnownProvider(*raw.Provider) {
		return nil, errors.New(errors.CodeUnsupportedProvider, "unsupported provider").
			WithDetail(*raw.Provider)
	}

	// 6. transparent 给定时必须为布尔值，缺省为 true
	transparent := true
	if len(raw.Transparent) > 0 {
		switch {
		case bytes.Equal(raw.Transparent, jsonTrue):
			transparent = true
		case bytes.Equal(raw.Transparent, jsonFalse):
			transparent = false
		default:
			return nil, errors.InvalidType("transparent")
		}
	}

	return &entity.GenerationRequest{
		Query:       raw.Query,
		Format:      format,
		Style:       raw.Style,
		Provider:    provider,
		APIKey:      apiKey,
		Transparent: transparent,
	}, nil
}
