// Package generation 提供素材生成的应用层逻辑
package generation

import (
	"context"
	"time"

	"pixelforge-asset-api/internal/config"
	"pixelforge-asset-api/internal/domain/entity"
	"pixelforge-asset-api/internal/infrastructure/persistence/postgres"
	"pixelforge-asset-api/internal/infrastructure/provider"
	"pixelforge-asset-api/internal/infrastructure/storage"
	"pixelforge-asset-api/pkg/logger"
	"pixelforge-asset-api/pkg/metrics"
)

// Service 素材生成服务
// 流水线：校验 -> 提供商网关 -> 本地持久化 -> 描述符装配。
type Service struct {
	cfg       *config.Config
	gateway   provider.Gateway
	persister *storage.Persister
	assets    *postgres.AssetRepository // 可选，未配置数据库时为 nil
}

// NewService 创建素材生成服务
func NewService(cfg *config.Config, gateway provider.Gateway, persister *storage.Persister, assets *postgres.AssetRepository) *Service {
	return &Service{
		cfg:       cfg,
		gateway:   gateway,
		persister: persister,
		assets:    assets,
	}
}

// Generate 执行一次完整的生成流水线
// 任一阶段失败即终止，不做自动重试。
func (s *Service) Generate(ctx context.Context, raw *RawRequest) (*entity.GeneratedAsset, error) {
	req, err := Validate(raw, s.cfg.Generator)
	if err != nil {
		return nil, err
	}

	ctx = logger.WithContext(ctx, logger.ProviderKey, req.Provider)
	logger.Debug(ctx, "dispatching generation request",
		"format", req.Format,
		"transparent", req.Transparent,
	)

	start := time.Now()
	data, err := s.gateway.Generate(ctx, req)
	if err != nil {
		metrics.GenerationTotal.WithLabelValues(req.Provider, "error").Inc()
		return nil, err
	}

	filePath, fileName, err := s.persister.Persist(ctx, req.Query, req.Format, data)
	if err != nil {
		metrics.GenerationTotal.WithLabelValues(req.Provider, "error").Inc()
		return nil, err
	}

	metrics.GenerationTotal.WithLabelValues(req.Provider, "ok").Inc()
	metrics.GenerationDuration.WithLabelValues(req.Provider).Observe(time.Since(start).Seconds())

	style := req.Style
	if style == "" {
		style = "default"
	}

	asset := &entity.GeneratedAsset{
		FilePath:    filePath,
		FileName:    fileName,
		Format:      "png",
		Style:       style,
		Dimensions:  entity.AssetDimensions,
		Transparent: req.Transparent,
		Query:       req.Query,
		SizeBytes:   len(data),
	}

	logger.Info(ctx, "asset generated",
		"file_name", fileName,
		"size_bytes", len(data),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	// 目录记录尽力而为，失败不影响本次请求
	if s.assets != nil {
		if err := s.assets.Record(ctx, req.Provider, asset); err != nil {
			logger.Warn(ctx, "failed to record asset in catalog", "error", err.Error())
		}
	}

	return asset, nil
}
