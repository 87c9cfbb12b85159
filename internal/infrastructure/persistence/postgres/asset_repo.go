// Package postgres 提供 PostgreSQL 数据库访问层实现
package postgres

import (
	"context"
	"fmt"

	"pixelforge-asset-api/internal/domain/entity"
	"pixelforge-asset-api/pkg/tracer"
)

// AssetRepository 素材目录仓储
type AssetRepository struct {
	client *Client
}

// NewAssetRepository 创建素材目录仓储
func NewAssetRepository(client *Client) *AssetRepository {
	return &AssetRepository{client: client}
}

// EnsureSchema 迁移素材目录表
func (r *AssetRepository) EnsureSchema(ctx context.Context) error {
	if err := r.client.db.WithContext(ctx).AutoMigrate(&entity.AssetRecord{}); err != nil {
		return fmt.Errorf("failed to migrate assets schema: %w", err)
	}
	return nil
}

// Record 记录一次成功的素材生成
func (r *AssetRepository) Record(ctx context.Context, provider string, asset *entity.GeneratedAsset) error {
	ctx, span := tracer.Start(ctx, "postgres.AssetRepository.Record")
	defer span.End()

	format := asset.Format
	if format == "" {
		format = "image"
	}

	rec := &entity.AssetRecord{
		Query:       asset.Query,
		Provider:    provider,
		Format:      format,
		Style:       asset.Style,
		FileName:    asset.FileName,
		FilePath:    asset.FilePath,
		Transparent: asset.Transparent,
		SizeBytes:   asset.SizeBytes,
	}
	if err := r.client.db.WithContext(ctx).Create(rec).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to record asset: %w", err)
	}
	return nil
}

// ListRecent 按时间倒序列出最近的素材记录
func (r *AssetRepository) ListRecent(ctx context.Context, limit int) ([]*entity.AssetRecord, error) {
	ctx, span := tracer.Start(ctx, "postgres.AssetRepository.ListRecent")
	defer span.End()

	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var records []*entity.AssetRecord
	if err := r.client.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return records, nil
}
