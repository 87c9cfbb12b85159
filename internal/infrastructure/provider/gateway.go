// Package provider 提供图像生成提供商网关
package provider

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"pixelforge-asset-api/internal/config"
	"pixelforge-asset-api/internal/domain/entity"
	"pixelforge-asset-api/pkg/errors"
	"pixelforge-asset-api/pkg/metrics"
	"pixelforge-asset-api/pkg/tracer"
)

// Gateway 提供商网关接口
type Gateway interface {
	// Generate 生成素材并返回图像二进制内容
	Generate(ctx context.Context, req *entity.GenerationRequest) ([]byte, error)
}

// Dispatcher 按提供商分发的网关实现
//
// openai 调用真实接口；stability/replicate 尚未接入，
// 返回固定的占位图而不是网络错误。
type Dispatcher struct {
	openai *OpenAIClient
}

// NewDispatcher 创建网关分发器
func NewDispatcher(cfg *config.ProvidersConfig) *Dispatcher {
	return &Dispatcher{
		openai: NewOpenAIClient(&cfg.OpenAI),
	}
}

// Generate 实现 Gateway 接口
func (d *Dispatcher) Generate(ctx context.Context, req *entity.GenerationRequest) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "provider.Generate")
	span.SetAttributes(attribute.String("provider", req.Provider))
	defer span.End()

	start := time.Now()
	data, err := d.dispatch(ctx, req)
	metrics.ProviderCallDuration.WithLabelValues(req.Provider).Observe(time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		metrics.ProviderCallTotal.WithLabelValues(req.Provider, "error").Inc()
		return nil, err
	}

	metrics.ProviderCallTotal.WithLabelValues(req.Provider, "ok").Inc()
	return data, nil
}

func (d *Dispatcher) dispatch(ctx context.Context, req *entity.GenerationRequest) ([]byte, error) {
	switch req.Provider {
	case entity.ProviderOpenAI:
		return d.openai.Generate(ctx, req)
	case entity.ProviderStability, entity.ProviderReplicate:
		// 未接入的提供商返回占位图
		return PlaceholderPNG(req.Transparent), nil
	default:
		return nil, errors.New(errors.CodeUnsupportedProvider, "unsupported provider").
			WithDetail(req.Provider)
	}
}
