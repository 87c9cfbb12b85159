// Package app 提供应用依赖组装
package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"pixelforge-asset-api/internal/application/generation"
	"pixelforge-asset-api/internal/config"
	"pixelforge-asset-api/internal/infrastructure/persistence/postgres"
	"pixelforge-asset-api/internal/infrastructure/provider"
	"pixelforge-asset-api/internal/infrastructure/ratelimit"
	"pixelforge-asset-api/internal/infrastructure/storage"
	"pixelforge-asset-api/internal/interfaces/http/handler"
	"pixelforge-asset-api/internal/interfaces/http/router"
)

// App 已组装的应用
type App struct {
	router *router.Router
}

// Router 返回路由器
func (a *App) Router() *router.Router {
	return a.router
}

// Initialize 组装应用依赖
// 返回的 cleanup 负责关闭数据库和 Redis 连接。
func Initialize(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	// PostgreSQL（可选的素材目录）
	var pgClient *postgres.Client
	var assetRepo *postgres.AssetRepository
	var assetHandler *handler.AssetHandler
	if cfg.Database.Postgres.Enabled {
		client, err := postgres.NewClient(&cfg.Database.Postgres)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init postgres: %w", err)
		}
		cleanups = append(cleanups, func() { _ = client.Close() })

		repo := postgres.NewAssetRepository(client)
		if err := repo.EnsureSchema(ctx); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to init asset catalog: %w", err)
		}

		pgClient = client
		assetRepo = repo
		assetHandler = handler.NewAssetHandler(repo)
	}

	// 限流器
	var limiter ratelimit.Limiter
	var rdb *redis.Client
	if cfg.Security.RateLimit.Enabled {
		switch cfg.Security.RateLimit.Backend {
		case "redis":
			client, err := ratelimit.NewRedisClient(&cfg.Cache.Redis)
			if err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("failed to init redis: %w", err)
			}
			cleanups = append(cleanups, func() { _ = client.Close() })

			rdb = client
			limiter = ratelimit.NewRedisFixedWindow(client,
				cfg.Security.RateLimit.MaxRequests, cfg.Security.RateLimit.Window)
		default:
			limiter = ratelimit.NewFixedWindow(
				cfg.Security.RateLimit.MaxRequests, cfg.Security.RateLimit.Window)
		}
	}

	// 生成流水线
	gateway := provider.NewDispatcher(&cfg.Providers)
	persister := storage.NewPersister(cfg.Generator.StoragePath)
	svc := generation.NewService(cfg, gateway, persister, assetRepo)

	handlers := router.Handlers{
		Root:     handler.NewRootHandler(cfg.App.Name, cfg.App.Version),
		Health:   handler.NewHealthHandler(pgClient, rdb),
		Generate: handler.NewGenerateHandler(svc),
		Assets:   assetHandler,
	}

	return &App{
		router: router.New(cfg, handlers, limiter),
	}, cleanup, nil
}
