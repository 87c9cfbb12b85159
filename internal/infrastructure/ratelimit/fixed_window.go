// Package ratelimit 提供固定窗口限流器实现
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter 限流器接口
type Limiter interface {
	// Allow 检查指定客户端键是否允许本次请求
	Allow(ctx context.Context, key string) (bool, error)
}

// window 单个客户端的窗口计数
type window struct {
	count int
	start time.Time
}

// FixedWindow 内存固定窗口限流器
//
// 时间划分为长度固定的窗口；首个请求锚定窗口起点，
// 窗口到期后计数归零。全局互斥锁保护计数器，
// 吞吐量按设计较低，粗粒度锁足够。
type FixedWindow struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	size    time.Duration
	now     func() time.Time
}

// NewFixedWindow 创建内存固定窗口限流器
func NewFixedWindow(limit int, size time.Duration) *FixedWindow {
	if limit <= 0 {
		limit = 10
	}
	if size <= 0 {
		size = time.Minute
	}
	return &FixedWindow{
		windows: make(map[string]*window),
		limit:   limit,
		size:    size,
		now:     time.Now,
	}
}

// Allow 实现 Limiter 接口
func (l *FixedWindow) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok {
		w = &window{start: now}
		l.windows[key] = w
	}

	// 窗口到期则重置
	if now.Sub(w.start) >= l.size {
		w.count = 0
		w.start = now
	}

	w.count++
	return w.count <= l.limit, nil
}
