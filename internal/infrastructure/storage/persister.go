// Package storage 提供素材本地持久化功能
package storage

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"pixelforge-asset-api/pkg/errors"
	"pixelforge-asset-api/pkg/metrics"
	"pixelforge-asset-api/pkg/tracer"
)

// Persister 素材持久化器
type Persister struct {
	basePath string
}

// NewPersister 创建持久化器
func NewPersister(basePath string) *Persister {
	return &Persister{basePath: basePath}
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slug 将查询文本转换为文件名片段
// 小写化，非字母数字的连续片段折叠为单个下划线，
// 去掉单个首尾下划线，截断到 50 个字符。
func Slug(query string) string {
	s := strings.ToLower(query)
	s = nonAlnum.ReplaceAllString(s, "_")
	s = strings.TrimPrefix(s, "_")
	s = strings.TrimSuffix(s, "_")
	if len(s) > 50 {
		s = s[:50]
	}
	return s
}

// FileName 派生抗冲突的文件名
// 形如 <slug>_<format>_<8hex>.png，format 缺省时使用 image。
func FileName(query, format string) string {
	if format == "" {
		format = "image"
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return Slug(query) + "_" + format + "_" + suffix + ".png"
}

// Persist 将素材二进制写入磁盘
// 创建缺失的父目录；同名文件直接覆盖，不做原子重命名。
func (p *Persister) Persist(ctx context.Context, query, format string, data []byte) (filePath, fileName string, err error) {
	_, span := tracer.Start(ctx, "storage.Persist")
	defer span.End()

	fileName = FileName(query, format)
	filePath = filepath.Join(p.basePath, fileName)
	span.SetAttributes(
		attribute.String("asset.file_name", fileName),
		attribute.Int("asset.size_bytes", len(data)),
	)

	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		span.RecordError(err)
		return "", "", errors.Wrap(err, errors.CodePersistFailed, "failed to create storage directory")
	}
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		span.RecordError(err)
		return "", "", errors.Wrap(err, errors.CodePersistFailed, "failed to write asset file")
	}

	label := format
	if label == "" {
		label = "image"
	}
	metrics.AssetsPersisted.WithLabelValues(label).Inc()
	metrics.AssetBytesWritten.WithLabelValues(label).Add(float64(len(data)))

	return filePath, fileName, nil
}
