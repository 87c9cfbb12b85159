// Package entity 提供领域实体定义
package entity

import "time"

// 支持的提供商
const (
	ProviderOpenAI    = "openai"
	ProviderStability = "stability"
	ProviderReplicate = "replicate"
)

// 支持的素材格式
const (
	FormatSprite    = "sprite"
	FormatIcon      = "icon"
	FormatComponent = "component"
)

// AssetDimensions 生成素材的固定尺寸
const AssetDimensions = "256x256"

// KnownProvider 检查提供商是否受支持
func KnownProvider(p string) bool {
	switch p {
	case ProviderOpenAI, ProviderStability, ProviderReplicate:
		return true
	}
	return false
}

// KnownFormat 检查格式是否受支持
func KnownFormat(f string) bool {
	switch f {
	case FormatSprite, FormatIcon, FormatComponent:
		return true
	}
	return false
}

// GenerationRequest 校验通过后的规范化生成请求
// 校验完成后不可变，生命周期为单次请求。
type GenerationRequest struct {
	Query       string
	Format      string // sprite/icon/component，空表示未指定
	Style       string
	Provider    string // 已解析的生效提供商
	APIKey      string // 已解析的生效 API Key
	Transparent bool
}

// AssetRecord 素材目录的持久化记录
type AssetRecord struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Query       string    `json:"query" gorm:"type:text;not null"`
	Provider    string    `json:"provider" gorm:"type:varchar(32);not null"`
	Format      string    `json:"format" gorm:"type:varchar(32);not null"`
	Style       string    `json:"style" gorm:"type:varchar(64);not null;default:''"`
	FileName    string    `json:"file_name" gorm:"type:text;not null"`
	FilePath    string    `json:"file_path" gorm:"type:text;not null"`
	Transparent bool      `json:"transparent" gorm:"not null;default:true"`
	SizeBytes   int       `json:"size_bytes" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (AssetRecord) TableName() string {
	return "generated_assets"
}

// GeneratedAsset 已持久化素材的描述符，创建后不再修改
type GeneratedAsset struct {
	FilePath    string
	FileName    string
	Format      string // 固定为 png
	Style       string
	Dimensions  string
	Transparent bool
	Query       string
	SizeBytes   int
}
