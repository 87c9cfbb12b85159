// Package provider 提供图像生成提供商网关
package provider

import "encoding/base64"

// 1×1 占位 PNG，用于尚未接入的提供商
var (
	transparentPNG = mustDecode(
		"iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII=")
	opaquePNG = mustDecode(
		"iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg==")
)

func mustDecode(s string) []byte {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		panic("invalid placeholder png: " + err.Error())
	}
	return data
}

// PlaceholderPNG 返回固定的占位图字节序列
// transparent 为 true 时返回透明像素，否则返回不透明像素。
func PlaceholderPNG(transparent bool) []byte {
	if transparent {
		return transparentPNG
	}
	return opaquePNG
}
