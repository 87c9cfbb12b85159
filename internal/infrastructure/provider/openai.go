// Package provider 提供图像生成提供商网关
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pixelforge-asset-api/internal/config"
	"pixelforge-asset-api/internal/domain/entity"
	"pixelforge-asset-api/pkg/errors"
	"pixelforge-asset-api/pkg/tracer"
)

// OpenAIClient OpenAI 图像生成客户端
type OpenAIClient struct {
	baseURL    string
	httpClient *http.Client
}

type imageGenerationRequest struct {
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format"`
}

type imageGenerationResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewOpenAIClient 创建 OpenAI 客户端
func NewOpenAIClient(cfg *config.OpenAIConfig) *OpenAIClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAIClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Generate 调用图像生成接口并下载生成结果
func (c *OpenAIClient) Generate(ctx context.Context, req *entity.GenerationRequest) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "openai.Generate")
	defer span.End()

	prompt := req.Query
	if req.Transparent {
		prompt += " with transparent background"
	}

	reqBody, err := json.Marshal(&imageGenerationRequest{
		Prompt:         prompt,
		N:              1,
		Size:           entity.AssetDimensions,
		ResponseFormat: "url",
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeProviderError, "failed to marshal generation request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/images/generations", bytes.NewReader(reqBody))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeProviderError, "failed to create generation request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+req.APIKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeProviderError, "image generation request failed")
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeProviderError, "failed to read generation response")
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, mapProviderStatus(httpResp.StatusCode, body)
	}

	var resp imageGenerationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, errors.CodeProviderError, "failed to decode generation response")
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return nil, errors.ErrNoImageReturned
	}

	return c.download(ctx, resp.Data[0].URL)
}

// download 下载提供商返回的图像二进制内容
// 按字节原样获取，不做大小限制、类型检查或重试。
func (c *OpenAIClient) download(ctx context.Context, url string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "openai.Download")
	defer span.End()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeProviderError, "failed to create download request")
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeProviderError, "image download failed")
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, errors.New(errors.CodeProviderError, "image download failed").
			WithDetail(fmt.Sprintf("download status=%d", httpResp.StatusCode))
	}

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeProviderError, "failed to read image data")
	}
	return data, nil
}

// mapProviderStatus 将提供商错误状态码映射为应用错误
func mapProviderStatus(status int, body []byte) *errors.AppError {
	detail := providerErrorDetail(body)

	switch status {
	case http.StatusUnauthorized:
		return errors.New(errors.CodeInvalidAPIKey, "invalid or expired api key").
			WithDetail(detail)
	case http.StatusTooManyRequests:
		return errors.New(errors.CodeProviderRateLimited, "provider rate limit exceeded").
			WithDetail(detail)
	case http.StatusBadRequest:
		return errors.New(errors.CodeBadRequest, "provider rejected the request").
			WithDetail(detail)
	default:
		return errors.New(errors.CodeProviderError, "provider request failed").
			WithDetail(fmt.Sprintf("status=%d %s", status, detail))
	}
}

// providerErrorDetail 从错误响应体中提取可读信息
func providerErrorDetail(body []byte) string {
	var resp imageGenerationResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Error != nil && resp.Error.Message != "" {
		return resp.Error.Message
	}
	return strings.TrimSpace(string(body))
}
