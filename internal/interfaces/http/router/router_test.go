package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelforge-asset-api/internal/application/generation"
	"pixelforge-asset-api/internal/config"
	"pixelforge-asset-api/internal/infrastructure/provider"
	"pixelforge-asset-api/internal/infrastructure/ratelimit"
	"pixelforge-asset-api/internal/infrastructure/storage"
	"pixelforge-asset-api/internal/interfaces/http/dto"
	"pixelforge-asset-api/internal/interfaces/http/handler"
)

func newTestRouter(t *testing.T, maxRequests int) (*Router, string) {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.App.Name = "pixelforge-asset-api"
	cfg.App.Version = "test"
	cfg.Generator = config.GeneratorConfig{
		Provider:    "stability",
		StoragePath: dir,
	}
	cfg.Security.RateLimit = config.RateLimitConfig{
		Enabled:     true,
		MaxRequests: maxRequests,
		Window:      time.Minute,
		Backend:     "memory",
	}

	svc := generation.NewService(cfg,
		provider.NewDispatcher(&cfg.Providers),
		storage.NewPersister(dir),
		nil,
	)
	handlers := Handlers{
		Root:     handler.NewRootHandler(cfg.App.Name, cfg.App.Version),
		Health:   handler.NewHealthHandler(nil, nil),
		Generate: handler.NewGenerateHandler(svc),
	}
	limiter := ratelimit.NewFixedWindow(maxRequests, time.Minute)

	return New(cfg, handlers, limiter), dir
}

func postGenerate(r *Router, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.Engine().ServeHTTP(w, req)
	return w
}

func TestGenerateEndpointSuccess(t *testing.T) {
	r, dir := newTestRouter(t, 10)

	w := postGenerate(r, `{
		"query": "pixel art carrot",
		"type": "image",
		"format": "sprite",
		"provider": "stability",
		"api_key": "sk-test"
	}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Regexp(t, `^pixel_art_carrot_sprite_[0-9a-f]{8}\.png$`, resp.FileName)
	assert.Equal(t, filepath.Join(dir, resp.FileName), resp.FilePath)
	assert.Equal(t, "png", resp.Meta.Format)
	assert.Equal(t, "default", resp.Meta.Style)
	assert.Equal(t, "256x256", resp.Meta.Dimensions)
	assert.True(t, resp.Meta.Transparent)
	assert.Equal(t, "pixel art carrot", resp.Meta.Query)

	// 文件已落盘
	info, err := os.Stat(resp.FilePath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestGenerateEndpointMissingAPIKey(t *testing.T) {
	r, _ := newTestRouter(t, 10)

	w := postGenerate(r, `{"query": "carrot", "type": "image"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "missing required field: api_key", resp.Message)
	assert.Equal(t, "api_key", resp.Details)
}

func TestGenerateEndpointUnsupportedType(t *testing.T) {
	r, _ := newTestRouter(t, 10)

	w := postGenerate(r, `{"query": "carrot", "type": "audio", "api_key": "k"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "audio", resp.Details)
}

func TestGenerateEndpointInvalidBody(t *testing.T) {
	r, _ := newTestRouter(t, 10)

	w := postGenerate(r, `{not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "invalid request body", resp.Message)
}

func TestGenerateEndpointRateLimited(t *testing.T) {
	r, _ := newTestRouter(t, 2)
	body := `{"query": "carrot", "type": "image", "provider": "stability", "api_key": "k"}`

	for i := 0; i < 2; i++ {
		w := postGenerate(r, body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w := postGenerate(r, body)
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "rate limit exceeded, try again later", resp.Message)
}

func TestSystemEndpoints(t *testing.T) {
	r, _ := newTestRouter(t, 10)

	for _, path := range []string{"/", "/health", "/ready", "/live"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.Engine().ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}
