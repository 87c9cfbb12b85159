package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelforge-asset-api/internal/config"
	"pixelforge-asset-api/internal/domain/entity"
	"pixelforge-asset-api/pkg/errors"
)

func newTestClient(baseURL string) *OpenAIClient {
	return NewOpenAIClient(&config.OpenAIConfig{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	})
}

func TestOpenAIGenerateSuccess(t *testing.T) {
	imageData := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a}

	var gotAuth string
	var gotBody imageGenerationRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/images/generations":
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			resp := map[string]any{
				"data": []map[string]string{{"url": "http://" + r.Host + "/download"}},
			}
			_ = json.NewEncoder(w).Encode(resp)
		case "/download":
			_, _ = w.Write(imageData)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	data, err := client.Generate(context.Background(), &entity.GenerationRequest{
		Query:       "pixel art carrot",
		APIKey:      "sk-test",
		Transparent: true,
	})
	require.NoError(t, err)
	assert.Equal(t, imageData, data)

	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "pixel art carrot with transparent background", gotBody.Prompt)
	assert.Equal(t, 1, gotBody.N)
	assert.Equal(t, "256x256", gotBody.Size)
	assert.Equal(t, "url", gotBody.ResponseFormat)
}

func TestOpenAIGenerateOpaquePrompt(t *testing.T) {
	var gotBody imageGenerationRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/images/generations" {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": []map[string]string{{"url": "http://" + r.Host + "/download"}},
			})
			return
		}
		_, _ = w.Write([]byte("png"))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Generate(context.Background(), &entity.GenerationRequest{
		Query:       "stone wall",
		APIKey:      "sk-test",
		Transparent: false,
	})
	require.NoError(t, err)
	assert.Equal(t, "stone wall", gotBody.Prompt)
}

func TestOpenAIGenerateErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantCode   errors.ErrorCode
		wantDetail string
	}{
		{
			name:       "unauthorized",
			status:     http.StatusUnauthorized,
			body:       `{"error":{"message":"Incorrect API key provided"}}`,
			wantCode:   errors.CodeInvalidAPIKey,
			wantDetail: "Incorrect API key provided",
		},
		{
			name:       "rate limited",
			status:     http.StatusTooManyRequests,
			body:       `{"error":{"message":"Rate limit reached"}}`,
			wantCode:   errors.CodeProviderRateLimited,
			wantDetail: "Rate limit reached",
		},
		{
			name:       "bad request",
			status:     http.StatusBadRequest,
			body:       `{"error":{"message":"Invalid prompt"}}`,
			wantCode:   errors.CodeBadRequest,
			wantDetail: "Invalid prompt",
		},
		{
			name:     "server error",
			status:   http.StatusInternalServerError,
			body:     `upstream exploded`,
			wantCode: errors.CodeProviderError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := newTestClient(srv.URL)
			_, err := client.Generate(context.Background(), &entity.GenerationRequest{
				Query:  "carrot",
				APIKey: "sk-test",
			})

			appErr := errors.AsAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, appErr.Detail)
			}
		})
	}
}

func TestOpenAIGenerateNoImageReturned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Generate(context.Background(), &entity.GenerationRequest{
		Query:  "carrot",
		APIKey: "sk-test",
	})

	appErr := errors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeNoImageReturned, appErr.Code)
}

func TestOpenAIDownloadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/images/generations" {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": []map[string]string{{"url": "http://" + r.Host + "/download"}},
			})
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Generate(context.Background(), &entity.GenerationRequest{
		Query:  "carrot",
		APIKey: "sk-test",
	})

	appErr := errors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeProviderError, appErr.Code)
}
