package provider

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelforge-asset-api/internal/config"
	"pixelforge-asset-api/internal/domain/entity"
	"pixelforge-asset-api/pkg/errors"
)

var pngMagic = []byte{0x89, 0x50, 0x4e, 0x47}

func TestPlaceholderPNG(t *testing.T) {
	transparent := PlaceholderPNG(true)
	opaque := PlaceholderPNG(false)

	assert.True(t, bytes.HasPrefix(transparent, pngMagic))
	assert.True(t, bytes.HasPrefix(opaque, pngMagic))
	assert.NotEqual(t, transparent, opaque)
}

// 占位图在进程生命周期内保持稳定
func TestPlaceholderPNGDeterministic(t *testing.T) {
	assert.Equal(t, PlaceholderPNG(true), PlaceholderPNG(true))
	assert.Equal(t, PlaceholderPNG(false), PlaceholderPNG(false))
}

func TestDispatcherPlaceholderProviders(t *testing.T) {
	d := NewDispatcher(&config.ProvidersConfig{})

	for _, p := range []string{entity.ProviderStability, entity.ProviderReplicate} {
		data, err := d.Generate(context.Background(), &entity.GenerationRequest{
			Query:       "carrot",
			Provider:    p,
			APIKey:      "k",
			Transparent: true,
		})
		require.NoError(t, err, p)
		assert.Equal(t, PlaceholderPNG(true), data)
	}
}

func TestDispatcherUnsupportedProvider(t *testing.T) {
	d := NewDispatcher(&config.ProvidersConfig{})

	_, err := d.Generate(context.Background(), &entity.GenerationRequest{
		Query:    "carrot",
		Provider: "midjourney",
		APIKey:   "k",
	})

	appErr := errors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeUnsupportedProvider, appErr.Code)
}
