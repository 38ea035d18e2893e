package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/guardvision/localocr/ocr"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkerFactory(t *testing.T) {
	t.Cleanup(func() {
		settings = viper.New()
	})

	settings.Set("engine", "tesseract_server")
	settings.Set("ocr-server-url", "http://ocr.local:8080")
	factory, err := newWorkerFactory(slog.Default())
	require.NoError(t, err)
	assert.IsType(t, &ocr.TesseractServerFactory{}, factory)

	settings.Set("engine", "TESSERACT")
	settings.Set("ocr-tesseract-model", "fast")
	factory, err = newWorkerFactory(slog.Default())
	require.NoError(t, err)
	assert.IsType(t, &ocr.TesseractFactory{}, factory)

	settings.Set("ocr-tesseract-model", "HUGE")
	_, err = newWorkerFactory(slog.Default())
	require.Error(t, err)

	settings.Set("engine", "paddle")
	settings.Set("ocr-paddle-url", "http://paddle.local:8866")
	factory, err = newWorkerFactory(slog.Default())
	require.NoError(t, err)
	assert.IsType(t, &ocr.PaddleFactory{}, factory)

	settings.Set("engine", "EASYOCR")
	_, err = newWorkerFactory(slog.Default())
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	assert.True(t, newLogger("debug").Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, newLogger("warn").Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, newLogger("nonsense").Enabled(context.Background(), slog.LevelInfo))
}
