package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateShareCodePlain(t *testing.T) {
	svc := NewShareService("", nil)
	code, err := svc.GenerateShareCode(context.Background(), "https://linkgrove.example/ada")
	require.NoError(t, err)
	require.NotEmpty(t, code)

	img, err := png.Decode(bytes.NewReader(code))
	require.NoError(t, err)
	assert.Equal(t, shareCodeSize, img.Bounds().Dx())
}

func TestGenerateShareCodeMissingLogoFallsBack(t *testing.T) {
	svc := NewShareService("/nonexistent/logo.png", nil)
	code, err := svc.GenerateShareCode(context.Background(), "https://linkgrove.example/ada")
	require.NoError(t, err)
	require.NotEmpty(t, code)

	_, err = png.Decode(bytes.NewReader(code))
	assert.NoError(t, err)
}

func TestGenerateShareCodeCorruptLogoFallsBack(t *testing.T) {
	dir := t.TempDir()
	logoPath := filepath.Join(dir, "logo.png")
	require.NoError(t, os.WriteFile(logoPath, []byte("not an image"), 0o644))

	svc := NewShareService(logoPath, nil)
	code, err := svc.GenerateShareCode(context.Background(), "https://linkgrove.example/ada")
	require.NoError(t, err)
	require.NotEmpty(t, code)
}

func TestGenerateShareCodeWithLogoOverlay(t *testing.T) {
	// a real 1x1 png logo composites without error
	dir := t.TempDir()
	logoPath := filepath.Join(dir, "logo.png")
	writeTinyPNG(t, logoPath)

	svc := NewShareService(logoPath, nil)
	code, err := svc.GenerateShareCode(context.Background(), "https://linkgrove.example/ada")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(code))
	require.NoError(t, err)
	assert.Equal(t, shareCodeSize, img.Bounds().Dx())
}

func writeTinyPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestGenerateShareCodeEmptyURL(t *testing.T) {
	svc := NewShareService("", nil)
	_, err := svc.GenerateShareCode(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyShareURL)
}
