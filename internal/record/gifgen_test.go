package record

import (
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWritesNonEmptyGIFFile(t *testing.T) {
	frames := solidFrames(3, 20, 10)
	out := filepath.Join(t.TempDir(), "out.gif")

	size, err := Generate(frames, out, Options{FPS: 10, MaxWidth: 20})
	require.NoError(t, err)
	assert.Positive(t, size)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, size, info.Size())
}

func TestGenerateReturnsZeroForNoFrames(t *testing.T) {
	out := filepath.Join(t.TempDir(), "empty.gif")
	size, err := Generate(nil, out, Options{FPS: 10})
	require.NoError(t, err)
	assert.Zero(t, size)
	_, statErr := os.Stat(out)
	assert.Error(t, statErr)
}

func TestGeneratePreservesAspectRatio(t *testing.T) {
	frames := solidFrames(1, 40, 20)
	out := filepath.Join(t.TempDir(), "ratio.gif")
	_, err := Generate(frames, out, Options{FPS: 10, MaxWidth: 20})
	require.NoError(t, err)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := gif.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Width)
	assert.Equal(t, 10, cfg.Height)
}

func TestGeneratePaletteAlwaysReservesTransparentSlot(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{200, 50, 50, 255})
		}
	}
	palette := generatePalette(img)
	assert.Len(t, palette, 256)
	assert.Equal(t, color.RGBA{0, 0, 0, 0}, palette[0])
}
