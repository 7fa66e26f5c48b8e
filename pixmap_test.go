package skygen

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPixmapWrapsTexture(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 8))
	src.SetRGBA(3, 4, color.RGBA{128, 0, 0, 128})

	pm := wrapPixmap(src)
	assert.Equal(t, 10, pm.Width())
	assert.Equal(t, 8, pm.Height())
	assert.Equal(t, image.Rect(0, 0, 10, 8), pm.Bounds())
	assert.Equal(t, color.RGBAModel, pm.ColorModel())

	got := FromColor(pm.At(3, 4))
	assert.InDelta(t, 1.0, got.R, 0.01)
	assert.InDelta(t, 0.5, got.A, 0.01)

	// Stored premultiplied, without a copy.
	i := pm.img.PixOffset(3, 4)
	assert.Equal(t, uint8(128), pm.Data()[i])
	src.Pix[i] = 7
	assert.Equal(t, uint8(7), pm.Data()[i])
}

func TestPixmapClear(t *testing.T) {
	pm := NewPixmap(4, 4)
	pm.Clear(FromUint24(0x000023))
	assert.Equal(t, uint32(0x000023), FromColor(pm.At(2, 2)).Uint24())
	assert.Equal(t, uint8(0xff), pm.Data()[3])
}

func TestPixmapPNG(t *testing.T) {
	pm := NewPixmap(6, 6)
	pm.Clear(White)

	var buf bytes.Buffer
	require.NoError(t, pm.EncodePNG(&buf))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 6, 6), decoded.Bounds())

	path := filepath.Join(t.TempDir(), "sky.png")
	require.NoError(t, pm.SavePNG(path))
	assert.Error(t, pm.SavePNG(filepath.Join(t.TempDir(), "missing", "sky.png")))
}
