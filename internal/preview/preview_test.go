package preview

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSize(t *testing.T) {
	r := NewWithProfile(termenv.Ascii, 40)

	w, h := r.Size(image.NewRGBA(image.Rect(0, 0, 800, 600)))
	assert.Equal(t, 40, w)
	assert.Equal(t, 30, h)

	w, h = r.Size(image.NewRGBA(image.Rect(0, 0, 100, 31)))
	assert.Equal(t, 40, w)
	assert.Equal(t, 14, h, "odd heights round up to whole cells")

	w, h = r.Size(image.NewRGBA(image.Rect(0, 0, 400, 1)))
	assert.Equal(t, 2, h)
	assert.Equal(t, 40, w)

	w, _ = NewWithProfile(termenv.Ascii, 0).Size(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	assert.Zero(t, w)
}

func TestRenderLayout(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	out := NewWithProfile(termenv.Ascii, 8).Render(img)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	for _, l := range lines {
		assert.Equal(t, 8, strings.Count(l, halfBlock))
	}
}

func TestRenderTrueColor(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for x := 0; x < 2; x++ {
		img.SetRGBA(x, 0, color.RGBA{0xff, 0, 0, 0xff})
		img.SetRGBA(x, 1, color.RGBA{0, 0, 0xff, 0xff})
	}

	out := NewWithProfile(termenv.TrueColor, 2).Render(img)
	assert.Contains(t, out, "38;2;255;0;0", "upper pixel is the foreground")
	assert.Contains(t, out, "48;2;0;0;255", "lower pixel is the background")
}

func TestRenderEmpty(t *testing.T) {
	assert.Empty(t, NewWithProfile(termenv.Ascii, 10).Render(image.NewRGBA(image.Rectangle{})))
}
