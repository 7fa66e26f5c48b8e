package skygen

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/gogpu/skygen/internal/field"
)

// WeightedPoint is a position with a weight in [0.05, GlobalOpacity].
type WeightedPoint = field.Point

// ErrTextureMissing is returned when a Sky's key no longer resolves in its
// texture cache.
var ErrTextureMissing = errors.New("skygen: sky texture not in cache")

// Sky is a generated sky bound to its texture cache key. It is drawn at the
// origin; the texture is looked up on demand, so a later generation under the
// same key is visible through an older Sky.
type Sky struct {
	// Key names the texture in the cache.
	Key string

	// Background is the clear color meant to sit behind the texture.
	Background RGBA

	// Width and Height are the texture dimensions.
	Width, Height int

	textures *TextureCache
	layerA   []WeightedPoint
	layerB   []WeightedPoint
}

// Origin returns the display origin, always (0, 0).
func (s *Sky) Origin() image.Point {
	return image.Point{}
}

// Texture returns the published texture, which is transparent wherever no
// cloud or star was drawn.
func (s *Sky) Texture() (*Pixmap, bool) {
	return s.textures.Lookup(s.Key)
}

// Layers returns copies of the two point layers the sky was composited from.
func (s *Sky) Layers() (a, b []WeightedPoint) {
	return append([]WeightedPoint(nil), s.layerA...), append([]WeightedPoint(nil), s.layerB...)
}

// Flatten composites the texture over an opaque Background, for targets
// that have no clear color of their own.
func (s *Sky) Flatten() (*Pixmap, error) {
	tex, ok := s.Texture()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTextureMissing, s.Key)
	}

	bg := s.Background
	bg.A = 1
	out := NewPixmap(tex.Width(), tex.Height())
	out.Clear(bg)
	draw.Draw(out.img, out.img.Rect, tex.img, image.Point{}, draw.Over)
	return out, nil
}

// SavePNG writes the flattened sky to a PNG file.
func (s *Sky) SavePNG(path string) error {
	pm, err := s.Flatten()
	if err != nil {
		return err
	}
	return pm.SavePNG(path)
}
