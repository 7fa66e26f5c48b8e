// Package composite stamps brushes at weighted points onto an output surface.
package composite

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/skygen/internal/brush"
	"github.com/gogpu/skygen/internal/field"
	"github.com/gogpu/skygen/internal/random"
	"github.com/gogpu/skygen/surface"
)

// Cloud sprites are scaled uniformly in [minCloudScale, maxCloudScale).
const (
	minCloudScale = 0.6
	maxCloudScale = 1.0
)

// cloudAlphaDivisor divides a point weight into a cloud draw alpha.
const cloudAlphaDivisor = 3

// Errors returned by Render.
var (
	// ErrLayerMismatch is returned when the two layers differ in length.
	ErrLayerMismatch = errors.New("composite: layers have different lengths")

	// ErrNoStars is returned when a render has no star brushes or colors.
	ErrNoStars = errors.New("composite: empty star brushes or palette")

	// ErrNoCloud is returned when the brush set has no cloud brush.
	ErrNoCloud = errors.New("composite: missing cloud brush")
)

// Publisher receives a finished render under a key, replacing any previous
// entry.
type Publisher interface {
	Publish(key string, img *image.RGBA)
}

// Params configures one render pass.
type Params struct {
	Width, Height int

	Cloud1, Cloud2 color.Color
	StarColors     []color.Color

	// StarAlpha and OpacityCap scale star draw alpha as
	// weight * StarAlpha / OpacityCap.
	StarAlpha  float64
	OpacityCap float64

	// SharedCloudScale reuses layer A's cloud scale for layer B.
	SharedCloudScale bool

	// Key names the published result. Empty skips publishing.
	Key string
}

// Compositor renders layers onto fresh surfaces. A nil NewSurface means the
// best available surface backend.
type Compositor struct {
	NewSurface surface.Factory
	Publisher  Publisher
}

// Render draws, for every index i, a cloud at a[i] tinted Cloud1, a cloud at
// b[i] tinted Cloud2 and a randomly chosen star at b[i]. Nothing is published
// when Render fails.
func (c Compositor) Render(src random.Source, a, b field.Layer, set brush.Set, p Params) (*image.RGBA, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLayerMismatch, len(a), len(b))
	}
	stars := nonNil(set.Stars[:])
	if len(stars) == 0 || len(p.StarColors) == 0 {
		return nil, ErrNoStars
	}
	if set.Cloud == nil {
		return nil, ErrNoCloud
	}

	newSurface := c.NewSurface
	if newSurface == nil {
		newSurface = surface.NewSurface
	}
	dst, err := newSurface(p.Width, p.Height)
	if err != nil {
		return nil, fmt.Errorf("composite: output: %w", &surface.AllocationError{Width: p.Width, Height: p.Height, Err: err})
	}
	defer dst.Close()

	dst.Clear(color.Transparent)

	starRatio := 1.0
	if p.OpacityCap > 0 {
		starRatio = p.StarAlpha / p.OpacityCap
	}
	cloud := set.Cloud.Image()

	for i := range a {
		pa, pb := a[i], b[i]

		scaleA := random.Uniform(src, minCloudScale, maxCloudScale)
		dst.DrawImage(cloud, surface.Pt(pa.X, pa.Y), &surface.DrawImageOptions{
			Scale:  scaleA,
			Tint:   p.Cloud1,
			Alpha:  pa.Weight / cloudAlphaDivisor,
			Anchor: surface.Center,
		})

		scaleB := scaleA
		if !p.SharedCloudScale {
			scaleB = random.Uniform(src, minCloudScale, maxCloudScale)
		}
		dst.DrawImage(cloud, surface.Pt(pb.X, pb.Y), &surface.DrawImageOptions{
			Scale:  scaleB,
			Tint:   p.Cloud2,
			Alpha:  pb.Weight / cloudAlphaDivisor,
			Anchor: surface.Center,
		})

		star := random.Pick(src, stars)
		tint := random.Pick(src, p.StarColors)
		dst.DrawImage(star.Image(), surface.Pt(pb.X, pb.Y), &surface.DrawImageOptions{
			Scale:  1,
			Tint:   tint,
			Alpha:  math.Min(pb.Weight*starRatio, 1),
			Anchor: surface.Center,
		})
	}

	img := dst.Snapshot()
	if img == nil {
		return nil, errors.New("composite: output surface closed before snapshot")
	}
	if c.Publisher != nil && p.Key != "" {
		c.Publisher.Publish(p.Key, img)
	}
	return img, nil
}

func nonNil(stars []*brush.Brush) []*brush.Brush {
	out := make([]*brush.Brush, 0, len(stars))
	for _, s := range stars {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}
