// Package brush synthesizes the soft radial sprites stamped during
// composition.
//
// A brush is built by stacking translucent white circles of growing radius on
// a private surface, then snapshotting it. Brushes are white so the compositor
// can tint them per draw. Synthesis is deterministic: identical specs always
// produce pixel-identical brushes.
package brush

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/skygen/surface"
)

// Role distinguishes cloud brushes from star brushes.
type Role uint8

const (
	// RoleCloud is a soft, faint cloud puff.
	RoleCloud Role = iota
	// RoleStar is a star glow with a brighter core.
	RoleStar
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleCloud:
		return "cloud"
	case RoleStar:
		return "star"
	default:
		return "unknown"
	}
}

const (
	// MinStepAlpha is the lowest alpha used for a single stacked circle.
	MinStepAlpha = 0.005

	// stepsPerSoftness converts a softness in (0, 1] into an easing step count.
	stepsPerSoftness = 200

	// hardnessFloor replaces a zero star hardness.
	hardnessFloor = 0.001

	// minCoreRadius keeps a hardness-floored star core visible.
	minCoreRadius = 0.5
)

// ErrInvalidSpec is returned when a spec cannot describe a brush.
var ErrInvalidSpec = errors.New("brush: invalid spec")

// Spec describes one brush.
type Spec struct {
	Role Role

	// Radius is the nominal radius in pixels, at least 1.
	Radius int

	// Softness in (0, 1] controls how gradually the eased falloff grows.
	Softness float64

	// Alpha is the peak alpha. It sets the eased step alpha and the star core
	// alpha.
	Alpha float64

	// Hardness in [0, 1] is the star core radius as a fraction of Radius.
	Hardness float64

	// Opacity is the global opacity cap, used by legacy cloud steps.
	Opacity float64

	// HaloRadius and HaloAlpha describe the legacy star halo.
	HaloRadius float64
	HaloAlpha  float64

	// CoreRadius, when positive, replaces Radius as the legacy star core
	// radius, so cores need not be whole pixels.
	CoreRadius float64

	// CanvasScale widens the legacy star canvas beyond the halo diameter.
	// Zero means 1.
	CanvasScale float64
}

// coreRadius returns the legacy star core radius, at least minCoreRadius.
func (s Spec) coreRadius() float64 {
	if s.CoreRadius > 0 {
		return math.Max(s.CoreRadius, minCoreRadius)
	}
	return float64(s.Radius)
}

// Brush is an immutable square white sprite.
type Brush struct {
	role   Role
	radius int
	img    image.Image
}

// Role returns the brush role.
func (b *Brush) Role() Role { return b.role }

// Radius returns the nominal radius.
func (b *Brush) Radius() int { return b.radius }

// Image returns the sprite. Callers must not modify it.
func (b *Brush) Image() image.Image { return b.img }

// Size returns the sprite edge length in pixels.
func (b *Brush) Size() int { return b.img.Bounds().Dx() }

// Synthesizer builds brushes with a Strategy on surfaces from NewSurface.
// A nil Strategy means Eased; a nil NewSurface means the "deep" surface
// backend.
type Synthesizer struct {
	Strategy   Strategy
	NewSurface surface.Factory
}

// deepSnapshotter is implemented by surfaces that can snapshot at 16 bits per
// channel.
type deepSnapshotter interface {
	Snapshot64() *image.RGBA64
}

// Make synthesizes one brush. The surface it paints on is closed before
// returning.
func (z Synthesizer) Make(s Spec) (*Brush, error) {
	if s.Radius < 1 {
		return nil, fmt.Errorf("%w: radius %d < 1", ErrInvalidSpec, s.Radius)
	}

	strategy := z.strategy()
	size := strategy.Size(s)
	sf, err := z.factory()(size, size)
	if err != nil {
		return nil, fmt.Errorf("brush: %s: %w", s.Role, &surface.AllocationError{Width: size, Height: size, Err: err})
	}
	defer sf.Close()

	sf.Clear(color.Transparent)
	strategy.Paint(sf, s)

	var img image.Image
	if d, ok := sf.(deepSnapshotter); ok {
		img = d.Snapshot64()
	} else {
		img = sf.Snapshot()
	}
	return &Brush{role: s.Role, radius: s.Radius, img: img}, nil
}

func (z Synthesizer) strategy() Strategy {
	if z.Strategy == nil {
		return Eased{}
	}
	return z.Strategy
}

func (z Synthesizer) factory() surface.Factory {
	if z.NewSurface == nil {
		return surface.FactoryFor("deep")
	}
	return z.NewSurface
}

// StarTiers is the number of star brush sizes in a Set.
const StarTiers = 3

// smallestTierCanvas is the canvas factor of the smallest legacy star tier.
const smallestTierCanvas = 1.1

// Set holds the brushes used by one composition pass.
type Set struct {
	Cloud *Brush
	Stars [StarTiers]*Brush
}

// SetParams configures MakeSet.
type SetParams struct {
	CloudRadius   int
	CloudGradient float64

	StarRadius   int
	StarGradient float64
	StarAlpha    float64
	StarHardness float64

	// StarScales are the radius factors of the second and third star tiers.
	StarScales [StarTiers - 1]float64

	Opacity        float64
	StarHaloRadius float64
	HaloAlpha      float64
}

// StarRadii returns the radius of each star tier. Every radius is at least 1.
func (p SetParams) StarRadii() [StarTiers]int {
	radii := [StarTiers]int{max(p.StarRadius, 1)}
	for i, s := range p.StarScales {
		radii[i+1] = max(roundInt(float64(p.StarRadius)*s), 1)
	}
	return radii
}

// MakeSet synthesizes one cloud brush and three star brushes.
func (z Synthesizer) MakeSet(p SetParams) (Set, error) {
	var set Set

	cloud, err := z.Make(Spec{
		Role:     RoleCloud,
		Radius:   p.CloudRadius,
		Softness: p.CloudGradient,
		Alpha:    p.StarAlpha,
		Opacity:  p.Opacity,
	})
	if err != nil {
		return Set{}, err
	}
	set.Cloud = cloud

	scales := [StarTiers]float64{1, p.StarScales[0], p.StarScales[1]}
	for i, r := range p.StarRadii() {
		spec := Spec{
			Role:       RoleStar,
			Radius:     r,
			Softness:   p.StarGradient,
			Alpha:      p.StarAlpha,
			Hardness:   p.StarHardness,
			Opacity:    p.Opacity,
			HaloRadius: p.StarHaloRadius * scales[i],
			HaloAlpha:  p.HaloAlpha,
		}
		if i == StarTiers-1 {
			// The smallest legacy tier keeps its fractional core on a
			// slightly wider canvas.
			spec.CoreRadius = float64(p.StarRadius) * p.StarScales[1]
			spec.CanvasScale = smallestTierCanvas
		}
		star, err := z.Make(spec)
		if err != nil {
			return Set{}, err
		}
		set.Stars[i] = star
	}
	return set, nil
}
