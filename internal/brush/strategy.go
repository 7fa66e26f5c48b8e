package brush

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gogpu/skygen/surface"
)

// Strategy paints a brush shape onto a cleared square surface.
type Strategy interface {
	// Name identifies the strategy in configs and logs.
	Name() string

	// Size returns the edge length of the surface Paint expects.
	Size(s Spec) int

	// Paint stacks circles centred on the surface.
	Paint(dst surface.Surface, s Spec)
}

// StrategyByName returns the strategy registered under name.
func StrategyByName(name string) (Strategy, error) {
	switch name {
	case "", Eased{}.Name():
		return Eased{}, nil
	case Legacy{}.Name():
		return Legacy{}, nil
	default:
		return nil, fmt.Errorf("brush: unknown strategy %q", name)
	}
}

// Eased grows circle radii quadratically so the stack is dense near the
// centre and sparse at the rim. Star brushes get an extra hard core.
type Eased struct{}

// Name returns "refined".
func (Eased) Name() string { return "refined" }

// Size returns twice the radius.
func (Eased) Size(s Spec) int { return 2 * s.Radius }

// Paint implements Strategy.
func (Eased) Paint(dst surface.Surface, s Spec) {
	radius := float64(s.Radius)
	c := radius

	steps := max(math.Round(stepsPerSoftness*s.Softness), 1)
	k := (radius - 1) / (steps * steps)
	step := white(math.Max(s.Alpha/steps, MinStepAlpha))

	prev := 0.0
	for i := 0; i <= s.Radius; i++ {
		fi := float64(i)
		r := clamp(math.Round(1+fi*fi*k), 1, radius)
		if r == prev {
			continue
		}
		prev = r
		dst.FillCircle(c, c, r, step)
	}

	if s.Role == RoleStar {
		h := s.Hardness
		if h == 0 {
			h = hardnessFloor
		}
		dst.FillCircle(c, c, math.Max(radius*h, minCoreRadius), white(s.Alpha))
	}
}

// Legacy stacks evenly spaced cloud circles and draws stars as a faint halo
// under a solid core.
type Legacy struct{}

// Name returns "legacy".
func (Legacy) Name() string { return "legacy" }

// Size returns twice the radius for clouds. Star canvases span the larger
// of the core and halo diameters times CanvasScale, rounded up.
func (Legacy) Size(s Spec) int {
	if s.Role == RoleStar {
		scale := s.CanvasScale
		if scale <= 0 {
			scale = 1
		}
		return int(math.Ceil(2 * math.Max(s.coreRadius(), s.HaloRadius) * scale))
	}
	return 2 * s.Radius
}

// Paint implements Strategy.
func (l Legacy) Paint(dst surface.Surface, s Spec) {
	c := float64(l.Size(s)) / 2

	if s.Role == RoleStar {
		core := s.coreRadius()
		dst.FillCircle(c, c, math.Max(s.HaloRadius, core), white(s.HaloAlpha))
		dst.FillCircle(c, c, core, white(s.Alpha))
		return
	}

	step := white(math.Max(s.Opacity/float64(s.Radius), MinStepAlpha))
	for r := 2; r <= s.Radius; r++ {
		dst.FillCircle(c, c, float64(r), step)
	}
}

// white returns straight-alpha white at alpha a in [0, 1].
func white(a float64) color.NRGBA64 {
	return color.NRGBA64{
		R: 0xffff, G: 0xffff, B: 0xffff,
		A: uint16(clamp(a, 0, 1)*0xffff + 0.5),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
