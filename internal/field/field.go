// Package field builds the two weighted point layers that drive sky
// composition.
//
// A layer starts as uniformly scattered seed points and then grows by
// densification: each new point is the average of three points sampled (with
// replacement) from the layer's current contents. Because new points join the
// pool they are sampled from, densification clusters points toward regions
// that are already dense.
package field

import (
	"errors"

	"github.com/gogpu/skygen/internal/random"
)

// MinWeight is the lower bound of every point weight.
const MinWeight = 0.05

// jitterSpan is the width of the negative weight jitter applied to derived points.
const jitterSpan = 0.1

// ErrEmptyLayer is returned when densification has no points to sample from.
var ErrEmptyLayer = errors.New("field: cannot densify an empty layer")

// Point is a weighted position. Weight drives opacity at draw time.
type Point struct {
	X, Y   float64
	Weight float64
}

// Layer is an ordered sequence of points. Append order determines indexing
// during composition.
type Layer []Point

// Averaging selects how derived points combine their three samples.
type Averaging uint8

const (
	// AveragingCompat averages p3.X into both Y and Weight, reproducing the
	// historical formula.
	AveragingCompat Averaging = iota

	// AveragingCorrected averages p3.Y into Y and p3.Weight into Weight.
	AveragingCorrected
)

// String returns the averaging mode name.
func (a Averaging) String() string {
	switch a {
	case AveragingCompat:
		return "compat"
	case AveragingCorrected:
		return "corrected"
	default:
		return "unknown"
	}
}

// Params configures seeding.
type Params struct {
	Width, Height float64
	Margin        float64

	// InitialPoints is the number of seed points per layer.
	InitialPoints int

	// OpacityCap is the upper clamp for weights.
	OpacityCap float64

	// Anchor appends a fixed point at (Margin, Margin) to each layer after
	// seeding.
	Anchor bool
}

// Seed scatters InitialPoints points into each layer. Layer A and layer B are
// sampled independently, alternating A then B per iteration.
func Seed(src random.Source, p Params) (a, b Layer) {
	n := p.InitialPoints
	if p.Anchor {
		n++
	}
	a = make(Layer, 0, n)
	b = make(Layer, 0, n)

	for i := 0; i < p.InitialPoints; i++ {
		a = append(a, seedPoint(src, p))
		b = append(b, seedPoint(src, p))
	}

	if p.Anchor {
		a = append(a, Point{X: p.Margin, Y: p.Margin, Weight: ClampWeight(src.Float64(), p.OpacityCap)})
		b = append(b, Point{X: p.Margin, Y: p.Margin, Weight: ClampWeight(src.Float64(), p.OpacityCap)})
	}
	return a, b
}

func seedPoint(src random.Source, p Params) Point {
	x := random.Uniform(src, p.Margin, p.Width-p.Margin)
	y := random.Uniform(src, p.Margin, p.Height-p.Margin)
	w := src.Float64()*p.OpacityCap + MinWeight
	return Point{X: x, Y: y, Weight: ClampWeight(w, p.OpacityCap)}
}

// Densify grows both layers by n points each, like append: callers must use
// the returned layers.
func Densify(src random.Source, a, b Layer, n int, opacityCap float64, mode Averaging) (Layer, Layer, error) {
	for i := 0; i < n; i++ {
		var err error
		a, b, err = Step(src, a, b, opacityCap, mode)
		if err != nil {
			return a, b, err
		}
	}
	return a, b, nil
}

// Step performs one densification iteration: one derived point is appended to
// a, then one to b.
func Step(src random.Source, a, b Layer, opacityCap float64, mode Averaging) (Layer, Layer, error) {
	if len(a) == 0 || len(b) == 0 {
		return a, b, ErrEmptyLayer
	}
	a = append(a, derive(src, a, opacityCap, mode))
	b = append(b, derive(src, b, opacityCap, mode))
	return a, b, nil
}

func derive(src random.Source, l Layer, opacityCap float64, mode Averaging) Point {
	p1 := random.Pick(src, l)
	p2 := random.Pick(src, l)
	p3 := random.Pick(src, l)

	thirdY, thirdW := p3.X, p3.X
	if mode == AveragingCorrected {
		thirdY, thirdW = p3.Y, p3.Weight
	}

	x := (p1.X + p2.X + p3.X) / 3
	y := (p1.Y + p2.Y + thirdY) / 3
	w := (p1.Weight+p2.Weight+thirdW)/3 + (src.Float64()-1)*jitterSpan
	return Point{X: x, Y: y, Weight: ClampWeight(w, opacityCap)}
}

// ClampWeight restricts w to [MinWeight, opacityCap].
func ClampWeight(w, opacityCap float64) float64 {
	if w > opacityCap {
		w = opacityCap
	}
	if w < MinWeight {
		w = MinWeight
	}
	return w
}
