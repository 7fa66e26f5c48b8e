// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import "image/color"

// Point represents a 2D point with float64 coordinates.
type Point struct {
	X, Y float64
}

// Pt creates a Point from x, y coordinates.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Anchor positions.
var (
	// TopLeft places the image's top-left corner at the draw position.
	TopLeft = Point{X: 0, Y: 0}

	// Center places the image's centre at the draw position.
	Center = Point{X: 0.5, Y: 0.5}
)

// DrawImageOptions specifies options for drawing images.
type DrawImageOptions struct {
	// Scale uniformly scales the image around its anchor.
	// Zero means 1.
	Scale float64

	// Tint multiplies the image's color channels. Only the RGB components
	// are used. Nil leaves colors unchanged.
	Tint color.Color

	// Alpha is the overall opacity (0.0 to 1.0).
	Alpha float64

	// Anchor is the normalized point of the image placed at the draw
	// position: (0, 0) is the top-left corner, (0.5, 0.5) the centre.
	Anchor Point
}

// DefaultDrawImageOptions returns the default draw options: unscaled,
// untinted, fully opaque, anchored at the top-left corner.
func DefaultDrawImageOptions() DrawImageOptions {
	return DrawImageOptions{
		Scale:  1,
		Alpha:  1,
		Anchor: TopLeft,
	}
}
