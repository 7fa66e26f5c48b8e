// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"fmt"
	"image"
	"image/color"
)

// Surface is the core rendering target abstraction.
//
// Surfaces are NOT thread-safe. Each surface should be used from a single
// goroutine, or external synchronization must be used.
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// Clear fills the entire surface with the given color, replacing
	// existing content.
	Clear(c color.Color)

	// FillCircle composites an anti-aliased filled circle centred at
	// (cx, cy) using source-over. Non-positive radii draw nothing.
	FillCircle(cx, cy, r float64, c color.Color)

	// DrawImage composites img at the specified position using source-over.
	// If opts is nil, default options are used.
	DrawImage(img image.Image, at Point, opts *DrawImageOptions)

	// Snapshot returns the current surface contents as an RGBA image.
	// The returned image is a copy; modifications to it do not affect the surface.
	Snapshot() *image.RGBA

	// Close releases all resources associated with the surface.
	// After Close, the surface must not be used.
	// Close is idempotent; multiple calls are safe.
	Close() error
}

// Factory allocates a surface of the given size.
type Factory func(width, height int) (Surface, error)

// AllocationError reports a Factory that could not allocate a surface.
type AllocationError struct {
	Width, Height int
	Err           error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("surface: allocating %dx%d: %v", e.Width, e.Height, e.Err)
}

// Unwrap returns the Factory error.
func (e *AllocationError) Unwrap() error {
	return e.Err
}
