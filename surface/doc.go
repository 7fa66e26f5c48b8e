// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the off-screen render target abstraction used by
// skygen.
//
// A Surface is the host-facing boundary of the generator: it can be cleared,
// receive filled circles, receive other images drawn with position, scale,
// tint and alpha, and be snapshotted into an *image.RGBA. The generation
// algorithm only talks to this interface, so hosts with their own render
// targets can plug in a backend through the registry.
//
// # Surface Types
//
//   - ImageSurface: CPU rendering into *image.RGBA using golang.org/x/image
//     (vector rasterizer for fills, draw.ApproxBiLinear for scaled sprites)
//
// # Registry
//
// Backends register a Factory under a name and a priority:
//
//	surface.Register("image", 10, surface.NewImage)
//
//	// Later:
//	s, err := surface.NewSurface(800, 600)
//	// or a specific backend:
//	s, err := surface.NewSurfaceByName("image", 800, 600)
//
// # Usage
//
//	s, err := surface.NewImageSurface(200, 200)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	s.FillCircle(100, 100, 50, color.NRGBA{255, 255, 255, 32})
//	s.DrawImage(sprite, surface.Pt(100, 100), &surface.DrawImageOptions{
//	    Scale:  0.8,
//	    Tint:   color.RGBA{0x65, 0xdd, 0xf7, 0xff},
//	    Alpha:  0.25,
//	    Anchor: surface.Center,
//	})
//	img := s.Snapshot()
//
// # References
//
//   - Cairo: https://cairographics.org/manual/cairo-Image-Surfaces.html
//   - Porter-Duff: "Compositing Digital Images" (1984)
package surface
