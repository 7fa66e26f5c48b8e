// Package skygen procedurally generates static sky backgrounds: a star field
// over two tinted, semi-transparent cloud layers, rendered into one bitmap.
//
// # Overview
//
// Generation runs as a single synchronous pass:
//
//  1. Two weighted point layers are scattered and then densified. Each new
//     point averages three points already in its layer, so points cluster
//     where the layer is already dense.
//  2. Soft radial brushes are synthesized by stacking translucent circles:
//     one cloud brush and three star brushes of decreasing size.
//  3. For every point index, a cloud is stamped from each layer and a star is
//     stamped at the second layer's point, with opacity driven by the point
//     weights.
//  4. The bitmap is published into a TextureCache under a key (default
//     "rt_SkyGenerator"), replacing the previous sky.
//
// # Quick Start
//
//	import "github.com/gogpu/skygen"
//
//	g, err := skygen.New(800, 600, skygen.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sky, err := g.Generate()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = sky.SavePNG("sky.png")
//
// # Variants
//
// The "refined" variant (default) uses eased brushes and anchors each layer
// with a point at the margin corner. The "legacy" variant reproduces the
// earlier look: evenly stacked cloud circles, haloed stars, no anchor point
// and one cloud scale shared by both layers.
//
// # Coordinate System
//
// Origin (0,0) is the top-left corner; X increases right and Y increases
// down. The generated sky is drawn at the origin.
//
// # Randomness
//
// All random draws go through one source. Use WithSeed or WithRandom for
// reproducible output; by default every Generate call produces a new sky.
package skygen

// Version information
const (
	// Version is the current version of the library
	Version = "1.1.1"

	// VersionMajor is the major version
	VersionMajor = 1

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 1
)
