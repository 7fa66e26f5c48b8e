package skygen

import (
	"github.com/gogpu/skygen/internal/random"
	"github.com/gogpu/skygen/surface"
)

// RandomSource supplies every random draw of a generation pass.
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource = random.Source

// Option configures a Generator during creation.
// Use functional options to customize Generator behavior.
//
// Example:
//
//	// Reproducible output
//	g, err := skygen.New(800, 600, cfg, skygen.WithSeed(42))
//
//	// Private cache and key
//	g, err := skygen.New(800, 600, cfg,
//	    skygen.WithTextureCache(textures),
//	    skygen.WithKey("menu_sky"))
type Option func(*generatorOptions)

// generatorOptions holds optional configuration for Generator creation.
type generatorOptions struct {
	src          RandomSource
	textures     *TextureCache
	key          string
	newSurface   surface.Factory
	brushSurface surface.Factory
}

// defaultOptions returns the default generator options.
func defaultOptions() generatorOptions {
	return generatorOptions{
		src:          nil, // Will be seeded randomly if nil
		textures:     nil, // Will use DefaultTextureCache if nil
		key:          DefaultKey,
		newSurface:   surface.NewSurface,
		brushSurface: surface.FactoryFor("deep"),
	}
}

// WithRandom sets the random source used by every pass.
func WithRandom(src RandomSource) Option {
	return func(o *generatorOptions) {
		o.src = src
	}
}

// WithSeed seeds a deterministic random source. Two generators created with
// the same seed and config produce identical skies.
func WithSeed(seed uint64) Option {
	return func(o *generatorOptions) {
		o.src = random.New(seed)
	}
}

// WithTextureCache publishes into textures instead of DefaultTextureCache.
func WithTextureCache(textures *TextureCache) Option {
	return func(o *generatorOptions) {
		o.textures = textures
	}
}

// WithKey publishes under key instead of DefaultKey.
func WithKey(key string) Option {
	return func(o *generatorOptions) {
		o.key = key
	}
}

// WithSurfaceFactory allocates the output surface with f.
func WithSurfaceFactory(f surface.Factory) Option {
	return func(o *generatorOptions) {
		o.newSurface = f
	}
}

// WithBrushSurfaceFactory allocates brush surfaces with f.
func WithBrushSurfaceFactory(f surface.Factory) Option {
	return func(o *generatorOptions) {
		o.brushSurface = f
	}
}

// WithBackend allocates the output surface from the named registered
// backend.
//
// Example:
//
//	g, err := skygen.New(800, 600, cfg, skygen.WithBackend("image"))
func WithBackend(name string) Option {
	return func(o *generatorOptions) {
		o.newSurface = surface.FactoryFor(name)
	}
}
