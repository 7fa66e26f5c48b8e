package skygen

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/gogpu/skygen/internal/brush"
	"github.com/gogpu/skygen/internal/composite"
	"github.com/gogpu/skygen/internal/field"
	"github.com/gogpu/skygen/internal/random"
	"github.com/gogpu/skygen/surface"
)

// Generator produces skies of a fixed size from a validated Config.
//
// Each Generate call runs the whole pipeline from scratch and publishes the
// result under the generator's key. A Generator is not safe for concurrent
// Generate calls.
type Generator struct {
	width, height int
	cfg           Config

	src        RandomSource
	textures   *TextureCache
	key        string
	newSurface surface.Factory
	synth      brush.Synthesizer
}

// New validates cfg and creates a Generator for width × height skies.
// Validation errors are *ConfigError values joined together.
func New(width, height int, cfg Config, opts ...Option) (*Generator, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	cfg = cfg.Normalize()
	if err := cfg.Validate(width, height); err != nil {
		return nil, err
	}
	if o.key == "" {
		return nil, &ConfigError{Field: "key", Value: `""`, Reason: "must not be empty"}
	}

	strategy, err := brush.StrategyByName(cfg.Variant)
	if err != nil {
		return nil, &ConfigError{Field: "variant", Value: cfg.Variant, Reason: err.Error()}
	}

	if o.src == nil {
		o.src = random.NewRandom()
	}
	if o.textures == nil {
		o.textures = DefaultTextureCache()
	}
	if o.newSurface == nil {
		o.newSurface = surface.NewSurface
	}

	return &Generator{
		width:      width,
		height:     height,
		cfg:        cfg,
		src:        o.src,
		textures:   o.textures,
		key:        o.key,
		newSurface: o.newSurface,
		synth:      brush.Synthesizer{Strategy: strategy, NewSurface: o.brushSurface},
	}, nil
}

// Config returns the normalized configuration.
func (g *Generator) Config() Config {
	cfg := g.cfg
	cfg.StarColors = append([]RGBA(nil), g.cfg.StarColors...)
	return cfg
}

// Key returns the texture cache key skies are published under.
func (g *Generator) Key() string {
	return g.key
}

// Textures returns the cache skies are published into.
func (g *Generator) Textures() *TextureCache {
	return g.textures
}

// Generate runs brush synthesis, seeding, densification and compositing,
// then publishes the sky. On error nothing is published; allocation failures
// are returned as *ResourceError.
func (g *Generator) Generate() (*Sky, error) {
	log := Logger().With("key", g.key, "variant", g.cfg.Variant)
	start := time.Now()

	set, err := g.synth.MakeSet(g.cfg.setParams())
	if err != nil {
		return nil, classify("brushes", err)
	}
	log.Debug("brushes synthesized",
		"cloud_size", set.Cloud.Size(),
		"star_sizes", []int{set.Stars[0].Size(), set.Stars[1].Size(), set.Stars[2].Size()},
	)

	a, b := field.Seed(g.src, field.Params{
		Width:         float64(g.width),
		Height:        float64(g.height),
		Margin:        g.cfg.Margin,
		InitialPoints: g.cfg.InitialPointsQty,
		OpacityCap:    g.cfg.GlobalOpacity,
		Anchor:        !g.cfg.legacy(),
	})
	log.Debug("points seeded", "per_layer", len(a))

	a, b, err = field.Densify(g.src, a, b, g.cfg.GeneratedPointsQty, g.cfg.GlobalOpacity, g.cfg.averaging())
	if err != nil {
		return nil, fmt.Errorf("skygen: densifying points: %w", err)
	}
	log.Debug("points densified", "per_layer", len(a), "averaging", g.cfg.averaging())

	comp := composite.Compositor{NewSurface: g.newSurface, Publisher: g.textures}
	_, err = comp.Render(g.src, a, b, set, composite.Params{
		Width:            g.width,
		Height:           g.height,
		Cloud1:           g.cfg.Cloud1Color,
		Cloud2:           g.cfg.Cloud2Color,
		StarColors:       starColors(g.cfg.StarColors),
		StarAlpha:        g.cfg.StarAlpha,
		OpacityCap:       g.cfg.GlobalOpacity,
		SharedCloudScale: g.cfg.legacy(),
		Key:              g.key,
	})
	if err != nil {
		return nil, classify("composite", err)
	}
	log.Debug("sky generated", "elapsed", time.Since(start))

	return &Sky{
		Key:        g.key,
		Background: g.cfg.BackgroundColor,
		Width:      g.width,
		Height:     g.height,
		textures:   g.textures,
		layerA:     a,
		layerB:     b,
	}, nil
}

// classify wraps surface allocation failures in *ResourceError. Other stage
// errors are returned with context only.
func classify(stage string, err error) error {
	var ae *surface.AllocationError
	if errors.As(err, &ae) {
		return &ResourceError{Stage: stage, Err: err}
	}
	return fmt.Errorf("skygen: %s: %w", stage, err)
}

func starColors(palette []RGBA) []color.Color {
	out := make([]color.Color, len(palette))
	for i, c := range palette {
		out[i] = c
	}
	return out
}
