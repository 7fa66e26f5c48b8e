package skygen

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/skygen/internal/brush"
	"github.com/gogpu/skygen/internal/field"
)

// Variant names.
const (
	// VariantRefined selects eased brushes, the margin anchor point and
	// independent cloud scales.
	VariantRefined = "refined"

	// VariantLegacy selects stacked cloud brushes, haloed stars, no anchor and
	// one cloud scale shared by both layers.
	VariantLegacy = "legacy"
)

// hardnessEpsilon replaces a zero StarHardness.
const hardnessEpsilon = 0.001

// Config holds every generation parameter. Start from DefaultConfig and
// override fields; values are used as given, so zero means zero.
type Config struct {
	// BackgroundColor is painted behind the sky by Sky.Flatten.
	BackgroundColor RGBA `yaml:"background_color"`

	// GlobalOpacity is the upper clamp for point weights, in [0.05, 1].
	GlobalOpacity float64 `yaml:"global_opacity"`

	// Points
	InitialPointsQty   int     `yaml:"initial_points_qty"`
	GeneratedPointsQty int     `yaml:"generated_points_qty"`
	Margin             float64 `yaml:"margin"`

	// Clouds
	CloudRadius   int     `yaml:"cloud_radius"`
	CloudGradient float64 `yaml:"cloud_gradient"`

	// Stars
	StarRadius     int     `yaml:"star_radius"`
	StarHaloRadius float64 `yaml:"star_halo_radius"` // legacy only
	StarAlpha      float64 `yaml:"star_alpha"`
	HaloAlpha      float64 `yaml:"halo_alpha"` // legacy only
	StarHardness   float64 `yaml:"star_hardness"`
	StarGradient   float64 `yaml:"star_gradient"`

	// Palette
	StarColors  []RGBA `yaml:"star_colors"`
	Cloud1Color RGBA   `yaml:"cloud1_color"`
	Cloud2Color RGBA   `yaml:"cloud2_color"`

	// Star tiers
	ScaleStar2 float64 `yaml:"scale_star2"`
	ScaleStar3 float64 `yaml:"scale_star3"`

	// Variant is VariantRefined (or empty) or VariantLegacy.
	Variant string `yaml:"variant"`

	// CorrectedAveraging densifies with p3.Y and p3.Weight instead of p3.X.
	CorrectedAveraging bool `yaml:"corrected_averaging"`
}

// DefaultConfig returns Config with the stock sky look.
func DefaultConfig() Config {
	return Config{
		BackgroundColor:    FromUint24(0x000023),
		GlobalOpacity:      0.5,
		InitialPointsQty:   50,
		GeneratedPointsQty: 140,
		Margin:             0,
		CloudRadius:        100,
		CloudGradient:      0.5,
		StarRadius:         3,
		StarHaloRadius:     8,
		StarAlpha:          0.9,
		HaloAlpha:          0.02,
		StarHardness:       2.0 / 3.0,
		StarGradient:       0.5,
		StarColors: []RGBA{
			FromUint24(0xfcf9a7),
			FromUint24(0xffffff),
			FromUint24(0x9ef7fc),
		},
		Cloud1Color: FromUint24(0x65ddf7),
		Cloud2Color: FromUint24(0x830e81),
		ScaleStar2:  0.8,
		ScaleStar3:  0.4,
		Variant:     VariantRefined,
	}
}

// LoadConfig loads a config from a YAML file on top of DefaultConfig.
// If the file doesn't exist, returns defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// Normalize returns a copy with derived adjustments applied: an empty
// Variant becomes VariantRefined, a zero StarHardness becomes a small epsilon
// and StarHaloRadius is raised to at least StarRadius.
func (c Config) Normalize() Config {
	if c.Variant == "" {
		c.Variant = VariantRefined
	}
	if c.StarHardness == 0 {
		c.StarHardness = hardnessEpsilon
	}
	if c.StarHaloRadius < float64(c.StarRadius) {
		c.StarHaloRadius = float64(c.StarRadius)
	}
	c.StarColors = append([]RGBA(nil), c.StarColors...)
	return c
}

// Validate checks c for an output of width × height. Every problem is
// reported; each one is a *ConfigError.
func (c Config) Validate(width, height int) error {
	var errs []error
	fail := func(field string, value any, reason string) {
		errs = append(errs, &ConfigError{Field: field, Value: value, Reason: reason})
	}

	if width <= 0 {
		fail("width", width, "must be positive")
	}
	if height <= 0 {
		fail("height", height, "must be positive")
	}
	if !(c.GlobalOpacity >= field.MinWeight && c.GlobalOpacity <= 1) {
		fail("global_opacity", c.GlobalOpacity, fmt.Sprintf("must be in [%g, 1]", field.MinWeight))
	}
	if c.InitialPointsQty < 0 {
		fail("initial_points_qty", c.InitialPointsQty, "must not be negative")
	}
	if c.GeneratedPointsQty < 0 {
		fail("generated_points_qty", c.GeneratedPointsQty, "must not be negative")
	}
	if c.GeneratedPointsQty > 0 && c.InitialPointsQty == 0 && c.Variant == VariantLegacy {
		fail("initial_points_qty", c.InitialPointsQty, "legacy variant needs seed points to densify")
	}
	if !(c.Margin >= 0) || math.IsInf(c.Margin, 1) {
		fail("margin", c.Margin, "must be a non-negative finite number")
	} else if width > 0 && height > 0 && (2*c.Margin > float64(width) || 2*c.Margin > float64(height)) {
		fail("margin", c.Margin, fmt.Sprintf("leaves no sampling area in %dx%d", width, height))
	}
	if c.CloudRadius < 1 {
		fail("cloud_radius", c.CloudRadius, "must be at least 1")
	}
	if c.StarRadius < 1 {
		fail("star_radius", c.StarRadius, "must be at least 1")
	}
	if !(c.StarHaloRadius >= 0) || math.IsInf(c.StarHaloRadius, 1) {
		fail("star_halo_radius", c.StarHaloRadius, "must be a non-negative finite number")
	}
	checkUnit := func(name string, v float64, allowZero bool) {
		if !(v >= 0 && v <= 1) || (!allowZero && v == 0) {
			interval := "(0, 1]"
			if allowZero {
				interval = "[0, 1]"
			}
			fail(name, v, "must be in "+interval)
		}
	}
	checkUnit("cloud_gradient", c.CloudGradient, false)
	checkUnit("star_gradient", c.StarGradient, false)
	checkUnit("star_alpha", c.StarAlpha, false)
	checkUnit("halo_alpha", c.HaloAlpha, true)
	checkUnit("star_hardness", c.StarHardness, true)
	checkUnit("scale_star2", c.ScaleStar2, false)
	checkUnit("scale_star3", c.ScaleStar3, false)
	if len(c.StarColors) == 0 {
		fail("star_colors", "[]", "needs at least one color")
	}
	if _, err := brush.StrategyByName(c.Variant); err != nil {
		fail("variant", fmt.Sprintf("%q", c.Variant), "must be refined or legacy")
	}

	return errors.Join(errs...)
}

// legacy reports whether the legacy variant is selected.
func (c Config) legacy() bool {
	return c.Variant == VariantLegacy
}

// averaging returns the densification formula.
func (c Config) averaging() field.Averaging {
	if c.CorrectedAveraging {
		return field.AveragingCorrected
	}
	return field.AveragingCompat
}

// setParams maps the config onto brush synthesis parameters.
func (c Config) setParams() brush.SetParams {
	return brush.SetParams{
		CloudRadius:    c.CloudRadius,
		CloudGradient:  c.CloudGradient,
		StarRadius:     c.StarRadius,
		StarGradient:   c.StarGradient,
		StarAlpha:      c.StarAlpha,
		StarHardness:   c.StarHardness,
		StarScales:     [brush.StarTiers - 1]float64{c.ScaleStar2, c.ScaleStar3},
		Opacity:        c.GlobalOpacity,
		StarHaloRadius: c.StarHaloRadius,
		HaloAlpha:      c.HaloAlpha,
	}
}
