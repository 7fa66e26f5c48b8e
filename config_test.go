package skygen

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Normalize().Validate(800, 600))

	assert.Equal(t, uint32(0x000023), cfg.BackgroundColor.Uint24())
	assert.Equal(t, 0.5, cfg.GlobalOpacity)
	assert.Equal(t, 50, cfg.InitialPointsQty)
	assert.Equal(t, 140, cfg.GeneratedPointsQty)
	assert.Equal(t, 100, cfg.CloudRadius)
	assert.Equal(t, 3, cfg.StarRadius)
	assert.InDelta(t, 2.0/3.0, cfg.StarHardness, 1e-12)
	require.Len(t, cfg.StarColors, 3)
	assert.Equal(t, uint32(0xfcf9a7), cfg.StarColors[0].Uint24())
	assert.Equal(t, uint32(0x65ddf7), cfg.Cloud1Color.Uint24())
	assert.Equal(t, uint32(0x830e81), cfg.Cloud2Color.Uint24())
	assert.Equal(t, VariantRefined, cfg.Variant)
	assert.False(t, cfg.CorrectedAveraging)
}

func TestNormalize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Variant = ""
	cfg.StarHardness = 0
	cfg.StarRadius = 12
	cfg.StarHaloRadius = 4

	n := cfg.Normalize()
	assert.Equal(t, VariantRefined, n.Variant)
	assert.Equal(t, hardnessEpsilon, n.StarHardness)
	assert.Equal(t, 12.0, n.StarHaloRadius)

	n.StarColors[0] = Black
	assert.NotEqual(t, Black, cfg.StarColors[0], "Normalize must not alias the palette")
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		field  string
		w, h   int
		modify func(*Config)
	}{
		{"zero width", "width", 0, 600, func(*Config) {}},
		{"negative height", "height", 800, -1, func(*Config) {}},
		{"opacity above one", "global_opacity", 800, 600, func(c *Config) { c.GlobalOpacity = 1.5 }},
		{"opacity below weight floor", "global_opacity", 800, 600, func(c *Config) { c.GlobalOpacity = 0.01 }},
		{"negative initial points", "initial_points_qty", 800, 600, func(c *Config) { c.InitialPointsQty = -1 }},
		{"negative generated points", "generated_points_qty", 800, 600, func(c *Config) { c.GeneratedPointsQty = -3 }},
		{"negative margin", "margin", 800, 600, func(c *Config) { c.Margin = -2 }},
		{"margin swallows area", "margin", 800, 600, func(c *Config) { c.Margin = 301 }},
		{"zero cloud radius", "cloud_radius", 800, 600, func(c *Config) { c.CloudRadius = 0 }},
		{"negative star radius", "star_radius", 800, 600, func(c *Config) { c.StarRadius = -4 }},
		{"zero cloud gradient", "cloud_gradient", 800, 600, func(c *Config) { c.CloudGradient = 0 }},
		{"star gradient above one", "star_gradient", 800, 600, func(c *Config) { c.StarGradient = 2 }},
		{"zero star alpha", "star_alpha", 800, 600, func(c *Config) { c.StarAlpha = 0 }},
		{"hardness above one", "star_hardness", 800, 600, func(c *Config) { c.StarHardness = 1.2 }},
		{"zero tier scale", "scale_star3", 800, 600, func(c *Config) { c.ScaleStar3 = 0 }},
		{"empty palette", "star_colors", 800, 600, func(c *Config) { c.StarColors = nil }},
		{"unknown variant", "variant", 800, 600, func(c *Config) { c.Variant = "baroque" }},
		{"NaN opacity", "global_opacity", 800, 600, func(c *Config) { c.GlobalOpacity = math.NaN() }},
		{"NaN margin", "margin", 800, 600, func(c *Config) { c.Margin = math.NaN() }},
		{"infinite margin", "margin", 800, 600, func(c *Config) { c.Margin = math.Inf(1) }},
		{"NaN halo radius", "star_halo_radius", 800, 600, func(c *Config) { c.StarHaloRadius = math.NaN() }},
		{"infinite halo radius", "star_halo_radius", 800, 600, func(c *Config) { c.StarHaloRadius = math.Inf(1) }},
		{"NaN cloud gradient", "cloud_gradient", 800, 600, func(c *Config) { c.CloudGradient = math.NaN() }},
		{"NaN star alpha", "star_alpha", 800, 600, func(c *Config) { c.StarAlpha = math.NaN() }},
		{"NaN halo alpha", "halo_alpha", 800, 600, func(c *Config) { c.HaloAlpha = math.NaN() }},
		{"NaN hardness", "star_hardness", 800, 600, func(c *Config) { c.StarHardness = math.NaN() }},
		{"NaN tier scale", "scale_star2", 800, 600, func(c *Config) { c.ScaleStar2 = math.NaN() }},
		{"legacy with nothing to densify", "initial_points_qty", 800, 600, func(c *Config) {
			c.Variant = VariantLegacy
			c.InitialPointsQty = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)

			err := cfg.Normalize().Validate(tt.w, tt.h)
			require.ErrorIs(t, err, ErrInvalidConfig)

			var ce *ConfigError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestNaNFromYAMLRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sky.yaml")
	require.NoError(t, os.WriteFile(path, []byte("global_opacity: .nan\ngenerated_points_qty: 5\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.True(t, math.IsNaN(cfg.GlobalOpacity))

	_, err = New(80, 60, cfg, WithTextureCache(NewTextureCache(0)))
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "global_opacity")
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CloudRadius = 0
	cfg.StarAlpha = 3

	err := cfg.Validate(800, 600)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cloud_radius")
	assert.Contains(t, err.Error(), "star_alpha")
}

func TestValidateAcceptsEdges(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialPointsQty = 0 // the refined anchor still seeds each layer
	cfg.GeneratedPointsQty = 0
	cfg.StarHardness = 0
	cfg.HaloAlpha = 0
	cfg.Margin = 300
	assert.NoError(t, cfg.Normalize().Validate(800, 600))
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sky.yaml")
	src := `
background_color: 0x101010
global_opacity: 0.4
generated_points_qty: 0
cloud1_color: "#112233"
star_colors: [0xffffff]
variant: legacy
corrected_averaging: true
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, uint32(0x101010), cfg.BackgroundColor.Uint24())
	assert.Equal(t, 0.4, cfg.GlobalOpacity)
	assert.Equal(t, 0, cfg.GeneratedPointsQty, "explicit zero must survive loading")
	assert.Equal(t, uint32(0x112233), cfg.Cloud1Color.Uint24())
	assert.Len(t, cfg.StarColors, 1)
	assert.Equal(t, VariantLegacy, cfg.Variant)
	assert.True(t, cfg.CorrectedAveraging)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, 50, cfg.InitialPointsQty)
	assert.Equal(t, uint32(0x830e81), cfg.Cloud2Color.Uint24())
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cloud1_color: [oops\n"), 0o600))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}
