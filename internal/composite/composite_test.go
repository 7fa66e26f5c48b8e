package composite

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/skygen/internal/brush"
	"github.com/gogpu/skygen/internal/field"
	"github.com/gogpu/skygen/internal/random"
	"github.com/gogpu/skygen/surface"
)

type mapPublisher map[string]*image.RGBA

func (m mapPublisher) Publish(key string, img *image.RGBA) { m[key] = img }

type drawCall struct {
	img  image.Image
	at   surface.Point
	opts surface.DrawImageOptions
}

// recordingSurface records DrawImage calls on top of a real ImageSurface.
type recordingSurface struct {
	*surface.ImageSurface
	calls []drawCall
}

func (r *recordingSurface) DrawImage(img image.Image, at surface.Point, opts *surface.DrawImageOptions) {
	r.calls = append(r.calls, drawCall{img: img, at: at, opts: *opts})
	r.ImageSurface.DrawImage(img, at, opts)
}

func recordingFactory(rec **recordingSurface) surface.Factory {
	return func(w, h int) (surface.Surface, error) {
		s, err := surface.NewImageSurface(w, h)
		if err != nil {
			return nil, err
		}
		*rec = &recordingSurface{ImageSurface: s}
		return *rec, nil
	}
}

func testSet(t *testing.T) brush.Set {
	t.Helper()
	set, err := brush.Synthesizer{}.MakeSet(brush.SetParams{
		CloudRadius:   12,
		CloudGradient: 0.05,
		StarRadius:    3,
		StarGradient:  0.5,
		StarAlpha:     0.9,
		StarHardness:  2.0 / 3,
		StarScales:    [2]float64{0.8, 0.4},
		Opacity:       0.5,
	})
	require.NoError(t, err)
	return set
}

func testParams() Params {
	return Params{
		Width:      64,
		Height:     48,
		Cloud1:     color.RGBA{0x65, 0xdd, 0xf7, 0xff},
		Cloud2:     color.RGBA{0x83, 0x0e, 0x81, 0xff},
		StarColors: []color.Color{color.RGBA{0xfc, 0xf9, 0xa7, 0xff}, color.White, color.RGBA{0x9e, 0xf7, 0xfc, 0xff}},
		StarAlpha:  0.9,
		OpacityCap: 0.5,
		Key:        "rt_SkyGenerator",
	}
}

func TestRenderPublishes(t *testing.T) {
	pub := mapPublisher{}
	c := Compositor{Publisher: pub}

	a := field.Layer{{X: 20, Y: 20, Weight: 0.5}}
	b := field.Layer{{X: 40, Y: 30, Weight: 0.5}}
	img, err := c.Render(random.New(1), a, b, testSet(t), testParams())
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 64, 48), img.Bounds())
	assert.Same(t, img, pub["rt_SkyGenerator"])
	assert.NotZero(t, img.RGBAAt(20, 20).A, "cloud A should be visible at its point")
	assert.NotZero(t, img.RGBAAt(40, 30).A, "cloud B and star should be visible at their point")
	assert.Zero(t, img.RGBAAt(63, 0).A)
}

func TestRenderDrawOrderAndAlpha(t *testing.T) {
	var rec *recordingSurface
	c := Compositor{NewSurface: recordingFactory(&rec)}
	set := testSet(t)

	a := field.Layer{{X: 10, Y: 10, Weight: 0.3}, {X: 12, Y: 14, Weight: 0.05}}
	b := field.Layer{{X: 30, Y: 20, Weight: 0.45}, {X: 5, Y: 40, Weight: 0.5}}
	_, err := c.Render(random.New(3), a, b, set, testParams())
	require.NoError(t, err)

	require.Len(t, rec.calls, 3*len(a))
	for i := range a {
		cloudA, cloudB, star := rec.calls[3*i], rec.calls[3*i+1], rec.calls[3*i+2]

		assert.Same(t, set.Cloud.Image(), cloudA.img)
		assert.Equal(t, surface.Pt(a[i].X, a[i].Y), cloudA.at)
		assert.InDelta(t, a[i].Weight/3, cloudA.opts.Alpha, 1e-12)
		assert.Equal(t, surface.Center, cloudA.opts.Anchor)
		assert.GreaterOrEqual(t, cloudA.opts.Scale, 0.6)
		assert.Less(t, cloudA.opts.Scale, 1.0)

		assert.Same(t, set.Cloud.Image(), cloudB.img)
		assert.Equal(t, surface.Pt(b[i].X, b[i].Y), cloudB.at)
		assert.InDelta(t, b[i].Weight/3, cloudB.opts.Alpha, 1e-12)
		assert.GreaterOrEqual(t, cloudB.opts.Scale, 0.6)
		assert.Less(t, cloudB.opts.Scale, 1.0)

		assert.Equal(t, surface.Pt(b[i].X, b[i].Y), star.at)
		assert.Equal(t, 1.0, star.opts.Scale)
		assert.InDelta(t, min(b[i].Weight*0.9/0.5, 1), star.opts.Alpha, 1e-12)
		assert.LessOrEqual(t, star.opts.Alpha, 1.0)
	}
}

func TestRenderSharedCloudScale(t *testing.T) {
	var rec *recordingSurface
	c := Compositor{NewSurface: recordingFactory(&rec)}

	a := make(field.Layer, 8)
	b := make(field.Layer, 8)
	for i := range a {
		a[i] = field.Point{X: float64(i * 5), Y: 10, Weight: 0.2}
		b[i] = field.Point{X: float64(i * 5), Y: 30, Weight: 0.2}
	}

	p := testParams()
	p.SharedCloudScale = true
	_, err := c.Render(random.New(5), a, b, testSet(t), p)
	require.NoError(t, err)

	for i := range a {
		assert.Equal(t, rec.calls[3*i].opts.Scale, rec.calls[3*i+1].opts.Scale)
	}
}

func TestRenderEmptyLayers(t *testing.T) {
	pub := mapPublisher{}
	img, err := Compositor{Publisher: pub}.Render(random.New(1), nil, nil, testSet(t), testParams())
	require.NoError(t, err)

	require.Contains(t, pub, "rt_SkyGenerator")
	for i := 3; i < len(img.Pix); i += 4 {
		require.Zero(t, img.Pix[i])
	}
}

func TestRenderLayerMismatch(t *testing.T) {
	pub := mapPublisher{}
	a := field.Layer{{X: 1, Y: 1, Weight: 0.1}}
	_, err := Compositor{Publisher: pub}.Render(random.New(1), a, nil, testSet(t), testParams())

	require.ErrorIs(t, err, ErrLayerMismatch)
	assert.Empty(t, pub)
}

func TestRenderAllocationFailure(t *testing.T) {
	pub := mapPublisher{"rt_SkyGenerator": image.NewRGBA(image.Rect(0, 0, 1, 1))}
	before := pub["rt_SkyGenerator"]
	errFull := errors.New("texture memory exhausted")

	c := Compositor{
		NewSurface: func(int, int) (surface.Surface, error) { return nil, errFull },
		Publisher:  pub,
	}
	_, err := c.Render(random.New(1), nil, nil, testSet(t), testParams())

	require.ErrorIs(t, err, errFull)
	var ae *surface.AllocationError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, 64, ae.Width)
	assert.Same(t, before, pub["rt_SkyGenerator"], "failed render must not replace the published texture")
}

func TestRenderNoStars(t *testing.T) {
	p := testParams()
	p.StarColors = nil
	_, err := Compositor{}.Render(random.New(1), nil, nil, testSet(t), p)
	require.ErrorIs(t, err, ErrNoStars)

	var ae *surface.AllocationError
	assert.False(t, errors.As(err, &ae))
}

func TestRenderNoCloud(t *testing.T) {
	set := testSet(t)
	set.Cloud = nil
	_, err := Compositor{}.Render(random.New(1), nil, nil, set, testParams())
	require.ErrorIs(t, err, ErrNoCloud)
}

func TestRenderUnkeyedSkipsPublish(t *testing.T) {
	pub := mapPublisher{}
	p := testParams()
	p.Key = ""
	_, err := Compositor{Publisher: pub}.Render(random.New(1), nil, nil, testSet(t), p)
	require.NoError(t, err)
	assert.Empty(t, pub)
}
