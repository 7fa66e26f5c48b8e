// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"
)

// MaxDimension is the largest width or height an ImageSurface accepts.
const MaxDimension = 1 << 14

// Errors returned by NewImageSurface.
var (
	// ErrInvalidSize is returned when width or height is non-positive.
	ErrInvalidSize = errors.New("surface: invalid dimensions")

	// ErrTooLarge is returned when width or height exceeds MaxDimension.
	ErrTooLarge = errors.New("surface: dimensions exceed limit")
)

// circleKappa is the control point distance for a cubic Bézier quarter circle.
const circleKappa = 0.5522847498307936

// ImageSurface is a CPU-based surface that renders to an *image.RGBA, or to
// an *image.RGBA64 when created with NewDeepImageSurface.
//
// Fills use the golang.org/x/image/vector rasterizer for anti-aliased
// coverage; image draws use golang.org/x/image/draw bilinear sampling.
// This is the default surface implementation.
//
// Deep surfaces keep 16 bits per channel, so hundreds of nearly transparent
// fills accumulate without being truncated away. Brush synthesis uses them.
type ImageSurface struct {
	width  int
	height int
	img    draw.Image

	// exactly one of rgba and rgba64 is set
	rgba   *image.RGBA
	rgba64 *image.RGBA64

	// rast is reused across FillCircle calls
	rast *vector.Rasterizer

	// pool provides scratch buffers for tinted draws
	pool *Pool

	// closed tracks if Close has been called
	closed bool
}

// NewImageSurface creates a new 8-bit CPU-based surface with the given
// dimensions.
func NewImageSurface(width, height int) (*ImageSurface, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	return &ImageSurface{
		width:  width,
		height: height,
		img:    img,
		rgba:   img,
		rast:   vector.NewRasterizer(0, 0),
		pool:   defaultPool,
	}, nil
}

// NewDeepImageSurface creates a new 16-bit CPU-based surface with the given
// dimensions.
func NewDeepImageSurface(width, height int) (*ImageSurface, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}

	img := image.NewRGBA64(image.Rect(0, 0, width, height))
	return &ImageSurface{
		width:  width,
		height: height,
		img:    img,
		rgba64: img,
		rast:   vector.NewRasterizer(0, 0),
		pool:   defaultPool,
	}, nil
}

func checkSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidSize
	}
	if width > MaxDimension || height > MaxDimension {
		return ErrTooLarge
	}
	return nil
}

// NewImage is a Factory that allocates an 8-bit ImageSurface.
func NewImage(width, height int) (Surface, error) {
	s, err := NewImageSurface(width, height)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// NewDeepImage is a Factory that allocates a 16-bit ImageSurface.
func NewDeepImage(width, height int) (Surface, error) {
	s, err := NewDeepImageSurface(width, height)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Width returns the surface width.
func (s *ImageSurface) Width() int {
	return s.width
}

// Height returns the surface height.
func (s *ImageSurface) Height() int {
	return s.height
}

// Clear fills the entire surface with the given color.
func (s *ImageSurface) Clear(c color.Color) {
	if s.closed {
		return
	}
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// FillCircle composites an anti-aliased circle of color c.
func (s *ImageSurface) FillCircle(cx, cy, r float64, c color.Color) {
	if s.closed || r <= 0 || c == nil {
		return
	}

	bounds := image.Rect(
		int(math.Floor(cx-r)), int(math.Floor(cy-r)),
		int(math.Ceil(cx+r)), int(math.Ceil(cy+r)),
	).Intersect(s.img.Bounds())
	if bounds.Empty() {
		return
	}

	// The rasterizer works in coordinates local to bounds.
	lx := float32(cx - float64(bounds.Min.X))
	ly := float32(cy - float64(bounds.Min.Y))
	rr := float32(r)
	k := float32(circleKappa) * rr

	s.rast.Reset(bounds.Dx(), bounds.Dy())
	s.rast.DrawOp = draw.Over
	s.rast.MoveTo(lx+rr, ly)
	s.rast.CubeTo(lx+rr, ly+k, lx+k, ly+rr, lx, ly+rr)
	s.rast.CubeTo(lx-k, ly+rr, lx-rr, ly+k, lx-rr, ly)
	s.rast.CubeTo(lx-rr, ly-k, lx-k, ly-rr, lx, ly-rr)
	s.rast.CubeTo(lx+k, ly-rr, lx+rr, ly-k, lx+rr, ly)
	s.rast.ClosePath()
	s.rast.Draw(s.img, bounds, image.NewUniform(c), image.Point{})
}

// DrawImage draws an image at the specified position.
func (s *ImageSurface) DrawImage(img image.Image, at Point, opts *DrawImageOptions) {
	if s.closed || img == nil {
		return
	}

	o := DefaultDrawImageOptions()
	if opts != nil {
		o = *opts
		if o.Scale == 0 {
			o.Scale = 1
		}
	}
	alpha := math.Max(0, math.Min(1, o.Alpha))
	if alpha == 0 || o.Scale < 0 {
		return
	}

	src := img
	sr := img.Bounds()
	if sr.Empty() {
		return
	}
	if o.Tint != nil || alpha < 1 {
		buf := s.pool.Get(sr.Dx(), sr.Dy())
		defer s.pool.Put(buf)
		tintInto(buf, img, o.Tint, alpha)
		src = buf
		sr = buf.Bounds()
	}

	w := float64(sr.Dx()) * o.Scale
	h := float64(sr.Dy()) * o.Scale
	tx := at.X - o.Anchor.X*w - float64(sr.Min.X)*o.Scale
	ty := at.Y - o.Anchor.Y*h - float64(sr.Min.Y)*o.Scale

	s2d := f64.Aff3{
		o.Scale, 0, tx,
		0, o.Scale, ty,
	}
	xdraw.ApproxBiLinear.Transform(s.img, s2d, src, sr, xdraw.Over, nil)
}

// Snapshot returns a copy of the current surface contents.
// Deep surfaces are reduced to 8 bits per channel.
func (s *ImageSurface) Snapshot() *image.RGBA {
	if s.closed {
		return nil
	}

	result := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	if s.rgba != nil {
		copy(result.Pix, s.rgba.Pix)
	} else {
		draw.Draw(result, result.Bounds(), s.img, image.Point{}, draw.Src)
	}
	return result
}

// Snapshot64 returns a 16-bit copy of the current surface contents.
func (s *ImageSurface) Snapshot64() *image.RGBA64 {
	if s.closed {
		return nil
	}

	result := image.NewRGBA64(image.Rect(0, 0, s.width, s.height))
	if s.rgba64 != nil {
		copy(result.Pix, s.rgba64.Pix)
	} else {
		draw.Draw(result, result.Bounds(), s.img, image.Point{}, draw.Src)
	}
	return result
}

// Deep reports whether the surface stores 16 bits per channel.
func (s *ImageSurface) Deep() bool {
	return s.rgba64 != nil
}

// Close releases resources associated with the surface.
func (s *ImageSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.img = nil
	s.rgba = nil
	s.rgba64 = nil
	s.rast = nil
	return nil
}

// Image returns the underlying *image.RGBA or *image.RGBA64.
// This is a direct reference, not a copy.
func (s *ImageSurface) Image() draw.Image {
	return s.img
}

// tintInto writes src into dst (same size, origin 0,0) with color channels
// multiplied by tint and all channels multiplied by alpha. Pixels stay
// premultiplied; results are rounded to nearest.
func tintInto(dst *image.RGBA, src image.Image, tint color.Color, alpha float64) {
	tr, tg, tb := uint64(0xff), uint64(0xff), uint64(0xff)
	if tint != nil {
		n := color.NRGBAModel.Convert(tint).(color.NRGBA)
		tr, tg, tb = uint64(n.R), uint64(n.G), uint64(n.B)
	}
	a16 := uint64(alpha*0xffff + 0.5)

	// Channel c (16-bit) times tint t (8-bit) times a16 gives an 8-bit
	// result after dividing by 0xffff*0xffff.
	const div = 0xffff * 0xffff
	scale := func(c, t uint64) uint8 {
		return uint8((c*t*a16 + div/2) / div)
	}

	switch src := src.(type) {
	case *image.RGBA:
		b := src.Bounds()
		for y := 0; y < b.Dy(); y++ {
			si := src.PixOffset(b.Min.X, b.Min.Y+y)
			di := dst.PixOffset(0, y)
			for x := 0; x < b.Dx(); x++ {
				sp := src.Pix[si : si+4 : si+4]
				dp := dst.Pix[di : di+4 : di+4]
				dp[0] = scale(uint64(sp[0])*0x101, tr)
				dp[1] = scale(uint64(sp[1])*0x101, tg)
				dp[2] = scale(uint64(sp[2])*0x101, tb)
				dp[3] = scale(uint64(sp[3])*0x101, 0xff)
				si += 4
				di += 4
			}
		}

	case *image.RGBA64:
		b := src.Bounds()
		for y := 0; y < b.Dy(); y++ {
			si := src.PixOffset(b.Min.X, b.Min.Y+y)
			di := dst.PixOffset(0, y)
			for x := 0; x < b.Dx(); x++ {
				sp := src.Pix[si : si+8 : si+8]
				dp := dst.Pix[di : di+4 : di+4]
				dp[0] = scale(uint64(sp[0])<<8|uint64(sp[1]), tr)
				dp[1] = scale(uint64(sp[2])<<8|uint64(sp[3]), tg)
				dp[2] = scale(uint64(sp[4])<<8|uint64(sp[5]), tb)
				dp[3] = scale(uint64(sp[6])<<8|uint64(sp[7]), 0xff)
				si += 8
				di += 4
			}
		}

	default:
		b := src.Bounds()
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				r, g, bl, a := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
				dst.SetRGBA(x, y, color.RGBA{
					R: scale(uint64(r), tr),
					G: scale(uint64(g), tg),
					B: scale(uint64(bl), tb),
					A: scale(uint64(a), 0xff),
				})
			}
		}
	}
}
