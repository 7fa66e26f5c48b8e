// Package preview renders images as ANSI half-block text for terminals.
//
// Each character cell shows two vertically stacked pixels: the upper one as
// the foreground of '▀' and the lower one as the background.
package preview

import (
	"image"
	"image/color"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
	xdraw "golang.org/x/image/draw"
)

const halfBlock = "▀"

// Renderer converts images to styled half-block rows.
type Renderer struct {
	// Columns is the output width in cells.
	Columns int

	style *lipgloss.Renderer
}

// New returns a Renderer writing styles for out's color profile.
func New(out io.Writer, columns int) *Renderer {
	return &Renderer{Columns: columns, style: lipgloss.NewRenderer(out)}
}

// NewWithProfile returns a Renderer with a fixed color profile.
func NewWithProfile(profile termenv.Profile, columns int) *Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)
	return &Renderer{Columns: columns, style: r}
}

// Size returns the pixel grid img is resampled to: Columns wide and an even
// number of rows that keeps the aspect ratio.
func (r *Renderer) Size(img image.Image) (w, h int) {
	b := img.Bounds()
	if b.Empty() || r.Columns <= 0 {
		return 0, 0
	}
	w = r.Columns
	h = (w*b.Dy() + b.Dx() - 1) / b.Dx()
	if h%2 == 1 {
		h++
	}
	return w, max(h, 2)
}

// Render returns img as newline-separated rows of half-block cells.
// Transparent pixels render as black.
func (r *Renderer) Render(img image.Image) string {
	w, h := r.Size(img)
	if w == 0 {
		return ""
	}

	small := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(small, small.Bounds(), image.NewUniform(color.Black), image.Point{}, xdraw.Src)
	xdraw.ApproxBiLinear.Scale(small, small.Bounds(), img, img.Bounds(), xdraw.Over, nil)

	styles := make(map[[2]string]lipgloss.Style)
	var sb strings.Builder
	for y := 0; y < h; y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < w; x++ {
			key := [2]string{hexAt(small, x, y), hexAt(small, x, y+1)}
			st, ok := styles[key]
			if !ok {
				st = r.style.NewStyle().
					Foreground(lipgloss.Color(key[0])).
					Background(lipgloss.Color(key[1]))
				styles[key] = st
			}
			sb.WriteString(st.Render(halfBlock))
		}
	}
	return sb.String()
}

func hexAt(img *image.RGBA, x, y int) string {
	c, _ := colorful.MakeColor(img.RGBAAt(x, y))
	return c.Hex()
}
