// Package shade derives the two outline colors used to draw a beveled box.
//
// A bevel is a filled box whose top and left edges use one shade of the fill
// color and whose bottom and right edges use another, giving a raised
// (outset) or sunken (inset) look.
package shade

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/doublescale/internal/renderer/core"
)

// Default lightness multipliers for the bevel edges.
const (
	DefaultLightFactor = 1.5
	DefaultDarkFactor  = 0.5
)

// BoxColors holds a fill color and the outline shades derived from it.
type BoxColors struct {
	// Fill is the interior color.
	Fill core.Color
	// Top colors the top and left edges.
	Top core.Color
	// Bottom colors the bottom and right edges.
	Bottom core.Color
}

// Bevel computes the outline shades for base. An inset bevel has a dark top
// edge and a light bottom edge; outset swaps them.
func Bevel(base core.Color, lightFactor, darkFactor float64, outset bool) BoxColors {
	bc := BoxColors{
		Fill:   base,
		Top:    Adjust(base, darkFactor),
		Bottom: Adjust(base, lightFactor),
	}
	if outset {
		bc.Top, bc.Bottom = bc.Bottom, bc.Top
	}
	return bc
}

// Adjust multiplies the HSL lightness of c by factor, clamping to [0, 1].
// Indexed and default colors have no RGB value and are returned unchanged.
func Adjust(c core.Color, factor float64) core.Color {
	if c.Indexed || c.Default {
		return c
	}

	cf := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	h, s, l := cf.Hsl()
	l = math.Max(0, math.Min(1, l*factor))
	out := colorful.Hsl(h, s, l)

	return core.ColorFromRGB(channel(out.R), channel(out.G), channel(out.B))
}

// channel truncates a [0, 1] channel to a byte.
func channel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, v*255)))
}
