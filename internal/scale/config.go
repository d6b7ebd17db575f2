package scale

import (
	"math"

	"github.com/dshills/doublescale/internal/renderer/core"
	"github.com/dshills/doublescale/internal/renderer/shade"
)

// Config holds the construction parameters of a Widget.
//
// From, To, Length, Thickness and CursorWidth drive the geometry and the
// drag behavior. Decimals controls rounding. Everything else is cosmetic.
type Config struct {
	// From is the lower bound of the domain.
	From float64
	// To is the upper bound of the domain.
	To float64
	// Length is the track length in widget units.
	Length float64
	// Thickness is the track height in widget units.
	Thickness float64
	// CursorWidth is the width of each cursor box.
	CursorWidth float64
	// Decimals is the number of fractional digits kept when dragging and
	// shown in labels. Negative values are treated as their absolute value.
	// At most MaxDecimals.
	Decimals int

	BgColor     core.Color
	CursorColor core.Color
	TextColor   core.Color

	// LightFactor and DarkFactor scale the lightness of the bevel edges.
	// Zero selects the defaults.
	LightFactor float64
	DarkFactor  float64

	// Font gives the label metrics. The zero Font selects DefaultFont.
	Font Font
}

// DefaultConfig returns the configuration of a plain 0..100 scale.
func DefaultConfig() Config {
	return Config{
		From:        0,
		To:          100,
		Length:      100,
		Thickness:   15,
		CursorWidth: 10,
		Decimals:    0,
		BgColor:     core.MustParseColor("#bbb"),
		CursorColor: core.MustParseColor("#eee"),
		TextColor:   core.ColorBlack,
		LightFactor: shade.DefaultLightFactor,
		DarkFactor:  shade.DefaultDarkFactor,
		Font:        DefaultFont(),
	}
}

// Normalized returns a copy with sign and zero-value defaults resolved.
func (c Config) Normalized() Config {
	if c.Decimals < 0 {
		c.Decimals = -c.Decimals
	}
	if c.LightFactor == 0 {
		c.LightFactor = shade.DefaultLightFactor
	}
	if c.DarkFactor == 0 {
		c.DarkFactor = shade.DefaultDarkFactor
	}
	if c.Font.IsZero() {
		c.Font = DefaultFont()
	}
	return c
}

// Validate checks the parameters that the geometry depends on.
// The returned error, if any, is a *ConfigurationError.
func (c Config) Validate() error {
	switch {
	case !finite(c.From):
		return configErr("from", c.From, "must be a finite number")
	case !finite(c.To):
		return configErr("to", c.To, "must be a finite number")
	case c.To == c.From:
		return configErr("to", c.To, "domain is empty (to equals from)")
	case c.To < c.From:
		return configErr("to", c.To, "must be greater than from")
	case math.IsInf(c.To-c.From, 0):
		return configErr("to", c.To, "domain span overflows")
	case !finite(c.Length) || c.Length <= 0:
		return configErr("length", c.Length, "must be positive")
	case !finite(c.Length/(c.To-c.From)) || c.Length/(c.To-c.From) <= 0:
		return configErr("length", c.Length, "too small for the domain")
	case !finite(c.Thickness) || c.Thickness <= 0:
		return configErr("thickness", c.Thickness, "must be positive")
	case !finite(c.CursorWidth) || c.CursorWidth < 0:
		return configErr("cursor_width", c.CursorWidth, "must not be negative")
	case c.Decimals > MaxDecimals || c.Decimals < -MaxDecimals:
		return configErr("decimals", c.Decimals, "exceeds float64 precision")
	case c.LightFactor < 0:
		return configErr("light_factor", c.LightFactor, "must not be negative")
	case c.DarkFactor < 0:
		return configErr("dark_factor", c.DarkFactor, "must not be negative")
	case c.Font.LineHeight < 0 || c.Font.CharWidth < 0 || c.Font.Ascent < 0:
		return configErr("font", c.Font, "metrics must not be negative")
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
