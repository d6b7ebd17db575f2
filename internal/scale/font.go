package scale

import "github.com/rivo/uniseg"

// Font describes the metrics used to lay out cursor labels.
// All measurements are in widget units.
type Font struct {
	// Family is informational; renderers may ignore it.
	Family string
	// CharWidth is the advance of a single-width character.
	CharWidth float64
	// LineHeight is the distance between baselines.
	LineHeight float64
	// Ascent is the height above the baseline.
	Ascent float64
}

// DefaultFont returns metrics close to a 10pt proportional UI font.
func DefaultFont() Font {
	return Font{
		CharWidth:  7,
		LineHeight: 16,
		Ascent:     12,
	}
}

// Measure returns the width of text in widget units.
func (f Font) Measure(text string) float64 {
	return float64(uniseg.StringWidth(text)) * f.CharWidth
}

// IsZero reports whether no metrics were set.
func (f Font) IsZero() bool {
	return f.CharWidth == 0 && f.LineHeight == 0 && f.Ascent == 0
}
