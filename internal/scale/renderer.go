package scale

import (
	"github.com/dshills/doublescale/internal/renderer/core"
	"github.com/dshills/doublescale/internal/renderer/shade"
)

// Tag groups drawn items so they can be erased together.
type Tag string

const (
	// TagBackground marks the static track, drawn once.
	TagBackground Tag = "background"
	// TagCursor marks cursor boxes and labels, redrawn on every change.
	TagCursor Tag = "cursor"
)

// Renderer is the drawing surface a Widget paints on.
type Renderer interface {
	// DrawBox draws a filled box with a two-tone outline: colors.Top on the
	// top and left edges, colors.Bottom on the bottom and right edges.
	DrawBox(r Rect, colors shade.BoxColors, tag Tag)

	// DrawText draws text centered on (x, y).
	DrawText(x, y float64, text string, tag Tag, font Font, color core.Color)

	// ClearByTag removes everything previously drawn under tag.
	ClearByTag(tag Tag)
}
