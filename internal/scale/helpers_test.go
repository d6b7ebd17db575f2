package scale

import (
	"math"

	"github.com/dshills/doublescale/internal/renderer/core"
	"github.com/dshills/doublescale/internal/renderer/shade"
)

// drawCall records one Renderer call.
type drawCall struct {
	Kind   string
	Tag    Tag
	Rect   Rect
	Colors shade.BoxColors
	X, Y   float64
	Text   string
}

// recorder is a Renderer that keeps the live display list in memory.
type recorder struct {
	items  []drawCall
	clears map[Tag]int
}

func newRecorder() *recorder {
	return &recorder{clears: make(map[Tag]int)}
}

func (r *recorder) DrawBox(rect Rect, colors shade.BoxColors, tag Tag) {
	r.items = append(r.items, drawCall{Kind: "box", Tag: tag, Rect: rect, Colors: colors})
}

func (r *recorder) DrawText(x, y float64, text string, tag Tag, _ Font, _ core.Color) {
	r.items = append(r.items, drawCall{Kind: "text", Tag: tag, X: x, Y: y, Text: text})
}

func (r *recorder) ClearByTag(tag Tag) {
	r.clears[tag]++
	kept := r.items[:0]
	for _, it := range r.items {
		if it.Tag != tag {
			kept = append(kept, it)
		}
	}
	r.items = kept
}

func (r *recorder) byTag(tag Tag, kind string) []drawCall {
	var out []drawCall
	for _, it := range r.items {
		if it.Tag == tag && it.Kind == kind {
			out = append(out, it)
		}
	}
	return out
}

func (r *recorder) labels() []string {
	var out []string
	for _, it := range r.byTag(TagCursor, "text") {
		out = append(out, it.Text)
	}
	return out
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
