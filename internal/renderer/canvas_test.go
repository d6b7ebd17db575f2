package renderer

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/doublescale/internal/renderer/backend"
	"github.com/dshills/doublescale/internal/renderer/core"
	"github.com/dshills/doublescale/internal/renderer/shade"
	"github.com/dshills/doublescale/internal/scale"
)

func newTestCanvas(t *testing.T, w, h int) (*Canvas, *backend.NullBackend) {
	t.Helper()
	b := backend.NewNullBackend(w, h)
	if err := b.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return NewCanvas(b, DefaultOptions()), b
}

func runeAt(b *backend.NullBackend, col, row int) rune {
	return b.GetCell(col, row).Rune
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"default", DefaultOptions(), false},
		{"zero width", Options{CellWidth: 0, CellHeight: 4}, true},
		{"negative height", Options{CellWidth: 2, CellHeight: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewCanvasFallsBackToDefaults(t *testing.T) {
	c := NewCanvas(backend.NewNullBackend(1, 1), Options{})
	if diff := cmp.Diff(DefaultOptions(), c.Options()); diff != "" {
		t.Errorf("Options mismatch (-want +got):\n%s", diff)
	}
}

func TestCanvasGeometry(t *testing.T) {
	c, _ := newTestCanvas(t, 80, 24)
	c.SetOrigin(3, 2)
	c.SetSize(130, 43.8)

	want := core.ScreenRect{Top: 2, Left: 3, Bottom: 13, Right: 68}
	if diff := cmp.Diff(want, c.Bounds()); diff != "" {
		t.Errorf("Bounds mismatch (-want +got):\n%s", diff)
	}
	if !c.Contains(3, 2) || c.Contains(68, 2) || c.Contains(2, 5) {
		t.Error("Contains reports wrong membership")
	}

	x, y := c.ToLocal(3, 2)
	if x != 1 || y != 2 {
		t.Errorf("ToLocal(3, 2) = (%v, %v), want (1, 2)", x, y)
	}
	x, y = c.ToLocal(10, 5)
	if x != 15 || y != 14 {
		t.Errorf("ToLocal(10, 5) = (%v, %v), want (15, 14)", x, y)
	}
}

func TestCanvasClearByTag(t *testing.T) {
	c, _ := newTestCanvas(t, 10, 10)
	colors := shade.BoxColors{Fill: core.ColorWhite}
	c.DrawBox(scale.Rect{X2: 4, Y2: 4}, colors, scale.TagBackground)
	c.DrawBox(scale.Rect{X2: 2, Y2: 2}, colors, scale.TagCursor)
	c.DrawText(1, 1, "x", scale.TagCursor, scale.DefaultFont(), core.ColorBlack)

	if got := c.ItemCount(scale.TagCursor); got != 2 {
		t.Fatalf("ItemCount(cursor) = %d, want 2", got)
	}
	c.ClearByTag(scale.TagCursor)
	if got := c.ItemCount(scale.TagCursor); got != 0 {
		t.Errorf("ItemCount(cursor) after clear = %d, want 0", got)
	}
	if got := c.ItemCount(scale.TagBackground); got != 1 {
		t.Errorf("ItemCount(background) = %d, want 1", got)
	}

	c.Clear()
	if got := c.ItemCount(scale.TagBackground); got != 0 {
		t.Errorf("ItemCount(background) after Clear = %d, want 0", got)
	}
}

func TestCanvasDirtyTracking(t *testing.T) {
	c, _ := newTestCanvas(t, 10, 10)
	c.SetSize(10, 10)
	if !c.NeedsRedraw() {
		t.Fatal("new canvas should need redraw")
	}
	c.Render()
	if c.NeedsRedraw() {
		t.Error("NeedsRedraw after Render")
	}
	if c.FrameCount() != 1 {
		t.Errorf("FrameCount = %d, want 1", c.FrameCount())
	}

	c.DrawText(0, 0, "a", scale.TagCursor, scale.DefaultFont(), core.ColorBlack)
	if !c.NeedsRedraw() {
		t.Error("DrawText should mark dirty")
	}
	c.Render()
	c.MarkDirty()
	if !c.NeedsRedraw() {
		t.Error("MarkDirty should mark dirty")
	}
}

func TestCanvasRenderEmptySize(t *testing.T) {
	c, b := newTestCanvas(t, 4, 4)
	c.DrawText(0, 0, "a", scale.TagCursor, scale.DefaultFont(), core.ColorBlack)
	c.Render()
	if runeAt(b, 0, 0) != ' ' {
		t.Error("zero-sized canvas should not paint")
	}
	if c.FrameCount() != 0 {
		t.Errorf("FrameCount = %d, want 0", c.FrameCount())
	}
}

func TestCanvasBoxEdges(t *testing.T) {
	c, b := newTestCanvas(t, 10, 10)
	c.SetSize(20, 40)
	colors := shade.BoxColors{
		Fill:   core.ColorFromRGB(1, 1, 1),
		Top:    core.ColorFromRGB(2, 2, 2),
		Bottom: core.ColorFromRGB(3, 3, 3),
	}
	// Cells (1,1) to (4,3) inclusive.
	c.DrawBox(scale.Rect{X1: 2, Y1: 4, X2: 10, Y2: 16}, colors, scale.TagBackground)
	c.Render()

	tests := []struct {
		col, row int
		r        rune
		fg       core.Color
	}{
		{1, 1, glyphTop, colors.Top},
		{4, 1, glyphTop, colors.Top},
		{2, 3, glyphBottom, colors.Bottom},
		{1, 2, glyphLeft, colors.Top},
		{4, 2, glyphRight, colors.Bottom},
		{2, 2, ' ', colors.Fill},
	}
	for _, tt := range tests {
		cell := b.GetCell(tt.col, tt.row)
		if cell.Rune != tt.r {
			t.Errorf("cell(%d,%d) rune = %q, want %q", tt.col, tt.row, cell.Rune, tt.r)
		}
		if !cell.Style.Foreground.Equals(tt.fg) {
			t.Errorf("cell(%d,%d) fg = %v, want %v", tt.col, tt.row, cell.Style.Foreground, tt.fg)
		}
		if !cell.Style.Background.Equals(colors.Fill) {
			t.Errorf("cell(%d,%d) bg = %v, want fill", tt.col, tt.row, cell.Style.Background)
		}
	}
	if runeAt(b, 0, 0) != ' ' || runeAt(b, 5, 1) != ' ' {
		t.Error("box painted outside its bounds")
	}
}

func TestCanvasTextKeepsBackground(t *testing.T) {
	c, b := newTestCanvas(t, 10, 10)
	c.SetSize(20, 40)
	fill := core.ColorFromRGB(9, 9, 9)
	c.DrawBox(scale.Rect{X1: 0, Y1: 0, X2: 20, Y2: 40}, shade.BoxColors{Fill: fill}, scale.TagBackground)
	c.DrawText(10, 18, "abc", scale.TagCursor, scale.DefaultFont(), core.ColorBlack)
	c.Render()

	// Centered on column 5, row 4.
	if got := string([]rune(b.Row(4))[4:7]); got != "abc" {
		t.Errorf("row 4 = %q, want abc at column 4", b.Row(4))
	}
	cell := b.GetCell(5, 4)
	if !cell.Style.Background.Equals(fill) {
		t.Errorf("text bg = %v, want %v", cell.Style.Background, fill)
	}
	if !cell.Style.Foreground.Equals(core.ColorBlack) {
		t.Errorf("text fg = %v, want black", cell.Style.Foreground)
	}
}

func TestCanvasTextClipped(t *testing.T) {
	c, b := newTestCanvas(t, 10, 10)
	c.SetSize(6, 4)
	c.DrawText(0, 0, "hello", scale.TagCursor, scale.DefaultFont(), core.ColorBlack)
	c.Render()
	if got := string([]rune(b.Row(0))[:3]); got != "llo" {
		t.Errorf("row 0 prefix = %q, want llo", got)
	}
	if runeAt(b, 3, 0) != ' ' {
		t.Error("text drawn past canvas edge")
	}
}

func TestCanvasRendersWidget(t *testing.T) {
	c, b := newTestCanvas(t, 80, 24)
	w, err := scale.New(scale.DefaultConfig(), c)
	if err != nil {
		t.Fatalf("scale.New: %v", err)
	}
	c.SetSize(w.Size())
	c.Render()

	if got := runeAt(b, 8, 1); got != '0' {
		t.Errorf("label A rune = %q, want '0' in %q", got, b.Row(1))
	}
	if got := string([]rune(b.Row(9))[57:60]); got != "100" {
		t.Errorf("label B = %q, want 100 in %q", got, b.Row(9))
	}

	cfg := w.Config()
	cursor := shade.Bevel(cfg.CursorColor, cfg.LightFactor, cfg.DarkFactor, true)
	cell := b.GetCell(6, 4)
	if cell.Rune != glyphTop || !cell.Style.Foreground.Equals(cursor.Top) {
		t.Errorf("cursor A top edge = %q %v, want %q %v", cell.Rune, cell.Style.Foreground, glyphTop, cursor.Top)
	}

	w.SetValues(50, 50)
	if !c.NeedsRedraw() {
		t.Fatal("SetValues should dirty the canvas")
	}
	c.Render()
	if got := string([]rune(b.Row(1))[32:34]); got != "50" {
		t.Errorf("label A after move = %q, row %q", got, b.Row(1))
	}
	if runeAt(b, 8, 1) != ' ' {
		t.Errorf("stale label left in %q", b.Row(1))
	}
}
