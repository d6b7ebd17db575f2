package scale

import (
	"math"

	"github.com/dshills/doublescale/internal/renderer/shade"
)

// MinOffsetX is the smallest left and right margin around the track.
const MinOffsetX = 10.0

// ChangeFunc is called after the cursor values change.
type ChangeFunc func(a, b float64)

// Widget is a dual-handle range scale.
//
// It owns cursors A and B and keeps From <= a <= b <= To across drags.
// SetValues only clamps each value to the domain; the caller is responsible
// for passing a <= b.
type Widget struct {
	cfg      Config
	renderer Renderer
	mapper   Mapper
	drag     *DragController

	a Cursor
	b Cursor

	offsetX      float64
	insideOffset float64
	linespace    float64
	delimiter    float64

	bgColors     shade.BoxColors
	cursorColors shade.BoxColors

	observers []ChangeFunc
}

// New builds a widget, draws its background and cursors on r, and returns
// it with cursor A at From and cursor B at To.
// It returns a *ConfigurationError if cfg cannot describe a scale.
func New(cfg Config, r Renderer) (*Widget, error) {
	cfg = cfg.Normalized()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w := &Widget{
		cfg:      cfg,
		renderer: r,
	}

	textWidth := cfg.Font.Measure(FormatValue(cfg.To, cfg.Decimals))
	w.offsetX = math.Max(MinOffsetX, textWidth/2-cfg.CursorWidth/2)
	w.linespace = cfg.Font.LineHeight
	w.insideOffset = cfg.CursorWidth/2 + 1
	w.delimiter = w.linespace + cfg.Thickness/2

	m, err := NewMapper(cfg.From, cfg.To, cfg.Length, w.offsetX, w.insideOffset)
	if err != nil {
		return nil, err
	}
	w.mapper = m
	w.drag = NewDragController(m, cfg.Decimals, w.delimiter)

	textY := cfg.Font.Ascent / 2
	w.a = newCursor(RoleA, cfg.From, cfg.CursorWidth,
		w.linespace+1, w.delimiter-1, textY)
	w.b = newCursor(RoleB, cfg.To, cfg.CursorWidth,
		w.delimiter, w.linespace+cfg.Thickness-1, w.linespace+cfg.Thickness+textY)

	w.bgColors = shade.Bevel(cfg.BgColor, cfg.LightFactor, cfg.DarkFactor, false)
	w.cursorColors = shade.Bevel(cfg.CursorColor, cfg.LightFactor, cfg.DarkFactor, true)

	if w.renderer != nil {
		w.renderer.DrawBox(w.TrackBounds(), w.bgColors, TagBackground)
	}
	w.redraw()

	return w, nil
}

// Config returns the normalized configuration.
func (w *Widget) Config() Config {
	return w.cfg
}

// Mapper returns the widget's coordinate mapper.
func (w *Widget) Mapper() Mapper {
	return w.mapper
}

// Size returns the extent the widget needs to draw itself.
func (w *Widget) Size() (width, height float64) {
	width = w.offsetX*2 + w.cfg.Length + w.cfg.CursorWidth
	height = w.linespace*1.8 + w.cfg.Thickness
	return width, height
}

// TrackBounds returns the box of the track background.
func (w *Widget) TrackBounds() Rect {
	return Rect{
		X1: w.offsetX,
		Y1: w.linespace,
		X2: w.offsetX + w.cfg.Length + w.insideOffset*2,
		Y2: w.linespace + w.cfg.Thickness,
	}
}

// Delimiter returns the y coordinate between the two cursor bands.
func (w *Widget) Delimiter() float64 {
	return w.delimiter
}

// Values returns the values of cursors A and B.
func (w *Widget) Values() (a, b float64) {
	return w.a.value, w.b.value
}

// DisplayValues returns the cursor labels as currently drawn.
func (w *Widget) DisplayValues() (a, b string) {
	return w.a.DisplayValue(w.cfg.Decimals), w.b.DisplayValue(w.cfg.Decimals)
}

// Cursor returns a copy of the cursor with the given role.
func (w *Widget) Cursor(role Role) Cursor {
	if role == RoleB {
		return w.b
	}
	return w.a
}

// SetValues assigns both cursors. Each value is clamped to [From, To]
// independently; the pair is not reordered, so passing a > b leaves the
// cursors crossed. A NaN leaves that cursor unchanged. An in-progress drag
// is not affected.
func (w *Widget) SetValues(a, b float64) {
	if !math.IsNaN(a) {
		w.a.value = w.mapper.Clamp(a)
	}
	if !math.IsNaN(b) {
		w.b.value = w.mapper.Clamp(b)
	}
	w.redraw()
	w.notify()
}

// OnChange registers fn to be called after every value change.
func (w *Widget) OnChange(fn ChangeFunc) {
	if fn != nil {
		w.observers = append(w.observers, fn)
	}
}

// PointerDown handles a primary button press at (x, y) in widget units and
// returns the cursor it grabbed.
func (w *Widget) PointerDown(x, y float64) Target {
	return w.drag.PointerDown(x, y, w.a.value, w.b.value)
}

// PointerMove handles pointer motion with the button held. It moves the
// grabbed cursor and redraws; it does nothing when no cursor is grabbed.
func (w *Widget) PointerMove(x, y float64) {
	oldA, oldB := w.a.value, w.b.value
	a, b, ok := w.drag.PointerMove(x, y, oldA, oldB)
	if !ok {
		return
	}
	w.a.value, w.b.value = a, b
	w.redraw()
	if a != oldA || b != oldB {
		w.notify()
	}
}

// PointerUp ends the current drag.
func (w *Widget) PointerUp() {
	w.drag.PointerUp()
}

// CancelDrag ends the current drag after pointer capture was lost.
func (w *Widget) CancelDrag() {
	w.drag.Cancel()
}

// Dragging returns the cursor being dragged, or TargetNone.
func (w *Widget) Dragging() Target {
	return w.drag.Target()
}

// DragState returns a snapshot of the drag controller.
func (w *Widget) DragState() DragState {
	return w.drag.State()
}

// Redraw repaints the cursors.
func (w *Widget) Redraw() {
	w.redraw()
}

func (w *Widget) redraw() {
	if w.renderer == nil {
		return
	}
	w.renderer.ClearByTag(TagCursor)
	w.drawCursor(w.a)
	w.drawCursor(w.b)
}

func (w *Widget) drawCursor(c Cursor) {
	x := w.mapper.ValueToPosition(c.value)
	w.renderer.DrawBox(c.BoxBounds(x), w.cursorColors, TagCursor)

	lx, ly := c.LabelAnchor(x)
	w.renderer.DrawText(lx, ly, c.DisplayValue(w.cfg.Decimals), TagCursor, w.cfg.Font, w.cfg.TextColor)
}

func (w *Widget) notify() {
	for _, fn := range w.observers {
		fn(w.a.value, w.b.value)
	}
}
