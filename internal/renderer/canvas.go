package renderer

import (
	"fmt"
	"math"

	"github.com/rivo/uniseg"

	"github.com/dshills/doublescale/internal/renderer/backend"
	"github.com/dshills/doublescale/internal/renderer/core"
	"github.com/dshills/doublescale/internal/renderer/shade"
	"github.com/dshills/doublescale/internal/scale"
)

// Bevel edge glyphs.
const (
	glyphTop    = '▔'
	glyphBottom = '▁'
	glyphLeft   = '▏'
	glyphRight  = '▕'
)

// Options configures how widget units map to terminal cells.
type Options struct {
	// CellWidth is the number of widget units per terminal column.
	CellWidth float64
	// CellHeight is the number of widget units per terminal row.
	CellHeight float64
}

// DefaultOptions returns a mapping where a terminal cell is roughly twice
// as tall as it is wide.
func DefaultOptions() Options {
	return Options{
		CellWidth:  2,
		CellHeight: 4,
	}
}

// Validate checks that the cell size is usable.
func (o Options) Validate() error {
	if !(o.CellWidth > 0) || !(o.CellHeight > 0) {
		return fmt.Errorf("renderer: cell size must be positive, got %vx%v", o.CellWidth, o.CellHeight)
	}
	return nil
}

type itemKind uint8

const (
	itemBox itemKind = iota
	itemText
)

// item is one entry of the display list.
type item struct {
	kind   itemKind
	tag    scale.Tag
	rect   scale.Rect
	colors shade.BoxColors
	x, y   float64
	text   string
	color  core.Color
}

// Canvas is a retained drawing surface implementing scale.Renderer.
// It is not safe for concurrent use.
type Canvas struct {
	backend backend.Backend
	opts    Options

	origin core.ScreenRect
	items  []item

	dirty      bool
	frameCount uint64
}

// NewCanvas creates a canvas drawing to b. Invalid options fall back to
// DefaultOptions.
func NewCanvas(b backend.Backend, opts Options) *Canvas {
	if opts.Validate() != nil {
		opts = DefaultOptions()
	}
	return &Canvas{
		backend: b,
		opts:    opts,
		dirty:   true,
	}
}

// Options returns the canvas options.
func (c *Canvas) Options() Options {
	return c.opts
}

// SetOrigin places the canvas's top-left corner at the given cell.
func (c *Canvas) SetOrigin(col, row int) {
	w, h := c.origin.Width(), c.origin.Height()
	c.origin = core.NewScreenRect(row, col, h, w)
	c.dirty = true
}

// SetSize sets the canvas extent in widget units.
func (c *Canvas) SetSize(width, height float64) {
	cols := int(math.Ceil(width / c.opts.CellWidth))
	rows := int(math.Ceil(height / c.opts.CellHeight))
	c.origin = core.NewScreenRect(c.origin.Top, c.origin.Left, rows, cols)
	c.dirty = true
}

// Bounds returns the cells covered by the canvas.
func (c *Canvas) Bounds() core.ScreenRect {
	return c.origin
}

// Contains reports whether the screen cell (col, row) is on the canvas.
func (c *Canvas) Contains(col, row int) bool {
	return c.origin.Contains(col, row)
}

// ToLocal converts a screen cell to widget units, using the cell center.
func (c *Canvas) ToLocal(col, row int) (x, y float64) {
	x = (float64(col-c.origin.Left) + 0.5) * c.opts.CellWidth
	y = (float64(row-c.origin.Top) + 0.5) * c.opts.CellHeight
	return x, y
}

// DrawBox implements scale.Renderer.
func (c *Canvas) DrawBox(r scale.Rect, colors shade.BoxColors, tag scale.Tag) {
	c.items = append(c.items, item{kind: itemBox, tag: tag, rect: r, colors: colors})
	c.dirty = true
}

// DrawText implements scale.Renderer.
func (c *Canvas) DrawText(x, y float64, text string, tag scale.Tag, _ scale.Font, color core.Color) {
	c.items = append(c.items, item{kind: itemText, tag: tag, x: x, y: y, text: text, color: color})
	c.dirty = true
}

// ClearByTag implements scale.Renderer.
func (c *Canvas) ClearByTag(tag scale.Tag) {
	kept := c.items[:0]
	for _, it := range c.items {
		if it.tag != tag {
			kept = append(kept, it)
		}
	}
	// Zero the tail so dropped strings can be collected.
	for i := len(kept); i < len(c.items); i++ {
		c.items[i] = item{}
	}
	c.items = kept
	c.dirty = true
}

// ItemCount returns the number of items drawn under tag.
func (c *Canvas) ItemCount(tag scale.Tag) int {
	n := 0
	for _, it := range c.items {
		if it.tag == tag {
			n++
		}
	}
	return n
}

// Clear removes every item.
func (c *Canvas) Clear() {
	c.items = nil
	c.dirty = true
}

// NeedsRedraw returns true if the display list changed since the last Render.
func (c *Canvas) NeedsRedraw() bool {
	return c.dirty
}

// MarkDirty forces the next Render to repaint.
func (c *Canvas) MarkDirty() {
	c.dirty = true
}

// FrameCount returns the number of completed renders.
func (c *Canvas) FrameCount() uint64 {
	return c.frameCount
}

// Render rasterizes the display list into the backend. It does not call
// Show; the caller flushes once after rendering every canvas.
func (c *Canvas) Render() {
	cols, rows := c.origin.Width(), c.origin.Height()
	if cols <= 0 || rows <= 0 {
		c.dirty = false
		return
	}

	g := newGrid(cols, rows)
	for _, it := range c.items {
		switch it.kind {
		case itemBox:
			c.rasterBox(g, it)
		case itemText:
			c.rasterText(g, it)
		}
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			c.backend.SetCell(c.origin.Left+col, c.origin.Top+row, g.at(col, row))
		}
	}

	c.dirty = false
	c.frameCount++
}

func (c *Canvas) rasterBox(g *grid, it item) {
	c1 := int(math.Floor(it.rect.X1 / c.opts.CellWidth))
	c2 := int(math.Ceil(it.rect.X2/c.opts.CellWidth)) - 1
	r1 := int(math.Floor(it.rect.Y1 / c.opts.CellHeight))
	r2 := int(math.Ceil(it.rect.Y2/c.opts.CellHeight)) - 1
	c2 = max(c2, c1)
	r2 = max(r2, r1)

	fill := core.DefaultStyle().WithBackground(it.colors.Fill)
	for row := r1; row <= r2; row++ {
		for col := c1; col <= c2; col++ {
			r, fg := edge(col, row, c1, c2, r1, r2, it.colors)
			g.set(col, row, core.NewStyledCell(r, fill.WithForeground(fg)))
		}
	}
}

// edge picks the glyph and color for a box cell. Top and bottom rows win
// over the side columns.
func edge(col, row, c1, c2, r1, r2 int, colors shade.BoxColors) (rune, core.Color) {
	switch {
	case r2 > r1 && row == r1:
		return glyphTop, colors.Top
	case r2 > r1 && row == r2:
		return glyphBottom, colors.Bottom
	case c2 > c1 && col == c1:
		return glyphLeft, colors.Top
	case c2 > c1 && col == c2:
		return glyphRight, colors.Bottom
	}
	return ' ', colors.Fill
}

func (c *Canvas) rasterText(g *grid, it item) {
	width := uniseg.StringWidth(it.text)
	col := int(math.Floor(it.x/c.opts.CellWidth)) - width/2
	row := int(math.Floor(it.y / c.opts.CellHeight))

	state := -1
	rest := it.text
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if w == 0 {
			continue
		}
		under := g.at(col, row)
		style := under.Style.WithForeground(it.color)
		cell := core.NewStyledCell([]rune(cluster)[0], style)
		cell.Width = w
		g.set(col, row, cell)
		col += w
	}
}

// grid is a scratch raster of cells.
type grid struct {
	cols, rows int
	cells      []core.Cell
}

func newGrid(cols, rows int) *grid {
	g := &grid{cols: cols, rows: rows, cells: make([]core.Cell, cols*rows)}
	for i := range g.cells {
		g.cells[i] = core.EmptyCell()
	}
	return g
}

func (g *grid) at(col, row int) core.Cell {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return core.EmptyCell()
	}
	return g.cells[row*g.cols+col]
}

func (g *grid) set(col, row int, cell core.Cell) {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return
	}
	g.cells[row*g.cols+col] = cell
}
