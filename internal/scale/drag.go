package scale

import "math"

// HitRadius is the horizontal distance within which a press grabs a cursor.
// The comparison is strict.
const HitRadius = 10.0

// Target identifies the cursor owned by a drag gesture.
type Target uint8

const (
	// TargetNone means no drag is in progress.
	TargetNone Target = iota
	// TargetA means cursor A is being dragged.
	TargetA
	// TargetB means cursor B is being dragged.
	TargetB
)

// String returns a string representation of the target.
func (t Target) String() string {
	switch t {
	case TargetA:
		return "A"
	case TargetB:
		return "B"
	default:
		return "none"
	}
}

// Point is a position in widget units.
type Point struct {
	X, Y float64
}

// DragState is a snapshot of the drag controller.
type DragState struct {
	// Target is the cursor being dragged, or TargetNone.
	Target Target
	// StartPos is where the drag started.
	StartPos Point
	// CurrentPos is the last pointer position seen during the drag.
	CurrentPos Point
}

// DragController is the press/drag/release state machine.
//
// States are IDLE (Target == TargetNone) and DRAGGING(A|B). The controller
// holds no cursor values; callers pass the current values in and apply the
// values it returns.
type DragController struct {
	mapper    Mapper
	decimals  int
	delimiter float64

	target     Target
	startPos   Point
	currentPos Point
}

// NewDragController creates a controller. delimiter is the y coordinate
// separating cursor A's half of the track from cursor B's.
func NewDragController(m Mapper, decimals int, delimiter float64) *DragController {
	if decimals < 0 {
		decimals = -decimals
	}
	return &DragController{
		mapper:    m,
		decimals:  decimals,
		delimiter: delimiter,
	}
}

// Resolve returns the cursor a press at (px, py) would grab given the
// current values a and b, without changing state.
func (d *DragController) Resolve(px, py, a, b float64) Target {
	xa := d.mapper.ValueToPosition(a)
	xb := d.mapper.ValueToPosition(b)

	if a == b {
		switch {
		case a == d.mapper.From():
			// A is pinned at the floor; only B can widen the range.
			return TargetB
		case b == d.mapper.To():
			return TargetA
		case math.Abs(px-xa) < HitRadius:
			if py < d.delimiter {
				return TargetA
			}
			return TargetB
		}
		return TargetNone
	}

	if math.Abs(px-xa) < HitRadius {
		return TargetA
	}
	if math.Abs(px-xb) < HitRadius {
		return TargetB
	}
	return TargetNone
}

// PointerDown starts a drag if the press grabs a cursor and returns the
// grabbed cursor. A press that misses leaves the controller idle.
func (d *DragController) PointerDown(px, py, a, b float64) Target {
	d.end()
	d.target = d.Resolve(px, py, a, b)
	if d.target != TargetNone {
		d.startPos = Point{X: px, Y: py}
		d.currentPos = d.startPos
	}
	return d.target
}

// PointerMove computes the cursor values after the pointer moved to px.
// The dragged cursor follows the pointer, rounded to the configured
// decimals and clamped so that From <= a <= b <= To. ok is false when no
// drag is in progress, in which case a and b are returned unchanged.
func (d *DragController) PointerMove(px, py, a, b float64) (newA, newB float64, ok bool) {
	if d.target == TargetNone {
		return a, b, false
	}
	d.currentPos = Point{X: px, Y: py}

	raw := RoundTo(d.mapper.PositionToValue(px), d.decimals)
	if math.IsNaN(raw) {
		return a, b, true
	}
	switch d.target {
	case TargetA:
		a = clamp(raw, d.mapper.From(), b)
	case TargetB:
		b = clamp(raw, a, d.mapper.To())
	}
	return a, b, true
}

// PointerUp ends the drag.
func (d *DragController) PointerUp() {
	d.end()
}

// Cancel ends the drag without a release, e.g. when pointer capture is lost.
func (d *DragController) Cancel() {
	d.end()
}

// Target returns the cursor being dragged.
func (d *DragController) Target() Target {
	return d.target
}

// Active returns true if a drag is in progress.
func (d *DragController) Active() bool {
	return d.target != TargetNone
}

// State returns the current drag state.
func (d *DragController) State() DragState {
	return DragState{
		Target:     d.target,
		StartPos:   d.startPos,
		CurrentPos: d.currentPos,
	}
}

func (d *DragController) end() {
	d.target = TargetNone
	d.startPos = Point{}
	d.currentPos = Point{}
}
