// Package scale implements a dual-handle range-selection widget.
//
// A scale is a horizontal track with two draggable cursors that together
// select a sub-range [a, b] of a fixed domain [From, To]. Cursor A is the
// lower bound and cursor B the upper bound.
//
// # Core Types
//
// Mapper converts between domain values and positions along the track:
//
//	m, err := scale.NewMapper(0, 100, 100, 10, 6)
//	x := m.ValueToPosition(25) // 41
//	v := m.PositionToValue(x)  // 25
//
// DragController resolves a pointer press to the cursor it grabs and moves
// that cursor while the pointer is dragged, keeping From <= a <= b <= To.
//
// Widget composes the mapper, the two cursors and the drag controller, and
// draws itself through a Renderer:
//
//	w, err := scale.New(scale.DefaultConfig(), canvas)
//	w.PointerDown(x, y)
//	w.PointerMove(x+5, y)
//	w.PointerUp()
//	a, b := w.Values()
//
// # Rendering
//
// The widget never draws pixels itself. It issues DrawBox, DrawText and
// ClearByTag calls to a Renderer. The background is drawn once under
// TagBackground; cursors are cleared and redrawn under TagCursor after every
// value change.
//
// # Thread Safety
//
// Widget is not safe for concurrent use. All calls must come from the host's
// event loop goroutine.
package scale
