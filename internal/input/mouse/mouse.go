package mouse

import (
	"sync"
	"time"

	"github.com/dshills/doublescale/internal/renderer/backend"
)

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
	// ButtonScrollUp indicates scroll wheel up.
	ButtonScrollUp
	// ButtonScrollDown indicates scroll wheel down.
	ButtonScrollDown
	// ButtonScrollLeft indicates horizontal scroll left.
	ButtonScrollLeft
	// ButtonScrollRight indicates horizontal scroll right.
	ButtonScrollRight
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonScrollUp:
		return "scroll-up"
	case ButtonScrollDown:
		return "scroll-down"
	case ButtonScrollLeft:
		return "scroll-left"
	case ButtonScrollRight:
		return "scroll-right"
	default:
		return "none"
	}
}

// IsScroll returns true if this is a scroll button.
func (b Button) IsScroll() bool {
	return b == ButtonScrollUp || b == ButtonScrollDown ||
		b == ButtonScrollLeft || b == ButtonScrollRight
}

// buttonFromBackend maps a backend button report.
func buttonFromBackend(b backend.MouseButton) Button {
	switch b {
	case backend.MouseLeft:
		return ButtonLeft
	case backend.MouseMiddle:
		return ButtonMiddle
	case backend.MouseRight:
		return ButtonRight
	case backend.MouseWheelUp:
		return ButtonScrollUp
	case backend.MouseWheelDown:
		return ButtonScrollDown
	case backend.MouseWheelLeft:
		return ButtonScrollLeft
	case backend.MouseWheelRight:
		return ButtonScrollRight
	default:
		return ButtonNone
	}
}

// Action represents the type of mouse action.
type Action uint8

const (
	// ActionNone indicates the report carried no transition.
	ActionNone Action = iota
	// ActionPress indicates a button press.
	ActionPress
	// ActionRelease indicates a button release.
	ActionRelease
	// ActionMove indicates mouse movement (no button held).
	ActionMove
	// ActionDrag indicates mouse movement with a button held.
	ActionDrag
	// ActionScroll indicates a wheel tick.
	ActionScroll
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionPress:
		return "press"
	case ActionRelease:
		return "release"
	case ActionMove:
		return "move"
	case ActionDrag:
		return "drag"
	case ActionScroll:
		return "scroll"
	default:
		return "none"
	}
}

// Position represents a screen coordinate.
type Position struct {
	X int
	Y int
}

// Equal returns true if two positions are equal.
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// Event represents a mouse action derived from a terminal report.
type Event struct {
	// Position is the screen coordinates.
	Position Position

	// Button is the mouse button involved. For releases it is the button
	// that was held.
	Button Button

	// Modifiers are any keyboard modifiers held during the event.
	Modifiers backend.ModMask

	// Action is the type of mouse action.
	Action Action

	// Timestamp is when the event occurred.
	Timestamp time.Time

	// Owner is the capture owner when the report arrived. For a release it
	// is the owner of the press being released.
	Owner int

	// Captured reports whether Owner is set.
	Captured bool
}

// Config configures tracker behavior.
type Config struct {
	// DragButton is the button that starts drags. Other buttons still
	// produce press and release actions but never drag.
	DragButton Button

	// ReportMoves enables ActionMove for motion with no button held.
	ReportMoves bool
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		DragButton:  ButtonLeft,
		ReportMoves: true,
	}
}

// Tracker derives pointer actions from terminal mouse reports.
type Tracker struct {
	mu     sync.Mutex
	config Config

	held Button
	last Position

	// dragging is set while DragButton is held; start is where it went down.
	dragging bool
	start    Position

	owner    int
	captured bool
}

// DragState is a snapshot of the gesture in progress.
type DragState struct {
	// Active is true while the drag button is held.
	Active bool
	// Button is the drag button.
	Button Button
	// StartPos is the cell where the button went down.
	StartPos Position
	// CurrentPos is the last reported cell.
	CurrentPos Position
	// Delta is CurrentPos minus StartPos.
	Delta Position
}

// NewTracker creates a tracker with the given configuration.
func NewTracker(config Config) *Tracker {
	return &Tracker{config: config}
}

// Translate turns a backend mouse event into an action. Non-mouse events
// yield ActionNone.
func (t *Tracker) Translate(raw backend.Event, now time.Time) Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	ev := Event{
		Position:  Position{X: raw.MouseX, Y: raw.MouseY},
		Button:    buttonFromBackend(raw.MouseButton),
		Modifiers: raw.Mod,
		Timestamp: now,
	}
	if raw.Type != backend.EventMouse {
		ev.Button = ButtonNone
		return ev
	}

	moved := !ev.Position.Equal(t.last)
	t.last = ev.Position
	ev.Owner, ev.Captured = t.owner, t.captured

	switch {
	case ev.Button.IsScroll():
		ev.Action = ActionScroll

	case t.held == ButtonNone && ev.Button == ButtonNone:
		if t.config.ReportMoves && moved {
			ev.Action = ActionMove
		}

	case t.held == ButtonNone:
		t.held = ev.Button
		ev.Action = ActionPress
		if ev.Button == t.config.DragButton {
			t.dragging = true
			t.start = ev.Position
		}

	case ev.Button == ButtonNone:
		ev.Action = ActionRelease
		ev.Button = t.held
		t.release()

	case ev.Button == t.held:
		if moved {
			ev.Action = ActionDrag
		}

	default:
		// A second button while one is held; the first keeps ownership.
		ev.Button = t.held
	}

	return ev
}

func (t *Tracker) release() {
	t.held = ButtonNone
	t.dragging = false
	t.start = Position{}
	t.owner = 0
	t.captured = false
}

// Capture assigns the current press to owner. It has no effect unless a
// button is held.
func (t *Tracker) Capture(owner int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.held == ButtonNone {
		return
	}
	t.owner = owner
	t.captured = true
}

// Owner returns the capturing owner, if any.
func (t *Tracker) Owner() (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.owner, t.captured
}

// Held returns the button currently held.
func (t *Tracker) Held() Button {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.held
}

// Reset clears all tracker state, dropping any capture.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.release()
	t.last = Position{}
}

// IsDragging returns true if the drag button is held.
func (t *Tracker) IsDragging() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dragging
}

// DragState returns a snapshot of the drag. The zero value means no drag.
func (t *Tracker) DragState() DragState {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.dragging {
		return DragState{}
	}
	return DragState{
		Active:     true,
		Button:     t.held,
		StartPos:   t.start,
		CurrentPos: t.last,
		Delta:      Position{X: t.last.X - t.start.X, Y: t.last.Y - t.start.Y},
	}
}
