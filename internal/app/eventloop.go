package app

import (
	"errors"
	"time"

	"github.com/dshills/doublescale/internal/input/mouse"
	"github.com/dshills/doublescale/internal/renderer/backend"
	"github.com/dshills/doublescale/internal/renderer/statusline"
	"github.com/dshills/doublescale/internal/scale"
)

// eventLoop is the main application loop. It blocks on the backend and
// renders after every event that changed something.
func (app *Application) eventLoop() error {
	app.render()
	for {
		ev := app.backend.PollEvent()
		err := app.handleBackendEvent(ev)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			app.logger.Error("%v", err)
			app.setStatus(err.Error(), statusline.MessageError)
		}
		if app.needsRender() {
			app.render()
		}
	}
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		return app.handleResize(ev)
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventMouse:
		return app.handleMouseEvent(ev)
	case backend.EventFocus:
		return app.handleFocusEvent(ev)
	case backend.EventInterrupt:
		return app.handleInterrupt(ev)
	default:
		return nil
	}
}

func (app *Application) handleResize(_ backend.Event) error {
	app.layout()
	return nil
}

// handleKeyEvent handles the few global keys.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	switch ev.Key {
	case backend.KeyEscape, backend.KeyCtrlC:
		return ErrQuit
	case backend.KeyCtrlL:
		app.backend.Clear()
		app.dirty = true
	case backend.KeyRune:
		switch ev.Rune {
		case 'q', 'Q':
			return ErrQuit
		case 'r':
			return app.reload(nil)
		}
	}
	return nil
}

// handleMouseEvent delivers pointer actions to widgets. The widget that
// receives a press owns the drag and release that follow, wherever the
// pointer goes.
func (app *Application) handleMouseEvent(ev backend.Event) error {
	mev := app.tracker.Translate(ev, time.Now())

	switch mev.Action {
	case mouse.ActionPress:
		if mev.Button != mouse.ButtonLeft {
			return nil
		}
		idx := app.panelAt(mev.Position)
		if idx < 0 {
			return nil
		}
		app.tracker.Capture(idx)
		app.focus(idx)

		p := app.panels[idx]
		x, y := p.canvas.ToLocal(mev.Position.X, mev.Position.Y)
		target := p.widget.PointerDown(x, y)
		app.logger.WithComponent("input").Debug("press on %s at (%.1f, %.1f) grabbed %v", p.name, x, y, target)

	case mouse.ActionDrag:
		if p := app.owner(mev); p != nil {
			x, y := p.canvas.ToLocal(mev.Position.X, mev.Position.Y)
			p.widget.PointerMove(x, y)
			if ds := app.tracker.DragState(); ds.Active {
				app.logger.WithComponent("input").Debug("drag on %s moved %+d,%+d cells", p.name, ds.Delta.X, ds.Delta.Y)
			}
		}

	case mouse.ActionRelease:
		if p := app.owner(mev); p != nil {
			if ds := p.widget.DragState(); ds.Target != scale.TargetNone {
				a, b := p.widget.DisplayValues()
				app.logger.WithComponent("input").Debug("release on %s: %v dragged from %.1f to %.1f, now %s..%s",
					p.name, ds.Target, ds.StartPos.X, ds.CurrentPos.X, a, b)
			}
			p.widget.PointerUp()
		}
	}
	return nil
}

func (app *Application) owner(mev mouse.Event) *panel {
	if !mev.Captured || mev.Owner < 0 || mev.Owner >= len(app.panels) {
		return nil
	}
	return app.panels[mev.Owner]
}

func (app *Application) panelAt(pos mouse.Position) int {
	for i, p := range app.panels {
		if p.canvas.Contains(pos.X, pos.Y) {
			return i
		}
	}
	return -1
}

func (app *Application) focus(idx int) {
	if app.focused != idx {
		app.focused = idx
		app.dirty = true
	}
}

// handleFocusEvent cancels drags when the terminal loses focus, since the
// release will never be reported.
func (app *Application) handleFocusEvent(ev backend.Event) error {
	if ev.Focused {
		return nil
	}
	app.cancelDrags()
	return nil
}

func (app *Application) cancelDrags() {
	for _, p := range app.panels {
		if p.widget.Dragging() != scale.TargetNone {
			p.widget.CancelDrag()
			app.logger.WithComponent("input").Debug("drag on %s cancelled", p.name)
		}
	}
	app.tracker.Reset()
}

func (app *Application) handleInterrupt(ev backend.Event) error {
	switch data := ev.Data.(type) {
	case quitRequest:
		return ErrQuit
	case reloadRequest:
		return app.reload(&data.event)
	}
	return nil
}

func (app *Application) needsRender() bool {
	if app.dirty {
		return true
	}
	for _, p := range app.panels {
		if p.canvas.NeedsRedraw() {
			return true
		}
	}
	return false
}

// render repaints every canvas and the status line.
func (app *Application) render() {
	app.backend.Clear()
	for _, p := range app.panels {
		p.canvas.Render()
	}
	app.drawStatus()
	app.backend.Show()
	app.dirty = false
}

// keyHints is shown at the right of the status bar.
const keyHints = "r reload  q quit"

func (app *Application) drawStatus() {
	width, height := app.backend.Size()
	if height <= 0 {
		return
	}
	if app.focused >= 0 && app.focused < len(app.panels) {
		p := app.panels[app.focused]
		a, b := p.widget.DisplayValues()
		app.status.SetScale(p.name, a, b)
	} else {
		app.status.SetScale("", "", "")
	}
	app.status.Resize(width)
	app.status.Render(app.backend, height-1)
}
