// Package statusline provides the bottom line of the demo: a summary of
// the focused scale, key hints, and transient messages.
package statusline

import (
	"github.com/dshills/doublescale/internal/renderer/backend"
	"github.com/dshills/doublescale/internal/renderer/core"
)

// StatusLine renders the bottom status line.
type StatusLine struct {
	// Focused scale
	name   string
	valueA string
	valueB string

	hints string

	// Message display
	message     string
	messageType MessageType

	width int
}

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

// String returns the message type name.
func (t MessageType) String() string {
	switch t {
	case MessageInfo:
		return "info"
	case MessageWarning:
		return "warning"
	case MessageError:
		return "error"
	default:
		return "none"
	}
}

var (
	badgeStyle = core.DefaultStyle().Bold().
			WithBackground(core.ColorFromRGB(0, 0, 160)).WithForeground(core.ColorWhite)
	barStyle   = core.DefaultStyle().WithBackground(core.ColorGray).WithForeground(core.ColorWhite)
	errorStyle = core.DefaultStyle().WithForeground(core.ColorFromRGB(205, 0, 0)).Bold()
	warnStyle  = core.DefaultStyle().WithForeground(core.ColorFromRGB(205, 205, 0))
)

// New creates a new status line with the given key hints on the right.
func New(hints string) *StatusLine {
	return &StatusLine{hints: hints}
}

// SetScale updates the displayed scale and its formatted values.
func (s *StatusLine) SetScale(name, a, b string) {
	s.name = name
	s.valueA = a
	s.valueB = b
}

// SetMessage displays a message instead of the bar.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage clears the status message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the current message and its type.
func (s *StatusLine) Message() (string, MessageType) {
	return s.message, s.messageType
}

// Resize updates the status line width.
func (s *StatusLine) Resize(width int) {
	s.width = width
}

// Text returns the plain text Render would draw, without padding.
func (s *StatusLine) Text() string {
	if s.message != "" {
		return s.message
	}
	if s.name == "" {
		return s.hints
	}
	return " " + s.name + "  " + s.summary()
}

func (s *StatusLine) summary() string {
	return s.valueA + " .. " + s.valueB
}

// Render draws the status line to the backend at the given row.
func (s *StatusLine) Render(b backend.Backend, row int) {
	if s.message != "" {
		s.renderMessage(b, row)
	} else {
		s.renderStatusBar(b, row)
	}
}

// renderStatusBar renders the scale badge, the values and the hints.
func (s *StatusLine) renderStatusBar(b backend.Backend, row int) {
	s.clear(b, row, barStyle)

	col := 0
	if s.name != "" {
		col = s.put(b, col, row, " "+s.name+" ", badgeStyle)
		col = s.put(b, col, row, " "+s.summary(), barStyle)
	}

	// Hints go right-aligned when they fit after the values.
	hintStart := s.width - textWidth(s.hints) - 1
	if hintStart > col {
		s.put(b, hintStart, row, s.hints, barStyle)
	}
}

// renderMessage renders a status message.
func (s *StatusLine) renderMessage(b backend.Backend, row int) {
	var style core.Style
	switch s.messageType {
	case MessageError:
		style = errorStyle
	case MessageWarning:
		style = warnStyle
	default:
		style = core.DefaultStyle()
	}
	s.clear(b, row, style)
	s.put(b, 0, row, s.message, style)
}

func (s *StatusLine) clear(b backend.Backend, row int, style core.Style) {
	for x := 0; x < s.width; x++ {
		b.SetCell(x, row, core.Cell{Rune: ' ', Width: 1, Style: style})
	}
}

// put draws text from col and returns the column after it. Text past the
// width is dropped.
func (s *StatusLine) put(b backend.Backend, col, row int, text string, style core.Style) int {
	for _, r := range text {
		cell := core.NewStyledCell(r, style)
		if cell.Width <= 0 {
			continue
		}
		if col+cell.Width > s.width {
			break
		}
		b.SetCell(col, row, cell)
		col += cell.Width
	}
	return col
}

func textWidth(text string) int {
	w := 0
	for _, r := range text {
		w += core.RuneWidth(r)
	}
	return w
}
