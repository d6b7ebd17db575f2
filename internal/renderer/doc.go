// Package renderer provides the drawing surface that widgets paint on.
//
// A Canvas is a retained, tag-based display list in the style of a Tk
// canvas. Widgets add boxes and text in continuous widget units; items are
// kept until cleared by tag. Render rasterizes the list into terminal cells
// and writes them to a backend.
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│        scale.Widget (core logic)        │
//	├─────────────────────────────────────────┤
//	│   Canvas: items by tag, unit → cell     │
//	├─────────────────────────────────────────┤
//	│           Backend Abstraction           │
//	├─────────────────────────────────────────┤
//	│  Terminal (tcell) │ NullBackend (tests) │
//	└─────────────────────────────────────────┘
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	c := renderer.NewCanvas(term, renderer.DefaultOptions())
//	w, _ := scale.New(scale.DefaultConfig(), c)
//	c.SetSize(w.Size())
//	c.Render()
//	term.Show()
package renderer
