package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/doublescale/internal/config"
	"github.com/dshills/doublescale/internal/renderer/backend"
	"github.com/dshills/doublescale/internal/scale"
	"github.com/dshills/doublescale/internal/state"
)

// With the demo defaults a single scale occupies columns 1..65 and rows
// 0..5. Screen column c maps to widget x = (c-0.5)*2, so cursor A (x=16)
// is hit from column 9 and cursor B (x=116) from column 59.

func singleScale() *config.Config {
	cfg := config.Default()
	s := config.DefaultScale()
	s.Name = "s"
	cfg.Scales = []config.ScaleConfig{s}
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config, opts Options) (*Application, *backend.NullBackend) {
	t.Helper()
	app, err := New(cfg, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b := backend.NewNullBackend(80, 24)
	if err := app.SetBackend(b); err != nil {
		t.Fatalf("SetBackend: %v", err)
	}
	return app, b
}

func mouseAt(x, y int, btn backend.MouseButton) backend.Event {
	return backend.Event{Type: backend.EventMouse, MouseX: x, MouseY: y, MouseButton: btn}
}

func quitKey() backend.Event {
	return backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'q'}
}

// drag posts a press at from, motion through to, and a release at to.
func drag(b *backend.NullBackend, fromX, fromY, toX, toY int) {
	b.PostEvent(mouseAt(fromX, fromY, backend.MouseLeft))
	b.PostEvent(mouseAt(toX, toY, backend.MouseLeft))
	b.PostEvent(mouseAt(toX, toY, backend.MouseNone))
}

func runApp(t *testing.T, app *Application) error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- app.Run() }()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func values(t *testing.T, app *Application, name string) (float64, float64) {
	t.Helper()
	w, ok := app.Widget(name)
	if !ok {
		t.Fatalf("no widget %q", name)
	}
	return w.Values()
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := singleScale()
	cfg.Scales[0].To = -1
	if _, err := New(cfg, Options{}); !errors.Is(err, config.ErrValidationFailed) {
		t.Errorf("New err = %v, want ErrValidationFailed", err)
	}
}

func TestRunWithoutBackend(t *testing.T) {
	app, err := New(singleScale(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := app.Run(); !errors.Is(err, ErrNoBackend) {
		t.Errorf("Run err = %v, want ErrNoBackend", err)
	}
}

func TestQuitKeys(t *testing.T) {
	keys := map[string]backend.Event{
		"q":      quitKey(),
		"Q":      {Type: backend.EventKey, Key: backend.KeyRune, Rune: 'Q'},
		"escape": {Type: backend.EventKey, Key: backend.KeyEscape},
		"ctrl-c": {Type: backend.EventKey, Key: backend.KeyCtrlC},
	}
	for name, ev := range keys {
		t.Run(name, func(t *testing.T) {
			app, b := newTestApp(t, singleScale(), Options{})
			b.PostEvent(ev)
			if err := runApp(t, app); err != nil {
				t.Fatalf("Run: %v", err)
			}
			if app.IsRunning() {
				t.Error("still running after quit")
			}
		})
	}
}

func TestInitialRender(t *testing.T) {
	app, b := newTestApp(t, singleScale(), Options{})
	b.PostEvent(quitKey())
	if err := runApp(t, app); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !b.MouseEnabled() {
		t.Error("mouse reporting not enabled")
	}
	if b.ShowCount() == 0 {
		t.Error("nothing shown")
	}
	if got := []rune(b.Row(1))[9]; got != '0' {
		t.Errorf("label A = %q, want '0' in row %q", got, b.Row(1))
	}
	if status := b.Row(23); !strings.HasPrefix(status, " s  0 .. 100") {
		t.Errorf("status line = %q", status)
	}

	c, _ := app.Canvas("s")
	bounds := c.Bounds()
	if bounds.Left != 1 || bounds.Top != 0 || bounds.Width() != 65 || bounds.Height() != 6 {
		t.Errorf("canvas bounds = %+v", bounds)
	}
}

func TestDragCursorA(t *testing.T) {
	app, b := newTestApp(t, singleScale(), Options{})
	drag(b, 9, 2, 34, 2)
	b.PostEvent(quitKey())
	if err := runApp(t, app); err != nil {
		t.Fatalf("Run: %v", err)
	}

	a, bv := values(t, app, "s")
	if a != 51 || bv != 100 {
		t.Errorf("values = (%v, %v), want (51, 100)", a, bv)
	}
	if w, _ := app.Widget("s"); w.Dragging() != scale.TargetNone {
		t.Error("drag still active after release")
	}
}

func TestDragLogsGesture(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf})
	app, b := newTestApp(t, singleScale(), Options{Logger: logger})
	drag(b, 9, 2, 34, 2)
	b.PostEvent(quitKey())
	if err := runApp(t, app); err != nil {
		t.Fatalf("Run: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"drag on s moved +25,+0 cells",
		"release on s: A dragged from 17.0 to 67.0, now 51..100",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestDragCapturedOutsideCanvas(t *testing.T) {
	app, b := newTestApp(t, singleScale(), Options{})
	// Drag A far past the canvas; it pins at B.
	drag(b, 9, 2, 75, 20)
	b.PostEvent(quitKey())
	if err := runApp(t, app); err != nil {
		t.Fatalf("Run: %v", err)
	}
	a, bv := values(t, app, "s")
	if a != 100 || bv != 100 {
		t.Errorf("values = (%v, %v), want (100, 100)", a, bv)
	}
}

func TestPressMissIgnoresDrag(t *testing.T) {
	app, b := newTestApp(t, singleScale(), Options{})
	drag(b, 40, 2, 10, 2)
	// Presses outside every canvas go nowhere.
	drag(b, 70, 20, 9, 2)
	b.PostEvent(quitKey())
	if err := runApp(t, app); err != nil {
		t.Fatalf("Run: %v", err)
	}
	a, bv := values(t, app, "s")
	if a != 0 || bv != 100 {
		t.Errorf("values = (%v, %v), want (0, 100)", a, bv)
	}
}

func TestFocusLossCancelsDrag(t *testing.T) {
	app, b := newTestApp(t, singleScale(), Options{})
	b.PostEvent(mouseAt(9, 2, backend.MouseLeft))
	b.PostEvent(mouseAt(20, 2, backend.MouseLeft))
	b.PostEvent(backend.Event{Type: backend.EventFocus, Focused: false})
	// The button is still reported held, but the drag is gone.
	b.PostEvent(mouseAt(30, 2, backend.MouseLeft))
	b.PostEvent(mouseAt(30, 2, backend.MouseNone))
	b.PostEvent(quitKey())
	if err := runApp(t, app); err != nil {
		t.Fatalf("Run: %v", err)
	}

	a, bv := values(t, app, "s")
	if a != 23 || bv != 100 {
		t.Errorf("values = (%v, %v), want (23, 100)", a, bv)
	}
}

func TestShutdownFromOtherGoroutine(t *testing.T) {
	app, _ := newTestApp(t, singleScale(), Options{})
	done := make(chan error, 1)
	go func() { done <- app.Run() }()

	deadline := time.Now().Add(2 * time.Second)
	for !app.IsRunning() {
		if time.Now().After(deadline) {
			t.Fatal("app never started")
		}
		time.Sleep(time.Millisecond)
	}
	if err := app.SetBackend(backend.NewNullBackend(1, 1)); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("SetBackend while running = %v", err)
	}

	app.Shutdown()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Shutdown did not stop Run")
	}
}

func TestStatePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	cfg := singleScale()
	cfg.App.StatePath = path

	app, b := newTestApp(t, cfg, Options{})
	drag(b, 9, 2, 34, 2)
	b.PostEvent(quitKey())
	if err := runApp(t, app); err != nil {
		t.Fatalf("Run: %v", err)
	}

	saved, err := state.NewStore(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(map[string]state.Values{"s": {A: 51, B: 100}}, saved); diff != "" {
		t.Errorf("saved mismatch (-want +got):\n%s", diff)
	}

	// A second run restores the values.
	app2, b2 := newTestApp(t, cfg, Options{})
	b2.PostEvent(quitKey())
	if err := runApp(t, app2); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if a, bv := values(t, app2, "s"); a != 51 || bv != 100 {
		t.Errorf("restored values = (%v, %v), want (51, 100)", a, bv)
	}
}

func TestInitialValuesFromConfig(t *testing.T) {
	cfg := singleScale()
	cfg.Scales[0].Values = []float64{20, 30}
	app, b := newTestApp(t, cfg, Options{})
	b.PostEvent(quitKey())
	if err := runApp(t, app); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if a, bv := values(t, app, "s"); a != 20 || bv != 30 {
		t.Errorf("values = (%v, %v), want (20, 30)", a, bv)
	}
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestReloadCarriesValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.toml")
	writeFile(t, path, "[[scales]]\nname = \"s\"\n")
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	writeFile(t, path, "[app]\ngap = 0\n\n[[scales]]\nname = \"s\"\n\n[[scales]]\nname = \"t\"\nto = 10\n")

	app, b := newTestApp(t, cfg, Options{ConfigPath: path})
	drag(b, 9, 2, 34, 2)
	b.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: reloadRequest{event: config.Event{Path: path}}})
	b.PostEvent(quitKey())
	if err := runApp(t, app); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if diff := cmp.Diff([]string{"s", "t"}, app.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if a, bv := values(t, app, "s"); a != 51 || bv != 100 {
		t.Errorf("s values = (%v, %v), want (51, 100)", a, bv)
	}
	if a, bv := values(t, app, "t"); a != 0 || bv != 10 {
		t.Errorf("t values = (%v, %v), want (0, 10)", a, bv)
	}
	if app.Config().App.Gap != 0 {
		t.Errorf("gap = %d, want 0 after reload", app.Config().App.Gap)
	}
}

func TestReloadKeepsOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.toml")
	statePath := filepath.Join(dir, "state.json")
	writeFile(t, path, "[[scales]]\nname = \"s\"\n")

	overrides := func(c *config.Config) {
		c.App.StatePath = statePath
		c.App.LogLevel = "debug"
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	overrides(cfg)

	app, b := newTestApp(t, cfg, Options{ConfigPath: path, Overrides: overrides})
	b.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'r'})
	drag(b, 9, 2, 34, 2)
	b.PostEvent(quitKey())
	if err := runApp(t, app); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := app.Config().App.StatePath; got != statePath {
		t.Errorf("StatePath after reload = %q, want %q", got, statePath)
	}
	if got := app.Config().App.LogLevel; got != "debug" {
		t.Errorf("LogLevel after reload = %q, want debug", got)
	}
	saved, err := state.NewStore(statePath).Load()
	if err != nil {
		t.Fatalf("Load state: %v", err)
	}
	if diff := cmp.Diff(map[string]state.Values{"s": {A: 51, B: 100}}, saved); diff != "" {
		t.Errorf("saved mismatch (-want +got):\n%s", diff)
	}
}

func TestReloadFailureKeepsScales(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.toml")
	writeFile(t, path, "[[scales]]\nname = \"s\"\n")
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, path, "[[scale]\nbroken")

	app, b := newTestApp(t, cfg, Options{ConfigPath: path})
	b.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'r'})
	b.PostEvent(quitKey())
	if err := runApp(t, app); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if diff := cmp.Diff([]string{"s"}, app.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if !strings.HasPrefix(app.Status(), "reload "+path) {
		t.Errorf("status = %q", app.Status())
	}
}

func TestReloadWithoutConfigPath(t *testing.T) {
	app, b := newTestApp(t, singleScale(), Options{})
	b.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'r'})
	b.PostEvent(quitKey())
	if err := runApp(t, app); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if app.Status() != "no config file to reload" {
		t.Errorf("status = %q", app.Status())
	}
}

func TestDefaultLayoutWrapsColumns(t *testing.T) {
	app, b := newTestApp(t, config.Default(), Options{})
	b.PostEvent(backend.Event{Type: backend.EventResize, Width: 80, Height: 24})
	b.PostEvent(quitKey())
	if err := runApp(t, app); err != nil {
		t.Fatalf("Run: %v", err)
	}

	names := app.Names()
	if len(names) != 7 {
		t.Fatalf("got %d scales", len(names))
	}
	first, _ := app.Canvas(names[0])
	wrapped := false
	for i, name := range names {
		c, _ := app.Canvas(name)
		bi := c.Bounds()
		if bi.Bottom > 23 {
			t.Errorf("%s covers the status line: %+v", name, bi)
		}
		if bi.Left > first.Bounds().Left {
			wrapped = true
		}
		for _, other := range names[i+1:] {
			oc, _ := app.Canvas(other)
			bo := oc.Bounds()
			overlap := bi.Left < bo.Right && bo.Left < bi.Right && bi.Top < bo.Bottom && bo.Top < bi.Bottom
			if overlap {
				t.Errorf("%s %+v overlaps %s %+v", name, bi, other, bo)
			}
		}
	}
	if !wrapped {
		t.Error("expected scales to wrap into a second column")
	}
}

func TestTinyScreenStatus(t *testing.T) {
	app, err := New(singleScale(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	b := backend.NewNullBackend(20, 5)
	if err := app.SetBackend(b); err != nil {
		t.Fatal(err)
	}
	b.PostEvent(quitKey())
	if err := runApp(t, app); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(app.Status(), ErrScreenTooSmall.Error()) {
		t.Errorf("status = %q", app.Status())
	}
}

// resizingBackend applies resize events to the underlying NullBackend as
// they are polled, like a real terminal would.
type resizingBackend struct {
	*backend.NullBackend
}

func (b resizingBackend) PollEvent() backend.Event {
	ev := b.NullBackend.PollEvent()
	if ev.Type == backend.EventResize {
		if w, h := b.Size(); w != ev.Width || h != ev.Height {
			b.Resize(ev.Width, ev.Height)
		}
	}
	return ev
}

func TestResizeClearsTooSmall(t *testing.T) {
	app, err := New(singleScale(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	b := backend.NewNullBackend(20, 5)
	if err := app.SetBackend(resizingBackend{b}); err != nil {
		t.Fatal(err)
	}
	b.PostEvent(backend.Event{Type: backend.EventResize, Width: 80, Height: 24})
	b.PostEvent(quitKey())
	if err := runApp(t, app); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if app.Status() != "" {
		t.Errorf("status = %q, want cleared", app.Status())
	}
	if status := b.Row(23); !strings.HasPrefix(status, " s  0 .. 100") {
		t.Errorf("status line = %q", status)
	}
}
