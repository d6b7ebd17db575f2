// Package app provides the main application structure and coordination
// for the doublescale demo. It lays out a stack of range widgets on a
// terminal, routes pointer input to them and manages reload and
// persistence.
package app

import (
	"fmt"
	"runtime/debug"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dshills/doublescale/internal/config"
	"github.com/dshills/doublescale/internal/input/mouse"
	"github.com/dshills/doublescale/internal/renderer"
	"github.com/dshills/doublescale/internal/renderer/backend"
	"github.com/dshills/doublescale/internal/renderer/statusline"
	"github.com/dshills/doublescale/internal/scale"
	"github.com/dshills/doublescale/internal/state"
)

// Application owns the widgets and the event loop.
//
// All widget state is touched only from the goroutine running Run. Other
// goroutines communicate with the loop by posting interrupt events.
type Application struct {
	mu sync.Mutex

	cfg    *config.Config
	opts   Options
	logger *Logger

	backend backend.Backend
	panels  []*panel
	tracker *mouse.Tracker
	focused int

	store   *state.Store
	watcher *config.Watcher

	status *statusline.StatusLine
	dirty  bool

	running atomic.Bool
}

// Options configures the application.
type Options struct {
	// ConfigPath is reread on reload. Empty disables reload.
	ConfigPath string

	// LookupEnv resolves environment overrides on reload. Nil skips them.
	LookupEnv func(string) (string, bool)

	// Overrides is applied on reload after the environment, so settings
	// given on the command line survive a reload. Nil skips it.
	Overrides func(*config.Config)

	// Logger receives application logs. Nil uses NullLogger.
	Logger *Logger
}

// panel is one widget and the canvas it draws on.
type panel struct {
	name   string
	widget *scale.Widget
	canvas *renderer.Canvas
}

// interrupt payloads posted to the event loop.
type (
	reloadRequest struct{ event config.Event }
	quitRequest   struct{}
)

// New creates an application for a validated configuration.
func New(cfg *config.Config, opts Options) (*Application, error) {
	if opts.Logger == nil {
		opts.Logger = NullLogger
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg:     cfg,
		opts:    opts,
		logger:  opts.Logger,
		tracker: mouse.NewTracker(mouse.DefaultConfig()),
		status:  statusline.New(keyHints),
		dirty:   true,
	}
	if cfg.App.StatePath != "" {
		app.store = state.NewStore(cfg.App.StatePath)
	}
	return app, nil
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Run initializes the backend, builds the widgets and processes events
// until a quit key or Shutdown. Values are saved on the way out.
func (app *Application) Run() (err error) {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b == nil {
		return ErrNoBackend
	}

	if err := b.Init(); err != nil {
		return NewComponentError("backend", "init", err)
	}
	defer b.Shutdown()
	b.EnableMouse()

	defer func() {
		if r := recover(); r != nil {
			err = &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
		}
	}()

	if err := app.build(app.cfg); err != nil {
		return err
	}
	app.restore()
	app.startWatcher()

	loopErr := app.eventLoop()

	var errs ErrorList
	errs.Add(loopErr)
	errs.Add(app.stopWatcher())
	errs.Add(app.persist())
	return errs.AsError()
}

// Shutdown asks a running event loop to exit. It is safe to call from any
// goroutine.
func (app *Application) Shutdown() {
	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b == nil || !app.running.Load() {
		return
	}
	b.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: quitRequest{}})
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// Logger returns the application's logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Status returns the status line message, if any.
func (app *Application) Status() string {
	msg, _ := app.status.Message()
	return msg
}

// Widget returns the widget of the named scale.
func (app *Application) Widget(name string) (*scale.Widget, bool) {
	if p := app.panel(name); p != nil {
		return p.widget, true
	}
	return nil, false
}

// Canvas returns the canvas of the named scale.
func (app *Application) Canvas(name string) (*renderer.Canvas, bool) {
	if p := app.panel(name); p != nil {
		return p.canvas, true
	}
	return nil, false
}

// Names returns the scale names in layout order.
func (app *Application) Names() []string {
	names := make([]string, len(app.panels))
	for i, p := range app.panels {
		names[i] = p.name
	}
	return names
}

// Values returns the current values of every scale by name.
func (app *Application) Values() map[string]state.Values {
	out := make(map[string]state.Values, len(app.panels))
	for _, p := range app.panels {
		a, b := p.widget.Values()
		out[p.name] = state.Values{A: a, B: b}
	}
	return out
}

func (app *Application) panel(name string) *panel {
	for _, p := range app.panels {
		if p.name == name {
			return p
		}
	}
	return nil
}

// build creates a widget and canvas for every configured scale and lays
// them out. Initial values from the configuration are applied. cfg becomes
// the active configuration only if every widget was created.
func (app *Application) build(cfg *config.Config) error {
	opts := renderer.Options{CellWidth: cfg.App.CellWidth, CellHeight: cfg.App.CellHeight}

	panels := make([]*panel, 0, len(cfg.Scales))
	for _, sc := range cfg.Scales {
		wcfg, err := sc.ToScale()
		if err != nil {
			return NewOperationError("build", sc.Name, err)
		}
		canvas := renderer.NewCanvas(app.backend, opts)
		w, err := scale.New(wcfg, canvas)
		if err != nil {
			return NewOperationError("build", sc.Name, err)
		}
		if len(sc.Values) == 2 {
			w.SetValues(sc.Values[0], sc.Values[1])
		}
		canvas.SetSize(w.Size())

		p := &panel{name: sc.Name, widget: w, canvas: canvas}
		w.OnChange(app.changeHandler(p.name))
		panels = append(panels, p)
	}

	app.cfg = cfg
	app.panels = panels
	app.focused = 0
	app.tracker.Reset()
	app.layout()
	return nil
}

func (app *Application) changeHandler(name string) scale.ChangeFunc {
	log := app.logger.WithComponent("scale").WithField("scale", name)
	return func(a, b float64) {
		log.Debug("values changed to %v..%v", a, b)
		app.dirty = true
	}
}

// layout stacks canvases top to bottom, starting a new column when the
// next one would cover the status line.
func (app *Application) layout() {
	width, height := app.backend.Size()
	usable := height - 1

	col, row, colWidth := 1, 0, 0
	for _, p := range app.panels {
		b := p.canvas.Bounds()
		if row > 0 && row+b.Height() > usable {
			col += colWidth + 2
			row, colWidth = 0, 0
		}
		p.canvas.SetOrigin(col, row)
		row += b.Height() + app.cfg.App.Gap
		colWidth = max(colWidth, b.Width())
	}

	tooSmall := false
	if len(app.panels) > 0 {
		first := app.panels[0].canvas.Bounds()
		tooSmall = first.Width() > width || first.Height() > usable
	}
	msg, _ := app.status.Message()
	switch {
	case tooSmall:
		app.setStatus(fmt.Sprintf("%v: %dx%d", ErrScreenTooSmall, width, height), statusline.MessageWarning)
	case strings.HasPrefix(msg, ErrScreenTooSmall.Error()):
		app.setStatus("", statusline.MessageNone)
	}
	app.dirty = true
}

// restore applies saved values by scale name.
func (app *Application) restore() {
	if app.store == nil {
		return
	}
	log := app.logger.WithComponent("state")
	saved, err := app.store.Load()
	if err != nil {
		log.Warn("ignoring saved values: %v", err)
		return
	}
	names := make([]string, 0, len(saved))
	for name := range saved {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if p := app.panel(name); p != nil {
			v := saved[name]
			p.widget.SetValues(v.A, v.B)
		}
	}
	log.Info("restored values from %s", app.store.Path())
}

// persist saves the current values.
func (app *Application) persist() error {
	if app.store == nil {
		return nil
	}
	if err := app.store.Save(app.Values()); err != nil {
		return NewOperationError("save state", app.store.Path(), err)
	}
	app.logger.WithComponent("state").Info("saved values to %s", app.store.Path())
	return nil
}

// setStatus shows msg in place of the status bar. An empty msg restores
// the bar.
func (app *Application) setStatus(msg string, typ statusline.MessageType) {
	if msg == "" {
		app.status.ClearMessage()
	} else {
		app.status.SetMessage(msg, typ)
	}
	app.dirty = true
}

// startWatcher begins live reload when enabled. Failures only disable it.
func (app *Application) startWatcher() {
	if !app.cfg.App.Watch || app.opts.ConfigPath == "" {
		return
	}
	log := app.logger.WithComponent("watcher")
	w, err := config.NewWatcher(app.opts.ConfigPath)
	if err != nil {
		log.Warn("live reload disabled: %v", err)
		return
	}
	b := app.backend
	w.OnChange(func(ev config.Event) {
		b.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: reloadRequest{event: ev}})
	})
	app.watcher = w
	log.Info("watching %s", w.Path())
}

func (app *Application) stopWatcher() error {
	if app.watcher == nil {
		return nil
	}
	err := app.watcher.Close()
	app.watcher = nil
	if err != nil {
		return NewComponentError("watcher", "close", err)
	}
	return nil
}

