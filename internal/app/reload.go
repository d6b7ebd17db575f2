package app

import (
	"github.com/dshills/doublescale/internal/config"
	"github.com/dshills/doublescale/internal/renderer/statusline"
	"github.com/dshills/doublescale/internal/state"
)

// reload rereads the configuration file and rebuilds the widgets. Values
// carry over to scales with the same name; a drag in progress is dropped.
// On failure the current configuration stays in place.
func (app *Application) reload(ev *config.Event) error {
	log := app.logger.WithComponent("config")
	path := app.opts.ConfigPath
	if path == "" {
		app.setStatus("no config file to reload", statusline.MessageInfo)
		return nil
	}
	if ev != nil {
		log.Debug("%s on %s", ev.Op, ev.Path)
	}

	cfg, err := config.Load(path)
	if err == nil && app.opts.LookupEnv != nil {
		err = cfg.ApplyEnv(app.opts.LookupEnv)
	}
	if err == nil && app.opts.Overrides != nil {
		app.opts.Overrides(cfg)
	}
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		return NewOperationError("reload", path, err)
	}

	values := app.Values()
	app.cancelDrags()

	buildErr := app.build(cfg)
	if buildErr != nil {
		if err := app.build(app.cfg); err != nil {
			log.Error("restoring previous scales: %v", err)
		}
	}

	for name, v := range values {
		if p := app.panel(name); p != nil {
			p.widget.SetValues(v.A, v.B)
		}
	}
	if buildErr != nil {
		return NewOperationError("reload", path, buildErr)
	}

	app.store = nil
	if cfg.App.StatePath != "" {
		app.store = state.NewStore(cfg.App.StatePath)
	}
	app.logger.SetLevel(ParseLogLevel(cfg.App.LogLevel))
	app.setStatus("", statusline.MessageNone)
	log.Info("reloaded %s: %d scales", path, len(app.panels))
	return nil
}
