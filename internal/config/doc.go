// Package config provides configuration for the doublescale demo.
//
// Configuration comes from three sources, later ones overriding earlier:
//
//  1. Built-in defaults (Default): the demo stack of seven scales
//  2. A TOML or YAML file (Load), chosen by extension
//  3. Environment variables (ApplyEnv) with the DOUBLESCALE_ prefix
//
// # File Format
//
// TOML:
//
//	[app]
//	log_level = "debug"
//	cell_width = 2
//
//	[[scales]]
//	name = "volume"
//	to = 10
//	decimals = 1
//	cursor_color = "blue"
//
// YAML uses the same keys; both formats list scales under "scales".
//
// A file that lists scales replaces the default stack. Omitted scale fields
// take the demo defaults; a scale with neither from nor to spans 0..100.
//
// # Live Reload
//
// Watcher observes the configuration file through fsnotify and calls its
// handlers once per burst of writes:
//
//	w, err := config.NewWatcher(path, config.WithDebounce(200*time.Millisecond))
//	w.OnChange(func(ev config.Event) { reload() })
//	defer w.Close()
package config
