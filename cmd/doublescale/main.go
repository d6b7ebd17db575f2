// Package main is the entry point for the doublescale demo.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/doublescale/internal/app"
	"github.com/dshills/doublescale/internal/config"
	"github.com/dshills/doublescale/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	logLevel   string
	logFile    string
	statePath  string
	watch      bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: doublescale needs an interactive terminal")
		return 1
	}

	// The terminal owns stdout and stderr while running, so logs only go
	// to a file.
	var out io.Writer = io.Discard
	if cfg.App.LogFile != "" {
		f, err := app.OpenLogFile(cfg.App.LogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		out = f
	}
	logger := app.NewLogger(app.LoggerConfig{
		Level:  app.ParseLogLevel(cfg.App.LogLevel),
		Output: out,
		Prefix: "doublescale",
	})

	application, err := app.New(cfg, app.Options{
		ConfigPath: opts.configPath,
		LookupEnv:  os.LookupEnv,
		Overrides:  opts.apply,
		Logger:     logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	terminal, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(terminal); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		<-signals
		application.Shutdown()
	}()

	logger.Info("starting %s with %d scales", version, len(cfg.Scales))
	if err := application.Run(); err != nil {
		logger.Error("exited: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig layers the file, the environment and the command line, in
// that order.
func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	opts.apply(cfg)
	return cfg, cfg.Validate()
}

// apply overlays the settings given on the command line.
func (opts options) apply(cfg *config.Config) {
	if opts.logLevel != "" {
		cfg.App.LogLevel = opts.logLevel
	}
	if opts.logFile != "" {
		cfg.App.LogFile = opts.logFile
	}
	if opts.statePath != "" {
		cfg.App.StatePath = opts.statePath
	}
	if opts.watch {
		cfg.App.Watch = true
	}
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to a TOML or YAML configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	flag.StringVar(&opts.statePath, "state", "", "Save and restore values in this file")
	flag.BoolVar(&opts.watch, "watch", false, "Reload the configuration file when it changes")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "doublescale - dual-cursor range selector demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: doublescale [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		fmt.Fprintf(os.Stderr, "  %s, %s, %s, %s\n",
			config.EnvLogLevel, config.EnvCellWidth, config.EnvCellHeight, config.EnvState)
		fmt.Fprintf(os.Stderr, "\nKeys: drag a cursor with the left button, r reloads, q quits.\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("doublescale %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}
	return opts
}
