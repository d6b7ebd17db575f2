package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/doublescale/internal/renderer/core"
	"github.com/dshills/doublescale/internal/scale"
)

// Config is the complete demo configuration.
type Config struct {
	App    AppConfig     `toml:"app" yaml:"app"`
	Scales []ScaleConfig `toml:"scales" yaml:"scales"`
}

// AppConfig holds host settings.
type AppConfig struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level" yaml:"log_level"`
	// LogFile receives log output. Empty discards logs while the
	// terminal is in use.
	LogFile string `toml:"log_file" yaml:"log_file"`
	// StatePath is where values are saved on exit. Empty disables
	// persistence.
	StatePath string `toml:"state" yaml:"state"`
	// CellWidth and CellHeight give widget units per terminal cell.
	CellWidth  float64 `toml:"cell_width" yaml:"cell_width"`
	CellHeight float64 `toml:"cell_height" yaml:"cell_height"`
	// Gap is the number of blank rows between scales.
	Gap int `toml:"gap" yaml:"gap"`
	// Watch enables live reload of the configuration file.
	Watch bool `toml:"watch" yaml:"watch"`
}

// FontConfig mirrors scale.Font.
type FontConfig struct {
	Family     string  `toml:"family" yaml:"family"`
	CharWidth  float64 `toml:"char_width" yaml:"char_width"`
	LineHeight float64 `toml:"line_height" yaml:"line_height"`
	Ascent     float64 `toml:"ascent" yaml:"ascent"`
}

// IsZero reports whether no metric was set.
func (f FontConfig) IsZero() bool {
	return f.CharWidth == 0 && f.LineHeight == 0 && f.Ascent == 0
}

// ScaleConfig is the file form of one scale. Colors are strings accepted
// by core.ParseColor.
type ScaleConfig struct {
	Name        string     `toml:"name" yaml:"name"`
	From        float64    `toml:"from" yaml:"from"`
	To          float64    `toml:"to" yaml:"to"`
	Length      float64    `toml:"length" yaml:"length"`
	Thickness   float64    `toml:"thickness" yaml:"thickness"`
	CursorWidth float64    `toml:"cursor_width" yaml:"cursor_width"`
	Decimals    int        `toml:"decimals" yaml:"decimals"`
	BgColor     string     `toml:"bg_color" yaml:"bg_color"`
	CursorColor string     `toml:"cursor_color" yaml:"cursor_color"`
	TextColor   string     `toml:"text_color" yaml:"text_color"`
	LightFactor float64    `toml:"light_factor" yaml:"light_factor"`
	DarkFactor  float64    `toml:"dark_factor" yaml:"dark_factor"`
	Font        FontConfig `toml:"font" yaml:"font"`
	// Values optionally sets the initial cursor values [a, b].
	Values []float64 `toml:"values" yaml:"values"`
}

// DemoFont is sized so one label character covers one default cell.
var DemoFont = FontConfig{CharWidth: 2, LineHeight: 8, Ascent: 6}

// DefaultApp returns the default host settings.
func DefaultApp() AppConfig {
	return AppConfig{
		LogLevel:   "info",
		CellWidth:  2,
		CellHeight: 4,
		Gap:        1,
	}
}

// DefaultScale returns the base scale every omitted field falls back to.
func DefaultScale() ScaleConfig {
	return ScaleConfig{
		From:        0,
		To:          100,
		Length:      100,
		Thickness:   8,
		CursorWidth: 10,
		BgColor:     "#bbb",
		CursorColor: "#eee",
		TextColor:   "black",
		LightFactor: 1.5,
		DarkFactor:  0.5,
		Font:        DemoFont,
	}
}

// Default returns the demo configuration: seven scales exercising the
// range, precision, color and size options.
func Default() *Config {
	base := DefaultScale()
	with := func(name string, edit func(*ScaleConfig)) ScaleConfig {
		s := base
		s.Name = name
		if edit != nil {
			edit(&s)
		}
		return s
	}

	return &Config{
		App: DefaultApp(),
		Scales: []ScaleConfig{
			with("large-font", func(s *ScaleConfig) {
				s.Font = FontConfig{Family: "Calibri", CharWidth: 4, LineHeight: 12, Ascent: 8}
			}),
			with("tenths", func(s *ScaleConfig) {
				s.To = 10
				s.Decimals = 1
			}),
			with("unit", func(s *ScaleConfig) {
				s.To = 1
				s.Decimals = -2
			}),
			with("signed", func(s *ScaleConfig) {
				s.From = -100
			}),
			with("colored", func(s *ScaleConfig) {
				s.CursorColor = "blue"
				s.BgColor = "#0ff"
				s.TextColor = "blue"
			}),
			with("short", func(s *ScaleConfig) {
				s.Length = 50
				s.CursorWidth = 5
				s.Font = FontConfig{Family: "Calibri", CharWidth: 2, LineHeight: 4, Ascent: 2}
			}),
			with("wide", func(s *ScaleConfig) {
				s.Length = 200
				s.Thickness = 30
				s.CursorWidth = 30
			}),
		},
	}
}

// fillDefaults completes a scale read from a file.
func (s *ScaleConfig) fillDefaults(index int) {
	base := DefaultScale()
	if s.Name == "" {
		s.Name = fmt.Sprintf("scale-%d", index+1)
	}
	if s.From == 0 && s.To == 0 {
		s.To = base.To
	}
	if s.Length == 0 {
		s.Length = base.Length
	}
	if s.Thickness == 0 {
		s.Thickness = base.Thickness
	}
	if s.CursorWidth == 0 {
		s.CursorWidth = base.CursorWidth
	}
	if s.BgColor == "" {
		s.BgColor = base.BgColor
	}
	if s.CursorColor == "" {
		s.CursorColor = base.CursorColor
	}
	if s.TextColor == "" {
		s.TextColor = base.TextColor
	}
	if s.Font.IsZero() {
		s.Font = base.Font
	}
}

// ToScale converts the file form into a widget configuration. Only color
// parsing can fail here; geometry is checked by scale.Config.Validate.
func (s ScaleConfig) ToScale() (scale.Config, error) {
	bg, err := core.ParseColor(s.BgColor)
	if err != nil {
		return scale.Config{}, &ValidationError{Path: "bg_color", Value: s.BgColor, Err: err}
	}
	cursor, err := core.ParseColor(s.CursorColor)
	if err != nil {
		return scale.Config{}, &ValidationError{Path: "cursor_color", Value: s.CursorColor, Err: err}
	}
	text, err := core.ParseColor(s.TextColor)
	if err != nil {
		return scale.Config{}, &ValidationError{Path: "text_color", Value: s.TextColor, Err: err}
	}

	return scale.Config{
		From:        s.From,
		To:          s.To,
		Length:      s.Length,
		Thickness:   s.Thickness,
		CursorWidth: s.CursorWidth,
		Decimals:    s.Decimals,
		BgColor:     bg,
		CursorColor: cursor,
		TextColor:   text,
		LightFactor: s.LightFactor,
		DarkFactor:  s.DarkFactor,
		Font: scale.Font{
			Family:     s.Font.Family,
			CharWidth:  s.Font.CharWidth,
			LineHeight: s.Font.LineHeight,
			Ascent:     s.Font.Ascent,
		},
	}, nil
}

var logLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "warning": true, "error": true,
}

// Validate checks the whole configuration. The first failure is returned
// as a *ValidationError.
func (c *Config) Validate() error {
	app := c.App
	if !logLevels[strings.ToLower(app.LogLevel)] {
		return &ValidationError{Path: "app.log_level", Message: "unknown level", Value: app.LogLevel}
	}
	if !(app.CellWidth > 0) {
		return &ValidationError{Path: "app.cell_width", Message: "must be positive", Value: app.CellWidth}
	}
	if !(app.CellHeight > 0) {
		return &ValidationError{Path: "app.cell_height", Message: "must be positive", Value: app.CellHeight}
	}
	if app.Gap < 0 {
		return &ValidationError{Path: "app.gap", Message: "must not be negative", Value: app.Gap}
	}

	if len(c.Scales) == 0 {
		return &ValidationError{Path: "scales", Message: "at least one scale is required", Value: 0}
	}
	seen := make(map[string]int, len(c.Scales))
	for i, s := range c.Scales {
		path := fmt.Sprintf("scales[%d]", i)
		if s.Name == "" {
			return &ValidationError{Path: path + ".name", Message: "must not be empty", Value: s.Name}
		}
		if j, dup := seen[s.Name]; dup {
			return &ValidationError{
				Path:    path + ".name",
				Message: fmt.Sprintf("duplicate of scales[%d]", j),
				Value:   s.Name,
			}
		}
		seen[s.Name] = i

		if len(s.Values) != 0 && len(s.Values) != 2 {
			return &ValidationError{Path: path + ".values", Message: "must hold exactly two values", Value: s.Values}
		}

		sc, err := s.ToScale()
		if err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				ve.Path = path + "." + ve.Path
			}
			return err
		}
		if err := sc.Normalized().Validate(); err != nil {
			return &ValidationError{Path: path, Err: err}
		}
	}
	return nil
}

// Scale returns the scale with the given name.
func (c *Config) Scale(name string) (ScaleConfig, bool) {
	for _, s := range c.Scales {
		if s.Name == name {
			return s, true
		}
	}
	return ScaleConfig{}, false
}
