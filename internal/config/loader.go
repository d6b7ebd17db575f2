package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a configuration file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFor returns the format implied by a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Load reads a configuration file over the defaults. An empty path or a
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	return Parse(path, data, format)
}

// Parse decodes data over the defaults. source names the data in errors.
func Parse(source string, data []byte, format Format) (*Config, error) {
	cfg := Default()
	defaults := cfg.Scales
	cfg.Scales = nil

	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, tomlParseError(source, err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if cfg.Scales == nil {
		cfg.Scales = defaults
	} else {
		for i := range cfg.Scales {
			cfg.Scales[i].fillDefaults(i)
		}
	}
	return cfg, nil
}

func tomlParseError(source string, err error) error {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}
	var de *toml.DecodeError
	if errors.As(err, &de) {
		pe.Line, pe.Column = de.Position()
	}
	return pe
}

// Environment variables read by ApplyEnv.
const (
	EnvLogLevel   = "DOUBLESCALE_LOG_LEVEL"
	EnvCellWidth  = "DOUBLESCALE_CELL_WIDTH"
	EnvCellHeight = "DOUBLESCALE_CELL_HEIGHT"
	EnvState      = "DOUBLESCALE_STATE"
)

// ApplyEnv overrides app settings from the environment. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok {
		c.App.LogLevel = v
	}
	if v, ok := lookup(EnvState); ok {
		c.App.StatePath = v
	}
	for _, f := range []struct {
		env string
		dst *float64
	}{
		{EnvCellWidth, &c.App.CellWidth},
		{EnvCellHeight, &c.App.CellHeight},
	} {
		v, ok := lookup(f.env)
		if !ok {
			continue
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return &ValidationError{Path: f.env, Message: "not a number", Value: v, Err: err}
		}
		*f.dst = n
	}
	return nil
}
