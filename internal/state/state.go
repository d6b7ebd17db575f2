// Package state saves cursor values between runs.
//
// The state file is JSON keyed by scale name:
//
//	{
//	  "version": 1,
//	  "saved_at": "2026-10-19T12:00:00Z",
//	  "scales": {
//	    "volume": {"a": 2.5, "b": 7}
//	  }
//	}
//
// Saving edits the existing document in place, so entries for scales that
// are not currently configured survive.
package state

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

const currentVersion = 1

// Errors returned when reading state.
var (
	// ErrCorrupt indicates the file is not valid JSON.
	ErrCorrupt = errors.New("state file is not valid JSON")

	// ErrUnsupportedVersion indicates a file written by a newer version.
	ErrUnsupportedVersion = errors.New("unsupported state file version")
)

// Values is the saved pair of cursor values of one scale.
type Values struct {
	A float64
	B float64
}

// Decode extracts the saved values. Entries without two numeric values
// are skipped.
func Decode(data []byte) (map[string]Values, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrCorrupt
	}
	if v := gjson.GetBytes(data, "version").Int(); v > currentVersion {
		return nil, fmt.Errorf("%w: %d (max supported: %d)", ErrUnsupportedVersion, v, currentVersion)
	}

	out := make(map[string]Values)
	gjson.GetBytes(data, "scales").ForEach(func(name, entry gjson.Result) bool {
		a, b := entry.Get("a"), entry.Get("b")
		if a.Type == gjson.Number && b.Type == gjson.Number {
			out[name.String()] = Values{A: a.Float(), B: b.Float()}
		}
		return true
	})
	return out, nil
}

// Encode merges values into an existing document. An empty or invalid
// existing document is replaced. Non-finite values are not stored.
func Encode(existing []byte, values map[string]Values, now time.Time) ([]byte, error) {
	doc := existing
	if len(doc) == 0 || !gjson.ValidBytes(doc) {
		doc = []byte("{}")
	}

	var err error
	if doc, err = sjson.SetBytes(doc, "version", currentVersion); err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, "saved_at", now.UTC().Format(time.RFC3339)); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		v := values[name]
		if !finite(v.A) || !finite(v.B) {
			continue
		}
		path := "scales." + escapePath(name)
		doc, err = sjson.SetBytes(doc, path, map[string]float64{"a": v.A, "b": v.B})
		if err != nil {
			return nil, fmt.Errorf("storing %q: %w", name, err)
		}
	}

	return pretty.Pretty(doc), nil
}

// escapePath quotes the characters that gjson and sjson treat as path
// syntax.
func escapePath(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '\\', '|', '#', '@', '!', ':':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Store reads and writes a state file.
type Store struct {
	path string
	now  func() time.Time
}

// NewStore creates a store for path.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Path returns the file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the saved values. A missing file yields an empty map.
func (s *Store) Load() (map[string]Values, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]Values{}, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	values, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return values, nil
}

// Save merges values into the file. The file is written atomically using a
// temporary file and rename.
func (s *Store) Save(values map[string]Values) error {
	existing, err := os.ReadFile(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read state file: %w", err)
	}

	data, err := Encode(existing, values, s.now())
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// DefaultPath returns the default state file location.
// On Unix-like systems: ~/.config/doublescale/state.json
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, "doublescale", "state.json"), nil
}
