// Package config loads user preferences from a TOML file with environment
// overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tuikit/internal/keys"
	"tuikit/internal/state"

	"github.com/pelletier/go-toml/v2"
)

const (
	EnvConfig = "TUIKIT_CONFIG"
	EnvWrap   = "TUIKIT_WRAP"
	EnvGlyphs = "TUIKIT_GLYPHS"
	EnvTheme  = "TUIKIT_THEME"
	EnvStore  = "TUIKIT_STORE"
)

type Config struct {
	// Wrap is the list wrap policy: wrap|clamp.
	Wrap string `toml:"wrap,omitempty"`
	// Glyphs selects the key glyph set: unicode|ascii.
	Glyphs string `toml:"glyphs,omitempty"`
	// Theme forces the background detection: light|dark|auto.
	Theme string `toml:"theme,omitempty"`
	// Store is the sqlite file backing the list demo.
	Store string `toml:"store,omitempty"`
	// Keys overrides key chords per action (see keys.Actions).
	Keys map[string][]string `toml:"keys,omitempty"`

	// Path is the file the config was read from, if any.
	Path string `toml:"-"`
}

// ParseError points at the offending spot of a config file.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DefaultPath is $XDG_CONFIG_HOME/tuikit/config.toml (or the platform
// equivalent).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "tuikit", "config.toml")
}

// DefaultStorePath is where the list demo keeps its items.
func DefaultStorePath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "tuikit", "items.sqlite")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "items.sqlite"
	}
	return filepath.Join(home, ".local", "share", "tuikit", "items.sqlite")
}

// ResolvePath picks the config file: explicit path, then TUIKIT_CONFIG, then
// DefaultPath.
func ResolvePath(explicit string) string {
	if p := strings.TrimSpace(explicit); p != "" {
		return p
	}
	if p := strings.TrimSpace(os.Getenv(EnvConfig)); p != "" {
		return p
	}
	return DefaultPath()
}

// Load reads path and applies environment overrides. A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := Decode(b, path, cfg); err != nil {
				return nil, err
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		cfg.Path = path
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode strictly parses TOML data into cfg. Unknown keys are an error so
// typos do not silently fall back to defaults.
func Decode(data []byte, source string, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		perr := &ParseError{Path: source, Msg: err.Error(), Err: err}
		var derr *toml.DecodeError
		var serr *toml.StrictMissingError
		switch {
		case errors.As(err, &derr):
			perr.Line, perr.Column = derr.Position()
			perr.Msg = derr.Error()
		case errors.As(err, &serr):
			perr.Msg = strings.TrimSpace(serr.String())
		}
		return perr
	}
	return nil
}

// Encode renders cfg as TOML, for `tuikit config` style dumps.
func Encode(cfg *Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvWrap)); v != "" {
		c.Wrap = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvGlyphs)); v != "" {
		c.Glyphs = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTheme)); v != "" {
		c.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvStore)); v != "" {
		c.Store = v
	}
}

// Validate checks every field that has a closed set of values.
func (c *Config) Validate() error {
	if _, err := state.ParseWrapPolicy(c.Wrap); err != nil {
		return fmt.Errorf("config wrap: %w", err)
	}
	if _, ok := keys.ParseGlyphSet(c.Glyphs); !ok {
		return fmt.Errorf("config glyphs: unknown glyph set %q (want unicode|ascii)", c.Glyphs)
	}
	switch strings.ToLower(strings.TrimSpace(c.Theme)) {
	case "", "auto", "light", "dark":
	default:
		return fmt.Errorf("config theme: unknown theme %q (want light|dark|auto)", c.Theme)
	}
	if _, err := c.Keymap(); err != nil {
		return fmt.Errorf("config keys: %w", err)
	}
	return nil
}

func (c *Config) WrapPolicy() state.WrapPolicy {
	w, err := state.ParseWrapPolicy(c.Wrap)
	if err != nil {
		return state.Wrap
	}
	return w
}

func (c *Config) GlyphSet() keys.GlyphSet {
	gs, _ := keys.ParseGlyphSet(c.Glyphs)
	return gs
}

// Keymap returns the default keymap with the configured overrides applied.
func (c *Config) Keymap() (*keys.Keymap, error) {
	km := keys.Default()
	if len(c.Keys) == 0 {
		return km, nil
	}
	if err := km.Apply(c.Keys); err != nil {
		return nil, err
	}
	return km, nil
}

// StorePath returns the configured store with ~ expanded, or the default.
func (c *Config) StorePath() string {
	p := strings.TrimSpace(c.Store)
	if p == "" {
		return DefaultStorePath()
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
