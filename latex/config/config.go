// config.go - configuration files
// Copyright (C) 2016  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package config holds the settings of a conversion run.  Settings are
// read from TOML or YAML files and can be overridden by command line
// flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"gopkg.in/yaml.v3"

	"github.com/seehuhn/texexpand/latex/engine"
)

// DefaultFileName is the name of the configuration file which is used
// if it exists in the current directory.
const DefaultFileName = "texexpand.toml"

// ErrUnknownFormat indicates that a configuration file name has neither
// a TOML nor a YAML extension.
var ErrUnknownFormat = errors.New("unknown configuration file format")

// Config describes how LaTeX files are expanded.
type Config struct {
	// SearchPath lists the directories where input files are looked
	// for, after the directory of the including file.
	SearchPath []string `toml:"search_path" yaml:"search_path"`

	// Kpsewhich enables the lookup of files in the local TeX
	// installation.
	Kpsewhich bool `toml:"kpsewhich" yaml:"kpsewhich"`

	// Encoding is the IANA name of the character set of the input
	// files.
	Encoding string `toml:"encoding" yaml:"encoding"`

	// LineWidth is the maximal length of output lines.  If LineWidth
	// is zero, paragraphs are written as single lines.
	LineWidth int `toml:"line_width" yaml:"line_width"`

	MaxExpansions   int `toml:"max_expansions" yaml:"max_expansions"`
	MaxIncludeDepth int `toml:"max_include_depth" yaml:"max_include_depth"`

	// OnUndefined selects what happens for undefined control
	// sequences: "error", "warn" or "ignore".
	OnUndefined string `toml:"on_undefined" yaml:"on_undefined"`

	// Macros are defined before the input is read.  The keys are
	// control sequence names without backslash, the values are the
	// macro bodies.
	Macros map[string]string `toml:"macros" yaml:"macros"`

	// Counters are created, if needed, and set to the given values.
	Counters map[string]int `toml:"counters" yaml:"counters"`

	// Verbatim lists additional environments whose body is copied to
	// the output without interpretation.
	Verbatim []string `toml:"verbatim" yaml:"verbatim"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Encoding:        "utf-8",
		LineWidth:       79,
		MaxExpansions:   engine.DefaultMaxExpansions,
		MaxIncludeDepth: engine.DefaultMaxIncludeDepth,
		OnUndefined:     "error",
	}
}

// Load reads a configuration file.  The format is chosen by the file
// name extension.  Values not given in the file keep their defaults.
// Unknown keys are an error.
func Load(fileName string) (*Config, error) {
	cfg := Default()
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".toml":
		md, err := toml.DecodeFile(fileName, cfg)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%s: unknown key %q", fileName, undecoded[0].String())
		}
	case ".yaml", ".yml":
		body, err := os.ReadFile(fileName)
		if err != nil {
			return nil, err
		}
		dec := yaml.NewDecoder(bytes.NewReader(body))
		dec.KnownFields(true)
		err = dec.Decode(cfg)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", fileName, err)
		}
	default:
		return nil, fmt.Errorf("%s: %w", fileName, ErrUnknownFormat)
	}
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (cfg *Config) Validate() error {
	if cfg.LineWidth < 0 || (cfg.LineWidth > 0 && cfg.LineWidth < 20) {
		return fmt.Errorf("invalid line width %d", cfg.LineWidth)
	}
	if cfg.MaxExpansions < 0 {
		return fmt.Errorf("invalid expansion limit %d", cfg.MaxExpansions)
	}
	if cfg.MaxIncludeDepth < 0 {
		return fmt.Errorf("invalid include depth %d", cfg.MaxIncludeDepth)
	}
	if _, err := cfg.UndefinedAction(); err != nil {
		return err
	}
	if _, err := cfg.TextEncoding(); err != nil {
		return err
	}
	for name := range cfg.Macros {
		if name == "" || strings.HasPrefix(name, `\`) {
			return fmt.Errorf("invalid macro name %q", name)
		}
	}
	return nil
}

// UndefinedAction converts OnUndefined into the corresponding engine
// setting.
func (cfg *Config) UndefinedAction() (engine.NotFoundAction, error) {
	switch cfg.OnUndefined {
	case "", "error":
		return engine.NotFoundError, nil
	case "warn":
		return engine.NotFoundWarn, nil
	case "ignore":
		return engine.NotFoundIgnore, nil
	}
	return 0, fmt.Errorf("invalid on_undefined value %q", cfg.OnUndefined)
}

// TextEncoding returns the character set of the input files.  The
// result is nil for UTF-8, which needs no decoding.
func (cfg *Config) TextEncoding() (encoding.Encoding, error) {
	switch strings.ToLower(cfg.Encoding) {
	case "", "utf-8", "utf8":
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(cfg.Encoding)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", cfg.Encoding)
	}
	return enc, nil
}

// Fingerprint returns a string which changes whenever a setting
// changes which affects the conversion result.
func (cfg *Config) Fingerprint() string {
	var names []string
	for name := range cfg.Macros {
		names = append(names, name)
	}
	sort.Strings(names)
	b := &strings.Builder{}
	fmt.Fprintf(b, "%q %t %q %d %d %d %q %v %v\n",
		cfg.SearchPath, cfg.Kpsewhich, cfg.Encoding, cfg.LineWidth,
		cfg.MaxExpansions, cfg.MaxIncludeDepth, cfg.OnUndefined,
		cfg.Counters, cfg.Verbatim)
	for _, name := range names {
		fmt.Fprintf(b, "%s=%q\n", name, cfg.Macros[name])
	}
	return b.String()
}
