// convert.go - convert LaTeX files to plain text
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

// Package latex expands LaTeX documents and converts them into plain
// text.
package latex

import (
	"fmt"
	"log"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/seehuhn/texexpand/latex/cache"
	"github.com/seehuhn/texexpand/latex/config"
	"github.com/seehuhn/texexpand/latex/engine"
	"github.com/seehuhn/texexpand/latex/kernel"
)

// Converter turns LaTeX input into plain text.  A Converter can be
// used concurrently, since every conversion uses a new engine.
type Converter struct {
	Config *config.Config

	// Cache, if set, is used to store and retrieve conversion results
	// for input files.
	Cache *cache.Cache

	// Debug enables tracing of all expansion steps.
	Debug bool
}

// NewConverter returns a converter using the given configuration.  If
// cfg is nil, the default configuration is used.
func NewConverter(cfg *config.Config) *Converter {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Converter{Config: cfg}
}

// Convert reads the given LaTeX input file and returns the text.
func Convert(inputFileName string) (string, error) {
	return NewConverter(nil).Convert(inputFileName)
}

// ConvertString converts LaTeX source text.
func ConvertString(text string) (string, error) {
	return NewConverter(nil).ConvertString(text, "input")
}

// Convert reads the given LaTeX input file and returns the text.
func (conv *Converter) Convert(inputFileName string) (string, error) {
	abs, err := filepath.Abs(inputFileName)
	if err != nil {
		return "", err
	}
	key := abs + "\x00" + conv.Config.Fingerprint()
	if conv.Cache != nil {
		res, err := conv.Cache.Get(key)
		if err == nil {
			log.Println("using cached result for", inputFileName)
			return res.Output, nil
		}
	}

	run := func(e *engine.Engine) error {
		return e.ParseFile(abs)
	}
	out, files, err := conv.run(run)
	if err != nil {
		return "", err
	}

	if conv.Cache != nil {
		deps := make(map[string]string, len(files))
		for _, name := range files {
			sum, err := cache.HashFile(name)
			if err != nil {
				return "", err
			}
			deps[name] = sum
		}
		err = conv.Cache.Put(key, &cache.Entry{Output: out, Deps: deps})
		if err != nil {
			log.Println("cannot store result:", err)
		}
	}
	return out, nil
}

// ConvertString converts LaTeX source text.  The name is used in error
// messages.
func (conv *Converter) ConvertString(text, name string) (string, error) {
	out, _, err := conv.run(func(e *engine.Engine) error {
		return e.ParseString(text, name)
	})
	return out, err
}

// run performs the two passes.  The first pass collects the targets of
// cross-references, the second pass generates the output.
func (conv *Converter) run(parse func(e *engine.Engine) error) (string, []string, error) {
	labels, err := conv.pass1(parse)
	if err != nil {
		return "", nil, err
	}
	return conv.pass2(parse, labels)
}

// newEngine returns an engine with the built-in commands and the
// predefined macros and counters of the configuration.
func (conv *Converter) newEngine(app engine.App, out engine.Output, labels engine.LabelStore) (*engine.Engine, error) {
	cfg := conv.Config
	e := engine.New()
	e.App = app
	e.Out = out
	e.Labels = labels
	e.MaxExpansions = cfg.MaxExpansions
	e.MaxIncludeDepth = cfg.MaxIncludeDepth
	e.Debug = conv.Debug
	action, err := cfg.UndefinedAction()
	if err != nil {
		return nil, err
	}
	e.Undefined = action
	e.Encoding, err = cfg.TextEncoding()
	if err != nil {
		return nil, err
	}

	err = kernel.Install(e)
	if err != nil {
		return nil, err
	}
	for _, name := range cfg.Verbatim {
		kernel.DefineVerbatim(e, name)
	}
	preamble := conv.preamble(e)
	if preamble != "" {
		err = e.ParseString(preamble, "config")
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}

var paramRegexp = regexp.MustCompile(`#([1-9])`)

// preamble returns TeX code which defines the predefined macros and
// counters.
func (conv *Converter) preamble(e *engine.Engine) string {
	cfg := conv.Config
	b := &strings.Builder{}

	var names []string
	for name := range cfg.Macros {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		body := cfg.Macros[name]
		n := 0
		for _, m := range paramRegexp.FindAllStringSubmatch(body, -1) {
			k, _ := strconv.Atoi(m[1])
			if k > n {
				n = k
			}
		}
		var params strings.Builder
		for i := 1; i <= n; i++ {
			params.WriteString("#" + strconv.Itoa(i))
		}
		fmt.Fprintf(b, `\expandafter\gdef\csname %s\endcsname%s{%s}`,
			name, params.String(), body)
	}

	names = names[:0]
	for name := range cfg.Counters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !e.Counters.Has(name) {
			fmt.Fprintf(b, `\newcounter{%s}`, name)
		}
		fmt.Fprintf(b, `\setcounter{%s}{%d}`, name, cfg.Counters[name])
	}
	return b.String()
}

func (conv *Converter) fileApp() *engine.FileApp {
	return &engine.FileApp{
		SearchPath:   conv.Config.SearchPath,
		UseKpsewhich: conv.Config.Kpsewhich,
	}
}
