// main.go -
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

package main

import (
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/seehuhn/texexpand/latex"
	"github.com/seehuhn/texexpand/latex/cache"
	"github.com/seehuhn/texexpand/latex/config"
	"github.com/seehuhn/texexpand/latex/queue"
)

var (
	configFile = flag.String("config", "", "the configuration file (TOML or YAML)")
	output     = flag.String("output", "", "the output file name, or a directory for several inputs")
	encoding   = flag.String("encoding", "", "the character set of the input files")
	width      = flag.Int("width", -1, "the maximal line width, 0 to disable filling")
	cacheDir   = flag.String("cache-dir", "", "the cache directory")
	noCache    = flag.Bool("no-cache", false, "disable the result cache")
	cacheLimit = flag.Int64("cache-limit", 64<<20, "the maximal cache size in bytes")
	workers    = flag.Int("workers", 0, "the number of files converted in parallel")
	debug      = flag.Bool("debug", false, "trace all expansion steps")
	undefined  = flag.String("undefined", "", "the reaction to undefined control sequences (error, warn or ignore)")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}
	conv := latex.NewConverter(cfg)
	conv.Debug = *debug

	if flag.NArg() == 0 {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			log.Fatal("usage: texexpand [options] <input.tex>...")
		}
		in, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal(err)
		}
		text, err := conv.ConvertString(string(in), "<stdin>")
		if err != nil {
			log.Fatal(err)
		}
		err = writeOutput(*output, text)
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	if !*noCache {
		c, err := cache.NewCache(*cacheDir)
		if err != nil {
			log.Fatal(err)
		}
		conv.Cache = c
	}

	inputs := flag.Args()
	failed := false
	for _, res := range queue.Run(*workers, inputs, conv.Convert) {
		if res.Err != nil {
			log.Printf("%s: %v", res.Name, res.Err)
			failed = true
			continue
		}
		err := writeOutput(outputName(res.Name, len(inputs)), res.Output)
		if err != nil {
			log.Println(err)
			failed = true
		}
	}
	if conv.Cache != nil {
		err := conv.Cache.Close(*cacheLimit)
		if err != nil {
			log.Println(err)
		}
	}
	if failed {
		os.Exit(1)
	}
}

// loadConfig reads the configuration file given on the command line,
// or "texexpand.toml" from the current directory if present, and
// applies the command line overrides.
func loadConfig() (*config.Config, error) {
	fileName := *configFile
	if fileName == "" {
		if _, err := os.Stat(config.DefaultFileName); err == nil {
			fileName = config.DefaultFileName
		}
	}

	cfg := config.Default()
	if fileName != "" {
		var err error
		cfg, err = config.Load(fileName)
		if err != nil {
			return nil, err
		}
	}

	if *encoding != "" {
		cfg.Encoding = *encoding
	}
	if *width >= 0 {
		cfg.LineWidth = *width
	}
	if *undefined != "" {
		cfg.OnUndefined = *undefined
	}
	return cfg, cfg.Validate()
}

// outputName returns the output file for input.  For a single input,
// the -output flag names the file.  Otherwise it names a directory.
func outputName(input string, n int) string {
	if n == 1 {
		return *output
	}
	base := strings.TrimSuffix(filepath.Base(input), ".tex") + ".txt"
	if *output == "" {
		return base
	}
	return filepath.Join(*output, base)
}

func writeOutput(fileName, text string) error {
	if fileName == "" || fileName == "-" {
		_, err := io.WriteString(os.Stdout, text)
		return err
	}
	log.Println("writing", fileName)
	return os.WriteFile(fileName, []byte(text), 0644)
}
