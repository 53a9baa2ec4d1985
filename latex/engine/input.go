// input.go - reading input files
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

package engine

import (
	"path/filepath"

	"github.com/seehuhn/texexpand/latex/token"
	"github.com/seehuhn/texexpand/latex/tokenizer"
)

// ParseString processes the given TeX source text.  The name is used
// in error messages.
func (e *Engine) ParseString(text, name string) error {
	t := e.newTokenizer()
	t.Prepend([]byte(text), name)
	return e.run(t)
}

// ParseFile processes a complete input file.  Processing is finished,
// or has failed, when the method returns.
func (e *Engine) ParseFile(fileName string) error {
	t := e.newTokenizer()
	if t.Depth() > e.MaxIncludeDepth && e.MaxIncludeDepth > 0 {
		return newError(ErrIncludeDepth, fileName)
	}
	if abs, err := filepath.Abs(fileName); err == nil {
		fileName = abs
	}
	err := t.Include(fileName)
	if err != nil {
		return err
	}
	e.Files = append(e.Files, fileName)
	return e.run(t)
}

func (e *Engine) newTokenizer() *tokenizer.Tokenizer {
	t := tokenizer.NewTokenizer(e.Settings)
	t.Encoding = e.Encoding
	if n := len(e.inputs); n > 0 {
		parent := e.inputs[n-1]
		t.Parent = &parent.Scanner
		t.BaseDir = parent.BaseDir
	}
	return t
}

func (e *Engine) run(t *tokenizer.Tokenizer) error {
	e.inputs = append(e.inputs, t)
	defer func() {
		e.inputs = e.inputs[:len(e.inputs)-1]
		t.Close()
	}()
	depth := e.Settings.Depth()
	s := NewSourceStack(t)
	err := e.Process(s)
	if err != nil {
		e.Unwind(depth, s)
	}
	return err
}

// Tokenize splits text into tokens, using the current category codes.
func (e *Engine) Tokenize(text string) (token.List, error) {
	return tokenizer.Tokenize(text, e.Settings)
}

// FindFile locates an input file, first relative to the directory of
// the current input file and then using the App.
func (e *Engine) FindFile(name string) (string, error) {
	if n := len(e.inputs); n > 0 && !filepath.IsAbs(name) {
		if dir := e.inputs[n-1].BaseDir; dir != "" {
			for _, candidate := range fileCandidates(name) {
				path := filepath.Join(dir, candidate)
				if e.App.FileExists(path) {
					return path, nil
				}
			}
		}
	}
	if filepath.IsAbs(name) {
		for _, candidate := range fileCandidates(name) {
			if e.App.FileExists(candidate) {
				return candidate, nil
			}
		}
	}
	return e.App.Kpsewhich(name)
}

// Input processes the file `name` synchronously.  The return value
// tells whether the file was found; action selects what happens
// otherwise.
func (e *Engine) Input(name string, action NotFoundAction) (bool, error) {
	path, err := e.FindFile(name)
	if err != nil {
		return false, err
	}
	if path == "" {
		switch action {
		case NotFoundError:
			return false, newError(ErrFileNotFound, name)
		case NotFoundWarn:
			e.Warning(newError(ErrFileNotFound, name).Error())
		}
		return false, nil
	}
	return true, e.ParseFile(path)
}

// RawInput returns the tokenizer feeding s, if the next token of s will
// be read directly from the input.  Commands like \verb use this to
// read input without tokenization.  The result is nil if tokens are
// pending.
func (e *Engine) RawInput(s *Stack) *tokenizer.Tokenizer {
	if s.pending() > 0 {
		return nil
	}
	t, _ := s.src.(*tokenizer.Tokenizer)
	return t
}
