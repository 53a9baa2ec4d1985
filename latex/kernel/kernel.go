// kernel.go - the built-in command catalog
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

// Package kernel implements a practical subset of the TeX primitives
// and of the LaTeX kernel on top of the expansion engine.
//
// Install registers all commands, environments and counters on an
// engine.  Commands which need the "@" character in their names, like
// \@for, are only reachable after \makeatletter, as in LaTeX.
package kernel

import (
	"github.com/seehuhn/texexpand/latex/engine"
	"github.com/seehuhn/texexpand/latex/token"
)

// Install registers the built-in commands on e.
func Install(e *engine.Engine) error {
	addPrimitives(e)
	addConditionals(e)
	addRegisters(e)
	addDefinitions(e)
	addUtilities(e)
	addFiles(e)
	addFonts(e)
	addMath(e)
	addText(e)
	addEnvironments(e)
	addXref(e)
	addTheorems(e)
	err := addLists(e)
	if err != nil {
		return err
	}
	err = addCounters(e)
	if err != nil {
		return err
	}
	return addLengths(e)
}

func def(e *engine.Engine, cmd engine.Command) {
	e.Registry.PutGlobal(cmd.Name(), cmd)
}

func defProcessor(e *engine.Engine, name string, fn func(e *engine.Engine, s *engine.Stack) error) {
	def(e, engine.NewProcessor(name, fn))
}

func defExpandable(e *engine.Engine, name string, fn func(e *engine.Engine, s *engine.Stack) (token.List, error)) {
	def(e, engine.NewExpandable(name, fn))
}

// popCsName removes a control sequence or active character which is
// not enclosed in braces, as in \def\foo.
func popCsName(s *engine.Stack) (string, error) {
	tok, err := s.PopToken(engine.PopIgnoreLeadingSpace)
	if err != nil {
		return "", err
	}
	if tok == nil {
		return "", engine.ErrCsExpected.With()
	}
	name, ok := tok.CsName()
	if !ok {
		s.Push(tok)
		return "", engine.ErrCsExpected.With()
	}
	return name, nil
}

// popCsArg removes a control sequence which may be enclosed in
// braces, as in \newcommand{\foo}.
func popCsArg(s *engine.Stack) (string, error) {
	tok, err := s.PopControlSequence()
	if err != nil {
		return "", err
	}
	name, _ := tok.CsName()
	return name, nil
}

// popArgs removes n mandatory arguments.
func popArgs(s *engine.Stack, n int) ([]token.List, error) {
	args := make([]token.List, n)
	for i := range args {
		arg, err := s.PopArg(0)
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}
	return args, nil
}

// csToken returns a reference to the control sequence `name`.  Like
// \csname, an undefined name is made equal to \relax.
func csToken(e *engine.Engine, name string) *token.Token {
	if e.Lookup(name) == nil {
		e.Registry.PutLocal(name, engine.Relax)
	}
	return token.NewCs(name)
}
