// command.go -
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
	"github.com/seehuhn/texexpand/latex/token"
)

// Command is an entry of the registry.  Every command implements at
// least one of Expandable and Processor.
type Command interface {
	Name() string
}

// Expandable commands can be replaced by other tokens without side
// effects.  ExpandOnce reads the command's arguments from s and
// returns the replacement text.
type Expandable interface {
	Command
	ExpandOnce(e *Engine, s *Stack) (token.List, error)
}

// Processor commands have side effects, for example definitions,
// assignments or output.
type Processor interface {
	Command
	Process(e *Engine, s *Stack) error
}

// Declaration is a processor with an end action.  When a declaration
// is used as an environment, End is called by \end.  Otherwise End is
// called when the enclosing group ends.
type Declaration interface {
	Processor
	End(e *Engine, s *Stack) error
}

// ModeSwitcher is implemented by declarations which change the
// typesetting mode.
type ModeSwitcher interface {
	Declaration
	SwitchesMode() bool
}

type expandFunc struct {
	name string
	fn   func(e *Engine, s *Stack) (token.List, error)
}

// NewExpandable returns an expandable command implemented by fn.
func NewExpandable(name string, fn func(e *Engine, s *Stack) (token.List, error)) Expandable {
	return &expandFunc{name: name, fn: fn}
}

func (cmd *expandFunc) Name() string {
	return cmd.name
}

func (cmd *expandFunc) ExpandOnce(e *Engine, s *Stack) (token.List, error) {
	return cmd.fn(e, s)
}

type processFunc struct {
	name string
	fn   func(e *Engine, s *Stack) error
}

// NewProcessor returns a command with side effects implemented by fn.
func NewProcessor(name string, fn func(e *Engine, s *Stack) error) Processor {
	return &processFunc{name: name, fn: fn}
}

func (cmd *processFunc) Name() string {
	return cmd.name
}

func (cmd *processFunc) Process(e *Engine, s *Stack) error {
	return cmd.fn(e, s)
}

// DeclarationFuncs implements Declaration using a pair of functions.
// A nil EndFunc does nothing.
type DeclarationFuncs struct {
	CsName    string
	BeginFunc func(e *Engine, s *Stack) error
	EndFunc   func(e *Engine, s *Stack) error
}

// Name implements the Command interface.
func (d *DeclarationFuncs) Name() string {
	return d.CsName
}

// Process implements the Processor interface.
func (d *DeclarationFuncs) Process(e *Engine, s *Stack) error {
	if d.BeginFunc == nil {
		return nil
	}
	return d.BeginFunc(e, s)
}

// End implements the Declaration interface.
func (d *DeclarationFuncs) End(e *Engine, s *Stack) error {
	if d.EndFunc == nil {
		return nil
	}
	return d.EndFunc(e, s)
}

// CharCommand is the meaning of a control sequence which was \let to a
// character token, e.g. \bgroup.
type CharCommand struct {
	CsName string
	Tok    *token.Token
}

// Name implements the Command interface.
func (c *CharCommand) Name() string {
	return c.CsName
}

// Process pushes the character onto the stack, so that it is
// processed as if it had appeared in the input.
func (c *CharCommand) Process(e *Engine, s *Stack) error {
	s.Push(c.Tok.Clone())
	return nil
}

// SameMeaning reports whether two commands are interchangeable, as
// tested by \ifx.
func SameMeaning(a, b Command) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a := a.(type) {
	case *Macro:
		b, ok := b.(*Macro)
		return ok && a.Equal(b)
	case *CharCommand:
		b, ok := b.(*CharCommand)
		return ok && a.Tok.Equal(b.Tok)
	}
	return a == b
}

// Prefix is the meaning of \global, \long and similar commands, which
// modify the assignment following them.
type Prefix struct {
	CsName string

	// Global is set for \global.
	Global bool
}

// Name implements the Command interface.
func (p *Prefix) Name() string {
	return p.CsName
}

// Process implements the Processor interface.
func (p *Prefix) Process(e *Engine, s *Stack) error {
	if p.Global {
		e.GlobalNext = true
	}
	return nil
}
