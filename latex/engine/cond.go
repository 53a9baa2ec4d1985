// cond.go - conditionals
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

// Conditional is an expandable test like \ifnum or \ifx.  If the test
// fails, the input is skipped up to the matching \else or \fi.
type Conditional struct {
	CsName string
	Test   func(e *Engine, s *Stack) (bool, error)
}

// Name implements the Command interface.
func (c *Conditional) Name() string {
	return c.CsName
}

// ExpandOnce evaluates the test and skips the false branch.
func (c *Conditional) ExpandOnce(e *Engine, s *Stack) (token.List, error) {
	ok, err := c.Test(e, s)
	if err != nil {
		return nil, err
	}
	e.ifDepth++
	if ok {
		return nil, nil
	}
	stop, err := e.skipConditional(s, true, false)
	if stop == "fi" {
		e.ifDepth--
	}
	return nil, err
}

type condKeyword struct {
	name string
}

func (k *condKeyword) Name() string {
	return k.name
}

func (k *condKeyword) ExpandOnce(e *Engine, s *Stack) (token.List, error) {
	if e.ifDepth == 0 {
		return nil, newError(ErrExtraConditional, k.name)
	}
	if k == Fi {
		e.ifDepth--
		return nil, nil
	}
	_, err := e.skipConditional(s, false, false)
	e.ifDepth--
	return nil, err
}

// The keywords which end the branches of a conditional.
var (
	Else Expandable = &condKeyword{"else"}
	Or   Expandable = &condKeyword{"or"}
	Fi   Expandable = &condKeyword{"fi"}
)

// Relax is the meaning of \relax.  Control sequences created by
// \csname are \relax until they are defined.
var Relax = NewProcessor("relax", func(e *Engine, s *Stack) error {
	return nil
})

type caseConditional struct{}

func (c *caseConditional) Name() string {
	return "ifcase"
}

func (c *caseConditional) ExpandOnce(e *Engine, s *Stack) (token.List, error) {
	n, err := e.PopNumber(s)
	if err != nil {
		return nil, err
	}
	e.ifDepth++
	if n < 0 {
		n = int(^uint(0) >> 1)
	}
	for n > 0 {
		stop, err := e.skipConditional(s, true, true)
		if err != nil {
			return nil, err
		}
		switch stop {
		case "or":
			n--
		case "else":
			return nil, nil
		case "fi":
			e.ifDepth--
			return nil, nil
		}
	}
	return nil, nil
}

// IfCase implements \ifcase.
var IfCase Expandable = &caseConditional{}

// skipConditional removes tokens from s, up to the \fi which ends the
// current conditional, or up to an \else or \or on the same nesting
// level if requested.  The returned keyword is consumed.
func (e *Engine) skipConditional(s *Stack, stopAtElse, stopAtOr bool) (string, error) {
	depth := 0
	for {
		tok, err := s.Pop()
		if err != nil {
			return "", err
		}
		if tok == nil {
			return "", newError(ErrMissingClosing, `\fi`)
		}
		cmd := e.LookupToken(tok)
		if cmd == nil {
			continue
		}
		switch {
		case isConditional(cmd):
			depth++
		case cmd == Fi:
			if depth == 0 {
				return "fi", nil
			}
			depth--
		case cmd == Else && depth == 0 && stopAtElse:
			return "else", nil
		case cmd == Or && depth == 0 && stopAtOr:
			return "or", nil
		}
	}
}

func isConditional(cmd Command) bool {
	switch cmd.(type) {
	case *Conditional, *caseConditional:
		return true
	}
	return false
}
