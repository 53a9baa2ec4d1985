// conditionals.go -
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

package kernel

import (
	"strings"

	"github.com/seehuhn/texexpand/latex/engine"
	"github.com/seehuhn/texexpand/latex/token"
)

var (
	ifTrue = &engine.Conditional{
		CsName: "iftrue",
		Test: func(*engine.Engine, *engine.Stack) (bool, error) {
			return true, nil
		},
	}
	ifFalse = &engine.Conditional{
		CsName: "iffalse",
		Test: func(*engine.Engine, *engine.Stack) (bool, error) {
			return false, nil
		},
	}
)

func addConditionals(e *engine.Engine) {
	def(e, engine.Else)
	def(e, engine.Or)
	def(e, engine.Fi)
	def(e, engine.IfCase)
	def(e, ifTrue)
	def(e, ifFalse)
	for name, test := range map[string]func(*engine.Engine, *engine.Stack) (bool, error){
		"ifnum":     testIfNum,
		"ifdim":     testIfDim,
		"ifodd":     testIfOdd,
		"ifx":       testIfX,
		"if":        testIfChar,
		"ifdefined": testIfDefined,
		"ifmmode":   testIfMMode,
	} {
		def(e, &engine.Conditional{CsName: name, Test: test})
	}
	defProcessor(e, "newif", mNewIf)
}

func testIfNum(e *engine.Engine, s *engine.Stack) (bool, error) {
	a, err := e.PopNumber(s)
	if err != nil {
		return false, err
	}
	rel, err := popRelation(e, s)
	if err != nil {
		return false, err
	}
	b, err := e.PopNumber(s)
	if err != nil {
		return false, err
	}
	return compare(a, rel, b), nil
}

func testIfDim(e *engine.Engine, s *engine.Stack) (bool, error) {
	a, err := e.PopDimension(s)
	if err != nil {
		return false, err
	}
	rel, err := popRelation(e, s)
	if err != nil {
		return false, err
	}
	b, err := e.PopDimension(s)
	if err != nil {
		return false, err
	}
	return compare(a, rel, b), nil
}

func testIfOdd(e *engine.Engine, s *engine.Stack) (bool, error) {
	n, err := e.PopNumber(s)
	return n%2 != 0, err
}

func popRelation(e *engine.Engine, s *engine.Stack) (rune, error) {
	for {
		tok, err := e.NextExpanded(s)
		if err != nil {
			return 0, err
		}
		if tok == nil {
			return 0, engine.ErrMissingClosing.With("=")
		}
		switch {
		case tok.Kind == token.Space:
			continue
		case tok.IsChar('<'), tok.IsChar('='), tok.IsChar('>'):
			return tok.Char, nil
		}
		s.Push(tok)
		return 0, engine.ErrMissingClosing.With("=")
	}
}

func compare(a int, rel rune, b int) bool {
	switch rel {
	case '<':
		return a < b
	case '>':
		return a > b
	default:
		return a == b
	}
}

// testIfX compares two tokens without expanding them.
func testIfX(e *engine.Engine, s *engine.Stack) (bool, error) {
	a, err := s.PopToken(0)
	if err != nil {
		return false, err
	}
	b, err := s.PopToken(0)
	if err != nil {
		return false, err
	}
	if a == nil || b == nil {
		return false, engine.ErrMissingArgument.With("ifx")
	}

	_, aIsCs := a.CsName()
	_, bIsCs := b.CsName()
	switch {
	case aIsCs && bIsCs:
		return engine.SameMeaning(e.LookupToken(a), e.LookupToken(b)), nil
	case aIsCs:
		c, ok := e.LookupToken(a).(*engine.CharCommand)
		return ok && c.Tok.Kind == b.Kind && c.Tok.Char == b.Char, nil
	case bIsCs:
		c, ok := e.LookupToken(b).(*engine.CharCommand)
		return ok && c.Tok.Kind == a.Kind && c.Tok.Char == a.Char, nil
	default:
		return a.Kind == b.Kind && a.Char == b.Char, nil
	}
}

// testIfChar implements \if, which compares the character codes of
// two tokens after expansion.
func testIfChar(e *engine.Engine, s *engine.Stack) (bool, error) {
	var codes [2]rune
	for i := range codes {
		tok, err := e.NextExpanded(s)
		if err != nil {
			return false, err
		}
		if tok == nil {
			return false, engine.ErrMissingArgument.With("if")
		}
		codes[i] = charCode(e, tok)
	}
	return codes[0] == codes[1], nil
}

func charCode(e *engine.Engine, tok *token.Token) rune {
	if _, ok := tok.CsName(); ok {
		if c, ok := e.LookupToken(tok).(*engine.CharCommand); ok {
			return c.Tok.Char
		}
		return 256
	}
	return tok.Char
}

func testIfDefined(e *engine.Engine, s *engine.Stack) (bool, error) {
	tok, err := s.PopToken(engine.PopIgnoreLeadingSpace)
	if err != nil {
		return false, err
	}
	if tok == nil {
		return false, engine.ErrMissingArgument.With("ifdefined")
	}
	return e.LookupToken(tok) != nil, nil
}

func testIfMMode(e *engine.Engine, s *engine.Stack) (bool, error) {
	return e.Settings.Mode().IsMath(), nil
}

// mNewIf implements \newif\iffoo, which defines \iffoo together with
// the switches \footrue and \foofalse.
func mNewIf(e *engine.Engine, s *engine.Stack) error {
	name, err := popCsName(s)
	if err != nil {
		return err
	}
	base, ok := strings.CutPrefix(name, "if")
	if !ok || base == "" {
		return engine.ErrCsExpected.With()
	}
	setter := func(value engine.Command) func(*engine.Engine, *engine.Stack) error {
		return func(e *engine.Engine, s *engine.Stack) error {
			return e.Define(name, value, engine.Allow, e.TakeGlobal())
		}
	}
	err = e.Define(name, ifFalse, engine.Allow, false)
	if err != nil {
		return err
	}
	err = e.Define(base+"true", engine.NewProcessor(base+"true", setter(ifTrue)), engine.Allow, false)
	if err != nil {
		return err
	}
	return e.Define(base+"false", engine.NewProcessor(base+"false", setter(ifFalse)), engine.Allow, false)
}
