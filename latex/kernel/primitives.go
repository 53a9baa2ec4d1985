// primitives.go - TeX primitives
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
	"strconv"
	"strings"
	"unicode"

	"github.com/seehuhn/texexpand/latex/engine"
	"github.com/seehuhn/texexpand/latex/token"
)

func addPrimitives(e *engine.Engine) {
	def(e, engine.Relax)
	defProcessor(e, "def", mDef(false, false))
	defProcessor(e, "gdef", mDef(true, false))
	defProcessor(e, "edef", mDef(false, true))
	defProcessor(e, "xdef", mDef(true, true))
	defProcessor(e, "let", mLet)
	def(e, &engine.Prefix{CsName: "global", Global: true})
	for _, name := range []string{"long", "outer", "protected"} {
		def(e, &engine.Prefix{CsName: name})
	}
	defExpandable(e, "expandafter", mExpandAfter)
	defExpandable(e, "noexpand", mNoExpand)
	defExpandable(e, "csname", mCsname)
	defProcessor(e, "endcsname", func(e *engine.Engine, s *engine.Stack) error {
		return engine.ErrExtraConditional.With("endcsname")
	})
	defExpandable(e, "string", mString)
	defExpandable(e, "number", mNumber)
	defExpandable(e, "romannumeral", mRomanNumeral)
	defExpandable(e, "the", mThe)
	defProcessor(e, "begingroup", func(e *engine.Engine, s *engine.Stack) error {
		e.StartGroup()
		return nil
	})
	defProcessor(e, "endgroup", func(e *engine.Engine, s *engine.Stack) error {
		return e.EndGroup(s)
	})
	def(e, &engine.CharCommand{
		CsName: "bgroup",
		Tok:    &token.Token{Kind: token.BeginGroup, Char: '{'},
	})
	def(e, &engine.CharCommand{
		CsName: "egroup",
		Tok:    &token.Token{Kind: token.EndGroup, Char: '}'},
	})
	defProcessor(e, "par", func(e *engine.Engine, s *engine.Stack) error {
		return e.Out.EndParagraph()
	})
	defProcessor(e, "catcode", mCatcode)
	defProcessor(e, "ignorespaces", mIgnoreSpaces)
	defProcessor(e, "uppercase", mChangeCase(unicode.ToUpper))
	defProcessor(e, "lowercase", mChangeCase(unicode.ToLower))
}

// mDef implements \def, \gdef, \edef and \xdef.
func mDef(alwaysGlobal, expand bool) func(e *engine.Engine, s *engine.Stack) error {
	return func(e *engine.Engine, s *engine.Stack) error {
		global := e.TakeGlobal() || alwaysGlobal
		name, err := popCsName(s)
		if err != nil {
			return err
		}
		m, err := readDefinition(e, s, name, expand)
		if err != nil {
			return err
		}
		return e.Define(name, m, engine.Allow, global)
	}
}

// readDefinition reads the parameter text and the body of a TeX macro
// definition.
func readDefinition(e *engine.Engine, s *engine.Stack, name string, expand bool) (*engine.Macro, error) {
	params, err := s.PopToGroup(0)
	if err != nil {
		return nil, err
	}
	params, err = engine.ParseParamText(name, params)
	if err != nil {
		return nil, err
	}
	body, err := s.PopArg(0)
	if err != nil {
		return nil, err
	}
	if expand {
		body, err = e.ExpandListFully(body, engine.NewStack(nil))
		if err != nil {
			return nil, err
		}
	}
	body = engine.NormalizeParams(body)

	n := 0
	for _, tok := range params {
		if tok.Kind == token.Param {
			n++
		}
	}
	if err := checkParams(name, body, n); err != nil {
		return nil, err
	}
	return &engine.Macro{CsName: name, Params: params, Body: body}, nil
}

// checkParams verifies that the body of a macro only refers to the
// parameters 1, ..., n.
func checkParams(name string, body token.List, n int) error {
	for _, tok := range body {
		switch tok.Kind {
		case token.Param:
			if tok.Value < 1 || tok.Value > n {
				return engine.ErrIllegalParam.With(name)
			}
		case token.Group:
			if err := checkParams(name, tok.List, n); err != nil {
				return err
			}
		}
	}
	return nil
}

func mLet(e *engine.Engine, s *engine.Stack) error {
	global := e.TakeGlobal()
	name, err := popCsName(s)
	if err != nil {
		return err
	}

	// optional spaces, an optional "=" and one more optional space
	tok, err := s.PopToken(engine.PopIgnoreLeadingSpace)
	if err != nil {
		return err
	}
	if tok != nil && tok.Kind == token.Other && tok.Char == '=' {
		tok, err = s.PopToken(0)
		if err != nil {
			return err
		}
		if tok != nil && tok.Kind == token.Space {
			tok, err = s.PopToken(0)
			if err != nil {
				return err
			}
		}
	}
	if tok == nil {
		return engine.ErrMissingArgument.With("let")
	}

	var cmd engine.Command
	if _, ok := tok.CsName(); ok {
		cmd = e.LookupToken(tok)
	} else {
		cmd = &engine.CharCommand{CsName: name, Tok: tok}
	}
	if global {
		e.Registry.PutGlobal(name, cmd)
	} else {
		e.Registry.PutLocal(name, cmd)
	}
	return nil
}

// mPrefix implements commands which have no effect on the text output.
func mPrefix(e *engine.Engine, s *engine.Stack) error {
	return nil
}

func mExpandAfter(e *engine.Engine, s *engine.Stack) (token.List, error) {
	first, err := s.PopToken(0)
	if err != nil {
		return nil, err
	}
	if first == nil {
		return nil, engine.ErrMissingArgument.With("expandafter")
	}
	second, err := s.PopToken(0)
	if err != nil {
		return nil, err
	}
	if second == nil {
		return token.List{first}, nil
	}
	repl, ok, err := e.ExpandOnce(second, s)
	if err != nil {
		return nil, err
	}
	if !ok {
		return token.List{first, second}, nil
	}
	return append(token.List{first}, repl...), nil
}

func mNoExpand(e *engine.Engine, s *engine.Stack) (token.List, error) {
	tok, err := s.PopToken(0)
	if tok == nil || err != nil {
		return nil, err
	}
	if _, ok := e.LookupToken(tok).(engine.Expandable); !ok {
		return token.List{tok}, nil
	}
	tok = tok.Clone()
	tok.NoExpand = true
	return token.List{tok}, nil
}

func mCsname(e *engine.Engine, s *engine.Stack) (token.List, error) {
	var name strings.Builder
	for {
		tok, err := e.NextExpanded(s)
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return nil, engine.ErrMissingEndCsname.With()
		}
		if tok.IsCs("endcsname") {
			break
		}
		if _, isCs := tok.CsName(); isCs {
			s.Push(tok)
			return nil, engine.ErrMissingEndCsname.With()
		}
		name.WriteString(tok.String())
	}
	return token.List{csToken(e, name.String())}, nil
}

func mString(e *engine.Engine, s *engine.Stack) (token.List, error) {
	tok, err := s.PopToken(0)
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, engine.ErrMissingArgument.With("string")
	}
	return token.String(tok.String()), nil
}

func mNumber(e *engine.Engine, s *engine.Stack) (token.List, error) {
	n, err := e.PopNumber(s)
	if err != nil {
		return nil, err
	}
	return token.String(strconv.Itoa(n)), nil
}

func mRomanNumeral(e *engine.Engine, s *engine.Stack) (token.List, error) {
	n, err := e.PopNumber(s)
	if err != nil {
		return nil, err
	}
	return token.String(engine.FormatNumber(n, engine.StyleRoman)), nil
}

// mThe implements \the for registers, counter values and category
// codes.
func mThe(e *engine.Engine, s *engine.Stack) (token.List, error) {
	tok, err := e.NextExpanded(s)
	for err == nil && tok != nil && tok.Kind == token.Space {
		tok, err = e.NextExpanded(s)
	}
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, engine.ErrMissingArgument.With("the")
	}

	switch tok.Kind {
	case token.Number:
		return token.String(strconv.Itoa(tok.Value)), nil
	case token.Dimension:
		return token.String(token.FormatDimen(tok.Value)), nil
	}
	if tok.IsCs("catcode") {
		r, err := e.PopNumber(s)
		if err != nil {
			return nil, err
		}
		return token.String(strconv.Itoa(int(e.Settings.CatCode(rune(r))))), nil
	}
	if r, ok := e.LookupToken(tok).(*engine.RegisterCmd); ok {
		v, kind, err := e.Settings.Register(r.Register)
		if err != nil {
			return nil, err
		}
		if kind == engine.DimenRegister {
			return token.String(token.FormatDimen(v)), nil
		}
		return token.String(strconv.Itoa(v)), nil
	}
	name, _ := tok.CsName()
	return nil, engine.ErrNotAllowed.With(name)
}

func mCatcode(e *engine.Engine, s *engine.Stack) error {
	global := e.TakeGlobal()
	r, err := e.PopNumber(s)
	if err != nil {
		return err
	}
	if err := e.SkipEquals(s); err != nil {
		return err
	}
	c, err := e.PopNumber(s)
	if err != nil {
		return err
	}
	if c < int(token.CatEscape) || c > int(token.CatInvalid) {
		return engine.ErrNumberExpected.With()
	}
	e.Settings.SetCatCode(rune(r), token.CatCode(c), global)
	return nil
}

func mIgnoreSpaces(e *engine.Engine, s *engine.Stack) error {
	for {
		tok, err := e.NextExpanded(s)
		if tok == nil || err != nil {
			return err
		}
		if tok.Kind != token.Space {
			s.Push(tok)
			return nil
		}
	}
}

// mChangeCase implements \uppercase and \lowercase.  The argument is
// not expanded.
func mChangeCase(fn func(rune) rune) func(e *engine.Engine, s *engine.Stack) error {
	return func(e *engine.Engine, s *engine.Stack) error {
		arg, err := s.PopArg(0)
		if err != nil {
			return err
		}
		s.PushList(changeCase(arg, fn))
		return nil
	}
}

func changeCase(list token.List, fn func(rune) rune) token.List {
	res := make(token.List, len(list))
	for i, tok := range list {
		switch tok.Kind {
		case token.Letter, token.Other:
			if c := fn(tok.Char); c != tok.Char {
				tok = tok.Clone()
				tok.Char = c
			}
		case token.Group:
			tok = token.NewGroup(changeCase(tok.List, fn))
		}
		res[i] = tok
	}
	return res
}
