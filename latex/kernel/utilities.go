// utilities.go - internal LaTeX helper macros
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
	"github.com/seehuhn/texexpand/latex/engine"
	"github.com/seehuhn/texexpand/latex/token"
)

func addUtilities(e *engine.Engine) {
	defProcessor(e, "@for", mFor)
	defExpandable(e, "@ifstar", mIfStar)
	defExpandable(e, "@ifnextchar", mIfNextChar)
	defExpandable(e, "@firstoftwo", selectArg(2, 0))
	defExpandable(e, "@secondoftwo", selectArg(2, 1))
	defExpandable(e, "@firstofone", selectArg(1, 0))
	defExpandable(e, "@gobble", selectArg(1, -1))
	defExpandable(e, "@gobbletwo", selectArg(2, -1))
	def(e, &engine.Macro{CsName: "@empty"})
	defExpandable(e, "@nameuse", mNameUse)
	defProcessor(e, "@namedef", mNameDef)
	defExpandable(e, "@ifundefined", mIfUndefined)
	defProcessor(e, "makeatletter", mAtCatCode(token.CatLetter))
	defProcessor(e, "makeatother", mAtCatCode(token.CatOther))

	// \protect only matters while writing to auxiliary files.
	defExpandable(e, "protect", func(e *engine.Engine, s *engine.Stack) (token.List, error) {
		return nil, nil
	})
}

// mFor implements \@for\x:=a,b,c\do{body}.  The body is processed once
// for every list element, with \x defined as the element.
func mFor(e *engine.Engine, s *engine.Stack) error {
	name, err := popCsName(s)
	if err != nil {
		return err
	}
	for _, r := range ":=" {
		tok, err := s.PopToken(engine.PopIgnoreLeadingSpace)
		if err != nil {
			return err
		}
		if tok == nil || !tok.IsChar(r) {
			return engine.ErrMissingClosing.With(":=")
		}
	}
	list, err := s.PopToCsMarker("do")
	if err != nil {
		return err
	}
	if err := s.PopCsMarker("do"); err != nil {
		return err
	}
	body, err := s.PopArg(0)
	if err != nil {
		return err
	}

	// The list is expanded once, so that \@for\x:=\list\do works.
	list = list.TrimSpace()
	if len(list) > 0 {
		rest := engine.NewStack(list[1:].Clone())
		repl, ok, err := e.ExpandOnce(list[0], rest)
		if err != nil {
			return err
		}
		if ok {
			list = append(repl, rest.Remaining()...)
		}
	}

	items := token.SplitCsv(list)
	for i := range items {
		item := items[i].TrimSpace()
		e.Registry.PutLocal(name, &engine.Macro{CsName: name, Body: item})
		if err := e.ProcessList(body.Clone(), s); err != nil {
			return err
		}
	}
	return nil
}

func mIfStar(e *engine.Engine, s *engine.Stack) (token.List, error) {
	args, err := popArgs(s, 2)
	if err != nil {
		return nil, err
	}
	star, err := s.PopModifier('*')
	if err != nil {
		return nil, err
	}
	if star {
		return args[0], nil
	}
	return args[1], nil
}

// mIfNextChar implements \@ifnextchar c{yes}{no}.  The next token is
// not removed.
func mIfNextChar(e *engine.Engine, s *engine.Stack) (token.List, error) {
	want, err := s.PopToken(engine.PopIgnoreLeadingSpace)
	if err != nil {
		return nil, err
	}
	if want == nil {
		return nil, engine.ErrMissingArgument.With("")
	}
	args, err := popArgs(s, 2)
	if err != nil {
		return nil, err
	}
	next, err := s.PeekNonSpace()
	if err != nil {
		return nil, err
	}
	if next != nil && sameToken(next, want) {
		return args[0], nil
	}
	return args[1], nil
}

func sameToken(a, b *token.Token) bool {
	if name, ok := a.CsName(); ok {
		other, ok := b.CsName()
		return ok && other == name && a.Kind == b.Kind
	}
	return a.Kind == b.Kind && a.Char == b.Char
}

// selectArg returns the expansion function of a macro with n arguments
// which expands to argument i.  For i < 0, all arguments are dropped.
func selectArg(n, i int) func(*engine.Engine, *engine.Stack) (token.List, error) {
	return func(e *engine.Engine, s *engine.Stack) (token.List, error) {
		args, err := popArgs(s, n)
		if err != nil {
			return nil, err
		}
		if i < 0 {
			return nil, nil
		}
		return args[i], nil
	}
}

func mNameUse(e *engine.Engine, s *engine.Stack) (token.List, error) {
	name, err := e.PopLabelString(s)
	if err != nil {
		return nil, err
	}
	return token.List{csToken(e, name)}, nil
}

// mNameDef implements \@namedef{name}<params>{body}, the same as
// \def\name<params>{body}.
func mNameDef(e *engine.Engine, s *engine.Stack) error {
	global := e.TakeGlobal()
	name, err := e.PopLabelString(s)
	if err != nil {
		return err
	}
	m, err := readDefinition(e, s, name, false)
	if err != nil {
		return err
	}
	return e.Define(name, m, engine.Allow, global)
}

func mIfUndefined(e *engine.Engine, s *engine.Stack) (token.List, error) {
	name, err := e.PopLabelString(s)
	if err != nil {
		return nil, err
	}
	args, err := popArgs(s, 2)
	if err != nil {
		return nil, err
	}
	cmd := e.Lookup(name)
	if cmd == nil || cmd == engine.Relax {
		return args[0], nil
	}
	return args[1], nil
}

func mAtCatCode(c token.CatCode) func(*engine.Engine, *engine.Stack) error {
	return func(e *engine.Engine, s *engine.Stack) error {
		e.Settings.SetCatCode('@', c, false)
		return nil
	}
}
