// expand.go - macro expansion
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

// ExpandOnce performs one expansion step for tok, which has just been
// removed from s.  Arguments are read from s.  The second return value
// is false if tok is not expandable; in this case the caller keeps
// tok unchanged.
func (e *Engine) ExpandOnce(tok *token.Token, s *Stack) (token.List, bool, error) {
	if tok.NoExpand {
		return nil, false, nil
	}
	name, ok := tok.CsName()
	if !ok {
		return nil, false, nil
	}
	x, ok := e.Registry.Lookup(name).(Expandable)
	if !ok {
		return nil, false, nil
	}
	list, err := e.expandCommand(name, x, s)
	return list, true, err
}

// ExpandFully expands tok and then the result, until no expandable
// tokens are left.  The second return value is false if tok is not
// expandable.
func (e *Engine) ExpandFully(tok *token.Token, s *Stack) (token.List, bool, error) {
	list, ok, err := e.ExpandOnce(tok, s)
	if !ok || err != nil {
		return nil, ok, err
	}
	list, err = e.ExpandListFully(list, s)
	return list, true, err
}

// ExpandListOnce expands every expandable token of list once.  Commands
// at the end of the list can read their arguments from s.
func (e *Engine) ExpandListOnce(list token.List, s *Stack) (token.List, error) {
	m := token.NewMarker()
	s.Push(m)
	s.PushList(list)
	defer s.removeMarker(m)

	res := token.List{}
	for !s.PopMarker(m) {
		tok, err := s.Pop()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			break
		}
		repl, ok, err := e.ExpandOnce(tok, s)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, repl...)
		} else {
			res = append(res, tok)
		}
	}
	return res, nil
}

// ExpandListFully expands list until no expandable tokens are left.
// The contents of groups are expanded, but the groups are kept.
// Ignorable tokens are dropped.  Commands at the end of the list can
// read their arguments from s.
func (e *Engine) ExpandListFully(list token.List, s *Stack) (token.List, error) {
	m := token.NewMarker()
	s.Push(m)
	s.PushList(list)
	defer s.removeMarker(m)

	res := token.List{}
	for !s.PopMarker(m) {
		tok, err := s.Pop()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			break
		}

		switch tok.Kind {
		case token.Ignorable:
			continue
		case token.Group:
			inner, err := e.ExpandListFully(tok.List, s)
			if err != nil {
				return nil, err
			}
			res = append(res, token.NewGroup(inner))
			continue
		}

		repl, ok, err := e.ExpandOnce(tok, s)
		if err != nil {
			return nil, err
		}
		if !ok {
			if tok.NoExpand {
				tok = tok.Clone()
				tok.NoExpand = false
			}
			res = append(res, tok)
			e.expansions = 0
			continue
		}
		s.PushList(repl)
	}
	return res, nil
}

// ExpandArg removes a mandatory argument from s and expands it fully.
// Expansion cannot read past the end of the argument.
func (e *Engine) ExpandArg(s *Stack) (token.List, error) {
	arg, err := s.PopArg(PopIgnoreLeadingSpace)
	if err != nil {
		return nil, err
	}
	return e.ExpandListFully(arg, NewStack(nil))
}
