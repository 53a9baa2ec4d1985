// stack.go - token stacks and argument popping
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
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/seehuhn/texexpand/latex/token"
)

// Source provides tokens on demand.  At the end of input, NextToken
// must return io.EOF.
type Source interface {
	NextToken() (*token.Token, error)
}

// PopStyle modifies how tokens are removed from a stack.
type PopStyle uint8

// These flags can be combined using "|".
const (
	// PopShort forbids paragraph breaks inside arguments.
	PopShort PopStyle = 1 << iota

	// PopRetainIgnorables returns comments and other ignorable tokens
	// instead of skipping them.
	PopRetainIgnorables

	// PopIgnoreLeadingSpace skips spaces before the token.
	PopIgnoreLeadingSpace
)

// Stack is the cursor through which all input is read.  A stack holds
// pending tokens which are returned first.  The outermost stack of an
// input file is backed by a Source, which is consulted only when no
// pending tokens are left.
//
// Marker tokens are never returned by the pop methods.  Instead, a
// marker stays at the head of the stack when tokens after it are
// removed, so that it always separates the tokens which were pushed
// before it from the remaining input.
type Stack struct {
	items []*token.Token // in reverse order, the next token is last
	src   Source
}

// NewStack returns a stack holding the given tokens.
func NewStack(list token.List) *Stack {
	s := &Stack{}
	s.PushList(list)
	return s
}

// NewSourceStack returns a stack which reads its tokens from src.
func NewSourceStack(src Source) *Stack {
	return &Stack{src: src}
}

// Len returns the number of pending tokens, not counting tokens which
// have not yet been read from the source.
func (s *Stack) Len() int {
	return len(s.items)
}

// Push prepends a single token.
func (s *Stack) Push(tok *token.Token) {
	s.items = append(s.items, tok)
}

// PushList prepends a list of tokens, so that list[0] becomes the next
// token.
func (s *Stack) PushList(list token.List) {
	for i := len(list) - 1; i >= 0; i-- {
		s.items = append(s.items, list[i])
	}
}

// Append adds tokens after all pending tokens, but before the
// remaining tokens of the source.
func (s *Stack) Append(list token.List) {
	rev := make([]*token.Token, len(list), len(list)+len(s.items))
	for i, tok := range list {
		rev[len(list)-1-i] = tok
	}
	s.items = append(rev, s.items...)
}

// Remaining removes and returns all pending tokens, excluding markers.
// Tokens which have not been read from the source are not included.
func (s *Stack) Remaining() token.List {
	var res token.List
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].Kind != token.Marker {
			res = append(res, s.items[i])
		}
	}
	s.items = s.items[:0]
	return res
}

// readSource reads one token from the source.  The result is nil at
// the end of input.
func (s *Stack) readSource() (*token.Token, error) {
	if s.src == nil {
		return nil, nil
	}
	tok, err := s.src.NextToken()
	if err == io.EOF {
		s.src = nil
		return nil, nil
	}
	return tok, err
}

// peekN returns the n-th token (counting from 0) without removing it.
// Markers are not counted.  The result is nil if the input ends
// earlier.
func (s *Stack) peekN(n int) (*token.Token, error) {
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].Kind == token.Marker {
			continue
		}
		if n == 0 {
			return s.items[i], nil
		}
		n--
	}
	for ; n >= 0; n-- {
		tok, err := s.readSource()
		if tok == nil || err != nil {
			return nil, err
		}
		s.items = append(s.items, nil)
		copy(s.items[1:], s.items)
		s.items[0] = tok
		if n == 0 {
			return tok, nil
		}
	}
	panic("not reached")
}

// Peek returns the next token without removing it.  The result is nil
// at the end of input.
func (s *Stack) Peek() (*token.Token, error) {
	return s.peekN(0)
}

// PeekNonSpace returns the next token which is neither a space nor
// ignorable, without removing anything from the stack.
func (s *Stack) PeekNonSpace() (*token.Token, error) {
	_, tok, err := s.peekNonSpace()
	return tok, err
}

func (s *Stack) peekNonSpace() (int, *token.Token, error) {
	for i := 0; ; i++ {
		tok, err := s.peekN(i)
		if tok == nil || err != nil {
			return i, nil, err
		}
		if !tok.IsWhiteSpace() {
			return i, tok, nil
		}
	}
}

// Pop removes and returns the next token.  The result is nil at the
// end of input.
func (s *Stack) Pop() (*token.Token, error) {
	k := len(s.items)
	for k > 0 && s.items[k-1].Kind == token.Marker {
		k--
	}
	if k == 0 {
		return s.readSource()
	}
	tok := s.items[k-1]
	s.items = append(s.items[:k-1], s.items[k:]...)
	return tok, nil
}

// PopMarker removes m if it is the next item on the stack.
func (s *Stack) PopMarker(m *token.Token) bool {
	n := len(s.items)
	if n > 0 && s.items[n-1].IsMarker(m) {
		s.items = s.items[:n-1]
		return true
	}
	return false
}

func (s *Stack) removeMarker(m *token.Token) {
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].IsMarker(m) {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// PopToken removes the next token, honouring the PopRetainIgnorables
// and PopIgnoreLeadingSpace flags.
func (s *Stack) PopToken(style PopStyle) (*token.Token, error) {
	for {
		tok, err := s.Pop()
		if tok == nil || err != nil {
			return nil, err
		}
		if tok.Kind == token.Ignorable && style&PopRetainIgnorables == 0 {
			continue
		}
		if tok.Kind == token.Space && style&PopIgnoreLeadingSpace != 0 {
			continue
		}
		return tok, nil
	}
}

// PopStack removes the next token.  A begin-group token is combined
// with everything up to the matching end-group token into a single
// group token.
func (s *Stack) PopStack(style PopStyle) (*token.Token, error) {
	tok, err := s.PopToken(style)
	if tok == nil || err != nil {
		return nil, err
	}
	if style&PopShort != 0 && tok.IsPar() {
		return nil, newError(ErrParagraphEnded, "")
	}
	if tok.Kind == token.BeginGroup {
		return s.popRemainingGroup(style)
	}
	return tok, nil
}

func (s *Stack) popRemainingGroup(style PopStyle) (*token.Token, error) {
	list := token.List{}
	for {
		tok, err := s.Pop()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return nil, newError(ErrMissingEndGroup)
		}
		switch {
		case tok.Kind == token.EndGroup:
			return token.NewGroup(list), nil
		case tok.Kind == token.BeginGroup:
			group, err := s.popRemainingGroup(style)
			if err != nil {
				return nil, err
			}
			list = append(list, group)
		case style&PopShort != 0 && tok.IsPar():
			return nil, newError(ErrParagraphEnded, "")
		default:
			list = append(list, tok)
		}
	}
}

// PopArg removes a mandatory argument.  If the argument is a group,
// the contents of the group are returned.  Leading spaces are always
// skipped.
func (s *Stack) PopArg(style PopStyle) (token.List, error) {
	tok, err := s.PopStack(style | PopIgnoreLeadingSpace)
	if err != nil {
		return nil, err
	}
	if tok == nil || tok.Kind == token.EndGroup {
		if tok != nil {
			s.Push(tok)
		}
		return nil, newError(ErrMissingArgument, "")
	}
	if tok.Kind == token.Group {
		if tok.List == nil {
			return token.List{}, nil
		}
		return tok.List, nil
	}
	return token.List{tok}, nil
}

// PopOptArg removes an optional argument delimited by open and close,
// for example "[" and "]".  If the next non-space token is not the
// opening delimiter, nil is returned and nothing is removed from the
// stack.  A present but empty argument gives an empty, non-nil list.
func (s *Stack) PopOptArg(style PopStyle, open, close rune) (token.List, error) {
	n, tok, err := s.peekNonSpace()
	if tok == nil || err != nil || !tok.IsChar(open) {
		return nil, err
	}
	for i := 0; i <= n; i++ {
		s.Pop()
	}

	list := token.List{}
	for {
		tok, err := s.PopStack(style&PopShort | PopRetainIgnorables)
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return nil, newError(ErrMissingClosing, string(close))
		}
		if tok.IsChar(close) {
			break
		}
		list = append(list, tok)
	}
	if len(list) == 1 && list[0].Kind == token.Group {
		list = list[0].List
		if list == nil {
			list = token.List{}
		}
	}
	return list, nil
}

// PopModifier removes the character r, typically a star, if it is the
// next non-space token.  Nothing is removed otherwise.
func (s *Stack) PopModifier(r rune) (bool, error) {
	n, tok, err := s.peekNonSpace()
	if tok == nil || err != nil || !tok.IsChar(r) {
		return false, err
	}
	for i := 0; i <= n; i++ {
		s.Pop()
	}
	return true, nil
}

// PopKeyword removes the keyword kw, for example "by" in \advance,
// if it follows after optional spaces.  Letters are compared without
// regard to case.  Nothing is removed if the keyword is not present.
func (s *Stack) PopKeyword(kw string) (bool, error) {
	n, tok, err := s.peekNonSpace()
	if tok == nil || err != nil {
		return false, err
	}
	for i, r := range []rune(kw) {
		tok, err := s.peekN(n + i)
		if tok == nil || err != nil {
			return false, err
		}
		if tok.Kind != token.Letter && tok.Kind != token.Other ||
			unicode.ToLower(tok.Char) != unicode.ToLower(r) {
			return false, nil
		}
	}
	for i := 0; i < n+utf8.RuneCountInString(kw); i++ {
		s.Pop()
	}
	return true, nil
}

// PopToCsMarker removes all tokens up to, but not including, the next
// reference to the control sequence `name`.  Groups are kept intact.
func (s *Stack) PopToCsMarker(name string) (token.List, error) {
	var list token.List
	for {
		next, err := s.Peek()
		if err != nil {
			return nil, err
		}
		if next == nil {
			return nil, newError(ErrMissingClosing, `\`+name)
		}
		if next.IsCs(name) {
			return list, nil
		}
		tok, err := s.PopStack(PopRetainIgnorables)
		if err != nil {
			return nil, err
		}
		list = append(list, tok)
	}
}

// PopCsMarker removes the control sequence `name`, which must be the
// next non-space token.
func (s *Stack) PopCsMarker(name string) error {
	tok, err := s.PopToken(PopIgnoreLeadingSpace)
	if err != nil {
		return err
	}
	if tok == nil || !tok.IsCs(name) {
		if tok != nil {
			s.Push(tok)
		}
		return newError(ErrMissingClosing, `\`+name)
	}
	return nil
}

// PopToGroup removes all tokens before the next group.  The group
// itself is left on the stack.
func (s *Stack) PopToGroup(style PopStyle) (token.List, error) {
	var list token.List
	for {
		next, err := s.Peek()
		if err != nil {
			return nil, err
		}
		if next == nil {
			return nil, newError(ErrMissingArgument, "")
		}
		if next.Kind == token.BeginGroup || next.Kind == token.Group {
			return list, nil
		}
		tok, err := s.PopToken(style | PopRetainIgnorables)
		if err != nil {
			return nil, err
		}
		if style&PopShort != 0 && tok.IsPar() {
			return nil, newError(ErrParagraphEnded, "")
		}
		list = append(list, tok)
	}
}

// PopControlSequence removes an argument which must consist of a
// single control sequence or active character.
func (s *Stack) PopControlSequence() (*token.Token, error) {
	arg, err := s.PopArg(PopIgnoreLeadingSpace)
	if err != nil {
		return nil, err
	}
	arg = arg.TrimSpace()
	if len(arg) != 1 {
		return nil, newError(ErrCsExpected)
	}
	if _, ok := arg[0].CsName(); !ok {
		return nil, newError(ErrCsExpected)
	}
	return arg[0], nil
}

// pending returns the number of buffered tokens, not counting markers.
func (s *Stack) pending() int {
	n := 0
	for _, tok := range s.items {
		if tok.Kind != token.Marker {
			n++
		}
	}
	return n
}
