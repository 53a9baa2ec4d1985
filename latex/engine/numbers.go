// numbers.go - TeX number and dimension syntax
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
	"math"
	"strings"
	"unicode"

	"github.com/seehuhn/texexpand/latex/token"
)

// ScaledPoints is the number of scaled points in one TeX point.
const ScaledPoints = 65536

const maxNumber = 1<<31 - 1

// unit sizes in TeX points
var units = map[string]float64{
	"pt": 1,
	"pc": 12,
	"in": 72.27,
	"bp": 72.27 / 72,
	"cm": 72.27 / 2.54,
	"mm": 72.27 / 25.4,
	"dd": 1238.0 / 1157,
	"cc": 14856.0 / 1157,
	"sp": 1.0 / ScaledPoints,
	"em": 10,
	"ex": 4.30554,
}

// RegisterCmd is the meaning of a control sequence which refers to a
// count or dimen register, as allocated by \newcount or \newdimen.
// Processing the command assigns a new value.
type RegisterCmd struct {
	CsName   string
	Register string
}

// Name implements the Command interface.
func (r *RegisterCmd) Name() string {
	return r.CsName
}

// Process reads an optional "=" and the new value of the register.
func (r *RegisterCmd) Process(e *Engine, s *Stack) error {
	global := e.TakeGlobal()
	_, kind, err := e.Settings.Register(r.Register)
	if err != nil {
		return err
	}
	if err := e.SkipEquals(s); err != nil {
		return err
	}
	var v int
	if kind == DimenRegister {
		v, err = e.PopDimension(s)
	} else {
		v, err = e.PopNumber(s)
	}
	if err != nil {
		return err
	}
	return e.Settings.SetRegister(r.Register, v, global)
}

// SkipEquals removes optional spaces and an optional equals sign, as
// allowed before the value in an assignment.
func (e *Engine) SkipEquals(s *Stack) error {
	for {
		tok, err := e.NextExpanded(s)
		if err != nil || tok == nil {
			return err
		}
		if tok.Kind == token.Space {
			continue
		}
		if !tok.IsChar('=') {
			s.Push(tok)
		}
		return nil
	}
}

// NextExpanded removes the next unexpandable token from s, expanding
// macros on the way.
func (e *Engine) NextExpanded(s *Stack) (*token.Token, error) {
	for {
		tok, err := s.Pop()
		if tok == nil || err != nil {
			return nil, err
		}
		repl, ok, err := e.ExpandOnce(tok, s)
		if err != nil {
			return nil, err
		}
		if !ok {
			return tok, nil
		}
		s.PushList(repl)
	}
}

// popSigns removes optional signs and spaces and returns the first
// token after them.
func (e *Engine) popSigns(s *Stack) (int, *token.Token, error) {
	sign := 1
	for {
		tok, err := e.NextExpanded(s)
		if err != nil {
			return 0, nil, err
		}
		if tok == nil {
			return 0, nil, newError(ErrNumberExpected)
		}
		switch {
		case tok.IsWhiteSpace(), tok.IsChar('+'):
			// pass
		case tok.IsChar('-'):
			sign = -sign
		default:
			return sign, tok, nil
		}
	}
}

// registerValue returns the value of tok if it refers to a register.
func (e *Engine) registerValue(tok *token.Token) (int, RegisterKind, bool) {
	switch tok.Kind {
	case token.Number:
		return tok.Value, CountRegister, true
	case token.Dimension:
		return tok.Value, DimenRegister, true
	}
	r, ok := e.LookupToken(tok).(*RegisterCmd)
	if !ok {
		return 0, 0, false
	}
	v, kind, err := e.Settings.Register(r.Register)
	if err != nil {
		return 0, 0, false
	}
	return v, kind, true
}

// PopNumber reads a number in TeX syntax: optional signs followed by
// decimal digits, "'" and octal digits, '"' and hexadecimal digits, or
// "`" and a character.  A register or a number token is also accepted.
func (e *Engine) PopNumber(s *Stack) (int, error) {
	sign, tok, err := e.popSigns(s)
	if err != nil {
		return 0, err
	}
	if v, _, ok := e.registerValue(tok); ok {
		return sign * v, nil
	}

	switch {
	case tok.IsChar('`'):
		c, err := s.Pop()
		if err != nil {
			return 0, err
		}
		if c == nil {
			return 0, newError(ErrNumberExpected)
		}
		var r rune
		if c.Kind == token.ControlSequence {
			r = []rune(c.Name + " ")[0]
		} else {
			r = c.Char
		}
		return sign * int(r), e.skipOptionalSpace(s)
	case tok.IsChar('\''):
		return e.popDigits(s, nil, 8, sign)
	case tok.IsChar('"'):
		return e.popDigits(s, nil, 16, sign)
	case digitValue(tok, 10) >= 0:
		return e.popDigits(s, tok, 10, sign)
	}
	s.Push(tok)
	return 0, newError(ErrNumberExpected)
}

func digitValue(tok *token.Token, base int) int {
	if tok.Kind != token.Other && tok.Kind != token.Letter {
		return -1
	}
	var d int
	switch r := tok.Char; {
	case r >= '0' && r <= '9':
		d = int(r - '0')
	case r >= 'A' && r <= 'F':
		d = int(r-'A') + 10
	default:
		return -1
	}
	if d >= base {
		return -1
	}
	return d
}

func (e *Engine) popDigits(s *Stack, first *token.Token, base, sign int) (int, error) {
	v := 0
	n := 0
	if first != nil {
		v = digitValue(first, base)
		n = 1
	}
	for {
		tok, err := e.NextExpanded(s)
		if err != nil {
			return 0, err
		}
		if tok == nil {
			break
		}
		d := digitValue(tok, base)
		if d < 0 {
			if tok.Kind != token.Space {
				s.Push(tok)
			}
			break
		}
		if v <= (maxNumber-d)/base {
			v = v*base + d
		} else {
			v = maxNumber
		}
		n++
	}
	if n == 0 {
		return 0, newError(ErrNumberExpected)
	}
	return sign * v, nil
}

func (e *Engine) skipOptionalSpace(s *Stack) error {
	tok, err := e.NextExpanded(s)
	if err != nil || tok == nil {
		return err
	}
	if tok.Kind != token.Space {
		s.Push(tok)
	}
	return nil
}

// PopDimension reads a length in TeX syntax, for example "-1.5cm" or
// "2\parindent", and returns it in scaled points.
func (e *Engine) PopDimension(s *Stack) (int, error) {
	sign, tok, err := e.popSigns(s)
	if err != nil {
		return 0, err
	}
	if v, kind, ok := e.registerValue(tok); ok {
		if kind == DimenRegister {
			return sign * v, nil
		}
		return e.popUnit(s, float64(sign*v))
	}

	var digits strings.Builder
	for {
		if tok == nil {
			break
		}
		if tok.IsChar(',') {
			tok = token.NewOther('.')
		}
		if digitValue(tok, 10) < 0 && !tok.IsChar('.') {
			s.Push(tok)
			break
		}
		digits.WriteRune(tok.Char)
		tok, err = e.NextExpanded(s)
		if err != nil {
			return 0, err
		}
	}
	text := digits.String()
	if text == "" || text == "." {
		return 0, newError(ErrDimenExpected)
	}
	var factor float64
	intPart, fracPart, _ := strings.Cut(text, ".")
	for _, c := range intPart {
		factor = factor*10 + float64(c-'0')
	}
	scale := 0.1
	for _, c := range fracPart {
		if c == '.' {
			break
		}
		factor += float64(c-'0') * scale
		scale /= 10
	}
	return e.popUnit(s, float64(sign)*factor)
}

func (e *Engine) popUnit(s *Stack, factor float64) (int, error) {
	tok, err := s.PopToken(PopIgnoreLeadingSpace)
	if err != nil {
		return 0, err
	}
	for tok != nil {
		repl, ok, err := e.ExpandOnce(tok, s)
		if err != nil {
			return 0, err
		}
		if !ok {
			break
		}
		s.PushList(repl)
		tok, err = s.PopToken(PopIgnoreLeadingSpace)
		if err != nil {
			return 0, err
		}
	}
	if tok == nil {
		return 0, newError(ErrDimenExpected)
	}
	if v, kind, ok := e.registerValue(tok); ok && kind == DimenRegister {
		return round(factor * float64(v)), nil
	}

	unit, err := e.popLetters(s, tok, 2)
	if err != nil {
		return 0, err
	}
	if unit == "tr" {
		rest, err := e.popLetters(s, nil, 2)
		if err != nil || rest != "ue" {
			return 0, newError(ErrDimenExpected)
		}
		return e.popUnit(s, factor)
	}
	size, ok := units[unit]
	if !ok {
		return 0, newError(ErrDimenExpected)
	}
	err = e.skipOptionalSpace(s)
	return round(factor * size * ScaledPoints), err
}

// popLetters reads n letters, the first of which may already have
// been removed from the stack.
func (e *Engine) popLetters(s *Stack, first *token.Token, n int) (string, error) {
	var res []rune
	tok := first
	for len(res) < n {
		if tok == nil {
			var err error
			tok, err = e.NextExpanded(s)
			if err != nil {
				return "", err
			}
		}
		if tok == nil || !unicode.IsLetter(tok.Char) ||
			(tok.Kind != token.Letter && tok.Kind != token.Other) {
			if tok != nil {
				s.Push(tok)
			}
			return "", newError(ErrDimenExpected)
		}
		res = append(res, unicode.ToLower(tok.Char))
		tok = nil
	}
	return string(res), nil
}

func round(x float64) int {
	x = math.Round(x)
	if x > maxNumber {
		return maxNumber
	} else if x < -maxNumber {
		return -maxNumber
	}
	return int(x)
}

// PopNumericArg removes a mandatory argument and evaluates it as a
// number.
func (e *Engine) PopNumericArg(s *Stack) (int, error) {
	arg, err := s.PopArg(PopIgnoreLeadingSpace)
	if err != nil {
		return 0, err
	}
	return e.PopNumber(NewStack(arg))
}

// PopDimensionArg removes a mandatory argument and evaluates it as a
// length.
func (e *Engine) PopDimensionArg(s *Stack) (int, error) {
	arg, err := s.PopArg(PopIgnoreLeadingSpace)
	if err != nil {
		return 0, err
	}
	return e.PopDimension(NewStack(arg))
}

// PopLabelString removes a mandatory argument, expands it fully and
// returns the resulting text.
func (e *Engine) PopLabelString(s *Stack) (string, error) {
	list, err := e.ExpandArg(s)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(list.Format()), nil
}
