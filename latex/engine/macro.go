// macro.go - user defined macros
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
	"strconv"

	"github.com/seehuhn/texexpand/latex/token"
)

// ArgKind is the type of a LaTeX style macro argument.
type ArgKind int

// The argument kinds.
const (
	ArgMandatory ArgKind = iota
	ArgOptional
	ArgStar
)

// ArgSpec describes one argument of a macro.
type ArgSpec struct {
	Kind ArgKind

	// Default is used for absent optional arguments.  If Default is
	// nil, the argument expands to NoValue.
	Default token.List
}

// NoValue is the name of the control sequence which is passed for
// absent optional arguments without default value.
const NoValue = "NoValue"

// The values passed for star arguments.
const (
	BooleanTrue  = "BooleanTrue"
	BooleanFalse = "BooleanFalse"
)

// Macro is a command defined by \def, \newcommand and similar.  The
// arguments are either given by Args, LaTeX style, or by the TeX
// parameter text Params.
type Macro struct {
	CsName string
	Args   []ArgSpec
	Params token.List
	Body   token.List

	// Short macros do not accept paragraph breaks in their arguments.
	Short bool
}

// Name implements the Command interface.
func (m *Macro) Name() string {
	return m.CsName
}

// NumArgs returns the number of arguments of the macro.
func (m *Macro) NumArgs() int {
	if m.Args != nil {
		return len(m.Args)
	}
	n := 0
	for _, tok := range m.Params {
		if tok.Kind == token.Param {
			n++
		}
	}
	return n
}

// ExpandOnce reads the macro arguments from s and returns the body
// with the parameters replaced by the arguments.
func (m *Macro) ExpandOnce(e *Engine, s *Stack) (token.List, error) {
	var args []token.List
	var err error
	if m.Params != nil {
		args, err = m.readParams(s)
	} else {
		args, err = m.readArgs(s)
	}
	if err != nil {
		if perr, ok := err.(*Error); ok && len(perr.Params) > 0 && perr.Params[0] == "" {
			perr.Params[0] = m.CsName
		}
		return nil, err
	}
	return m.Substitute(args)
}

func (m *Macro) style() PopStyle {
	if m.Short {
		return PopShort
	}
	return 0
}

func (m *Macro) readArgs(s *Stack) ([]token.List, error) {
	args := make([]token.List, len(m.Args))
	style := m.style() | PopIgnoreLeadingSpace
	for i, spec := range m.Args {
		switch spec.Kind {
		case ArgMandatory:
			arg, err := s.PopArg(style)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		case ArgOptional:
			arg, err := s.PopOptArg(style, '[', ']')
			if err != nil {
				return nil, err
			}
			if arg == nil {
				if spec.Default != nil {
					arg = spec.Default
				} else {
					arg = token.List{token.NewCs(NoValue)}
				}
			}
			args[i] = arg
		case ArgStar:
			star, err := s.PopModifier('*')
			if err != nil {
				return nil, err
			}
			if star {
				args[i] = token.List{token.NewCs(BooleanTrue)}
			} else {
				args[i] = token.List{token.NewCs(BooleanFalse)}
			}
		}
	}
	return args, nil
}

// readParams matches the TeX parameter text against the input.
func (m *Macro) readParams(s *Stack) ([]token.List, error) {
	tmpl := m.Params
	style := m.style()
	i := 0
	for i < len(tmpl) && tmpl[i].Kind != token.Param {
		tok, err := s.PopToken(0)
		if err != nil {
			return nil, err
		}
		if tok == nil || !tok.Equal(tmpl[i]) {
			return nil, newError(ErrUseDoesntMatch, m.CsName)
		}
		i++
	}

	var args []token.List
	for i < len(tmpl) {
		i++
		var delim token.List
		for i < len(tmpl) && tmpl[i].Kind != token.Param {
			delim = append(delim, tmpl[i])
			i++
		}

		var arg token.List
		var err error
		switch {
		case len(delim) == 0:
			var tok *token.Token
			tok, err = s.PopStack(style | PopIgnoreLeadingSpace)
			if err == nil && (tok == nil || tok.Kind == token.EndGroup) {
				err = newError(ErrMissingArgument, m.CsName)
			} else if err == nil && tok.Kind == token.Group {
				arg = tok.List
			} else if err == nil {
				arg = token.List{tok}
			}
		case len(delim) == 1 && delim[0].Kind == token.BeginGroup:
			arg, err = s.PopToGroup(style)
		default:
			arg, err = m.popDelimited(s, delim, style)
		}
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

func (m *Macro) popDelimited(s *Stack, delim token.List, style PopStyle) (token.List, error) {
	var arg token.List
	for {
		tok, err := s.PopStack(style & PopShort)
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return nil, newError(ErrUseDoesntMatch, m.CsName)
		}
		arg = append(arg, tok)
		n := len(arg) - len(delim)
		if n >= 0 && arg[n:].Equal(delim) {
			arg = arg[:n]
			break
		}
	}
	if len(arg) == 1 && arg[0].Kind == token.Group {
		arg = arg[0].List
	}
	return arg, nil
}

// Substitute returns a copy of the macro body with the parameters
// replaced by the given arguments.
func (m *Macro) Substitute(args []token.List) (token.List, error) {
	return m.substitute(m.Body, args)
}

func (m *Macro) substitute(tmpl token.List, args []token.List) (token.List, error) {
	res := make(token.List, 0, len(tmpl))
	for _, tok := range tmpl {
		switch tok.Kind {
		case token.Param:
			n := tok.Value
			if n < 1 || n > len(args) {
				return nil, newError(ErrIllegalParam, m.CsName)
			}
			res = append(res, args[n-1]...)
		case token.DoubleParam:
			res = append(res, &token.Token{Kind: token.Param})
		case token.Group:
			inner, err := m.substitute(tok.List, args)
			if err != nil {
				return nil, err
			}
			res = append(res, token.NewGroup(inner))
		default:
			res = append(res, tok)
		}
	}
	return res, nil
}

// Equal reports whether two macros have the same meaning.
func (m *Macro) Equal(other *Macro) bool {
	if m.Short != other.Short || len(m.Args) != len(other.Args) {
		return false
	}
	for i, spec := range m.Args {
		o := other.Args[i]
		if spec.Kind != o.Kind || (spec.Default == nil) != (o.Default == nil) ||
			!spec.Default.Equal(o.Default) {
			return false
		}
	}
	return m.Params.Equal(other.Params) && m.Body.Equal(other.Body)
}

// ParseSignature converts an xparse argument specification like
// "s o m O{default}" into argument descriptions.
func ParseSignature(spec token.List) ([]ArgSpec, error) {
	res := []ArgSpec{}
	for i := 0; i < len(spec); i++ {
		tok := spec[i]
		if tok.IsWhiteSpace() || tok.IsChar('+') {
			continue
		}
		if tok.Kind != token.Letter {
			return nil, newError(ErrBadSignature, spec.Format())
		}
		switch tok.Char {
		case 'm':
			res = append(res, ArgSpec{Kind: ArgMandatory})
		case 'o':
			res = append(res, ArgSpec{Kind: ArgOptional})
		case 's':
			res = append(res, ArgSpec{Kind: ArgStar})
		case 'O':
			i++
			for i < len(spec) && spec[i].IsWhiteSpace() {
				i++
			}
			if i >= len(spec) || spec[i].Kind != token.Group {
				return nil, newError(ErrBadSignature, spec.Format())
			}
			def := spec[i].List
			if def == nil {
				def = token.List{}
			}
			res = append(res, ArgSpec{Kind: ArgOptional, Default: def})
		default:
			return nil, newError(ErrUnsupportedArgType, string(tok.Char))
		}
	}
	if len(res) > 9 {
		return nil, newError(ErrBadSignature, spec.Format())
	}
	return res, nil
}

// ParseParamText checks a TeX parameter text, as given between the
// macro name and the body in \def.  Parameters must be numbered
// consecutively from 1.  A final "#" marks that the last argument is
// delimited by the opening brace of the body.
func ParseParamText(name string, params token.List) (token.List, error) {
	params = NormalizeParams(params)
	res := token.List{}
	next := 1
	for i, tok := range params {
		switch {
		case tok.Kind == token.Param && tok.Value == 0 && i == len(params)-1:
			res = append(res, &token.Token{Kind: token.BeginGroup, Char: '{'})
		case tok.Kind == token.Param:
			if tok.Value != next {
				return nil, newError(ErrIllegalParam, name)
			}
			next++
			res = append(res, tok)
		case tok.Kind == token.DoubleParam:
			return nil, newError(ErrIllegalParam, name)
		case tok.Kind == token.Ignorable:
			// pass
		default:
			res = append(res, tok)
		}
	}
	return res, nil
}

// NormalizeParams combines parameter characters produced by the
// expansion of "##" with the token following them, so that nested
// definitions see "#1" and "##" again.
func NormalizeParams(list token.List) token.List {
	var res token.List
	for i := 0; i < len(list); i++ {
		tok := list[i]
		switch {
		case tok.Kind == token.Group:
			res = append(res, token.NewGroup(NormalizeParams(tok.List)))
			continue
		case tok.Kind != token.Param || tok.Value != 0 || i+1 >= len(list):
			res = append(res, tok)
			continue
		}
		next := list[i+1]
		switch {
		case next.Kind == token.Other && next.Char >= '1' && next.Char <= '9':
			n, _ := strconv.Atoi(string(next.Char))
			res = append(res, &token.Token{Kind: token.Param, Value: n})
			i++
		case next.Kind == token.Param && next.Value == 0:
			res = append(res, &token.Token{Kind: token.DoubleParam})
			i++
		default:
			res = append(res, tok)
		}
	}
	return res
}
