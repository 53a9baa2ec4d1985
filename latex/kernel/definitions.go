// definitions.go - LaTeX command and environment definitions
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

func addDefinitions(e *engine.Engine) {
	for name, policy := range map[string]engine.Overwrite{
		"newcommand":           engine.Forbid,
		"renewcommand":         engine.Force,
		"providecommand":       engine.Skip,
		"DeclareRobustCommand": engine.Allow,
	} {
		defProcessor(e, name, mNewCommand(policy))
	}
	for name, policy := range map[string]engine.Overwrite{
		"NewDocumentCommand":     engine.Forbid,
		"RenewDocumentCommand":   engine.Force,
		"ProvideDocumentCommand": engine.Skip,
		"DeclareDocumentCommand": engine.Allow,
	} {
		defProcessor(e, name, mNewDocumentCommand(policy))
	}
	for name, policy := range map[string]engine.Overwrite{
		"newenvironment":     engine.Forbid,
		"renewenvironment":   engine.Force,
		"provideenvironment": engine.Skip,
	} {
		defProcessor(e, name, mNewEnvironment(policy))
	}
	for name, policy := range map[string]engine.Overwrite{
		"NewDocumentEnvironment":     engine.Forbid,
		"RenewDocumentEnvironment":   engine.Force,
		"ProvideDocumentEnvironment": engine.Skip,
		"DeclareDocumentEnvironment": engine.Allow,
	} {
		defProcessor(e, name, mNewDocumentEnvironment(policy))
	}

	defProcessor(e, "begin", mBegin)
	defProcessor(e, "end", mEnd)

	isTrue := isCs(engine.BooleanTrue)
	isNoValue := isCs(engine.NoValue)
	hasValue := func(arg token.List) bool { return !isNoValue(arg) }
	addBranches(e, "IfBoolean", isTrue)
	addBranches(e, "IfNoValue", isNoValue)
	addBranches(e, "IfValue", hasValue)
	defExpandable(e, engine.NoValue, func(e *engine.Engine, s *engine.Stack) (token.List, error) {
		return token.String("-NoValue-"), nil
	})
	def(e, engine.NewProcessor(engine.BooleanTrue, mPrefix))
	def(e, engine.NewProcessor(engine.BooleanFalse, mPrefix))
}

// mNewCommand implements \newcommand{\name}[n][default]{body} and its
// variants.  The starred form defines a short macro.
func mNewCommand(policy engine.Overwrite) func(*engine.Engine, *engine.Stack) error {
	return func(e *engine.Engine, s *engine.Stack) error {
		short, err := s.PopModifier('*')
		if err != nil {
			return err
		}
		name, err := popCsArg(s)
		if err != nil {
			return err
		}
		args, err := popArgSpecs(e, s)
		if err != nil {
			return err
		}
		body, err := popBody(s, name, len(args))
		if err != nil {
			return err
		}
		m := &engine.Macro{CsName: name, Args: args, Body: body, Short: short}
		return e.Define(name, m, policy, e.TakeGlobal())
	}
}

// popArgSpecs reads the optional argument count and the optional
// default value of the first argument, as in \newcommand\x[2][a]{...}.
func popArgSpecs(e *engine.Engine, s *engine.Stack) ([]engine.ArgSpec, error) {
	count, err := s.PopOptArg(0, '[', ']')
	if err != nil {
		return nil, err
	}
	n := 0
	if count != nil {
		n, err = e.PopNumber(engine.NewStack(count))
		if err != nil {
			return nil, err
		}
		if n < 0 || n > 9 {
			return nil, engine.ErrIllegalParam.With("")
		}
	}
	args := make([]engine.ArgSpec, n)
	if n == 0 {
		return args, nil
	}
	dflt, err := s.PopOptArg(0, '[', ']')
	if err != nil {
		return nil, err
	}
	if dflt != nil {
		args[0] = engine.ArgSpec{Kind: engine.ArgOptional, Default: dflt}
	}
	return args, nil
}

// popBody reads the body of a macro with n arguments.
func popBody(s *engine.Stack, name string, n int) (token.List, error) {
	body, err := s.PopArg(0)
	if err != nil {
		return nil, err
	}
	body = engine.NormalizeParams(body)
	if err := checkParams(name, body, n); err != nil {
		return nil, err
	}
	return body, nil
}

// mNewDocumentCommand implements \NewDocumentCommand\name{spec}{body}
// and its variants.
func mNewDocumentCommand(policy engine.Overwrite) func(*engine.Engine, *engine.Stack) error {
	return func(e *engine.Engine, s *engine.Stack) error {
		name, err := popCsArg(s)
		if err != nil {
			return err
		}
		spec, err := s.PopArg(0)
		if err != nil {
			return err
		}
		args, err := engine.ParseSignature(spec)
		if err != nil {
			return err
		}
		body, err := popBody(s, name, len(args))
		if err != nil {
			return err
		}
		m := &engine.Macro{CsName: name, Args: args, Body: body}
		return e.Define(name, m, policy, e.TakeGlobal())
	}
}

// mNewEnvironment implements \newenvironment{name}[n][default]{begin}{end}
// and its variants.
func mNewEnvironment(policy engine.Overwrite) func(*engine.Engine, *engine.Stack) error {
	return func(e *engine.Engine, s *engine.Stack) error {
		short, err := s.PopModifier('*')
		if err != nil {
			return err
		}
		name, err := e.PopLabelString(s)
		if err != nil {
			return err
		}
		args, err := popArgSpecs(e, s)
		if err != nil {
			return err
		}
		return defineEnvironment(e, s, name, args, short, policy)
	}
}

func mNewDocumentEnvironment(policy engine.Overwrite) func(*engine.Engine, *engine.Stack) error {
	return func(e *engine.Engine, s *engine.Stack) error {
		name, err := e.PopLabelString(s)
		if err != nil {
			return err
		}
		spec, err := s.PopArg(0)
		if err != nil {
			return err
		}
		args, err := engine.ParseSignature(spec)
		if err != nil {
			return err
		}
		return defineEnvironment(e, s, name, args, false, policy)
	}
}

func defineEnvironment(e *engine.Engine, s *engine.Stack, name string, args []engine.ArgSpec, short bool, policy engine.Overwrite) error {
	begin, err := popBody(s, name, len(args))
	if err != nil {
		return err
	}
	end, err := popBody(s, "end"+name, 0)
	if err != nil {
		return err
	}
	env := &engine.UserEnvironment{
		Begin: &engine.Macro{
			CsName: name,
			Args:   args,
			Body:   begin,
			Short:  short,
		},
		EndCode: end,
	}
	return e.Define(name, env, policy, e.TakeGlobal())
}

func mBegin(e *engine.Engine, s *engine.Stack) error {
	name, err := e.PopLabelString(s)
	if err != nil {
		return err
	}
	return e.BeginEnvironment(name, s)
}

func mEnd(e *engine.Engine, s *engine.Stack) error {
	name, err := e.PopLabelString(s)
	if err != nil {
		return err
	}
	return e.EndEnvironment(name, s)
}

func isCs(name string) func(token.List) bool {
	return func(arg token.List) bool {
		arg = arg.TrimSpace()
		return len(arg) == 1 && arg[0].IsCs(name)
	}
}

// addBranches defines the TF, T and F variants of a test like
// \IfBooleanTF{arg}{true code}{false code}.
func addBranches(e *engine.Engine, prefix string, test func(token.List) bool) {
	variants := []struct {
		suffix   string
		hasTrue  bool
		hasFalse bool
	}{
		{"TF", true, true},
		{"T", true, false},
		{"F", false, true},
	}
	for _, v := range variants {
		v := v // per-iteration copy (go directive is pre-1.22)
		defExpandable(e, prefix+v.suffix, func(e *engine.Engine, s *engine.Stack) (token.List, error) {
			arg, err := s.PopArg(0)
			if err != nil {
				return nil, err
			}
			var yes, no token.List
			if v.hasTrue {
				yes, err = s.PopArg(0)
				if err != nil {
					return nil, err
				}
			}
			if v.hasFalse {
				no, err = s.PopArg(0)
				if err != nil {
					return nil, err
				}
			}
			if test(arg) {
				return yes, nil
			}
			return no, nil
		})
	}
}
